// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/driverdoc

package driverdoc

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// missingTextMarker is shown for absent descriptions and titles.
	missingTextMarker = "-"
	// missingValidationMarker is shown for arguments without validation.
	missingValidationMarker = "none"
	// unconstrainedStateMarker is shown for variables without state enumeration.
	unconstrainedStateMarker = "*"
	// stateSeparator joins state display values in variables table.
	stateSeparator = " / "
)

// documentView is the root view model passed to markdown templates.
type documentView struct {
	Title      string
	CatalogURL string
	Languages  []string
	Type       string
	Version    string
	Commands   []commandView
	Fields     []fieldView
}

// commandView represents one command subsection.
type commandView struct {
	Heading          string
	Name             string
	Command          string
	Description      string
	ExampleArguments string
	Arguments        []argumentView
}

// argumentView is one row of command arguments table.
type argumentView struct {
	Name        string
	Description string
	Validation  string
}

// fieldView represents one data field subsection.
type fieldView struct {
	Heading     string
	Name        string
	Source      string
	Description string
	Variables   []variableView
}

// variableView drives both the variable example block and its table row.
type variableView struct {
	Name         string
	Title        string
	Description  string
	HasState     bool
	States       []string
	StateSummary string
}

// buildDocumentView validates driver sections in render order and builds view model.
func buildDocumentView(driver *Driver, opt Options) (documentView, error) {
	if driver == nil {
		return documentView{}, &SchemaError{Field: "driver"}
	}

	view := buildHeaderView(driver, opt)

	commands, err := buildCommandViews(driver.Commands, opt.StrictNames)
	if err != nil {
		return documentView{}, err
	}

	fields, err := buildFieldViews(driver.Data, opt.StrictNames)
	if err != nil {
		return documentView{}, err
	}

	view.Commands = commands
	view.Fields = fields
	return view, nil
}

// buildHeaderView fills front matter and driver identity with option defaults.
func buildHeaderView(driver *Driver, opt Options) documentView {
	title := strings.TrimSpace(opt.Title)
	if title == "" {
		title = driver.Type + " Driver"
	}

	catalogURL := strings.TrimSpace(opt.CatalogURL)
	if catalogURL == "" {
		catalogURL = DefaultCatalogURL
	}

	languages := opt.Languages
	if len(languages) == 0 {
		languages = DefaultLanguages
	}

	return documentView{
		Title:      title,
		CatalogURL: catalogURL,
		Languages:  languages,
		Type:       driver.Type,
		Version:    driver.Version,
	}
}

// buildCommandViews validates commands and their arguments.
// The first invalid command aborts the whole section.
func buildCommandViews(commands []Command, strict bool) ([]commandView, error) {
	if len(commands) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{}, len(commands))
	views := make([]commandView, 0, len(commands))
	for i, command := range commands {
		path := fmt.Sprintf("commands[%d]", i)
		if strings.TrimSpace(command.Name) == "" {
			return nil, &SchemaError{Field: "name", Path: path}
		}

		owner := fmt.Sprintf("command %q", command.Name)
		if strings.TrimSpace(string(command.Command)) == "" {
			return nil, &SchemaError{Field: "command", Path: path, Owner: owner}
		}

		if strict {
			if err := checkUniqueName(seen, command.Name, path); err != nil {
				return nil, err
			}
		}

		exampleArguments, err := ExampleArguments(command)
		if err != nil {
			return nil, prefixSchemaPath(err, path)
		}

		arguments, err := buildArgumentViews(command, path, strict)
		if err != nil {
			return nil, err
		}

		views = append(views, commandView{
			Heading:          orFallback(command.Title, command.Name),
			Name:             command.Name,
			Command:          string(command.Command),
			Description:      descriptionText(command.Description),
			ExampleArguments: exampleArguments,
			Arguments:        arguments,
		})
	}

	return views, nil
}

// buildArgumentViews builds arguments table rows for one command.
func buildArgumentViews(command Command, commandPath string, strict bool) ([]argumentView, error) {
	if len(command.Arguments) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{}, len(command.Arguments))
	views := make([]argumentView, 0, len(command.Arguments))
	for i, argument := range command.Arguments {
		path := fmt.Sprintf("%s.arguments[%d]", commandPath, i)
		if strings.TrimSpace(argument.Name) == "" {
			return nil, &SchemaError{Field: "name", Path: path, Owner: fmt.Sprintf("command %q", command.Name)}
		}

		if strict {
			if err := checkUniqueName(seen, argument.Name, path); err != nil {
				return nil, err
			}
		}

		validation := missingValidationMarker
		if strings.TrimSpace(argument.Validation) != "" {
			validation = FormatValidation(argument.Validation)
		}

		views = append(views, argumentView{
			Name:        argument.Name,
			Description: orFallback(argument.Description, missingTextMarker),
			Validation:  validation,
		})
	}

	return views, nil
}

// buildFieldViews validates data fields and their variables.
func buildFieldViews(fields []DataField, strict bool) ([]fieldView, error) {
	if len(fields) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{}, len(fields))
	views := make([]fieldView, 0, len(fields))
	for i, field := range fields {
		path := fmt.Sprintf("data[%d]", i)
		if strings.TrimSpace(field.Name) == "" {
			return nil, &SchemaError{Field: "name", Path: path}
		}

		if strings.TrimSpace(string(field.Source)) == "" {
			return nil, &SchemaError{Field: "source", Path: path, Owner: fmt.Sprintf("data field %q", field.Name)}
		}

		if strict {
			if err := checkUniqueName(seen, field.Name, path); err != nil {
				return nil, err
			}
		}

		variables, err := buildVariableViews(field, path, strict)
		if err != nil {
			return nil, err
		}

		views = append(views, fieldView{
			Heading:     orFallback(field.Title, field.Name),
			Name:        field.Name,
			Source:      string(field.Source),
			Description: descriptionText(field.Description),
			Variables:   variables,
		})
	}

	return views, nil
}

// buildVariableViews builds examples and table rows for one data field.
func buildVariableViews(field DataField, fieldPath string, strict bool) ([]variableView, error) {
	if len(field.Variables) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{}, len(field.Variables))
	views := make([]variableView, 0, len(field.Variables))
	for i, variable := range field.Variables {
		path := fmt.Sprintf("%s.variables[%d]", fieldPath, i)
		if strings.TrimSpace(variable.Name) == "" {
			return nil, &SchemaError{Field: "name", Path: path, Owner: fmt.Sprintf("data field %q", field.Name)}
		}

		if strict {
			if err := checkUniqueName(seen, variable.Name, path); err != nil {
				return nil, err
			}
		}

		view := variableView{
			Name:         variable.Name,
			Title:        orFallback(variable.Title, missingTextMarker),
			Description:  orFallback(variable.Description, missingTextMarker),
			HasState:     variable.HasState(),
			StateSummary: unconstrainedStateMarker,
		}

		if view.HasState {
			view.States = variable.State.Values()
			view.StateSummary = strings.Join(view.States, stateSeparator)
		}

		views = append(views, view)
	}

	return views, nil
}

// checkUniqueName records name and fails on repeats.
func checkUniqueName(seen map[string]struct{}, name, path string) error {
	if _, ok := seen[name]; ok {
		return &SchemaError{Field: "name", Path: path, Reason: "duplicate", Detail: name}
	}

	seen[name] = struct{}{}
	return nil
}

// prefixSchemaPath nests schema error location under parent path.
func prefixSchemaPath(err error, parent string) error {
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		return err
	}

	if schemaErr.Path == "" {
		schemaErr.Path = parent
	} else {
		schemaErr.Path = parent + "." + schemaErr.Path
	}

	return schemaErr
}

// orFallback returns trimmed value, or fallback when value is blank.
func orFallback(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}

	return value
}

// descriptionText normalizes free-text description paragraphs.
func descriptionText(text string) string {
	return strings.TrimSpace(normalizeLineEndings(text))
}
