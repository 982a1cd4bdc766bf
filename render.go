// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/driverdoc

package driverdoc

import (
	"fmt"
	"sort"
	"strings"
	"text/template"
)

const (
	// DefaultCatalogURL points readers to the published drivers list.
	DefaultCatalogURL = "https://moduware.github.io/developer-documentation/module-drivers/"
	// defaultTemplateName is used when caller does not provide template name.
	defaultTemplateName = templateSlateName
	// validationPlaceholder marks the runtime argument value in validation expressions.
	validationPlaceholder = "{0}"
	// validationValueMarker replaces validationPlaceholder in rendered tables.
	validationValueMarker = "**value**"
)

const (
	templateSlateName = "slate"

	documentTemplateName  = "document"
	headerTemplateName    = "header"
	commandsTemplateName  = "commands"
	argumentsTemplateName = "arguments"
	dataTemplateName      = "data"
	variablesTemplateName = "variables"
	customTemplateName    = "custom"
)

// DefaultLanguages lists example languages announced in document front matter.
var DefaultLanguages = []string{"javascript"}

// Options configures markdown rendering. Zero value renders the canonical document.
type Options struct {
	// Title overrides front matter title; defaults to "<type> Driver".
	Title string
	// CatalogURL overrides drivers list link; defaults to DefaultCatalogURL.
	CatalogURL string
	// Languages overrides front matter language tabs; defaults to DefaultLanguages.
	Languages []string
	// TemplateName selects built-in template.
	TemplateName string
	// TemplateText is a custom template executed instead of the built-in
	// entry point. Built-in sections stay callable via {{template "commands" .}}.
	TemplateText string
	// StrictNames rejects duplicate command, data field, argument and variable names.
	StrictNames bool
}

// RenderFile loads driver from file and renders markdown documentation.
func RenderFile(path string, opt Options) (string, error) {
	driver, err := LoadFile(path)
	if err != nil {
		return "", err
	}

	return Render(driver, opt)
}

// Render converts driver into deterministic markdown document.
// Sections are emitted in fixed order: header, commands, data.
func Render(driver *Driver, opt Options) (string, error) {
	view, err := buildDocumentView(driver, opt)
	if err != nil {
		return "", err
	}

	markdownTemplate, entry, err := resolveTemplate(opt)
	if err != nil {
		return "", err
	}

	out, err := executeTemplate(markdownTemplate, entry, view)
	if err != nil {
		return "", err
	}

	return ensureTrailingNewline(out), nil
}

// RenderHeader renders front matter and driver type/version block.
func RenderHeader(driver *Driver, opt Options) (string, error) {
	if driver == nil {
		return "", &SchemaError{Field: "driver"}
	}

	return renderSection(headerTemplateName, buildHeaderView(driver, opt), opt)
}

// RenderCommands renders commands section, or empty string when driver has no commands.
func RenderCommands(driver *Driver, opt Options) (string, error) {
	if driver == nil {
		return "", &SchemaError{Field: "driver"}
	}

	commands, err := buildCommandViews(driver.Commands, opt.StrictNames)
	if err != nil {
		return "", err
	}

	return renderSection(commandsTemplateName, documentView{Commands: commands}, opt)
}

// RenderData renders data section, or empty string when driver has no data fields.
func RenderData(driver *Driver, opt Options) (string, error) {
	if driver == nil {
		return "", &SchemaError{Field: "driver"}
	}

	fields, err := buildFieldViews(driver.Data, opt.StrictNames)
	if err != nil {
		return "", err
	}

	return renderSection(dataTemplateName, documentView{Fields: fields}, opt)
}

// ExampleArguments renders argument placeholders for command call example,
// for example "<Red>, <Green>, <Blue>".
func ExampleArguments(command Command) (string, error) {
	placeholders := make([]string, 0, len(command.Arguments))
	for i, argument := range command.Arguments {
		if strings.TrimSpace(argument.Name) == "" {
			return "", &SchemaError{
				Field: "name",
				Path:  fmt.Sprintf("arguments[%d]", i),
				Owner: fmt.Sprintf("command %q", command.Name),
			}
		}

		placeholders = append(placeholders, "<"+argument.Name+">")
	}

	return strings.Join(placeholders, ", "), nil
}

// FormatValidation makes validation expression human readable by
// replacing every {0} placeholder with **value**.
func FormatValidation(validation string) string {
	return strings.ReplaceAll(validation, validationPlaceholder, validationValueMarker)
}

// BuiltinTemplateNames returns all available built-in template names.
func BuiltinTemplateNames() []string {
	names := make([]string, 0, len(builtInTemplateFiles))
	for name := range builtInTemplateFiles {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// BuiltinTemplate returns one built-in template by name.
func BuiltinTemplate(name string) (string, error) {
	name = normalizeTemplateName(name)
	path, ok := builtInTemplateFiles[name]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownBuiltinTemplate, name)
	}

	data, err := templateFS.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadBuiltinTemplate, err)
	}

	return string(data), nil
}

// renderSection executes one named sub-template of the resolved template set.
func renderSection(name string, view documentView, opt Options) (string, error) {
	markdownTemplate, _, err := resolveTemplate(opt)
	if err != nil {
		return "", err
	}

	return executeTemplate(markdownTemplate, name, view)
}

// executeTemplate runs named template into a string.
func executeTemplate(markdownTemplate *template.Template, name string, data any) (string, error) {
	var out strings.Builder
	if err := markdownTemplate.ExecuteTemplate(&out, name, data); err != nil {
		return "", fmt.Errorf("%w: %w", ErrExecuteMarkdownTemplate, err)
	}

	return out.String(), nil
}
