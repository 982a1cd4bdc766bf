// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/driverdoc

package driverdoc

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var updateGolden = flag.Bool("update", false, "update golden files")

func TestRenderGolden(t *testing.T) {
	got, err := RenderFile(filepath.Join("testdata", "moduware.module.led.driver.json"), Options{})
	if err != nil {
		t.Fatalf("RenderFile: %v", err)
	}

	goldenPath := filepath.Join("testdata", "moduware.module.led.golden.md")
	if *updateGolden {
		if err := os.WriteFile(goldenPath, []byte(got), 0o600); err != nil {
			t.Fatalf("write golden: %v", err)
		}
	}

	wantBytes, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}

	if diff := cmp.Diff(string(wantBytes), got); diff != "" {
		t.Fatalf("golden mismatch (-want +got); run `go test . -run TestRenderGolden -update`:\n%s", diff)
	}
}

func TestRenderYAMLDriverMatchesGolden(t *testing.T) {
	t.Parallel()

	got, err := RenderFile(filepath.Join("testdata", "moduware.module.led.driver.yaml"), Options{})
	if err != nil {
		t.Fatalf("RenderFile: %v", err)
	}

	want, err := os.ReadFile(filepath.Join("testdata", "moduware.module.led.golden.md"))
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}

	if diff := cmp.Diff(string(want), got); diff != "" {
		t.Fatalf("yaml render mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderHeaderOnly(t *testing.T) {
	t.Parallel()

	drivers := map[string]*Driver{
		"absent": {Type: "moduware.module.led", Version: "1.0.0"},
		"empty":  {Type: "moduware.module.led", Version: "1.0.0", Commands: []Command{}, Data: []DataField{}},
	}

	for name, driver := range drivers {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			rendered, err := Render(driver, Options{})
			if err != nil {
				t.Fatalf("Render: %v", err)
			}

			header, err := RenderHeader(driver, Options{})
			if err != nil {
				t.Fatalf("RenderHeader: %v", err)
			}

			if rendered != header {
				t.Fatalf("document differs from header:\n%s", rendered)
			}

			assertNotContains(t, rendered, "# Commands")
			assertNotContains(t, rendered, "# Data")
		})
	}
}

func TestRenderHeader(t *testing.T) {
	t.Parallel()

	header, err := RenderHeader(&Driver{Type: "moduware.module.speaker", Version: "0.2.1"}, Options{})
	if err != nil {
		t.Fatalf("RenderHeader: %v", err)
	}

	assertContains(t, header, "---\ntitle: moduware.module.speaker Driver\n")
	assertContains(t, header, "language_tabs:\n  - javascript\n")
	assertContains(t, header, "  - <a href='"+DefaultCatalogURL+"'>Drivers list</a>\n")
	assertContains(t, header, "search: true\n---\n")
	assertContains(t, header, "# Driver: moduware.module.speaker\n")
	assertContains(t, header, "**Type**: moduware.module.speaker\n")
	assertContains(t, header, "**Version**: 0.2.1\n")
}

func TestRenderHeaderOptions(t *testing.T) {
	t.Parallel()

	header, err := RenderHeader(&Driver{Type: "t", Version: "1"}, Options{
		Title:      "Speaker",
		CatalogURL: "https://example.com/drivers/",
		Languages:  []string{"javascript", "shell"},
	})
	if err != nil {
		t.Fatalf("RenderHeader: %v", err)
	}

	assertContains(t, header, "title: Speaker\n")
	assertContains(t, header, "language_tabs:\n  - javascript\n  - shell\n\ntoc_footers:")
	assertContains(t, header, "<a href='https://example.com/drivers/'>")
}

func TestRenderCommandsEmpty(t *testing.T) {
	t.Parallel()

	commands, err := RenderCommands(&Driver{Type: "t", Version: "1"}, Options{})
	if err != nil {
		t.Fatalf("RenderCommands: %v", err)
	}

	if commands != "" {
		t.Fatalf("expected empty commands section, got:\n%s", commands)
	}
}

func TestRenderCommandsArguments(t *testing.T) {
	t.Parallel()

	commands, err := RenderCommands(&Driver{
		Type:    "t",
		Version: "1",
		Commands: []Command{{
			Name:      "SetRGB",
			Command:   "2700",
			Arguments: []Argument{{Name: "Red"}, {Name: "Green"}, {Name: "Blue"}},
		}},
	}, Options{})
	if err != nil {
		t.Fatalf("RenderCommands: %v", err)
	}

	assertContains(t, commands, "## SetRGB\n")
	assertContains(t, commands, "SendCommand(Moduware.Arguments.uuid, 'SetRGB', [<Red>, <Green>, <Blue>]);")
	assertContains(t, commands, "SetRGB | 2700\n")
	assertContains(t, commands, "\nRed | - | none\n")
	assertContains(t, commands, "\nGreen | - | none\n")
	assertContains(t, commands, "\nBlue | - | none\n")
}

func TestRenderCommandWithoutArguments(t *testing.T) {
	t.Parallel()

	commands, err := RenderCommands(&Driver{
		Type:     "t",
		Version:  "1",
		Commands: []Command{{Name: "TurnOff", Title: "Turn off", Command: "2701", Description: "Switches LED off."}},
	}, Options{})
	if err != nil {
		t.Fatalf("RenderCommands: %v", err)
	}

	assertContains(t, commands, "## Turn off\n")
	assertContains(t, commands, "'TurnOff', []);")
	assertContains(t, commands, "\nSwitches LED off.\n")
	assertNotContains(t, commands, "### Arguments")
}

func TestRenderValidationColumn(t *testing.T) {
	t.Parallel()

	commands, err := RenderCommands(&Driver{
		Type:    "t",
		Version: "1",
		Commands: []Command{{
			Name:      "SetVolume",
			Command:   "2900",
			Arguments: []Argument{{Name: "Level", Description: "Volume", Validation: "({0} >= 0) and ({0} <= 5)"}},
		}},
	}, Options{})
	if err != nil {
		t.Fatalf("RenderCommands: %v", err)
	}

	assertContains(t, commands, "\nLevel | Volume | (**value** >= 0) and (**value** <= 5)\n")
}

func TestFormatValidation(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"({0} >= 0) and ({0} <= 5)": "(**value** >= 0) and (**value** <= 5)",
		"{0} in [1, 2]":             "**value** in [1, 2]",
		"len({1}) > 0":              "len({1}) > 0",
	}

	for input, want := range cases {
		if got := FormatValidation(input); got != want {
			t.Fatalf("FormatValidation(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestExampleArguments(t *testing.T) {
	t.Parallel()

	got, err := ExampleArguments(Command{Name: "SetRGB", Arguments: []Argument{{Name: "Red"}, {Name: "Green"}, {Name: "Blue"}}})
	if err != nil {
		t.Fatalf("ExampleArguments: %v", err)
	}

	if got != "<Red>, <Green>, <Blue>" {
		t.Fatalf("ExampleArguments = %q", got)
	}

	empty, err := ExampleArguments(Command{Name: "TurnOff"})
	if err != nil || empty != "" {
		t.Fatalf("ExampleArguments without arguments = %q, %v", empty, err)
	}
}

func TestRenderCommandsSchemaErrors(t *testing.T) {
	t.Parallel()

	valid := Command{Name: "SetRGB", Command: "2700"}
	cases := map[string]struct {
		commands []Command
		field    string
		path     string
		owner    string
	}{
		"missing wire tag after valid command": {
			commands: []Command{valid, {Name: "TurnOff"}},
			field:    "command",
			path:     "commands[1]",
			owner:    `command "TurnOff"`,
		},
		"missing name": {
			commands: []Command{{Command: "2700"}},
			field:    "name",
			path:     "commands[0]",
		},
		"argument missing name": {
			commands: []Command{valid, {Name: "SetLevel", Command: "2702", Arguments: []Argument{{Name: "Level"}, {Description: "unnamed"}}}},
			field:    "name",
			path:     "commands[1].arguments[1]",
			owner:    `command "SetLevel"`,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			driver := &Driver{Type: "t", Version: "1", Commands: tc.commands}
			out, err := RenderCommands(driver, Options{})
			assertSchemaError(t, err, tc.field, tc.path, tc.owner)
			if out != "" {
				t.Fatalf("expected no partial output, got:\n%s", out)
			}

			if _, err := Render(driver, Options{}); !errors.Is(err, ErrDriverSchema) {
				t.Fatalf("Render error = %v, want ErrDriverSchema", err)
			}
		})
	}
}

func TestRenderDataSchemaErrors(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		fields []DataField
		field  string
		path   string
		owner  string
	}{
		"missing name": {
			fields: []DataField{{Source: "2800"}},
			field:  "name",
			path:   "data[0]",
		},
		"missing source": {
			fields: []DataField{{Name: "StatusReceived"}},
			field:  "source",
			path:   "data[0]",
			owner:  `data field "StatusReceived"`,
		},
		"variable missing name": {
			fields: []DataField{{Name: "StatusReceived", Source: "2800", Variables: []Variable{{Title: "Power"}}}},
			field:  "name",
			path:   "data[0].variables[0]",
			owner:  `data field "StatusReceived"`,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			out, err := RenderData(&Driver{Type: "t", Version: "1", Data: tc.fields}, Options{})
			assertSchemaError(t, err, tc.field, tc.path, tc.owner)
			if out != "" {
				t.Fatalf("expected no partial output, got:\n%s", out)
			}
		})
	}
}

func TestRenderDataEmpty(t *testing.T) {
	t.Parallel()

	data, err := RenderData(&Driver{Type: "t", Version: "1"}, Options{})
	if err != nil {
		t.Fatalf("RenderData: %v", err)
	}

	if data != "" {
		t.Fatalf("expected empty data section, got:\n%s", data)
	}
}

func TestRenderDataField(t *testing.T) {
	t.Parallel()

	data, err := RenderData(&Driver{
		Type:    "t",
		Version: "1",
		Data:    []DataField{{Name: "ButtonPressed", Source: "2801"}},
	}, Options{})
	if err != nil {
		t.Fatalf("RenderData: %v", err)
	}

	assertContains(t, data, "listen for <code>DataReceived</code> event")
	assertContains(t, data, "## ButtonPressed\n")
	assertContains(t, data, "if(event.dataSource == 'ButtonPressed') {\n")
	assertContains(t, data, "ButtonPressed | 2801\n")
	assertNotContains(t, data, "### Variables")
}

func TestRenderVariablesWithStates(t *testing.T) {
	t.Parallel()

	data, err := RenderData(&Driver{
		Type:    "t",
		Version: "1",
		Data: []DataField{{
			Name:   "StatusReceived",
			Source: "2800",
			Variables: []Variable{{
				Name:  "power",
				State: States{{Key: "a", Value: "ON"}, {Key: "b", Value: "OFF"}},
			}},
		}},
	}, Options{})
	if err != nil {
		t.Fatalf("RenderData: %v", err)
	}

	assertContains(t, data, "switch(event.variables.power) {\n")
	assertContains(t, data, "\npower | - | - | ON / OFF\n")
	assertNotContains(t, data, "console.log(event.variables.power)")

	on := strings.Index(data, "  case 'ON':\n")
	off := strings.Index(data, "  case 'OFF':\n")
	if on < 0 || off < 0 || on > off {
		t.Fatalf("state branches out of order (ON at %d, OFF at %d):\n%s", on, off, data)
	}

	if got := strings.Count(data, "case '"); got != 2 {
		t.Fatalf("case branch count = %d, want 2", got)
	}
}

func TestRenderVariableWithoutState(t *testing.T) {
	t.Parallel()

	data, err := RenderData(&Driver{
		Type:    "t",
		Version: "1",
		Data: []DataField{{
			Name:      "LevelChanged",
			Source:    "2802",
			Variables: []Variable{{Name: "level", Title: "Level", Description: "Current level"}},
		}},
	}, Options{})
	if err != nil {
		t.Fatalf("RenderData: %v", err)
	}

	assertContains(t, data, "```javascript\nconsole.log(event.variables.level);\n```\n")
	assertContains(t, data, "\nlevel | Level | Current level | *\n")
	assertNotContains(t, data, "switch(")
}

func TestRenderVariableWithEmptyState(t *testing.T) {
	t.Parallel()

	data, err := RenderData(&Driver{
		Type:    "t",
		Version: "1",
		Data: []DataField{{
			Name:      "ModeChanged",
			Source:    "2803",
			Variables: []Variable{{Name: "mode", State: States{}}},
		}},
	}, Options{})
	if err != nil {
		t.Fatalf("RenderData: %v", err)
	}

	assertContains(t, data, "switch(event.variables.mode) {\n}\n")
	assertContains(t, data, "\nmode | - | - | \n")
}

func TestRenderIsIdempotent(t *testing.T) {
	t.Parallel()

	driver, err := LoadFile(filepath.Join("testdata", "moduware.module.led.driver.json"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	first, err := Render(driver, Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	second, err := Render(driver, Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if first != second {
		t.Fatal("repeated render produced different output")
	}
}

func TestRenderSectionsComposeDocument(t *testing.T) {
	t.Parallel()

	driver, err := LoadFile(filepath.Join("testdata", "moduware.module.led.driver.json"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	header, err := RenderHeader(driver, Options{})
	if err != nil {
		t.Fatalf("RenderHeader: %v", err)
	}

	commands, err := RenderCommands(driver, Options{})
	if err != nil {
		t.Fatalf("RenderCommands: %v", err)
	}

	data, err := RenderData(driver, Options{})
	if err != nil {
		t.Fatalf("RenderData: %v", err)
	}

	document, err := Render(driver, Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if diff := cmp.Diff(document, header+commands+data); diff != "" {
		t.Fatalf("sections do not compose document (-document +sections):\n%s", diff)
	}
}

func TestRenderEscapesCellsAndSnippets(t *testing.T) {
	t.Parallel()

	rendered, err := Render(&Driver{
		Type:    "t",
		Version: "1",
		Commands: []Command{{
			Name:      "Say",
			Command:   "3000",
			Arguments: []Argument{{Name: "Text", Description: "left | right", Validation: "{0} != ''"}},
		}},
		Data: []DataField{{
			Name:      "It's",
			Source:    "3001",
			Variables: []Variable{{Name: "mood", State: States{{Key: "x", Value: "can't"}}}},
		}},
	}, Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	assertContains(t, rendered, "\nText | left \\| right | **value** != ''\n")
	assertContains(t, rendered, `if(event.dataSource == 'It\'s') {`)
	assertContains(t, rendered, `  case 'can\'t':`)
	assertContains(t, rendered, "\nIt's | 3001\n")
}

func TestRenderStrictNames(t *testing.T) {
	t.Parallel()

	driver := &Driver{
		Type:     "t",
		Version:  "1",
		Commands: []Command{{Name: "Reset", Command: "1"}, {Name: "Reset", Command: "2"}},
	}

	if _, err := Render(driver, Options{}); err != nil {
		t.Fatalf("duplicate names must pass without strict mode: %v", err)
	}

	_, err := Render(driver, Options{StrictNames: true})
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Render error = %v, want *SchemaError", err)
	}

	if schemaErr.Reason != "duplicate" || schemaErr.Path != "commands[1]" {
		t.Fatalf("unexpected schema error: %+v", schemaErr)
	}

	_, err = Render(&Driver{
		Type:    "t",
		Version: "1",
		Data: []DataField{{
			Name:      "d",
			Source:    "1",
			Variables: []Variable{{Name: "v"}, {Name: "v"}},
		}},
	}, Options{StrictNames: true})
	if !errors.Is(err, ErrDriverSchema) {
		t.Fatalf("duplicate variable error = %v, want ErrDriverSchema", err)
	}
}

func TestRenderNilDriver(t *testing.T) {
	t.Parallel()

	if _, err := Render(nil, Options{}); !errors.Is(err, ErrDriverSchema) {
		t.Fatalf("Render(nil) error = %v, want ErrDriverSchema", err)
	}
}

func TestRenderCustomTemplate(t *testing.T) {
	t.Parallel()

	driver, err := LoadFile(filepath.Join("testdata", "moduware.module.led.driver.json"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	rendered, err := Render(driver, Options{
		TemplateText: "# {{ .Type }} v{{ .Version }}\n{{ range .Commands }}- [{{ .Heading }}](#{{ headingAnchor .Heading }})\n{{ end }}{{ template \"commands\" . }}",
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	assertContains(t, rendered, "# moduware.module.led v1.0.0\n")
	assertContains(t, rendered, "- [Set RGB](#set-rgb)\n")
	assertContains(t, rendered, "\n# Commands\n")
	assertNotContains(t, rendered, "language_tabs")
	assertNotContains(t, rendered, "# Data")
}

func TestRenderCustomTemplateErrors(t *testing.T) {
	t.Parallel()

	driver := &Driver{Type: "t", Version: "1"}
	if _, err := Render(driver, Options{TemplateText: "{{ .Type "}); !errors.Is(err, ErrParseCustomTemplate) {
		t.Fatalf("parse error = %v, want ErrParseCustomTemplate", err)
	}

	if _, err := Render(driver, Options{TemplateText: "{{ template \"missing\" . }}"}); !errors.Is(err, ErrExecuteMarkdownTemplate) {
		t.Fatalf("execute error = %v, want ErrExecuteMarkdownTemplate", err)
	}
}

func TestBuiltinTemplates(t *testing.T) {
	t.Parallel()

	names := BuiltinTemplateNames()
	if strings.Join(names, ",") != "slate" {
		t.Fatalf("unexpected template names: %v", names)
	}

	text, err := BuiltinTemplate(" Slate ")
	if err != nil {
		t.Fatalf("BuiltinTemplate: %v", err)
	}

	assertContains(t, text, `{{define "commands"}}`)

	if _, err := BuiltinTemplate("missing"); !errors.Is(err, ErrUnknownBuiltinTemplate) {
		t.Fatalf("expected ErrUnknownBuiltinTemplate, got %v", err)
	}

	if _, err := Render(&Driver{Type: "t", Version: "1"}, Options{TemplateName: "missing"}); !errors.Is(err, ErrUnknownBuiltinTemplate) {
		t.Fatalf("Render with unknown template error = %v", err)
	}
}

func TestMarkdownHeadingAnchor(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Set RGB":           "set-rgb",
		"  Status_Changed ": "status-changed",
		"Level (0-5)":       "level-0-5",
		"":                  "",
	}

	for input, want := range cases {
		if got := markdownHeadingAnchor(input); got != want {
			t.Fatalf("markdownHeadingAnchor(%q) = %q, want %q", input, got, want)
		}
	}
}

func assertSchemaError(t *testing.T, err error, field, path, owner string) {
	t.Helper()

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("error = %v, want *SchemaError", err)
	}

	if schemaErr.Field != field || schemaErr.Path != path || schemaErr.Owner != owner {
		t.Fatalf("schema error = %+v, want field=%q path=%q owner=%q", schemaErr, field, path, owner)
	}

	if owner != "" && !strings.Contains(err.Error(), owner) {
		t.Fatalf("error message %q does not name %s", err.Error(), owner)
	}
}

func assertContains(t *testing.T, haystack, needle string) {
	t.Helper()

	if !strings.Contains(haystack, needle) {
		t.Fatalf("missing substring %q in:\n%s", needle, haystack)
	}
}

func assertNotContains(t *testing.T, haystack, needle string) {
	t.Helper()

	if strings.Contains(haystack, needle) {
		t.Fatalf("unexpected substring %q in:\n%s", needle, haystack)
	}
}
