// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/driverdoc

/*
Package driverdoc renders Markdown reference documentation from module driver
description files.

A driver describes the remote-control surface of a hardware module: the
commands it accepts and the data fields it emits. Output is a Slate-style
document with front matter, one section per command and one per data field,
with javascript usage snippets for each.

Load and render a driver file:

	driver, err := driverdoc.LoadFile("moduware.module.led.driver.json")
	if err != nil {
		return err
	}

	md, err := driverdoc.Render(driver, driverdoc.Options{})
	if err != nil {
		return err
	}

	fmt.Print(md)

JSON drivers may carry comments and trailing commas; files with ".yaml" or
".yml" extension are parsed as YAML. Loading fails with ErrDriverNotFound,
ErrParseDriver or a *SchemaError (matched by ErrDriverSchema):

	_, err := driverdoc.LoadFile(path)
	var schemaErr *driverdoc.SchemaError
	switch {
	case errors.Is(err, driverdoc.ErrDriverNotFound):
	case errors.Is(err, driverdoc.ErrParseDriver):
	case errors.As(err, &schemaErr):
		fmt.Println("missing field:", schemaErr.Field)
	}

Sections can be rendered on their own:

	header, _ := driverdoc.RenderHeader(driver, driverdoc.Options{})
	commands, err := driverdoc.RenderCommands(driver, driverdoc.Options{})
	data, err := driverdoc.RenderData(driver, driverdoc.Options{})

Custom template text may reuse built-in sections:

	md, err := driverdoc.Render(driver, driverdoc.Options{
		TemplateText: `# {{ .Type }}{{ template "commands" . }}`,
	})

Convert rendered markdown into a standalone HTML page:

	page, err := driverdoc.RenderHTML(md)

Start a new driver from an annotated skeleton:

	skeleton, err := driverdoc.GenerateExample(driverdoc.FormatYAML)
*/
package driverdoc
