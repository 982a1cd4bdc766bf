// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/driverdoc

package driverdoc

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDriverNotFound is returned when driver file cannot be read from given path.
	ErrDriverNotFound = errors.New("driver file not found")
	// ErrParseDriver is returned when driver content is not well-formed JSON or YAML.
	ErrParseDriver = errors.New("parse driver")
	// ErrDriverSchema is matched by every *SchemaError.
	ErrDriverSchema = errors.New("driver schema")
	// ErrUnknownDriverFormat is returned when requested input format is not supported.
	ErrUnknownDriverFormat = errors.New("unknown driver format")
	// ErrExecuteMarkdownTemplate is returned when markdown template execution fails.
	ErrExecuteMarkdownTemplate = errors.New("execute markdown template")
	// ErrParseCustomTemplate is returned when custom template text cannot be parsed.
	ErrParseCustomTemplate = errors.New("parse custom template")
	// ErrUnknownBuiltinTemplate is returned when requested built-in template name is not registered.
	ErrUnknownBuiltinTemplate = errors.New("unknown built-in template")
	// ErrReadBuiltinTemplate is returned when built-in template file loading fails.
	ErrReadBuiltinTemplate = errors.New("read built-in template")
	// ErrParseBuiltinTemplate is returned when built-in template parsing fails.
	ErrParseBuiltinTemplate = errors.New("parse built-in template")
	// ErrEncodeDriver is returned when driver cannot be serialized.
	ErrEncodeDriver = errors.New("encode driver")
	// ErrConvertHTML is returned when markdown to HTML conversion fails.
	ErrConvertHTML = errors.New("convert markdown to html")
)

// SchemaError reports a required driver field that is missing or has a wrong shape.
type SchemaError struct {
	// Field is the offending key, for example "command" or "name".
	Field string
	// Path locates the object holding Field, for example "commands[2]".
	// Empty for top-level driver fields.
	Path string
	// Owner names the command or data field the offending object belongs
	// to, for example `command "SetRGB"`. Empty when unknown.
	Owner string
	// Reason overrides the default "missing" wording.
	Reason string
	// Detail is appended verbatim, typically a decoder message.
	Detail string
}

// Error implements error.
func (e *SchemaError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "missing"
	}

	var out strings.Builder
	out.WriteString(ErrDriverSchema.Error())
	out.WriteString(": ")
	if e.Path != "" {
		out.WriteString(e.Path)
		out.WriteString(": ")
	}

	fmt.Fprintf(&out, "%s %q", reason, e.Field)
	if e.Owner != "" {
		fmt.Fprintf(&out, " (%s)", e.Owner)
	}

	if e.Detail != "" {
		out.WriteString(": ")
		out.WriteString(e.Detail)
	}

	return out.String()
}

// Unwrap makes errors.Is(err, ErrDriverSchema) report true.
func (e *SchemaError) Unwrap() error {
	return ErrDriverSchema
}
