// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/driverdoc

package driverdoc

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Format selects driver document syntax.
type Format string

const (
	// FormatJSON parses JSON; comments and trailing commas are tolerated.
	FormatJSON Format = "json"
	// FormatYAML parses YAML.
	FormatYAML Format = "yaml"
)

// FormatFromPath picks driver syntax from file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadFile reads and validates driver from file; syntax follows file extension.
func LoadFile(path string) (*Driver, error) {
	return LoadFileFormat(path, FormatFromPath(path))
}

// LoadFileFormat reads and validates driver from file in explicit syntax.
func LoadFileFormat(path string, format Format) (*Driver, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrDriverNotFound, path, err)
	}

	return Load(data, format)
}

// Load parses driver bytes and checks mandatory top-level fields.
// Nested objects are validated later by section renderers.
func Load(data []byte, format Format) (*Driver, error) {
	var (
		driver *Driver
		err    error
	)

	switch format {
	case FormatJSON, "":
		driver, err = decodeJSONDriver(data)
	case FormatYAML:
		driver, err = decodeYAMLDriver(data)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownDriverFormat, format)
	}

	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(driver.Type) == "" {
		return nil, &SchemaError{Field: "type"}
	}

	if strings.TrimSpace(driver.Version) == "" {
		return nil, &SchemaError{Field: "version"}
	}

	return driver, nil
}

// decodeJSONDriver strips JSONC extensions, checks syntax, then decodes driver.
func decodeJSONDriver(data []byte) (*Driver, error) {
	stripped := jsonc.ToJSON(data)

	var syntax any
	if err := json.Unmarshal(stripped, &syntax); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseDriver, err)
	}

	var driver Driver
	if err := json.Unmarshal(stripped, &driver); err != nil {
		return nil, schemaDecodeError(err)
	}

	return &driver, nil
}

// decodeYAMLDriver checks YAML syntax, then decodes driver from the node tree.
func decodeYAMLDriver(data []byte) (*Driver, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseDriver, err)
	}

	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, &SchemaError{Field: "type"}
	}

	document := root.Content[0]
	if document.Kind != yaml.MappingNode {
		return nil, &SchemaError{Field: "driver", Reason: "expected mapping for"}
	}

	var driver Driver
	if err := document.Decode(&driver); err != nil {
		return nil, schemaDecodeError(err)
	}

	return &driver, nil
}

// schemaDecodeError maps decoder type mismatches on well-formed input to schema errors.
func schemaDecodeError(err error) error {
	var schemaErr *SchemaError
	if errors.As(err, &schemaErr) {
		return schemaErr
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "driver"
		}

		return &SchemaError{
			Field:  field,
			Reason: fmt.Sprintf("expected %s, got %s for", typeErr.Type, typeErr.Value),
		}
	}

	var yamlErr *yaml.TypeError
	if errors.As(err, &yamlErr) {
		return &SchemaError{
			Field:  "driver",
			Reason: "invalid value in",
			Detail: strings.Join(yamlErr.Errors, "; "),
		}
	}

	return &SchemaError{Field: "driver", Reason: "invalid value in", Detail: err.Error()}
}
