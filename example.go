// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/driverdoc

package driverdoc

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// exampleKeyComments documents driver keys in annotated YAML examples,
// keyed by dotted path with sequence items collapsed.
var exampleKeyComments = map[string]string{
	"type":                          "Module type, for example moduware.module.led",
	"version":                       "Driver revision",
	"commands":                      "Operations accepted by the module",
	"commands.name":                 "Command name used in SendCommand calls",
	"commands.title":                "Optional heading, falls back to name",
	"commands.command":              "Wire message-type tag",
	"commands.arguments":            "Ordered command arguments",
	"commands.arguments.validation": "Optional rule, {0} stands for the argument value",
	"data":                          "Data fields emitted by the module",
	"data.source":                   "Wire message-type tag of received data",
	"data.variables":                "Values carried by the data field",
	"data.variables.state":          "Optional state enumeration: raw value to display name",
}

// ExampleDriver returns a starter driver with one command and one data field.
func ExampleDriver() *Driver {
	return &Driver{
		Type:    "vendor.module.example",
		Version: "0.1.0",
		Commands: []Command{
			{
				Name:        "SetLevel",
				Title:       "Set Level",
				Command:     "2700",
				Description: "Sets output level.",
				Arguments: []Argument{
					{Name: "Level", Description: "Output level", Validation: "({0} >= 0) and ({0} <= 100)"},
				},
			},
		},
		Data: []DataField{
			{
				Name:   "StatusReceived",
				Title:  "Status",
				Source: "2800",
				Variables: []Variable{
					{Name: "power", Title: "Power", State: States{{Key: "1", Value: "ON"}, {Key: "0", Value: "OFF"}}},
					{Name: "level", Title: "Level"},
				},
			},
		},
	}
}

// EncodeDriver serializes driver in selected format. State enumerations keep
// their order in both formats.
func EncodeDriver(driver *Driver, format Format) ([]byte, error) {
	if driver == nil {
		return nil, &SchemaError{Field: "driver"}
	}

	switch format {
	case FormatJSON:
		return marshalDriverJSON(driver)
	case FormatYAML:
		node, err := yamlNodeForDriver(driver)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncodeDriver, err)
		}

		return marshalDriverYAMLNode(node)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownDriverFormat, format)
	}
}

// GenerateExample returns ExampleDriver encoded in selected format. YAML
// output carries key comments describing the driver layout.
func GenerateExample(format Format) ([]byte, error) {
	driver := ExampleDriver()
	if format != FormatYAML {
		return EncodeDriver(driver, format)
	}

	node, err := yamlNodeForDriver(driver)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeDriver, err)
	}

	annotateYAMLNode(node, "", make(map[string]struct{}))
	return marshalDriverYAMLNode(node)
}

// marshalDriverJSON serializes driver as pretty JSON.
func marshalDriverJSON(driver *Driver) ([]byte, error) {
	var out bytes.Buffer
	encoder := json.NewEncoder(&out)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(driver); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeDriver, err)
	}

	return out.Bytes(), nil
}

// yamlNodeForDriver converts driver into YAML node tree.
func yamlNodeForDriver(driver *Driver) (*yaml.Node, error) {
	var node yaml.Node
	if err := node.Encode(driver); err != nil {
		return nil, err
	}

	return &node, nil
}

// marshalDriverYAMLNode serializes node tree as YAML document.
func marshalDriverYAMLNode(node *yaml.Node) ([]byte, error) {
	var out bytes.Buffer
	encoder := yaml.NewEncoder(&out)
	encoder.SetIndent(2)

	if err := encoder.Encode(node); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeDriver, err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeDriver, err)
	}

	return out.Bytes(), nil
}

// annotateYAMLNode assigns key comments on first occurrence of every known path.
func annotateYAMLNode(node *yaml.Node, path string, seen map[string]struct{}) {
	switch node.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, item := range node.Content {
			annotateYAMLNode(item, path, seen)
		}
	case yaml.MappingNode:
		for index := 0; index+1 < len(node.Content); index += 2 {
			keyNode := node.Content[index]
			keyPath := keyNode.Value
			if path != "" {
				keyPath = path + "." + keyNode.Value
			}

			if _, done := seen[keyPath]; !done {
				if comment := exampleKeyComments[keyPath]; comment != "" {
					keyNode.HeadComment = comment
				}

				seen[keyPath] = struct{}{}
			}

			if keyPath == "data.variables.state" {
				continue
			}

			annotateYAMLNode(node.Content[index+1], keyPath, seen)
		}
	}
}

// MarshalYAML encodes enumeration as an ordered YAML mapping.
func (s States) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, entry := range s {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: entry.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: entry.Value},
		)
	}

	return node, nil
}
