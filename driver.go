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

// Driver describes remote-control surface of one hardware module.
type Driver struct {
	// Type is the module type identifier, for example "moduware.module.led".
	Type string `json:"type" yaml:"type"`
	// Version is the driver revision.
	Version string `json:"version" yaml:"version"`
	// Commands lists operations the module accepts.
	Commands []Command `json:"commands,omitempty" yaml:"commands,omitempty"`
	// Data lists telemetry fields the module emits.
	Data []DataField `json:"data,omitempty" yaml:"data,omitempty"`
}

// Command is one controllable operation exposed by a module.
type Command struct {
	Name        string     `json:"name" yaml:"name"`
	Command     Tag        `json:"command" yaml:"command"`
	Title       string     `json:"title,omitempty" yaml:"title,omitempty"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Arguments   []Argument `json:"arguments,omitempty" yaml:"arguments,omitempty"`
}

// Argument is one positional argument of a command.
type Argument struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// Validation is an expression template where {0} stands for the runtime value.
	Validation string `json:"validation,omitempty" yaml:"validation,omitempty"`
}

// DataField is one category of data a module emits.
type DataField struct {
	Name        string     `json:"name" yaml:"name"`
	Source      Tag        `json:"source" yaml:"source"`
	Title       string     `json:"title,omitempty" yaml:"title,omitempty"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Variables   []Variable `json:"variables,omitempty" yaml:"variables,omitempty"`
}

// Variable is one named value inside a data field payload.
type Variable struct {
	Name        string `json:"name" yaml:"name"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// State enumerates discrete runtime values. Nil means the variable is
	// unconstrained; a non-nil empty value means an empty enumeration.
	State States `json:"state,omitempty" yaml:"state,omitempty"`
}

// Tag is a wire message-type identifier. Numeric and string forms decode to
// the same text.
type Tag string

// UnmarshalJSON accepts any scalar and keeps its literal text.
func (t *Tag) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	text, err := jsonScalarText(data, "tag")
	if err != nil {
		return err
	}

	*t = Tag(text)
	return nil
}

// UnmarshalYAML accepts any scalar and keeps its literal text.
func (t *Tag) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return &SchemaError{Field: "tag", Reason: "expected scalar for"}
	}

	if node.ShortTag() == "!!null" {
		return nil
	}

	*t = Tag(node.Value)
	return nil
}

// HasState reports whether variable declares a state enumeration.
func (v Variable) HasState() bool {
	return v.State != nil
}

// StateEntry is one key/display-value pair of a state enumeration.
type StateEntry struct {
	Key   string
	Value string
}

// States is an ordered state enumeration; order follows the source document.
type States []StateEntry

// Values returns display values in declaration order.
func (s States) Values() []string {
	values := make([]string, 0, len(s))
	for _, entry := range s {
		values = append(values, entry.Value)
	}

	return values
}

// set replaces value of an existing key in place or appends a new entry.
func (s States) set(key, value string) States {
	for i := range s {
		if s[i].Key == key {
			s[i].Value = value
			return s
		}
	}

	return append(s, StateEntry{Key: key, Value: value})
}

// UnmarshalJSON decodes a JSON object while keeping key order.
func (s *States) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	token, err := decoder.Token()
	if err != nil {
		return err
	}

	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return &SchemaError{Field: "state", Reason: "expected object for"}
	}

	entries := States{}
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return err
		}

		key, _ := keyToken.(string)

		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			return err
		}

		value, err := jsonScalarText(raw, "state")
		if err != nil {
			return err
		}

		entries = entries.set(key, value)
	}

	if _, err := decoder.Token(); err != nil {
		return err
	}

	*s = entries
	return nil
}

// MarshalJSON encodes enumeration back into an ordered JSON object.
func (s States) MarshalJSON() ([]byte, error) {
	var out bytes.Buffer
	out.WriteByte('{')
	for i, entry := range s {
		if i > 0 {
			out.WriteByte(',')
		}

		key, err := json.Marshal(entry.Key)
		if err != nil {
			return nil, err
		}

		value, err := json.Marshal(entry.Value)
		if err != nil {
			return nil, err
		}

		out.Write(key)
		out.WriteByte(':')
		out.Write(value)
	}

	out.WriteByte('}')
	return out.Bytes(), nil
}

// UnmarshalYAML decodes a YAML mapping while keeping key order.
func (s *States) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		return nil
	}

	if node.Kind != yaml.MappingNode {
		return &SchemaError{Field: "state", Reason: "expected mapping for"}
	}

	entries := make(States, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]
		if valueNode.Kind != yaml.ScalarNode {
			return &SchemaError{Field: "state." + keyNode.Value, Reason: "expected scalar for"}
		}

		entries = entries.set(keyNode.Value, valueNode.Value)
	}

	*s = entries
	return nil
}

// jsonScalarText converts one scalar JSON value of field to its display text.
func jsonScalarText(raw json.RawMessage, field string) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", &SchemaError{Field: field, Reason: "empty value in"}
	}

	switch raw[0] {
	case '"':
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return "", err
		}

		return text, nil
	case '{', '[':
		return "", &SchemaError{Field: field, Reason: fmt.Sprintf("non-scalar value %s in", raw)}
	case 'n':
		return "", &SchemaError{Field: field, Reason: "null value in"}
	default:
		return string(raw), nil
	}
}
