// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/driverdoc

package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultCredentialsPath is the credentials record looked up in working directory.
const DefaultCredentialsPath = "./repository-user.json"

// Credentials is the OAuth client record issued for repository access.
type Credentials struct {
	ID     string `json:"id" yaml:"id" toml:"id"`
	Secret string `json:"secret" yaml:"secret" toml:"secret"`
}

// Validate reports missing id or secret.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidCredentials)
	}

	if strings.TrimSpace(c.Secret) == "" {
		return fmt.Errorf("%w: missing secret", ErrInvalidCredentials)
	}

	return nil
}

// LoadCredentials reads credentials record from JSON, YAML or TOML file,
// selected by file extension.
func LoadCredentials(path string) (Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Credentials{}, fmt.Errorf("%w: %q: %w", ErrCredentialsNotFound, path, err)
	}

	var creds Credentials
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &creds)
	case ".toml":
		err = toml.Unmarshal(data, &creds)
	default:
		err = json.Unmarshal(data, &creds)
	}

	if err != nil {
		return Credentials{}, fmt.Errorf("%w %q: %w", ErrDecodeCredentials, path, err)
	}

	if err := creds.Validate(); err != nil {
		return Credentials{}, err
	}

	return creds, nil
}
