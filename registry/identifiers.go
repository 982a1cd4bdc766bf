// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/driverdoc

package registry

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadIdentifiers reads newline-delimited identifiers list from file.
func ReadIdentifiers(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrReadIdentifiers, path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	ids, err := ParseIdentifiers(file)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrReadIdentifiers, path, err)
	}

	return ids, nil
}

// ParseIdentifiers splits LF or CRLF delimited identifiers, lower-cases
// them and skips blank lines.
func ParseIdentifiers(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(string(data), "\n")
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		id := strings.TrimSpace(line)
		if id == "" {
			continue
		}

		ids = append(ids, strings.ToLower(id))
	}

	return ids, nil
}
