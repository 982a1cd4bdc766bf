// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/driverdoc

package registry

import "errors"

var (
	// ErrCredentialsNotFound is returned when credentials file cannot be read.
	ErrCredentialsNotFound = errors.New("client credentials not found")
	// ErrDecodeCredentials is returned when credentials file content cannot be decoded.
	ErrDecodeCredentials = errors.New("decode client credentials")
	// ErrInvalidCredentials is returned when credentials record lacks id or secret.
	ErrInvalidCredentials = errors.New("invalid client credentials")
	// ErrReadIdentifiers is returned when identifiers list cannot be read.
	ErrReadIdentifiers = errors.New("read identifiers list")
	// ErrUnknownCategory is returned when product type does not carry an allowed category.
	ErrUnknownCategory = errors.New("unknown product category")
	// ErrFetchToken is returned when client credentials cannot be exchanged for a token.
	ErrFetchToken = errors.New("fetch access token")
)

// RejectedError is a registration the API refused as invalid (HTTP 400).
type RejectedError struct {
	// Message is the server supplied reason.
	Message string
}

// Error implements error.
func (e *RejectedError) Error() string {
	return e.Message
}
