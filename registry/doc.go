// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/driverdoc

// Package registry registers product identifiers against the remote product
// API. Client credentials are exchanged for a bearer token, each identifier
// is posted once, and every outcome is classified and tallied.
package registry
