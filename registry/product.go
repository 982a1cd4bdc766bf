// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/driverdoc

package registry

import (
	"fmt"
	"slices"
	"strings"
)

// Categories lists product categories accepted by the API.
var Categories = []string{"module", "gateway"}

// Product is the record posted for every registered identifier.
type Product struct {
	Type     string `json:"type"`
	Category string `json:"category"`
}

// ParseProduct derives product category from the second dot-separated
// segment of product type, for example "moduware.module.led" -> "module".
func ParseProduct(productType string) (Product, error) {
	productType = strings.TrimSpace(productType)
	segments := strings.Split(productType, ".")
	if len(segments) < 2 {
		return Product{}, fmt.Errorf("%w in type %q", ErrUnknownCategory, productType)
	}

	category := segments[1]
	if !slices.Contains(Categories, category) {
		return Product{}, fmt.Errorf("%w %q in type %q", ErrUnknownCategory, category, productType)
	}

	return Product{Type: productType, Category: category}, nil
}
