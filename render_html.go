// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/driverdoc

package driverdoc

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"
)

// frontMatter holds the keys of generated front matter used by HTML output.
type frontMatter struct {
	Title        string   `yaml:"title"`
	LanguageTabs []string `yaml:"language_tabs"`
	TocFooters   []string `yaml:"toc_footers"`
	Search       bool     `yaml:"search"`
}

// htmlPageTemplate wraps converted markdown body into a standalone page.
const htmlPageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s</body>
</html>
`

// RenderHTML converts rendered driver markdown into a standalone HTML page.
// Front matter is dropped from the body; its title becomes the page title.
func RenderHTML(markdown string) (string, error) {
	meta, body, err := parseFrontMatter(markdown)
	if err != nil {
		return "", err
	}

	converter := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(goldmarkhtml.WithUnsafe()),
	)

	var out bytes.Buffer
	if err := converter.Convert([]byte(body), &out); err != nil {
		return "", fmt.Errorf("%w: %w", ErrConvertHTML, err)
	}

	return fmt.Sprintf(htmlPageTemplate, html.EscapeString(meta.Title), out.String()), nil
}

// parseFrontMatter splits and decodes leading YAML front matter.
func parseFrontMatter(markdown string) (frontMatter, string, error) {
	raw, body, ok := splitFrontMatter(markdown)
	if !ok {
		return frontMatter{}, body, nil
	}

	var meta frontMatter
	if strings.TrimSpace(raw) == "" {
		return meta, body, nil
	}

	if err := yaml.Unmarshal([]byte(raw), &meta); err != nil {
		return frontMatter{}, "", fmt.Errorf("%w: front matter: %w", ErrConvertHTML, err)
	}

	return meta, body, nil
}
