// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/driverdoc

package driverdoc

import "strings"

// tableCellReplacer keeps a value on one table row and out of column separators.
var tableCellReplacer = strings.NewReplacer(
	"\r\n", " ",
	"\r", " ",
	"\n", " ",
	"|", `\|`,
)

// jsStringReplacer escapes text for single-quoted javascript literals.
var jsStringReplacer = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\r", `\r`,
	"\n", `\n`,
)

// escapeTableCell prepares value for a pipe table cell.
func escapeTableCell(value string) string {
	return strings.TrimSpace(tableCellReplacer.Replace(value))
}

// escapeJSString prepares value for a single-quoted javascript string.
func escapeJSString(value string) string {
	return jsStringReplacer.Replace(value)
}

// normalizeLineEndings converts CRLF/CR to LF.
func normalizeLineEndings(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return text
}

// ensureTrailingNewline guarantees exactly one trailing newline in output.
func ensureTrailingNewline(value string) string {
	value = strings.TrimRight(value, "\n")
	return value + "\n"
}

// splitFrontMatter separates leading "---" delimited block from markdown body.
// ok is false when text does not start with front matter.
func splitFrontMatter(text string) (frontMatter, body string, ok bool) {
	text = normalizeLineEndings(text)
	const delimiter = "---\n"
	if !strings.HasPrefix(text, delimiter) {
		return "", text, false
	}

	rest := text[len(delimiter):]
	end := strings.Index(rest, "\n"+delimiter)
	if end < 0 {
		if strings.HasSuffix(rest, "\n---") {
			return rest[:len(rest)-len("\n---")], "", true
		}

		return "", text, false
	}

	return rest[:end], rest[end+len("\n"+delimiter):], true
}
