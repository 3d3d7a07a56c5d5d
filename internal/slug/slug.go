// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug derives URL-safe identifiers from category names and
// post titles. Generation is deterministic: the same input always
// yields the same slug, so renames recompute cleanly.
package slug

import (
	"regexp"
	"strings"
)

// maxLen caps slug length so very long titles produce usable URLs.
// Truncation happens at a hyphen boundary where possible.
const maxLen = 80

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, or space.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// whitespace matches runs of any whitespace, including tabs.
	whitespace = regexp.MustCompile(`\s+`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Tech & Science!" → "tech-science"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = whitespace.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	if len(result) > maxLen {
		result = result[:maxLen]
		if idx := strings.LastIndexByte(result, '-'); idx > 0 {
			result = result[:idx]
		}
	}
	return result
}
