// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug turns category labels and titles into identifiers that are
// safe to use as HTML ids and CSS hooks.
package slug

import (
	"regexp"
	"strings"
)

var (
	// separators become hyphens before anything else is stripped.
	separators = regexp.MustCompile(`[\s_&/]+`)
	// nonAlphanumeric matches anything that isn't a letter, digit, or hyphen.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a slug from the given string.
// Example: "Equity & Equality" → "equity-equality"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = separators.ReplaceAllString(result, "-")
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// Anchor returns prefix-slug, an HTML id for s. Labels that slug to
// nothing fall back to the prefix alone, and labels that differ only in
// case ("Inclusion" and "inclusion") keep distinct ids through a suffix.
func Anchor(prefix, s string) string {
	base := Generate(s)
	if base == "" {
		return prefix
	}
	id := prefix + "-" + base
	if s != strings.ToLower(s) {
		id += "-" + caseSignature(s)
	}
	return id
}

// caseSignature encodes the positions of upper-case letters in s.
func caseSignature(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			b.WriteByte('u')
		case r >= 'a' && r <= 'z':
			b.WriteByte('l')
		}
	}
	return strings.TrimRight(b.String(), "l")
}
