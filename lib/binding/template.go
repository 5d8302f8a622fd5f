// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package binding

import (
	"regexp"
	"strings"
)

// placeholderPattern matches ${path} placeholders. The path is
// everything up to the first closing brace; surrounding spaces are
// trimmed. An opening "${" with no closing brace is literal text.
var placeholderPattern = regexp.MustCompile(`\$\{([^}]*)\}`)

// IsDynamic reports whether value carries a data expression.
func IsDynamic(value string) bool {
	return strings.Contains(value, "${")
}

// segment is one piece of a parsed template: literal text, or a path
// to resolve.
type segment struct {
	text   string
	isPath bool
}

// Template is a parsed attribute value with zero or more ${path}
// placeholders. The zero Template evaluates to the empty string.
type Template struct {
	raw      string
	segments []segment
}

// ParseTemplate splits raw into literal and placeholder segments.
// It never fails.
func ParseTemplate(raw string) Template {
	template := Template{raw: raw}

	cursor := 0
	for _, match := range placeholderPattern.FindAllStringSubmatchIndex(raw, -1) {
		if match[0] > cursor {
			template.segments = append(template.segments, segment{text: raw[cursor:match[0]]})
		}
		path := strings.TrimSpace(raw[match[2]:match[3]])
		template.segments = append(template.segments, segment{text: path, isPath: true})
		cursor = match[1]
	}
	if cursor < len(raw) {
		template.segments = append(template.segments, segment{text: raw[cursor:]})
	}
	return template
}

// Raw returns the unparsed template text.
func (template Template) Raw() string {
	return template.raw
}

// Paths returns the paths referenced by the template, in order of
// appearance. Repeated paths appear once per reference.
func (template Template) Paths() []string {
	var paths []string
	for _, piece := range template.segments {
		if piece.isPath {
			paths = append(paths, piece.text)
		}
	}
	return paths
}

// HasPaths reports whether the template references the record at all.
func (template Template) HasPaths() bool {
	for _, piece := range template.segments {
		if piece.isPath {
			return true
		}
	}
	return false
}

// Evaluate substitutes every placeholder with its value from record.
// Paths the record does not hold substitute the empty string and are
// returned in missing. A nil record resolves every path as missing.
func (template Template) Evaluate(record Record) (value string, missing []string) {
	var builder strings.Builder
	for _, piece := range template.segments {
		if !piece.isPath {
			builder.WriteString(piece.text)
			continue
		}
		if record != nil {
			if resolved, exists := record.Lookup(piece.text); exists {
				builder.WriteString(resolved)
				continue
			}
		}
		missing = append(missing, piece.text)
	}
	return builder.String(), missing
}
