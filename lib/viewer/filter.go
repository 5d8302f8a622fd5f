// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package viewer

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"

	"github.com/bureau-foundation/dynview/lib/binding"
)

// Slab sizes fzf uses for its scoring matrices.
const (
	slab16Size = 100 * 1024
	slab32Size = 2048
)

// filterModel narrows the rows shown to those whose values fuzzy-match
// the typed query. The full row set stays in the model; the adapter
// only ever sees the matching subset.
type filterModel struct {
	input  string
	active bool
	slab   *util.Slab
}

// apply returns the rows of source matching the query, in source
// order. An empty query matches everything.
func (filter *filterModel) apply(source []any) []any {
	if filter.input == "" {
		return source
	}
	if filter.slab == nil {
		filter.slab = util.MakeSlab(slab16Size, slab32Size)
	}
	pattern := []rune(strings.ToLower(filter.input))

	var matched []any
	for _, row := range source {
		chars := util.ToChars([]byte(rowText(row)))
		result, _ := algo.FuzzyMatchV2(false, true, true, &chars, pattern, false, filter.slab)
		if result.Start >= 0 {
			matched = append(matched, row)
		}
	}
	return matched
}

func (filter *filterModel) handleRune(character rune) {
	filter.input += string(character)
}

// handleBackspace removes the last character. It returns false when
// the input was already empty.
func (filter *filterModel) handleBackspace() bool {
	if filter.input == "" {
		return false
	}
	runes := []rune(filter.input)
	filter.input = string(runes[:len(runes)-1])
	return true
}

func (filter *filterModel) clear() {
	filter.input = ""
	filter.active = false
}

// view renders the filter bar, or "" when there is no filter.
func (filter *filterModel) view(renderer *lipgloss.Renderer, theme Theme) string {
	switch {
	case filter.active:
		cursor := renderer.NewStyle().Foreground(theme.SelectedMarker).Bold(true).Render("▎")
		return renderer.NewStyle().Foreground(theme.NormalText).Render("/ "+filter.input) + cursor
	case filter.input != "":
		return renderer.NewStyle().Foreground(theme.HelpText).Render("filter: " + filter.input)
	}
	return ""
}

// rowText joins the scalar values of a row, depth-first with object
// keys in sorted order, so matching sees what the cells display
// rather than the keys of the row.
func rowText(row any) string {
	var parts []string
	var collect func(value any)
	collect = func(value any) {
		switch typed := value.(type) {
		case map[string]any:
			keys := make([]string, 0, len(typed))
			for key := range typed {
				keys = append(keys, key)
			}
			slices.Sort(keys)
			for _, key := range keys {
				collect(typed[key])
			}
		case []any:
			for _, element := range typed {
				collect(element)
			}
		case nil:
		default:
			parts = append(parts, binding.FormatValue(typed))
		}
	}
	collect(row)
	return strings.Join(parts, " ")
}
