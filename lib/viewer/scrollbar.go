// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package viewer

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderScrollbar produces a one-column scrollbar of height lines.
// The thumb marks the visible grid rows within all grid rows; when
// everything fits the thumb fills the track.
func renderScrollbar(renderer *lipgloss.Renderer, theme Theme, height, totalRows, visibleRows, offset int) string {
	if height <= 0 {
		return ""
	}
	trackStyle := renderer.NewStyle().Foreground(theme.BorderColor)
	thumbStyle := renderer.NewStyle().Foreground(theme.ScrollThumb)

	lines := make([]string, height)
	if totalRows <= visibleRows || totalRows <= 0 {
		for index := range lines {
			lines[index] = thumbStyle.Render("┃")
		}
		return strings.Join(lines, "\n")
	}

	thumbSize := max(height*visibleRows/totalRows, 1)
	scrollableRange := totalRows - visibleRows
	trackRange := height - thumbSize
	thumbOffset := 0
	if trackRange > 0 {
		thumbOffset = offset * trackRange / scrollableRange
	}
	thumbOffset = min(thumbOffset, height-thumbSize)

	for index := range lines {
		if index >= thumbOffset && index < thumbOffset+thumbSize {
			lines[index] = thumbStyle.Render("┃")
		} else {
			lines[index] = trackStyle.Render("│")
		}
	}
	return strings.Join(lines, "\n")
}
