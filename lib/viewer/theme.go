// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package viewer

import "github.com/charmbracelet/lipgloss"

// Theme is the viewer's color palette, in ANSI 256-color codes.
type Theme struct {
	SelectedMarker lipgloss.Color
	BorderColor    lipgloss.Color
	ScrollThumb    lipgloss.Color
	HelpText       lipgloss.Color
	NormalText     lipgloss.Color
	WarnText       lipgloss.Color
	ErrorText      lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	SelectedMarker: lipgloss.Color("39"),
	BorderColor:    lipgloss.Color("240"),
	ScrollThumb:    lipgloss.Color("75"),
	HelpText:       lipgloss.Color("245"),
	NormalText:     lipgloss.Color("252"),
	WarnText:       lipgloss.Color("214"),
	ErrorText:      lipgloss.Color("196"),
}
