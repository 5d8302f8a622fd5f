// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package termview

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

// Renderer draws view trees. Colors are emitted for the renderer's
// profile; termenv.Ascii drops all styling, which keeps output stable
// in tests and pipes.
type Renderer struct {
	lip *lipgloss.Renderer
}

// NewRenderer creates a renderer for output with a fixed color
// profile. lipgloss would otherwise re-detect the profile from
// output, which is wrong when output is not the final terminal.
func NewRenderer(output io.Writer, profile termenv.Profile) *Renderer {
	lip := lipgloss.NewRenderer(output, termenv.WithProfile(profile))
	lip.SetColorProfile(profile)
	return &Renderer{lip: lip}
}

// Render draws view into at most width columns. A view whose
// visibility is "gone" renders as the empty string.
func (renderer *Renderer) Render(view *View, width int) string {
	return renderer.render(view, width)
}

// snapshot is a consistent copy of a view's render inputs.
type snapshot struct {
	attributes map[string]string
	children   []*View
}

func (view *View) snapshot() snapshot {
	view.mutex.Lock()
	defer view.mutex.Unlock()
	attributes := make(map[string]string, len(view.attributes))
	for key, value := range view.attributes {
		attributes[key] = value
	}
	return snapshot{attributes: attributes, children: append([]*View(nil), view.children...)}
}

func (renderer *Renderer) render(view *View, available int) string {
	state := view.snapshot()
	attributes := state.attributes
	if attributes["visibility"] == "gone" || available <= 0 {
		return ""
	}

	style := renderer.lip.NewStyle()
	borderFrame := 0
	if border, ok := borderStyle(attributes["border"]); ok {
		style = style.Border(border)
		borderFrame = 2
	}
	padding, _ := strconv.Atoi(attributes["padding"])
	style = style.Padding(0, padding)
	frame := borderFrame + 2*padding

	target := 0
	switch width := attributes["width"]; width {
	case "match_parent":
		target = available
	case "", "wrap_content":
	default:
		target, _ = strconv.Atoi(width)
		target = min(target, available)
	}
	inner := available - frame
	if target > 0 {
		inner = target - frame
		style = style.Width(target - borderFrame)
	}
	if inner < 1 {
		return ""
	}

	var content string
	if view.kind == KindContainer {
		content = renderer.renderChildren(state, attributes, inner)
	} else {
		content, style = leafContent(view.kind, attributes, style)
		content = ansi.Truncate(content, inner, "…")
	}

	style = applyColors(style, attributes)
	switch attributes["gravity"] {
	case "center":
		style = style.Align(lipgloss.Center)
	case "right":
		style = style.Align(lipgloss.Right)
	}

	rendered := style.Render(content)
	if attributes["visibility"] == "invisible" {
		rendered = blank(rendered)
	}
	return rendered
}

func (renderer *Renderer) renderChildren(state snapshot, attributes map[string]string, inner int) string {
	var blocks []string
	for _, child := range state.children {
		if block := renderer.render(child, inner); block != "" {
			blocks = append(blocks, block)
		}
	}
	if len(blocks) == 0 {
		return ""
	}
	if attributes["orientation"] != "horizontal" {
		return lipgloss.JoinVertical(lipgloss.Left, blocks...)
	}
	joined := lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
	lines := strings.Split(joined, "\n")
	for index, line := range lines {
		lines[index] = ansi.Truncate(line, inner, "")
	}
	return strings.Join(lines, "\n")
}

func leafContent(kind Kind, attributes map[string]string, style lipgloss.Style) (string, lipgloss.Style) {
	text := attributes["text"]
	if text == "" && attributes["hint"] != "" {
		text = attributes["hint"]
		style = style.Faint(true)
	}
	switch kind {
	case KindButton:
		text = "[ " + text + " ]"
	case KindImage:
		label := attributes["contentDescription"]
		if label == "" {
			label = attributes["src"]
		}
		if label == "" {
			label = "image"
		}
		text = "[" + label + "]"
	}

	for _, part := range strings.Split(attributes["textStyle"], "|") {
		switch strings.TrimSpace(part) {
		case "bold":
			style = style.Bold(true)
		case "italic":
			style = style.Italic(true)
		case "underline":
			style = style.Underline(true)
		}
	}
	return text, style
}

func applyColors(style lipgloss.Style, attributes map[string]string) lipgloss.Style {
	if color := attributes["textColor"]; color != "" {
		style = style.Foreground(lipgloss.Color(color))
	}
	if color := attributes["background"]; color != "" {
		style = style.Background(lipgloss.Color(color))
	}
	return style
}

func borderStyle(name string) (lipgloss.Border, bool) {
	switch name {
	case "normal":
		return lipgloss.NormalBorder(), true
	case "rounded":
		return lipgloss.RoundedBorder(), true
	case "thick":
		return lipgloss.ThickBorder(), true
	case "double":
		return lipgloss.DoubleBorder(), true
	case "hidden":
		return lipgloss.HiddenBorder(), true
	default:
		return lipgloss.Border{}, false
	}
}

// blank replaces every cell of rendered with a space, keeping its
// shape.
func blank(rendered string) string {
	lines := strings.Split(rendered, "\n")
	for index, line := range lines {
		lines[index] = strings.Repeat(" ", ansi.StringWidth(line))
	}
	return strings.Join(lines, "\n")
}
