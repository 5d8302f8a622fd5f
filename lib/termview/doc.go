// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package termview is a terminal view toolkit that hosts inflated
// documents. [Host] creates views by type name, [View] implements
// property.Builder so the binding passes can configure it, and
// [Renderer] draws a view tree to a string with lipgloss.
//
// Supported view types are the containers LinearLayout, FrameLayout,
// and ScrollView, and the leaves TextView, Button, and ImageView.
//
// The attribute vocabulary:
//
//	text, hint, contentDescription, src   free text
//	textColor, background                 "#rgb", "#rrggbb", or an ANSI 0-255 index
//	textStyle                             normal, bold, italic, underline, joined with "|"
//	border                                none, normal, rounded, thick, double, hidden
//	padding                               non-negative integer (cells)
//	width                                 positive integer, match_parent, wrap_content
//	orientation                           vertical, horizontal
//	visibility                            visible, invisible, gone
//	gravity                               left, center, right
//	layout_*, labelFor, nextFocus*        accepted and stored, not interpreted
//
// Setting any attribute to the empty string restores its default; that
// is how a binding clears a value whose data path went missing.
package termview
