// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package viewer is an interactive bubbletea host for a grid of
// inflated cells. A [Model] lays out the rows of an
// [adapter.GridAdapter] across a fixed number of columns, honoring
// each row's span, and keeps a small pool of holders that are rebound
// to whichever rows are on screen.
//
// Keyboard: j/k and arrows move the selection, h/l move within a grid
// row, enter fires the selected cell's onClick handler, q quits. /
// starts a fuzzy filter over the row values; esc clears it.
// Warnings logged through a [StatusLogHandler] appear in the status
// bar for a few seconds.
package viewer
