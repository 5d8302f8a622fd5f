// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/dynview/lib/adapter"
	"github.com/bureau-foundation/dynview/lib/property"
	"github.com/bureau-foundation/dynview/lib/termview"
	"github.com/bureau-foundation/dynview/lib/viewer"
)

const viewUsage = `Browse a grid of rows, each bound to its own copy of the document.

Rows come from a JSON array (comments allowed). A row's "colspan"
field sets how many grid columns it spans.

Usage:
  dynview view [flags] <document> --data rows.json

Keys:
  j/k, arrows   move      enter   fire onClick
  L             onLongClick
  g/G           top/bottom q       quit
  /             filter     esc     clear filter
`

func runView(args []string, stdout, stderr io.Writer) error {
	var common commonFlags
	var dataPath string
	var columns, pageSize, width int

	flagSet := pflag.NewFlagSet("dynview view", pflag.ContinueOnError)
	common.add(flagSet)
	flagSet.StringVar(&dataPath, "data", "", "JSON array of rows (required)")
	flagSet.IntVar(&columns, "columns", 0, "grid columns (default: viewer.columns from config)")
	flagSet.IntVar(&pageSize, "page-size", -1, "grid rows per page key (default: viewer.page_size from config)")
	flagSet.IntVar(&width, "width", -1, "fixed width, 0 to follow the terminal (default: viewer.width from config)")

	if done, err := parseFlags(flagSet, args, stdout, viewUsage); done || err != nil {
		return err
	}
	if flagSet.NArg() != 1 {
		return validation("view takes exactly one document, got %d arguments", flagSet.NArg())
	}
	if dataPath == "" {
		return validation("view requires --data")
	}

	s, err := openSession(&common, stdout, stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	options := viewer.Options{
		Columns:  s.config.Viewer.Columns,
		PageSize: s.config.Viewer.PageSize,
		Width:    s.config.Viewer.Width,
		Output:   stdout,
	}
	if columns > 0 {
		options.Columns = columns
	}
	if pageSize >= 0 {
		options.PageSize = pageSize
	}
	if width >= 0 {
		options.Width = width
	}
	options.Profile, _ = colorProfile(stdout, "auto")

	// Writing log lines to stderr would corrupt the alternate screen;
	// from here on warnings go to the status bar.
	level := slog.LevelWarn
	if s.logger.Enabled(context.Background(), slog.LevelDebug) {
		level = slog.LevelDebug
	}
	status := viewer.NewStatusLogHandler(level)
	s.logger = slog.New(status)
	s.observer = property.NewLogObserver(s.logger)
	options.Logger = s.logger

	tree, err := s.compile(flagSet.Arg(0))
	if err != nil {
		return err
	}
	rows, err := readRows(dataPath)
	if err != nil {
		return err
	}

	registry := s.processor()
	grid := adapter.NewGridAdapter(s.observer)
	grid.SetInflater(tree, termview.NewHost(), registry)
	grid.SetDataSource(rows)

	program := tea.NewProgram(viewer.NewModel(grid, options),
		tea.WithAltScreen(),
		tea.WithOutput(stdout),
	)
	status.SetProgram(program)
	_, err = program.Run()
	if err != nil {
		return internal("running viewer: %w", err)
	}
	return nil
}
