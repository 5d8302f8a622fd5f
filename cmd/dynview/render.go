// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/dynview/lib/action"
	"github.com/bureau-foundation/dynview/lib/inflate"
	"github.com/bureau-foundation/dynview/lib/property"
	"github.com/bureau-foundation/dynview/lib/termview"
)

const renderUsage = `Bind a document to one data record and print it.

Usage:
  dynview render [flags] <document>

Examples:
  dynview render profile.xml --data user.json
  dynview render card.yaml --data rows.json --row 2 --width 40
  dynview render profile.xml --set user.name=Ada --set user.age=36
`

func runRender(args []string, stdout, stderr io.Writer) error {
	var common commonFlags
	var records recordFlags
	var width int
	var color string

	flagSet := pflag.NewFlagSet("dynview render", pflag.ContinueOnError)
	common.add(flagSet)
	records.add(flagSet)
	flagSet.IntVar(&width, "width", 0, "render width in columns (default: render.width from config)")
	flagSet.StringVar(&color, "color", "auto", "auto, always, or never")

	if done, err := parseFlags(flagSet, args, stdout, renderUsage); done || err != nil {
		return err
	}
	if flagSet.NArg() != 1 {
		return validation("render takes exactly one document, got %d arguments", flagSet.NArg())
	}
	profile, err := colorProfile(stdout, color)
	if err != nil {
		return err
	}

	s, err := openSession(&common, stdout, stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	if width == 0 {
		width = s.config.Render.Width
	}
	if width < 1 {
		return validation("--width must be at least 1")
	}

	tree, err := s.compile(flagSet.Arg(0))
	if err != nil {
		return err
	}
	record, err := records.record()
	if err != nil {
		return err
	}

	instance, err := s.inflate(tree, s.processor())
	if err != nil {
		return err
	}
	instance.Bind(record)

	fmt.Fprintln(stdout, termview.NewRenderer(stdout, profile).Render(rootView(instance), width))
	return nil
}

// processor returns the action registry used by one-shot commands:
// the built-in actions, with unknown actions logged rather than
// failing.
func (s *session) processor() *action.Registry {
	registry := action.NewRegistry(s.logger)
	action.RegisterBuiltins(registry, s.logger)
	registry.SetFallback(func(name string, params []string, view property.Builder) error {
		s.logger.Info("unhandled action", "action", name, "params", params)
		return nil
	})
	return registry
}

func (s *session) inflate(tree *inflate.Tree, processor property.Processor) (*inflate.Instance, error) {
	instance, err := tree.Inflate(termview.NewHost(), processor)
	if err != nil {
		return nil, validation("inflating document: %w", err)
	}
	return instance, nil
}

// rootView returns the instance root as a terminal view. termview is
// the only host the CLI inflates with.
func rootView(instance *inflate.Instance) *termview.View {
	return instance.Root().(*termview.View)
}
