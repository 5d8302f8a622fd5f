// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/dynview/lib/binding"
	"github.com/bureau-foundation/dynview/lib/property"
	"github.com/bureau-foundation/dynview/lib/termview"
)

const clickUsage = `Fire an event on a view and print every action it dispatches.

The target is a symbolic name declared with name="..." in the
document; without --target the event fires on the root view.

Usage:
  dynview click [flags] <document>

Examples:
  dynview click profile.xml --target open --data user.json
  dynview click card.yaml --target like --event onLongClick --render
`

func runClick(args []string, stdout, stderr io.Writer) error {
	var common commonFlags
	var records recordFlags
	var target, event string
	var render bool
	var width int

	flagSet := pflag.NewFlagSet("dynview click", pflag.ContinueOnError)
	common.add(flagSet)
	records.add(flagSet)
	flagSet.StringVar(&target, "target", "", "name of the view to fire on (default: the root view)")
	flagSet.StringVar(&event, "event", "onClick", "event to fire")
	flagSet.BoolVar(&render, "render", false, "print the view after the event")
	flagSet.IntVar(&width, "width", 0, "render width with --render (default: render.width from config)")

	if done, err := parseFlags(flagSet, args, stdout, clickUsage); done || err != nil {
		return err
	}
	if flagSet.NArg() != 1 {
		return validation("click takes exactly one document, got %d arguments", flagSet.NArg())
	}
	if !binding.IsEventKey(event) {
		return validation("--event %q is not an event key (want on followed by an uppercase letter)", event)
	}

	s, err := openSession(&common, stdout, stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	tree, err := s.compile(flagSet.Arg(0))
	if err != nil {
		return err
	}
	record, err := records.record()
	if err != nil {
		return err
	}

	registry := s.processor()
	dispatched := 0
	printing := property.ProcessorFunc(func(name string, params []string, view property.Builder) error {
		dispatched++
		fmt.Fprintf(stdout, "%s(%s)\n", name, strings.Join(params, ", "))
		return registry.Dispatch(name, params, view)
	})

	instance, err := s.inflate(tree, printing)
	if err != nil {
		return err
	}
	instance.Bind(record)

	view := rootView(instance)
	if target != "" {
		named, ok := instance.View(target)
		if !ok {
			return notFound("no view named %q (known names: %s)", target, strings.Join(tree.Registry().Names(), ", "))
		}
		view = named.(*termview.View)
	}
	if !view.Fire(event) {
		label := target
		if label == "" {
			label = "root"
		}
		return notFound("%s view %q has no %s handler", view.Type(), label, event)
	}
	s.logger.Debug("fired event", "event", event, "target", target, "dispatched", dispatched)

	if render {
		if width == 0 {
			width = s.config.Render.Width
		}
		profile, _ := colorProfile(stdout, "auto")
		fmt.Fprintln(stdout, termview.NewRenderer(stdout, profile).Render(rootView(instance), width))
	}
	return nil
}
