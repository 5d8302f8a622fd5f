// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// dynview inflates declarative view documents (XML, JSON, or YAML) in
// the terminal, binds them to JSON data, and fires their event
// actions.
//
// Subcommands:
//
//	render   bind a document to one record and print it
//	click    fire an event on a named view and print the dispatched actions
//	ids      list the symbolic names of a document and their ids
//	view     browse a grid of rows bound to a document interactively
//	cache    show or purge the parsed-document cache
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bureau-foundation/dynview/lib/version"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

type command struct {
	summary string
	run     func(args []string, stdout, stderr io.Writer) error
}

var commands = map[string]command{
	"render": {"bind a document to one record and print it", runRender},
	"click":  {"fire an event on a named view", runClick},
	"ids":    {"list symbolic names and their ids", runIDs},
	"view":   {"browse rows bound to a document", runView},
	"cache":  {"show or purge the parsed-document cache", runCache},
}

var commandOrder = []string{"render", "click", "ids", "view", "cache"}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		printUsage(stderr)
		return validation("no command given")
	}

	switch args[0] {
	case "-h", "--help", "help":
		printUsage(stdout)
		return nil
	case "--version", "version":
		fmt.Fprintf(stdout, "dynview %s\n", version.Full())
		return nil
	}

	selected, ok := commands[args[0]]
	if !ok {
		printUsage(stderr)
		return validation("unknown command %q", args[0])
	}
	return selected.run(args[1:], stdout, stderr)
}

func printUsage(output io.Writer) {
	fmt.Fprintf(output, `dynview: inflate declarative view documents in the terminal.

Usage:
  dynview <command> [flags] <document>

Commands:
`)
	for _, name := range commandOrder {
		fmt.Fprintf(output, "  %-8s %s\n", name, commands[name].summary)
	}
	fmt.Fprintf(output, `
Run "dynview <command> --help" for the flags of one command.

Configuration is read from --config or $DYNVIEW_CONFIG when set.
`)
}
