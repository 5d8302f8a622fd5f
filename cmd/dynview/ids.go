// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

const idsUsage = `List the symbolic names a document declares, with the integer
ids they resolve to, in declaration order.

Usage:
  dynview ids [flags] <document>
`

type nameID struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func runIDs(args []string, stdout, stderr io.Writer) error {
	var common commonFlags
	var asJSON bool

	flagSet := pflag.NewFlagSet("dynview ids", pflag.ContinueOnError)
	common.add(flagSet)
	flagSet.BoolVar(&asJSON, "json", false, "print a JSON array")

	if done, err := parseFlags(flagSet, args, stdout, idsUsage); done || err != nil {
		return err
	}
	if flagSet.NArg() != 1 {
		return validation("ids takes exactly one document, got %d arguments", flagSet.NArg())
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

	registry := tree.Registry()
	entries := make([]nameID, 0, registry.Len())
	for _, name := range registry.Names() {
		id, _ := registry.Lookup(name)
		entries = append(entries, nameID{ID: id, Name: name})
	}

	if asJSON {
		encoder := json.NewEncoder(stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	}
	for _, entry := range entries {
		fmt.Fprintf(stdout, "%d\t%s\n", entry.ID, entry.Name)
	}
	return nil
}
