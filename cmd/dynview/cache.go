// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

const cacheUsage = `Show or purge the parsed-document cache.

Usage:
  dynview cache stats
  dynview cache purge
`

func runCache(args []string, stdout, stderr io.Writer) error {
	var common commonFlags

	flagSet := pflag.NewFlagSet("dynview cache", pflag.ContinueOnError)
	common.add(flagSet)

	if done, err := parseFlags(flagSet, args, stdout, cacheUsage); done || err != nil {
		return err
	}
	if flagSet.NArg() != 1 {
		return validation("cache takes one action (stats or purge), got %d arguments", flagSet.NArg())
	}
	if common.noCache {
		return validation("--no-cache makes no sense with the cache command")
	}

	s, err := openSession(&common, stdout, stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	if s.cache == nil {
		return notFound("document cache is disabled or unavailable (cache.path: %s)", s.config.Cache.Path)
	}

	switch flagSet.Arg(0) {
	case "stats":
		count, err := s.cache.Len()
		if err != nil {
			return internal("reading cache: %w", err)
		}
		fmt.Fprintf(stdout, "path:    %s\nentries: %d\n", s.config.Cache.Path, count)
	case "purge":
		if err := s.cache.Purge(); err != nil {
			return internal("purging cache: %w", err)
		}
		fmt.Fprintf(stdout, "purged %s\n", s.config.Cache.Path)
	default:
		return validation("unknown cache action %q (want stats or purge)", flagSet.Arg(0))
	}
	return nil
}
