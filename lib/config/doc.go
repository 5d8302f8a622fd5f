// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for dynview.
//
// Configuration is loaded from a single file named by either the
// DYNVIEW_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no automatic file search. Commands run
// without either use [Default].
//
// Variable expansion is performed on path fields after loading:
// ${HOME}, ${DYNVIEW_ROOT}, and ${VAR:-default} patterns are expanded.
// No environment variable overrides a config value.
//
// Key exports:
//
//   - [Config] -- master struct with Paths, Log, Cache, Viewer, Render
//   - [Default] -- returns a Config with built-in defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other dynview packages.
package config
