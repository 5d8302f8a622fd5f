// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package viewid allocates stable integer view ids for the symbolic
// names declared in a view document.
//
// A document declares a node's symbolic name with the reserved name
// attribute and other nodes refer to it as @name (for layout relations
// such as below or toRightOf). The host toolkit only understands
// integer ids, so each document owns one [Registry] that turns names
// into ids:
//
//   - [Registry.Allocate] is idempotent: the same name always maps to
//     the same id, distinct names map to distinct ids.
//   - [Registry.Contains] reports whether a name has been allocated,
//     without allocating it.
//
// Names are compared by exact byte equality. There is no trimming and
// no case folding.
//
// A Registry lives exactly as long as its document. It is safe for
// concurrent use, so documents may be compiled on a worker goroutine
// while other documents are bound on the UI goroutine.
//
// This package depends on no other dynview packages.
package viewid
