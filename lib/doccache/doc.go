// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package doccache keeps parsed view documents in a bbolt database so
// that repeated renders of the same source skip the parser.
//
// Entries are keyed by a BLAKE3 keyed hash over the document format
// and source bytes. Values are zstd-compressed CBOR (see lib/codec)
// of the parsed [document.Node] tree, wrapped in a small envelope
// carrying a schema version. An entry whose version does not match
// the running binary is treated as a miss and overwritten on the next
// store.
//
// A [Cache] is safe for concurrent use. A nil *Cache is valid and
// never hits, which lets callers disable caching without branching.
package doccache
