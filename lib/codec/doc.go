// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides dynview's CBOR encoding configuration.
//
// JSON, XML, and YAML are the formats people write view documents in.
// CBOR is what dynview writes for itself: the parsed-document cache
// (lib/doccache) stores document trees as CBOR so that reloading a
// large document skips the source parser.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items. The
// same tree always produces the same bytes, so cache values can be
// compared byte-for-byte.
//
// Types shared with the JSON formats carry only `json` struct tags;
// fxamacker/cbor falls back to them when no `cbor` tag is present.
// Cache-private types carry `cbor` tags. A field never carries both.
package codec
