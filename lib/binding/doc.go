// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package binding implements the value syntax of view documents: data
// records, ${path} templates, and action descriptors.
//
// A raw attribute value is one of:
//
//   - a literal ("Hello"),
//   - a template containing one or more ${path} placeholders
//     ("Hello ${user.name}"), resolved against a [Record] at bind time,
//   - for event keys (onClick, onLongPress, ...), an action descriptor
//     ("submit()", "open(${row.id}, 'detail')") naming an action and its
//     parameters.
//
// The lexical predicates [IsDynamic] and [IsEventKey] are the only
// places that decide which of these a value is. A value is dynamic iff
// it contains the two characters "${". A key is an event key iff it
// starts with "on" followed by an uppercase letter.
//
// Templates never fail: a path with no value in the record resolves to
// the empty string and is reported back to the caller as missing, so
// callers can surface the miss without aborting the bind.
//
// Records come in two shapes. [MapRecord] is a flat string map whose
// keys are whole paths ("user.name"). [JSONRecord] is a decoded JSON
// object; paths walk nested objects and arrays by dot-separated
// segments ("rows.0.title").
package binding
