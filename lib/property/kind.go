// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package property

import "github.com/bureau-foundation/dynview/lib/binding"

// Reserved keys and markers of the document language.
const (
	// NameKey declares a node's symbolic name.
	NameKey = "name"

	// IDKey receives the id allocated for a node's name.
	IDKey = "id"

	// ReferencePrefix marks a static value as a reference to the id of
	// a named node.
	ReferencePrefix = "@"
)

// Kind is the binding kind of a property.
type Kind int

const (
	KindStatic Kind = iota + 1
	KindDynamic
	KindAction
	KindDynamicAction
)

// String returns the kind's name.
func (kind Kind) String() string {
	switch kind {
	case KindStatic:
		return "static"
	case KindDynamic:
		return "dynamic"
	case KindAction:
		return "action"
	case KindDynamicAction:
		return "dynamic_action"
	default:
		return "unknown"
	}
}

// Classify returns the kind of the attribute (key, value). The rules
// are tried in fixed order and the first match wins:
//
//  1. dynamic action: event key and dynamic value
//  2. action: event key
//  3. dynamic: dynamic value
//  4. static
//
// The reserved name key is always static, whatever its value, because
// it only ever produces the node's id.
func Classify(key, value string) Kind {
	if key == NameKey {
		return KindStatic
	}
	eventKey := binding.IsEventKey(key)
	dynamic := binding.IsDynamic(value)
	switch {
	case eventKey && dynamic:
		return KindDynamicAction
	case eventKey:
		return KindAction
	case dynamic:
		return KindDynamic
	default:
		return KindStatic
	}
}
