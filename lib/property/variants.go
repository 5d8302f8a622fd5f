// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package property

import (
	"fmt"
	"strconv"

	"github.com/bureau-foundation/dynview/lib/binding"
)

// StaticProperty holds a literal resolved at compile time.
type StaticProperty struct {
	key   string
	value string
}

// NewStaticProperty creates a static property. value must already have
// name and reference rewrites applied.
func NewStaticProperty(key, value string) StaticProperty {
	return StaticProperty{key: key, value: value}
}

// Key returns the attribute key.
func (property StaticProperty) Key() string { return property.key }

// Value returns the literal value.
func (property StaticProperty) Value() string { return property.value }

// Apply sets the value on builder. An integer value under the id key is
// applied with SetID; everything else with SetAttribute.
func (property StaticProperty) Apply(builder Builder) error {
	if property.key == IDKey {
		if id, err := strconv.Atoi(property.value); err == nil {
			return builder.SetID(id)
		}
	}
	return builder.SetAttribute(property.key, property.value)
}

// DynamicProperty holds a template evaluated on every bind.
type DynamicProperty struct {
	key      string
	template binding.Template
}

// NewDynamicProperty parses value as a template.
func NewDynamicProperty(key, value string) DynamicProperty {
	return DynamicProperty{key: key, template: binding.ParseTemplate(value)}
}

// Key returns the attribute key.
func (property DynamicProperty) Key() string { return property.key }

// Template returns the unevaluated template.
func (property DynamicProperty) Template() binding.Template { return property.template }

// Apply evaluates the template against record and sets the result.
// The value is applied even when paths are missing, so a stale value
// from a previous record is cleared. Missing paths are returned.
func (property DynamicProperty) Apply(builder Builder, record binding.Record) (missing []string, err error) {
	value, missing := property.template.Evaluate(record)
	return missing, builder.SetAttribute(property.key, value)
}

// ActionProperty is an event handler whose parameters are literals.
type ActionProperty struct {
	key    string
	raw    string
	action binding.Action
	err    error
}

// NewActionProperty parses value as an action descriptor. A malformed
// descriptor is kept and reported when the property is applied.
func NewActionProperty(key, value string) ActionProperty {
	action, err := binding.ParseAction(value)
	return ActionProperty{key: key, raw: value, action: action, err: err}
}

// Key returns the event key.
func (property ActionProperty) Key() string { return property.key }

// Action returns the parsed descriptor.
func (property ActionProperty) Action() binding.Action { return property.action }

// Apply installs a handler on builder that dispatches the action with
// its literal parameters. Failures while dispatching are reported to
// observer when the handler fires.
func (property ActionProperty) Apply(builder Builder, processor Processor, observer Observer) error {
	if property.err != nil {
		return property.err
	}
	name := property.action.Name
	params := property.action.Literal()
	key := property.key
	return builder.SetEventHandler(key, func() {
		dispatch(processor, observer, key, name, append([]string(nil), params...), builder)
	})
}

// DynamicActionProperty is an event handler whose parameters are
// templates over the bound record.
type DynamicActionProperty struct {
	key    string
	raw    string
	action binding.Action
	err    error
}

// NewDynamicActionProperty parses value as an action descriptor with
// template parameters.
func NewDynamicActionProperty(key, value string) DynamicActionProperty {
	action, err := binding.ParseAction(value)
	return DynamicActionProperty{key: key, raw: value, action: action, err: err}
}

// Key returns the event key.
func (property DynamicActionProperty) Key() string { return property.key }

// Action returns the parsed descriptor.
func (property DynamicActionProperty) Action() binding.Action { return property.action }

// Apply (re)installs the handler for record. The handler captures
// record and evaluates the parameter templates when it fires, so after
// a rebind only the most recently bound record is ever dispatched: the
// new handler replaces the previous one under the same key.
func (property DynamicActionProperty) Apply(builder Builder, processor Processor, record binding.Record, observer Observer) error {
	if property.err != nil {
		return property.err
	}
	action := property.action
	key := property.key
	return builder.SetEventHandler(key, func() {
		params, missing := action.Resolve(record)
		if len(missing) > 0 {
			Report(observer, Issue{Kind: IssueExpressionMiss, Key: key, Value: action.String(), Paths: missing})
		}
		dispatch(processor, observer, key, action.Name, params, builder)
	})
}

// dispatch delivers a fired action to processor. Errors and panics are
// reported and never reach the caller, which is the host's event loop.
func dispatch(processor Processor, observer Observer, key, name string, params []string, view Builder) {
	defer func() {
		if recovered := recover(); recovered != nil {
			Report(observer, Issue{
				Kind:  IssueDispatchFailure,
				Key:   key,
				Value: name,
				Err:   fmt.Errorf("action %q panicked: %v", name, recovered),
			})
		}
	}()

	if processor == nil {
		Report(observer, Issue{
			Kind:  IssueDispatchFailure,
			Key:   key,
			Value: name,
			Err:   fmt.Errorf("no action processor for %q", name),
		})
		return
	}
	if err := processor.Dispatch(name, params, view); err != nil {
		Report(observer, Issue{Kind: IssueDispatchFailure, Key: key, Value: name, Err: err})
	}
}
