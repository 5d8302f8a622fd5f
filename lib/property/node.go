// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package property

import (
	"errors"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/bureau-foundation/dynview/lib/binding"
	"github.com/bureau-foundation/dynview/lib/viewid"
)

// NodeProperties is the property bag of one document node. It holds
// one map per kind; a key is present in at most one of them.
//
// Add is called while the document is compiled, possibly on a worker
// goroutine. The Apply methods are called afterwards on the UI
// goroutine. NodeProperties is not safe for concurrent mutation, and
// compilation must finish before the first Apply.
type NodeProperties struct {
	registry *viewid.Registry
	observer Observer

	statics        map[string]StaticProperty
	dynamics       map[string]DynamicProperty
	actions        map[string]ActionProperty
	dynamicActions map[string]DynamicActionProperty
}

// NewNodeProperties creates an empty bag that resolves names and
// references through registry, which is shared by every node of the
// document. Issues go to observer, which may be nil.
func NewNodeProperties(registry *viewid.Registry, observer Observer) *NodeProperties {
	if registry == nil {
		registry = viewid.NewRegistry()
	}
	return &NodeProperties{
		registry:       registry,
		observer:       observer,
		statics:        make(map[string]StaticProperty),
		dynamics:       make(map[string]DynamicProperty),
		actions:        make(map[string]ActionProperty),
		dynamicActions: make(map[string]DynamicActionProperty),
	}
}

// Add classifies the attribute and stores it. Empty keys and values
// are ignored. Re-adding a key replaces its previous entry, whatever
// the previous kind was. An attribute that is dropped (an unresolved
// reference) leaves any previous entry in place.
func (node *NodeProperties) Add(key, value string) {
	if key == "" || value == "" {
		Report(node.observer, Issue{Kind: IssueEmptyAttribute, Key: key, Value: value})
		return
	}

	switch Classify(key, value) {
	case KindDynamicAction:
		node.remove(key)
		node.dynamicActions[key] = NewDynamicActionProperty(key, value)
	case KindAction:
		node.remove(key)
		node.actions[key] = NewActionProperty(key, value)
	case KindDynamic:
		node.remove(key)
		node.dynamics[key] = NewDynamicProperty(key, value)
	default:
		node.addStatic(key, value)
	}
}

// addStatic applies the name and reference rewrites.
func (node *NodeProperties) addStatic(key, value string) {
	switch {
	case key == NameKey:
		node.putStatic(IDKey, strconv.Itoa(node.registry.Allocate(value)))
	case strings.HasPrefix(value, ReferencePrefix):
		target := strings.TrimPrefix(value, ReferencePrefix)
		if !node.registry.Contains(target) {
			Report(node.observer, Issue{Kind: IssueUnresolvedReference, Key: key, Value: value})
			return
		}
		node.putStatic(key, strconv.Itoa(node.registry.Allocate(target)))
	default:
		node.putStatic(key, value)
	}
}

func (node *NodeProperties) putStatic(key, value string) {
	node.remove(key)
	node.statics[key] = NewStaticProperty(key, value)
}

func (node *NodeProperties) remove(key string) {
	delete(node.statics, key)
	delete(node.dynamics, key)
	delete(node.actions, key)
	delete(node.dynamicActions, key)
}

// Get returns the value of a static property. Dynamic properties and
// actions are not visible through Get.
func (node *NodeProperties) Get(key string) (string, bool) {
	property, exists := node.statics[key]
	if !exists {
		return "", false
	}
	return property.Value(), true
}

// Kind returns the kind under which key is stored.
func (node *NodeProperties) Kind(key string) (Kind, bool) {
	if _, exists := node.statics[key]; exists {
		return KindStatic, true
	}
	if _, exists := node.dynamics[key]; exists {
		return KindDynamic, true
	}
	if _, exists := node.actions[key]; exists {
		return KindAction, true
	}
	if _, exists := node.dynamicActions[key]; exists {
		return KindDynamicAction, true
	}
	return 0, false
}

// Keys returns the sorted keys stored under kind.
func (node *NodeProperties) Keys(kind Kind) []string {
	switch kind {
	case KindStatic:
		return sortedKeys(node.statics)
	case KindDynamic:
		return sortedKeys(node.dynamics)
	case KindAction:
		return sortedKeys(node.actions)
	case KindDynamicAction:
		return sortedKeys(node.dynamicActions)
	default:
		return nil
	}
}

// Len returns the total number of stored properties.
func (node *NodeProperties) Len() int {
	return len(node.statics) + len(node.dynamics) + len(node.actions) + len(node.dynamicActions)
}

// HasDynamic reports whether the node has anything to do on a data
// bind.
func (node *NodeProperties) HasDynamic() bool {
	return len(node.dynamics) > 0 || len(node.dynamicActions) > 0
}

// ApplyStatic applies every static property to builder.
func (node *NodeProperties) ApplyStatic(builder Builder) {
	for _, key := range sortedKeys(node.statics) {
		property := node.statics[key]
		if err := property.Apply(builder); err != nil {
			Report(node.observer, Issue{Kind: IssueBuilderReject, Key: key, Value: property.Value(), Err: err})
		}
	}
}

// ApplyActions installs every static action handler on builder.
func (node *NodeProperties) ApplyActions(builder Builder, processor Processor) {
	for _, key := range sortedKeys(node.actions) {
		property := node.actions[key]
		if err := property.Apply(builder, processor, node.observer); err != nil {
			node.reportActionError(key, property.raw, err)
		}
	}
}

// ApplyDynamic binds record: every dynamic property is evaluated and
// applied, then every dynamic action handler is reinstalled. Applying
// the same record twice leaves the view in the same state as applying
// it once.
func (node *NodeProperties) ApplyDynamic(builder Builder, processor Processor, record binding.Record) {
	for _, key := range sortedKeys(node.dynamics) {
		property := node.dynamics[key]
		missing, err := property.Apply(builder, record)
		if len(missing) > 0 {
			Report(node.observer, Issue{Kind: IssueExpressionMiss, Key: key, Value: property.template.Raw(), Paths: missing})
		}
		if err != nil {
			Report(node.observer, Issue{Kind: IssueBuilderReject, Key: key, Value: property.template.Raw(), Err: err})
		}
	}

	for _, key := range sortedKeys(node.dynamicActions) {
		property := node.dynamicActions[key]
		if err := property.Apply(builder, processor, record, node.observer); err != nil {
			node.reportActionError(key, property.raw, err)
		}
	}
}

func (node *NodeProperties) reportActionError(key, raw string, err error) {
	kind := IssueBuilderReject
	if errors.Is(err, binding.ErrMalformedAction) {
		kind = IssueBadAction
	}
	Report(node.observer, Issue{Kind: kind, Key: key, Value: raw, Err: err})
}

// sortedKeys fixes the application order so that binding is
// deterministic. No property may depend on it.
func sortedKeys[V any](properties map[string]V) []string {
	return slices.Sorted(maps.Keys(properties))
}
