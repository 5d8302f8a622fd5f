// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inflate

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/dynview/lib/binding"
	"github.com/bureau-foundation/dynview/lib/document"
	"github.com/bureau-foundation/dynview/lib/property"
	"github.com/bureau-foundation/dynview/lib/viewid"
)

// View is a host view: a property.Builder that can hold children.
type View interface {
	property.Builder

	// AddChild appends child to this view. Leaf views return an error.
	AddChild(child View) error
}

// Host creates views by document type name.
type Host interface {
	CreateView(viewType string) (View, error)
}

// CompiledNode is one document node after attribute classification.
type CompiledNode struct {
	Type       string
	Name       string
	Properties *property.NodeProperties
	Children   []*CompiledNode
}

// Tree is a compiled document.
type Tree struct {
	root     *CompiledNode
	registry *viewid.Registry
	count    int
}

// Compile classifies every attribute of the document rooted at root.
// Attributes are added in declaration order, nodes in depth-first
// document order. Classification problems are reported to observer
// (which may be nil); Compile itself cannot fail.
func Compile(root *document.Node, observer property.Observer) *Tree {
	tree := &Tree{registry: viewid.NewRegistry()}
	if root != nil {
		tree.root = tree.compile(root, observer)
	}
	return tree
}

func (tree *Tree) compile(node *document.Node, observer property.Observer) *CompiledNode {
	tree.count++
	compiled := &CompiledNode{
		Type:       node.Type,
		Properties: property.NewNodeProperties(tree.registry, observer),
	}
	if name, ok := node.Get(property.NameKey); ok {
		compiled.Name = name
	}
	for _, attribute := range node.Attributes {
		compiled.Properties.Add(attribute.Key, attribute.Value)
	}
	for _, child := range node.Children {
		if child == nil {
			continue
		}
		compiled.Children = append(compiled.Children, tree.compile(child, observer))
	}
	return compiled
}

// Root returns the compiled root, or nil for an empty tree.
func (tree *Tree) Root() *CompiledNode { return tree.root }

// Registry returns the name registry shared by the tree's nodes.
func (tree *Tree) Registry() *viewid.Registry { return tree.registry }

// Len returns the number of compiled nodes.
func (tree *Tree) Len() int { return tree.count }

// HasDynamic reports whether any node carries a dynamic property or
// dynamic action, i.e. whether Bind can change anything.
func (tree *Tree) HasDynamic() bool {
	found := false
	tree.walk(func(node *CompiledNode) bool {
		found = node.Properties.HasDynamic()
		return !found
	})
	return found
}

// walk visits nodes in document order until visit returns false.
func (tree *Tree) walk(visit func(*CompiledNode) bool) {
	var recurse func(*CompiledNode) bool
	recurse = func(node *CompiledNode) bool {
		if !visit(node) {
			return false
		}
		for _, child := range node.Children {
			if !recurse(child) {
				return false
			}
		}
		return true
	}
	if tree.root != nil {
		recurse(tree.root)
	}
}

// ErrEmptyTree is returned when inflating a tree with no root.
var ErrEmptyTree = errors.New("inflate: empty document")

// Inflate creates the view hierarchy through host, applying static
// properties and static actions to each view before it is attached to
// its parent. Actions fired by the views dispatch through processor.
//
// Attribute rejections are reported to the observer given to Compile
// and do not fail inflation. A view type the host cannot create, or a
// parent that refuses a child, fails the whole inflation.
func (tree *Tree) Inflate(host Host, processor property.Processor) (*Instance, error) {
	if tree.root == nil {
		return nil, ErrEmptyTree
	}
	instance := &Instance{
		tree:      tree,
		processor: processor,
		byName:    make(map[string]View),
	}
	root, err := instance.inflate(host, tree.root)
	if err != nil {
		return nil, err
	}
	instance.root = root
	return instance, nil
}

// Instance is one inflated copy of a Tree.
type Instance struct {
	tree      *Tree
	processor property.Processor
	root      View
	nodes     []*CompiledNode
	views     []View
	byName    map[string]View
}

func (instance *Instance) inflate(host Host, node *CompiledNode) (View, error) {
	view, err := host.CreateView(node.Type)
	if err != nil {
		return nil, fmt.Errorf("creating %q view: %w", node.Type, err)
	}
	node.Properties.ApplyStatic(view)
	node.Properties.ApplyActions(view, instance.processor)

	instance.nodes = append(instance.nodes, node)
	instance.views = append(instance.views, view)
	if node.Name != "" {
		if _, taken := instance.byName[node.Name]; !taken {
			instance.byName[node.Name] = view
		}
	}

	for _, child := range node.Children {
		childView, err := instance.inflate(host, child)
		if err != nil {
			return nil, err
		}
		if err := view.AddChild(childView); err != nil {
			return nil, fmt.Errorf("attaching %q to %q: %w", child.Type, node.Type, err)
		}
	}
	return view, nil
}

// Root returns the root view.
func (instance *Instance) Root() View { return instance.root }

// Tree returns the tree this instance was inflated from.
func (instance *Instance) Tree() *Tree { return instance.tree }

// Bind applies record to every node that has dynamic properties or
// dynamic actions. Static properties are never re-applied. A nil
// record binds every placeholder as missing.
func (instance *Instance) Bind(record binding.Record) {
	for index, node := range instance.nodes {
		if !node.Properties.HasDynamic() {
			continue
		}
		node.Properties.ApplyDynamic(instance.views[index], instance.processor, record)
	}
}

// View returns the first view, in document order, declared with the
// given name.
func (instance *Instance) View(name string) (View, bool) {
	view, ok := instance.byName[name]
	return view, ok
}

// Views returns every view in document order.
func (instance *Instance) Views() []View {
	return append([]View(nil), instance.views...)
}
