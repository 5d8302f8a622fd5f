// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package inflate turns a parsed view document into live views.
//
// Inflation is two-phase. [Compile] walks the document once, in
// document order, classifying every attribute into a
// [property.NodeProperties] bag. All nodes of one document share a
// single [viewid.Registry], so a node may reference (with "@name") any
// node named earlier in document order. Compilation touches no views
// and may run on a worker goroutine.
//
// [Tree.Inflate] then creates one view per node through a [Host],
// applies static properties and static actions, and attaches children
// to parents. The resulting [Instance] is rebound to fresh data with
// [Instance.Bind], which re-applies only the dynamic properties and
// dynamic actions. A Tree can be inflated any number of times; list
// hosts inflate one Instance per visible row and rebind them as rows
// scroll.
package inflate
