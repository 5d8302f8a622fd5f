// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package document parses view documents into a tree of [Node]s.
//
// A document is a tree of typed nodes, each with an ordered list of
// string attributes. Attribute order and node order are significant:
// a node may only reference (@name) names declared earlier in
// depth-first document order, so parsers must preserve both.
//
// Three source formats describe the same tree:
//
//	<!-- XML: attributes in source order -->
//	<LinearLayout orientation="vertical">
//	  <TextView name="title" text="${user.name}"/>
//	  <Button below="@title" onClick="open(${user.id})"/>
//	</LinearLayout>
//
//	// JSONC: comments and trailing commas allowed
//	{"type": "LinearLayout", "attributes": {"orientation": "vertical"},
//	 "children": [{"type": "TextView", "attributes": {"name": "title"}}]}
//
//	# YAML
//	type: LinearLayout
//	attributes:
//	  orientation: vertical
//	children:
//	  - type: TextView
//	    attributes: {name: title}
//
// JSON and YAML attribute objects keep their member order. Non-string
// scalar attribute values (numbers, booleans) are taken as written.
//
// Parsing only builds the tree; classification and binding of the
// attributes happen in lib/property and lib/inflate.
package document
