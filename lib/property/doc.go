// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package property classifies view-document attributes and binds them
// to host views.
//
// Every attribute of a document node is added to the node's
// [NodeProperties], which sorts it into exactly one of four kinds by
// lexical inspection (see [Classify]):
//
//   - dynamic action: an event key whose descriptor references the data
//     record ("onClick" = "open(${row.id})")
//   - action: an event key with a data-independent descriptor
//     ("onClick" = "submit()")
//   - dynamic: any other value containing a ${path} placeholder
//   - static: everything else, including the reserved name attribute
//     and @name references
//
// Static values are resolved once while the document is compiled: name
// becomes the id attribute holding the id allocated for the name, and
// @name becomes the id of a name declared earlier in the document.
// References to names that are not registered yet are dropped.
//
// Binding happens in three passes driven by the inflater:
//
//  1. [NodeProperties.ApplyStatic] once per view instantiation,
//  2. [NodeProperties.ApplyActions] once per view instantiation,
//  3. [NodeProperties.ApplyDynamic] every time a data record is bound.
//     All dynamic properties are applied before any dynamic action
//     handler is installed.
//
// The host view is reached only through the [Builder] interface and
// actions are delivered through the [Processor] interface.
//
// Nothing in the bind passes returns an error. Every failure (builder
// rejects, bad descriptors, missing data, failed dispatch) is recovered
// locally and reported as an [Issue] to the node's [Observer]. The
// passes always run to completion, since they execute inside the host's
// UI event loop.
package property
