// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package action is a named-handler registry that implements
// property.Processor. Event handlers installed by the binding engine
// dispatch through it by action name.
package action
