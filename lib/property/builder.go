// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package property

// Builder is the host-toolkit side of one view. The binding passes
// call it to apply resolved values and to install event handlers.
//
// A non-nil error means the view rejected the value. The binding pass
// reports it and continues with the remaining properties.
type Builder interface {
	// SetAttribute applies a string-valued attribute.
	SetAttribute(key, value string) error

	// SetID assigns the view's stable integer id.
	SetID(id int) error

	// SetEventHandler installs handler under event, replacing any
	// handler previously installed under the same event. Replacement
	// must be atomic: once SetEventHandler returns, only the new
	// handler can fire.
	SetEventHandler(event string, handler func()) error
}

// Processor dispatches actions fired by installed event handlers. It
// is called synchronously on the goroutine that fires the event.
type Processor interface {
	Dispatch(action string, params []string, view Builder) error
}

// ProcessorFunc adapts a function to the Processor interface.
type ProcessorFunc func(action string, params []string, view Builder) error

// Dispatch calls function(action, params, view).
func (function ProcessorFunc) Dispatch(action string, params []string, view Builder) error {
	return function(action, params, view)
}
