// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package property

import (
	"fmt"
)

// recordingBuilder is a Builder that remembers everything applied to
// it, in order.
type recordingBuilder struct {
	attributes map[string]string
	id         int
	handlers   map[string]func()
	// installs counts SetEventHandler calls per event.
	installs map[string]int
	// calls logs every call as "attr key=value", "id N", "handler key".
	calls []string
	// reject makes SetAttribute fail for these keys.
	reject map[string]bool
}

func newRecordingBuilder() *recordingBuilder {
	return &recordingBuilder{
		attributes: make(map[string]string),
		handlers:   make(map[string]func()),
		installs:   make(map[string]int),
		reject:     make(map[string]bool),
	}
}

func (builder *recordingBuilder) SetAttribute(key, value string) error {
	builder.calls = append(builder.calls, fmt.Sprintf("attr %s=%s", key, value))
	if builder.reject[key] {
		return fmt.Errorf("attribute %q rejected", key)
	}
	builder.attributes[key] = value
	return nil
}

func (builder *recordingBuilder) SetID(id int) error {
	builder.calls = append(builder.calls, fmt.Sprintf("id %d", id))
	builder.id = id
	return nil
}

func (builder *recordingBuilder) SetEventHandler(event string, handler func()) error {
	builder.calls = append(builder.calls, "handler "+event)
	builder.handlers[event] = handler
	builder.installs[event]++
	return nil
}

// fire invokes the handler installed under event.
func (builder *recordingBuilder) fire(event string) bool {
	handler, exists := builder.handlers[event]
	if !exists {
		return false
	}
	handler()
	return true
}

// dispatched is one Processor.Dispatch call.
type dispatched struct {
	Action string
	Params []string
	View   Builder
}

type recordingProcessor struct {
	calls []dispatched
	err   error
}

func (processor *recordingProcessor) Dispatch(action string, params []string, view Builder) error {
	processor.calls = append(processor.calls, dispatched{Action: action, Params: params, View: view})
	return processor.err
}

// issueRecorder collects issues.
type issueRecorder struct {
	issues []Issue
}

func (recorder *issueRecorder) Observe(issue Issue) {
	recorder.issues = append(recorder.issues, issue)
}

func (recorder *issueRecorder) kinds() []IssueKind {
	var kinds []IssueKind
	for _, issue := range recorder.issues {
		kinds = append(kinds, issue.Kind)
	}
	return kinds
}
