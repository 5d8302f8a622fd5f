// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package property

import (
	"context"
	"log/slog"
)

// IssueKind classifies a locally recovered binding failure.
type IssueKind int

const (
	// IssueEmptyAttribute: an attribute with an empty key or value was
	// ignored.
	IssueEmptyAttribute IssueKind = iota + 1

	// IssueUnresolvedReference: an @name value named a node that was
	// not registered yet. The attribute was dropped.
	IssueUnresolvedReference

	// IssueExpressionMiss: a ${path} had no value in the bound record
	// and was substituted with the empty string.
	IssueExpressionMiss

	// IssueBuilderReject: the view rejected an attribute, id, or
	// event handler.
	IssueBuilderReject

	// IssueBadAction: an event attribute held a malformed action
	// descriptor. No handler was installed.
	IssueBadAction

	// IssueDispatchFailure: the processor failed (or panicked) while
	// dispatching a fired action.
	IssueDispatchFailure

	// IssueInflateFailure: a list or grid row could not be inflated and
	// was skipped.
	IssueInflateFailure
)

// String returns the kind's name as used in log output.
func (kind IssueKind) String() string {
	switch kind {
	case IssueEmptyAttribute:
		return "empty_attribute"
	case IssueUnresolvedReference:
		return "unresolved_reference"
	case IssueExpressionMiss:
		return "expression_miss"
	case IssueBuilderReject:
		return "builder_reject"
	case IssueBadAction:
		return "bad_action"
	case IssueDispatchFailure:
		return "dispatch_failure"
	case IssueInflateFailure:
		return "inflate_failure"
	default:
		return "unknown"
	}
}

// Silent reports whether the kind is part of normal operation (silently
// tolerated by the document language) rather than a fault.
func (kind IssueKind) Silent() bool {
	switch kind {
	case IssueEmptyAttribute, IssueUnresolvedReference, IssueExpressionMiss:
		return true
	default:
		return false
	}
}

// Issue describes one recovered failure.
type Issue struct {
	Kind IssueKind

	// Key is the attribute key involved, if any.
	Key string

	// Value is the raw attribute value, or the action name for
	// dispatch failures.
	Value string

	// Paths lists the unresolved paths of an IssueExpressionMiss.
	Paths []string

	// Err is the underlying error, if any.
	Err error
}

// Observer receives issues. Observe is called synchronously from the
// binding pass or the firing event handler and must not block.
type Observer interface {
	Observe(issue Issue)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(issue Issue)

// Observe calls function(issue).
func (function ObserverFunc) Observe(issue Issue) {
	function(issue)
}

// LogObserver writes issues to a structured logger. Silent kinds are
// logged at debug level and faults at warn level.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates a LogObserver. A nil logger uses
// slog.Default().
func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{logger: logger}
}

// Observe logs issue.
func (observer *LogObserver) Observe(issue Issue) {
	level := slog.LevelWarn
	if issue.Kind.Silent() {
		level = slog.LevelDebug
	}
	if !observer.logger.Enabled(context.Background(), level) {
		return
	}

	attrs := []slog.Attr{slog.String("kind", issue.Kind.String())}
	if issue.Key != "" {
		attrs = append(attrs, slog.String("key", issue.Key))
	}
	if issue.Value != "" {
		attrs = append(attrs, slog.String("value", issue.Value))
	}
	if len(issue.Paths) > 0 {
		attrs = append(attrs, slog.Any("paths", issue.Paths))
	}
	if issue.Err != nil {
		attrs = append(attrs, slog.String("error", issue.Err.Error()))
	}
	observer.logger.LogAttrs(context.Background(), level, "view binding issue", attrs...)
}

// Report delivers issue to observer when observer is non-nil.
func Report(observer Observer, issue Issue) {
	if observer != nil {
		observer.Observe(issue)
	}
}
