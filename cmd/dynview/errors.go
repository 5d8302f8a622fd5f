// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
)

// errorCategory classifies command errors so scripts can tell bad
// input from missing files from bugs by exit code alone.
type errorCategory string

const (
	// categoryValidation: bad flags, arguments, or document content.
	categoryValidation errorCategory = "validation"

	// categoryNotFound: a named file, view, or handler does not exist.
	categoryNotFound errorCategory = "not_found"

	// categoryInternal: I/O failures and anything unexpected.
	categoryInternal errorCategory = "internal"
)

// commandError is a categorized error returned by commands.
type commandError struct {
	Category errorCategory
	Err      error
}

func (e *commandError) Error() string { return e.Err.Error() }

func (e *commandError) Unwrap() error { return e.Err }

// ExitCode maps the category to the process exit status.
func (e *commandError) ExitCode() int {
	switch e.Category {
	case categoryValidation:
		return 2
	case categoryNotFound:
		return 3
	default:
		return 1
	}
}

func validation(format string, args ...any) *commandError {
	return &commandError{Category: categoryValidation, Err: fmt.Errorf(format, args...)}
}

func notFound(format string, args ...any) *commandError {
	return &commandError{Category: categoryNotFound, Err: fmt.Errorf(format, args...)}
}

func internal(format string, args ...any) *commandError {
	return &commandError{Category: categoryInternal, Err: fmt.Errorf(format, args...)}
}

// exitCode returns the exit status for err: the category's code for a
// commandError anywhere in the chain, otherwise 1.
func exitCode(err error) int {
	var categorized *commandError
	if errors.As(err, &categorized) {
		return categorized.ExitCode()
	}
	return 1
}
