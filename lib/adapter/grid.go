// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/dynview/lib/binding"
	"github.com/bureau-foundation/dynview/lib/inflate"
	"github.com/bureau-foundation/dynview/lib/property"
)

// SpanKey is the row field that sets how many grid columns a row
// occupies.
const SpanKey = "colspan"

// ParseDataSource parses a JSON (comments and trailing commas allowed)
// array of rows. Numbers are kept as json.Number so they bind exactly
// as written.
func ParseDataSource(data []byte) ([]any, error) {
	decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	decoder.UseNumber()
	var rows []any
	if err := decoder.Decode(&rows); err != nil {
		return nil, fmt.Errorf("parsing data source: %w", err)
	}
	if decoder.More() {
		return nil, errors.New("parsing data source: trailing data after the row array")
	}
	return rows, nil
}

// GridAdapter binds rows to holders inflated from one compiled tree.
// Like the host views it serves, it is used from the UI goroutine.
type GridAdapter struct {
	observer  property.Observer
	tree      *inflate.Tree
	host      inflate.Host
	processor property.Processor
	rows      []any
	onChange  func()
}

// NewGridAdapter creates an adapter with no inflater and no rows.
// Inflation failures are reported to observer, which may be nil.
func NewGridAdapter(observer property.Observer) *GridAdapter {
	return &GridAdapter{observer: observer}
}

// SetInflater sets the document holders are inflated from, the host
// that creates their views, and the processor their actions dispatch
// to.
func (adapter *GridAdapter) SetInflater(tree *inflate.Tree, host inflate.Host, processor property.Processor) {
	adapter.tree = tree
	adapter.host = host
	adapter.processor = processor
}

// SetDataSource replaces the rows and notifies the change listener.
func (adapter *GridAdapter) SetDataSource(rows []any) {
	adapter.rows = rows
	if adapter.onChange != nil {
		adapter.onChange()
	}
}

// Rows returns the current data source.
func (adapter *GridAdapter) Rows() []any {
	return adapter.rows
}

// OnChange registers a function called after every SetDataSource.
func (adapter *GridAdapter) OnChange(listener func()) {
	adapter.onChange = listener
}

// ItemCount returns the number of rows, or 0 when no inflater is set.
func (adapter *GridAdapter) ItemCount() int {
	if adapter.tree == nil || adapter.host == nil {
		return 0
	}
	return len(adapter.rows)
}

// Item returns the record for the row at position. A row that is not
// a JSON object, or a position out of range, yields a nil record.
func (adapter *GridAdapter) Item(position int) binding.Record {
	object := adapter.object(position)
	if object == nil {
		return nil
	}
	return binding.JSONRecord(object)
}

func (adapter *GridAdapter) object(position int) map[string]any {
	if position < 0 || position >= len(adapter.rows) {
		return nil
	}
	switch row := adapter.rows[position].(type) {
	case map[string]any:
		return row
	case binding.JSONRecord:
		return row
	default:
		return nil
	}
}

// SpanSize returns the number of columns the row at position spans.
// colspan may be a number or a numeric string; fractions truncate.
// Missing, malformed, or values below 1 give 1.
func (adapter *GridAdapter) SpanSize(position int) int {
	object := adapter.object(position)
	if object == nil {
		return 1
	}
	span := 1
	switch value := object[SpanKey].(type) {
	case json.Number:
		span = truncate(value.String())
	case string:
		span = truncate(strings.TrimSpace(value))
	case float64:
		span = int(value)
	case int:
		span = value
	}
	return max(span, 1)
}

func truncate(number string) int {
	value, err := strconv.ParseFloat(number, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 1
	}
	return int(value)
}

// Holder is one inflated cell.
type Holder struct {
	instance *inflate.Instance
	position int
}

// Instance returns the inflated views.
func (holder *Holder) Instance() *inflate.Instance { return holder.instance }

// Root returns the holder's root view.
func (holder *Holder) Root() inflate.View { return holder.instance.Root() }

// Position returns the row last bound, or -1 before the first bind.
func (holder *Holder) Position() int { return holder.position }

// CreateHolder inflates a new holder. Failures are reported as
// IssueInflateFailure and yield nil; the host shows an empty cell.
func (adapter *GridAdapter) CreateHolder() *Holder {
	if adapter.tree == nil || adapter.host == nil {
		property.Report(adapter.observer, property.Issue{
			Kind: property.IssueInflateFailure,
			Err:  errors.New("no inflater set"),
		})
		return nil
	}
	instance, err := adapter.tree.Inflate(adapter.host, adapter.processor)
	if err != nil {
		property.Report(adapter.observer, property.Issue{Kind: property.IssueInflateFailure, Err: err})
		return nil
	}
	return &Holder{instance: instance, position: -1}
}

// BindHolder binds the row at position to holder. A nil holder is
// ignored.
func (adapter *GridAdapter) BindHolder(holder *Holder, position int) {
	if holder == nil {
		return
	}
	holder.position = position
	holder.instance.Bind(adapter.Item(position))
}
