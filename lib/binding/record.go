// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package binding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"
)

// Record is a data record that templates are evaluated against.
// Lookup returns the string form of the value at path, and false when
// the record has no value there. Records are read-only for the
// duration of a bind.
type Record interface {
	Lookup(path string) (string, bool)
}

// MapRecord is a flat record. Each key is a complete path.
type MapRecord map[string]string

// Lookup returns the value stored under path.
func (record MapRecord) Lookup(path string) (string, bool) {
	value, exists := record[path]
	return value, exists
}

// JSONRecord is a structured record decoded from a JSON object.
type JSONRecord map[string]any

// ParseJSONRecord decodes a JSON object (comments and trailing commas
// allowed) into a JSONRecord. Numbers are kept as json.Number so that
// they format exactly as written.
func ParseJSONRecord(data []byte) (JSONRecord, error) {
	decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	decoder.UseNumber()

	var record map[string]any
	if err := decoder.Decode(&record); err != nil {
		return nil, fmt.Errorf("parsing data record: %w", err)
	}
	return JSONRecord(record), nil
}

// Lookup resolves path against the record. A key equal to the whole
// path wins over traversal, so records that store "user.name" as a
// flat key behave like a MapRecord. Otherwise path is split on "." and
// each segment selects an object member or an array index.
//
// JSON null resolves to the empty string and counts as present.
func (record JSONRecord) Lookup(path string) (string, bool) {
	if record == nil {
		return "", false
	}
	if value, exists := record[path]; exists {
		return FormatValue(value), true
	}

	var current any = map[string]any(record)
	for _, segment := range strings.Split(path, ".") {
		switch typed := current.(type) {
		case map[string]any:
			value, exists := typed[segment]
			if !exists {
				return "", false
			}
			current = value
		case JSONRecord:
			value, exists := typed[segment]
			if !exists {
				return "", false
			}
			current = value
		case []any:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(typed) {
				return "", false
			}
			current = typed[index]
		default:
			return "", false
		}
	}
	return FormatValue(current), true
}

// Value returns the raw decoded value stored under a top-level key.
func (record JSONRecord) Value(key string) (any, bool) {
	if record == nil {
		return nil, false
	}
	value, exists := record[key]
	return value, exists
}

// FormatValue converts a decoded JSON value to the string applied to a
// view. Scalars use their natural text form; objects and arrays are
// re-encoded as compact JSON.
func FormatValue(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case json.Number:
		return typed.String()
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(typed)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", typed)
	default:
		encoded, err := json.Marshal(typed)
		if err != nil {
			return fmt.Sprintf("%v", typed)
		}
		return string(encoded)
	}
}

// Layers is a record that consults each layer in order and returns the
// first hit. nil layers are skipped.
type Layers []Record

// Lookup returns the value from the first layer that has path.
func (layers Layers) Lookup(path string) (string, bool) {
	for _, layer := range layers {
		if layer == nil {
			continue
		}
		if value, ok := layer.Lookup(path); ok {
			return value, true
		}
	}
	return "", false
}
