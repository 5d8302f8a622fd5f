// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package binding

import (
	"testing"
)

func TestMapRecordLookup(t *testing.T) {
	record := MapRecord{"user.name": "Ada"}
	if value, ok := record.Lookup("user.name"); !ok || value != "Ada" {
		t.Errorf("Lookup(user.name) = %q, %v", value, ok)
	}
	if _, ok := record.Lookup("user"); ok {
		t.Error("MapRecord traversed a path prefix")
	}

	var empty MapRecord
	if _, ok := empty.Lookup("anything"); ok {
		t.Error("nil MapRecord found a value")
	}
}

func TestJSONRecordLookup(t *testing.T) {
	record, err := ParseJSONRecord([]byte(`{
		// comments are allowed
		"user": {"name": "Ada", "age": 36, "admin": true, "manager": null},
		"row.id": "flat",
		"row": {"id": "nested"},
		"price": 1.50,
		"tags": ["a", "b"],
		"items": [{"title": "first"}, {"title": "second"}],
	}`))
	if err != nil {
		t.Fatalf("ParseJSONRecord: %v", err)
	}

	tests := []struct {
		path  string
		want  string
		found bool
	}{
		{"user.name", "Ada", true},
		{"user.age", "36", true},
		{"user.admin", "true", true},
		{"user.manager", "", true},
		{"row.id", "flat", true},
		{"price", "1.50", true},
		{"tags", `["a","b"]`, true},
		{"tags.1", "b", true},
		{"items.1.title", "second", true},
		{"items.2.title", "", false},
		{"items.x", "", false},
		{"user.name.first", "", false},
		{"user.email", "", false},
		{"missing", "", false},
	}
	for _, test := range tests {
		value, found := record.Lookup(test.path)
		if value != test.want || found != test.found {
			t.Errorf("Lookup(%q) = %q, %v; want %q, %v", test.path, value, found, test.want, test.found)
		}
	}
}

func TestJSONRecordNil(t *testing.T) {
	var record JSONRecord
	if _, found := record.Lookup("a"); found {
		t.Error("nil JSONRecord found a value")
	}
	if _, found := record.Value("a"); found {
		t.Error("nil JSONRecord Value found a value")
	}
}

func TestParseJSONRecordRejectsNonObject(t *testing.T) {
	if _, err := ParseJSONRecord([]byte(`[1, 2]`)); err == nil {
		t.Fatal("ParseJSONRecord accepted an array")
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{nil, ""},
		{"text", "text"},
		{float64(7), "7"},
		{2.5, "2.5"},
		{true, "true"},
		{42, "42"},
		{map[string]any{"a": "b"}, `{"a":"b"}`},
	}
	for _, test := range tests {
		if got := FormatValue(test.value); got != test.want {
			t.Errorf("FormatValue(%#v) = %q, want %q", test.value, got, test.want)
		}
	}
}

func TestLayers(t *testing.T) {
	layers := Layers{
		MapRecord{"user.name": "override"},
		nil,
		JSONRecord{"user": map[string]any{"name": "Ada", "age": "36"}},
	}
	if value, _ := layers.Lookup("user.name"); value != "override" {
		t.Errorf("user.name = %q, want override", value)
	}
	if value, _ := layers.Lookup("user.age"); value != "36" {
		t.Errorf("user.age = %q, want 36", value)
	}
	if _, ok := layers.Lookup("user.id"); ok {
		t.Error("user.id found in no layer")
	}
}
