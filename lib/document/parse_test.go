// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const profileXML = `<?xml version="1.0" encoding="utf-8"?>
<!-- profile card -->
<LinearLayout xmlns:app="http://example.com/app" orientation="vertical" padding="1">
  <TextView name="title" text="Hello ${user.name}" app:bold="true"/>
  <Button below="@title" text="Open" onClick="open(${user.id})">ignored text</Button>
</LinearLayout>
`

const profileJSONC = `{
  // profile card
  "type": "LinearLayout",
  "attributes": {"orientation": "vertical", "padding": 1},
  "children": [
    {"type": "TextView", "attributes": {"name": "title", "text": "Hello ${user.name}", "bold": true}},
    {"type": "Button", "attributes": {"below": "@title", "text": "Open", "onClick": "open(${user.id})"},},
  ],
}`

const profileYAML = `# profile card
type: LinearLayout
attributes:
  orientation: vertical
  padding: 1
children:
  - type: TextView
    attributes:
      name: title
      text: Hello ${user.name}
      bold: true
  - type: Button
    attributes: {below: "@title", text: Open, onClick: "open(${user.id})"}
`

func profileTree() *Node {
	return &Node{
		Type:       "LinearLayout",
		Attributes: Attributes{{"orientation", "vertical"}, {"padding", "1"}},
		Children: []*Node{
			{
				Type:       "TextView",
				Attributes: Attributes{{"name", "title"}, {"text", "Hello ${user.name}"}, {"bold", "true"}},
			},
			{
				Type:       "Button",
				Attributes: Attributes{{"below", "@title"}, {"text", "Open"}, {"onClick", "open(${user.id})"}},
			},
		},
	}
}

func TestParseFormatsAgree(t *testing.T) {
	sources := map[Format]string{
		FormatXML:  profileXML,
		FormatJSON: profileJSONC,
		FormatYAML: profileYAML,
	}
	for format, source := range sources {
		t.Run(string(format), func(t *testing.T) {
			root, err := Parse([]byte(source), format)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if diff := cmp.Diff(profileTree(), root); diff != "" {
				t.Errorf("tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseAttributeOrderPreserved(t *testing.T) {
	source := `{"type": "View", "attributes": {"z": "1", "a": "2", "m": "3", "b": "4"}}`
	root, err := Parse([]byte(source), FormatJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var keys []string
	for _, attribute := range root.Attributes {
		keys = append(keys, attribute.Key)
	}
	if diff := cmp.Diff([]string{"z", "a", "m", "b"}, keys); diff != "" {
		t.Errorf("key order mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		source string
		want   string
	}{
		{"xml multiple roots", FormatXML, `<A/><B/>`, "multiple root elements"},
		{"xml empty", FormatXML, `<!-- nothing -->`, "empty document"},
		{"xml unclosed", FormatXML, `<A><B></A>`, "parsing xml document"},
		{"json missing type", FormatJSON, `{"attributes": {"a": "b"}}`, "has no type"},
		{"json nested attribute", FormatJSON, `{"type": "A", "attributes": {"a": {"b": 1}}}`, "must be a scalar"},
		{"json attributes array", FormatJSON, `{"type": "A", "attributes": ["a"]}`, "must be an object"},
		{"json unknown field", FormatJSON, `{"type": "A", "kids": []}`, "unknown field"},
		{"json null child", FormatJSON, `{"type": "A", "children": [null]}`, "null child"},
		{"yaml empty", FormatYAML, ``, "empty document"},
		{"yaml attributes list", FormatYAML, "type: A\nattributes: [a]\n", "must be a mapping"},
		{"yaml nested attribute", FormatYAML, "type: A\nattributes:\n  a: [1]\n", "must be a scalar"},
		{"unknown format", Format("toml"), `a = 1`, "unknown document format"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse([]byte(test.source), test.format)
			if err == nil {
				t.Fatal("Parse succeeded")
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("error %q does not mention %q", err, test.want)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"row.xml":          FormatXML,
		"layouts/row.json": FormatJSON,
		"row.jsonc":        FormatJSON,
		"row.yaml":         FormatYAML,
		"row.YML":          FormatYAML,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		if err != nil || got != want {
			t.Errorf("FormatFromPath(%q) = %q, %v; want %q", path, got, err, want)
		}
	}
	for _, path := range []string{"row", "row.toml"} {
		if _, err := FormatFromPath(path); err == nil {
			t.Errorf("FormatFromPath(%q) succeeded", path)
		}
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.xml")
	if err := os.WriteFile(path, []byte(profileXML), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	root, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if Count(root) != 3 {
		t.Errorf("Count = %d, want 3", Count(root))
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.xml")); err == nil {
		t.Error("ReadFile of a missing file succeeded")
	}
}

func TestAttributesMarshalJSONRoundTrip(t *testing.T) {
	original := profileTree()
	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), `"attributes":{"orientation":"vertical","padding":"1"}`) {
		t.Errorf("attributes not encoded as an ordered object: %s", data)
	}
	decoded, err := Parse(data, FormatJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if diff := cmp.Diff(original, decoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkOrderAndGet(t *testing.T) {
	root := profileTree()
	var visited []string
	err := Walk(root, func(node *Node, depth int) error {
		visited = append(visited, strings.Repeat(">", depth)+node.Type)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if diff := cmp.Diff([]string{"LinearLayout", ">TextView", ">Button"}, visited); diff != "" {
		t.Errorf("walk order mismatch (-want +got):\n%s", diff)
	}

	if value, ok := root.Children[0].Get("name"); !ok || value != "title" {
		t.Errorf("Get(name) = %q, %v", value, ok)
	}
	if _, ok := root.Get("text"); ok {
		t.Error("Get found an undeclared attribute")
	}
}
