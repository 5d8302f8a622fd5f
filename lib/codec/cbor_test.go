// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"
)

// cacheHeader uses cbor tags, the convention for cache-private types.
type cacheHeader struct {
	Format  string `cbor:"format"`
	Nodes   int    `cbor:"nodes"`
	Comment string `cbor:"comment,omitempty"`
}

// sharedNode uses json tags, the convention for types that are also
// written as JSON.
type sharedNode struct {
	Type     string        `json:"type"`
	Children []*sharedNode `json:"children,omitempty"`
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	original := cacheHeader{Format: "xml", Nodes: 12}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded cacheHeader
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != original {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	value := map[string]any{"type": "LinearLayout", "orientation": "vertical", "padding": 1}

	first, err := Marshal(value)
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}
	for attempt := 0; attempt < 10; attempt++ {
		again, err := Marshal(value)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("deterministic encoding violated: %x != %x", first, again)
		}
	}
}

func TestJSONTagFallback(t *testing.T) {
	original := &sharedNode{Type: "LinearLayout", Children: []*sharedNode{{Type: "TextView"}}}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	notation, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if !strings.Contains(notation, `"children"`) || !strings.Contains(notation, `"type"`) {
		t.Errorf("json tag names not used as keys: %s", notation)
	}

	var decoded sharedNode
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Type != "LinearLayout" || len(decoded.Children) != 1 || decoded.Children[0].Type != "TextView" {
		t.Errorf("json-tag roundtrip mismatch: got %+v", decoded)
	}
}

func TestAnyMapsDecodeWithStringKeys(t *testing.T) {
	data, err := Marshal(map[string]any{"row": map[string]any{"id": "7"}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded any
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	outer, ok := decoded.(map[string]any)
	if !ok {
		t.Fatalf("decoded %T, want map[string]any", decoded)
	}
	if _, ok := outer["row"].(map[string]any); !ok {
		t.Errorf("nested map decoded as %T", outer["row"])
	}
}

func TestUnmarshalInvalidCBOR(t *testing.T) {
	var header cacheHeader
	if err := Unmarshal([]byte{0xFF, 0xFE, 0xFD}, &header); err == nil {
		t.Error("Unmarshal accepted invalid CBOR")
	}
}
