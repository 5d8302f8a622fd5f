// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Format identifies a document source format.
type Format string

const (
	FormatXML  Format = "xml"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name. "jsonc" and "yml" are accepted
// as aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "xml":
		return FormatXML, nil
	case "json", "jsonc":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown document format %q (want xml, json, or yaml)", name)
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	extension := strings.TrimPrefix(filepath.Ext(path), ".")
	if extension == "" {
		return "", fmt.Errorf("%s: no file extension to infer the document format from", path)
	}
	return ParseFormat(extension)
}

// Parse parses data in the given format.
func Parse(data []byte, format Format) (*Node, error) {
	var root *Node
	var err error
	switch format {
	case FormatXML:
		root, err = parseXML(data)
	case FormatJSON:
		root, err = parseJSON(data)
	case FormatYAML:
		root, err = parseYAML(data)
	default:
		return nil, fmt.Errorf("unknown document format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s document: %w", format, err)
	}
	if err := validate(root); err != nil {
		return nil, fmt.Errorf("invalid %s document: %w", format, err)
	}
	return root, nil
}

// ReadFile reads and parses a document, inferring the format from the
// file extension.
func ReadFile(path string) (*Node, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	root, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}

// parseJSON strips JSONC comments and trailing commas, then decodes.
func parseJSON(data []byte) (*Node, error) {
	var root Node
	decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&root); err != nil {
		return nil, err
	}
	return &root, nil
}

func parseYAML(data []byte) (*Node, error) {
	var root Node
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty document")
		}
		return nil, err
	}
	return &root, nil
}

// parseXML builds the tree from element tokens. Text content, comments,
// and processing instructions are ignored. Namespace prefixes on
// element and attribute names are dropped.
func parseXML(data []byte) (*Node, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))

	var root *Node
	var stack []*Node
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch element := token.(type) {
		case xml.StartElement:
			node := &Node{Type: element.Name.Local}
			for _, attribute := range element.Attr {
				if attribute.Name.Space == "xmlns" || attribute.Name.Local == "xmlns" {
					continue
				}
				node.Attributes = append(node.Attributes, Attribute{Key: attribute.Name.Local, Value: attribute.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("line %d: multiple root elements", lineOf(decoder, data))
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}
	if root == nil {
		return nil, fmt.Errorf("empty document")
	}
	return root, nil
}

// lineOf returns the 1-based line of the decoder's current offset.
func lineOf(decoder *xml.Decoder, data []byte) int {
	offset := int(decoder.InputOffset())
	if offset > len(data) {
		offset = len(data)
	}
	return bytes.Count(data[:offset], []byte("\n")) + 1
}
