// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Attribute is one key/value pair declared on a node.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Attributes is an ordered attribute list. In JSON and YAML it is
// written as an object whose members keep their order.
type Attributes []Attribute

// Node is one element of a view document.
type Node struct {
	Type       string     `json:"type" yaml:"type"`
	Attributes Attributes `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Children   []*Node    `json:"children,omitempty" yaml:"children,omitempty"`
}

// Get returns the last value declared for key.
func (node *Node) Get(key string) (string, bool) {
	for index := len(node.Attributes) - 1; index >= 0; index-- {
		if node.Attributes[index].Key == key {
			return node.Attributes[index].Value, true
		}
	}
	return "", false
}

// Walk calls visit for node and every descendant in depth-first
// document order. Returning an error stops the walk.
func Walk(node *Node, visit func(node *Node, depth int) error) error {
	return walk(node, 0, visit)
}

func walk(node *Node, depth int, visit func(*Node, int) error) error {
	if node == nil {
		return nil
	}
	if err := visit(node, depth); err != nil {
		return err
	}
	for _, child := range node.Children {
		if err := walk(child, depth+1, visit); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of nodes in the tree rooted at node.
func Count(node *Node) int {
	count := 0
	_ = Walk(node, func(*Node, int) error {
		count++
		return nil
	})
	return count
}

// validate checks that every node has a type.
func validate(root *Node) error {
	if root == nil {
		return fmt.Errorf("document has no root node")
	}
	return Walk(root, func(node *Node, depth int) error {
		if node.Type == "" {
			return fmt.Errorf("node at depth %d has no type", depth)
		}
		for _, child := range node.Children {
			if child == nil {
				return fmt.Errorf("%s node at depth %d has a null child", node.Type, depth)
			}
		}
		return nil
	})
}

// UnmarshalJSON decodes an attribute object in member order.
func (attributes *Attributes) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	token, err := decoder.Token()
	if err != nil {
		return err
	}
	if delimiter, ok := token.(json.Delim); !ok || delimiter != '{' {
		return fmt.Errorf("attributes must be an object, got %v", token)
	}

	result := Attributes{}
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return err
		}
		key, _ := keyToken.(string)

		valueToken, err := decoder.Token()
		if err != nil {
			return err
		}
		var value string
		switch typed := valueToken.(type) {
		case string:
			value = typed
		case json.Number:
			value = typed.String()
		case bool:
			value = fmt.Sprintf("%t", typed)
		case nil:
			value = ""
		default:
			return fmt.Errorf("attribute %q must be a scalar", key)
		}
		result = append(result, Attribute{Key: key, Value: value})
	}
	if _, err := decoder.Token(); err != nil {
		return err
	}

	*attributes = result
	return nil
}

// MarshalJSON encodes the attributes as an object in list order.
func (attributes Attributes) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteByte('{')
	for index, attribute := range attributes {
		if index > 0 {
			buffer.WriteByte(',')
		}
		key, err := json.Marshal(attribute.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(attribute.Value)
		if err != nil {
			return nil, err
		}
		buffer.Write(key)
		buffer.WriteByte(':')
		buffer.Write(value)
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

// UnmarshalYAML decodes an attribute mapping in member order.
func (attributes *Attributes) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: attributes must be a mapping", value.Line)
	}

	result := make(Attributes, 0, len(value.Content)/2)
	for index := 0; index+1 < len(value.Content); index += 2 {
		keyNode, valueNode := value.Content[index], value.Content[index+1]
		if valueNode.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: attribute %q must be a scalar", valueNode.Line, keyNode.Value)
		}
		text := valueNode.Value
		if valueNode.Tag == "!!null" {
			text = ""
		}
		result = append(result, Attribute{Key: keyNode.Value, Value: text})
	}

	*attributes = result
	return nil
}
