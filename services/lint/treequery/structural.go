// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package treequery

import (
	"strconv"
	"strings"

	"github.com/AleutianAI/treequery/services/lint/estree"
)

// FindNodes returns the nodes of body whose type is nodeType, in order.
// A nil or empty body yields an empty result.
func FindNodes(body []*estree.Node, nodeType estree.NodeType) []*estree.Node {
	found := make([]*estree.Node, 0, len(body))
	for _, n := range body {
		if n.Is(nodeType) {
			found = append(found, n)
		}
	}
	return found
}

// GetSize returns the number of source lines spanned by node, inclusive.
//
// The node's location is a caller precondition: a node without location
// information reports a size of 1. A nil node has size 0.
func GetSize(node *estree.Node) int {
	if node == nil {
		return 0
	}
	return node.Loc.End.Line - node.Loc.Start.Line + 1
}

// GetPropertyValue resolves a dotted path of ESTree property names.
//
// Description:
//
//	"value.body.body" reads node.value, then .body of that, then .body of
//	that. A single-segment path is a direct property read. Each segment is
//	resolved against the current value:
//
//	  - *estree.Node      -> Node.Field(segment)
//	  - map[string]any    -> map lookup
//	  - []*estree.Node, []any -> decimal index ("arguments.0.value")
//
//	Traversal stops with ok == false as soon as a segment is missing or the
//	current value cannot be traversed.
//
// Inputs:
//
//	node - Starting node.
//	path - Dotted path, e.g. "callee.property.name".
//
// Outputs:
//
//	any  - The final value.
//	bool - False if any segment is absent.
//
// Thread Safety: Safe for concurrent use (pure function).
func GetPropertyValue(node *estree.Node, path string) (any, bool) {
	return GetPropertyValuePath(node, strings.Split(path, "."))
}

// GetPropertyValuePath is GetPropertyValue with a pre-split path.
func GetPropertyValuePath(node *estree.Node, parts []string) (any, bool) {
	if node == nil || len(parts) == 0 {
		return nil, false
	}
	if len(parts) == 1 {
		return node.Field(parts[0])
	}

	var current any = node
	for i, part := range parts {
		if i >= MaxDepth {
			return nil, false
		}
		next, ok := lookup(current, part)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

func lookup(value any, key string) (any, bool) {
	switch v := value.(type) {
	case *estree.Node:
		return v.Field(key)
	case map[string]any:
		out, ok := v[key]
		return out, ok
	case []*estree.Node:
		i, ok := index(key, len(v))
		if !ok || v[i] == nil {
			return nil, false
		}
		return v[i], true
	case []any:
		i, ok := index(key, len(v))
		if !ok {
			return nil, false
		}
		return v[i], true
	case estree.SourceLocation:
		switch key {
		case "start":
			return v.Start, true
		case "end":
			return v.End, true
		}
	case estree.Position:
		switch key {
		case "line":
			return v.Line, true
		case "column":
			return v.Column, true
		}
	}
	return nil, false
}

func index(key string, length int) (int, bool) {
	i, err := strconv.Atoi(key)
	if err != nil || i < 0 || i >= length {
		return 0, false
	}
	return i, true
}

// OrderedProperty pairs a property node with its expected position.
type OrderedProperty struct {
	Node  *estree.Node
	Name  string
	Order int
}

// FindUnorderedProperty returns the first property that is out of order.
//
// Description:
//
//	Scans adjacent pairs left to right and returns the first element whose
//	Order is greater than its successor's. This reports a single offender;
//	it is not a full sortedness check and does not look past the first
//	inversion. Equal orders are in order.
//
// Outputs:
//
//	OrderedProperty - The offending element.
//	bool            - False if the list is non-decreasing.
//
// Example:
//
//	orders 1, 3, 2 -> the element with order 3
//
// Thread Safety: Safe for concurrent use (pure function).
func FindUnorderedProperty(list []OrderedProperty) (OrderedProperty, bool) {
	for i := 0; i+1 < len(list); i++ {
		if list[i].Order > list[i+1].Order {
			return list[i], true
		}
	}
	return OrderedProperty{}, false
}

// IsEmptyMethod reports whether node is a method (or property) whose value has
// an empty statement-list body.
//
// Description:
//
//	Checks node.value.body.body: the value must exist, its body must be
//	block-like (a BlockStatement, or the ClassBody of a class value), and
//	that body must contain no statements. Arrow functions with an expression
//	body and nodes without a value are not empty methods.
//
// Thread Safety: Safe for concurrent use (pure function).
func IsEmptyMethod(node *estree.Node) bool {
	if node == nil || node.Value == nil {
		return false
	}
	body := node.Value.Body
	return body.IsBlockLike() && len(body.Statements) == 0
}
