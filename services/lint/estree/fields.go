// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package estree

// Field returns the value of the ESTree property called name.
//
// Description:
//
//	Field gives dynamic, name-based access to the node payload using the
//	ESTree JSON property names. It returns ok == false when the property is
//	unknown or absent on this node (nil child, empty list, empty string), so
//	callers can distinguish "missing" from a present zero value for booleans
//	and literal values.
//
//	"value" is polymorphic: on Literal nodes it is the literal value, on
//	every other node it is the Value child. "body" is the statement list on
//	Program, BlockStatement and ClassBody and the Body child elsewhere.
//
// Inputs:
//
//	name - ESTree property name, e.g. "callee", "loc", "value".
//
// Outputs:
//
//	any  - *Node, []*Node, string, bool, SourceLocation, Position or a
//	       literal value.
//	bool - True if the property is defined and present on this node.
//
// Thread Safety: Safe for concurrent use (read-only).
func (n *Node) Field(name string) (any, bool) {
	if n == nil {
		return nil, false
	}

	switch name {
	case "type":
		return string(n.Type), true
	case "parent":
		return nodeField(n.Parent)
	case "loc":
		return n.Loc, true
	case "start":
		return n.Loc.Start, true
	case "end":
		return n.Loc.End, true
	case "name":
		return stringField(n.Name)
	case "raw":
		return stringField(n.Raw)
	case "value":
		if n.Type == Literal {
			return n.LiteralValue, true
		}
		return nodeField(n.Value)
	case "operator":
		return stringField(n.Operator)
	case "kind":
		return stringField(n.Kind)
	case "computed":
		return n.Computed, true
	case "optional":
		return n.Optional, true
	case "shorthand":
		return n.Shorthand, n.Type == Property
	case "method":
		return n.Method, n.Type == Property
	case "static":
		return n.Static, true
	case "async":
		return n.Async, true
	case "generator":
		return n.Generator, true
	case "callee":
		return nodeField(n.Callee)
	case "object":
		return nodeField(n.Object)
	case "property":
		return nodeField(n.Property)
	case "arguments":
		return listField(n.Arguments)
	case "properties":
		return listField(n.Properties)
	case "elements":
		return listField(n.Elements)
	case "key":
		return nodeField(n.Key)
	case "declarations":
		return listField(n.Declarations)
	case "id":
		return nodeField(n.ID)
	case "init":
		return nodeField(n.Init)
	case "left":
		return nodeField(n.Left)
	case "right":
		return nodeField(n.Right)
	case "argument":
		return nodeField(n.Argument)
	case "params":
		return listField(n.Params)
	case "body":
		if n.IsBlockLike() {
			// An empty block still has a body; it is just an empty list.
			return n.Statements, true
		}
		return nodeField(n.Body)
	case "superClass":
		return nodeField(n.SuperClass)
	case "test":
		return nodeField(n.Test)
	case "consequent":
		return nodeField(n.Consequent)
	case "alternate":
		return nodeField(n.Alternate)
	case "expression":
		return nodeField(n.Expression)
	case "expressions":
		return listField(n.Expressions)
	case "source":
		return nodeField(n.Source)
	case "declaration":
		return nodeField(n.Declaration)
	case "children":
		return listField(n.Children)
	}
	return nil, false
}

func nodeField(child *Node) (any, bool) {
	if child == nil {
		return nil, false
	}
	return child, true
}

func listField(list []*Node) (any, bool) {
	if list == nil {
		return nil, false
	}
	return list, true
}

func stringField(s string) (any, bool) {
	if s == "" {
		return nil, false
	}
	return s, true
}

// ChildNodes returns the direct children of n in source order.
//
// Description:
//
//	Children are collected from every populated payload field. Nil entries
//	(array holes such as [a, , b]) are skipped. The returned slice is freshly
//	allocated and may be modified by the caller.
//
// Thread Safety: Safe for concurrent use (read-only).
func (n *Node) ChildNodes() []*Node {
	if n == nil {
		return nil
	}

	var out []*Node
	add := func(children ...*Node) {
		for _, c := range children {
			if c != nil {
				out = append(out, c)
			}
		}
	}

	// Order follows source order for every variant the loader builds.
	add(n.ID, n.Key)
	add(n.Params...)
	add(n.SuperClass)
	add(n.Callee, n.Object, n.Property)
	add(n.Arguments...)
	add(n.Left, n.Init, n.Test, n.Consequent, n.Alternate, n.Right, n.Argument)
	add(n.Value)
	add(n.Properties...)
	add(n.Elements...)
	add(n.Declarations...)
	add(n.Expression)
	add(n.Expressions...)
	add(n.Body)
	add(n.Statements...)
	// Import and export specifiers live in Children and precede the source.
	add(n.Children...)
	add(n.Declaration, n.Source)
	return out
}
