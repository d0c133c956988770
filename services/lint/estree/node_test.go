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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ident(name string) *Node {
	return &Node{Type: Identifier, Name: name}
}

// buildMemberCall builds `a.b(1)` with parents wired.
func buildMemberCall() *Node {
	call := &Node{
		Type: CallExpression,
		Callee: &Node{
			Type:     MemberExpression,
			Object:   ident("a"),
			Property: ident("b"),
		},
		Arguments: []*Node{{Type: Literal, Raw: "1", LiteralValue: float64(1)}},
	}
	SetParents(call)
	return call
}

func TestNode_Field(t *testing.T) {
	call := buildMemberCall()

	t.Run("child node", func(t *testing.T) {
		v, ok := call.Field("callee")
		require.True(t, ok)
		assert.Same(t, call.Callee, v)
	})

	t.Run("node list", func(t *testing.T) {
		v, ok := call.Field("arguments")
		require.True(t, ok)
		assert.Len(t, v, 1)
	})

	t.Run("literal value", func(t *testing.T) {
		v, ok := call.Arguments[0].Field("value")
		require.True(t, ok)
		assert.Equal(t, float64(1), v)
	})

	t.Run("value child on non-literal", func(t *testing.T) {
		prop := &Node{Type: Property, Key: ident("k"), Value: ident("v")}
		v, ok := prop.Field("value")
		require.True(t, ok)
		assert.Same(t, prop.Value, v)
	})

	t.Run("absent child", func(t *testing.T) {
		_, ok := call.Field("init")
		assert.False(t, ok)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, ok := call.Field("notAField")
		assert.False(t, ok)
	})

	t.Run("nil node", func(t *testing.T) {
		var n *Node
		_, ok := n.Field("type")
		assert.False(t, ok)
	})

	t.Run("empty block body is present", func(t *testing.T) {
		block := &Node{Type: BlockStatement}
		v, ok := block.Field("body")
		require.True(t, ok)
		assert.Empty(t, v)
	})

	t.Run("function body is a node", func(t *testing.T) {
		block := &Node{Type: BlockStatement}
		fn := &Node{Type: FunctionExpression, Body: block}
		v, ok := fn.Field("body")
		require.True(t, ok)
		assert.Same(t, block, v)
	})
}

func TestNode_ChildNodes_SourceOrder(t *testing.T) {
	call := buildMemberCall()

	children := call.ChildNodes()
	require.Len(t, children, 2)
	assert.Equal(t, MemberExpression, children[0].Type)
	assert.Equal(t, Literal, children[1].Type)

	member := call.Callee.ChildNodes()
	require.Len(t, member, 2)
	assert.Equal(t, "a", member[0].Name)
	assert.Equal(t, "b", member[1].Name)
}

func TestNode_ChildNodes_SpecifiersBeforeSource(t *testing.T) {
	specifiers := &Node{Type: Unknown, Kind: "import_clause"}
	source := &Node{Type: Literal, LiteralValue: "m"}
	imp := &Node{Type: ImportDeclaration, Source: source, Children: []*Node{specifiers}}

	children := imp.ChildNodes()
	require.Len(t, children, 2)
	assert.Same(t, specifiers, children[0])
	assert.Same(t, source, children[1])
}

func TestNode_ChildNodes_SkipsHoles(t *testing.T) {
	arr := &Node{Type: ArrayExpression, Elements: []*Node{ident("a"), nil, ident("b")}}
	assert.Len(t, arr.ChildNodes(), 2)
}

func TestSetParents(t *testing.T) {
	call := buildMemberCall()

	assert.Nil(t, call.Parent)
	assert.Same(t, call, call.Callee.Parent)
	assert.Same(t, call.Callee, call.Callee.Object.Parent)
	assert.Same(t, call.Callee, call.Callee.Property.Parent)
	assert.Same(t, call, call.Arguments[0].Parent)
}

func TestWalk_PreOrder(t *testing.T) {
	call := buildMemberCall()

	var seen []NodeType
	Walk(call, func(n *Node) bool {
		seen = append(seen, n.Type)
		return true
	})

	assert.Equal(t, []NodeType{
		CallExpression, MemberExpression, Identifier, Identifier, Literal,
	}, seen)
}

func TestWalk_Prune(t *testing.T) {
	call := buildMemberCall()

	var seen int
	Walk(call, func(n *Node) bool {
		seen++
		return n.Type != MemberExpression
	})

	// call, member (pruned), literal
	assert.Equal(t, 3, seen)
}

func TestWalk_NilSafe(t *testing.T) {
	Walk(nil, func(*Node) bool { return true })
	Walk(&Node{Type: Program}, nil)
	assert.Equal(t, 0, Count(nil))
}

func TestCount(t *testing.T) {
	assert.Equal(t, 5, Count(buildMemberCall()))
}

func TestNode_Is(t *testing.T) {
	n := ident("x")
	assert.True(t, n.Is(Literal, Identifier))
	assert.False(t, n.Is(Literal))

	var nilNode *Node
	assert.False(t, nilNode.Is(Identifier))
}
