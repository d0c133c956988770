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
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/treequery/services/lint/estree"
	"github.com/AleutianAI/treequery/services/lint/parser"
)

// parseProgram loads src with the JavaScript parser.
func parseProgram(t *testing.T, src string) *estree.Node {
	t.Helper()
	result, err := parser.NewJavaScriptParser().Parse(context.Background(), []byte(src), "query.js")
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	return result.Program
}

func collect(root *estree.Node, types ...estree.NodeType) []*estree.Node {
	var out []*estree.Node
	estree.Walk(root, func(n *estree.Node) bool {
		if n.Is(types...) {
			out = append(out, n)
		}
		return true
	})
	return out
}

func TestParsed_ParseCalleeAndArgs(t *testing.T) {
	program := parseProgram(t, `
Ember.computed.alias('foo');
a[dynamic]();
f('x', 0, 'y', null);
new Ember.Object();
`)
	calls := collect(program, estree.CallExpression, estree.NewExpression)
	require.Len(t, calls, 4)

	assert.Equal(t, []string{"Ember", "computed", "alias"}, ParseCallee(calls[0]))
	assert.Equal(t, []any{"foo"}, ParseArgs(calls[0]))
	assert.Equal(t, []string{"a"}, ParseCallee(calls[1]))
	assert.Equal(t, []any{"x", "y"}, ParseArgs(calls[2]))
	assert.Equal(t, []string{"Ember", "Object"}, ParseCallee(calls[3]))
	assert.Empty(t, ParseArgs(calls[3]))
}

func TestParsed_ParseArgsKeepsOverflowingNumbers(t *testing.T) {
	program := parseProgram(t, "f(1e999, 'x');\ng(-1e999);")
	calls := collect(program, estree.CallExpression)
	require.Len(t, calls, 2)

	assert.Equal(t, []any{math.Inf(1), "x"}, ParseArgs(calls[0]))
	assert.Empty(t, ParseArgs(calls[1]), "unary minus is not a literal")
}

func TestParsed_GetNameAndAssignmentSide(t *testing.T) {
	program := parseProgram(t, "this.x.y();\nthis.x.y = 1;")

	call := program.Statements[0].Expression
	name, ok := GetName(call)
	require.True(t, ok)
	assert.Equal(t, "this.x.y", name)

	assign := program.Statements[1].Expression
	require.Equal(t, estree.AssignmentExpression, assign.Type)

	for _, n := range collect(assign.Left, estree.ThisExpression, estree.Identifier) {
		assert.True(t, IsInLeftSideOfAssignmentExpression(n), "%s %s", n.Type, n.Name)
	}
	assert.False(t, IsInLeftSideOfAssignmentExpression(assign.Right))

	for _, n := range collect(call, estree.ThisExpression, estree.Identifier) {
		assert.False(t, IsInLeftSideOfAssignmentExpression(n))
	}
}

func TestParsed_GetAncestorFindsEnclosingFunction(t *testing.T) {
	program := parseProgram(t, "function outer() { return inner(1); }")
	lits := collect(program, estree.Literal)
	require.Len(t, lits, 1)

	fn := GetAncestor(lits[0], func(n *estree.Node) bool {
		return n.Is(estree.FunctionDeclaration, estree.FunctionExpression, estree.ArrowFunctionExpression)
	})
	require.NotNil(t, fn)
	assert.Equal(t, "outer", fn.ID.Name)
}

func TestParsed_CollectObjectPatternBindings(t *testing.T) {
	program := parseProgram(t, `
const { $: foo, computed, run = later, other } = Ember;
const { $: bar } = jQuery;
`)
	decls := collect(program, estree.VariableDeclarator)
	require.Len(t, decls, 2)

	bindings := BindingMap{"Ember": {"$", "computed", "run"}, "Other": {"$"}}
	assert.Equal(t, []string{"foo", "computed", "run"}, CollectObjectPatternBindings(decls[0], bindings))
	assert.Empty(t, CollectObjectPatternBindings(decls[1], bindings))
}

func TestParsed_FindNodesAndGetSize(t *testing.T) {
	program := parseProgram(t, `const a = 1;
foo();
function f() {
  return 1;
}
bar();
`)
	stmts := FindNodes(program.Statements, estree.ExpressionStatement)
	require.Len(t, stmts, 2)
	assert.Equal(t, 1, GetSize(stmts[0]))

	fns := FindNodes(program.Statements, estree.FunctionDeclaration)
	require.Len(t, fns, 1)
	assert.Equal(t, 3, GetSize(fns[0]))
}

func TestParsed_EmptyMethodsAndPropertyPaths(t *testing.T) {
	program := parseProgram(t, `
export default Component.extend({
  init() {},
  didInsertElement() { this._super(); },
  tagName: 'div',
});
`)
	obj := collect(program, estree.ObjectExpression)
	require.Len(t, obj, 1)
	props := obj[0].Properties
	require.Len(t, props, 3)

	assert.True(t, IsEmptyMethod(props[0]))
	assert.False(t, IsEmptyMethod(props[1]))
	assert.False(t, IsEmptyMethod(props[2]))

	body, ok := GetPropertyValue(props[1], "value.body.body")
	require.True(t, ok)
	assert.Len(t, body, 1)

	name, ok := GetPropertyValue(props[2], "key.name")
	require.True(t, ok)
	assert.Equal(t, "tagName", name)

	order := map[string]int{"tagName": 0, "init": 1, "didInsertElement": 2}
	list := make([]OrderedProperty, 0, len(props))
	for _, p := range props {
		list = append(list, OrderedProperty{Node: p, Name: p.Key.Name, Order: order[p.Key.Name]})
	}
	got, ok := FindUnorderedProperty(list)
	require.True(t, ok)
	assert.Equal(t, "didInsertElement", got.Name)
}

func TestParsed_IsEmptyMethodOnClassValue(t *testing.T) {
	program := parseProgram(t, "x = { foo: class {}, bar: class { run() {} } };")
	obj := collect(program, estree.ObjectExpression)
	require.Len(t, obj, 1)
	props := obj[0].Properties
	require.Len(t, props, 2)

	body, ok := GetPropertyValue(props[0], "value.body.body")
	require.True(t, ok)
	assert.Empty(t, body)
	assert.True(t, IsEmptyMethod(props[0]))
	assert.False(t, IsEmptyMethod(props[1]))
}
