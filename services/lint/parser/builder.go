// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package parser

import (
	"fmt"
	"slices"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/AleutianAI/treequery/services/lint/estree"
)

// esBuilder converts a tree-sitter-javascript concrete syntax tree into
// ESTree nodes. A builder is used for one file and is not safe for
// concurrent use.
type esBuilder struct {
	source []byte
	nodes  int
}

func newESBuilder(source []byte) *esBuilder {
	return &esBuilder{source: source}
}

// newNode allocates an ESTree node positioned at ts.
func (b *esBuilder) newNode(t estree.NodeType, ts *sitter.Node) *estree.Node {
	b.nodes++
	n := &estree.Node{Type: t}
	if ts != nil {
		start, end := ts.StartPoint(), ts.EndPoint()
		n.Loc = estree.SourceLocation{
			Start: estree.Position{Line: int(start.Row) + 1, Column: int(start.Column)},
			End:   estree.Position{Line: int(end.Row) + 1, Column: int(end.Column)},
		}
	}
	return n
}

func (b *esBuilder) text(ts *sitter.Node) string {
	if ts == nil {
		return ""
	}
	return ts.Content(b.source)
}

func (b *esBuilder) field(ts *sitter.Node, name string) *estree.Node {
	return b.build(ts.ChildByFieldName(name))
}

// namedChildren returns the named children of ts, skipping comments.
func namedChildren(ts *sitter.Node) []*sitter.Node {
	count := int(ts.NamedChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		child := ts.NamedChild(i)
		if child == nil || child.Type() == tsComment {
			continue
		}
		out = append(out, child)
	}
	return out
}

// namedChildrenExcept returns the named children of ts other than skip.
// Specifier lists of import and export statements end up here.
func namedChildrenExcept(ts *sitter.Node, skip ...*sitter.Node) []*sitter.Node {
	children := namedChildren(ts)
	out := children[:0]
	for _, child := range children {
		if !slices.ContainsFunc(skip, func(s *sitter.Node) bool { return sameNode(s, child) }) {
			out = append(out, child)
		}
	}
	return out
}

func sameNode(a, b *sitter.Node) bool {
	return a != nil && b != nil &&
		a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

// firstNamed returns the first non-comment named child of ts.
func firstNamed(ts *sitter.Node) *sitter.Node {
	if children := namedChildren(ts); len(children) > 0 {
		return children[0]
	}
	return nil
}

// hasToken reports whether ts has a direct anonymous child of type token.
func hasToken(ts *sitter.Node, token string) bool {
	for i := 0; i < int(ts.ChildCount()); i++ {
		child := ts.Child(i)
		if child != nil && !child.IsNamed() && child.Type() == token {
			return true
		}
	}
	return false
}

// hasOptionalChain reports whether ts itself carries a ?. link.
func hasOptionalChain(ts *sitter.Node) bool {
	for i := 0; i < int(ts.ChildCount()); i++ {
		child := ts.Child(i)
		if child == nil {
			continue
		}
		if t := child.Type(); t == tsOptionalChain || t == tsOptional {
			return true
		}
	}
	return false
}

func (b *esBuilder) buildList(children []*sitter.Node) []*estree.Node {
	out := make([]*estree.Node, 0, len(children))
	for _, child := range children {
		if n := b.build(child); n != nil {
			out = append(out, n)
		}
	}
	return out
}

// build converts ts and its subtree. It returns nil for a nil input and for
// comments.
func (b *esBuilder) build(ts *sitter.Node) *estree.Node {
	if ts == nil {
		return nil
	}

	switch ts.Type() {
	case tsComment:
		return nil

	case tsProgram:
		n := b.newNode(estree.Program, ts)
		n.Statements = b.buildList(namedChildren(ts))
		return n
	case tsStatementBlock:
		n := b.newNode(estree.BlockStatement, ts)
		n.Statements = b.buildList(namedChildren(ts))
		return n
	case tsClassBody:
		return b.buildClassBody(ts)
	case tsExpressionStatement:
		n := b.newNode(estree.ExpressionStatement, ts)
		n.Expression = b.build(firstNamed(ts))
		return n
	case tsReturnStatement:
		n := b.newNode(estree.ReturnStatement, ts)
		n.Argument = b.build(firstNamed(ts))
		return n
	case tsIfStatement:
		n := b.newNode(estree.IfStatement, ts)
		n.Test = b.field(ts, "condition")
		n.Consequent = b.field(ts, "consequence")
		if alt := ts.ChildByFieldName("alternative"); alt != nil {
			if alt.Type() == tsElseClause {
				alt = firstNamed(alt)
			}
			n.Alternate = b.build(alt)
		}
		return n

	case tsLexicalDeclaration, tsVariableDeclaration:
		n := b.newNode(estree.VariableDeclaration, ts)
		n.Kind = "var"
		if kind := ts.ChildByFieldName("kind"); kind != nil {
			n.Kind = b.text(kind)
		}
		for _, child := range namedChildren(ts) {
			if child.Type() == tsVariableDeclarator {
				n.Declarations = append(n.Declarations, b.build(child))
			}
		}
		return n
	case tsVariableDeclarator:
		n := b.newNode(estree.VariableDeclarator, ts)
		n.ID = b.field(ts, "name")
		n.Init = b.field(ts, "value")
		return n

	case tsIdentifier, tsPropertyIdentifier, tsShorthandPropertyIdentifier,
		tsShorthandPropertyIdentifierPatrn, tsStatementIdentifier, tsUndefined:
		n := b.newNode(estree.Identifier, ts)
		n.Name = b.text(ts)
		return n
	case tsPrivatePropertyIdentifier:
		n := b.newNode(estree.PrivateIdentifier, ts)
		n.Name = strings.TrimPrefix(b.text(ts), "#")
		return n
	case tsThis:
		return b.newNode(estree.ThisExpression, ts)
	case tsSuper:
		return b.newNode(estree.Super, ts)

	case tsString:
		n := b.newNode(estree.Literal, ts)
		n.Raw = b.text(ts)
		n.LiteralValue = decodeString(n.Raw)
		return n
	case tsNumber:
		n := b.newNode(estree.Literal, ts)
		n.Raw = b.text(ts)
		n.LiteralValue = parseNumber(n.Raw)
		return n
	case tsTrue, tsFalse:
		n := b.newNode(estree.Literal, ts)
		n.Raw = b.text(ts)
		n.LiteralValue = ts.Type() == tsTrue
		return n
	case tsNull:
		n := b.newNode(estree.Literal, ts)
		n.Raw = b.text(ts)
		return n
	case tsRegex:
		n := b.newNode(estree.Literal, ts)
		n.Raw = b.text(ts)
		n.LiteralValue = &estree.RegExpValue{
			Pattern: b.text(ts.ChildByFieldName("pattern")),
			Flags:   b.text(ts.ChildByFieldName("flags")),
		}
		return n
	case tsTemplateString:
		n := b.newNode(estree.TemplateLiteral, ts)
		n.Raw = b.text(ts)
		for _, child := range namedChildren(ts) {
			if child.Type() == tsTemplateSubst {
				if expr := b.build(firstNamed(child)); expr != nil {
					n.Expressions = append(n.Expressions, expr)
				}
			}
		}
		return n

	case tsMemberExpression:
		return b.buildMember(ts, ts.ChildByFieldName("property"), false)
	case tsSubscriptExpression:
		return b.buildMember(ts, ts.ChildByFieldName("index"), true)
	case tsCallExpression:
		return b.buildCall(ts)
	case tsNewExpression:
		n := b.newNode(estree.NewExpression, ts)
		n.Callee = b.field(ts, "constructor")
		n.Arguments = b.buildArguments(ts.ChildByFieldName("arguments"))
		return n

	case tsObject:
		n := b.newNode(estree.ObjectExpression, ts)
		n.Properties = b.buildProperties(ts)
		return n
	case tsObjectPattern:
		n := b.newNode(estree.ObjectPattern, ts)
		n.Properties = b.buildProperties(ts)
		return n
	case tsArray:
		n := b.newNode(estree.ArrayExpression, ts)
		n.Elements = b.buildElements(ts)
		return n
	case tsArrayPattern:
		n := b.newNode(estree.ArrayPattern, ts)
		n.Elements = b.buildElements(ts)
		return n
	case tsAssignmentPattern:
		n := b.newNode(estree.AssignmentPattern, ts)
		n.Left = b.field(ts, "left")
		n.Right = b.field(ts, "right")
		return n
	case tsRestPattern:
		n := b.newNode(estree.RestElement, ts)
		n.Argument = b.build(firstNamed(ts))
		return n
	case tsSpreadElement:
		n := b.newNode(estree.SpreadElement, ts)
		n.Argument = b.build(firstNamed(ts))
		return n

	case tsAssignmentExpression:
		n := b.newNode(estree.AssignmentExpression, ts)
		n.Operator = "="
		n.Left = b.field(ts, "left")
		n.Right = b.field(ts, "right")
		return n
	case tsAugmentedAssignmentExpression:
		n := b.newNode(estree.AssignmentExpression, ts)
		n.Operator = b.text(ts.ChildByFieldName("operator"))
		n.Left = b.field(ts, "left")
		n.Right = b.field(ts, "right")
		return n
	case tsBinaryExpression:
		op := b.text(ts.ChildByFieldName("operator"))
		t := estree.BinaryExpression
		if logicalOperators[op] {
			t = estree.LogicalExpression
		}
		n := b.newNode(t, ts)
		n.Operator = op
		n.Left = b.field(ts, "left")
		n.Right = b.field(ts, "right")
		return n
	case tsUnaryExpression:
		n := b.newNode(estree.UnaryExpression, ts)
		n.Operator = b.text(ts.ChildByFieldName("operator"))
		n.Argument = b.field(ts, "argument")
		return n
	case tsUpdateExpression:
		n := b.newNode(estree.UpdateExpression, ts)
		n.Operator = b.text(ts.ChildByFieldName("operator"))
		n.Argument = b.field(ts, "argument")
		return n
	case tsTernaryExpression:
		n := b.newNode(estree.ConditionalExpression, ts)
		n.Test = b.field(ts, "condition")
		n.Consequent = b.field(ts, "consequence")
		n.Alternate = b.field(ts, "alternative")
		return n
	case tsSequenceExpression:
		n := b.newNode(estree.SequenceExpression, ts)
		n.Expressions = b.buildList(flattenSequence(ts, nil))
		return n
	case tsParenthesizedExpression:
		return b.build(firstNamed(ts))
	case tsAwaitExpression:
		n := b.newNode(estree.AwaitExpression, ts)
		n.Argument = b.build(firstNamed(ts))
		return n
	case tsYieldExpression:
		n := b.newNode(estree.YieldExpression, ts)
		n.Argument = b.build(firstNamed(ts))
		n.Generator = hasToken(ts, tsStar)
		return n

	case tsFunctionDeclaration, tsGeneratorFunctionDcl:
		return b.buildFunction(estree.FunctionDeclaration, ts)
	case tsFunctionExpression, tsFunction, tsGeneratorFunction:
		return b.buildFunction(estree.FunctionExpression, ts)
	case tsArrowFunction:
		n := b.newNode(estree.ArrowFunctionExpression, ts)
		n.Async = hasToken(ts, tsAsync)
		if param := ts.ChildByFieldName("parameter"); param != nil {
			n.Params = []*estree.Node{b.build(param)}
		} else {
			n.Params = b.buildParams(ts.ChildByFieldName("parameters"))
		}
		n.Body = b.field(ts, "body")
		return n

	case tsClassDeclaration:
		return b.buildClass(estree.ClassDeclaration, ts)
	case tsClass:
		return b.buildClass(estree.ClassExpression, ts)
	case tsFieldDefinition:
		n := b.newNode(estree.PropertyDefinition, ts)
		n.Static = hasToken(ts, tsStatic)
		n.Key, n.Computed = b.buildKey(ts.ChildByFieldName("property"))
		n.Value = b.field(ts, "value")
		return n

	case tsImportStatement:
		n := b.newNode(estree.ImportDeclaration, ts)
		source := ts.ChildByFieldName("source")
		n.Children = b.buildList(namedChildrenExcept(ts, source))
		n.Source = b.build(source)
		return n
	case tsExportStatement:
		if hasToken(ts, tsDefault) {
			n := b.newNode(estree.ExportDefaultDeclaration, ts)
			n.Declaration = b.field(ts, "declaration")
			if n.Declaration == nil {
				n.Declaration = b.field(ts, "value")
			}
			return n
		}
		n := b.newNode(estree.ExportNamedDeclaration, ts)
		declaration := ts.ChildByFieldName("declaration")
		source := ts.ChildByFieldName("source")
		n.Children = b.buildList(namedChildrenExcept(ts, declaration, source))
		n.Declaration = b.build(declaration)
		n.Source = b.build(source)
		return n
	}

	return b.buildUnknown(ts)
}

// buildUnknown keeps grammar nodes without an ESTree mapping, ERROR nodes
// included, so that the subtree stays reachable.
func (b *esBuilder) buildUnknown(ts *sitter.Node) *estree.Node {
	n := b.newNode(estree.Unknown, ts)
	n.Kind = ts.Type()
	n.Children = b.buildList(namedChildren(ts))
	if len(n.Children) == 0 {
		n.Raw = b.text(ts)
	}
	return n
}

func (b *esBuilder) buildMember(ts, property *sitter.Node, computed bool) *estree.Node {
	object := b.field(ts, "object")
	t := estree.MemberExpression
	optional := hasOptionalChain(ts)
	if optional || isOptionalChainLink(object) {
		t = estree.OptionalMemberExpression
	}

	n := b.newNode(t, ts)
	n.Object = object
	n.Property = b.build(property)
	n.Computed = computed
	n.Optional = optional
	return n
}

func (b *esBuilder) buildCall(ts *sitter.Node) *estree.Node {
	callee := b.field(ts, "function")
	args := ts.ChildByFieldName("arguments")

	if args != nil && args.Type() == tsTemplateString {
		n := b.newNode(estree.TaggedTemplateExpression, ts)
		n.Children = []*estree.Node{callee, b.build(args)}
		return n
	}

	t := estree.CallExpression
	optional := hasOptionalChain(ts)
	if optional || isOptionalChainLink(callee) {
		t = estree.OptionalCallExpression
	}

	n := b.newNode(t, ts)
	n.Callee = callee
	n.Optional = optional
	n.Arguments = b.buildArguments(args)
	return n
}

// isOptionalChainLink reports whether n continues an optional chain, so the
// expression wrapping it belongs to the same chain.
func isOptionalChainLink(n *estree.Node) bool {
	return n.Is(estree.OptionalMemberExpression, estree.OptionalCallExpression)
}

func (b *esBuilder) buildArguments(ts *sitter.Node) []*estree.Node {
	if ts == nil {
		return nil
	}
	return b.buildList(namedChildren(ts))
}

// buildKey converts a property or method name. Computed names are unwrapped
// and reported through the second return value.
func (b *esBuilder) buildKey(ts *sitter.Node) (*estree.Node, bool) {
	if ts == nil {
		return nil, false
	}
	if ts.Type() == tsComputedPropertyName {
		return b.build(firstNamed(ts)), true
	}
	return b.build(ts), false
}

func (b *esBuilder) buildProperties(ts *sitter.Node) []*estree.Node {
	children := namedChildren(ts)
	props := make([]*estree.Node, 0, len(children))

	for _, child := range children {
		var prop *estree.Node

		switch child.Type() {
		case tsPair, tsPairPattern:
			prop = b.newNode(estree.Property, child)
			prop.Kind = "init"
			prop.Key, prop.Computed = b.buildKey(child.ChildByFieldName("key"))
			prop.Value = b.field(child, "value")

		case tsShorthandPropertyIdentifier, tsShorthandPropertyIdentifierPatrn:
			prop = b.newNode(estree.Property, child)
			prop.Kind = "init"
			prop.Shorthand = true
			prop.Key = b.build(child)
			prop.Value = b.build(child)

		case tsObjectAssignmentPattern:
			prop = b.newNode(estree.Property, child)
			prop.Kind = "init"
			left := child.ChildByFieldName("left")
			prop.Shorthand = left != nil && left.Type() == tsShorthandPropertyIdentifierPatrn
			prop.Key = b.build(left)
			pattern := b.newNode(estree.AssignmentPattern, child)
			pattern.Left = b.build(left)
			pattern.Right = b.field(child, "right")
			prop.Value = pattern

		case tsMethodDefinition:
			prop = b.newNode(estree.Property, child)
			prop.Kind = methodKind(child, "init")
			prop.Method = prop.Kind == "init"
			prop.Key, prop.Computed = b.buildKey(child.ChildByFieldName("name"))
			prop.Value = b.buildMethodFunction(child)

		default:
			// spread_element, rest_pattern
			prop = b.build(child)
		}

		if prop != nil {
			props = append(props, prop)
		}
	}
	return props
}

// buildElements converts array elements, keeping holes as nil entries.
func (b *esBuilder) buildElements(ts *sitter.Node) []*estree.Node {
	elems := make([]*estree.Node, 0, ts.NamedChildCount())
	expectElem := true

	for i := 0; i < int(ts.ChildCount()); i++ {
		child := ts.Child(i)
		if child == nil {
			continue
		}
		if !child.IsNamed() {
			if child.Type() == tsComma {
				if expectElem {
					elems = append(elems, nil)
				}
				expectElem = true
			}
			continue
		}
		if child.Type() == tsComment {
			continue
		}
		elems = append(elems, b.build(child))
		expectElem = false
	}
	return elems
}

func flattenSequence(ts *sitter.Node, acc []*sitter.Node) []*sitter.Node {
	for _, child := range namedChildren(ts) {
		if child.Type() == tsSequenceExpression {
			acc = flattenSequence(child, acc)
			continue
		}
		acc = append(acc, child)
	}
	return acc
}

func (b *esBuilder) buildParams(ts *sitter.Node) []*estree.Node {
	if ts == nil {
		return nil
	}
	return b.buildList(namedChildren(ts))
}

func (b *esBuilder) buildFunction(t estree.NodeType, ts *sitter.Node) *estree.Node {
	n := b.newNode(t, ts)
	n.ID = b.field(ts, "name")
	n.Async = hasToken(ts, tsAsync)
	n.Generator = hasToken(ts, tsStar)
	n.Params = b.buildParams(ts.ChildByFieldName("parameters"))
	n.Body = b.field(ts, "body")
	return n
}

// buildMethodFunction builds the FunctionExpression value of a method.
func (b *esBuilder) buildMethodFunction(ts *sitter.Node) *estree.Node {
	fn := b.newNode(estree.FunctionExpression, ts)
	fn.Async = hasToken(ts, tsAsync)
	fn.Generator = hasToken(ts, tsStar)
	fn.Params = b.buildParams(ts.ChildByFieldName("parameters"))
	fn.Body = b.field(ts, "body")
	return fn
}

// methodKind returns "get" or "set" for accessors and fallback otherwise.
func methodKind(ts *sitter.Node, fallback string) string {
	switch {
	case hasToken(ts, tsGet):
		return "get"
	case hasToken(ts, tsSet):
		return "set"
	}
	return fallback
}

func (b *esBuilder) buildClass(t estree.NodeType, ts *sitter.Node) *estree.Node {
	n := b.newNode(t, ts)
	n.ID = b.field(ts, "name")
	for _, child := range namedChildren(ts) {
		if child.Type() == tsClassHeritage {
			n.SuperClass = b.build(firstNamed(child))
		}
	}
	n.Body = b.field(ts, "body")
	return n
}

func (b *esBuilder) buildClassBody(ts *sitter.Node) *estree.Node {
	n := b.newNode(estree.ClassBody, ts)
	children := namedChildren(ts)
	n.Statements = make([]*estree.Node, 0, len(children))

	for _, child := range children {
		if child.Type() != tsMethodDefinition {
			if member := b.build(child); member != nil {
				n.Statements = append(n.Statements, member)
			}
			continue
		}

		def := b.newNode(estree.MethodDefinition, child)
		def.Static = hasToken(child, tsStatic)
		def.Key, def.Computed = b.buildKey(child.ChildByFieldName("name"))
		def.Kind = methodKind(child, "method")
		if def.Kind == "method" && !def.Computed && !def.Static &&
			def.Key.Is(estree.Identifier) && def.Key.Name == "constructor" {
			def.Kind = "constructor"
		}
		def.Value = b.buildMethodFunction(child)
		n.Statements = append(n.Statements, def)
	}
	return n
}

// collectSyntaxErrors reports every ERROR and MISSING node in the tree as
// "path:line:col: message".
func collectSyntaxErrors(root *sitter.Node, filePath string, limit int) []string {
	if root == nil || !root.HasError() {
		return nil
	}

	var errs []string
	stack := []*sitter.Node{root}
	for len(stack) > 0 && len(errs) < limit {
		ts := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		start := ts.StartPoint()
		switch {
		case ts.IsMissing():
			errs = append(errs, fmt.Sprintf("%s:%d:%d: missing %s",
				filePath, start.Row+1, start.Column, ts.Type()))
			continue
		case ts.Type() == tsError:
			errs = append(errs, fmt.Sprintf("%s:%d:%d: syntax error",
				filePath, start.Row+1, start.Column))
			continue
		}

		if !ts.HasError() {
			continue
		}
		for i := int(ts.ChildCount()) - 1; i >= 0; i-- {
			if child := ts.Child(i); child != nil {
				stack = append(stack, child)
			}
		}
	}
	return errs
}
