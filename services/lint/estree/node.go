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

// NodeType is the ESTree variant discriminator of a Node.
type NodeType string

// ESTree node variants produced by the JavaScript loader.
const (
	Program NodeType = "Program"

	Identifier        NodeType = "Identifier"
	PrivateIdentifier NodeType = "PrivateIdentifier"
	Literal           NodeType = "Literal"
	TemplateLiteral   NodeType = "TemplateLiteral"
	ThisExpression    NodeType = "ThisExpression"
	Super             NodeType = "Super"

	MemberExpression         NodeType = "MemberExpression"
	OptionalMemberExpression NodeType = "OptionalMemberExpression"
	CallExpression           NodeType = "CallExpression"
	OptionalCallExpression   NodeType = "OptionalCallExpression"
	NewExpression            NodeType = "NewExpression"
	TaggedTemplateExpression NodeType = "TaggedTemplateExpression"

	ObjectExpression  NodeType = "ObjectExpression"
	ArrayExpression   NodeType = "ArrayExpression"
	ObjectPattern     NodeType = "ObjectPattern"
	ArrayPattern      NodeType = "ArrayPattern"
	AssignmentPattern NodeType = "AssignmentPattern"
	RestElement       NodeType = "RestElement"
	SpreadElement     NodeType = "SpreadElement"
	Property          NodeType = "Property"

	AssignmentExpression  NodeType = "AssignmentExpression"
	BinaryExpression      NodeType = "BinaryExpression"
	LogicalExpression     NodeType = "LogicalExpression"
	UnaryExpression       NodeType = "UnaryExpression"
	UpdateExpression      NodeType = "UpdateExpression"
	ConditionalExpression NodeType = "ConditionalExpression"
	SequenceExpression    NodeType = "SequenceExpression"
	AwaitExpression       NodeType = "AwaitExpression"
	YieldExpression       NodeType = "YieldExpression"

	VariableDeclaration     NodeType = "VariableDeclaration"
	VariableDeclarator      NodeType = "VariableDeclarator"
	FunctionDeclaration     NodeType = "FunctionDeclaration"
	FunctionExpression      NodeType = "FunctionExpression"
	ArrowFunctionExpression NodeType = "ArrowFunctionExpression"
	ClassDeclaration        NodeType = "ClassDeclaration"
	ClassExpression         NodeType = "ClassExpression"
	ClassBody               NodeType = "ClassBody"
	MethodDefinition        NodeType = "MethodDefinition"
	PropertyDefinition      NodeType = "PropertyDefinition"

	BlockStatement           NodeType = "BlockStatement"
	ExpressionStatement      NodeType = "ExpressionStatement"
	ReturnStatement          NodeType = "ReturnStatement"
	IfStatement              NodeType = "IfStatement"
	ImportDeclaration        NodeType = "ImportDeclaration"
	ExportNamedDeclaration   NodeType = "ExportNamedDeclaration"
	ExportDefaultDeclaration NodeType = "ExportDefaultDeclaration"

	// Unknown marks grammar nodes with no ESTree mapping. Their children
	// are kept in Node.Children so traversal and parent links still work.
	Unknown NodeType = "Unknown"
)

// Position is a point in source text. Line is 1-based, Column is 0-based.
type Position struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// SourceLocation is the inclusive line/column range covered by a node.
type SourceLocation struct {
	Start Position `json:"start" yaml:"start"`
	End   Position `json:"end" yaml:"end"`
}

// Node is a single ESTree element.
//
// Description:
//
//	Node is a tagged union: Type selects the variant and only the payload
//	fields that variant defines are populated. Field names mirror the ESTree
//	JSON property names ("callee", "object", "property", ...); use Field for
//	dynamic access by that name.
//
//	Parent is a non-owning back-reference. It is established by whoever owns
//	the tree (the loader or SetParents) and is only ever read by queries.
//
// Thread Safety:
//
//	A Node is immutable once built and its parents are wired. Any number of
//	goroutines may read a shared tree concurrently.
type Node struct {
	Type   NodeType       `json:"type"`
	Parent *Node          `json:"-"`
	Loc    SourceLocation `json:"loc"`

	// Identifier, PrivateIdentifier.
	Name string `json:"name,omitempty"`

	// Literal. LiteralValue holds string, float64, bool, nil, *big.Int
	// (BigInt literals) or *RegExpValue.
	Raw          string `json:"raw,omitempty"`
	LiteralValue any    `json:"value,omitempty"`

	// Operator for assignment/binary/logical/unary/update expressions.
	Operator string `json:"operator,omitempty"`

	// Kind is "var"/"let"/"const" on declarations, "init"/"get"/"set" on
	// properties, "constructor"/"method"/"get"/"set" on method definitions,
	// and the tree-sitter grammar type on Unknown nodes.
	Kind string `json:"kind,omitempty"`

	Computed  bool `json:"computed,omitempty"`
	Optional  bool `json:"optional,omitempty"`
	Shorthand bool `json:"shorthand,omitempty"`
	Method    bool `json:"method,omitempty"`
	Static    bool `json:"static,omitempty"`
	Async     bool `json:"async,omitempty"`
	Generator bool `json:"generator,omitempty"`

	// Member and call expressions.
	Callee    *Node   `json:"callee,omitempty"`
	Object    *Node   `json:"object,omitempty"`
	Property  *Node   `json:"property,omitempty"`
	Arguments []*Node `json:"arguments,omitempty"`

	// Object/array literals and patterns.
	Properties []*Node `json:"properties,omitempty"`
	Elements   []*Node `json:"elements,omitempty"`
	Key        *Node   `json:"key,omitempty"`
	Value      *Node   `json:"-"`

	// Declarations.
	Declarations []*Node `json:"declarations,omitempty"`
	ID           *Node   `json:"id,omitempty"`
	Init         *Node   `json:"init,omitempty"`

	// Assignments, binary expressions, assignment patterns.
	Left  *Node `json:"left,omitempty"`
	Right *Node `json:"right,omitempty"`

	// Argument of spread/rest/unary/update/return/await/yield.
	Argument *Node `json:"argument,omitempty"`

	// Functions and classes. Body is the body node of a function, arrow
	// function or class; Statements is the body list of Program,
	// BlockStatement and ClassBody.
	Params     []*Node `json:"params,omitempty"`
	Body       *Node   `json:"-"`
	Statements []*Node `json:"-"`
	SuperClass *Node   `json:"superClass,omitempty"`

	// Test/consequent/alternate of conditionals.
	Test       *Node `json:"test,omitempty"`
	Consequent *Node `json:"consequent,omitempty"`
	Alternate  *Node `json:"alternate,omitempty"`

	// Expression of ExpressionStatement; Expressions of sequences and
	// template literals.
	Expression  *Node   `json:"expression,omitempty"`
	Expressions []*Node `json:"expressions,omitempty"`

	// Source of import/export declarations, Declaration of exports.
	Source      *Node `json:"source,omitempty"`
	Declaration *Node `json:"declaration,omitempty"`

	// Children holds grammar children of Unknown nodes and of any mapped node
	// whose remaining parts have no dedicated field.
	Children []*Node `json:"children,omitempty"`
}

// RegExpValue is the LiteralValue of a regular expression literal.
type RegExpValue struct {
	Pattern string `json:"pattern"`
	Flags   string `json:"flags"`
}

// IsBlockLike reports whether the node's "body" is a statement list.
func (n *Node) IsBlockLike() bool {
	if n == nil {
		return false
	}
	switch n.Type {
	case Program, BlockStatement, ClassBody:
		return true
	}
	return false
}

// Is reports whether the node is non-nil and of one of the given types.
func (n *Node) Is(types ...NodeType) bool {
	if n == nil {
		return false
	}
	for _, t := range types {
		if n.Type == t {
			return true
		}
	}
	return false
}
