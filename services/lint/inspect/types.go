// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package inspect

import (
	"github.com/google/uuid"
)

// FileReport is the result of inspecting one JavaScript file.
type FileReport struct {
	// Path is the inspected file path.
	Path string `json:"path" yaml:"path"`

	// Hash is the hex SHA-256 of the file content.
	Hash string `json:"hash" yaml:"hash"`

	// NodeCount is the number of ESTree nodes in the file.
	NodeCount int `json:"node_count" yaml:"node_count"`

	// SyntaxErrors lists recoverable syntax errors. The other sections are
	// computed from the partial tree.
	SyntaxErrors []string `json:"syntax_errors,omitempty" yaml:"syntax_errors,omitempty"`

	// Imports lists the sources of top-level import declarations.
	Imports []string `json:"imports,omitempty" yaml:"imports,omitempty"`

	Calls           []CallReport       `json:"calls" yaml:"calls"`
	Assignments     []AssignmentReport `json:"assignments" yaml:"assignments"`
	Bindings        []BindingReport    `json:"bindings" yaml:"bindings"`
	Methods         []MethodReport     `json:"methods" yaml:"methods"`
	OrderViolations []OrderViolation   `json:"order_violations" yaml:"order_violations"`
}

// CallReport describes one call or constructor expression.
type CallReport struct {
	// Callee is the dotted callee chain, e.g. [Ember computed alias].
	Callee []string `json:"callee" yaml:"callee"`

	// Name is the textual name of the call, empty when it has none.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// New is true for constructor calls.
	New bool `json:"new,omitempty" yaml:"new,omitempty"`

	// Args holds the truthy literal arguments.
	Args []any `json:"args" yaml:"args"`

	Line int `json:"line" yaml:"line"`
	Size int `json:"size" yaml:"size"`

	// InAssignmentLeft is true when the call is part of an assignment target.
	InAssignmentLeft bool `json:"in_assignment_left,omitempty" yaml:"in_assignment_left,omitempty"`

	// Properties holds the values of the requested property paths that
	// resolved on this call.
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// AssignmentReport describes one assignment whose target has a name.
type AssignmentReport struct {
	Target   string `json:"target" yaml:"target"`
	Operator string `json:"operator" yaml:"operator"`
	Line     int    `json:"line" yaml:"line"`
}

// BindingReport lists the locals destructured from a tracked object.
type BindingReport struct {
	Object string   `json:"object" yaml:"object"`
	Names  []string `json:"names" yaml:"names"`
	Line   int      `json:"line" yaml:"line"`
}

// MethodReport describes a class method or object-literal method.
type MethodReport struct {
	Name string `json:"name" yaml:"name"`

	// Class is the enclosing class name, empty for object-literal methods
	// and "(anonymous)" for unnamed class expressions.
	Class string `json:"class,omitempty" yaml:"class,omitempty"`

	Line  int  `json:"line" yaml:"line"`
	Size  int  `json:"size" yaml:"size"`
	Empty bool `json:"empty" yaml:"empty"`
}

// OrderViolation is the first member of an object literal or class body
// that appears before a member of an earlier configured kind.
type OrderViolation struct {
	// Container is "class <Name>" or "object".
	Container string `json:"container" yaml:"container"`

	Property string `json:"property" yaml:"property"`
	Kind     string `json:"kind" yaml:"kind"`

	// Before is the following member that should have come first.
	Before     string `json:"before" yaml:"before"`
	BeforeKind string `json:"before_kind" yaml:"before_kind"`

	Line int `json:"line" yaml:"line"`
}

// FileFailure records a file that could not be inspected.
type FileFailure struct {
	Path  string `json:"path" yaml:"path"`
	Error string `json:"error" yaml:"error"`
}

// RunReport is the result of inspecting a set of files.
type RunReport struct {
	// ID identifies this run in logs and traces.
	ID uuid.UUID `json:"id" yaml:"id"`

	// Files holds one report per successfully inspected file, in input
	// order.
	Files []*FileReport `json:"files" yaml:"files"`

	// Failures lists files that could not be read or parsed.
	Failures []FileFailure `json:"failures,omitempty" yaml:"failures,omitempty"`
}
