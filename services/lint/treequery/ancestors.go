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

import "github.com/AleutianAI/treequery/services/lint/estree"

// Predicate reports whether a node matches an ancestor search.
type Predicate func(n *estree.Node) bool

// GetAncestor returns the nearest node, starting at node itself, that
// satisfies pred.
//
// Description:
//
//	Tests node, then node.Parent, and so on up to the root. The walk is a
//	single linear pass with no backtracking.
//
// Inputs:
//
//	node - Starting node. Nil yields nil.
//	pred - Match predicate. Nil yields nil.
//
// Outputs:
//
//	*estree.Node - The first match, or nil if the root was passed without one.
//
// Thread Safety: Safe for concurrent use if pred is.
func GetAncestor(node *estree.Node, pred Predicate) *estree.Node {
	if pred == nil {
		return nil
	}
	for current := node; current != nil; current = current.Parent {
		if pred(current) {
			return current
		}
	}
	return nil
}

// IsInLeftSideOfAssignmentExpression reports whether node is part of the
// assignment target of an enclosing assignment.
//
// Description:
//
//	True iff node, or one of its ancestors, is the Left child of an
//	AssignmentExpression. For `this.x.y = 1` the nodes for this, x, y and
//	every member expression between them are on the left side; the literal 1
//	is not.
//
// Thread Safety: Safe for concurrent use (pure function).
func IsInLeftSideOfAssignmentExpression(node *estree.Node) bool {
	return GetAncestor(node, isAssignmentLeft) != nil
}

func isAssignmentLeft(n *estree.Node) bool {
	return n.Parent.Is(estree.AssignmentExpression) && n.Parent.Left == n
}
