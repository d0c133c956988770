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

// MaxDepth caps recursion and chain walks. Trees from the loader are acyclic,
// but hand-built trees in tests may not be.
const MaxDepth = 512

// GetName reconstructs the dotted textual name of an expression.
//
// Description:
//
//	  - Identifier          -> its name
//	  - ThisExpression      -> "this"
//	  - Call/OptionalCall   -> name of the callee
//	  - Member/OptionalMember -> name(object) + "." + name(property)
//
//	Any other variant has no textual name. A member expression with an
//	unnamed side is unnamed as a whole, so `foo().bar` resolves through the
//	call to "foo.bar" but `[1][0]` has no name.
//
// Inputs:
//
//	node - Any node; nil is allowed.
//
// Outputs:
//
//	string - The dotted name, e.g. "this.x.y" for this.x.y().
//	bool   - False when no textual name is available.
//
// Thread Safety: Safe for concurrent use (pure function).
func GetName(node *estree.Node) (string, bool) {
	return getName(node, 0)
}

func getName(node *estree.Node, depth int) (string, bool) {
	if node == nil || depth >= MaxDepth {
		return "", false
	}

	switch node.Type {
	case estree.Identifier:
		return node.Name, true

	case estree.ThisExpression:
		return "this", true

	case estree.CallExpression, estree.OptionalCallExpression:
		return getName(node.Callee, depth+1)

	case estree.MemberExpression, estree.OptionalMemberExpression:
		object, ok := getName(node.Object, depth+1)
		if !ok {
			return "", false
		}
		property, ok := getName(node.Property, depth+1)
		if !ok {
			return "", false
		}
		return object + "." + property, true

	default:
		return "", false
	}
}
