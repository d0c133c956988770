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
	"math"
	"math/big"
	"slices"

	"github.com/AleutianAI/treequery/services/lint/estree"
)

// ParseCallee decomposes the callee of a call or constructor expression into
// its dotted name segments.
//
// Description:
//
//	Walks the callee member chain from the outermost property inward,
//	recording every non-computed Identifier property, then records the
//	Identifier at the root of the chain. Computed properties (a[b]) and
//	non-identifier roots (this, calls, literals) contribute nothing, so the
//	result may be shorter than the chain.
//
// Inputs:
//
//	node - A CallExpression, OptionalCallExpression or NewExpression.
//	       Any other node (including nil) yields an empty result.
//
// Outputs:
//
//	[]string - Segments in root-to-leaf order, e.g.
//	           Ember.computed.alias() -> [Ember computed alias]. Never nil.
//
// Thread Safety: Safe for concurrent use (pure function).
func ParseCallee(node *estree.Node) []string {
	parsed := make([]string, 0, 4)
	if !node.Is(estree.CallExpression, estree.OptionalCallExpression, estree.NewExpression) {
		return parsed
	}

	callee := node.Callee
	for depth := 0; isMember(callee) && depth < MaxDepth; depth++ {
		if !callee.Computed && callee.Property.Is(estree.Identifier) {
			parsed = append(parsed, callee.Property.Name)
		}
		callee = callee.Object
	}
	if callee.Is(estree.Identifier) {
		parsed = append(parsed, callee.Name)
	}

	slices.Reverse(parsed)
	return parsed
}

// ParseArgs returns the values of the truthy literal arguments of a call.
//
// Description:
//
//	Only Literal arguments are considered, and of those only values that are
//	truthy under JavaScript rules. Literal 0, '', false and null arguments
//	are dropped. Call sites rely on this filtering; it is not a general
//	"all literal arguments" extractor.
//
// Inputs:
//
//	node - A CallExpression. Any other node (including nil) yields an
//	       empty result.
//
// Outputs:
//
//	[]any - Literal values in argument order. Never nil.
//
// Example:
//
//	f('x', 0, 'y', null) -> ["x" "y"]
//
// Thread Safety: Safe for concurrent use (pure function).
func ParseArgs(node *estree.Node) []any {
	args := make([]any, 0, 2)
	if !node.Is(estree.CallExpression) {
		return args
	}

	for _, arg := range node.Arguments {
		if arg.Is(estree.Literal) && IsTruthy(arg.LiteralValue) {
			args = append(args, arg.LiteralValue)
		}
	}
	return args
}

// IsTruthy applies JavaScript truthiness to a literal value.
//
// nil, false, "", 0, -0, 0n and NaN are falsy; every other value, including
// regular expressions and non-empty strings such as "0", is truthy.
func IsTruthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case float64:
		return val != 0 && !math.IsNaN(val)
	case float32:
		return val != 0 && !math.IsNaN(float64(val))
	case int:
		return val != 0
	case int64:
		return val != 0
	case *big.Int:
		return val != nil && val.Sign() != 0
	}
	return true
}

func isMember(n *estree.Node) bool {
	return n.Is(estree.MemberExpression, estree.OptionalMemberExpression)
}
