// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package treequery answers structural questions about ESTree syntax trees.
//
// Every function in this package is a pure read of an externally owned,
// already-parsed tree: nothing is mutated, cached or logged, and no function
// blocks. The helpers are safe for concurrent use on shared trees.
//
// # Queries
//
//	| Question                                   | Function                           |
//	|--------------------------------------------|------------------------------------|
//	| What dotted chain does this call invoke?   | ParseCallee                        |
//	| Which truthy literal arguments were passed?| ParseArgs                          |
//	| What is the textual name of this expr?     | GetName                            |
//	| Which enclosing node matches?              | GetAncestor                        |
//	| Is this node an assignment target?         | IsInLeftSideOfAssignmentExpression |
//	| Which locals alias tracked properties?     | CollectObjectPatternBindings       |
//	| Which siblings have this type?             | FindNodes                          |
//	| How many lines does this node span?        | GetSize                            |
//	| What is at this dotted field path?         | GetPropertyValue                   |
//	| Which property is first out of order?      | FindUnorderedProperty              |
//	| Is this method body empty?                 | IsEmptyMethod                      |
//
// # Partial trees
//
// Queries degrade instead of failing: missing fields produce empty slices,
// false, or ok == false. Callers should read such results as "no
// information", not as verified absence.
package treequery
