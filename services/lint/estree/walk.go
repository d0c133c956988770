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

// Visitor is called for each node during Walk. Returning false skips the
// node's children.
type Visitor func(n *Node) bool

// Walk traverses the tree rooted at root depth-first in pre-order.
//
// Description:
//
//	Walk uses an explicit stack so deeply nested trees (long member chains,
//	minified bundles) cannot exhaust the goroutine stack.
//
// Thread Safety: Safe for concurrent use as long as fn does not mutate the tree.
func Walk(root *Node, fn Visitor) {
	if root == nil || fn == nil {
		return
	}

	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !fn(n) {
			continue
		}

		children := n.ChildNodes()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
}

// SetParents wires the Parent back-reference of every node below root.
//
// Description:
//
//	The tree owner calls SetParents once after building a tree by hand.
//	root.Parent is left untouched so a subtree can be re-wired in place.
//	Parent links are non-owning; dropping the root releases the whole tree.
//
// Thread Safety: Not safe for concurrent use; mutates the tree.
func SetParents(root *Node) {
	Walk(root, func(n *Node) bool {
		for _, c := range n.ChildNodes() {
			c.Parent = n
		}
		return true
	})
}

// Count returns the number of nodes in the tree rooted at root.
func Count(root *Node) int {
	count := 0
	Walk(root, func(*Node) bool {
		count++
		return true
	})
	return count
}
