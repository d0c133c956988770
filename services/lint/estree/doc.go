// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package estree defines the ESTree-shaped JavaScript syntax tree consumed by
// the treequery helpers.
//
// A tree is a set of *Node values linked downward through typed payload
// fields (Callee, Object, Arguments, ...) and upward through the non-owning
// Parent reference. The package owns no parsing logic; trees come from the
// parser package or are built by hand and wired with SetParents.
//
// # Usage
//
//	call := &estree.Node{
//	    Type:   estree.CallExpression,
//	    Callee: &estree.Node{Type: estree.Identifier, Name: "alias"},
//	}
//	estree.SetParents(call)
//
//	estree.Walk(call, func(n *estree.Node) bool {
//	    fmt.Println(n.Type)
//	    return true
//	})
package estree
