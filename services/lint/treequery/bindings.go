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
	"slices"

	"github.com/AleutianAI/treequery/services/lint/estree"
)

// BindingMap maps a source variable name to the property names that callers
// care about when they are destructured from it, e.g. {"Ember": ["$"]}.
// The map is owned by the caller and only read here.
type BindingMap map[string][]string

// CollectObjectPatternBindings resolves the local names introduced by
// destructuring tracked properties out of a tracked object.
//
// Description:
//
//	Applies only when declarator.ID is an ObjectPattern and declarator.Init
//	is an Identifier whose name is a key of bindings. For each Property of
//	the pattern, in pattern order, whose key name is listed for that object,
//	the local binding name is collected. Aliases resolve to the alias:
//	`const { $: foo } = Ember` with {"Ember": ["$"]} yields ["foo"]. A
//	default value (`{ $: foo = bar }`) still binds foo. Rest elements and
//	computed keys never match.
//
// Inputs:
//
//	declarator - A VariableDeclarator. Anything else yields an empty result.
//	bindings   - Tracked objects and their tracked property names.
//
// Outputs:
//
//	[]string - Local names in pattern order. Never nil.
//
// Thread Safety: Safe for concurrent use (pure function).
func CollectObjectPatternBindings(declarator *estree.Node, bindings BindingMap) []string {
	names := make([]string, 0, 2)
	if declarator == nil || !declarator.ID.Is(estree.ObjectPattern) {
		return names
	}
	if !declarator.Init.Is(estree.Identifier) {
		return names
	}

	tracked, ok := bindings[declarator.Init.Name]
	if !ok {
		return names
	}

	for _, prop := range declarator.ID.Properties {
		if !prop.Is(estree.Property) || prop.Computed {
			continue
		}
		key, ok := propertyKeyName(prop.Key)
		if !ok || !slices.Contains(tracked, key) {
			continue
		}
		if local, ok := localBindingName(prop.Value); ok {
			names = append(names, local)
		}
	}
	return names
}

// propertyKeyName returns the static name of a property key. String
// literal keys ({ 'a-b': x }) count as names.
func propertyKeyName(key *estree.Node) (string, bool) {
	switch {
	case key.Is(estree.Identifier):
		return key.Name, true
	case key.Is(estree.Literal):
		s, ok := key.LiteralValue.(string)
		return s, ok
	}
	return "", false
}

func localBindingName(value *estree.Node) (string, bool) {
	if value.Is(estree.AssignmentPattern) {
		value = value.Left
	}
	if value.Is(estree.Identifier) {
		return value.Name, true
	}
	return "", false
}
