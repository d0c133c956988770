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
	"math"
	"math/big"
	"slices"

	"github.com/AleutianAI/treequery/services/lint/config"
	"github.com/AleutianAI/treequery/services/lint/estree"
	"github.com/AleutianAI/treequery/services/lint/treequery"
)

// memberName returns the static name of a property, method or field key.
func memberName(n *estree.Node) string {
	key := n.Key
	switch {
	case key == nil:
		return ""
	case n.Computed:
		if name, ok := treequery.GetName(key); ok {
			return "[" + name + "]"
		}
		return "[computed]"
	case key.Is(estree.Identifier):
		return key.Name
	case key.Is(estree.PrivateIdentifier):
		return "#" + key.Name
	case key.Is(estree.Literal):
		return key.Raw
	}
	return ""
}

// classify returns the property kind of a container member, or false for
// members that are not order-checked (spreads, observers, static blocks).
func (i *Inspector) classify(member *estree.Node) (string, bool) {
	if !member.Is(estree.Property, estree.MethodDefinition, estree.PropertyDefinition) {
		return "", false
	}

	name := memberName(member)
	if name == "actions" {
		return config.KindActions, true
	}

	value := member.Value
	switch {
	case member.Type == estree.MethodDefinition || member.Method ||
		value.Is(estree.FunctionExpression, estree.ArrowFunctionExpression):
		if i.cfg.IsLifecycleHook(name) {
			return config.KindLifecycleHook, true
		}
		return config.KindMethod, true

	case value.Is(estree.CallExpression, estree.OptionalCallExpression):
		callee := treequery.ParseCallee(value)
		switch {
		case len(callee) == 0:
			return config.KindProperty, true
		case slices.Contains(callee, "observer"):
			return "", false
		case isServiceCallee(callee):
			return config.KindService, true
		case slices.Contains(callee, "computed"):
			return config.KindComputed, true
		}
	}
	return config.KindProperty, true
}

// isServiceCallee matches service() and inject() in all their forms:
// service(), inject(), Ember.inject.service(), inject.controller().
func isServiceCallee(callee []string) bool {
	last := callee[len(callee)-1]
	return last == "service" || last == "inject" || slices.Contains(callee, "inject")
}

// checkOrder reports the first member of members whose kind is configured
// later than the kind of the member that follows it.
func (i *Inspector) checkOrder(members []*estree.Node, container string) (OrderViolation, bool) {
	list := make([]treequery.OrderedProperty, 0, len(members))
	kinds := make(map[*estree.Node]string, len(members))

	for _, m := range members {
		kind, ok := i.classify(m)
		if !ok {
			continue
		}
		order, ok := i.cfg.Order(kind)
		if !ok {
			continue
		}
		kinds[m] = kind
		list = append(list, treequery.OrderedProperty{Node: m, Name: memberName(m), Order: order})
	}

	offender, ok := treequery.FindUnorderedProperty(list)
	if !ok {
		return OrderViolation{}, false
	}

	v := OrderViolation{
		Container: container,
		Property:  offender.Name,
		Kind:      kinds[offender.Node],
		Line:      offender.Node.Loc.Start.Line,
	}
	if idx := slices.IndexFunc(list, func(p treequery.OrderedProperty) bool {
		return p.Node == offender.Node
	}); idx >= 0 && idx+1 < len(list) {
		next := list[idx+1]
		v.Before = next.Name
		v.BeforeKind = kinds[next.Node]
	}
	return v, true
}

// describeValue converts query results into values that serialize cleanly:
// nodes become their dotted name or type, BigInts their decimal text and
// non-finite numbers their JavaScript spelling.
func describeValue(v any) any {
	switch val := v.(type) {
	case *estree.Node:
		if val == nil {
			return nil
		}
		if val.Type == estree.Literal {
			return describeValue(val.LiteralValue)
		}
		if name, ok := treequery.GetName(val); ok {
			return name
		}
		return string(val.Type)
	case []*estree.Node:
		out := make([]any, 0, len(val))
		for _, n := range val {
			out = append(out, describeValue(n))
		}
		return out
	case *big.Int:
		return val.String() + "n"
	case float64:
		switch {
		case math.IsNaN(val):
			return "NaN"
		case math.IsInf(val, 1):
			return "Infinity"
		case math.IsInf(val, -1):
			return "-Infinity"
		}
	}
	return v
}
