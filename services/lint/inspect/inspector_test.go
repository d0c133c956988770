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
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/treequery/services/lint/config"
)

const componentSource = `import Ember from 'ember';
const { $: jq, computed } = Ember;

export default Ember.Component.extend({
  didInsertElement() {},
  session: Ember.inject.service(),
  fullName: computed('first', 'last', function () {
    return this.get('first');
  }),
  actions: {
    save() { this.set('saved', true); },
  },
});

class Widget {
  render() { jq('.x').hide(); }
  init() {}
}

this.x.y = 1;
`

func newInspector(t *testing.T, opts ...Option) *Inspector {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	insp, err := New(cfg, opts...)
	require.NoError(t, err)
	return insp
}

func TestNew_NilConfig(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNilConfig)
}

func TestInspectSource_Calls(t *testing.T) {
	insp := newInspector(t, WithPropertyPaths("callee.property.name", " ", "arguments.0.value"))
	report, err := insp.InspectSource(context.Background(), "component.js", []byte(componentSource))
	require.NoError(t, err)

	byName := make(map[string]CallReport)
	for _, c := range report.Calls {
		byName[c.Name] = c
	}

	extend, ok := byName["Ember.Component.extend"]
	require.True(t, ok)
	assert.Equal(t, []string{"Ember", "Component", "extend"}, extend.Callee)
	assert.Equal(t, 4, extend.Line)
	assert.Equal(t, 10, extend.Size)
	assert.Equal(t, "extend", extend.Properties["callee.property.name"])

	computedCall := byName["computed"]
	assert.Equal(t, []any{"first", "last"}, computedCall.Args)
	assert.Equal(t, "first", computedCall.Properties["arguments.0.value"])

	set := byName["this.set"]
	assert.Equal(t, []any{"saved", true}, set.Args)

	hide, ok := byName["jq.hide"]
	require.True(t, ok, "call through a call resolves to its callee name")
	assert.Equal(t, []string{"hide"}, hide.Callee)
	assert.False(t, hide.InAssignmentLeft)
}

func TestInspectSource_Sections(t *testing.T) {
	insp := newInspector(t)
	report, err := insp.InspectSource(context.Background(), "component.js", []byte(componentSource))
	require.NoError(t, err)

	assert.Empty(t, report.SyntaxErrors)
	assert.Equal(t, []string{"ember"}, report.Imports)
	assert.Len(t, report.Hash, 64)
	assert.Positive(t, report.NodeCount)

	require.Len(t, report.Bindings, 1)
	assert.Equal(t, BindingReport{Object: "Ember", Names: []string{"jq", "computed"}, Line: 2}, report.Bindings[0])

	require.Len(t, report.Assignments, 1)
	assert.Equal(t, AssignmentReport{Target: "this.x.y", Operator: "=", Line: 20}, report.Assignments[0])

	methods := make(map[string]MethodReport)
	for _, m := range report.Methods {
		methods[m.Class+"#"+m.Name] = m
	}
	assert.True(t, methods["#didInsertElement"].Empty)
	assert.False(t, methods["#save"].Empty)
	assert.Equal(t, "Widget", methods["Widget#render"].Class)
	assert.False(t, methods["Widget#render"].Empty)
	assert.True(t, methods["Widget#init"].Empty)
}

func TestInspectSource_OrderViolations(t *testing.T) {
	insp := newInspector(t)
	report, err := insp.InspectSource(context.Background(), "component.js", []byte(componentSource))
	require.NoError(t, err)

	// The component lists a lifecycle hook before a service; the class lists
	// a method before a lifecycle hook.
	require.Len(t, report.OrderViolations, 2)

	obj := report.OrderViolations[0]
	assert.Equal(t, "object", obj.Container)
	assert.Equal(t, "didInsertElement", obj.Property)
	assert.Equal(t, config.KindLifecycleHook, obj.Kind)
	assert.Equal(t, "session", obj.Before)
	assert.Equal(t, config.KindService, obj.BeforeKind)
	assert.Equal(t, 5, obj.Line)

	class := report.OrderViolations[1]
	assert.Equal(t, "class Widget", class.Container)
	assert.Equal(t, "render", class.Property)
	assert.Equal(t, config.KindMethod, class.Kind)
	assert.Equal(t, "init", class.Before)
}

func TestInspectSource_InOrderHasNoViolations(t *testing.T) {
	src := `export default Ember.Component.extend({
  store: Ember.inject.service(),
  tagName: 'div',
  total: Ember.computed('a', function () {}),
  init() { this._super(...arguments); },
  actions: {},
  helper() {},
});`
	insp := newInspector(t)
	report, err := insp.InspectSource(context.Background(), "ok.js", []byte(src))
	require.NoError(t, err)
	assert.Empty(t, report.OrderViolations)
}

func TestInspectSource_CallOnAssignmentLeft(t *testing.T) {
	insp := newInspector(t)
	report, err := insp.InspectSource(context.Background(), "assign.js", []byte("foo().bar = baz();"))
	require.NoError(t, err)
	require.Len(t, report.Calls, 2)

	assert.Equal(t, "foo", report.Calls[0].Name)
	assert.True(t, report.Calls[0].InAssignmentLeft)
	assert.Equal(t, "baz", report.Calls[1].Name)
	assert.False(t, report.Calls[1].InAssignmentLeft)
}

func TestInspectSource_CalleeInComputedAssignmentTarget(t *testing.T) {
	insp := newInspector(t)
	report, err := insp.InspectSource(context.Background(), "computed.js", []byte("a[key()] = value(b);"))
	require.NoError(t, err)
	require.Len(t, report.Calls, 2)

	assert.Equal(t, "key", report.Calls[0].Name)
	assert.True(t, report.Calls[0].InAssignmentLeft)
	assert.Equal(t, "value", report.Calls[1].Name)
	assert.False(t, report.Calls[1].InAssignmentLeft)
}

func TestInspectSource_BigIntArgsAreText(t *testing.T) {
	insp := newInspector(t)
	report, err := insp.InspectSource(context.Background(), "big.js", []byte("f(10n, 0n);"))
	require.NoError(t, err)
	require.Len(t, report.Calls, 1)
	assert.Equal(t, []any{"10n"}, report.Calls[0].Args)
}

func TestInspectSource_NonFiniteArgsAreText(t *testing.T) {
	insp := newInspector(t, WithPropertyPaths("arguments.0.value"))
	report, err := insp.InspectSource(context.Background(), "inf.js", []byte("f(1e999, 'x');"))
	require.NoError(t, err)
	require.Len(t, report.Calls, 1)

	assert.Equal(t, []any{"Infinity", "x"}, report.Calls[0].Args)
	assert.Equal(t, "Infinity", report.Calls[0].Properties["arguments.0.value"])
}

func TestDescribeValue_NonFinite(t *testing.T) {
	assert.Equal(t, "NaN", describeValue(math.NaN()))
	assert.Equal(t, "Infinity", describeValue(math.Inf(1)))
	assert.Equal(t, "-Infinity", describeValue(math.Inf(-1)))
	assert.Equal(t, 1.5, describeValue(1.5))
}

func TestInspectFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.js")
	broken := filepath.Join(dir, "broken.js")
	missing := filepath.Join(dir, "missing.js")
	require.NoError(t, os.WriteFile(good, []byte("a.b();"), 0o600))
	require.NoError(t, os.WriteFile(broken, []byte("const = ;"), 0o600))

	insp := newInspector(t)
	run, err := insp.InspectFiles(context.Background(), []string{good, missing, broken})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, run.ID)
	require.Len(t, run.Files, 2)
	assert.Equal(t, good, run.Files[0].Path)
	assert.Equal(t, broken, run.Files[1].Path)
	assert.NotEmpty(t, run.Files[1].SyntaxErrors)

	require.Len(t, run.Failures, 1)
	assert.Equal(t, missing, run.Failures[0].Path)
}

func TestInspectFiles_TooLargeIsFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.js")
	require.NoError(t, os.WriteFile(path, []byte("aaaaaaaaaa();"), 0o600))

	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.MaxFileSize = 4
	insp, err := New(cfg)
	require.NoError(t, err)

	run, err := insp.InspectFiles(context.Background(), []string{path})
	require.NoError(t, err)
	assert.Empty(t, run.Files)
	require.Len(t, run.Failures, 1)
	assert.Contains(t, run.Failures[0].Error, "file too large")
}

func TestInspectFiles_Canceled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.js")
	require.NoError(t, os.WriteFile(path, []byte("a();"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	insp := newInspector(t)
	run, err := insp.InspectFiles(ctx, []string{path, path, path})
	assert.Error(t, err)
	assert.Nil(t, run)
}

func TestInspectFiles_Empty(t *testing.T) {
	run, err := newInspector(t).InspectFiles(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, run.Files)
	assert.Empty(t, run.Failures)
}
