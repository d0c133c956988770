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
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/treequery/services/lint/config"
	"github.com/AleutianAI/treequery/services/lint/estree"
	"github.com/AleutianAI/treequery/services/lint/parser"
	"github.com/AleutianAI/treequery/services/lint/treequery"
)

var tracer = otel.Tracer("treequery.inspect")

// ErrNilConfig is returned by New when no configuration is given.
var ErrNilConfig = errors.New("inspect: config must not be nil")

// Inspector applies the treequery helpers to JavaScript files.
//
// Description:
//
//	Each file is loaded with the JavaScript parser and walked once; every
//	call, assignment, destructuring declarator, method and member container
//	is reported using the corresponding query.
//
// Thread Safety:
//
//	An Inspector is immutable after New and safe for concurrent use.
type Inspector struct {
	cfg    *config.Config
	parser *parser.JavaScriptParser
	logger *slog.Logger
	paths  []string
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithLogger sets the logger. A nil logger keeps slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(i *Inspector) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithPropertyPaths requests dotted property lookups on every call, e.g.
// "callee.property.name" or "arguments.0.value".
func WithPropertyPaths(paths ...string) Option {
	return func(i *Inspector) {
		for _, p := range paths {
			if p = strings.TrimSpace(p); p != "" {
				i.paths = append(i.paths, p)
			}
		}
	}
}

// New creates an Inspector for cfg.
func New(cfg *config.Config, opts ...Option) (*Inspector, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	i := &Inspector{cfg: cfg, logger: slog.Default()}
	for _, opt := range opts {
		opt(i)
	}
	i.parser = parser.NewJavaScriptParser(
		parser.WithMaxFileSize(cfg.MaxFileSize),
		parser.WithLogger(i.logger),
	)
	return i, nil
}

// InspectFiles inspects paths with bounded concurrency.
//
// Description:
//
//	At most cfg.Concurrency files are processed at once. A file that cannot
//	be read or parsed is recorded in RunReport.Failures and does not stop
//	the run. Cancellation of ctx stops the run and is returned as an error.
//
// Inputs:
//
//	ctx   - Context for cancellation and tracing.
//	paths - Files to inspect.
//
// Outputs:
//
//	*RunReport - Reports in input order. Never nil on success.
//	error      - Non-nil only if ctx was canceled.
//
// Thread Safety: Safe for concurrent use.
func (i *Inspector) InspectFiles(ctx context.Context, paths []string) (*RunReport, error) {
	runID := uuid.New()
	logger := i.logger.With(slog.String("run_id", runID.String()))

	ctx, span := tracer.Start(ctx, "Inspector.InspectFiles",
		trace.WithAttributes(
			attribute.String("inspect.run_id", runID.String()),
			attribute.Int("inspect.file_count", len(paths)),
		),
	)
	defer span.End()

	reports := make([]*FileReport, len(paths))
	failures := make([]*FileFailure, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(i.cfg.Concurrency, 1))

	for idx, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			report, err := i.InspectFile(gctx, path)
			if err != nil {
				if errors.Is(err, parser.ErrContextCanceled) {
					return err
				}
				logger.Warn("file inspection failed",
					slog.String("file", path),
					slog.String("error", err.Error()),
				)
				failures[idx] = &FileFailure{Path: path, Error: err.Error()}
				return nil
			}
			reports[idx] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("inspect run %s: %w", runID, err)
	}

	run := &RunReport{ID: runID, Files: make([]*FileReport, 0, len(paths))}
	for idx := range paths {
		if reports[idx] != nil {
			run.Files = append(run.Files, reports[idx])
		}
		if failures[idx] != nil {
			run.Failures = append(run.Failures, *failures[idx])
		}
	}

	span.SetAttributes(attribute.Int("inspect.failure_count", len(run.Failures)))
	logger.Info("inspection complete",
		slog.Int("files", len(run.Files)),
		slog.Int("failures", len(run.Failures)),
	)
	return run, nil
}

// InspectFile reads and inspects a single file.
func (i *Inspector) InspectFile(ctx context.Context, path string) (*FileReport, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return i.InspectSource(ctx, path, content)
}

// InspectSource inspects JavaScript source that is already in memory.
//
// Outputs:
//
//	*FileReport - The report. Never nil on success.
//	error       - Non-nil if the source could not be parsed at all.
func (i *Inspector) InspectSource(ctx context.Context, path string, content []byte) (*FileReport, error) {
	result, err := i.parser.Parse(ctx, content, path)
	if err != nil {
		return nil, err
	}

	report := &FileReport{
		Path:            result.FilePath,
		Hash:            result.Hash,
		NodeCount:       result.NodeCount,
		SyntaxErrors:    result.Errors,
		Calls:           make([]CallReport, 0),
		Assignments:     make([]AssignmentReport, 0),
		Bindings:        make([]BindingReport, 0),
		Methods:         make([]MethodReport, 0),
		OrderViolations: make([]OrderViolation, 0),
	}

	for _, imp := range treequery.FindNodes(result.Program.Statements, estree.ImportDeclaration) {
		if src, ok := treequery.GetPropertyValue(imp, "source.value"); ok {
			if s, ok := src.(string); ok {
				report.Imports = append(report.Imports, s)
			}
		}
	}

	estree.Walk(result.Program, func(n *estree.Node) bool {
		switch n.Type {
		case estree.CallExpression, estree.OptionalCallExpression, estree.NewExpression:
			report.Calls = append(report.Calls, i.callReport(n))
		case estree.AssignmentExpression:
			if target, ok := treequery.GetName(n.Left); ok {
				report.Assignments = append(report.Assignments, AssignmentReport{
					Target:   target,
					Operator: n.Operator,
					Line:     n.Loc.Start.Line,
				})
			}
		case estree.VariableDeclarator:
			if names := treequery.CollectObjectPatternBindings(n, i.cfg.Bindings); len(names) > 0 {
				report.Bindings = append(report.Bindings, BindingReport{
					Object: n.Init.Name,
					Names:  names,
					Line:   n.Loc.Start.Line,
				})
			}
		case estree.MethodDefinition, estree.Property:
			if isMethodLike(n) {
				report.Methods = append(report.Methods, methodReport(n))
			}
		case estree.ObjectExpression:
			if v, ok := i.checkOrder(n.Properties, "object"); ok {
				report.OrderViolations = append(report.OrderViolations, v)
			}
		case estree.ClassBody:
			if v, ok := i.checkOrder(n.Statements, "class "+className(n)); ok {
				report.OrderViolations = append(report.OrderViolations, v)
			}
		}
		return true
	})

	i.logger.Debug("file inspected",
		slog.String("file", path),
		slog.Int("calls", len(report.Calls)),
		slog.Int("methods", len(report.Methods)),
		slog.Int("order_violations", len(report.OrderViolations)),
	)
	return report, nil
}

func (i *Inspector) callReport(n *estree.Node) CallReport {
	args := treequery.ParseArgs(n)
	for idx, a := range args {
		args[idx] = describeValue(a)
	}

	call := CallReport{
		Callee:           treequery.ParseCallee(n),
		New:              n.Type == estree.NewExpression,
		Args:             args,
		Line:             n.Loc.Start.Line,
		Size:             treequery.GetSize(n),
		InAssignmentLeft: treequery.IsInLeftSideOfAssignmentExpression(n.Callee),
	}
	if name, ok := treequery.GetName(n); ok {
		call.Name = name
	}

	for _, path := range i.paths {
		if v, ok := treequery.GetPropertyValue(n, path); ok {
			if call.Properties == nil {
				call.Properties = make(map[string]any, len(i.paths))
			}
			call.Properties[path] = describeValue(v)
		}
	}
	return call
}

func isMethodLike(n *estree.Node) bool {
	if n.Type == estree.MethodDefinition {
		return true
	}
	return n.Method || n.Value.Is(estree.FunctionExpression, estree.ArrowFunctionExpression)
}

func methodReport(n *estree.Node) MethodReport {
	m := MethodReport{
		Name:  memberName(n),
		Line:  n.Loc.Start.Line,
		Size:  treequery.GetSize(n),
		Empty: treequery.IsEmptyMethod(n),
	}
	if n.Type == estree.MethodDefinition {
		m.Class = className(n)
	}
	return m
}

// className returns the name of the class enclosing n.
func className(n *estree.Node) string {
	class := treequery.GetAncestor(n, func(a *estree.Node) bool {
		return a.Is(estree.ClassDeclaration, estree.ClassExpression)
	})
	if class == nil {
		return ""
	}
	if class.ID != nil {
		return class.ID.Name
	}
	// const Foo = class { ... }
	if decl := class.Parent; decl.Is(estree.VariableDeclarator) && decl.Init == class {
		if name, ok := treequery.GetName(decl.ID); ok {
			return name
		}
	}
	return "(anonymous)"
}
