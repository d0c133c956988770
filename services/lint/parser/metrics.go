// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package parser

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Package-level tracer and meter for JavaScript loading.
var (
	tracer = otel.Tracer("treequery.parser")
	meter  = otel.Meter("treequery.parser")
)

var (
	parseLatency metric.Float64Histogram
	parseTotal   metric.Int64Counter
	parseErrors  metric.Int64Counter
	nodesBuilt   metric.Int64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		parseLatency, err = meter.Float64Histogram(
			"treequery_parse_duration_seconds",
			metric.WithDescription("Duration of JavaScript parse operations"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		parseTotal, err = meter.Int64Counter(
			"treequery_parse_total",
			metric.WithDescription("Total number of parse operations"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		parseErrors, err = meter.Int64Counter(
			"treequery_parse_errors_total",
			metric.WithDescription("Total number of failed parse operations"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		nodesBuilt, err = meter.Int64Histogram(
			"treequery_nodes_built",
			metric.WithDescription("Number of ESTree nodes built per parse"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// recordParseMetrics records metrics for a parse operation.
//
// Parameters:
//   - ctx: Context for metric recording
//   - duration: How long the parse took
//   - nodeCount: Number of ESTree nodes built
//   - success: Whether the parse succeeded
func recordParseMetrics(ctx context.Context, duration time.Duration, nodeCount int, success bool) {
	if err := initMetrics(); err != nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("language", languageJavaScript),
		attribute.Bool("success", success),
	)

	parseLatency.Record(ctx, duration.Seconds(), attrs)
	parseTotal.Add(ctx, 1, attrs)

	if success {
		nodesBuilt.Record(ctx, int64(nodeCount),
			metric.WithAttributes(attribute.String("language", languageJavaScript)),
		)
	} else {
		parseErrors.Add(ctx, 1,
			metric.WithAttributes(attribute.String("language", languageJavaScript)),
		)
	}
}

// startParseSpan creates a span for a parse operation. The caller must end
// the returned span.
func startParseSpan(ctx context.Context, filePath string, contentSize int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "JavaScriptParser.Parse",
		trace.WithAttributes(
			attribute.String("parser.language", languageJavaScript),
			attribute.String("parser.file", filePath),
			attribute.Int("parser.content_size", contentSize),
		),
	)
}

func setParseSpanResult(span trace.Span, nodeCount, errorCount int) {
	span.SetAttributes(
		attribute.Int("parser.node_count", nodeCount),
		attribute.Int("parser.error_count", errorCount),
	)
}
