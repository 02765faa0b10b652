// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ast

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const instrumentationName = "lumen.migrate.ast"

var (
	meterOnce     sync.Once
	parseCounter  metric.Int64Counter
	parseDuration metric.Float64Histogram
	applyCounter  metric.Int64Counter
	applyDuration metric.Float64Histogram
)

// initMeters lazily creates the package meters. Instrument creation errors
// are ignored; the OTel SDK returns usable no-op instruments on error.
func initMeters() {
	meterOnce.Do(func() {
		meter := otel.Meter(instrumentationName)
		parseCounter, _ = meter.Int64Counter("migrate.parse.total",
			metric.WithDescription("Source file parse attempts by language and outcome"))
		parseDuration, _ = meter.Float64Histogram("migrate.parse.duration_seconds",
			metric.WithDescription("Source file parse duration"))
		applyCounter, _ = meter.Int64Counter("migrate.apply.total",
			metric.WithDescription("Edit set applications by outcome"))
		applyDuration, _ = meter.Float64Histogram("migrate.apply.duration_seconds",
			metric.WithDescription("Edit set application duration"))
	})
}

// startParseSpan opens a span around one file parse.
func startParseSpan(ctx context.Context, language, path string, sizeBytes int) (context.Context, oteltrace.Span) {
	return otel.Tracer(instrumentationName).Start(ctx, "ast.Parse",
		oteltrace.WithAttributes(
			attribute.String("language", language),
			attribute.String("file", path),
			attribute.Int("size_bytes", sizeBytes),
		))
}

// startApplySpan opens a span around one edit-set application.
func startApplySpan(ctx context.Context, path string, editCount int) (context.Context, oteltrace.Span) {
	return otel.Tracer(instrumentationName).Start(ctx, "ast.Apply",
		oteltrace.WithAttributes(
			attribute.String("file", path),
			attribute.Int("edits", editCount),
		))
}

// recordParseMetrics records one parse attempt.
func recordParseMetrics(ctx context.Context, language string, d time.Duration, ok bool) {
	initMeters()
	attrs := metric.WithAttributes(
		attribute.String("language", language),
		attribute.Bool("success", ok),
	)
	parseCounter.Add(ctx, 1, attrs)
	parseDuration.Record(ctx, d.Seconds(), attrs)
}

// recordApplyMetrics records one edit-set application.
func recordApplyMetrics(ctx context.Context, d time.Duration, ok bool) {
	initMeters()
	attrs := metric.WithAttributes(attribute.Bool("success", ok))
	applyCounter.Add(ctx, 1, attrs)
	applyDuration.Record(ctx, d.Seconds(), attrs)
}
