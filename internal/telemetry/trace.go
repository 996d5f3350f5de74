//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package telemetry provides tracing and metrics hooks for evaluation runs.
// Everything defaults to OpenTelemetry noop providers until a caller installs real ones.
package telemetry

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// telemetry service constants.
const (
	InstrumentName = "trpc.bleu.go"

	OperationEvaluate     = "evaluate"
	OperationEvaluateCase = "evaluate_case"
)

// Attribute keys attached to evaluation spans and metrics.
const (
	KeyAppName        = "trpc_bleu_go.app.name"
	KeyEvalSetID      = "trpc_bleu_go.eval.set_id"
	KeyEvalRunID      = "trpc_bleu_go.eval.run_id"
	KeyEvalCaseID     = "trpc_bleu_go.eval.case_id"
	KeyEvalMetricName = "trpc_bleu_go.eval.metric_name"
	KeyEvalStatus     = "trpc_bleu_go.eval.status"
	KeyEvalScore      = "trpc_bleu_go.eval.score"
	KeyEvalCaseCount  = "trpc_bleu_go.eval.case_count"
)

var (
	// TracerProvider is the provider evaluation spans are created from.
	TracerProvider trace.TracerProvider = noop.NewTracerProvider()
	// Tracer is the tracer used by evaluators and the evaluation runner.
	Tracer trace.Tracer = TracerProvider.Tracer(InstrumentName)
)

// SetTracerProvider installs tp and refreshes Tracer. A nil tp restores the noop provider.
func SetTracerProvider(tp trace.TracerProvider) {
	if tp == nil {
		tp = noop.NewTracerProvider()
	}
	TracerProvider = tp
	Tracer = tp.Tracer(InstrumentName)
}

// NewEvaluateSpanName creates the span name for one metric evaluation, e.g. "evaluate bleu_score".
func NewEvaluateSpanName(metricName string) string {
	if metricName == "" {
		return OperationEvaluate
	}
	return fmt.Sprintf("%s %s", OperationEvaluate, metricName)
}

// TraceEvaluateResult annotates span with the outcome of a metric evaluation.
func TraceEvaluateResult(span trace.Span, metricName string, score float64, status string, caseCount int, err error) {
	span.SetAttributes(
		attribute.String(KeyEvalMetricName, metricName),
		attribute.Float64(KeyEvalScore, score),
		attribute.String(KeyEvalStatus, status),
		attribute.Int(KeyEvalCaseCount, caseCount),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// TraceEvaluateCase annotates span with the outcome of a single case.
func TraceEvaluateCase(span trace.Span, caseID string, score float64, err error) {
	span.SetAttributes(
		attribute.String(KeyEvalCaseID, caseID),
		attribute.Float64(KeyEvalScore, score),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
