//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Meter and instrument names.
const (
	MeterNameEvaluation = "trpc_bleu_go.evaluation"

	MetricEvalCaseCnt     = "trpc_bleu_go.eval.case.cnt"
	MetricEvalCaseScore   = "trpc_bleu_go.eval.case.score"
	MetricEvalRunDuration = "trpc_bleu_go.eval.run.duration"
)

var (
	MeterProvider metric.MeterProvider = noop.NewMeterProvider()

	EvalMeter             metric.Meter            = MeterProvider.Meter(MeterNameEvaluation)
	EvalMetricCaseCnt     metric.Int64Counter     = noop.Int64Counter{}
	EvalMetricCaseScore   metric.Float64Histogram = noop.Float64Histogram{}
	EvalMetricRunDuration metric.Float64Histogram = noop.Float64Histogram{}
)

// InitMeterProvider installs mp and creates the evaluation instruments from it.
func InitMeterProvider(mp metric.MeterProvider) error {
	if mp == nil {
		return fmt.Errorf("meter provider is nil")
	}
	meter := mp.Meter(MeterNameEvaluation)
	caseCnt, err := meter.Int64Counter(
		MetricEvalCaseCnt,
		metric.WithDescription("Number of evaluated cases"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create metric %s: %w", MetricEvalCaseCnt, err)
	}
	caseScore, err := meter.Float64Histogram(
		MetricEvalCaseScore,
		metric.WithDescription("Score of evaluated cases"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create metric %s: %w", MetricEvalCaseScore, err)
	}
	runDuration, err := meter.Float64Histogram(
		MetricEvalRunDuration,
		metric.WithDescription("Duration of an evaluation run"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create metric %s: %w", MetricEvalRunDuration, err)
	}
	MeterProvider = mp
	EvalMeter = meter
	EvalMetricCaseCnt = caseCnt
	EvalMetricCaseScore = caseScore
	EvalMetricRunDuration = runDuration
	return nil
}

// RecordEvalCase counts one evaluated case and records its score.
func RecordEvalCase(ctx context.Context, metricName, status string, score float64) {
	attrs := metric.WithAttributes(
		attribute.String(KeyEvalMetricName, metricName),
		attribute.String(KeyEvalStatus, status),
	)
	EvalMetricCaseCnt.Add(ctx, 1, attrs)
	EvalMetricCaseScore.Record(ctx, score, attrs)
}

// RecordEvalRunDuration records how long an evaluation run of evalSetID took.
func RecordEvalRunDuration(ctx context.Context, appName, evalSetID string, duration time.Duration) {
	EvalMetricRunDuration.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String(KeyAppName, appName),
			attribute.String(KeyEvalSetID, evalSetID),
		))
}
