//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package evaluation runs the metrics configured for an eval set and aggregates their results.
package evaluation

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"trpc.group/trpc-go/trpc-bleu-go/evaluation/evaluator"
	"trpc.group/trpc-go/trpc-bleu-go/evaluation/evaluator/registry"
	istatus "trpc.group/trpc-go/trpc-bleu-go/evaluation/internal/status"
	"trpc.group/trpc-go/trpc-bleu-go/evaluation/metric"
	"trpc.group/trpc-go/trpc-bleu-go/evaluation/metric/criterion"
	"trpc.group/trpc-go/trpc-bleu-go/evaluation/status"
	itelemetry "trpc.group/trpc-go/trpc-bleu-go/internal/telemetry"
	"trpc.group/trpc-go/trpc-bleu-go/log"
)

// Evaluation evaluates cases against the metrics configured for an eval set.
type Evaluation interface {
	// Evaluate runs every metric of the eval set against cases.
	Evaluate(ctx context.Context, evalSetID string, cases []*evaluator.Case) (*EvaluationResult, error)
	// Close closes the evaluation and releases owned resources.
	Close() error
}

// New creates an Evaluation for appName with the supplied options.
func New(appName string, opt ...Option) (Evaluation, error) {
	if appName == "" {
		return nil, errors.New("app name is empty")
	}
	opts := newOptions(opt...)
	if opts.metricManager == nil {
		return nil, errors.New("metric manager is nil")
	}
	if opts.registry == nil {
		return nil, errors.New("registry is nil")
	}
	for _, m := range opts.evalMetrics {
		if m == nil || m.MetricName == "" {
			return nil, errors.New("eval metric is nil or unnamed")
		}
	}
	return &evaluation{
		appName:       appName,
		metricManager: opts.metricManager,
		registry:      opts.registry,
		evalMetrics:   opts.evalMetrics,
	}, nil
}

// evaluation is the default implementation of Evaluation.
type evaluation struct {
	appName       string
	metricManager metric.Manager
	registry      registry.Registry
	evalMetrics   []*metric.EvalMetric
}

// EvaluationResult contains the aggregated outcome of one evaluation run.
type EvaluationResult struct {
	RunID         string            `json:"runId"`         // RunID uniquely identifies this run.
	AppName       string            `json:"appName"`       // AppName identifies the application being evaluated.
	EvalSetID     string            `json:"evalSetId"`     // EvalSetID identifies the evaluation set used in this run.
	OverallStatus status.EvalStatus `json:"overallStatus"` // OverallStatus summarizes the metric statuses.
	ExecutionTime time.Duration     `json:"executionTime"` // ExecutionTime records the total latency of the run.
	MetricResults []*MetricResult   `json:"metricResults"` // MetricResults holds one result per configured metric.
}

// MetricResult is the outcome of a single metric over all cases.
type MetricResult struct {
	MetricName     string                     `json:"metricName"`
	Threshold      float64                    `json:"threshold"`
	Score          float64                    `json:"score"`
	EvalStatus     status.EvalStatus          `json:"evalStatus"`
	Criterion      *criterion.Criterion       `json:"criterion,omitempty"`
	PerCaseResults []*evaluator.PerCaseResult `json:"perCaseResults,omitempty"`
}

// Evaluate runs every metric configured for evalSetID against cases.
func (e *evaluation) Evaluate(ctx context.Context, evalSetID string,
	cases []*evaluator.Case) (result *EvaluationResult, err error) {
	if ctx == nil {
		return nil, errors.New("context is nil")
	}
	if evalSetID == "" {
		return nil, errors.New("eval set id is not configured")
	}
	if i := slices.Index(cases, nil); i >= 0 {
		return nil, fmt.Errorf("eval case %d is nil", i)
	}
	runID := uuid.NewString()
	start := time.Now()
	ctx, span := itelemetry.Tracer.Start(ctx, itelemetry.NewEvaluateSpanName(""))
	span.SetAttributes(
		attribute.String(itelemetry.KeyAppName, e.appName),
		attribute.String(itelemetry.KeyEvalSetID, evalSetID),
		attribute.String(itelemetry.KeyEvalRunID, runID),
		attribute.Int(itelemetry.KeyEvalCaseCount, len(cases)),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.String(itelemetry.KeyEvalStatus, result.OverallStatus.String()))
		}
		span.End()
	}()

	if err := e.seedMetrics(ctx, evalSetID); err != nil {
		return nil, err
	}
	evalMetrics, err := e.loadMetrics(ctx, evalSetID)
	if err != nil {
		return nil, err
	}
	metricResults := make([]*MetricResult, 0, len(evalMetrics))
	statuses := make([]status.EvalStatus, 0, len(evalMetrics))
	for _, evalMetric := range evalMetrics {
		metricResult, err := e.runMetric(ctx, evalMetric, cases)
		if err != nil {
			return nil, fmt.Errorf("run metric %s: %w", evalMetric.MetricName, err)
		}
		metricResults = append(metricResults, metricResult)
		statuses = append(statuses, metricResult.EvalStatus)
	}
	// Reduce the metric statuses to determine the overall evaluation outcome.
	overallStatus, err := istatus.Summarize(statuses)
	if err != nil {
		return nil, fmt.Errorf("summarize overall status: %w", err)
	}
	elapsed := time.Since(start)
	itelemetry.RecordEvalRunDuration(ctx, e.appName, evalSetID, elapsed)
	log.DebugfContext(ctx, "evaluation: run %s of %s.%s finished with %s in %s",
		runID, e.appName, evalSetID, overallStatus, elapsed)
	return &EvaluationResult{
		RunID:         runID,
		AppName:       e.appName,
		EvalSetID:     evalSetID,
		OverallStatus: overallStatus,
		ExecutionTime: elapsed,
		MetricResults: metricResults,
	}, nil
}

// Close closes the metric manager.
func (e *evaluation) Close() error {
	if e.metricManager == nil {
		return nil
	}
	if err := e.metricManager.Close(); err != nil {
		return fmt.Errorf("close metric manager: %w", err)
	}
	return nil
}

// seedMetrics adds the configured metrics that the eval set does not define yet.
func (e *evaluation) seedMetrics(ctx context.Context, evalSetID string) error {
	if len(e.evalMetrics) == 0 {
		return nil
	}
	names, err := e.metricManager.List(ctx, e.appName, evalSetID)
	if err != nil {
		return fmt.Errorf("list metrics: %w", err)
	}
	for _, evalMetric := range e.evalMetrics {
		if slices.Contains(names, evalMetric.MetricName) {
			continue
		}
		if err := e.metricManager.Add(ctx, e.appName, evalSetID, evalMetric); err != nil {
			return fmt.Errorf("add metric %s: %w", evalMetric.MetricName, err)
		}
		names = append(names, evalMetric.MetricName)
	}
	return nil
}

// loadMetrics fetches the metric configuration of the eval set.
func (e *evaluation) loadMetrics(ctx context.Context, evalSetID string) ([]*metric.EvalMetric, error) {
	metricNames, err := e.metricManager.List(ctx, e.appName, evalSetID)
	if err != nil {
		return nil, fmt.Errorf("list metrics: %w", err)
	}
	evalMetrics := make([]*metric.EvalMetric, 0, len(metricNames))
	for _, metricName := range metricNames {
		evalMetric, err := e.metricManager.Get(ctx, e.appName, evalSetID, metricName)
		if err != nil {
			return nil, fmt.Errorf("get metric %s: %w", metricName, err)
		}
		evalMetrics = append(evalMetrics, evalMetric)
	}
	if len(evalMetrics) == 0 {
		log.WarnfContext(ctx, "evaluation: no metrics configured for %s.%s", e.appName, evalSetID)
	}
	return evalMetrics, nil
}

// runMetric resolves the evaluator serving evalMetric and runs it on cases.
func (e *evaluation) runMetric(ctx context.Context, evalMetric *metric.EvalMetric,
	cases []*evaluator.Case) (*MetricResult, error) {
	eval, err := e.registry.Get(evalMetric.MetricName)
	if err != nil {
		return nil, fmt.Errorf("get evaluator: %w", err)
	}
	evalResult, err := eval.Evaluate(ctx, cases, evalMetric)
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}
	if evalResult == nil {
		return nil, errors.New("evaluate result is nil")
	}
	return &MetricResult{
		MetricName:     evalMetric.MetricName,
		Threshold:      evalMetric.Threshold,
		Score:          evalResult.OverallScore,
		EvalStatus:     evalResult.OverallStatus,
		Criterion:      evalMetric.Criterion,
		PerCaseResults: evalResult.PerCaseResults,
	}, nil
}
