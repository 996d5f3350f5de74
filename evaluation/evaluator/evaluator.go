//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package evaluator provides evaluator for evaluation.
package evaluator

import (
	"context"

	"trpc.group/trpc-go/trpc-bleu-go/evaluation/metric"
	"trpc.group/trpc-go/trpc-bleu-go/evaluation/status"
)

// Evaluator scores a batch of cases against one metric.
type Evaluator interface {
	// Name returns the metric name the evaluator serves.
	Name() string
	// Description describes the evaluator purpose.
	Description() string
	// Evaluate scores every case and aggregates the scores.
	Evaluate(ctx context.Context, cases []*Case, evalMetric *metric.EvalMetric) (*EvaluateResult, error)
}

// Case is one hypothesis paired with its single reference.
type Case struct {
	// EvalID identifies the case inside its eval set.
	EvalID string `json:"evalId"`
	// Reference is the expected text.
	Reference string `json:"reference"`
	// Hypothesis is the text under evaluation.
	Hypothesis string `json:"hypothesis"`
}

// EvaluateResult represents the aggregated result of an evaluator run.
type EvaluateResult struct {
	// OverallScore is the mean of the case scores.
	OverallScore float64 `json:"overallScore"`
	// OverallStatus is derived from OverallScore and the metric threshold.
	OverallStatus status.EvalStatus `json:"overallStatus"`
	// PerCaseResults holds one result per case, in input order.
	PerCaseResults []*PerCaseResult `json:"perCaseResults,omitempty"`
}

// PerCaseResult represents the evaluation result of a single case.
type PerCaseResult struct {
	EvalID  string            `json:"evalId"`
	Score   float64           `json:"score"`
	Status  status.EvalStatus `json:"status"`
	Details *PerCaseDetails   `json:"details,omitempty"`
}

// PerCaseDetails carries the explanation of a case score.
type PerCaseDetails struct {
	// Reason is a human readable summary of the score.
	Reason string `json:"reason,omitempty"`
	// Values holds named score components, such as the brevity penalty.
	Values map[string]float64 `json:"values,omitempty"`
}
