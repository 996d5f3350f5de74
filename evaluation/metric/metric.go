//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package metric provides evaluation metrics.
package metric

import "trpc.group/trpc-go/trpc-bleu-go/evaluation/metric/criterion"

// EvalMetric represents a metric used to evaluate the cases of an eval set.
type EvalMetric struct {
	// MetricName identifies the metric and selects the evaluator.
	MetricName string `json:"metricName"`
	// Threshold is the minimum score a case needs to pass.
	Threshold float64 `json:"threshold"`
	// Criterion configures how the evaluator scores a case.
	Criterion *criterion.Criterion `json:"criterion,omitempty"`
}
