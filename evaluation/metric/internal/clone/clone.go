//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package clone provides functions to clone metrics.
package clone

import "trpc.group/trpc-go/trpc-bleu-go/evaluation/metric"

// CloneMetric returns a defensive copy of the provided metric.
// Tokenizers are code, not data, and are shared with the source.
func CloneMetric(m *metric.EvalMetric) *metric.EvalMetric {
	if m == nil {
		return nil
	}
	clone := *m
	if m.Criterion != nil {
		c := *m.Criterion
		if m.Criterion.Bleu != nil {
			b := *m.Criterion.Bleu
			if m.Criterion.Bleu.Weights != nil {
				b.Weights = append([]float64{}, m.Criterion.Bleu.Weights...)
			}
			c.Bleu = &b
		}
		clone.Criterion = &c
	}
	return &clone
}

// CloneMetrics returns deep copies of the provided metrics slice.
func CloneMetrics(metrics []*metric.EvalMetric) []*metric.EvalMetric {
	if len(metrics) == 0 {
		return []*metric.EvalMetric{}
	}
	cloned := make([]*metric.EvalMetric, 0, len(metrics))
	for _, m := range metrics {
		cloned = append(cloned, CloneMetric(m))
	}
	return cloned
}
