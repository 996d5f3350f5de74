//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trpc.group/trpc-go/trpc-bleu-go/evaluation/evaluator/registry"
	"trpc.group/trpc-go/trpc-bleu-go/evaluation/metric"
	metricinmemory "trpc.group/trpc-go/trpc-bleu-go/evaluation/metric/inmemory"
)

func TestNewOptionsDefaults(t *testing.T) {
	opts := newOptions()

	assert.NotNil(t, opts.metricManager)
	assert.NotNil(t, opts.registry)
	assert.Empty(t, opts.evalMetrics)
}

func TestWithMetricManager(t *testing.T) {
	custom := metricinmemory.New()
	opts := newOptions(WithMetricManager(custom))

	assert.Equal(t, custom, opts.metricManager)
}

func TestWithRegistry(t *testing.T) {
	custom := registry.New()
	opts := newOptions(WithRegistry(custom))

	assert.Equal(t, custom, opts.registry)
}

func TestWithEvalMetricsAppends(t *testing.T) {
	first := &metric.EvalMetric{MetricName: "first"}
	second := &metric.EvalMetric{MetricName: "second"}
	opts := newOptions(WithEvalMetrics(first), WithEvalMetrics(second))

	assert.Equal(t, []*metric.EvalMetric{first, second}, opts.evalMetrics)
}
