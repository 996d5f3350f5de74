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
	"trpc.group/trpc-go/trpc-bleu-go/evaluation/evaluator/registry"
	"trpc.group/trpc-go/trpc-bleu-go/evaluation/metric"
	metricinmemory "trpc.group/trpc-go/trpc-bleu-go/evaluation/metric/inmemory"
)

// options holds the configuration of an evaluation.
type options struct {
	metricManager metric.Manager
	registry      registry.Registry
	evalMetrics   []*metric.EvalMetric
}

// newOptions creates a new options instance with in-memory defaults.
func newOptions(opt ...Option) *options {
	opts := &options{
		metricManager: metricinmemory.New(),
		registry:      registry.New(),
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option configures an evaluation.
type Option func(*options)

// WithMetricManager sets the metric manager the eval set metrics are read from.
func WithMetricManager(m metric.Manager) Option {
	return func(o *options) {
		o.metricManager = m
	}
}

// WithRegistry sets the evaluator registry used to resolve metric names.
func WithRegistry(r registry.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithEvalMetrics registers metrics with the metric manager when the evaluation is created.
// Metrics are added to every eval set passed to Evaluate that has no metric of the same name.
func WithEvalMetrics(metrics ...*metric.EvalMetric) Option {
	return func(o *options) {
		o.evalMetrics = append(o.evalMetrics, metrics...)
	}
}
