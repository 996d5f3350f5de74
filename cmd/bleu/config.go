//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"trpc.group/trpc-go/trpc-bleu-go/evaluation/metric"
	"trpc.group/trpc-go/trpc-bleu-go/evaluation/metric/criterion"
	cbleu "trpc.group/trpc-go/trpc-bleu-go/evaluation/metric/criterion/bleu"
)

// config is the YAML file accepted by -config.
//
//	weights: [0.25, 0.25, 0.25, 0.25]
//	smooth: true
//	threshold: 0.3
//	parallelism: 8
type config struct {
	Weights     []float64 `yaml:"weights"`
	Smooth      bool      `yaml:"smooth"`
	Threshold   float64   `yaml:"threshold"`
	Parallelism int       `yaml:"parallelism"`
}

// loadConfig reads path. An empty path yields the zero config.
func loadConfig(path string) (*config, error) {
	cfg := &config{}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// parseWeights parses a comma separated weight list such as "0.5,0.5".
func parseWeights(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	weights := make([]float64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		w, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("parse weight %q: %w", part, err)
		}
		weights = append(weights, w)
	}
	if len(weights) == 0 {
		return nil, fmt.Errorf("no weights in %q", s)
	}
	return weights, nil
}

// criterion builds the BLEU criterion described by cfg.
func (c *config) criterion() *cbleu.BleuCriterion {
	opts := []cbleu.Option{
		cbleu.WithSmooth(c.Smooth),
		cbleu.WithThreshold(c.Threshold),
	}
	if len(c.Weights) > 0 {
		opts = append(opts, cbleu.WithWeights(c.Weights...))
	}
	return cbleu.New(opts...)
}

// evalMetric builds the metric seeded into eval sets that define none.
func (c *config) evalMetric() *metric.EvalMetric {
	return &metric.EvalMetric{
		MetricName: metric.MetricBleuScore,
		Threshold:  c.Threshold,
		Criterion:  criterion.New(criterion.WithBleu(c.criterion())),
	}
}
