//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//

package bleu

import (
	"errors"
	"fmt"
	"math"
)

// defaultWeights weights 1-gram through 4-gram precisions equally.
var defaultWeights = []float64{0.25, 0.25, 0.25, 0.25}

// DefaultWeights returns a copy of the default BLEU-4 weight vector.
func DefaultWeights() []float64 {
	return append([]float64(nil), defaultWeights...)
}

// options holds internal configuration for BLEU scoring.
type options struct {
	// weights holds one weight per n-gram order, starting at order 1.
	weights []float64
	// smooth replaces zero match counts with an additive constant.
	smooth bool
}

// newOptions applies functional options to build a scoring configuration.
func newOptions(opt ...Option) *options {
	opts := &options{weights: DefaultWeights()}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option configures BLEU scoring.
type Option func(*options)

// WithWeights sets the n-gram weight vector. The i-th weight applies to (i+1)-grams.
func WithWeights(weights ...float64) Option {
	return func(o *options) {
		o.weights = append([]float64{}, weights...)
	}
}

// WithSmoothing enables or disables additive smoothing of zero match counts.
func WithSmoothing(smooth bool) Option {
	return func(o *options) {
		o.smooth = smooth
	}
}

// validateWeights rejects weight vectors that cannot produce a score in [0, 1].
func validateWeights(weights []float64) error {
	if len(weights) == 0 {
		return errors.New("weights are empty")
	}
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("weight %d is not finite: %v", i+1, w)
		}
		if w < 0 {
			return fmt.Errorf("weight %d is negative: %v", i+1, w)
		}
	}
	return nil
}
