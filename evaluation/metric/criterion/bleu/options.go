//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//

package bleu

// options holds the configuration of a BleuCriterion built by New.
type options struct {
	ignore    bool
	weights   []float64
	smooth    bool
	threshold float64
	tokenizer Tokenizer
}

// newOptions creates options with the provided overrides.
func newOptions(opt ...Option) *options {
	opts := &options{}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option is a function that configures BleuCriterion.
type Option func(*options)

// WithIgnore sets the ignore flag.
func WithIgnore(ignore bool) Option {
	return func(o *options) {
		o.ignore = ignore
	}
}

// WithWeights sets the n-gram weights.
func WithWeights(weights ...float64) Option {
	return func(o *options) {
		o.weights = append([]float64{}, weights...)
	}
}

// WithSmooth enables or disables smoothing of zero higher-order matches.
func WithSmooth(smooth bool) Option {
	return func(o *options) {
		o.smooth = smooth
	}
}

// WithThreshold sets the minimum passing score.
func WithThreshold(threshold float64) Option {
	return func(o *options) {
		o.threshold = threshold
	}
}

// WithTokenizer sets a custom tokenizer.
func WithTokenizer(tokenizer Tokenizer) Option {
	return func(o *options) {
		o.tokenizer = tokenizer
	}
}

// New creates a BleuCriterion with the provided options.
func New(opt ...Option) *BleuCriterion {
	opts := newOptions(opt...)
	return &BleuCriterion{
		Ignore:    opts.ignore,
		Weights:   opts.weights,
		Smooth:    opts.smooth,
		Threshold: opts.threshold,
		Tokenizer: opts.tokenizer,
	}
}
