//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package criterion

import "trpc.group/trpc-go/trpc-bleu-go/evaluation/metric/criterion/bleu"

// options aggregates configurable parts of Criterion.
type options struct {
	// bleu sets the BLEU criterion.
	bleu *bleu.BleuCriterion
}

// newOptions creates options with the provided overrides.
func newOptions(opt ...Option) *options {
	opts := &options{
		bleu: bleu.New(),
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option is a function that configures Criterion.
type Option func(*options)

// WithBleu sets the BLEU criterion.
func WithBleu(b *bleu.BleuCriterion) Option {
	return func(o *options) {
		o.bleu = b
	}
}
