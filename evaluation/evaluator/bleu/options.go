//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package bleu

import "runtime"

type options struct {
	parallelism int
}

func newOptions(opt ...Option) *options {
	opts := &options{
		parallelism: runtime.GOMAXPROCS(0),
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option configures the BLEU evaluator.
type Option func(*options)

// WithParallelism sets how many cases are scored concurrently. Values below 1 are ignored.
func WithParallelism(parallelism int) Option {
	return func(o *options) {
		if parallelism < 1 {
			return
		}
		o.parallelism = parallelism
	}
}
