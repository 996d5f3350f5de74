//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package local

import "trpc.group/trpc-go/trpc-bleu-go/evaluation/metric"

// defaultBaseDir is the default base directory for metric files.
const defaultBaseDir = "metrics"

// options holds the configuration for the local metric manager.
type options struct {
	baseDir string
	locator metric.Locator
}

// newOptions creates options with the default values.
func newOptions(opt ...Option) *options {
	opts := &options{
		baseDir: defaultBaseDir,
		locator: metric.NewLocator(),
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option configures the local metric manager.
type Option func(*options)

// WithBaseDir sets the root directory for storing metric JSON files.
func WithBaseDir(dir string) Option {
	return func(o *options) {
		o.baseDir = dir
	}
}

// WithLocator overrides how metric file paths are generated.
func WithLocator(l metric.Locator) Option {
	return func(o *options) {
		o.locator = l
	}
}
