//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package criterion provides configurable evaluation criteria.
package criterion

import "trpc.group/trpc-go/trpc-bleu-go/evaluation/metric/criterion/bleu"

// Criterion encapsulates the criteria a metric evaluates with.
type Criterion struct {
	// Bleu configures sentence BLEU scoring.
	Bleu *bleu.BleuCriterion `json:"bleu,omitempty"`
}

// New creates a Criterion with the provided options.
func New(opt ...Option) *Criterion {
	opts := newOptions(opt...)
	return &Criterion{
		Bleu: opts.bleu,
	}
}
