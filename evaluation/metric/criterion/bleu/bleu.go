//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//

// Package bleu defines BLEU scoring criteria.
package bleu

import (
	"context"
	"fmt"
	"strings"

	ibleu "trpc.group/trpc-go/trpc-bleu-go/evaluation/internal/bleu"
)

// Tokenizer tokenizes text into a list of tokens.
type Tokenizer interface {
	// Tokenize splits input text into tokens.
	Tokenize(text string) []string
}

// BleuCriterion configures sentence BLEU scoring for evaluation.
type BleuCriterion struct {
	// Ignore skips BLEU scoring when true.
	Ignore bool `json:"ignore,omitempty"`
	// Weights holds the n-gram weights, index i weighting order i+1. Empty selects BLEU-4.
	Weights []float64 `json:"weights,omitempty"`
	// Smooth adds 0.1 to zero higher-order match counts.
	Smooth bool `json:"smooth,omitempty"`
	// Threshold is the minimum BLEU score required to pass.
	Threshold float64 `json:"threshold,omitempty"`
	// Tokenizer overrides the whitespace tokenizer when provided.
	Tokenizer Tokenizer `json:"-"`
}

// Precision is the modified n-gram precision of one order.
type Precision = ibleu.Precision

// Score holds the BLEU value and its components.
type Score = ibleu.Score

// MatchResult holds BLEU scoring output for a single comparison.
type MatchResult struct {
	// Value is the BLEU score in range [0, 1].
	Value float64
	// Score holds the brevity penalty, lengths and per-order precisions.
	Score Score
	// Passed reports whether Value meets the configured threshold.
	Passed bool
}

// Reason formats the scoring output for display.
func (r MatchResult) Reason() string {
	var b strings.Builder
	fmt.Fprintf(&b, "bleu=%.6f bp=%.6f hyp_len=%d ref_len=%d",
		r.Value, r.Score.BrevityPenalty, r.Score.HypothesisLength, r.Score.ReferenceLength)
	for _, p := range r.Score.Precisions {
		fmt.Fprintf(&b, " p%d=%d/%d", p.Order, p.Matches, p.Total)
		if p.Smoothed {
			b.WriteString("(smoothed)")
		}
	}
	return b.String()
}

// Match computes the BLEU score of prediction against target.
func (c *BleuCriterion) Match(ctx context.Context, target, prediction string) (*MatchResult, error) {
	if c == nil {
		return nil, fmt.Errorf("bleu criterion is nil")
	}
	if c.Ignore {
		return &MatchResult{
			Value:  1.0,
			Score:  Score{BLEU: 1.0, BrevityPenalty: 1.0},
			Passed: true,
		}, nil
	}
	var tok Tokenizer = whitespaceTokenizer{}
	if c.Tokenizer != nil {
		tok = c.Tokenizer
	}
	computeOpt := []ibleu.Option{ibleu.WithSmoothing(c.Smooth)}
	if len(c.Weights) > 0 {
		computeOpt = append(computeOpt, ibleu.WithWeights(c.Weights...))
	}
	score, err := ibleu.Compute(ctx, tok.Tokenize(target), tok.Tokenize(prediction), computeOpt...)
	if err != nil {
		return nil, fmt.Errorf("compute bleu: %w", err)
	}
	return &MatchResult{
		Value:  score.BLEU,
		Score:  *score,
		Passed: score.BLEU >= c.Threshold,
	}, nil
}

// SentenceBLEU scores a pre-tokenized hypothesis against a single reference.
// Nil weights select uniform BLEU-4 weights. Invalid weights score 0.
func SentenceBLEU(reference, hypothesis []string, weights []float64, smooth bool) float64 {
	return ibleu.SentenceBLEU(reference, hypothesis, weights, smooth)
}

// DefaultWeights returns a copy of the uniform BLEU-4 weights.
func DefaultWeights() []float64 {
	return ibleu.DefaultWeights()
}

// whitespaceTokenizer splits on whitespace without normalization.
type whitespaceTokenizer struct{}

// Tokenize splits text on runs of whitespace.
func (whitespaceTokenizer) Tokenize(text string) []string {
	return strings.Fields(text)
}
