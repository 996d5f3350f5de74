//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//

package bleu

import (
	"context"
	"fmt"
	"math"

	"trpc.group/trpc-go/trpc-bleu-go/log"
)

// smoothingConstant is added to a zero match count when smoothing is enabled.
const smoothingConstant = 0.1

// Compute returns the sentence BLEU score of hypothesis against a single reference.
// Both inputs are pre-tokenized word sequences and are never modified.
func Compute(ctx context.Context, reference, hypothesis []string, opt ...Option) (*Score, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts := newOptions(opt...)
	if err := validateWeights(opts.weights); err != nil {
		return nil, err
	}
	return sentenceBLEU(reference, hypothesis, opts.weights, opts.smooth)
}

// SentenceBLEU scores hypothesis against reference. Nil weights select the
// default BLEU-4 weights. Invalid weights score 0.
func SentenceBLEU(reference, hypothesis []string, weights []float64, smooth bool) float64 {
	if weights == nil {
		weights = defaultWeights
	}
	if err := validateWeights(weights); err != nil {
		log.Warnf("bleu: %v", err)
		return 0
	}
	score, err := sentenceBLEU(reference, hypothesis, weights, smooth)
	if err != nil {
		log.Warnf("bleu: %v", err)
		return 0
	}
	return score.BLEU
}

// sentenceBLEU computes BLEU for validated weights.
func sentenceBLEU(reference, hypothesis []string, weights []float64, smooth bool) (*Score, error) {
	hypLength := len(hypothesis)
	refLength := len(reference)
	if hypLength < len(weights) || refLength < len(weights) {
		length := min(hypLength, refLength)
		if length == 0 {
			return &Score{
				BrevityPenalty:   brevityPenalty(refLength, hypLength),
				HypothesisLength: hypLength,
				ReferenceLength:  refLength,
			}, nil
		}
		return sentenceBLEU(reference, hypothesis, uniformWeights(length), smooth)
	}

	score := &Score{
		BrevityPenalty:   brevityPenalty(refLength, hypLength),
		HypothesisLength: hypLength,
		ReferenceLength:  refLength,
		Weights:          append([]float64(nil), weights...),
		Precisions:       make([]Precision, 0, len(weights)),
	}
	matches := make([]int, len(weights))
	for i := 1; i <= len(weights); i++ {
		m, err := modifiedPrecision(reference, hypothesis, i)
		if err != nil {
			return nil, fmt.Errorf("count %d-gram matches: %w", i, err)
		}
		if m == 0 {
			if i == 1 {
				score.Precisions = append(score.Precisions, Precision{Order: 1, Total: hypLength})
				return score, nil
			}
			// Higher orders cannot match once a lower order has no match.
			break
		}
		matches[i-1] = m
	}

	var logSum float64
	for i := 1; i <= len(weights); i++ {
		p := Precision{
			Order:   i,
			Matches: matches[i-1],
			Total:   max(1, hypLength-i+1),
		}
		if smooth && p.Matches == 0 {
			p.Value = (float64(p.Matches) + smoothingConstant) / float64(p.Total)
			p.Smoothed = true
		} else {
			p.Value = float64(p.Matches) / float64(p.Total)
		}
		score.Precisions = append(score.Precisions, p)
		w := weights[i-1]
		if w == 0 {
			continue
		}
		logSum += w * math.Log(p.Value)
	}
	score.BLEU = score.BrevityPenalty * math.Exp(logSum)
	return score, nil
}

// uniformWeights returns length equal weights summing to 1.
func uniformWeights(length int) []float64 {
	weights := make([]float64, length)
	for i := range weights {
		weights[i] = 1 / float64(length)
	}
	return weights
}
