//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//

// Package bleu implements sentence-level BLEU scoring for text evaluation.
package bleu

import "math"

// Score holds a sentence BLEU score together with its components.
type Score struct {
	// BLEU is the final score in range [0, 1].
	BLEU float64
	// BrevityPenalty is the length penalty applied to the geometric mean in range [0, 1].
	BrevityPenalty float64
	// HypothesisLength is the number of hypothesis tokens.
	HypothesisLength int
	// ReferenceLength is the number of reference tokens.
	ReferenceLength int
	// Weights is the weight vector actually used, after adaptive reduction.
	Weights []float64
	// Precisions holds the per-order modified precisions that were computed.
	Precisions []Precision
}

// Precision holds the modified precision of a single n-gram order.
type Precision struct {
	// Order is the n-gram order starting at 1.
	Order int
	// Matches is the clipped count of hypothesis n-grams found in the reference.
	Matches int
	// Total is the number of hypothesis n-grams of this order, at least 1.
	Total int
	// Value is the precision that entered the geometric mean.
	Value float64
	// Smoothed reports whether Value was produced by additive smoothing.
	Smoothed bool
}

// brevityPenalty discounts hypotheses shorter than the reference.
// An empty hypothesis scores 0.
func brevityPenalty(refLength, hypLength int) float64 {
	if hypLength > refLength {
		return 1
	}
	if hypLength == 0 {
		return 0
	}
	return math.Exp(1 - float64(refLength)/float64(hypLength))
}
