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
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lowerTokenizer lowercases text and splits on hyphens and whitespace.
type lowerTokenizer struct{}

// Tokenize lowercases text and splits on hyphens and whitespace.
func (lowerTokenizer) Tokenize(text string) []string {
	return strings.Fields(strings.ReplaceAll(strings.ToLower(text), "-", " "))
}

// TestBleuCriterion_Match_Identical verifies that an identical prediction scores 1 and passes.
func TestBleuCriterion_Match_Identical(t *testing.T) {
	c := New(WithThreshold(0.9))
	result, err := c.Match(context.Background(), "the quick brown fox jumps", "the quick brown fox jumps")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, result.Value, 1e-12)
	assert.True(t, result.Passed)
	assert.Len(t, result.Score.Precisions, 4)
	assert.Contains(t, result.Reason(), "bleu=1.000000")
	assert.Contains(t, result.Reason(), "p4=2/2")
}

// TestBleuCriterion_Match_ShortPrediction verifies the brevity penalty on a short prediction.
func TestBleuCriterion_Match_ShortPrediction(t *testing.T) {
	c := &BleuCriterion{Threshold: 0.5}
	result, err := c.Match(context.Background(), "the cat sat on the mat", "the cat sat")
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(-1), result.Value, 1e-12)
	assert.False(t, result.Passed)
	assert.Contains(t, result.Reason(), "hyp_len=3 ref_len=6")
}

// TestBleuCriterion_Match_Smooth verifies that smoothing keeps a partial match above zero.
func TestBleuCriterion_Match_Smooth(t *testing.T) {
	plain, err := (&BleuCriterion{}).Match(context.Background(), "a b c d", "a b d c")
	require.NoError(t, err)
	assert.Equal(t, 0.0, plain.Value)

	smoothed, err := New(WithSmooth(true)).Match(context.Background(), "a b c d", "a b d c")
	require.NoError(t, err)
	assert.Greater(t, smoothed.Value, 0.0)
	assert.Contains(t, smoothed.Reason(), "(smoothed)")
}

// TestBleuCriterion_Match_Weights verifies that custom weights limit the n-gram orders.
func TestBleuCriterion_Match_Weights(t *testing.T) {
	c := New(WithWeights(1))
	result, err := c.Match(context.Background(), "a b c d", "d c b a")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, result.Value, 1e-12)
	assert.Equal(t, []float64{1}, result.Score.Weights)
}

// TestBleuCriterion_Match_InvalidWeights verifies that invalid weights surface as errors.
func TestBleuCriterion_Match_InvalidWeights(t *testing.T) {
	c := New(WithWeights(0.5, -0.5))
	_, err := c.Match(context.Background(), "a b", "a b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative")
}

// TestBleuCriterion_Match_Ignore verifies that ignored criteria always pass.
func TestBleuCriterion_Match_Ignore(t *testing.T) {
	c := New(WithIgnore(true), WithThreshold(1))
	result, err := c.Match(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.True(t, result.Passed)
	assert.Equal(t, 1.0, result.Value)
}

// TestBleuCriterion_Match_Nil verifies that a nil criterion returns an error.
func TestBleuCriterion_Match_Nil(t *testing.T) {
	var c *BleuCriterion
	_, err := c.Match(context.Background(), "a", "a")
	require.Error(t, err)
}

// TestBleuCriterion_Match_NilContext verifies that the context is checked.
func TestBleuCriterion_Match_NilContext(t *testing.T) {
	//nolint:staticcheck
	_, err := (&BleuCriterion{}).Match(nil, "a", "a")
	require.Error(t, err)
}

// TestBleuCriterion_Match_WithTokenizer verifies that a custom tokenizer overrides whitespace splitting.
func TestBleuCriterion_Match_WithTokenizer(t *testing.T) {
	plain, err := (&BleuCriterion{}).Match(context.Background(), "Well-Known fact", "well known fact")
	require.NoError(t, err)
	assert.Less(t, plain.Value, 1.0)

	custom, err := New(WithTokenizer(lowerTokenizer{})).Match(context.Background(), "Well-Known fact", "well known fact")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, custom.Value, 1e-12)
}

// TestBleuCriterion_JSON verifies the persisted field names and that the tokenizer is not serialized.
func TestBleuCriterion_JSON(t *testing.T) {
	c := New(WithWeights(0.5, 0.5), WithSmooth(true), WithThreshold(0.3), WithTokenizer(lowerTokenizer{}))
	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"weights":[0.5,0.5],"smooth":true,"threshold":0.3}`, string(data))
}

// TestSentenceBLEU verifies the library entry point.
func TestSentenceBLEU(t *testing.T) {
	ref := strings.Fields("the cat sat on the mat")
	assert.InDelta(t, 1.0, SentenceBLEU(ref, ref, nil, false), 1e-12)
	assert.InDelta(t, math.Exp(-1), SentenceBLEU(ref, strings.Fields("the cat sat"), nil, false), 1e-12)
	assert.Equal(t, 0.0, SentenceBLEU(ref, ref, []float64{}, false))
	assert.Equal(t, []float64{0.25, 0.25, 0.25, 0.25}, DefaultWeights())
}
