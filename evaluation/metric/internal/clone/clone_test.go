//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package clone

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-bleu-go/evaluation/metric"
	"trpc.group/trpc-go/trpc-bleu-go/evaluation/metric/criterion"
	"trpc.group/trpc-go/trpc-bleu-go/evaluation/metric/criterion/bleu"
)

type fieldsTokenizer struct{}

func (fieldsTokenizer) Tokenize(text string) []string { return strings.Fields(text) }

func TestCloneMetric_Nil(t *testing.T) {
	assert.Nil(t, CloneMetric(nil))
}

func TestCloneMetric_DeepCopy(t *testing.T) {
	src := &metric.EvalMetric{
		MetricName: metric.MetricBleuScore,
		Threshold:  0.3,
		Criterion: criterion.New(criterion.WithBleu(
			bleu.New(bleu.WithWeights(0.5, 0.5), bleu.WithTokenizer(fieldsTokenizer{})),
		)),
	}
	cloned := CloneMetric(src)
	require.NotNil(t, cloned)
	assert.Equal(t, src, cloned)
	assert.NotSame(t, src.Criterion, cloned.Criterion)
	assert.NotSame(t, src.Criterion.Bleu, cloned.Criterion.Bleu)

	cloned.Criterion.Bleu.Weights[0] = 1
	cloned.Criterion.Bleu.Smooth = true
	assert.Equal(t, 0.5, src.Criterion.Bleu.Weights[0])
	assert.False(t, src.Criterion.Bleu.Smooth)
	assert.NotNil(t, cloned.Criterion.Bleu.Tokenizer)
}

func TestCloneMetrics(t *testing.T) {
	assert.Equal(t, []*metric.EvalMetric{}, CloneMetrics(nil))

	src := []*metric.EvalMetric{{MetricName: "a"}, nil}
	cloned := CloneMetrics(src)
	require.Len(t, cloned, 2)
	assert.Equal(t, "a", cloned[0].MetricName)
	assert.NotSame(t, src[0], cloned[0])
	assert.Nil(t, cloned[1])
}
