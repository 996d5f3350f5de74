//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package metric

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-bleu-go/evaluation/metric/criterion"
	"trpc.group/trpc-go/trpc-bleu-go/evaluation/metric/criterion/bleu"
)

func TestEvalMetricJSON(t *testing.T) {
	metric := &EvalMetric{
		MetricName: MetricBleuScore,
		Threshold:  0.4,
		Criterion: criterion.New(criterion.WithBleu(
			bleu.New(bleu.WithWeights(0.5, 0.5), bleu.WithSmooth(true)),
		)),
	}

	data, err := json.Marshal(metric)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"metricName":"bleu_score","threshold":0.4,"criterion":{"bleu":{"weights":[0.5,0.5],"smooth":true}}}`,
		string(data))

	var decoded EvalMetric
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.NotNil(t, decoded.Criterion)
	require.NotNil(t, decoded.Criterion.Bleu)
	assert.Equal(t, []float64{0.5, 0.5}, decoded.Criterion.Bleu.Weights)
	assert.True(t, decoded.Criterion.Bleu.Smooth)
}

func TestEvalMetricJSONOmitEmpty(t *testing.T) {
	data, err := json.Marshal(&EvalMetric{MetricName: "fluency", Threshold: 1.0})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "criterion")
}
