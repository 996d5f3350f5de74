//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package local

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-bleu-go/evaluation/metric"
	"trpc.group/trpc-go/trpc-bleu-go/evaluation/metric/criterion"
	"trpc.group/trpc-go/trpc-bleu-go/evaluation/metric/criterion/bleu"
)

type fixedLocator struct {
	path string
}

func (f *fixedLocator) Build(_ string, _ string, _ string) string {
	return f.path
}

func TestLocalManagerLifecycle(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	mgr := New(WithBaseDir(dir))
	defer mgr.Close()

	names, err := mgr.List(ctx, "app", "set")
	require.NoError(t, err)
	assert.Empty(t, names)

	bleuMetric := &metric.EvalMetric{
		MetricName: metric.MetricBleuScore,
		Threshold:  0.5,
		Criterion:  criterion.New(criterion.WithBleu(bleu.New(bleu.WithSmooth(true)))),
	}
	require.NoError(t, mgr.Add(ctx, "app", "set", bleuMetric))
	require.Error(t, mgr.Add(ctx, "app", "set", &metric.EvalMetric{MetricName: metric.MetricBleuScore}))
	require.NoError(t, mgr.Add(ctx, "app", "set", &metric.EvalMetric{MetricName: "other", Threshold: 1}))

	names, err = mgr.List(ctx, "app", "set")
	require.NoError(t, err)
	assert.Equal(t, []string{metric.MetricBleuScore, "other"}, names)

	path := filepath.Join(dir, "app", "set"+metric.DefaultMetricsFileSuffix)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var stored []*metric.EvalMetric
	require.NoError(t, json.Unmarshal(data, &stored))
	require.Len(t, stored, 2)
	assert.True(t, stored[0].Criterion.Bleu.Smooth)
	_, err = os.Stat(path + ".tmp")
	assert.True(t, errors.Is(err, os.ErrNotExist))

	got, err := mgr.Get(ctx, "app", "set", metric.MetricBleuScore)
	require.NoError(t, err)
	assert.Equal(t, 0.5, got.Threshold)

	require.NoError(t, mgr.Update(ctx, "app", "set", &metric.EvalMetric{MetricName: metric.MetricBleuScore, Threshold: 0.7}))
	got, err = mgr.Get(ctx, "app", "set", metric.MetricBleuScore)
	require.NoError(t, err)
	assert.Equal(t, 0.7, got.Threshold)
	assert.Nil(t, got.Criterion)

	require.NoError(t, mgr.Delete(ctx, "app", "set", metric.MetricBleuScore))
	_, err = mgr.Get(ctx, "app", "set", metric.MetricBleuScore)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.True(t, errors.Is(mgr.Delete(ctx, "app", "set", metric.MetricBleuScore), os.ErrNotExist))
	assert.True(t, errors.Is(mgr.Update(ctx, "app", "set", &metric.EvalMetric{MetricName: "missing"}), os.ErrNotExist))

	names, err = mgr.List(ctx, "app", "set")
	require.NoError(t, err)
	assert.Equal(t, []string{"other"}, names)
}

func TestLocalManagerWithLocator(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "custom.json")
	ctx := context.Background()
	mgr := New(WithLocator(&fixedLocator{path: path}))

	require.NoError(t, mgr.Add(ctx, "app", "set", &metric.EvalMetric{MetricName: "m"}))
	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestLocalManagerCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	mgr := New(WithLocator(&fixedLocator{path: path}))

	_, err := mgr.List(context.Background(), "app", "set")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal metrics")
}

func TestLocalManagerValidation(t *testing.T) {
	ctx := context.Background()
	mgr := New(WithBaseDir(t.TempDir()))

	_, err := mgr.List(ctx, "", "set")
	assert.Error(t, err)
	_, err = mgr.Get(ctx, "app", "", "m")
	assert.Error(t, err)
	_, err = mgr.Get(ctx, "app", "set", "")
	assert.Error(t, err)
	assert.Error(t, mgr.Add(ctx, "app", "set", nil))
	assert.Error(t, mgr.Update(ctx, "app", "set", &metric.EvalMetric{}))
	assert.Error(t, mgr.Delete(ctx, "app", "set", ""))
}

func TestNewOptionsDefaults(t *testing.T) {
	opts := newOptions()
	assert.Equal(t, defaultBaseDir, opts.baseDir)
	assert.NotNil(t, opts.locator)
}
