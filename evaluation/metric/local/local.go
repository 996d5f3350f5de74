//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package local provides a metric manager that stores one JSON file per eval set.
package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"trpc.group/trpc-go/trpc-bleu-go/evaluation/metric"
	"trpc.group/trpc-go/trpc-bleu-go/evaluation/metric/internal/clone"
)

type manager struct {
	mu      sync.RWMutex
	baseDir string
	locator metric.Locator
}

// New creates a filesystem-backed metric manager.
func New(opt ...Option) metric.Manager {
	opts := newOptions(opt...)
	return &manager{
		baseDir: opts.baseDir,
		locator: opts.locator,
	}
}

// List lists all metric names identified by the given app name and eval set ID.
// A missing metric file lists as empty.
func (m *manager) List(_ context.Context, appName, evalSetID string) ([]string, error) {
	if err := validateKey(appName, evalSetID); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	metrics, err := m.load(appName, evalSetID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(metrics))
	for _, evalMetric := range metrics {
		if evalMetric != nil {
			names = append(names, evalMetric.MetricName)
		}
	}
	return names, nil
}

// Get gets a metric identified by the given app name, eval set ID and metric name.
func (m *manager) Get(_ context.Context, appName, evalSetID, metricName string) (*metric.EvalMetric, error) {
	if err := validateKey(appName, evalSetID); err != nil {
		return nil, err
	}
	if metricName == "" {
		return nil, errors.New("empty metric name")
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	metrics, err := m.load(appName, evalSetID)
	if err != nil {
		return nil, err
	}
	idx := indexOf(metrics, metricName)
	if idx < 0 {
		return nil, fmt.Errorf("metric %s.%s.%s not found: %w", appName, evalSetID, metricName, os.ErrNotExist)
	}
	return metrics[idx], nil
}

// Add appends a metric to the eval set file.
func (m *manager) Add(_ context.Context, appName, evalSetID string, evalMetric *metric.EvalMetric) error {
	if err := validateMetric(appName, evalSetID, evalMetric); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	metrics, err := m.load(appName, evalSetID)
	if err != nil {
		return err
	}
	if indexOf(metrics, evalMetric.MetricName) >= 0 {
		return fmt.Errorf("metric %s.%s.%s already exists", appName, evalSetID, evalMetric.MetricName)
	}
	metrics = append(metrics, clone.CloneMetric(evalMetric))
	return m.store(appName, evalSetID, metrics)
}

// Delete removes a metric from the eval set file.
func (m *manager) Delete(_ context.Context, appName, evalSetID, metricName string) error {
	if err := validateKey(appName, evalSetID); err != nil {
		return err
	}
	if metricName == "" {
		return errors.New("metric name is empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	metrics, err := m.load(appName, evalSetID)
	if err != nil {
		return err
	}
	idx := indexOf(metrics, metricName)
	if idx < 0 {
		return fmt.Errorf("metric %s.%s.%s not found: %w", appName, evalSetID, metricName, os.ErrNotExist)
	}
	metrics = append(metrics[:idx], metrics[idx+1:]...)
	return m.store(appName, evalSetID, metrics)
}

// Update replaces the metric named evalMetric.MetricName in the eval set file.
func (m *manager) Update(_ context.Context, appName, evalSetID string, evalMetric *metric.EvalMetric) error {
	if err := validateMetric(appName, evalSetID, evalMetric); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	metrics, err := m.load(appName, evalSetID)
	if err != nil {
		return err
	}
	idx := indexOf(metrics, evalMetric.MetricName)
	if idx < 0 {
		return fmt.Errorf("metric %s.%s.%s not found: %w", appName, evalSetID, evalMetric.MetricName, os.ErrNotExist)
	}
	metrics[idx] = clone.CloneMetric(evalMetric)
	return m.store(appName, evalSetID, metrics)
}

// Close implements metric.Manager.
func (m *manager) Close() error {
	return nil
}

func (m *manager) metricPath(appName, evalSetID string) string {
	return m.locator.Build(m.baseDir, appName, evalSetID)
}

// load reads the metrics of an eval set. A missing file yields no metrics.
func (m *manager) load(appName, evalSetID string) ([]*metric.EvalMetric, error) {
	path := m.metricPath(appName, evalSetID)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return []*metric.EvalMetric{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}
	var metrics []*metric.EvalMetric
	if err := json.Unmarshal(data, &metrics); err != nil {
		return nil, fmt.Errorf("unmarshal metrics %s: %w", path, err)
	}
	if metrics == nil {
		metrics = []*metric.EvalMetric{}
	}
	return metrics, nil
}

// store writes metrics to a temporary file and renames it into place.
func (m *manager) store(appName, evalSetID string, metrics []*metric.EvalMetric) error {
	path := m.metricPath(appName, evalSetID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir all %s: %w", filepath.Dir(path), err)
	}
	tmp := path + ".tmp"
	file, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open file %s: %w", tmp, err)
	}
	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(metrics); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode metrics: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s to %s: %w", tmp, path, err)
	}
	return nil
}

func indexOf(metrics []*metric.EvalMetric, metricName string) int {
	for i, evalMetric := range metrics {
		if evalMetric != nil && evalMetric.MetricName == metricName {
			return i
		}
	}
	return -1
}

func validateKey(appName, evalSetID string) error {
	if appName == "" {
		return errors.New("empty app name")
	}
	if evalSetID == "" {
		return errors.New("empty eval set id")
	}
	return nil
}

func validateMetric(appName, evalSetID string, evalMetric *metric.EvalMetric) error {
	if err := validateKey(appName, evalSetID); err != nil {
		return err
	}
	if evalMetric == nil {
		return errors.New("metric is nil")
	}
	if evalMetric.MetricName == "" {
		return errors.New("metric name is empty")
	}
	return nil
}
