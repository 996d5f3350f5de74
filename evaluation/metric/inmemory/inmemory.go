//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package inmemory provides an in-memory metric manager implementation.
package inmemory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"trpc.group/trpc-go/trpc-bleu-go/evaluation/metric"
	"trpc.group/trpc-go/trpc-bleu-go/evaluation/metric/internal/clone"
)

// manager implements metric.Manager backed by in-memory maps.
// Each API stores and returns copies to avoid accidental mutation.
type manager struct {
	mu      sync.RWMutex
	metrics map[string]map[string][]*metric.EvalMetric // appName -> evalSetID -> metrics.
}

// New creates an in-memory metric manager.
func New() metric.Manager {
	return &manager{
		metrics: make(map[string]map[string][]*metric.EvalMetric),
	}
}

// List lists all metric names identified by the given app name and eval set ID.
func (m *manager) List(_ context.Context, appName, evalSetID string) ([]string, error) {
	if err := validateKey(appName, evalSetID); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	metrics := m.metrics[appName][evalSetID]
	names := make([]string, 0, len(metrics))
	for _, evalMetric := range metrics {
		names = append(names, evalMetric.MetricName)
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
	idx := indexOf(m.metrics[appName][evalSetID], metricName)
	if idx < 0 {
		return nil, fmt.Errorf("metric %s.%s.%s not found: %w", appName, evalSetID, metricName, os.ErrNotExist)
	}
	return clone.CloneMetric(m.metrics[appName][evalSetID][idx]), nil
}

// Add adds a metric to the eval set identified by evalSetID.
func (m *manager) Add(_ context.Context, appName, evalSetID string, evalMetric *metric.EvalMetric) error {
	if err := validateMetric(appName, evalSetID, evalMetric); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if indexOf(m.metrics[appName][evalSetID], evalMetric.MetricName) >= 0 {
		return fmt.Errorf("metric %s.%s.%s already exists", appName, evalSetID, evalMetric.MetricName)
	}
	if _, ok := m.metrics[appName]; !ok {
		m.metrics[appName] = make(map[string][]*metric.EvalMetric)
	}
	m.metrics[appName][evalSetID] = append(m.metrics[appName][evalSetID], clone.CloneMetric(evalMetric))
	return nil
}

// Delete deletes the metric identified by metricName from the eval set.
func (m *manager) Delete(_ context.Context, appName, evalSetID, metricName string) error {
	if err := validateKey(appName, evalSetID); err != nil {
		return err
	}
	if metricName == "" {
		return errors.New("metric name is empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	metrics := m.metrics[appName][evalSetID]
	idx := indexOf(metrics, metricName)
	if idx < 0 {
		return fmt.Errorf("metric %s.%s.%s not found: %w", appName, evalSetID, metricName, os.ErrNotExist)
	}
	m.metrics[appName][evalSetID] = append(metrics[:idx:idx], metrics[idx+1:]...)
	return nil
}

// Update replaces the metric named evalMetric.MetricName in the eval set.
func (m *manager) Update(_ context.Context, appName, evalSetID string, evalMetric *metric.EvalMetric) error {
	if err := validateMetric(appName, evalSetID, evalMetric); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := indexOf(m.metrics[appName][evalSetID], evalMetric.MetricName)
	if idx < 0 {
		return fmt.Errorf("metric %s.%s.%s not found: %w", appName, evalSetID, evalMetric.MetricName, os.ErrNotExist)
	}
	m.metrics[appName][evalSetID][idx] = clone.CloneMetric(evalMetric)
	return nil
}

// Close implements metric.Manager.
func (m *manager) Close() error {
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
