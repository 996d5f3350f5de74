//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package metric

import "context"

// Manager defines the interface for managing evaluation metrics.
// Missing metrics are reported with errors wrapping os.ErrNotExist.
type Manager interface {
	// List returns all metric names identified by the given app name and eval set ID.
	List(ctx context.Context, appName, evalSetID string) ([]string, error)
	// Get gets a metric identified by the given app name, eval set ID and metric name.
	Get(ctx context.Context, appName, evalSetID, metricName string) (*EvalMetric, error)
	// Add adds a metric to the eval set. Adding an existing metric name fails.
	Add(ctx context.Context, appName, evalSetID string, metric *EvalMetric) error
	// Delete deletes a metric from the eval set.
	Delete(ctx context.Context, appName, evalSetID, metricName string) error
	// Update replaces the metric with the same name in the eval set.
	Update(ctx context.Context, appName, evalSetID string, metric *EvalMetric) error
	// Close releases the resources held by the manager.
	Close() error
}
