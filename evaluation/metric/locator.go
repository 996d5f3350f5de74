//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package metric

import "path/filepath"

// DefaultMetricsFileSuffix is the suffix of metric files.
const DefaultMetricsFileSuffix = ".metrics.json"

// Locator defines the interface for locating metric files.
type Locator interface {
	// Build builds the path of a metric file identified by the given app name and eval set ID.
	Build(baseDir, appName, evalSetID string) string
}

// NewLocator returns the default Locator, which lays files out as <baseDir>/<appName>/<evalSetID>.metrics.json.
func NewLocator() Locator {
	return &locator{}
}

// locator is the default Locator implementation.
type locator struct{}

// Build builds the path of a metric file.
func (l *locator) Build(baseDir, appName, evalSetID string) string {
	return filepath.Join(baseDir, appName, evalSetID+DefaultMetricsFileSuffix)
}
