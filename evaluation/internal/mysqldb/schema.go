//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package mysqldb

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	storage "trpc.group/trpc-go/trpc-bleu-go/storage/mysql"
)

// TableNameMetrics is the base table name for evaluation metrics.
const TableNameMetrics = "evaluation_metrics"

// maxTableNameLength is the MySQL identifier limit.
const maxTableNameLength = 64

var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Tables holds table names with the configured prefix applied.
type Tables struct {
	Metrics string
}

// BuildTables builds table names with the given prefix.
// A prefix without a trailing underscore gets one appended.
func BuildTables(prefix string) Tables {
	return Tables{Metrics: buildTableName(prefix, TableNameMetrics)}
}

func buildTableName(prefix, base string) string {
	if prefix == "" {
		return base
	}
	if !strings.HasSuffix(prefix, "_") {
		prefix += "_"
	}
	return prefix + base
}

// ValidateTables checks that every table name is a safe MySQL identifier.
// Table names are interpolated into SQL, so they must never come from untrusted input unchecked.
func ValidateTables(tables Tables) error {
	return validateTableName(tables.Metrics)
}

func validateTableName(name string) error {
	if name == "" {
		return fmt.Errorf("table name cannot be empty")
	}
	if len(name) > maxTableNameLength {
		return fmt.Errorf("table name too long: %d characters (max %d)", len(name), maxTableNameLength)
	}
	if !tableNamePattern.MatchString(name) {
		return fmt.Errorf("invalid table name: %s", name)
	}
	return nil
}

// EnsureSchema creates the metrics table and its indexes if they do not exist.
func EnsureSchema(ctx context.Context, db storage.Client, tables Tables) error {
	if err := ValidateTables(tables); err != nil {
		return err
	}
	query := strings.ReplaceAll(sqlCreateMetricsTable, "{{TABLE_NAME}}", tables.Metrics)
	if _, err := db.Exec(ctx, query); err != nil {
		return fmt.Errorf("create table %s failed: %w", tables.Metrics, err)
	}
	for _, idx := range metricsIndexes {
		query := strings.ReplaceAll(idx.template, "{{TABLE_NAME}}", tables.Metrics)
		query = strings.ReplaceAll(query, "{{INDEX_NAME}}", idx.name)
		if _, err := db.Exec(ctx, query); err != nil {
			if IsDuplicateKeyName(err) {
				continue
			}
			return fmt.Errorf("create index %s on table %s failed: %w", idx.name, tables.Metrics, err)
		}
	}
	return nil
}

type indexSpec struct {
	name     string
	template string
}

var metricsIndexes = []indexSpec{
	{name: "uniq_metrics_app_set_name", template: sqlCreateMetricsUniqueIndex},
	{name: "idx_metrics_app_set", template: sqlCreateMetricsAppSetIndex},
}

const (
	sqlCreateMetricsTable = `
		CREATE TABLE IF NOT EXISTS {{TABLE_NAME}} (
			id BIGINT NOT NULL AUTO_INCREMENT,
			app_name VARCHAR(255) NOT NULL,
			eval_set_id VARCHAR(255) NOT NULL,
			metric_name VARCHAR(255) NOT NULL,
			metric JSON NOT NULL,
			created_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
			updated_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6) ON UPDATE CURRENT_TIMESTAMP(6),
			PRIMARY KEY (id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`

	sqlCreateMetricsUniqueIndex = `
		CREATE UNIQUE INDEX {{INDEX_NAME}} ON {{TABLE_NAME}}(app_name, eval_set_id, metric_name)`

	sqlCreateMetricsAppSetIndex = `
		CREATE INDEX {{INDEX_NAME}} ON {{TABLE_NAME}}(app_name, eval_set_id)`
)
