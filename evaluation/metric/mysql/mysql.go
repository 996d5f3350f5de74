//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package mysql provides a MySQL-backed metric manager.
package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"trpc.group/trpc-go/trpc-bleu-go/evaluation/internal/mysqldb"
	"trpc.group/trpc-go/trpc-bleu-go/evaluation/metric"
	storage "trpc.group/trpc-go/trpc-bleu-go/storage/mysql"
)

var _ metric.Manager = (*manager)(nil)

type manager struct {
	db      storage.Client
	tables  mysqldb.Tables
	queries queries
}

// queries holds the statements with the table name applied.
type queries struct {
	list   string
	get    string
	insert string
	update string
	delete string
}

func buildQueries(table string) queries {
	return queries{
		list: fmt.Sprintf(
			"SELECT metric_name FROM %s WHERE app_name = ? AND eval_set_id = ? ORDER BY id ASC", table),
		get: fmt.Sprintf(
			"SELECT metric FROM %s WHERE app_name = ? AND eval_set_id = ? AND metric_name = ?", table),
		insert: fmt.Sprintf(
			"INSERT INTO %s (app_name, eval_set_id, metric_name, metric) VALUES (?, ?, ?, ?)", table),
		update: fmt.Sprintf(
			"UPDATE %s SET metric = ?, updated_at = CURRENT_TIMESTAMP(6) WHERE app_name = ? AND eval_set_id = ? AND metric_name = ?", table),
		delete: fmt.Sprintf(
			"DELETE FROM %s WHERE app_name = ? AND eval_set_id = ? AND metric_name = ?", table),
	}
}

// New creates a MySQL-backed metric manager.
func New(opt ...Option) (metric.Manager, error) {
	opts := newOptions(opt...)
	tables := mysqldb.BuildTables(opts.tablePrefix)
	if err := mysqldb.ValidateTables(tables); err != nil {
		return nil, fmt.Errorf("invalid table prefix %q: %w", opts.tablePrefix, err)
	}
	db, err := mysqldb.BuildClient(opts.dsn, opts.instanceName, opts.extraOptions)
	if err != nil {
		return nil, fmt.Errorf("create mysql client failed: %w", err)
	}
	if !opts.skipDBInit {
		ctx, cancel := context.WithTimeout(context.Background(), opts.initTimeout)
		defer cancel()
		if err := mysqldb.EnsureSchema(ctx, db, tables); err != nil {
			return nil, errors.Join(fmt.Errorf("init database failed: %w", err), db.Close())
		}
	}
	return newManager(db, tables), nil
}

func newManager(db storage.Client, tables mysqldb.Tables) *manager {
	return &manager{
		db:      db,
		tables:  tables,
		queries: buildQueries(tables.Metrics),
	}
}

// Close implements metric.Manager.
func (m *manager) Close() error {
	if m.db == nil {
		return nil
	}
	return m.db.Close()
}

// List lists metric names of the eval set in insertion order.
func (m *manager) List(ctx context.Context, appName, evalSetID string) ([]string, error) {
	if err := validateKey(appName, evalSetID); err != nil {
		return nil, err
	}
	names := []string{}
	if err := m.db.Query(ctx, func(rows *sql.Rows) error {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		names = append(names, name)
		return nil
	}, m.queries.list, appName, evalSetID); err != nil {
		return nil, fmt.Errorf("list metrics %s.%s: %w", appName, evalSetID, err)
	}
	return names, nil
}

// Get retrieves a metric definition.
func (m *manager) Get(ctx context.Context, appName, evalSetID, metricName string) (*metric.EvalMetric, error) {
	if err := validateKey(appName, evalSetID); err != nil {
		return nil, err
	}
	if metricName == "" {
		return nil, errors.New("empty metric name")
	}
	var payload []byte
	if err := m.db.QueryRow(ctx, []any{&payload}, m.queries.get, appName, evalSetID, metricName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("metric %s.%s.%s not found: %w", appName, evalSetID, metricName, os.ErrNotExist)
		}
		return nil, fmt.Errorf("get metric %s.%s.%s: %w", appName, evalSetID, metricName, err)
	}
	var res metric.EvalMetric
	if err := json.Unmarshal(payload, &res); err != nil {
		return nil, fmt.Errorf("unmarshal metric %s.%s.%s: %w", appName, evalSetID, metricName, err)
	}
	return &res, nil
}

// Add inserts a new metric definition.
func (m *manager) Add(ctx context.Context, appName, evalSetID string, evalMetric *metric.EvalMetric) error {
	if err := validateMetric(appName, evalSetID, evalMetric); err != nil {
		return err
	}
	payload, err := json.Marshal(evalMetric)
	if err != nil {
		return fmt.Errorf("marshal metric: %w", err)
	}
	if _, err := m.db.Exec(ctx, m.queries.insert, appName, evalSetID, evalMetric.MetricName, payload); err != nil {
		if mysqldb.IsDuplicateEntry(err) {
			return fmt.Errorf("metric %s.%s.%s already exists", appName, evalSetID, evalMetric.MetricName)
		}
		return fmt.Errorf("add metric %s.%s.%s: %w", appName, evalSetID, evalMetric.MetricName, err)
	}
	return nil
}

// Delete removes a metric definition.
func (m *manager) Delete(ctx context.Context, appName, evalSetID, metricName string) error {
	if err := validateKey(appName, evalSetID); err != nil {
		return err
	}
	if metricName == "" {
		return errors.New("metric name is empty")
	}
	res, err := m.db.Exec(ctx, m.queries.delete, appName, evalSetID, metricName)
	if err != nil {
		return fmt.Errorf("delete metric %s.%s.%s: %w", appName, evalSetID, metricName, err)
	}
	return checkAffected(res, appName, evalSetID, metricName)
}

// Update replaces an existing metric definition.
func (m *manager) Update(ctx context.Context, appName, evalSetID string, evalMetric *metric.EvalMetric) error {
	if err := validateMetric(appName, evalSetID, evalMetric); err != nil {
		return err
	}
	payload, err := json.Marshal(evalMetric)
	if err != nil {
		return fmt.Errorf("marshal metric: %w", err)
	}
	res, err := m.db.Exec(ctx, m.queries.update, payload, appName, evalSetID, evalMetric.MetricName)
	if err != nil {
		return fmt.Errorf("update metric %s.%s.%s: %w", appName, evalSetID, evalMetric.MetricName, err)
	}
	return checkAffected(res, appName, evalSetID, evalMetric.MetricName)
}

// checkAffected maps a statement that touched no row to os.ErrNotExist.
// updated_at always changes, so an UPDATE of an existing row affects it.
func checkAffected(res sql.Result, appName, evalSetID, metricName string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected failed: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("metric %s.%s.%s not found: %w", appName, evalSetID, metricName, os.ErrNotExist)
	}
	return nil
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
