//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package mysql

import "time"

const defaultInitTimeout = 30 * time.Second

type options struct {
	dsn          string
	instanceName string
	extraOptions []any
	skipDBInit   bool
	tablePrefix  string
	initTimeout  time.Duration
}

func newOptions(opt ...Option) *options {
	opts := &options{
		initTimeout: defaultInitTimeout,
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option configures the MySQL metric manager.
type Option func(*options)

// WithMySQLClientDSN sets the data source name. It takes priority over WithMySQLInstance.
func WithMySQLClientDSN(dsn string) Option {
	return func(o *options) {
		o.dsn = dsn
	}
}

// WithMySQLInstance selects an instance registered with storage/mysql.RegisterMySQLInstance.
func WithMySQLInstance(instanceName string) Option {
	return func(o *options) {
		o.instanceName = instanceName
	}
}

// WithExtraOptions passes extra options to the client builder.
func WithExtraOptions(extraOptions ...any) Option {
	return func(o *options) {
		o.extraOptions = append(o.extraOptions, extraOptions...)
	}
}

// WithSkipDBInit skips creating the metrics table on startup.
func WithSkipDBInit(skip bool) Option {
	return func(o *options) {
		o.skipDBInit = skip
	}
}

// WithTablePrefix sets the table name prefix.
func WithTablePrefix(prefix string) Option {
	return func(o *options) {
		o.tablePrefix = prefix
	}
}

// WithInitTimeout sets the schema bootstrap timeout. Non-positive values keep the default.
func WithInitTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout <= 0 {
			return
		}
		o.initTimeout = timeout
	}
}
