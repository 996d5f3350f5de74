//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package mysqldb holds the MySQL helpers shared by the evaluation stores.
package mysqldb

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	storage "trpc.group/trpc-go/trpc-bleu-go/storage/mysql"
)

const (
	// ErrDuplicateKeyName is returned by MySQL when an index with the same name already exists.
	ErrDuplicateKeyName uint16 = 1061
	// ErrDuplicateEntry is returned by MySQL when a row violates a unique constraint.
	ErrDuplicateEntry uint16 = 1062
)

// BuildClient builds a MySQL client with either DSN or a registered instance name.
func BuildClient(dsn, instanceName string, extraOptions []any) (storage.Client, error) {
	builderOpts := []storage.ClientBuilderOpt{
		storage.WithClientBuilderDSN(dsn),
		storage.WithExtraOptions(extraOptions...),
	}
	// Priority: dsn > instanceName.
	if dsn == "" && instanceName != "" {
		var ok bool
		if builderOpts, ok = storage.GetMySQLInstance(instanceName); !ok {
			return nil, fmt.Errorf("mysql instance %s not found", instanceName)
		}
	}
	return storage.GetClientBuilder()(builderOpts...)
}

// IsDuplicateEntry reports whether err is a MySQL duplicate entry error.
func IsDuplicateEntry(err error) bool {
	return hasErrorNumber(err, ErrDuplicateEntry)
}

// IsDuplicateKeyName reports whether err is a MySQL duplicate index name error.
func IsDuplicateKeyName(err error) bool {
	return hasErrorNumber(err, ErrDuplicateKeyName)
}

func hasErrorNumber(err error, number uint16) bool {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return false
	}
	return mysqlErr.Number == number
}
