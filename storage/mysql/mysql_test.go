//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package mysql

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterMySQLInstance_MultipleOptions(t *testing.T) {
	instanceName := "test-multi-opts"
	dsn := "user:password@tcp(localhost:3306)/testdb?parseTime=true"

	RegisterMySQLInstance(instanceName,
		WithClientBuilderDSN(dsn),
		WithMaxOpenConns(50),
		WithMaxIdleConns(10),
		WithConnMaxLifetime(time.Hour),
		WithExtraOptions("x"),
	)

	opts, ok := GetMySQLInstance(instanceName)
	require.True(t, ok)
	assert.Len(t, opts, 5)

	builderOpts := &ClientBuilderOpts{}
	for _, opt := range opts {
		opt(builderOpts)
	}
	assert.Equal(t, dsn, builderOpts.DSN)
	assert.Equal(t, 50, builderOpts.MaxOpenConns)
	assert.Equal(t, 10, builderOpts.MaxIdleConns)
	assert.Equal(t, time.Hour, builderOpts.ConnMaxLifetime)
	assert.Equal(t, []any{"x"}, builderOpts.ExtraOptions)
}

func TestRegisterMySQLInstance_Append(t *testing.T) {
	instanceName := "test-append"
	RegisterMySQLInstance(instanceName, WithClientBuilderDSN("dsn1"))
	RegisterMySQLInstance(instanceName, WithClientBuilderDSN("dsn2"))

	opts, ok := GetMySQLInstance(instanceName)
	require.True(t, ok)
	assert.Len(t, opts, 2)
}

func TestGetMySQLInstance_NotFound(t *testing.T) {
	_, ok := GetMySQLInstance("missing-instance")
	assert.False(t, ok)
}

func TestDefaultClientBuilder_EmptyDSN(t *testing.T) {
	_, err := DefaultClientBuilder()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dsn is empty")
}

func TestSetClientBuilder(t *testing.T) {
	oldBuilder := GetClientBuilder()
	t.Cleanup(func() { SetClientBuilder(oldBuilder) })

	called := false
	SetClientBuilder(func(builderOpts ...ClientBuilderOpt) (Client, error) {
		called = true
		return nil, errors.New("boom")
	})
	_, err := GetClientBuilder()(WithClientBuilderDSN("dsn"))
	require.Error(t, err)
	assert.True(t, called)
}

func TestSQLClient_Exec(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	c := WrapSQLDB(db)

	mock.ExpectExec("DELETE FROM t").WithArgs("a").WillReturnResult(sqlmock.NewResult(0, 1))
	res, err := c.Exec(context.Background(), "DELETE FROM t WHERE k = ?", "a")
	require.NoError(t, err)
	affected, err := res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	mock.ExpectClose()
	require.NoError(t, c.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLClient_Query(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	c := WrapSQLDB(db)

	mock.ExpectQuery("SELECT name FROM t").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("a").AddRow("b"))
	var names []string
	err = c.Query(context.Background(), func(rows *sql.Rows) error {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		names = append(names, name)
		return nil
	}, "SELECT name FROM t")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	mock.ExpectQuery("SELECT name FROM t").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("a"))
	err = c.Query(context.Background(), func(*sql.Rows) error {
		return errors.New("stop")
	}, "SELECT name FROM t")
	require.EqualError(t, err, "stop")

	mock.ExpectQuery("SELECT name FROM t").WillReturnError(errors.New("down"))
	err = c.Query(context.Background(), func(*sql.Rows) error { return nil }, "SELECT name FROM t")
	require.EqualError(t, err, "down")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLClient_QueryRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	c := WrapSQLDB(db)

	mock.ExpectQuery("SELECT v FROM t").WithArgs("k").
		WillReturnRows(sqlmock.NewRows([]string{"v"}).AddRow([]byte("payload")))
	var payload []byte
	require.NoError(t, c.QueryRow(context.Background(), []any{&payload}, "SELECT v FROM t WHERE k = ?", "k"))
	assert.Equal(t, "payload", string(payload))

	mock.ExpectQuery("SELECT v FROM t").WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"v"}))
	err = c.QueryRow(context.Background(), []any{&payload}, "SELECT v FROM t WHERE k = ?", "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}
