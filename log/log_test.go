//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package log_test

import (
	"context"
	"testing"

	"trpc.group/trpc-go/trpc-bleu-go/log"
)

func TestLog(t *testing.T) {
	original := log.Default
	defer func() {
		log.Default = original
	}()

	log.Default = &noopLogger{}
	log.Debugf("test")
	log.Infof("test")
	log.Warnf("test")
	log.Errorf("test")
	log.Fatalf("test")
}

func TestContextHelpersUseContextDefault(t *testing.T) {
	ctx := context.Background()

	original := log.ContextDefault
	defer func() {
		log.ContextDefault = original
	}()

	logger := &countLogger{}
	log.ContextDefault = logger

	log.WarnfContext(ctx, "warn %d", 1)
	log.DebugfContext(ctx, "debug %d", 2)

	if logger.warnCalls != 1 {
		t.Fatalf("expected warnCalls=1, got %d", logger.warnCalls)
	}
	if logger.debugCalls != 1 {
		t.Fatalf("expected debugCalls=1, got %d", logger.debugCalls)
	}
}

type noopLogger struct{}

func (*noopLogger) Debug(args ...any)                 {}
func (*noopLogger) Debugf(format string, args ...any) {}
func (*noopLogger) Info(args ...any)                  {}
func (*noopLogger) Infof(format string, args ...any)  {}
func (*noopLogger) Warn(args ...any)                  {}
func (*noopLogger) Warnf(format string, args ...any)  {}
func (*noopLogger) Error(args ...any)                 {}
func (*noopLogger) Errorf(format string, args ...any) {}
func (*noopLogger) Fatalf(format string, args ...any) {}

type countLogger struct {
	noopLogger
	warnCalls  int
	debugCalls int
}

func (c *countLogger) Warnf(format string, args ...any)  { c.warnCalls++ }
func (c *countLogger) Debugf(format string, args ...any) { c.debugCalls++ }
