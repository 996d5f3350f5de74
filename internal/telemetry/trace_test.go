//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewEvaluateSpanName(t *testing.T) {
	assert.Equal(t, "evaluate bleu_score", NewEvaluateSpanName("bleu_score"))
	assert.Equal(t, "evaluate", NewEvaluateSpanName(""))
}

func TestSetTracerProvider(t *testing.T) {
	origProvider, origTracer := TracerProvider, Tracer
	t.Cleanup(func() { TracerProvider, Tracer = origProvider, origTracer })

	recorder := tracetest.NewSpanRecorder()
	SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))

	_, span := Tracer.Start(context.Background(), NewEvaluateSpanName("bleu_score"))
	TraceEvaluateResult(span, "bleu_score", 0.5, "passed", 2, nil)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "evaluate bleu_score", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.Float64(KeyEvalScore, 0.5))
	assert.Contains(t, spans[0].Attributes(), attribute.Int(KeyEvalCaseCount, 2))
	assert.Equal(t, codes.Unset, spans[0].Status().Code)

	SetTracerProvider(nil)
	assert.NotNil(t, Tracer)
}

func TestTraceEvaluateResult_Error(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := tp.Tracer(InstrumentName).Start(context.Background(), "evaluate")
	TraceEvaluateResult(span, "bleu_score", 0, "failed", 1, errors.New("boom"))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "boom", spans[0].Status().Description)
	require.Len(t, spans[0].Events(), 1)
}
