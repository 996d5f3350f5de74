//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package metric

// Built-in metric names.
const (
	// MetricBleuScore scores each case with sentence BLEU and averages the case scores.
	MetricBleuScore = "bleu_score"
)
