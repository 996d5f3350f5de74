//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package bleu provides the sentence BLEU evaluator.
package bleu

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	multierror "github.com/hashicorp/go-multierror"

	"trpc.group/trpc-go/trpc-bleu-go/evaluation/evaluator"
	"trpc.group/trpc-go/trpc-bleu-go/evaluation/metric"
	cbleu "trpc.group/trpc-go/trpc-bleu-go/evaluation/metric/criterion/bleu"
	"trpc.group/trpc-go/trpc-bleu-go/evaluation/status"
	itelemetry "trpc.group/trpc-go/trpc-bleu-go/internal/telemetry"
	"trpc.group/trpc-go/trpc-bleu-go/log"
)

// bleuEvaluator scores every case with sentence BLEU and averages the scores.
type bleuEvaluator struct {
	parallelism int
}

// New creates a new BLEU evaluator.
func New(opt ...Option) evaluator.Evaluator {
	opts := newOptions(opt...)
	return &bleuEvaluator{parallelism: opts.parallelism}
}

// Name returns the evaluator identifier.
func (e *bleuEvaluator) Name() string {
	return metric.MetricBleuScore
}

// Description describes the evaluator purpose.
func (e *bleuEvaluator) Description() string {
	return "Scores hypotheses against single references with sentence BLEU and averages the case scores"
}

// Evaluate scores each case concurrently. Any failing case fails the whole evaluation.
func (e *bleuEvaluator) Evaluate(ctx context.Context, cases []*evaluator.Case,
	evalMetric *metric.EvalMetric) (result *evaluator.EvaluateResult, err error) {
	if ctx == nil {
		return nil, errors.New("context is nil")
	}
	if evalMetric == nil {
		return nil, errors.New("eval metric is nil")
	}
	ctx, span := itelemetry.Tracer.Start(ctx, itelemetry.NewEvaluateSpanName(e.Name()))
	defer func() {
		var score float64
		st := status.EvalStatusUnknown
		if result != nil {
			score, st = result.OverallScore, result.OverallStatus
		}
		itelemetry.TraceEvaluateResult(span, e.Name(), score, st.String(), len(cases), err)
		span.End()
	}()

	criterion := bleuCriterion(evalMetric)
	if len(cases) == 0 {
		return &evaluator.EvaluateResult{OverallStatus: status.EvalStatusNotEvaluated}, nil
	}
	if criterion.Ignore {
		return ignoredResult(cases), nil
	}

	scores, err := e.scoreCases(ctx, criterion, cases)
	if err != nil {
		return nil, err
	}

	perCase := make([]*evaluator.PerCaseResult, 0, len(cases))
	var totalScore float64
	for i, s := range scores {
		caseStatus := status.EvalStatusFailed
		if s.result.Passed {
			caseStatus = status.FromScore(s.result.Value, evalMetric.Threshold)
		}
		perCase = append(perCase, &evaluator.PerCaseResult{
			EvalID: cases[i].EvalID,
			Score:  s.result.Value,
			Status: caseStatus,
			Details: &evaluator.PerCaseDetails{
				Reason: s.result.Reason(),
				Values: scoreValues(s.result.Score),
			},
		})
		totalScore += s.result.Value
		itelemetry.RecordEvalCase(ctx, e.Name(), caseStatus.String(), s.result.Value)
		log.DebugfContext(ctx, "bleu: case %s scored %.6f (%s)", cases[i].EvalID, s.result.Value, caseStatus)
	}
	overallScore := totalScore / float64(len(perCase))
	return &evaluator.EvaluateResult{
		OverallScore:   overallScore,
		OverallStatus:  status.FromScore(overallScore, evalMetric.Threshold),
		PerCaseResults: perCase,
	}, nil
}

// scoreCases runs the cases through a worker pool sized by the configured parallelism.
func (e *bleuEvaluator) scoreCases(ctx context.Context, criterion *cbleu.BleuCriterion,
	cases []*evaluator.Case) ([]caseScore, error) {
	pool, err := createScoreCasePool(min(e.parallelism, len(cases)))
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	scores := make([]caseScore, len(cases))
	var wg sync.WaitGroup
	var errs *multierror.Error
	for i, evalCase := range cases {
		if err := ctx.Err(); err != nil {
			errs = multierror.Append(errs, err)
			break
		}
		param := scoreCaseParamPool.Get().(*scoreCaseParam)
		param.idx = i
		param.ctx = ctx
		param.evalCase = evalCase
		param.criterion = criterion
		param.scores = scores
		param.wg = &wg
		wg.Add(1)
		if err := pool.Invoke(param); err != nil {
			wg.Done()
			param.reset()
			scoreCaseParamPool.Put(param)
			errs = multierror.Append(errs, fmt.Errorf("submit case %d: %w", i, err))
			break
		}
	}
	wg.Wait()
	if errs != nil {
		return nil, errs.ErrorOrNil()
	}
	for _, s := range scores {
		if s.err != nil {
			errs = multierror.Append(errs, s.err)
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		log.WarnfContext(ctx, "bleu: %d of %d cases failed: %v", len(errs.Errors), len(cases), err)
		return nil, err
	}
	return scores, nil
}

// bleuCriterion returns the configured criterion, falling back to default BLEU-4.
func bleuCriterion(evalMetric *metric.EvalMetric) *cbleu.BleuCriterion {
	if evalMetric.Criterion == nil || evalMetric.Criterion.Bleu == nil {
		return cbleu.New()
	}
	return evalMetric.Criterion.Bleu
}

// ignoredResult marks every case as not evaluated.
func ignoredResult(cases []*evaluator.Case) *evaluator.EvaluateResult {
	perCase := make([]*evaluator.PerCaseResult, 0, len(cases))
	for _, evalCase := range cases {
		var evalID string
		if evalCase != nil {
			evalID = evalCase.EvalID
		}
		perCase = append(perCase, &evaluator.PerCaseResult{
			EvalID:  evalID,
			Status:  status.EvalStatusNotEvaluated,
			Details: &evaluator.PerCaseDetails{Reason: "bleu criterion ignored"},
		})
	}
	return &evaluator.EvaluateResult{
		OverallStatus:  status.EvalStatusNotEvaluated,
		PerCaseResults: perCase,
	}
}

// scoreValues flattens a BLEU score into named components.
func scoreValues(score cbleu.Score) map[string]float64 {
	values := map[string]float64{
		"bleu": score.BLEU,
		"bp":   score.BrevityPenalty,
	}
	for _, p := range score.Precisions {
		values["p"+strconv.Itoa(p.Order)] = p.Value
	}
	return values
}
