//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package bleu

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"trpc.group/trpc-go/trpc-bleu-go/evaluation/evaluator"
	cbleu "trpc.group/trpc-go/trpc-bleu-go/evaluation/metric/criterion/bleu"
	itelemetry "trpc.group/trpc-go/trpc-bleu-go/internal/telemetry"
)

// caseScore is the outcome of scoring one case.
type caseScore struct {
	result *cbleu.MatchResult
	err    error
}

type scoreCaseParam struct {
	idx       int
	ctx       context.Context
	evalCase  *evaluator.Case
	criterion *cbleu.BleuCriterion
	scores    []caseScore
	wg        *sync.WaitGroup
}

func (p *scoreCaseParam) reset() {
	p.idx = 0
	p.ctx = nil
	p.evalCase = nil
	p.criterion = nil
	p.scores = nil
	p.wg = nil
}

var scoreCaseParamPool = &sync.Pool{
	New: func() any { return new(scoreCaseParam) },
}

func createScoreCasePool(size int) (*ants.PoolWithFunc, error) {
	if size <= 0 {
		return nil, errors.New("pool size must be greater than 0")
	}
	pool, err := ants.NewPoolWithFunc(size, func(args any) {
		param, ok := args.(*scoreCaseParam)
		if !ok {
			panic("score case pool args type error")
		}
		wg := param.wg
		defer func() {
			wg.Done()
			param.reset()
			scoreCaseParamPool.Put(param)
		}()
		param.scores[param.idx] = scoreCase(param.ctx, param.criterion, param.evalCase)
	})
	if err != nil {
		return nil, fmt.Errorf("create score case pool: %w", err)
	}
	return pool, nil
}

// scoreCase matches one case against the criterion inside its own span.
func scoreCase(ctx context.Context, criterion *cbleu.BleuCriterion, evalCase *evaluator.Case) (cs caseScore) {
	ctx, span := itelemetry.Tracer.Start(ctx, itelemetry.OperationEvaluateCase)
	defer func() {
		var caseID string
		if evalCase != nil {
			caseID = evalCase.EvalID
		}
		var score float64
		if cs.result != nil {
			score = cs.result.Value
		}
		itelemetry.TraceEvaluateCase(span, caseID, score, cs.err)
		span.End()
	}()
	if evalCase == nil {
		return caseScore{err: errors.New("case is nil")}
	}
	result, err := criterion.Match(ctx, evalCase.Reference, evalCase.Hypothesis)
	if err != nil {
		return caseScore{err: fmt.Errorf("case %s: %w", evalCase.EvalID, err)}
	}
	return caseScore{result: result}
}
