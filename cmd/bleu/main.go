//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package main is the command line entry of sentence BLEU scoring.
//
// Score one hypothesis:
//
//	bleu -reference "the cat is on the mat" -hypothesis "the cat sat on the mat"
//
// Evaluate a JSON array of cases against the metrics stored under -data-dir,
// or in MySQL when -mysql-dsn is set:
//
//	bleu -cases cases.json -data-dir ./metrics -app demo -eval-set smoke
//
// Spans and metrics are exported over OTLP when -otlp-endpoint or
// OTEL_EXPORTER_OTLP_ENDPOINT is set.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trpc.group/trpc-go/trpc-bleu-go/evaluation"
	"trpc.group/trpc-go/trpc-bleu-go/evaluation/evaluator"
	bleuevaluator "trpc.group/trpc-go/trpc-bleu-go/evaluation/evaluator/bleu"
	"trpc.group/trpc-go/trpc-bleu-go/evaluation/evaluator/registry"
	"trpc.group/trpc-go/trpc-bleu-go/evaluation/metric"
	cbleu "trpc.group/trpc-go/trpc-bleu-go/evaluation/metric/criterion/bleu"
	metriclocal "trpc.group/trpc-go/trpc-bleu-go/evaluation/metric/local"
	metricmysql "trpc.group/trpc-go/trpc-bleu-go/evaluation/metric/mysql"
	itelemetry "trpc.group/trpc-go/trpc-bleu-go/internal/telemetry"
	"trpc.group/trpc-go/trpc-bleu-go/log"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2

	telemetryShutdownTimeout = 5 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// flags holds the parsed command line.
type flags struct {
	reference  string
	hypothesis string
	weights    string
	smooth     bool
	configPath string
	casesPath  string
	dataDir    string
	appName    string
	evalSetID  string
	logLevel   string
	mysqlDSN   string
	tablePref  string
	otlpAddr   string
	otlpProto  string
	set        map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (*flags, error) {
	f := &flags{set: make(map[string]bool)}
	fs := flag.NewFlagSet("bleu", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.reference, "reference", "", "whitespace tokenized reference sentence")
	fs.StringVar(&f.hypothesis, "hypothesis", "", "whitespace tokenized hypothesis sentence")
	fs.StringVar(&f.weights, "weights", "", "comma separated n-gram weights, default 0.25,0.25,0.25,0.25")
	fs.BoolVar(&f.smooth, "smooth", false, "add 0.1 to zero n-gram match counts")
	fs.StringVar(&f.configPath, "config", "", "YAML file with weights, smooth, threshold and parallelism")
	fs.StringVar(&f.casesPath, "cases", "", "JSON file holding an array of {evalId, reference, hypothesis}")
	fs.StringVar(&f.dataDir, "data-dir", "metrics", "directory of the local metric store used with -cases")
	fs.StringVar(&f.appName, "app", "bleu", "app name used with -cases")
	fs.StringVar(&f.evalSetID, "eval-set", "default", "eval set id used with -cases")
	fs.StringVar(&f.logLevel, "log-level", log.LevelWarn, "debug, info, warn, error or fatal")
	fs.StringVar(&f.mysqlDSN, "mysql-dsn", "", "store metrics in MySQL instead of -data-dir, e.g. user:pass@tcp(host:3306)/db")
	fs.StringVar(&f.tablePref, "mysql-table-prefix", "", "table name prefix used with -mysql-dsn")
	fs.StringVar(&f.otlpAddr, "otlp-endpoint", "", "OTLP collector host:port, defaults to OTEL_EXPORTER_OTLP_ENDPOINT")
	fs.StringVar(&f.otlpProto, "otlp-protocol", itelemetry.ProtocolGRPC, "OTLP protocol, grpc or http")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	if f.casesPath == "" && (!f.set["reference"] || !f.set["hypothesis"]) {
		return nil, errors.New("either -cases or both -reference and -hypothesis are required")
	}
	return f, nil
}

// run executes the command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	log.SetOutput(stderr)
	f, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "bleu: %v\n", err)
		return exitUsage
	}
	log.SetLevel(f.logLevel)

	shutdown, err := startTelemetry(ctx, f)
	if err != nil {
		log.Errorf("bleu: start telemetry: %v", err)
		return exitError
	}
	defer shutdown()

	cfg, err := loadConfig(f.configPath)
	if err != nil {
		log.Errorf("bleu: %v", err)
		return exitError
	}
	if f.set["weights"] {
		weights, err := parseWeights(f.weights)
		if err != nil {
			log.Errorf("bleu: %v", err)
			return exitUsage
		}
		cfg.Weights = weights
	}
	if f.set["smooth"] {
		cfg.Smooth = f.smooth
	}

	var out any
	if f.casesPath != "" {
		out, err = evaluateCases(ctx, f, cfg)
	} else {
		out, err = scoreSentence(ctx, f.reference, f.hypothesis, cfg)
	}
	if err != nil {
		log.Errorf("bleu: %v", err)
		return exitError
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Errorf("bleu: write result: %v", err)
		return exitError
	}
	return exitOK
}

// sentenceResult is the JSON output of a single sentence score.
type sentenceResult struct {
	BLEU             float64           `json:"bleu"`
	BrevityPenalty   float64           `json:"brevityPenalty"`
	HypothesisLength int               `json:"hypothesisLength"`
	ReferenceLength  int               `json:"referenceLength"`
	Weights          []float64         `json:"weights,omitempty"`
	Precisions       []precisionResult `json:"precisions,omitempty"`
	Passed           bool              `json:"passed"`
	Reason           string            `json:"reason"`
}

type precisionResult struct {
	Order    int     `json:"order"`
	Matches  int     `json:"matches"`
	Total    int     `json:"total"`
	Value    float64 `json:"value"`
	Smoothed bool    `json:"smoothed,omitempty"`
}

func scoreSentence(ctx context.Context, reference, hypothesis string, cfg *config) (*sentenceResult, error) {
	result, err := cfg.criterion().Match(ctx, reference, hypothesis)
	if err != nil {
		return nil, err
	}
	return newSentenceResult(result), nil
}

func newSentenceResult(r *cbleu.MatchResult) *sentenceResult {
	out := &sentenceResult{
		BLEU:             r.Value,
		BrevityPenalty:   r.Score.BrevityPenalty,
		HypothesisLength: r.Score.HypothesisLength,
		ReferenceLength:  r.Score.ReferenceLength,
		Weights:          r.Score.Weights,
		Passed:           r.Passed,
		Reason:           r.Reason(),
	}
	for _, p := range r.Score.Precisions {
		out.Precisions = append(out.Precisions, precisionResult{
			Order:    p.Order,
			Matches:  p.Matches,
			Total:    p.Total,
			Value:    p.Value,
			Smoothed: p.Smoothed,
		})
	}
	return out
}

// evaluateCases runs the eval set metrics against the cases file.
// The BLEU metric built from the flags is stored first when the eval set has none.
func evaluateCases(ctx context.Context, f *flags, cfg *config) (*evaluation.EvaluationResult, error) {
	cases, err := loadCases(f.casesPath)
	if err != nil {
		return nil, err
	}
	var evaluatorOpts []bleuevaluator.Option
	if cfg.Parallelism > 0 {
		evaluatorOpts = append(evaluatorOpts, bleuevaluator.WithParallelism(cfg.Parallelism))
	}
	manager, err := newMetricManager(f)
	if err != nil {
		return nil, err
	}
	e, err := evaluation.New(f.appName,
		evaluation.WithMetricManager(manager),
		evaluation.WithRegistry(registry.New(evaluatorOpts...)),
		evaluation.WithEvalMetrics(cfg.evalMetric()),
	)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("create evaluation: %w", err), manager.Close())
	}
	result, err := e.Evaluate(ctx, f.evalSetID, cases)
	if closeErr := e.Close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", f.evalSetID, err)
	}
	return result, nil
}

func loadCases(path string) ([]*evaluator.Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cases %s: %w", path, err)
	}
	var cases []*evaluator.Case
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("parse cases %s: %w", path, err)
	}
	return cases, nil
}

// newMetricManager selects the MySQL store when a DSN is given and the local file store otherwise.
func newMetricManager(f *flags) (metric.Manager, error) {
	if f.mysqlDSN == "" {
		return metriclocal.New(metriclocal.WithBaseDir(f.dataDir)), nil
	}
	manager, err := metricmysql.New(
		metricmysql.WithMySQLClientDSN(f.mysqlDSN),
		metricmysql.WithTablePrefix(f.tablePref),
	)
	if err != nil {
		return nil, fmt.Errorf("create mysql metric manager: %w", err)
	}
	return manager, nil
}

// startTelemetry installs OTLP exporters when a collector endpoint is configured.
// The returned function flushes pending spans and metrics.
func startTelemetry(ctx context.Context, f *flags) (func(), error) {
	if f.otlpAddr == "" && itelemetry.EndpointFromEnv("traces") == "" &&
		itelemetry.EndpointFromEnv("metrics") == "" {
		return func() {}, nil
	}
	opts := []itelemetry.ExporterOption{itelemetry.WithProtocol(f.otlpProto)}
	if f.otlpAddr != "" {
		opts = append(opts, itelemetry.WithEndpoint(f.otlpAddr))
	}
	shutdown, err := itelemetry.Start(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), telemetryShutdownTimeout)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			log.Warnf("bleu: flush telemetry: %v", err)
		}
	}, nil
}
