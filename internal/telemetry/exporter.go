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
	"fmt"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// Resource defaults and OTLP protocols.
const (
	ServiceName      = "trpc-bleu-go"
	ServiceVersion   = "v0.1.0"
	ServiceNamespace = "trpc-go"

	// ProtocolGRPC uses gRPC protocol for OTLP exporter.
	ProtocolGRPC = "grpc"
	// ProtocolHTTP uses HTTP protocol for OTLP exporter.
	ProtocolHTTP = "http"
)

// ExporterOption configures the OTLP providers.
type ExporterOption func(*exporterOptions)

type exporterOptions struct {
	endpoint           string
	protocol           string
	serviceName        string
	serviceVersion     string
	serviceNamespace   string
	resourceAttributes []attribute.KeyValue
}

func newExporterOptions(opt ...ExporterOption) *exporterOptions {
	opts := &exporterOptions{
		protocol:         ProtocolGRPC,
		serviceName:      ServiceName,
		serviceVersion:   ServiceVersion,
		serviceNamespace: ServiceNamespace,
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// WithEndpoint sets the collector endpoint, such as "localhost:4317" (no scheme or path).
// It takes precedence over the OTEL_EXPORTER_OTLP_* environment variables.
func WithEndpoint(endpoint string) ExporterOption {
	return func(o *exporterOptions) {
		o.endpoint = endpoint
	}
}

// WithProtocol selects "grpc" (default) or "http".
func WithProtocol(protocol string) ExporterOption {
	return func(o *exporterOptions) {
		o.protocol = protocol
	}
}

// WithServiceName overrides the service.name resource attribute.
func WithServiceName(serviceName string) ExporterOption {
	return func(o *exporterOptions) {
		o.serviceName = serviceName
	}
}

// WithServiceVersion overrides the service.version resource attribute.
func WithServiceVersion(serviceVersion string) ExporterOption {
	return func(o *exporterOptions) {
		o.serviceVersion = serviceVersion
	}
}

// WithResourceAttributes appends custom resource attributes.
func WithResourceAttributes(attrs ...attribute.KeyValue) ExporterOption {
	return func(o *exporterOptions) {
		o.resourceAttributes = append(o.resourceAttributes, attrs...)
	}
}

// EndpointFromEnv reports the collector endpoint configured in the environment for signal
// ("traces" or "metrics"). The signal specific variable wins over OTEL_EXPORTER_OTLP_ENDPOINT.
func EndpointFromEnv(signal string) string {
	switch signal {
	case "traces":
		if endpoint := os.Getenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT"); endpoint != "" {
			return endpoint
		}
	case "metrics":
		if endpoint := os.Getenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT"); endpoint != "" {
			return endpoint
		}
	}
	return os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
}

// resolveEndpoint picks the explicit endpoint, then the environment, then the protocol default.
func resolveEndpoint(opts *exporterOptions, signal string) string {
	if opts.endpoint != "" {
		return opts.endpoint
	}
	if endpoint := EndpointFromEnv(signal); endpoint != "" {
		return endpoint
	}
	if opts.protocol == ProtocolHTTP {
		return "localhost:4318"
	}
	return "localhost:4317"
}

func validateProtocol(protocol string) error {
	switch protocol {
	case ProtocolGRPC, ProtocolHTTP:
		return nil
	default:
		return fmt.Errorf("unsupported otlp protocol %q", protocol)
	}
}

func buildResource(ctx context.Context, opts *exporterOptions) (*resource.Resource, error) {
	resourceOpts := []resource.Option{
		resource.WithAttributes(
			semconv.ServiceNamespace(opts.serviceNamespace),
			semconv.ServiceName(opts.serviceName),
			semconv.ServiceVersion(opts.serviceVersion),
		),
		resource.WithFromEnv(),
		resource.WithTelemetrySDK(),
	}
	if len(opts.resourceAttributes) > 0 {
		resourceOpts = append(resourceOpts, resource.WithAttributes(opts.resourceAttributes...))
	}
	return resource.New(ctx, resourceOpts...)
}

// NewTracerProvider creates a batching tracer provider exporting spans over OTLP.
// Endpoint: WithEndpoint, then OTEL_EXPORTER_OTLP_TRACES_ENDPOINT, then OTEL_EXPORTER_OTLP_ENDPOINT.
func NewTracerProvider(ctx context.Context, opt ...ExporterOption) (*sdktrace.TracerProvider, error) {
	opts := newExporterOptions(opt...)
	if err := validateProtocol(opts.protocol); err != nil {
		return nil, err
	}
	res, err := buildResource(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	endpoint := resolveEndpoint(opts, "traces")
	var exporter sdktrace.SpanExporter
	switch opts.protocol {
	case ProtocolHTTP:
		exporter, err = otlptracehttp.New(ctx,
			otlptracehttp.WithEndpoint(endpoint),
			otlptracehttp.WithInsecure())
	default:
		exporter, err = otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(endpoint),
			otlptracegrpc.WithInsecure())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}
	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	), nil
}

// NewMeterProvider creates a meter provider periodically exporting metrics over OTLP.
// Endpoint: WithEndpoint, then OTEL_EXPORTER_OTLP_METRICS_ENDPOINT, then OTEL_EXPORTER_OTLP_ENDPOINT.
func NewMeterProvider(ctx context.Context, opt ...ExporterOption) (*sdkmetric.MeterProvider, error) {
	opts := newExporterOptions(opt...)
	if err := validateProtocol(opts.protocol); err != nil {
		return nil, err
	}
	res, err := buildResource(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	endpoint := resolveEndpoint(opts, "metrics")
	var exporter sdkmetric.Exporter
	switch opts.protocol {
	case ProtocolHTTP:
		exporter, err = otlpmetrichttp.New(ctx,
			otlpmetrichttp.WithEndpoint(endpoint),
			otlpmetrichttp.WithInsecure())
	default:
		exporter, err = otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(endpoint),
			otlpmetricgrpc.WithInsecure())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics exporter: %w", err)
	}
	return sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		sdkmetric.WithResource(res),
	), nil
}

// Start installs OTLP tracer and meter providers for the evaluation instruments.
// The returned function flushes both providers and restores the noop ones.
func Start(ctx context.Context, opt ...ExporterOption) (func(context.Context) error, error) {
	tp, err := NewTracerProvider(ctx, opt...)
	if err != nil {
		return nil, err
	}
	mp, err := NewMeterProvider(ctx, opt...)
	if err != nil {
		return nil, errors.Join(err, tp.Shutdown(ctx))
	}
	if err := InitMeterProvider(mp); err != nil {
		return nil, errors.Join(err, tp.Shutdown(ctx), mp.Shutdown(ctx))
	}
	SetTracerProvider(tp)
	return func(ctx context.Context) error {
		SetTracerProvider(nil)
		restoreErr := InitMeterProvider(metricnoop.NewMeterProvider())
		return errors.Join(
			restoreErr,
			tp.Shutdown(ctx),
			mp.Shutdown(ctx),
		)
	}, nil
}
