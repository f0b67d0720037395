package observability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/gqlkit/version"
)

// InitMeter installs a global meter provider that pushes to OTLP/HTTP every
// cfg.Interval. Shut the provider down on exit.
func InitMeter(ctx context.Context, cfg Config) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}
	res, err := cfg.resource()
	if err != nil {
		return nil, err
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)
	return mp, nil
}

// Meter returns a meter from the global provider stamped with the module version.
func Meter(name string) metric.Meter {
	return otel.Meter(name, metric.WithInstrumentationVersion(version.Short()))
}

// Metrics records client dispatch. A nil *Metrics records nothing.
type Metrics struct {
	dispatches metric.Int64Counter
	latency    metric.Float64Histogram
	results    metric.Int64Counter
	errors     metric.Int64Counter
}

// NewMetrics registers the dispatch instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	var m Metrics
	var errs []error
	counter := func(name, desc string) metric.Int64Counter {
		c, err := meter.Int64Counter(name, metric.WithDescription(desc))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
		return c
	}

	m.dispatches = counter("graphql.dispatch.total", "Requests dispatched to a client")
	m.results = counter("graphql.result.total", "Raw results yielded by clients")
	m.errors = counter("graphql.error.total", "Errors by type and client")
	latency, err := meter.Float64Histogram("graphql.dispatch.duration",
		metric.WithDescription("Time to open a result stream"),
		metric.WithUnit("s"),
	)
	if err != nil {
		errs = append(errs, fmt.Errorf("graphql.dispatch.duration: %w", err))
	}
	m.latency = latency

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("creating instruments: %w", err)
	}
	return &m, nil
}

// RecordDispatch records one attempt to open a result stream.
func (m *Metrics) RecordDispatch(ctx context.Context, client, status string, took time.Duration) {
	if m == nil {
		return
	}
	who := attribute.String("client", client)
	m.dispatches.Add(ctx, 1, metric.WithAttributes(who, attribute.String("status", status)))
	m.latency.Record(ctx, took.Seconds(), metric.WithAttributes(who))
}

// RecordResult counts one raw result yielded by client.
func (m *Metrics) RecordResult(ctx context.Context, client string) {
	if m == nil {
		return
	}
	m.results.Add(ctx, 1, metric.WithAttributes(attribute.String("client", client)))
}

// RecordError counts one error of errType from client.
func (m *Metrics) RecordError(ctx context.Context, errType, client string) {
	if m == nil {
		return
	}
	m.errors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", errType),
		attribute.String("client", client),
	))
}
