// Package observability provides OpenTelemetry tracing and metrics for gqlkit
// clients.
//
// Setup wires the global tracer and meter providers from configuration and
// returns a shutdown function:
//
//	shutdown, err := observability.Setup(ctx, cfg.Observability, log)
//	defer shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("catalog"))
//	metrics.RecordDispatch(ctx, "countries", "ok", duration)
//
// With tracing disabled the global no-op providers stay in place, so spans and
// instruments are always safe to use.
package observability
