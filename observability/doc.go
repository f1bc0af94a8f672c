// Package observability provides OpenTelemetry tracing and metrics for
// pipelines.
//
// Observe wraps a stage in a span that opens on the first pull and closes
// when the stage ends:
//
//	it := pipeline.Pipe(src,
//	    observability.Observe[string]("words", observability.WithMetrics(m)),
//	)
//
// Exporters are installed once per process:
//
//	tp, err := observability.InitTracer(ctx, cfg.Tracer("seqkit", version.Version, "development"))
//	defer tp.Shutdown(ctx)
//
//	mp, err := observability.InitMeter(ctx, cfg.Meter("seqkit", version.Version, "development"))
//	defer mp.Shutdown(ctx)
//
//	m, err := observability.NewMetrics(observability.Meter("seqkit"))
package observability
