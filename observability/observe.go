package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/pipeline"
)

// ObserveOption configures Observe.
type ObserveOption func(*observeConfig)

type observeConfig struct {
	tracer  trace.Tracer
	metrics *Metrics
}

// WithTracer sets the tracer used for run spans. Defaults to the global
// provider's tracer.
func WithTracer(tracer trace.Tracer) ObserveOption {
	return func(c *observeConfig) { c.tracer = tracer }
}

// WithMetrics records item and run metrics on m. Without it only spans
// are produced.
func WithMetrics(m *Metrics) ObserveOption {
	return func(c *observeConfig) { c.metrics = m }
}

// Observe wraps a pipeline stage in a span named name. The span starts on
// the first pull and ends when the source is exhausted, fails or is closed,
// carrying the number of values that passed through. Values pass through
// unchanged and upstream stages see the span in their context.
func Observe[T any](name string, opts ...ObserveOption) pipeline.Operator[T, T] {
	cfg := observeConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.tracer == nil {
		cfg.tracer = Tracer(defaultTracerName)
	}
	return func(src pipeline.Iterator[T]) pipeline.Iterator[T] {
		return &observeIter[T]{source: pipeline.From(src), name: name, cfg: cfg}
	}
}

type observeIter[T any] struct {
	source pipeline.Iterator[T]
	name   string
	cfg    observeConfig
	span   trace.Span
	start  time.Time
	items  int64
	ended  bool
}

func (it *observeIter[T]) Next(ctx context.Context) (T, bool, error) {
	if it.ended {
		return it.source.Next(ctx)
	}
	if it.span == nil {
		_, it.span = it.cfg.tracer.Start(ctx, it.name,
			trace.WithAttributes(attribute.String(AttrPipeline, it.name)))
		it.start = time.Now()
	}

	val, ok, err := it.source.Next(trace.ContextWithSpan(ctx, it.span))
	switch {
	case ok:
		it.items++
		if it.cfg.metrics != nil {
			it.cfg.metrics.RecordItem(ctx, it.name)
		}
	case err != nil:
		it.end(ctx, StatusError, err)
	default:
		it.end(ctx, StatusOK, nil)
	}
	return val, ok, err
}

func (it *observeIter[T]) Close() error {
	if it.span != nil && !it.ended {
		it.end(context.Background(), StatusClosed, nil)
	}
	it.ended = true
	return it.source.Close()
}

func (it *observeIter[T]) end(ctx context.Context, status string, err error) {
	it.ended = true
	it.span.SetAttributes(
		attribute.Int64(AttrItems, it.items),
		attribute.String(AttrStatus, status),
	)
	if err != nil {
		code := "UNKNOWN"
		if appErr, ok := errors.AsAppError(err); ok {
			code = string(appErr.Code)
		}
		it.span.RecordError(err)
		it.span.SetStatus(codes.Error, err.Error())
		it.span.SetAttributes(attribute.String(AttrErrorCode, code))
		if it.cfg.metrics != nil {
			it.cfg.metrics.RecordError(ctx, it.name, code)
		}
	}
	it.span.End()
	if it.cfg.metrics != nil {
		it.cfg.metrics.RecordRun(ctx, it.name, status, time.Since(it.start))
	}
}
