package observability

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/pipeline"
)

func newRecorder(t *testing.T) (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return sr, tp
}

func newManualMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	m, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	return m, reader
}

func sumOf(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					total += dp.Value
				}
			}
		}
	}
	return total
}

func attrValue(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestObserve_SpanPerRun(t *testing.T) {
	sr, tp := newRecorder(t)
	m, reader := newManualMetrics(t)

	it := observeOf(pipeline.Of("a", "b", "c"), "letters", WithTracer(tp.Tracer("test")), WithMetrics(m))
	if len(sr.Started()) != 0 {
		t.Fatal("expected no span before the first pull")
	}

	got, err := pipeline.Run(context.Background(), it, pipeline.IntoSlice[string])
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 values, got %v", got)
	}

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 ended span, got %d", len(spans))
	}
	span := spans[0]
	if span.Name() != "letters" {
		t.Errorf("expected span name 'letters', got %q", span.Name())
	}
	if v, ok := attrValue(span.Attributes(), AttrItems); !ok || v.AsInt64() != 3 {
		t.Errorf("expected %s=3, got %v", AttrItems, v.Emit())
	}
	if v, _ := attrValue(span.Attributes(), AttrStatus); v.AsString() != StatusOK {
		t.Errorf("expected status ok, got %q", v.AsString())
	}

	if n := sumOf(t, reader, "seqkit.items"); n != 3 {
		t.Errorf("expected seqkit.items=3, got %d", n)
	}
	if n := sumOf(t, reader, "seqkit.runs"); n != 1 {
		t.Errorf("expected seqkit.runs=1, got %d", n)
	}
}

func TestObserve_Failure(t *testing.T) {
	sr, tp := newRecorder(t)
	m, reader := newManualMetrics(t)

	boom := stderrors.New("boom")
	failing := pipeline.MapErr(func(_ context.Context, n int) (int, error) {
		if n == 2 {
			return 0, boom
		}
		return n, nil
	})(pipeline.Of(1, 2, 3))

	it := observeOf(failing, "numbers", WithTracer(tp.Tracer("test")), WithMetrics(m))
	_, err := pipeline.IntoSlice(context.Background(), it)
	if !stderrors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	span := sr.Ended()[0]
	if span.Status().Code != codes.Error {
		t.Errorf("expected error status, got %v", span.Status().Code)
	}
	if v, _ := attrValue(span.Attributes(), AttrErrorCode); v.AsString() != string(errors.ErrCodeCallback) {
		t.Errorf("expected error code attribute, got %q", v.AsString())
	}
	if v, _ := attrValue(span.Attributes(), AttrItems); v.AsInt64() != 1 {
		t.Errorf("expected 1 item before failure, got %d", v.AsInt64())
	}
	if n := sumOf(t, reader, "seqkit.errors"); n != 1 {
		t.Errorf("expected seqkit.errors=1, got %d", n)
	}
}

func TestObserve_ClosedEarly(t *testing.T) {
	sr, tp := newRecorder(t)

	it := pipeline.Take[int](2)(observeOf(pipeline.RepeatForever(7), "sevens", WithTracer(tp.Tracer("test"))))
	got, err := pipeline.Run(context.Background(), it, pipeline.IntoSlice[int])
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 values, got %v", got)
	}

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected span ended on Close, got %d spans", len(spans))
	}
	if v, _ := attrValue(spans[0].Attributes(), AttrStatus); v.AsString() != StatusClosed {
		t.Errorf("expected status closed, got %q", v.AsString())
	}
}

func TestObserve_NeverPulled(t *testing.T) {
	sr, tp := newRecorder(t)
	it := observeOf(pipeline.Of(1), "idle", WithTracer(tp.Tracer("test")))
	if err := it.Close(); err != nil {
		t.Fatal(err)
	}
	if len(sr.Ended()) != 0 {
		t.Error("expected no span for an iterator that was never pulled")
	}
}

func TestObserve_NestsUpstreamSpans(t *testing.T) {
	sr, tp := newRecorder(t)
	tracer := tp.Tracer("test")

	inner := Observe[int]("inner", WithTracer(tracer))
	outer := Observe[int]("outer", WithTracer(tracer))
	it := outer(inner(pipeline.Of(1, 2)))
	if _, err := pipeline.Run(context.Background(), it, pipeline.IntoSlice[int]); err != nil {
		t.Fatal(err)
	}

	byName := map[string]sdktrace.ReadOnlySpan{}
	for _, s := range sr.Ended() {
		byName[s.Name()] = s
	}
	if byName["inner"] == nil || byName["outer"] == nil {
		t.Fatalf("expected inner and outer spans, got %d", len(byName))
	}
	if byName["inner"].Parent().SpanID() != byName["outer"].SpanContext().SpanID() {
		t.Error("expected inner span to be a child of outer")
	}
}

func observeOf[T any](src pipeline.Iterator[T], name string, opts ...ObserveOption) pipeline.Iterator[T] {
	return Observe[T](name, opts...)(src)
}

func TestNewMetrics_Noop(t *testing.T) {
	m, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}
	ctx := context.Background()
	m.RecordItem(ctx, "p")
	m.RecordRun(ctx, "p", StatusOK, 10*time.Millisecond)
	m.RecordError(ctx, "p", "IO")
}

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("seqkit")
	if cfg.ServiceName != "seqkit" {
		t.Errorf("expected ServiceName 'seqkit', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("seqkit")
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
	if !cfg.Insecure {
		t.Error("expected Insecure true for default config")
	}
}

func TestSamplerFor(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{0.5, "TraceIDRatioBased{0.5}"},
	}
	for _, tc := range tests {
		if got := samplerFor(tc.rate).Description(); got != tc.want {
			t.Errorf("samplerFor(%v) = %q, want %q", tc.rate, got, tc.want)
		}
	}
}

func TestNewResource(t *testing.T) {
	res, err := newResource("seqkit", "1.2.3", "test")
	if err != nil {
		t.Fatalf("newResource: %v", err)
	}
	if v, ok := attrValue(res.Attributes(), "service.name"); !ok || v.AsString() != "seqkit" {
		t.Errorf("expected service.name=seqkit, got %v", v.Emit())
	}
}

func TestConfig_DefaultsAndDerivation(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Endpoint != "localhost:4318" || cfg.SampleRate != 1.0 || cfg.Interval != 15*time.Second {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	tc := cfg.Tracer("seqkit", "1.0.0", "production")
	if tc.Endpoint != cfg.Endpoint || tc.ServiceVersion != "1.0.0" {
		t.Errorf("unexpected tracer config: %+v", tc)
	}
	mc := cfg.Meter("seqkit", "1.0.0", "production")
	if mc.Interval != cfg.Interval || mc.Environment != "production" {
		t.Errorf("unexpected meter config: %+v", mc)
	}

	cfg.Interval = -time.Second
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative interval")
	}
}

func TestSetSpanError(t *testing.T) {
	sr, tp := newRecorder(t)
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	SetSpanError(ctx, stderrors.New("bad"))
	span.End()

	events := sr.Ended()[0].Events()
	if len(events) != 1 || events[0].Name != "exception" {
		t.Errorf("expected one exception event, got %v", events)
	}

	SetSpanError(context.Background(), stderrors.New("no span"))
}
