package cli

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/kbukum/seqkit/config"
	"github.com/kbukum/seqkit/logger"
	"github.com/kbukum/seqkit/observability"
	"github.com/kbukum/seqkit/pipeline"
	"github.com/kbukum/seqkit/version"
)

const runtimeKey = "seqkit.runtime"

// runtime carries what every command needs once global flags and config
// are resolved.
type runtime struct {
	cfg         *config.Config
	log         *logger.Logger
	trace       bool
	observe     bool
	observeOpts []observability.ObserveOption
	shutdown    []func(context.Context) error
}

func setup(c *cli.Context, opts *globalOptions) error {
	cfg, err := config.Load(config.WithConfigFile(opts.configFile))
	if err != nil {
		return err
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.trace {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.NewWithWriter(&cfg.Logging, cfg.Name, c.App.ErrWriter)
	logger.SetGlobalLogger(log)

	rt := &runtime{cfg: cfg, log: log, trace: opts.trace}
	if opts.otel || cfg.Observability.Enabled {
		if err := rt.initTelemetry(c.Context); err != nil {
			return err
		}
	}

	c.Context = logger.ContextWithRunID(c.Context, uuid.NewString())
	c.App.Metadata[runtimeKey] = rt
	return nil
}

func (rt *runtime) initTelemetry(ctx context.Context) error {
	obs := rt.cfg.Observability
	tp, err := observability.InitTracer(ctx, obs.Tracer(rt.cfg.Name, version.Version, rt.cfg.Environment))
	if err != nil {
		return err
	}
	rt.shutdown = append(rt.shutdown, tp.Shutdown)

	mp, err := observability.InitMeter(ctx, obs.Meter(rt.cfg.Name, version.Version, rt.cfg.Environment))
	if err != nil {
		return err
	}
	rt.shutdown = append(rt.shutdown, mp.Shutdown)

	metrics, err := observability.NewMetrics(observability.Meter(rt.cfg.Name))
	if err != nil {
		return err
	}
	rt.observe = true
	rt.observeOpts = append(rt.observeOpts, observability.WithMetrics(metrics))
	return nil
}

func (rt *runtime) close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var firstErr error
	for _, fn := range rt.shutdown {
		if err := fn(ctx); err != nil {
			rt.log.WithError(err).Warn("telemetry shutdown failed")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	rt.shutdown = nil
	return firstErr
}

func lookupRuntime(c *cli.Context) (*runtime, bool) {
	rt, ok := c.App.Metadata[runtimeKey].(*runtime)
	return rt, ok
}

// runtimeOf returns the runtime installed by setup, or a quiet default
// when a command runs without it.
func runtimeOf(c *cli.Context) *runtime {
	if rt, ok := lookupRuntime(c); ok {
		return rt
	}
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	return &runtime{cfg: cfg, log: logger.Nop()}
}

// instrument returns the stages enabled by --trace and --otel for a named
// point in a pipeline. With neither flag it is the identity.
func instrument[T any](rt *runtime, name string) pipeline.Operator[T, T] {
	var ops []pipeline.Operator[T, T]
	if rt.trace {
		ops = append(ops, pipeline.Trace[T](rt.log.WithComponent("trace"), name))
	}
	if rt.observe {
		ops = append(ops, observability.Observe[T](name, rt.observeOpts...))
	}
	return pipeline.Chain(ops...)
}
