package pipeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/kbukum/seqkit/logger"
)

// Trace logs every value passing through at debug level, tagged with label,
// a run id and the value's position, plus one line when the source ends.
// Each iterator built by the operator gets its own run id unless the
// context already carries one (see logger.ContextWithRunID). Values pass
// through unchanged.
func Trace[T any](log *logger.Logger, label string) Operator[T, T] {
	if log == nil {
		log = logger.Nop()
	}
	return func(src Iterator[T]) Iterator[T] {
		return &traceIter[T]{
			source: From(src),
			log:    log.WithFields(logger.Fields(logger.FieldLabel, label)),
			runID:  uuid.NewString(),
		}
	}
}

type traceIter[T any] struct {
	source Iterator[T]
	log    *logger.Logger
	runID  string
	pos    int
	ended  bool
}

func (it *traceIter[T]) Next(ctx context.Context) (T, bool, error) {
	val, ok, err := it.source.Next(ctx)
	if !it.log.DebugEnabled() {
		return val, ok, err
	}
	l := it.logFor(ctx)
	switch {
	case ok:
		l.Debug("item", logger.Fields(logger.FieldPosition, it.pos, logger.FieldItem, val))
		it.pos++
	case it.ended:
	case err != nil:
		it.ended = true
		l.WithError(err).Debug("failed", logger.Fields(logger.FieldCount, it.pos))
	default:
		it.ended = true
		l.Debug("exhausted", logger.Fields(logger.FieldCount, it.pos))
	}
	return val, ok, err
}

func (it *traceIter[T]) Close() error { return it.source.Close() }

func (it *traceIter[T]) logFor(ctx context.Context) *logger.Logger {
	if _, ok := logger.RunIDFromContext(ctx); ok {
		return it.log.WithContext(ctx)
	}
	return it.log.WithFields(logger.Fields(logger.FieldRunID, it.runID))
}
