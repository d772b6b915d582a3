package logging

import (
	"context"
	"log/slog"
)

// Fanout delivers each record to every sink that accepts its level. It pairs
// the stdout JSON handler with the Postgres batch handler so a record is
// written once and lands everywhere it should.
type Fanout struct {
	sinks []slog.Handler
}

func NewFanout(sinks ...slog.Handler) *Fanout {
	return &Fanout{sinks: sinks}
}

func (f *Fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, sink := range f.sinks {
		if sink.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f *Fanout) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error
	for _, sink := range f.sinks {
		if !sink.Enabled(ctx, record.Level) {
			continue
		}
		if err := sink.Handle(ctx, record); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (f *Fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Fanout{sinks: f.apply(func(sink slog.Handler) slog.Handler {
		return sink.WithAttrs(attrs)
	})}
}

func (f *Fanout) WithGroup(name string) slog.Handler {
	return &Fanout{sinks: f.apply(func(sink slog.Handler) slog.Handler {
		return sink.WithGroup(name)
	})}
}

func (f *Fanout) apply(transform func(slog.Handler) slog.Handler) []slog.Handler {
	sinks := make([]slog.Handler, len(f.sinks))
	for i, sink := range f.sinks {
		sinks[i] = transform(sink)
	}
	return sinks
}
