package logging

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type levelSink struct {
	min      slog.Level
	messages []string
}

func (s *levelSink) Enabled(_ context.Context, level slog.Level) bool { return level >= s.min }

func (s *levelSink) Handle(_ context.Context, record slog.Record) error {
	s.messages = append(s.messages, record.Message)
	return nil
}

func (s *levelSink) WithAttrs([]slog.Attr) slog.Handler { return s }
func (s *levelSink) WithGroup(string) slog.Handler      { return s }

func TestFanoutRoutesByLevel(t *testing.T) {
	stdout := &levelSink{min: slog.LevelInfo}
	dbSink := &levelSink{min: slog.LevelError}
	f := NewFanout(stdout, dbSink)

	ctx := context.Background()
	info := slog.NewRecord(time.Now(), slog.LevelInfo, "listening", 0)
	errRec := slog.NewRecord(time.Now(), slog.LevelError, "query failed", 0)

	assert.NoError(t, f.Handle(ctx, info))
	assert.NoError(t, f.Handle(ctx, errRec))

	assert.Equal(t, []string{"listening", "query failed"}, stdout.messages)
	assert.Equal(t, []string{"query failed"}, dbSink.messages)
}

func TestFanoutEnabledWhenAnySinkAccepts(t *testing.T) {
	f := NewFanout(&levelSink{min: slog.LevelError})
	assert.False(t, f.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, f.Enabled(context.Background(), slog.LevelError))
}
