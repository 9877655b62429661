package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelMapping(t *testing.T) {
	require.Equal(t, slog.LevelDebug, LevelVerbose.SlogLevel())
	require.Equal(t, slog.LevelInfo, LevelInfo.SlogLevel())
	require.Equal(t, slog.LevelWarn, LevelWarning.SlogLevel())
	require.Equal(t, slog.LevelError, LevelError.SlogLevel())
}

func TestEmitFanOut(t *testing.T) {
	var buf bytes.Buffer
	rec := &Recorder{}
	obs := MultiObserver{rec, NoopObserver{}, nil, NewSlogObserver(slog.New(slog.NewTextHandler(&buf, nil)))}

	Emit(context.Background(), obs, "agent", EventQueryStart, LevelInfo, map[string]any{"query_id": "q1"})
	Emit(context.Background(), nil, "agent", EventQueryError, LevelError, nil)

	require.Equal(t, []EventType{EventQueryStart}, rec.Types())
	require.Equal(t, "agent", rec.Events()[0].Source)
	require.False(t, rec.Events()[0].Timestamp.IsZero())
	require.Contains(t, buf.String(), "query.start")
	require.Contains(t, buf.String(), "query_id=q1")
}
