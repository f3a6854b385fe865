package finboard

import (
	"context"
	"log/slog"
	"sort"
)

// Telemetry records dashboard events for observability.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

// SlogTelemetry forwards events to a structured logger.
type SlogTelemetry struct {
	logger *slog.Logger
}

// NewSlogTelemetry wraps logger; nil falls back to slog.Default.
func NewSlogTelemetry(logger *slog.Logger) *SlogTelemetry {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogTelemetry{logger: logger}
}

// Record emits the event at info level with one attribute per payload key,
// keys sorted so log lines stay comparable.
func (t *SlogTelemetry) Record(ctx context.Context, event string, payload map[string]any) {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	args := make([]any, 0, len(payload)*2)
	for _, key := range keys {
		args = append(args, key, payload[key])
	}
	t.logger.InfoContext(ctx, event, args...)
}
