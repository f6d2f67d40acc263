// Package settings holds the process-wide viewer preferences (theme, language,
// signed-in profile) as explicit services with a load-on-start and
// save-on-change lifecycle over a storage.Store.
package settings

import (
	"context"
)

// Telemetry records settings events, including swallowed persistence errors.
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
