package commands

import (
	"context"

	dashboard "github.com/goliatone/go-travelboard/components/dashboard"
)

// Telemetry is the recorder commands report to. It shares the dashboard
// service contract so one recorder can be handed to both.
type Telemetry = dashboard.Telemetry

var discard = dashboard.TelemetryFunc(func(context.Context, string, map[string]any) {})

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return discard
	}
	return t
}

// recordFailure reports a rejected command under event+".failed".
func recordFailure(ctx context.Context, t Telemetry, event string, err error, payload map[string]any) {
	if payload == nil {
		payload = map[string]any{}
	}
	payload["error"] = err.Error()
	t.Record(ctx, event+".failed", payload)
}
