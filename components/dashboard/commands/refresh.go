package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-travelboard/components/dashboard"
)

// RefreshSectionsInput asks transports to re-render the section order.
type RefreshSectionsInput struct{}

type refreshNotifier interface {
	Refresh(ctx context.Context) dashboard.SectionOrder
}

// RefreshSectionsCommand triggers refresh hooks without changing the order.
type RefreshSectionsCommand struct {
	service   refreshNotifier
	telemetry Telemetry
}

// NewRefreshSectionsCommand creates the command.
func NewRefreshSectionsCommand(service refreshNotifier, telemetry Telemetry) *RefreshSectionsCommand {
	return &RefreshSectionsCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RefreshSectionsInput] = (*RefreshSectionsCommand)(nil)

// Execute notifies the dashboard service's refresh hooks.
func (c *RefreshSectionsCommand) Execute(ctx context.Context, _ RefreshSectionsInput) error {
	if c.service == nil {
		return errors.New("refresh command requires service")
	}
	order := c.service.Refresh(ctx)
	c.telemetry.Record(ctx, "dashboard.command.refresh", map[string]any{"order": order.Strings()})
	return nil
}
