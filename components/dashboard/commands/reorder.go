package commands

import (
	"context"
	"errors"
	"fmt"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-travelboard/components/dashboard"
)

// ReorderSectionsInput moves Source onto the slot held by Target.
type ReorderSectionsInput struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type reorderService interface {
	Move(ctx context.Context, source, target dashboard.Section) (dashboard.SectionOrder, bool)
}

// ReorderSectionsCommand applies a single reorder without a drag gesture.
type ReorderSectionsCommand struct {
	service   reorderService
	telemetry Telemetry
}

// NewReorderSectionsCommand creates the command.
func NewReorderSectionsCommand(service reorderService, telemetry Telemetry) *ReorderSectionsCommand {
	return &ReorderSectionsCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ReorderSectionsInput] = (*ReorderSectionsCommand)(nil)

// Execute validates both sections and applies the move. Self moves succeed
// without changing anything.
func (c *ReorderSectionsCommand) Execute(ctx context.Context, msg ReorderSectionsInput) error {
	if c.service == nil {
		return errors.New("reorder command requires service")
	}
	source, target := dashboard.Section(msg.Source), dashboard.Section(msg.Target)
	if !source.Valid() {
		return fmt.Errorf("%w: %q", dashboard.ErrUnknownSection, msg.Source)
	}
	if !target.Valid() {
		return fmt.Errorf("%w: %q", dashboard.ErrUnknownSection, msg.Target)
	}
	order, changed := c.service.Move(ctx, source, target)
	c.telemetry.Record(ctx, "dashboard.command.reorder", map[string]any{
		"source":  msg.Source,
		"target":  msg.Target,
		"changed": changed,
		"order":   order.Strings(),
	})
	return nil
}
