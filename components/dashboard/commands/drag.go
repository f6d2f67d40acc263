package commands

import (
	"context"
	"errors"
	"fmt"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-travelboard/components/dashboard"
)

// DragAction names a pointer event on a section card.
type DragAction string

// Drag actions accepted by DragSectionCommand.
const (
	DragStart DragAction = "start"
	DragEnter DragAction = "enter"
	DragLeave DragAction = "leave"
	DragDrop  DragAction = "drop"
	DragEnd   DragAction = "end"
)

// ErrUnknownDragAction is returned for actions outside the drag vocabulary.
var ErrUnknownDragAction = errors.New("commands: unknown drag action")

// DragSectionInput carries one drag event.
type DragSectionInput struct {
	Action  DragAction `json:"action"`
	Section string     `json:"section"`
}

type dragService interface {
	BeginDrag(source dashboard.Section) error
	DragEnter(target dashboard.Section)
	DragLeave(target dashboard.Section)
	Drop(ctx context.Context, target dashboard.Section) (dashboard.SectionOrder, bool)
	EndDrag()
}

// DragSectionCommand feeds drag events into the dashboard drag machine.
type DragSectionCommand struct {
	service   dragService
	telemetry Telemetry
}

// NewDragSectionCommand creates the command.
func NewDragSectionCommand(service dragService, telemetry Telemetry) *DragSectionCommand {
	return &DragSectionCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DragSectionInput] = (*DragSectionCommand)(nil)

// Execute dispatches the event.
func (c *DragSectionCommand) Execute(ctx context.Context, msg DragSectionInput) error {
	if c.service == nil {
		return errors.New("drag command requires service")
	}
	section := dashboard.Section(msg.Section)
	payload := map[string]any{"action": string(msg.Action), "section": msg.Section}
	switch msg.Action {
	case DragStart:
		if err := c.service.BeginDrag(section); err != nil {
			recordFailure(ctx, c.telemetry, "dashboard.command.drag", err, payload)
			return err
		}
	case DragEnter:
		c.service.DragEnter(section)
	case DragLeave:
		c.service.DragLeave(section)
	case DragDrop:
		_, changed := c.service.Drop(ctx, section)
		payload["changed"] = changed
	case DragEnd:
		c.service.EndDrag()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDragAction, msg.Action)
	}
	c.telemetry.Record(ctx, "dashboard.command.drag", payload)
	return nil
}
