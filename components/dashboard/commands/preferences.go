package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-travelboard/components/settings"
)

// SavePreferencesInput captures the viewer's theme and language choices.
// Blank fields are left untouched.
type SavePreferencesInput struct {
	Theme    string `json:"theme"`
	Language string `json:"language"`
}

type themeSetter interface {
	Set(ctx context.Context, value string) settings.Theme
}

type languageSetter interface {
	Set(ctx context.Context, tag string) string
}

// SavePreferencesCommand persists theme and language preferences.
type SavePreferencesCommand struct {
	theme     themeSetter
	language  languageSetter
	telemetry Telemetry
}

// NewSavePreferencesCommand creates the command.
func NewSavePreferencesCommand(theme themeSetter, language languageSetter, telemetry Telemetry) *SavePreferencesCommand {
	return &SavePreferencesCommand{theme: theme, language: language, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SavePreferencesInput] = (*SavePreferencesCommand)(nil)

// Execute applies the provided preferences.
func (c *SavePreferencesCommand) Execute(ctx context.Context, msg SavePreferencesInput) error {
	if c.theme == nil || c.language == nil {
		return errors.New("preferences command requires service")
	}
	payload := map[string]any{}
	if msg.Theme != "" {
		payload["theme"] = string(c.theme.Set(ctx, msg.Theme))
	}
	if msg.Language != "" {
		payload["language"] = c.language.Set(ctx, msg.Language)
	}
	c.telemetry.Record(ctx, "dashboard.preferences.save", payload)
	return nil
}
