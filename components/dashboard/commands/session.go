package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-travelboard/components/auth"
)

type loginService interface {
	Login(ctx context.Context, creds auth.Credentials) (auth.Profile, error)
}

// LoginCommand authenticates the viewer and stores the profile in session.
type LoginCommand struct {
	service   loginService
	telemetry Telemetry
}

// NewLoginCommand creates the command.
func NewLoginCommand(service loginService, telemetry Telemetry) *LoginCommand {
	return &LoginCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[auth.Credentials] = (*LoginCommand)(nil)

// Execute runs the login operation.
func (c *LoginCommand) Execute(ctx context.Context, msg auth.Credentials) error {
	if c.service == nil {
		return errors.New("login command requires service")
	}
	profile, err := c.service.Login(ctx, msg)
	if err != nil {
		recordFailure(ctx, c.telemetry, "dashboard.session.login", err, map[string]any{"email": msg.Email})
		return err
	}
	c.telemetry.Record(ctx, "dashboard.session.login", map[string]any{"user_id": profile.ID})
	return nil
}

type signOutService interface {
	SignOut(ctx context.Context) error
}

// SignOutInput clears the stored session.
type SignOutInput struct{}

// SignOutCommand removes the stored profile.
type SignOutCommand struct {
	service   signOutService
	telemetry Telemetry
}

// NewSignOutCommand creates the command.
func NewSignOutCommand(service signOutService, telemetry Telemetry) *SignOutCommand {
	return &SignOutCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SignOutInput] = (*SignOutCommand)(nil)

// Execute signs the viewer out.
func (c *SignOutCommand) Execute(ctx context.Context, _ SignOutInput) error {
	if c.service == nil {
		return errors.New("sign out command requires service")
	}
	if err := c.service.SignOut(ctx); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.session.sign_out", nil)
	return nil
}
