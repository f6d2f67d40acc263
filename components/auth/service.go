package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/ettle/strcase"
	"github.com/google/uuid"
)

// DefaultLatency is the simulated round trip for login and signup.
const DefaultLatency = time.Second

var (
	// ErrMissingCredentials is returned when email or password is blank.
	ErrMissingCredentials = errors.New("auth: email and password are required")
	// ErrInvalidEmail is returned when the email cannot be parsed.
	ErrInvalidEmail = errors.New("auth: invalid email address")
)

// Credentials is the login form.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the registration form.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Profile is the signed-in user.
type Profile struct {
	ID       string    `json:"id" yaml:"id"`
	Name     string    `json:"name" yaml:"name"`
	Email    string    `json:"email" yaml:"email"`
	SignedIn time.Time `json:"signed_in" yaml:"signed_in"`
}

// Session receives the profile after a successful login or signup.
type Session interface {
	SignIn(ctx context.Context, profile Profile) error
}

// Telemetry records auth events.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

// Options configures the Service. Nil operations default to the simulated mock
// backend using Latency.
type Options struct {
	Login     Operation[Credentials, Profile]
	Signup    Operation[SignupRequest, Profile]
	Session   Session
	Telemetry Telemetry
	Latency   time.Duration
	Now       func() time.Time
}

// Service drives login and signup against a pluggable backend.
type Service struct {
	login     Operation[Credentials, Profile]
	signup    Operation[SignupRequest, Profile]
	session   Session
	telemetry Telemetry
}

// NewService wires the operations and session sink.
func NewService(opts Options) *Service {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	mock := MockBackend{Now: now}
	if opts.Login == nil {
		opts.Login = NewSimulated(opts.Latency, mock.Login)
	}
	if opts.Signup == nil {
		opts.Signup = NewSimulated(opts.Latency, mock.Signup)
	}
	if opts.Telemetry == nil {
		opts.Telemetry = noopTelemetry{}
	}
	return &Service{
		login:     opts.Login,
		signup:    opts.Signup,
		session:   opts.Session,
		telemetry: opts.Telemetry,
	}
}

// Login validates creds, waits for the backend and signs the profile in.
func (s *Service) Login(ctx context.Context, creds Credentials) (Profile, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" || creds.Password == "" {
		return Profile{}, ErrMissingCredentials
	}
	profile, err := s.login.Submit(ctx, creds).Wait(ctx)
	if err != nil {
		s.telemetry.Record(ctx, "auth.login.error", map[string]any{"error": err.Error()})
		return Profile{}, fmt.Errorf("auth: login: %w", err)
	}
	return s.finish(ctx, "auth.login", profile)
}

// Signup validates req, waits for the backend and signs the new profile in.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (Profile, error) {
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return Profile{}, ErrMissingCredentials
	}
	profile, err := s.signup.Submit(ctx, req).Wait(ctx)
	if err != nil {
		s.telemetry.Record(ctx, "auth.signup.error", map[string]any{"error": err.Error()})
		return Profile{}, fmt.Errorf("auth: signup: %w", err)
	}
	return s.finish(ctx, "auth.signup", profile)
}

func (s *Service) finish(ctx context.Context, event string, profile Profile) (Profile, error) {
	if s.session != nil {
		if err := s.session.SignIn(ctx, profile); err != nil {
			return Profile{}, fmt.Errorf("auth: sign in: %w", err)
		}
	}
	s.telemetry.Record(ctx, event, map[string]any{"user_id": profile.ID})
	return profile, nil
}

// MockBackend accepts any well-formed email with a non-empty password.
type MockBackend struct {
	Now func() time.Time
}

// Login builds a profile for creds.
func (m MockBackend) Login(_ context.Context, creds Credentials) (Profile, error) {
	return m.profile("", creds.Email)
}

// Signup builds a profile for req.
func (m MockBackend) Signup(_ context.Context, req SignupRequest) (Profile, error) {
	return m.profile(req.Name, req.Email)
}

func (m MockBackend) profile(name, email string) (Profile, error) {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return Profile{}, fmt.Errorf("%w: %s", ErrInvalidEmail, email)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = DisplayName(addr.Address)
	}
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	return Profile{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    addr.Address,
		SignedIn: now().UTC(),
	}, nil
}

// DisplayName derives a title-cased name from the local part of an email.
func DisplayName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return strcase.ToCase(local, strcase.TitleCase, ' ')
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}
