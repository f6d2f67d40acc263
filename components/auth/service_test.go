package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSession struct {
	profiles []Profile
}

func (r *recordingSession) SignIn(_ context.Context, p Profile) error {
	r.profiles = append(r.profiles, p)
	return nil
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
}

func TestLoginRejectsMissingCredentials(t *testing.T) {
	session := &recordingSession{}
	svc := NewService(Options{Session: session})

	for _, creds := range []Credentials{{}, {Email: "a@b.co"}, {Password: "secret"}, {Email: "   ", Password: "x"}} {
		_, err := svc.Login(context.Background(), creds)
		assert.ErrorIs(t, err, ErrMissingCredentials)
	}
	_, err := svc.Signup(context.Background(), SignupRequest{Name: "Ana"})
	assert.ErrorIs(t, err, ErrMissingCredentials)
	assert.Empty(t, session.profiles)
}

func TestLoginSignsProfileIn(t *testing.T) {
	session := &recordingSession{}
	svc := NewService(Options{Session: session, Now: fixedNow})

	profile, err := svc.Login(context.Background(), Credentials{Email: "jane.doe@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", profile.Name)
	assert.Equal(t, "jane.doe@example.com", profile.Email)
	assert.Equal(t, fixedNow(), profile.SignedIn)
	_, parseErr := uuid.Parse(profile.ID)
	assert.NoError(t, parseErr)
	require.Len(t, session.profiles, 1)
	assert.Equal(t, profile, session.profiles[0])
}

func TestSignupKeepsProvidedName(t *testing.T) {
	svc := NewService(Options{})
	profile, err := svc.Signup(context.Background(), SignupRequest{Name: "Marta Ruiz", Email: "m@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "Marta Ruiz", profile.Name)
}

func TestLoginInvalidEmail(t *testing.T) {
	svc := NewService(Options{})
	_, err := svc.Login(context.Background(), Credentials{Email: "not-an-email", Password: "pw"})
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestLoginUsesSubstitutedBackend(t *testing.T) {
	backendErr := errors.New("backend down")
	svc := NewService(Options{
		Login: NewSimulated(0, func(context.Context, Credentials) (Profile, error) {
			return Profile{}, backendErr
		}),
	})
	_, err := svc.Login(context.Background(), Credentials{Email: "a@b.co", Password: "pw"})
	assert.ErrorIs(t, err, backendErr)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Jane Doe", DisplayName("jane.doe@example.com"))
	assert.Equal(t, "Mary Ann", DisplayName("mary_ann@example.com"))
	assert.Equal(t, "Bob", DisplayName("bob@example.com"))
}
