package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tlind/coachdesk/internal/apperror"
	"github.com/tlind/coachdesk/internal/auth"
	"github.com/tlind/coachdesk/internal/model"
)

func newAuthService(t *testing.T) (*AuthService, *fakeCoachRepo) {
	t.Helper()

	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars!!")
	require.NoError(t, err)

	coaches := &fakeCoachRepo{coaches: map[string]*model.Coach{}}
	svc := NewAuthService(
		coaches,
		tokens,
		auth.NewPasswordServiceForTest(bcrypt.MinCost),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return svc, coaches
}

func TestRegister_NewCoach(t *testing.T) {
	svc, coaches := newAuthService(t)
	coaches.coaches["x"] = &model.Coach{ID: "x"} // unrelated existing coach

	res, err := svc.Register(context.Background(), "Coach@Example.COM", "password123", "Coach One")
	require.NoError(t, err)

	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "coach@example.com", res.Coach.Email)
	assert.Equal(t, model.SubscriptionTrialing, res.Coach.SubscriptionStatus)
	assert.Equal(t, model.DefaultBranding(), res.Coach.Branding)
	assert.NotEqual(t, "password123", res.Coach.PasswordHash)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		coach    string
	}{
		{"missing email", "", "password123", "Coach"},
		{"malformed email", "not-an-email", "password123", "Coach"},
		{"short password", "a@b.com", "short", "Coach"},
		{"missing name", "a@b.com", "password123", "  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.email, tt.password, tt.coach)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperror.ErrValidation)
		})
	}
}

func TestLogin_RoundTrip(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@b.com", "password123", "Coach")
	require.NoError(t, err)

	res, err := svc.Login(ctx, "a@b.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
}

func TestLogin_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@b.com", "password123", "Coach")
	require.NoError(t, err)

	_, errWrong := svc.Login(ctx, "a@b.com", "wrong-password")
	_, errUnknown := svc.Login(ctx, "nobody@b.com", "password123")

	require.Error(t, errWrong)
	require.Error(t, errUnknown)
	assert.ErrorIs(t, errWrong, apperror.ErrUnauthenticated)
	assert.ErrorIs(t, errUnknown, apperror.ErrUnauthenticated)
	assert.Equal(t, errWrong.Error(), errUnknown.Error())
}

func TestLoginOrRegisterGoogle_CreatesThenReuses(t *testing.T) {
	svc, coaches := newAuthService(t)
	ctx := context.Background()

	gUser := &auth.GoogleUser{ID: "google-123", Email: "G@Example.com", Name: "Coach G"}

	first, err := svc.LoginOrRegisterGoogle(ctx, gUser)
	require.NoError(t, err)
	assert.Equal(t, "g@example.com", first.Coach.Email)
	assert.Equal(t, model.SubscriptionTrialing, first.Coach.SubscriptionStatus)

	second, err := svc.LoginOrRegisterGoogle(ctx, gUser)
	require.NoError(t, err)
	assert.Equal(t, first.Coach.ID, second.Coach.ID)

	count := 0
	for _, c := range coaches.coaches {
		if c.GoogleID == "google-123" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
