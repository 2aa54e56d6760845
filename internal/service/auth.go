// Package service holds the business rules. Services sit between the HTTP
// handlers and the repositories: handlers translate HTTP, services decide,
// repositories persist. Every service is constructed with its dependencies
// so tests can substitute fakes.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tlind/coachdesk/internal/apperror"
	"github.com/tlind/coachdesk/internal/auth"
	"github.com/tlind/coachdesk/internal/model"
	"github.com/tlind/coachdesk/internal/repository"
)

// AuthService handles coach registration and sign-in, for both
// email+password and Google accounts.
type AuthService struct {
	coaches   repository.CoachRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewAuthService(
	coaches repository.CoachRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		coaches:   coaches,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// AuthResult bundles the coach record with the issued session token so the
// handler can set the cookie and write the response in one step.
type AuthResult struct {
	Coach *model.Coach
	Token string
}

// Register creates a new coach account with email+password credentials.
// New accounts start on a trial subscription with the default branding.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	name = strings.TrimSpace(name)

	if email == "" || !strings.Contains(email, "@") {
		return nil, apperror.ValidationFailed("email", "a valid email address is required")
	}
	if len(password) < 8 {
		return nil, apperror.ValidationFailed("password", "password must be at least 8 characters")
	}
	if name == "" {
		return nil, apperror.ValidationFailed("name", "name is required")
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, apperror.ValidationFailed("password", err.Error())
	}

	coach := &model.Coach{
		Email:              email,
		PasswordHash:       hash,
		Name:               name,
		SubscriptionStatus: model.SubscriptionTrialing,
		Branding:           model.DefaultBranding(),
	}

	if err := s.coaches.CreateCoach(ctx, coach); err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(coach.ID)
	if err != nil {
		return nil, fmt.Errorf("service: issuing session token: %w", err)
	}

	s.logger.Info("coach registered", slog.String("coach_id", coach.ID))
	return &AuthResult{Coach: coach, Token: token}, nil
}

// Login verifies email+password credentials and issues a session token.
// Unknown email and wrong password return the same error so the response
// does not leak which addresses have accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	coach, err := s.coaches.GetCoachByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Unauthenticated("invalid email or password")
	}
	if coach.PasswordHash == "" {
		// Google-only account; there is no password to check.
		return nil, apperror.Unauthenticated("invalid email or password")
	}

	if err := s.passwords.Verify(coach.PasswordHash, password); err != nil {
		return nil, apperror.Unauthenticated("invalid email or password")
	}

	token, err := s.tokens.Generate(coach.ID)
	if err != nil {
		return nil, fmt.Errorf("service: issuing session token: %w", err)
	}

	return &AuthResult{Coach: coach, Token: token}, nil
}

// LoginOrRegisterGoogle completes the Google OAuth callback. A coach who has
// signed in with this Google account before is logged in; otherwise a new
// trial account is created from the Google profile.
func (s *AuthService) LoginOrRegisterGoogle(ctx context.Context, gUser *auth.GoogleUser) (*AuthResult, error) {
	if gUser == nil {
		return nil, fmt.Errorf("service: Google user must not be nil")
	}

	coach, err := s.coaches.GetCoachByGoogleID(ctx, gUser.ID)
	if err != nil {
		coach = &model.Coach{
			Email:              strings.ToLower(gUser.Email),
			GoogleID:           gUser.ID,
			Name:               gUser.Name,
			SubscriptionStatus: model.SubscriptionTrialing,
			Branding:           model.DefaultBranding(),
		}
		if err := s.coaches.CreateCoach(ctx, coach); err != nil {
			return nil, err
		}
		s.logger.Info("coach registered via google", slog.String("coach_id", coach.ID))
	}

	token, err := s.tokens.Generate(coach.ID)
	if err != nil {
		return nil, fmt.Errorf("service: issuing session token: %w", err)
	}

	return &AuthResult{Coach: coach, Token: token}, nil
}

// Me returns the coach record for an authenticated session.
func (s *AuthService) Me(ctx context.Context, coachID string) (*model.Coach, error) {
	return s.coaches.GetCoachByID(ctx, coachID)
}
