package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tlind/coachdesk/internal/apperror"
	"github.com/tlind/coachdesk/internal/model"
	"github.com/tlind/coachdesk/internal/render"
	"github.com/tlind/coachdesk/internal/repository"
)

// SettingsService manages the coach's branding and subscription settings.
type SettingsService struct {
	coaches repository.CoachRepository
	logger  *slog.Logger
}

func NewSettingsService(coaches repository.CoachRepository, logger *slog.Logger) *SettingsService {
	return &SettingsService{coaches: coaches, logger: logger}
}

// GetBranding returns the coach's saved branding.
func (s *SettingsService) GetBranding(ctx context.Context, coachID string) (model.Branding, error) {
	coach, err := s.coaches.GetCoachByID(ctx, coachID)
	if err != nil {
		return model.Branding{}, err
	}
	return coach.Branding, nil
}

// UpdateBranding validates and persists a full branding record. Partial
// updates are not supported: the client always sends the complete record,
// which keeps the stored state a closed set of known fields.
func (s *SettingsService) UpdateBranding(ctx context.Context, coachID string, b model.Branding) (model.Branding, error) {
	b.AccentColor = strings.TrimPrefix(strings.TrimSpace(b.AccentColor), "#")

	style := render.StyleParams{AccentColor: b.AccentColor, LogoPosition: b.LogoPosition}
	if err := style.Validate(); err != nil {
		return model.Branding{}, apperror.ValidationFailed("branding", err.Error())
	}

	if err := s.coaches.UpdateBranding(ctx, coachID, b); err != nil {
		return model.Branding{}, err
	}

	s.logger.Info("branding updated", slog.String("coach_id", coachID))
	return b, nil
}

// UpdateSubscription sets the coach's subscription status. In production
// this is driven by billing webhooks; the endpoint exists so operators and
// tests can move accounts between states.
func (s *SettingsService) UpdateSubscription(ctx context.Context, coachID, status string) error {
	switch status {
	case model.SubscriptionTrialing, model.SubscriptionActive,
		model.SubscriptionPastDue, model.SubscriptionCanceled:
	default:
		return apperror.ValidationFailed("status", "unknown subscription status "+status)
	}

	if err := s.coaches.UpdateSubscription(ctx, coachID, status); err != nil {
		return err
	}

	s.logger.Info("subscription updated",
		slog.String("coach_id", coachID),
		slog.String("status", status),
	)
	return nil
}
