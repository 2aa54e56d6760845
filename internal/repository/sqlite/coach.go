package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/tlind/coachdesk/internal/apperror"
	"github.com/tlind/coachdesk/internal/model"
	"github.com/tlind/coachdesk/internal/repository"
)

var _ repository.CoachRepository = (*DB)(nil)

const coachColumns = `id, email, password_hash, google_id, name, subscription_status,
	accent_color, logo_url, logo_position, cover_heading, cover_body, footer_text,
	show_logo_on_plan, created_at, updated_at`

// CreateCoach inserts a new coach account. The ID is generated here (xid:
// short, URL-safe, time-sortable). A duplicate email maps to a conflict.
func (db *DB) CreateCoach(ctx context.Context, coach *model.Coach) error {
	coach.ID = xid.New().String()

	now := time.Now()
	coach.CreatedAt = now
	coach.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO coaches (id, email, password_hash, google_id, name, subscription_status,
			accent_color, logo_url, logo_position, cover_heading, cover_body, footer_text,
			show_logo_on_plan, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		coach.ID,
		coach.Email,
		coach.PasswordHash,
		coach.GoogleID,
		coach.Name,
		coach.SubscriptionStatus,
		coach.Branding.AccentColor,
		coach.Branding.LogoURL,
		coach.Branding.LogoPosition,
		coach.Branding.CoverHeading,
		coach.Branding.CoverBody,
		coach.Branding.FooterText,
		coach.Branding.ShowLogoOnPlan,
		coach.CreatedAt,
		coach.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperror.Conflict("coach", coach.Email)
		}
		return fmt.Errorf("sqlite: creating coach: %w", err)
	}

	return nil
}

func (db *DB) GetCoachByID(ctx context.Context, id string) (*model.Coach, error) {
	return db.getCoach(ctx, "id = ?", id)
}

func (db *DB) GetCoachByEmail(ctx context.Context, email string) (*model.Coach, error) {
	return db.getCoach(ctx, "email = ?", email)
}

func (db *DB) GetCoachByGoogleID(ctx context.Context, googleID string) (*model.Coach, error) {
	return db.getCoach(ctx, "google_id = ? AND google_id != ''", googleID)
}

func (db *DB) getCoach(ctx context.Context, where string, arg any) (*model.Coach, error) {
	var c model.Coach

	err := db.conn.QueryRowContext(ctx,
		`SELECT `+coachColumns+` FROM coaches WHERE `+where, arg,
	).Scan(
		&c.ID,
		&c.Email,
		&c.PasswordHash,
		&c.GoogleID,
		&c.Name,
		&c.SubscriptionStatus,
		&c.Branding.AccentColor,
		&c.Branding.LogoURL,
		&c.Branding.LogoPosition,
		&c.Branding.CoverHeading,
		&c.Branding.CoverBody,
		&c.Branding.FooterText,
		&c.Branding.ShowLogoOnPlan,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("coach", arg)
		}
		return nil, fmt.Errorf("sqlite: getting coach: %w", err)
	}

	return &c, nil
}

// UpdateBranding replaces the coach's saved style parameters.
func (db *DB) UpdateBranding(ctx context.Context, coachID string, b model.Branding) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE coaches
		 SET accent_color = ?, logo_url = ?, logo_position = ?, cover_heading = ?,
		     cover_body = ?, footer_text = ?, show_logo_on_plan = ?, updated_at = ?
		 WHERE id = ?`,
		b.AccentColor,
		b.LogoURL,
		b.LogoPosition,
		b.CoverHeading,
		b.CoverBody,
		b.FooterText,
		b.ShowLogoOnPlan,
		time.Now(),
		coachID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating branding for coach %s: %w", coachID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("coach", coachID)
	}

	return nil
}

func (db *DB) UpdateSubscription(ctx context.Context, coachID, status string) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE coaches SET subscription_status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now(), coachID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating subscription for coach %s: %w", coachID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("coach", coachID)
	}

	return nil
}
