package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/tlind/coachdesk/internal/apperror"
	"github.com/tlind/coachdesk/internal/model"
)

func TestCreateCoach_DuplicateEmailConflicts(t *testing.T) {
	db := newTestDB(t)
	createTestCoach(t, db, "dup@x.com")

	err := db.CreateCoach(context.Background(), &model.Coach{
		Email:              "dup@x.com",
		SubscriptionStatus: model.SubscriptionTrialing,
		Branding:           model.DefaultBranding(),
	})
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("error = %v, want ErrConflict", err)
	}
}

func TestGetCoachByEmail(t *testing.T) {
	db := newTestDB(t)
	coach := createTestCoach(t, db, "find@x.com")

	found, err := db.GetCoachByEmail(context.Background(), "find@x.com")
	if err != nil {
		t.Fatalf("GetCoachByEmail() error = %v", err)
	}
	if found.ID != coach.ID {
		t.Errorf("ID = %q, want %q", found.ID, coach.ID)
	}

	if _, err := db.GetCoachByEmail(context.Background(), "nobody@x.com"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestGetCoachByGoogleID_IgnoresEmptyGoogleID(t *testing.T) {
	db := newTestDB(t)
	// Password-only coach: google_id is ''. A lookup for '' must not match it.
	createTestCoach(t, db, "pw@x.com")

	if _, err := db.GetCoachByGoogleID(context.Background(), ""); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound for empty google id", err)
	}
}

func TestUpdateBranding_Persists(t *testing.T) {
	db := newTestDB(t)
	coach := createTestCoach(t, db, "brand@x.com")
	ctx := context.Background()

	branding := model.Branding{
		AccentColor:    "FF8800",
		LogoURL:        "https://cdn/logo.png",
		LogoPosition:   model.LogoRight,
		CoverHeading:   "Team Strong",
		CoverBody:      "Four weeks to a better you.",
		FooterText:     "See you at the gym.",
		ShowLogoOnPlan: false,
	}
	if err := db.UpdateBranding(ctx, coach.ID, branding); err != nil {
		t.Fatalf("UpdateBranding() error = %v", err)
	}

	found, err := db.GetCoachByID(ctx, coach.ID)
	if err != nil {
		t.Fatalf("GetCoachByID() error = %v", err)
	}
	if found.Branding != branding {
		t.Errorf("Branding = %+v, want %+v", found.Branding, branding)
	}
}

func TestUpdateSubscription(t *testing.T) {
	db := newTestDB(t)
	coach := createTestCoach(t, db, "sub@x.com")
	ctx := context.Background()

	if err := db.UpdateSubscription(ctx, coach.ID, model.SubscriptionCanceled); err != nil {
		t.Fatalf("UpdateSubscription() error = %v", err)
	}

	found, _ := db.GetCoachByID(ctx, coach.ID)
	if found.SubscriptionStatus != model.SubscriptionCanceled {
		t.Errorf("SubscriptionStatus = %q, want canceled", found.SubscriptionStatus)
	}
	if found.Entitled() {
		t.Error("canceled coach must not be entitled")
	}

	if err := db.UpdateSubscription(ctx, "missing", model.SubscriptionActive); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
