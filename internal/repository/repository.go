// Package repository declares the persistence interfaces the service layer
// programs against. The sqlite subpackage provides the implementation;
// tests substitute in-memory mocks.
package repository

import (
	"context"
	"time"

	"github.com/tlind/coachdesk/internal/model"
)

type ListOptions struct {
	Limit  int
	Offset int
}

// CoachRepository persists coach accounts and their branding settings.
type CoachRepository interface {
	CreateCoach(ctx context.Context, coach *model.Coach) error
	GetCoachByID(ctx context.Context, id string) (*model.Coach, error)
	GetCoachByEmail(ctx context.Context, email string) (*model.Coach, error)
	GetCoachByGoogleID(ctx context.Context, googleID string) (*model.Coach, error)
	UpdateBranding(ctx context.Context, coachID string, branding model.Branding) error
	UpdateSubscription(ctx context.Context, coachID, status string) error
}

// ClientRepository persists the owning records of the plan pipeline.
// All read methods exclude soft-deleted rows; ownership is re-checked by
// the service at every pipeline entry point.
type ClientRepository interface {
	CreateClient(ctx context.Context, client *model.Client) error
	GetClientByID(ctx context.Context, id int64) (*model.Client, error)
	ListClients(ctx context.Context, coachID string, opts ListOptions) ([]model.Client, error)
	UpdateClient(ctx context.Context, client *model.Client) error
	SoftDeleteClient(ctx context.Context, id int64) error

	// SetPlanPointer writes the pointer URL and generation timestamp for
	// one (client, kind) pair and advances the record's updated_at, as a
	// single statement. This is the only way pipeline state is persisted.
	SetPlanPointer(ctx context.Context, clientID int64, kind model.PlanKind, url string, generatedAt time.Time) error
}

// ContentRepository persists the coach-owned meals and exercises that
// selections draw from.
type ContentRepository interface {
	CreateMeal(ctx context.Context, meal *model.Meal) error
	GetMealByID(ctx context.Context, id int64) (*model.Meal, error)
	ListMeals(ctx context.Context, coachID string, opts ListOptions) ([]model.Meal, error)
	UpdateMeal(ctx context.Context, meal *model.Meal) error
	DeleteMeal(ctx context.Context, id int64) error

	// ListMealsByIDs returns the subset of ids that exist AND belong to
	// coachID, in no particular order. Unowned or missing ids are simply
	// absent from the result.
	ListMealsByIDs(ctx context.Context, coachID string, ids []int64) ([]model.Meal, error)

	CreateExercise(ctx context.Context, ex *model.Exercise) error
	GetExerciseByID(ctx context.Context, id int64) (*model.Exercise, error)
	ListExercises(ctx context.Context, coachID string, opts ListOptions) ([]model.Exercise, error)
	UpdateExercise(ctx context.Context, ex *model.Exercise) error
	DeleteExercise(ctx context.Context, id int64) error
	ListExercisesByIDs(ctx context.Context, coachID string, ids []int64) ([]model.Exercise, error)
}
