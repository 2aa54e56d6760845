package model

import "time"

// Client is the owning record of the plan pipeline. Each client belongs to
// exactly one coach and carries at most one artifact pointer per plan kind.
//
// The pointer URLs are stable across regenerations: the storage key is
// derived from (kind, client id), so a regeneration rewrites the bytes
// behind the same URL instead of issuing a new one. GeneratedAt timestamps
// advance on every (re)generation and drive the freshness classification;
// the classification itself is derived at read time, never stored.
//
// Clients are soft-deleted: DeletedAt is set and every query filters it.
// Stored artifacts are intentionally left behind on delete.
type Client struct {
	ID                    int64      `json:"id"                    db:"id"`
	CoachID               string     `json:"coachId"               db:"coach_id"`
	Name                  string     `json:"name"                  db:"name"`
	Email                 string     `json:"email"                 db:"email"` // may be empty; required only for Send
	Notes                 string     `json:"notes"                 db:"notes"`
	MealPlanURL           string     `json:"mealPlanUrl"           db:"meal_plan_url"`
	MealPlanGeneratedAt   *time.Time `json:"mealPlanGeneratedAt"   db:"meal_plan_generated_at"`
	TrainingPlanURL       string     `json:"trainingPlanUrl"       db:"training_plan_url"`
	TrainingPlanGeneratedAt *time.Time `json:"trainingPlanGeneratedAt" db:"training_plan_generated_at"`
	CreatedAt             time.Time  `json:"createdAt"             db:"created_at"`
	UpdatedAt             time.Time  `json:"updatedAt"             db:"updated_at"`
	DeletedAt             *time.Time `json:"-"                     db:"deleted_at"`
}

// PlanPointer returns the artifact pointer for the given kind: the stored
// URL (empty if never generated) and the timestamp of the last generation.
func (c *Client) PlanPointer(kind PlanKind) (url string, generatedAt *time.Time) {
	if kind == PlanMeal {
		return c.MealPlanURL, c.MealPlanGeneratedAt
	}
	return c.TrainingPlanURL, c.TrainingPlanGeneratedAt
}
