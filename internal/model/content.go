package model

import (
	"fmt"
	"time"
)

// Meal is a coach-owned meal that can be selected into a meal plan.
type Meal struct {
	ID          int64     `json:"id"          db:"id"`
	CoachID     string    `json:"coachId"     db:"coach_id"`
	Name        string    `json:"name"        db:"name"`
	Description string    `json:"description" db:"description"`
	Calories    int       `json:"calories"    db:"calories"`
	ProteinG    int       `json:"proteinG"    db:"protein_g"`
	CarbsG      int       `json:"carbsG"      db:"carbs_g"`
	FatG        int       `json:"fatG"        db:"fat_g"`
	CreatedAt   time.Time `json:"createdAt"   db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt"   db:"updated_at"`
}

// Exercise is a coach-owned exercise that can be selected into a
// training plan.
type Exercise struct {
	ID           int64     `json:"id"           db:"id"`
	CoachID      string    `json:"coachId"      db:"coach_id"`
	Name         string    `json:"name"         db:"name"`
	MuscleGroup  string    `json:"muscleGroup"  db:"muscle_group"`
	Sets         int       `json:"sets"         db:"sets"`
	Reps         int       `json:"reps"         db:"reps"`
	RestSeconds  int       `json:"restSeconds"  db:"rest_seconds"`
	Instructions string    `json:"instructions" db:"instructions"`
	CreatedAt    time.Time `json:"createdAt"    db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt"    db:"updated_at"`
}

// PlanItem is the renderer-facing view of a selected content item:
// a title plus detail lines, already ordered the way the coach selected them.
type PlanItem struct {
	Title   string
	Details []string
}

// PlanItemFromMeal flattens a meal into renderable lines.
func PlanItemFromMeal(m Meal) PlanItem {
	item := PlanItem{Title: m.Name}
	if m.Description != "" {
		item.Details = append(item.Details, m.Description)
	}
	item.Details = append(item.Details,
		fmt.Sprintf("%d kcal  ·  %dg protein  ·  %dg carbs  ·  %dg fat",
			m.Calories, m.ProteinG, m.CarbsG, m.FatG))
	return item
}

// PlanItemFromExercise flattens an exercise into renderable lines.
func PlanItemFromExercise(e Exercise) PlanItem {
	item := PlanItem{Title: e.Name}
	if e.MuscleGroup != "" {
		item.Details = append(item.Details, "Target: "+e.MuscleGroup)
	}
	item.Details = append(item.Details,
		fmt.Sprintf("%d sets x %d reps, %ds rest", e.Sets, e.Reps, e.RestSeconds))
	if e.Instructions != "" {
		item.Details = append(item.Details, e.Instructions)
	}
	return item
}
