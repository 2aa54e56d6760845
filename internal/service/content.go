package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tlind/coachdesk/internal/apperror"
	"github.com/tlind/coachdesk/internal/model"
	"github.com/tlind/coachdesk/internal/repository"
)

// ContentService manages the coach-owned meal and exercise libraries that
// plan selections draw from.
type ContentService struct {
	content repository.ContentRepository
	logger  *slog.Logger
}

func NewContentService(content repository.ContentRepository, logger *slog.Logger) *ContentService {
	return &ContentService{content: content, logger: logger}
}

// MealInput is the writable subset of a meal record.
type MealInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Calories    int    `json:"calories"`
	ProteinG    int    `json:"proteinG"`
	CarbsG      int    `json:"carbsG"`
	FatG        int    `json:"fatG"`
}

func (in *MealInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return apperror.ValidationFailed("name", "meal name is required")
	}
	if in.Calories < 0 || in.ProteinG < 0 || in.CarbsG < 0 || in.FatG < 0 {
		return apperror.ValidationFailed("macros", "macro values must not be negative")
	}
	return nil
}

func (s *ContentService) CreateMeal(ctx context.Context, coachID string, in MealInput) (*model.Meal, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	meal := &model.Meal{
		CoachID:     coachID,
		Name:        in.Name,
		Description: in.Description,
		Calories:    in.Calories,
		ProteinG:    in.ProteinG,
		CarbsG:      in.CarbsG,
		FatG:        in.FatG,
	}
	if err := s.content.CreateMeal(ctx, meal); err != nil {
		return nil, err
	}
	return meal, nil
}

func (s *ContentService) GetMeal(ctx context.Context, coachID string, id int64) (*model.Meal, error) {
	meal, err := s.content.GetMealByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if meal.CoachID != coachID {
		return nil, apperror.NotFound("meal", id)
	}
	return meal, nil
}

func (s *ContentService) ListMeals(ctx context.Context, coachID string, opts repository.ListOptions) ([]model.Meal, error) {
	return s.content.ListMeals(ctx, coachID, opts)
}

func (s *ContentService) UpdateMeal(ctx context.Context, coachID string, id int64, in MealInput) (*model.Meal, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	meal, err := s.GetMeal(ctx, coachID, id)
	if err != nil {
		return nil, err
	}

	meal.Name = in.Name
	meal.Description = in.Description
	meal.Calories = in.Calories
	meal.ProteinG = in.ProteinG
	meal.CarbsG = in.CarbsG
	meal.FatG = in.FatG
	if err := s.content.UpdateMeal(ctx, meal); err != nil {
		return nil, err
	}
	return meal, nil
}

// DeleteMeal removes a meal from the library. Plans already generated from
// it are unaffected; the selection was copied into the artifact at render
// time.
func (s *ContentService) DeleteMeal(ctx context.Context, coachID string, id int64) error {
	if _, err := s.GetMeal(ctx, coachID, id); err != nil {
		return err
	}
	return s.content.DeleteMeal(ctx, id)
}

// ExerciseInput is the writable subset of an exercise record.
type ExerciseInput struct {
	Name         string `json:"name"`
	MuscleGroup  string `json:"muscleGroup"`
	Sets         int    `json:"sets"`
	Reps         int    `json:"reps"`
	RestSeconds  int    `json:"restSeconds"`
	Instructions string `json:"instructions"`
}

func (in *ExerciseInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return apperror.ValidationFailed("name", "exercise name is required")
	}
	if in.Sets <= 0 || in.Reps <= 0 {
		return apperror.ValidationFailed("sets", "sets and reps must be positive")
	}
	if in.RestSeconds < 0 {
		return apperror.ValidationFailed("restSeconds", "rest must not be negative")
	}
	return nil
}

func (s *ContentService) CreateExercise(ctx context.Context, coachID string, in ExerciseInput) (*model.Exercise, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	ex := &model.Exercise{
		CoachID:      coachID,
		Name:         in.Name,
		MuscleGroup:  in.MuscleGroup,
		Sets:         in.Sets,
		Reps:         in.Reps,
		RestSeconds:  in.RestSeconds,
		Instructions: in.Instructions,
	}
	if err := s.content.CreateExercise(ctx, ex); err != nil {
		return nil, err
	}
	return ex, nil
}

func (s *ContentService) GetExercise(ctx context.Context, coachID string, id int64) (*model.Exercise, error) {
	ex, err := s.content.GetExerciseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ex.CoachID != coachID {
		return nil, apperror.NotFound("exercise", id)
	}
	return ex, nil
}

func (s *ContentService) ListExercises(ctx context.Context, coachID string, opts repository.ListOptions) ([]model.Exercise, error) {
	return s.content.ListExercises(ctx, coachID, opts)
}

func (s *ContentService) UpdateExercise(ctx context.Context, coachID string, id int64, in ExerciseInput) (*model.Exercise, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	ex, err := s.GetExercise(ctx, coachID, id)
	if err != nil {
		return nil, err
	}

	ex.Name = in.Name
	ex.MuscleGroup = in.MuscleGroup
	ex.Sets = in.Sets
	ex.Reps = in.Reps
	ex.RestSeconds = in.RestSeconds
	ex.Instructions = in.Instructions
	if err := s.content.UpdateExercise(ctx, ex); err != nil {
		return nil, err
	}
	return ex, nil
}

func (s *ContentService) DeleteExercise(ctx context.Context, coachID string, id int64) error {
	if _, err := s.GetExercise(ctx, coachID, id); err != nil {
		return err
	}
	return s.content.DeleteExercise(ctx, id)
}
