package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/tlind/coachdesk/internal/apperror"
	"github.com/tlind/coachdesk/internal/model"
	"github.com/tlind/coachdesk/internal/repository"
)

var _ repository.ContentRepository = (*DB)(nil)

// --- Meals ---

func (db *DB) CreateMeal(ctx context.Context, meal *model.Meal) error {
	now := time.Now()
	meal.CreatedAt = now
	meal.UpdatedAt = now

	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO meals (coach_id, name, description, calories, protein_g, carbs_g, fat_g, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		meal.CoachID, meal.Name, meal.Description,
		meal.Calories, meal.ProteinG, meal.CarbsG, meal.FatG,
		meal.CreatedAt, meal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating meal: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading meal id: %w", err)
	}
	meal.ID = id

	return nil
}

func (db *DB) GetMealByID(ctx context.Context, id int64) (*model.Meal, error) {
	var m model.Meal
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, coach_id, name, description, calories, protein_g, carbs_g, fat_g, created_at, updated_at
		 FROM meals WHERE id = ?`,
		id,
	).Scan(&m.ID, &m.CoachID, &m.Name, &m.Description,
		&m.Calories, &m.ProteinG, &m.CarbsG, &m.FatG,
		&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("meal", id)
		}
		return nil, fmt.Errorf("sqlite: getting meal %d: %w", id, err)
	}
	return &m, nil
}

func (db *DB) ListMeals(ctx context.Context, coachID string, opts repository.ListOptions) ([]model.Meal, error) {
	limit, offset := clampList(opts)

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, coach_id, name, description, calories, protein_g, carbs_g, fat_g, created_at, updated_at
		 FROM meals WHERE coach_id = ?
		 ORDER BY name COLLATE NOCASE
		 LIMIT ? OFFSET ?`,
		coachID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing meals: %w", err)
	}
	defer rows.Close()

	meals := make([]model.Meal, 0, limit)
	for rows.Next() {
		var m model.Meal
		if err := rows.Scan(&m.ID, &m.CoachID, &m.Name, &m.Description,
			&m.Calories, &m.ProteinG, &m.CarbsG, &m.FatG,
			&m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning meal row: %w", err)
		}
		meals = append(meals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating meals: %w", err)
	}
	return meals, nil
}

func (db *DB) UpdateMeal(ctx context.Context, meal *model.Meal) error {
	meal.UpdatedAt = time.Now()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE meals
		 SET name = ?, description = ?, calories = ?, protein_g = ?, carbs_g = ?, fat_g = ?, updated_at = ?
		 WHERE id = ?`,
		meal.Name, meal.Description,
		meal.Calories, meal.ProteinG, meal.CarbsG, meal.FatG,
		meal.UpdatedAt, meal.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating meal %d: %w", meal.ID, err)
	}
	return checkAffected(result, "meal", meal.ID)
}

func (db *DB) DeleteMeal(ctx context.Context, id int64) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM meals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting meal %d: %w", id, err)
	}
	return checkAffected(result, "meal", id)
}

// ListMealsByIDs returns only the ids owned by coachID; unowned or missing
// ids are silently absent. Ordering is restored by the caller.
func (db *DB) ListMealsByIDs(ctx context.Context, coachID string, ids []int64) ([]model.Meal, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT id, coach_id, name, description, calories, protein_g, carbs_g, fat_g, created_at, updated_at
		 FROM meals WHERE coach_id = ? AND id IN (` + placeholders(len(ids)) + `)`

	rows, err := db.conn.QueryContext(ctx, query, idArgs(coachID, ids)...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing meals by ids: %w", err)
	}
	defer rows.Close()

	meals := make([]model.Meal, 0, len(ids))
	for rows.Next() {
		var m model.Meal
		if err := rows.Scan(&m.ID, &m.CoachID, &m.Name, &m.Description,
			&m.Calories, &m.ProteinG, &m.CarbsG, &m.FatG,
			&m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning meal row: %w", err)
		}
		meals = append(meals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating meals: %w", err)
	}
	return meals, nil
}

// --- Exercises ---

func (db *DB) CreateExercise(ctx context.Context, ex *model.Exercise) error {
	now := time.Now()
	ex.CreatedAt = now
	ex.UpdatedAt = now

	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO exercises (coach_id, name, muscle_group, sets, reps, rest_seconds, instructions, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ex.CoachID, ex.Name, ex.MuscleGroup,
		ex.Sets, ex.Reps, ex.RestSeconds, ex.Instructions,
		ex.CreatedAt, ex.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating exercise: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading exercise id: %w", err)
	}
	ex.ID = id

	return nil
}

func (db *DB) GetExerciseByID(ctx context.Context, id int64) (*model.Exercise, error) {
	var e model.Exercise
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, coach_id, name, muscle_group, sets, reps, rest_seconds, instructions, created_at, updated_at
		 FROM exercises WHERE id = ?`,
		id,
	).Scan(&e.ID, &e.CoachID, &e.Name, &e.MuscleGroup,
		&e.Sets, &e.Reps, &e.RestSeconds, &e.Instructions,
		&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("exercise", id)
		}
		return nil, fmt.Errorf("sqlite: getting exercise %d: %w", id, err)
	}
	return &e, nil
}

func (db *DB) ListExercises(ctx context.Context, coachID string, opts repository.ListOptions) ([]model.Exercise, error) {
	limit, offset := clampList(opts)

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, coach_id, name, muscle_group, sets, reps, rest_seconds, instructions, created_at, updated_at
		 FROM exercises WHERE coach_id = ?
		 ORDER BY name COLLATE NOCASE
		 LIMIT ? OFFSET ?`,
		coachID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing exercises: %w", err)
	}
	defer rows.Close()

	exercises := make([]model.Exercise, 0, limit)
	for rows.Next() {
		var e model.Exercise
		if err := rows.Scan(&e.ID, &e.CoachID, &e.Name, &e.MuscleGroup,
			&e.Sets, &e.Reps, &e.RestSeconds, &e.Instructions,
			&e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning exercise row: %w", err)
		}
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating exercises: %w", err)
	}
	return exercises, nil
}

func (db *DB) UpdateExercise(ctx context.Context, ex *model.Exercise) error {
	ex.UpdatedAt = time.Now()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE exercises
		 SET name = ?, muscle_group = ?, sets = ?, reps = ?, rest_seconds = ?, instructions = ?, updated_at = ?
		 WHERE id = ?`,
		ex.Name, ex.MuscleGroup,
		ex.Sets, ex.Reps, ex.RestSeconds, ex.Instructions,
		ex.UpdatedAt, ex.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating exercise %d: %w", ex.ID, err)
	}
	return checkAffected(result, "exercise", ex.ID)
}

func (db *DB) DeleteExercise(ctx context.Context, id int64) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM exercises WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting exercise %d: %w", id, err)
	}
	return checkAffected(result, "exercise", id)
}

func (db *DB) ListExercisesByIDs(ctx context.Context, coachID string, ids []int64) ([]model.Exercise, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT id, coach_id, name, muscle_group, sets, reps, rest_seconds, instructions, created_at, updated_at
		 FROM exercises WHERE coach_id = ? AND id IN (` + placeholders(len(ids)) + `)`

	rows, err := db.conn.QueryContext(ctx, query, idArgs(coachID, ids)...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing exercises by ids: %w", err)
	}
	defer rows.Close()

	exercises := make([]model.Exercise, 0, len(ids))
	for rows.Next() {
		var e model.Exercise
		if err := rows.Scan(&e.ID, &e.CoachID, &e.Name, &e.MuscleGroup,
			&e.Sets, &e.Reps, &e.RestSeconds, &e.Instructions,
			&e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning exercise row: %w", err)
		}
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating exercises: %w", err)
	}
	return exercises, nil
}

// --- helpers ---

func clampList(opts repository.ListOptions) (limit, offset int) {
	limit = opts.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	offset = opts.Offset
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func checkAffected(result sql.Result, resource string, id int64) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound(resource, id)
	}
	return nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func idArgs(coachID string, ids []int64) []any {
	args := make([]any, 0, len(ids)+1)
	args = append(args, coachID)
	for _, id := range ids {
		args = append(args, id)
	}
	return args
}
