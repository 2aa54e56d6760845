package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tlind/coachdesk/internal/apperror"
	"github.com/tlind/coachdesk/internal/model"
	"github.com/tlind/coachdesk/internal/repository"
)

var _ repository.ClientRepository = (*DB)(nil)

const clientColumns = `id, coach_id, name, email, notes,
	meal_plan_url, meal_plan_generated_at,
	training_plan_url, training_plan_generated_at,
	created_at, updated_at`

func (db *DB) CreateClient(ctx context.Context, client *model.Client) error {
	now := time.Now()
	client.CreatedAt = now
	client.UpdatedAt = now

	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO clients (coach_id, name, email, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		client.CoachID,
		client.Name,
		client.Email,
		client.Notes,
		client.CreatedAt,
		client.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating client: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading client id: %w", err)
	}
	client.ID = id

	return nil
}

// GetClientByID returns the client, excluding soft-deleted rows — a deleted
// client is indistinguishable from one that never existed.
func (db *DB) GetClientByID(ctx context.Context, id int64) (*model.Client, error) {
	var c model.Client
	var mealAt, trainingAt sql.NullTime

	err := db.conn.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = ? AND deleted_at IS NULL`,
		id,
	).Scan(
		&c.ID,
		&c.CoachID,
		&c.Name,
		&c.Email,
		&c.Notes,
		&c.MealPlanURL,
		&mealAt,
		&c.TrainingPlanURL,
		&trainingAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("client", id)
		}
		return nil, fmt.Errorf("sqlite: getting client %d: %w", id, err)
	}

	if mealAt.Valid {
		c.MealPlanGeneratedAt = &mealAt.Time
	}
	if trainingAt.Valid {
		c.TrainingPlanGeneratedAt = &trainingAt.Time
	}

	return &c, nil
}

func (db *DB) ListClients(ctx context.Context, coachID string, opts repository.ListOptions) ([]model.Client, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+clientColumns+` FROM clients
		 WHERE coach_id = ? AND deleted_at IS NULL
		 ORDER BY name COLLATE NOCASE
		 LIMIT ? OFFSET ?`,
		coachID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing clients: %w", err)
	}
	defer rows.Close()

	clients := make([]model.Client, 0, limit)
	for rows.Next() {
		var c model.Client
		var mealAt, trainingAt sql.NullTime
		if err := rows.Scan(
			&c.ID, &c.CoachID, &c.Name, &c.Email, &c.Notes,
			&c.MealPlanURL, &mealAt,
			&c.TrainingPlanURL, &trainingAt,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning client row: %w", err)
		}
		if mealAt.Valid {
			c.MealPlanGeneratedAt = &mealAt.Time
		}
		if trainingAt.Valid {
			c.TrainingPlanGeneratedAt = &trainingAt.Time
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating clients: %w", err)
	}

	return clients, nil
}

// UpdateClient writes the profile fields only. Plan pointers are written
// exclusively through SetPlanPointer so that unrelated profile edits can
// never clobber pipeline state.
func (db *DB) UpdateClient(ctx context.Context, client *model.Client) error {
	client.UpdatedAt = time.Now()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE clients
		 SET name = ?, email = ?, notes = ?, updated_at = ?
		 WHERE id = ? AND deleted_at IS NULL`,
		client.Name,
		client.Email,
		client.Notes,
		client.UpdatedAt,
		client.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating client %d: %w", client.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("client", client.ID)
	}

	return nil
}

// SoftDeleteClient marks the row deleted. The client's stored artifacts are
// intentionally left in the artifact store.
func (db *DB) SoftDeleteClient(ctx context.Context, id int64) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE clients SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting client %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("client", id)
	}

	return nil
}

// SetPlanPointer persists the pointer URL and generation timestamp for one
// kind and advances updated_at, all in a single statement. If anything
// upstream failed, this is never reached and the previous pointer survives.
func (db *DB) SetPlanPointer(ctx context.Context, clientID int64, kind model.PlanKind, url string, generatedAt time.Time) error {
	urlColumn, atColumn := "training_plan_url", "training_plan_generated_at"
	if kind == model.PlanMeal {
		urlColumn, atColumn = "meal_plan_url", "meal_plan_generated_at"
	}

	result, err := db.conn.ExecContext(ctx,
		`UPDATE clients
		 SET `+urlColumn+` = ?, `+atColumn+` = ?, updated_at = ?
		 WHERE id = ? AND deleted_at IS NULL`,
		url, generatedAt, generatedAt, clientID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: setting %s pointer for client %d: %w", kind, clientID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("client", clientID)
	}

	return nil
}
