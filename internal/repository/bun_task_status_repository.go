package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/RomanPopovMB/taskmanager/internal/db/models"
)

// BunTaskStatusRepository implements TaskStatusRepository using Bun ORM.
type BunTaskStatusRepository struct {
	db *bun.DB
}

// NewBunTaskStatusRepository creates a new Bun-based task status
// repository.
func NewBunTaskStatusRepository(db *bun.DB) *BunTaskStatusRepository {
	return &BunTaskStatusRepository{db: db}
}

// Create inserts a new task status. Names are unique.
func (r *BunTaskStatusRepository) Create(ctx context.Context, status *models.TaskStatus) error {
	_, err := r.db.NewInsert().
		Model(status).
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create task status: %w", ErrDuplicate)
		}
		return fmt.Errorf("create task status: %w", err)
	}
	return nil
}

// GetByID retrieves a task status by id.
func (r *BunTaskStatusRepository) GetByID(ctx context.Context, id int64) (*models.TaskStatus, error) {
	status := new(models.TaskStatus)
	err := r.db.NewSelect().
		Model(status).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task status %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get task status by id: %w", err)
	}
	return status, nil
}

// List retrieves all task statuses.
func (r *BunTaskStatusRepository) List(ctx context.Context) ([]models.TaskStatus, error) {
	var statuses []models.TaskStatus
	err := r.db.NewSelect().
		Model(&statuses).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list task statuses: %w", err)
	}
	return statuses, nil
}

// Update persists changes to an existing task status.
func (r *BunTaskStatusRepository) Update(ctx context.Context, status *models.TaskStatus) error {
	result, err := r.db.NewUpdate().
		Model(status).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update task status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("task status %d: %w", status.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a task status.
func (r *BunTaskStatusRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.NewDelete().
		Model((*models.TaskStatus)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete task status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("task status %d: %w", id, ErrNotFound)
	}
	return nil
}
