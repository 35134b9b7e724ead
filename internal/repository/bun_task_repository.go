package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/RomanPopovMB/taskmanager/internal/db/models"
)

// BunTaskRepository implements TaskRepository using Bun ORM.
type BunTaskRepository struct {
	db *bun.DB
}

// NewBunTaskRepository creates a new Bun-based task repository.
func NewBunTaskRepository(db *bun.DB) *BunTaskRepository {
	return &BunTaskRepository{db: db}
}

// Create inserts a new task. A zero due date defaults to creation time
// plus seven days.
func (r *BunTaskRepository) Create(ctx context.Context, task *models.Task) error {
	if task.DueDate.IsZero() {
		task.DueDate = time.Now().Add(models.DefaultDueDateOffset)
	}
	_, err := r.db.NewInsert().
		Model(task).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// GetByID retrieves a task by id.
func (r *BunTaskRepository) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	task := new(models.Task)
	err := r.db.NewSelect().
		Model(task).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get task by id: %w", err)
	}
	return task, nil
}

// List retrieves all tasks.
func (r *BunTaskRepository) List(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.NewSelect().
		Model(&tasks).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// ListByTitle retrieves all tasks with the exact title.
func (r *BunTaskRepository) ListByTitle(ctx context.Context, title string) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.NewSelect().
		Model(&tasks).
		Where("title = ?", title).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks by title: %w", err)
	}
	return tasks, nil
}

// ListByDueDate retrieves all tasks due on the given calendar day.
func (r *BunTaskRepository) ListByDueDate(ctx context.Context, dueDate time.Time) ([]models.Task, error) {
	dayStart := time.Date(dueDate.Year(), dueDate.Month(), dueDate.Day(), 0, 0, 0, 0, dueDate.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var tasks []models.Task
	err := r.db.NewSelect().
		Model(&tasks).
		Where("due_date >= ?", dayStart).
		Where("due_date < ?", dayEnd).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks by due date: %w", err)
	}
	return tasks, nil
}

// ListByCompleted retrieves all tasks with the given completion flag.
func (r *BunTaskRepository) ListByCompleted(ctx context.Context, completed bool) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.NewSelect().
		Model(&tasks).
		Where("completed = ?", completed).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks by completed: %w", err)
	}
	return tasks, nil
}

// Update persists changes to an existing task.
func (r *BunTaskRepository) Update(ctx context.Context, task *models.Task) error {
	result, err := r.db.NewUpdate().
		Model(task).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("task %d: %w", task.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a task.
func (r *BunTaskRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.NewDelete().
		Model((*models.Task)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	return nil
}
