package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/RomanPopovMB/taskmanager/internal/db/models"
)

// BunTodoListRepository implements TodoListRepository using Bun ORM.
type BunTodoListRepository struct {
	db *bun.DB
}

// NewBunTodoListRepository creates a new Bun-based todo list repository.
func NewBunTodoListRepository(db *bun.DB) *BunTodoListRepository {
	return &BunTodoListRepository{db: db}
}

// Create inserts a new todo list.
func (r *BunTodoListRepository) Create(ctx context.Context, list *models.TodoList) error {
	_, err := r.db.NewInsert().
		Model(list).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create todo list: %w", err)
	}
	return nil
}

// GetByID retrieves a todo list by id.
func (r *BunTodoListRepository) GetByID(ctx context.Context, id int64) (*models.TodoList, error) {
	list := new(models.TodoList)
	err := r.db.NewSelect().
		Model(list).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("todo list %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get todo list by id: %w", err)
	}
	return list, nil
}

// List retrieves all todo lists.
func (r *BunTodoListRepository) List(ctx context.Context) ([]models.TodoList, error) {
	var lists []models.TodoList
	err := r.db.NewSelect().
		Model(&lists).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list todo lists: %w", err)
	}
	return lists, nil
}

// Update persists changes to an existing todo list.
func (r *BunTodoListRepository) Update(ctx context.Context, list *models.TodoList) error {
	result, err := r.db.NewUpdate().
		Model(list).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update todo list: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("todo list %d: %w", list.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a todo list; its tasks go with it via the schema's
// cascade.
func (r *BunTodoListRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.NewDelete().
		Model((*models.TodoList)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete todo list: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("todo list %d: %w", id, ErrNotFound)
	}
	return nil
}
