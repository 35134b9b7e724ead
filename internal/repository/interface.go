package repository

import (
	"context"
	"time"

	"github.com/RomanPopovMB/taskmanager/internal/db/models"
)

// UserRepository is the identity store accessor. Besides plain CRUD it
// owns the refresh-rotation identifier used to pin the single valid
// refresh token per user.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByName(ctx context.Context, name string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error

	// SetRefreshID unconditionally stores a new rotation identifier,
	// invalidating any previously issued refresh token. Used at login.
	SetRefreshID(ctx context.Context, userID int64, rotationID string) error

	// RotateRefreshID swaps the stored rotation identifier from old to
	// new as a single compare-and-set. old == nil matches only a user
	// with no rotation identifier. Returns ErrRotationConflict when the
	// stored value no longer matches old.
	RotateRefreshID(ctx context.Context, userID int64, old, new *string) error

	// ClearRefreshID unconditionally clears the stored rotation
	// identifier, revoking any outstanding refresh token.
	ClearRefreshID(ctx context.Context, userID int64) error
}

// TodoListRepository stores todo lists.
type TodoListRepository interface {
	Create(ctx context.Context, list *models.TodoList) error
	GetByID(ctx context.Context, id int64) (*models.TodoList, error)
	List(ctx context.Context) ([]models.TodoList, error)
	Update(ctx context.Context, list *models.TodoList) error
	Delete(ctx context.Context, id int64) error
}

// TaskRepository stores tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	List(ctx context.Context) ([]models.Task, error)
	ListByTitle(ctx context.Context, title string) ([]models.Task, error)
	ListByDueDate(ctx context.Context, dueDate time.Time) ([]models.Task, error)
	ListByCompleted(ctx context.Context, completed bool) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id int64) error
}

// TaskStatusRepository stores the global task status lookup values.
type TaskStatusRepository interface {
	Create(ctx context.Context, status *models.TaskStatus) error
	GetByID(ctx context.Context, id int64) (*models.TaskStatus, error)
	List(ctx context.Context) ([]models.TaskStatus, error)
	Update(ctx context.Context, status *models.TaskStatus) error
	Delete(ctx context.Context, id int64) error
}
