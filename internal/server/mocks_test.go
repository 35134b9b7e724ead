package server

import (
	"context"
	"fmt"
	"time"

	"github.com/RomanPopovMB/taskmanager/internal/db/models"
	"github.com/RomanPopovMB/taskmanager/internal/repository"
)

// Map-backed repositories for handler tests.

type memUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int64]*models.User), nextID: 1}
}

func (m *memUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, u := range m.users {
		if u.Name == user.Name || u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	user.ID = m.nextID
	m.nextID++
	user.CreatedAt = time.Now()
	m.users[user.ID] = user
	return nil
}

func (m *memUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, repository.ErrNotFound)
	}
	copied := *u
	return &copied, nil
}

func (m *memUserRepo) GetByName(ctx context.Context, name string) (*models.User, error) {
	for _, u := range m.users {
		if u.Name == name {
			copied := *u
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", name, repository.ErrNotFound)
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", email, repository.ErrNotFound)
}

func (m *memUserRepo) List(ctx context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *memUserRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return fmt.Errorf("user %d: %w", user.ID, repository.ErrNotFound)
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *memUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.users[id]; !ok {
		return fmt.Errorf("user %d: %w", id, repository.ErrNotFound)
	}
	delete(m.users, id)
	return nil
}

func (m *memUserRepo) SetRefreshID(ctx context.Context, userID int64, rotationID string) error {
	u, ok := m.users[userID]
	if !ok {
		return fmt.Errorf("user %d: %w", userID, repository.ErrNotFound)
	}
	u.RefreshRotationID = &rotationID
	return nil
}

func (m *memUserRepo) RotateRefreshID(ctx context.Context, userID int64, old, new *string) error {
	u, ok := m.users[userID]
	if !ok {
		return repository.ErrRotationConflict
	}
	switch {
	case old == nil && u.RefreshRotationID != nil:
		return repository.ErrRotationConflict
	case old != nil && (u.RefreshRotationID == nil || *u.RefreshRotationID != *old):
		return repository.ErrRotationConflict
	}
	u.RefreshRotationID = new
	return nil
}

func (m *memUserRepo) ClearRefreshID(ctx context.Context, userID int64) error {
	u, ok := m.users[userID]
	if !ok {
		return fmt.Errorf("user %d: %w", userID, repository.ErrNotFound)
	}
	u.RefreshRotationID = nil
	return nil
}

type memTodoListRepo struct {
	lists  map[int64]*models.TodoList
	nextID int64
}

func newMemTodoListRepo() *memTodoListRepo {
	return &memTodoListRepo{lists: make(map[int64]*models.TodoList), nextID: 1}
}

func (m *memTodoListRepo) Create(ctx context.Context, list *models.TodoList) error {
	list.ID = m.nextID
	m.nextID++
	m.lists[list.ID] = list
	return nil
}

func (m *memTodoListRepo) GetByID(ctx context.Context, id int64) (*models.TodoList, error) {
	l, ok := m.lists[id]
	if !ok {
		return nil, fmt.Errorf("todo list %d: %w", id, repository.ErrNotFound)
	}
	copied := *l
	return &copied, nil
}

func (m *memTodoListRepo) List(ctx context.Context) ([]models.TodoList, error) {
	out := make([]models.TodoList, 0, len(m.lists))
	for _, l := range m.lists {
		out = append(out, *l)
	}
	return out, nil
}

func (m *memTodoListRepo) Update(ctx context.Context, list *models.TodoList) error {
	if _, ok := m.lists[list.ID]; !ok {
		return fmt.Errorf("todo list %d: %w", list.ID, repository.ErrNotFound)
	}
	copied := *list
	m.lists[list.ID] = &copied
	return nil
}

func (m *memTodoListRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.lists[id]; !ok {
		return fmt.Errorf("todo list %d: %w", id, repository.ErrNotFound)
	}
	delete(m.lists, id)
	return nil
}

type memTaskRepo struct {
	tasks  map[int64]*models.Task
	nextID int64
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: make(map[int64]*models.Task), nextID: 1}
}

func (m *memTaskRepo) Create(ctx context.Context, task *models.Task) error {
	task.ID = m.nextID
	m.nextID++
	if task.DueDate.IsZero() {
		task.DueDate = time.Now().Add(models.DefaultDueDateOffset)
	}
	task.CreatedAt = time.Now()
	m.tasks[task.ID] = task
	return nil
}

func (m *memTaskRepo) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	t, ok := m.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task %d: %w", id, repository.ErrNotFound)
	}
	copied := *t
	return &copied, nil
}

func (m *memTaskRepo) List(ctx context.Context) ([]models.Task, error) {
	out := make([]models.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		out = append(out, *t)
	}
	return out, nil
}

func (m *memTaskRepo) ListByTitle(ctx context.Context, title string) ([]models.Task, error) {
	var out []models.Task
	for _, t := range m.tasks {
		if t.Title == title {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *memTaskRepo) ListByDueDate(ctx context.Context, dueDate time.Time) ([]models.Task, error) {
	var out []models.Task
	for _, t := range m.tasks {
		if t.DueDate.Format("2006-01-02") == dueDate.Format("2006-01-02") {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *memTaskRepo) ListByCompleted(ctx context.Context, completed bool) ([]models.Task, error) {
	var out []models.Task
	for _, t := range m.tasks {
		if t.Completed == completed {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *memTaskRepo) Update(ctx context.Context, task *models.Task) error {
	if _, ok := m.tasks[task.ID]; !ok {
		return fmt.Errorf("task %d: %w", task.ID, repository.ErrNotFound)
	}
	copied := *task
	m.tasks[task.ID] = &copied
	return nil
}

func (m *memTaskRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.tasks[id]; !ok {
		return fmt.Errorf("task %d: %w", id, repository.ErrNotFound)
	}
	delete(m.tasks, id)
	return nil
}

type memTaskStatusRepo struct {
	statuses map[int64]*models.TaskStatus
	nextID   int64
}

func newMemTaskStatusRepo() *memTaskStatusRepo {
	return &memTaskStatusRepo{statuses: make(map[int64]*models.TaskStatus), nextID: 1}
}

func (m *memTaskStatusRepo) Create(ctx context.Context, status *models.TaskStatus) error {
	for _, s := range m.statuses {
		if s.Name == status.Name {
			return repository.ErrDuplicate
		}
	}
	status.ID = m.nextID
	m.nextID++
	m.statuses[status.ID] = status
	return nil
}

func (m *memTaskStatusRepo) GetByID(ctx context.Context, id int64) (*models.TaskStatus, error) {
	s, ok := m.statuses[id]
	if !ok {
		return nil, fmt.Errorf("task status %d: %w", id, repository.ErrNotFound)
	}
	copied := *s
	return &copied, nil
}

func (m *memTaskStatusRepo) List(ctx context.Context) ([]models.TaskStatus, error) {
	out := make([]models.TaskStatus, 0, len(m.statuses))
	for _, s := range m.statuses {
		out = append(out, *s)
	}
	return out, nil
}

func (m *memTaskStatusRepo) Update(ctx context.Context, status *models.TaskStatus) error {
	if _, ok := m.statuses[status.ID]; !ok {
		return fmt.Errorf("task status %d: %w", status.ID, repository.ErrNotFound)
	}
	copied := *status
	m.statuses[status.ID] = &copied
	return nil
}

func (m *memTaskStatusRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.statuses[id]; !ok {
		return fmt.Errorf("task status %d: %w", id, repository.ErrNotFound)
	}
	delete(m.statuses, id)
	return nil
}
