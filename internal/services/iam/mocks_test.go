package iam

import (
	"context"
	"fmt"
	"time"

	"github.com/RomanPopovMB/taskmanager/internal/db/models"
	"github.com/RomanPopovMB/taskmanager/internal/repository"
)

// mockUserRepository is a map-backed UserRepository for tests.
type mockUserRepository struct {
	users  map[int64]*models.User
	nextID int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[int64]*models.User), nextID: 1}
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	for _, u := range m.users {
		if u.Name == user.Name || u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, fmt.Errorf("user %d: %w", id, repository.ErrNotFound)
}

func (m *mockUserRepository) GetByName(ctx context.Context, name string) (*models.User, error) {
	for _, u := range m.users {
		if u.Name == name {
			copied := *u
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", name, repository.ErrNotFound)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", email, repository.ErrNotFound)
}

func (m *mockUserRepository) List(ctx context.Context) ([]models.User, error) {
	result := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, nil
}

func (m *mockUserRepository) Update(ctx context.Context, user *models.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return fmt.Errorf("user %d: %w", user.ID, repository.ErrNotFound)
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.users[id]; !ok {
		return fmt.Errorf("user %d: %w", id, repository.ErrNotFound)
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserRepository) SetRefreshID(ctx context.Context, userID int64, rotationID string) error {
	u, ok := m.users[userID]
	if !ok {
		return fmt.Errorf("user %d: %w", userID, repository.ErrNotFound)
	}
	u.RefreshRotationID = &rotationID
	return nil
}

func (m *mockUserRepository) RotateRefreshID(ctx context.Context, userID int64, old, new *string) error {
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

func (m *mockUserRepository) ClearRefreshID(ctx context.Context, userID int64) error {
	u, ok := m.users[userID]
	if !ok {
		return fmt.Errorf("user %d: %w", userID, repository.ErrNotFound)
	}
	u.RefreshRotationID = nil
	return nil
}

// mockTodoListRepository is a map-backed TodoListRepository for tests.
type mockTodoListRepository struct {
	lists  map[int64]*models.TodoList
	nextID int64
}

func newMockTodoListRepository() *mockTodoListRepository {
	return &mockTodoListRepository{lists: make(map[int64]*models.TodoList), nextID: 1}
}

func (m *mockTodoListRepository) Create(ctx context.Context, list *models.TodoList) error {
	list.ID = m.nextID
	m.nextID++
	m.lists[list.ID] = list
	return nil
}

func (m *mockTodoListRepository) GetByID(ctx context.Context, id int64) (*models.TodoList, error) {
	if l, ok := m.lists[id]; ok {
		copied := *l
		return &copied, nil
	}
	return nil, fmt.Errorf("todo list %d: %w", id, repository.ErrNotFound)
}

func (m *mockTodoListRepository) List(ctx context.Context) ([]models.TodoList, error) {
	result := make([]models.TodoList, 0, len(m.lists))
	for _, l := range m.lists {
		result = append(result, *l)
	}
	return result, nil
}

func (m *mockTodoListRepository) Update(ctx context.Context, list *models.TodoList) error {
	if _, ok := m.lists[list.ID]; !ok {
		return fmt.Errorf("todo list %d: %w", list.ID, repository.ErrNotFound)
	}
	copied := *list
	m.lists[list.ID] = &copied
	return nil
}

func (m *mockTodoListRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.lists[id]; !ok {
		return fmt.Errorf("todo list %d: %w", id, repository.ErrNotFound)
	}
	delete(m.lists, id)
	return nil
}

// mockTaskRepository is a map-backed TaskRepository for tests.
type mockTaskRepository struct {
	tasks  map[int64]*models.Task
	nextID int64
}

func newMockTaskRepository() *mockTaskRepository {
	return &mockTaskRepository{tasks: make(map[int64]*models.Task), nextID: 1}
}

func (m *mockTaskRepository) Create(ctx context.Context, task *models.Task) error {
	task.ID = m.nextID
	m.nextID++
	m.tasks[task.ID] = task
	return nil
}

func (m *mockTaskRepository) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	if t, ok := m.tasks[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, fmt.Errorf("task %d: %w", id, repository.ErrNotFound)
}

func (m *mockTaskRepository) List(ctx context.Context) ([]models.Task, error) {
	result := make([]models.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		result = append(result, *t)
	}
	return result, nil
}

func (m *mockTaskRepository) ListByTitle(ctx context.Context, title string) ([]models.Task, error) {
	var result []models.Task
	for _, t := range m.tasks {
		if t.Title == title {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *mockTaskRepository) ListByDueDate(ctx context.Context, dueDate time.Time) ([]models.Task, error) {
	var result []models.Task
	for _, t := range m.tasks {
		if t.DueDate.Format("2006-01-02") == dueDate.Format("2006-01-02") {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *mockTaskRepository) ListByCompleted(ctx context.Context, completed bool) ([]models.Task, error) {
	var result []models.Task
	for _, t := range m.tasks {
		if t.Completed == completed {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *mockTaskRepository) Update(ctx context.Context, task *models.Task) error {
	if _, ok := m.tasks[task.ID]; !ok {
		return fmt.Errorf("task %d: %w", task.ID, repository.ErrNotFound)
	}
	copied := *task
	m.tasks[task.ID] = &copied
	return nil
}

func (m *mockTaskRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.tasks[id]; !ok {
		return fmt.Errorf("task %d: %w", id, repository.ErrNotFound)
	}
	delete(m.tasks, id)
	return nil
}
