package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/RomanPopovMB/taskmanager/internal/db/bunx"
	"github.com/RomanPopovMB/taskmanager/internal/db/models"
)

// setupTestDB opens an in-memory SQLite database with the full schema.
func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	db, err := bunx.NewDB(":memory:", 1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = bunx.Close(db) })

	ctx := context.Background()
	_, err = db.NewCreateTable().Model((*models.User)(nil)).Exec(ctx)
	require.NoError(t, err)
	_, err = db.NewCreateTable().
		Model((*models.TodoList)(nil)).
		ForeignKey(`("owner_id") REFERENCES "users" ("id") ON DELETE CASCADE`).
		Exec(ctx)
	require.NoError(t, err)
	_, err = db.NewCreateTable().Model((*models.TaskStatus)(nil)).Exec(ctx)
	require.NoError(t, err)
	_, err = db.NewCreateTable().
		Model((*models.Task)(nil)).
		ForeignKey(`("todo_list_id") REFERENCES "todo_lists" ("id") ON DELETE CASCADE`).
		ForeignKey(`("status_id") REFERENCES "task_statuses" ("id") ON DELETE CASCADE`).
		Exec(ctx)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, repo UserRepository, name string) *models.User {
	t.Helper()

	user := &models.User{
		Name:         name,
		Email:        name + "@example.com",
		Role:         "user",
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func createTestList(t *testing.T, repo TodoListRepository, ownerID int64, title string) *models.TodoList {
	t.Helper()

	list := &models.TodoList{Title: title, OwnerID: ownerID}
	require.NoError(t, repo.Create(context.Background(), list))
	return list
}

func createTestStatus(t *testing.T, repo TaskStatusRepository, name string) *models.TaskStatus {
	t.Helper()

	status := &models.TaskStatus{Name: name, Color: "#00ff00"}
	require.NoError(t, repo.Create(context.Background(), status))
	return status
}
