package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBunTodoListRepository_CRUD(t *testing.T) {
	db := setupTestDB(t)
	users := NewBunUserRepository(db)
	repo := NewBunTodoListRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, users, "alex")

	list := createTestList(t, repo, owner.ID, "groceries")
	assert.NotZero(t, list.ID)

	got, err := repo.GetByID(ctx, list.ID)
	require.NoError(t, err)
	assert.Equal(t, "groceries", got.Title)
	assert.Equal(t, owner.ID, got.OwnerID)

	_, err = repo.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	list.Title = "errands"
	list.Description = "weekend errands"
	require.NoError(t, repo.Update(ctx, list))

	got, err = repo.GetByID(ctx, list.ID)
	require.NoError(t, err)
	assert.Equal(t, "errands", got.Title)
	assert.Equal(t, "weekend errands", got.Description)

	lists, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, lists, 1)

	require.NoError(t, repo.Delete(ctx, list.ID))
	_, err = repo.GetByID(ctx, list.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, list.ID), ErrNotFound)
}

func TestBunTodoListRepository_CascadeOnOwnerDelete(t *testing.T) {
	db := setupTestDB(t)
	users := NewBunUserRepository(db)
	repo := NewBunTodoListRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, users, "alex")
	list := createTestList(t, repo, owner.ID, "groceries")

	require.NoError(t, users.Delete(ctx, owner.ID))

	_, err := repo.GetByID(ctx, list.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
