package iam

import (
	"context"
	"errors"
	"fmt"

	"github.com/RomanPopovMB/taskmanager/internal/auth"
	"github.com/RomanPopovMB/taskmanager/internal/repository"
)

// Resource identifies a resource type for ownership resolution.
type Resource string

const (
	ResourceUser     Resource = "user"
	ResourceTodoList Resource = "todo_list"
	ResourceTask     Resource = "task"
)

// OwnershipResolver walks the ownership chain from a resource to its
// owning user id. Task statuses are global and have no owner; their
// mutation is admin-only at the role gate and never reaches the
// resolver.
type OwnershipResolver struct {
	users repository.UserRepository
	lists repository.TodoListRepository
	tasks repository.TaskRepository
}

// NewOwnershipResolver creates an OwnershipResolver over the given
// stores.
func NewOwnershipResolver(users repository.UserRepository, lists repository.TodoListRepository, tasks repository.TaskRepository) *OwnershipResolver {
	return &OwnershipResolver{users: users, lists: lists, tasks: tasks}
}

// ResolveOwner returns the user id owning the resource. A user owns
// itself; a todo list is owned by its owner_id; a task is owned by its
// parent todo list's owner. Any missing link in the chain fails with
// auth.ErrNotFound naming only the requested resource.
func (r *OwnershipResolver) ResolveOwner(ctx context.Context, resource Resource, id int64) (int64, error) {
	switch resource {
	case ResourceUser:
		user, err := r.users.GetByID(ctx, id)
		if err != nil {
			return 0, mapLookupErr(err, "user", id)
		}
		return user.ID, nil

	case ResourceTodoList:
		list, err := r.lists.GetByID(ctx, id)
		if err != nil {
			return 0, mapLookupErr(err, "todo list", id)
		}
		return list.OwnerID, nil

	case ResourceTask:
		task, err := r.tasks.GetByID(ctx, id)
		if err != nil {
			return 0, mapLookupErr(err, "task", id)
		}
		list, err := r.lists.GetByID(ctx, task.TodoListID)
		if err != nil {
			// Broken chain: the error names the task, not the missing
			// parent list.
			return 0, mapLookupErr(err, "task", id)
		}
		return list.OwnerID, nil

	default:
		return 0, fmt.Errorf("resource %q has no owner", resource)
	}
}

// IsAuthorized reports whether the identity may access the resource:
// admins always may; everyone else only when they own it. Any resolver
// failure counts as not authorized (fail closed), never as an error.
func (r *OwnershipResolver) IsAuthorized(ctx context.Context, identity auth.Identity, resource Resource, id int64) bool {
	if identity.IsAdmin() {
		return true
	}
	ownerID, err := r.ResolveOwner(ctx, resource, id)
	if err != nil {
		return false
	}
	return ownerID == identity.UserID
}

func mapLookupErr(err error, resource string, id int64) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s %d: %w", resource, id, auth.ErrNotFound)
	}
	return err
}
