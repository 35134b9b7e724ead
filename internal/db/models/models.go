package models

import (
	"time"

	"github.com/uptrace/bun"
)

// User is a registered account. Role drives the access policy; the
// refresh rotation identifier pins the single currently valid refresh
// token for the account (nil means no outstanding refresh token).
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID                int64     `bun:"id,pk,autoincrement"`
	Name              string    `bun:"name,notnull,unique"`
	Email             string    `bun:"email,notnull,unique"`
	Role              string    `bun:"role,notnull,default:'user'"`
	PasswordHash      string    `bun:"password_hash,notnull"`
	RefreshRotationID *string   `bun:"refresh_rotation_id"`
	CreatedAt         time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt         time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// TodoList groups tasks under a single owning user.
type TodoList struct {
	bun.BaseModel `bun:"table:todo_lists,alias:tl"`

	ID          int64  `bun:"id,pk,autoincrement"`
	Title       string `bun:"title,notnull"`
	Description string `bun:"description"`
	OwnerID     int64  `bun:"owner_id,notnull"`
}

// Task belongs to a todo list; its owner is the list's owner.
type Task struct {
	bun.BaseModel `bun:"table:tasks,alias:t"`

	ID          int64     `bun:"id,pk,autoincrement"`
	Title       string    `bun:"title,notnull"`
	Description string    `bun:"description"`
	DueDate     time.Time `bun:"due_date,notnull"`
	Completed   bool      `bun:"completed,notnull,default:false"`
	TodoListID  int64     `bun:"todo_list_id,notnull"`
	StatusID    int64     `bun:"status_id,notnull"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// TaskStatus is a global lookup value (e.g. "In progress"). It has no
// owner; only admins may mutate it.
type TaskStatus struct {
	bun.BaseModel `bun:"table:task_statuses,alias:ts"`

	ID    int64  `bun:"id,pk,autoincrement"`
	Name  string `bun:"name,notnull,unique"`
	Color string `bun:"color"`
}

// DefaultDueDateOffset is applied when a task is created without an
// explicit due date.
const DefaultDueDateOffset = 7 * 24 * time.Hour
