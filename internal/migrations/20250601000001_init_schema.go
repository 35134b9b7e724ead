package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/RomanPopovMB/taskmanager/internal/db/models"
)

func init() {
	Migrations.MustRegister(up_20250601000001, down_20250601000001)
}

// up_20250601000001 creates the full schema: users, todo_lists, tasks,
// task_statuses. Deleting a user cascades to their todo lists, and
// deleting a todo list cascades to its tasks.
func up_20250601000001(ctx context.Context, db *bun.DB) error {
	fmt.Print(" [up] creating users table...")
	_, err := db.NewCreateTable().
		Model((*models.User)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	fmt.Println(" OK")

	fmt.Print(" [up] creating todo_lists table...")
	_, err = db.NewCreateTable().
		Model((*models.TodoList)(nil)).
		IfNotExists().
		ForeignKey(`("owner_id") REFERENCES "users" ("id") ON DELETE CASCADE`).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create todo_lists table: %w", err)
	}
	fmt.Println(" OK")

	fmt.Print(" [up] creating task_statuses table...")
	_, err = db.NewCreateTable().
		Model((*models.TaskStatus)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create task_statuses table: %w", err)
	}
	fmt.Println(" OK")

	fmt.Print(" [up] creating tasks table...")
	_, err = db.NewCreateTable().
		Model((*models.Task)(nil)).
		IfNotExists().
		ForeignKey(`("todo_list_id") REFERENCES "todo_lists" ("id") ON DELETE CASCADE`).
		ForeignKey(`("status_id") REFERENCES "task_statuses" ("id") ON DELETE CASCADE`).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create tasks table: %w", err)
	}

	// Ownership resolution walks task -> todo_list; index the FK.
	_, err = db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_tasks_todo_list_id ON tasks(todo_list_id)`)
	if err != nil {
		return fmt.Errorf("create index on tasks.todo_list_id: %w", err)
	}
	fmt.Println(" OK")

	return nil
}

func down_20250601000001(ctx context.Context, db *bun.DB) error {
	for _, model := range []any{
		(*models.Task)(nil),
		(*models.TaskStatus)(nil),
		(*models.TodoList)(nil),
		(*models.User)(nil),
	} {
		if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	return nil
}
