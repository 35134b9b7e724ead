package migrations

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/RomanPopovMB/taskmanager/internal/auth"
	"github.com/RomanPopovMB/taskmanager/internal/db/models"
)

func init() {
	Migrations.MustRegister(up_20250601000002, down_20250601000002)
}

// up_20250601000002 seeds development fixtures: one account per role
// plus two extra users, two todo lists, two statuses, and a handful of
// tasks. Inserts are idempotent on the unique columns.
func up_20250601000002(ctx context.Context, db *bun.DB) error {
	fmt.Print(" [up] seeding users...")
	users := []models.User{
		{Name: "User", Email: "alex.morgan@example.com", Role: string(auth.RoleUser)},
		{Name: "Admin", Email: "sarah.jenkins@example.com", Role: string(auth.RoleAdmin)},
		{Name: "Viewer", Email: "michael.smith@example.com", Role: string(auth.RoleViewer)},
		{Name: "Emily", Email: "emily.davis@example.com", Role: string(auth.RoleUser)},
		{Name: "John", Email: "john.taylor@example.com", Role: string(auth.RoleUser)},
	}
	for i := range users {
		digest, err := auth.HashPassword("123", 0)
		if err != nil {
			return fmt.Errorf("hash seed password: %w", err)
		}
		users[i].PasswordHash = digest
		_, err = db.NewInsert().
			Model(&users[i]).
			On("CONFLICT (name) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", users[i].Name, err)
		}
	}
	fmt.Println(" OK")

	fmt.Print(" [up] seeding todo lists...")
	lists := []models.TodoList{
		{Title: "Grocery list", Description: "Weekly", OwnerID: users[0].ID},
		{Title: "Work tasks", Description: "", OwnerID: users[2].ID},
	}
	for i := range lists {
		if lists[i].OwnerID == 0 {
			// Conflict skipped the insert above; look the owner up.
			continue
		}
		if _, err := db.NewInsert().Model(&lists[i]).Exec(ctx); err != nil {
			return fmt.Errorf("seed todo list %s: %w", lists[i].Title, err)
		}
	}
	fmt.Println(" OK")

	fmt.Print(" [up] seeding task statuses...")
	statuses := []models.TaskStatus{
		{Name: "In progress", Color: "Yellow"},
		{Name: "Done", Color: "Green"},
	}
	for i := range statuses {
		_, err := db.NewInsert().
			Model(&statuses[i]).
			On("CONFLICT (name) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("seed task status %s: %w", statuses[i].Name, err)
		}
	}
	fmt.Println(" OK")

	if lists[0].ID == 0 || lists[1].ID == 0 || statuses[0].ID == 0 {
		// Re-running against an already seeded database; leave tasks
		// alone.
		return nil
	}

	fmt.Print(" [up] seeding tasks...")
	week := time.Now().Add(7 * 24 * time.Hour)
	tasks := []models.Task{
		{Title: "Eggs", DueDate: week, TodoListID: lists[0].ID, StatusID: statuses[0].ID},
		{Title: "Milk", DueDate: week, TodoListID: lists[0].ID, StatusID: statuses[0].ID},
		{Title: "Bread", DueDate: week, TodoListID: lists[0].ID, StatusID: statuses[0].ID},
		{Title: "Tomatoes", DueDate: week, TodoListID: lists[0].ID, StatusID: statuses[0].ID},
		{Title: "Email John", Description: "About stuff.", DueDate: week, TodoListID: lists[1].ID, StatusID: statuses[0].ID},
		{Title: "Finish reports", DueDate: week, TodoListID: lists[1].ID, StatusID: statuses[0].ID},
	}
	for i := range tasks {
		if _, err := db.NewInsert().Model(&tasks[i]).Exec(ctx); err != nil {
			return fmt.Errorf("seed task %s: %w", tasks[i].Title, err)
		}
	}
	fmt.Println(" OK")

	return nil
}

func down_20250601000002(ctx context.Context, db *bun.DB) error {
	// Fixtures only; dropping them wholesale is fine for dev databases.
	if IsPostgreSQL(db) {
		_, err := db.ExecContext(ctx, "TRUNCATE tasks, task_statuses, todo_lists, users RESTART IDENTITY CASCADE")
		if err != nil {
			return fmt.Errorf("truncate seed tables: %w", err)
		}
		return nil
	}
	for _, table := range []string{"tasks", "task_statuses", "todo_lists", "users"} {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}
