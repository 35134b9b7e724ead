// Package migrations holds the database schema migrations, applied via
// the taskmanager db commands.
package migrations

import "github.com/uptrace/bun/migrate"

// Migrations is the registry all migration files register into.
var Migrations = migrate.NewMigrations()
