// Package migrate wraps goose for running the embedded schema migrations.
package migrate

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"invetra/db"
)

// Run executes a goose command against the embedded migrations.
// Supported commands: up, down, status, version, up-to, down-to.
func Run(ctx context.Context, sqlDB *sql.DB, command string, args ...string) error {
	if sqlDB == nil {
		return fmt.Errorf("db is required")
	}

	goose.SetBaseFS(db.Migrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.RunContext(ctx, command, sqlDB, db.MigrationsDir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// Up migrates the schema to the latest version.
func Up(ctx context.Context, sqlDB *sql.DB) error {
	return Run(ctx, sqlDB, "up")
}
