// Package db embeds the SQL schema migrations.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the path of the migration files inside the embedded FS.
const MigrationsDir = "migrations"
