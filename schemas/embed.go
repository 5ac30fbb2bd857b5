// Package schemas provides embedded SQL migration files.
package schemas

import "embed"

// MigrationsDir is the directory of Migrations holding the SQL files.
const MigrationsDir = "migrations"

// Migrations contains the answer log SQL migration files, named
// <version>_<title>.{up,down}.sql.
//
//go:embed migrations/*.sql
var Migrations embed.FS
