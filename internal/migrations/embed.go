// Package migrations provides embedded SQL migration files.
package migrations

import (
	_ "embed"
)

//go:embed sql/001_library.sql
var LibrarySQL string

// All returns the migrations in the order they must be applied.
func All() []string {
	return []string{LibrarySQL}
}
