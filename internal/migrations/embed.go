// Package migrations provides embedded SQL migration files.
package migrations

import (
	_ "embed"
)

// InitialSQL creates the library schema. It is safe to run on every start.
//
//go:embed sql/001_initial.sql
var InitialSQL string
