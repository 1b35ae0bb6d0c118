// Package migrations provides embedded SQL migration files.
package migrations

import (
	_ "embed"
)

// InitialSQL creates the run history schema. It is idempotent.
//
//go:embed sql/001_initial.sql
var InitialSQL string
