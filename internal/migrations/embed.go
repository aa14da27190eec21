// Package migrations holds the sqlite schema.
package migrations

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

// SchemaVersion is stored in PRAGMA user_version once Apply succeeds.
const SchemaVersion = 1

// InitialSQL creates every table renamarr needs. Each statement is
// idempotent.
//
//go:embed sql/001_initial.sql
var InitialSQL string

// Apply brings db up to SchemaVersion. A database written by a newer
// renamarr is rejected.
func Apply(ctx context.Context, db *sql.DB) error {
	var current int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if current > SchemaVersion {
		return fmt.Errorf("schema version %d is newer than supported %d", current, SchemaVersion)
	}

	if _, err := db.ExecContext(ctx, InitialSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)); err != nil {
		return fmt.Errorf("set schema version: %w", err)
	}
	return nil
}
