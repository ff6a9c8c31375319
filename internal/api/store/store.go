package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gnkhotels/go-hotel-curation/internal/api"
)

// DB is the slice of pgxpool.Pool the repositories depend on. pgxmock
// pools satisfy it too, which keeps repository tests off a live server.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// The soft-delete lifecycle is identical for every entity table: a
// nullable deleted_at column stamped on delete, cleared on restore.
// These helpers are the single implementation, parameterized by table
// name; table names are always package-level constants, never user
// input.

// SoftDelete stamps deleted_at on the row. The row is kept and can be
// restored.
func SoftDelete(ctx context.Context, db DB, table string, id uuid.UUID) error {
	query := fmt.Sprintf("UPDATE %s SET deleted_at = now() WHERE id = $1", table)
	tag, err := db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("database error soft-deleting from %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s row %s: %w", table, id, api.ErrNotFound)
	}
	return nil
}

// HardDelete removes the row unconditionally.
func HardDelete(ctx context.Context, db DB, table string, id uuid.UUID) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", table)
	tag, err := db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("database error deleting from %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s row %s: %w", table, id, api.ErrNotFound)
	}
	return nil
}

// Restore clears deleted_at so the row is visible to reads again.
func Restore(ctx context.Context, db DB, table string, id uuid.UUID) error {
	query := fmt.Sprintf("UPDATE %s SET deleted_at = NULL WHERE id = $1", table)
	tag, err := db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("database error restoring in %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s row %s: %w", table, id, api.ErrNotFound)
	}
	return nil
}
