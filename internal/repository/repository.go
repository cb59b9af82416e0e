// Package repository implements all database queries for the sports academy.
// It uses pgx directly (no ORM).
package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrStaleStatus is returned when a class changed status under a concurrent update.
var ErrStaleStatus = errors.New("class status changed concurrently")

// ErrTransactionReused is returned when a provider transaction id already
// settled a different reservation or student.
var ErrTransactionReused = errors.New("transaction id already settled another reservation")

// DBTX is the subset of *pgxpool.Pool the repositories use.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
