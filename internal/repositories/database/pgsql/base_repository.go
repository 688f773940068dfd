package pgsql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/trustbooks/trust_ledger_app/internal/apperrors"
)

// BaseRepository carries the shared pool and transaction plumbing embedded
// by the concrete repositories.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a database transaction on the shared pool.
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits tx.
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back tx. Rolling back an already-finished transaction is
// not an error, so deferred rollbacks after commit are safe.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	err := tx.Rollback(ctx)
	if err == nil || errors.Is(err, sql.ErrTxDone) || errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return apperrors.NewAppError(500, "failed to rollback transaction", err)
}
