package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type contextKey string

// ConnKey carries a transaction-scoped connection through a request context
// so that every repository touched by one service call shares it.
const ConnKey contextKey = "db_conn"

// WithConn returns a context carrying the given transaction. Repositories
// created from the pool pick it up via ConnFromContext.
func WithConn(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, ConnKey, tx)
}

// ConnFromContext retrieves the transaction-scoped connection, or nil when
// the call is not running inside RunInTx.
func ConnFromContext(ctx context.Context) pgx.Tx {
	tx, _ := ctx.Value(ConnKey).(pgx.Tx)
	return tx
}

// RunInTx executes fn inside a transaction with the given options. The
// transaction is injected into the context passed to fn, so repository calls
// made with that context all run on it. Rollback on error, commit on nil.
func RunInTx(ctx context.Context, pool *pgxpool.Pool, opts pgx.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := pool.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(WithConn(ctx, tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// RunSerializable runs fn in a serializable transaction. Booking flows use
// this so the availability check and the insert observe a consistent
// snapshot; two concurrent bookings of the same slot cannot both commit.
func RunSerializable(ctx context.Context, pool *pgxpool.Pool, fn func(ctx context.Context) error) error {
	return RunInTx(ctx, pool, pgx.TxOptions{IsoLevel: pgx.Serializable}, fn)
}
