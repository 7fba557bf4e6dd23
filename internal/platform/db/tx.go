package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/animeaux/animeaux/internal/shared"
)

// ReadSnapshot runs fn in a read-only RepeatableRead transaction so that every
// query of fn sees the same snapshot. List pages use it to keep the total count
// consistent with the rows. Failing to start the transaction for any reason
// other than ctx reports shared.ErrUnavailable.
func ReadSnapshot(ctx context.Context, pool *pgxpool.Pool, fn func(pgx.Tx) error) error {
	tx, err := pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("platform/db: begin tx: %w", err)
		}
		return fmt.Errorf("platform/db: begin tx: %w: %w", shared.ErrUnavailable, err)
	}

	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("platform/db: commit tx: %w", err)
	}

	return nil
}
