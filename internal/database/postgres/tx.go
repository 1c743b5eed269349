// Copyright (c) 2025 PitchScout
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type txContextKey struct{}

// WithTransaction executes fn within a database transaction. The transaction is
// stored in the context so that every repository call made inside fn, across
// packages, runs on the same transaction. Commit happens only if fn returns nil.
func (c *Client) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txCtx := context.WithValue(ctx, txContextKey{}, tx)

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Executor returns the transaction bound to ctx if there is one, otherwise the
// plain connection pool. Repositories route all queries through this so that
// the same code path works inside and outside WithTransaction.
func (c *Client) Executor(ctx context.Context) sqlx.ExtContext {
	if tx, ok := ctx.Value(txContextKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return c.db
}
