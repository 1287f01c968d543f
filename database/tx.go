package database

import (
	"context"
	"fmt"
)

// WithTx runs fn inside a single transaction.
//
// fn returning nil commits; an error or a panic rolls back. The panic is
// re-raised after the rollback. The querier handed to fn is bound to the
// transaction and to the store's dialect.
//
//	err := database.WithTx(ctx, db, func(q database.TxQuerier) error {
//	    users := repository.NewSQLUserRepo(q)
//	    ...
//	})
func WithTx(ctx context.Context, db *DB, fn func(q TxQuerier) error) (err error) {
	tx, err := db.Conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}

		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
			}
			return
		}

		if commitErr := tx.Commit(); commitErr != nil {
			err = fmt.Errorf("failed to commit transaction: %w", commitErr)
		}
	}()

	err = fn(bind(tx, db.Dialect))
	return
}
