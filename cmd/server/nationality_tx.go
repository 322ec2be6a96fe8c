package main

import (
	"context"
	"database/sql"
	"time"

	natservice "wordsrecord/internal/nationality/service"
	natstore "wordsrecord/internal/nationality/store"
	personstore "wordsrecord/internal/person/store"
	dErrors "wordsrecord/pkg/domain-errors"
)

const defaultNationalityTxTimeout = 5 * time.Second

// nationalityPostgresTx runs fact writes and cache recomputes in a single
// database transaction.
type nationalityPostgresTx struct {
	db      *sql.DB
	timeout time.Duration
}

func newNationalityPostgresTx(db *sql.DB) *nationalityPostgresTx {
	return &nationalityPostgresTx{db: db}
}

func (t *nationalityPostgresTx) RunInTx(ctx context.Context, fn func(ctx context.Context, stores natservice.TxStores) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultNationalityTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stores := natservice.TxStores{
		Facts:   natstore.NewPostgresTx(tx),
		Persons: personstore.NewPostgresTx(tx),
	}
	if err := fn(ctx, stores); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	return nil
}
