package postgres

import (
	"context"
	"database/sql"

	"github.com/republichq/republic/internal/republic/store"
)

type beginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

func withTx(ctx context.Context, b beginner, fn func(store.Tx) error) (err error) {
	tx, err := b.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(&txStore{q: &queries{db: tx}}); err != nil {
		return err
	}
	return tx.Commit()
}

type txStore struct {
	q *queries
}

func (t *txStore) Users() store.Users             { return &usersRepo{q: t.q} }
func (t *txStore) ResetTokens() store.ResetTokens { return &resetTokensRepo{q: t.q} }
func (t *txStore) Clicks() store.Clicks           { return &clicksRepo{q: t.q} }

type connStore struct {
	c *sql.Conn
	q *queries
}

func (c *connStore) Close() error { return c.c.Close() }

func (c *connStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return withTx(ctx, c.c, fn)
}

func (c *connStore) Users() store.Users             { return &usersRepo{q: c.q} }
func (c *connStore) ResetTokens() store.ResetTokens { return &resetTokensRepo{q: c.q} }
func (c *connStore) Clicks() store.Clicks           { return &clicksRepo{q: c.q} }
