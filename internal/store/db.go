package store

import (
	"context"
	"database/sql"
)

// DBTX abstracts the SQL access layer. It is implemented by *sql.DB,
// *sql.Tx, *sqlx.DB and *sqlx.Tx, so SQL backends can run the same queries
// inside or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxBeginner starts transactions. *sql.DB and *sqlx.DB both satisfy it.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}
