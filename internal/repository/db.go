package repository

import (
	"context"
	"database/sql"
)

// DB is the query surface the repositories run on. Both *sql.DB and the
// traced wrapper in internal/observability satisfy it, so query tracing
// is a wiring decision rather than a repository concern.
type DB interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}
