package table

import (
	"context"
	"database/sql"
)

// Querier is the minimal connection contract a Table needs. Both
// *sql.DB and *sql.Tx satisfy it, so a Table can run either on a bare
// connection or inside an externally managed transaction.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)
