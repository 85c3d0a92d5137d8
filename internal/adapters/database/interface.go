// Package database defines database adapter interfaces.
package database

import (
	"context"
	"database/sql"

	"github.com/tablekit/tablekit/query/sqlgen"
)

// Adapter is a provider-specific database connection.
type Adapter interface {
	// Connect establishes the database connection.
	Connect(ctx context.Context) error

	// Disconnect closes the database connection.
	Disconnect(ctx context.Context) error

	// DB returns the underlying connection handle. Table accessors and
	// transactions are built on top of it.
	DB() *sql.DB

	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// Dialect returns the SQL dialect.
	Dialect() sqlgen.Dialect
}

// Config holds database connection configuration.
type Config struct {
	Provider       string
	URL            string
	MaxConnections int
	MaxIdleTime    int // seconds
	ConnectTimeout int // seconds
}
