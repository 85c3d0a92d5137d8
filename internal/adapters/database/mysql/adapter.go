// Package mysql implements the MySQL database adapter.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver

	"github.com/tablekit/tablekit/internal/adapters/database"
	"github.com/tablekit/tablekit/query/sqlgen"
)

// Adapter implements database.Adapter for MySQL.
type Adapter struct {
	db     *sql.DB
	config database.Config
}

// New creates a MySQL adapter.
func New(config database.Config) *Adapter {
	return &Adapter{config: config}
}

// Connect opens the MySQL connection pool.
func (a *Adapter) Connect(ctx context.Context) error {
	db, err := sql.Open("mysql", a.config.URL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if a.config.MaxConnections > 0 {
		db.SetMaxOpenConns(a.config.MaxConnections)
	}
	if a.config.MaxIdleTime > 0 {
		db.SetConnMaxIdleTime(time.Duration(a.config.MaxIdleTime) * time.Second)
	}

	if a.config.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(a.config.ConnectTimeout)*time.Second)
		defer cancel()
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	a.db = db
	return nil
}

// Disconnect closes the database connection.
func (a *Adapter) Disconnect(ctx context.Context) error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// DB returns the underlying connection handle.
func (a *Adapter) DB() *sql.DB {
	return a.db
}

// Ping checks if the database connection is alive.
func (a *Adapter) Ping(ctx context.Context) error {
	if a.db == nil {
		return fmt.Errorf("database not connected")
	}
	return a.db.PingContext(ctx)
}

// Dialect returns the SQL dialect.
func (a *Adapter) Dialect() sqlgen.Dialect {
	return sqlgen.MySQL
}

var _ database.Adapter = (*Adapter)(nil)
