// Package sqlite implements the SQLite database adapter.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/tablekit/tablekit/internal/adapters/database"
	"github.com/tablekit/tablekit/query/sqlgen"
)

// Adapter implements database.Adapter for SQLite.
type Adapter struct {
	db     *sql.DB
	config database.Config
}

// New creates a SQLite adapter. The URL is a file path or ":memory:".
func New(config database.Config) *Adapter {
	return &Adapter{config: config}
}

// Connect opens the SQLite database.
func (a *Adapter) Connect(ctx context.Context) error {
	db, err := sql.Open("sqlite3", a.config.URL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer; a wider pool only causes
	// SQLITE_BUSY under write load.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
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
	return sqlgen.SQLite
}

var _ database.Adapter = (*Adapter)(nil)
