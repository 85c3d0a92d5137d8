package typegen

import (
	"context"
	"database/sql"
	"fmt"
)

// TableSchema is the introspected shape of one table.
type TableSchema struct {
	Name    string
	Columns []ColumnSchema
}

// ColumnSchema is the introspected metadata of one column, in the
// table's natural column order.
type ColumnSchema struct {
	Position   int
	Name       string
	DeclType   string
	NotNull    bool
	PrimaryKey bool
	HasDefault bool
}

// listTables returns every user table in the database, ordered
// lexicographically by name.
func listTables(ctx context.Context, db *sql.DB) ([]string, error) {
	query := `
		SELECT name
		FROM sqlite_master
		WHERE type = 'table'
		  AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// introspectTable reads column metadata for one table using PRAGMA.
func introspectTable(ctx context.Context, db *sql.DB, name string) (TableSchema, error) {
	query := fmt.Sprintf("PRAGMA table_info(%q)", name)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return TableSchema{}, fmt.Errorf("failed to query columns for %s: %w", name, err)
	}
	defer rows.Close()

	schema := TableSchema{Name: name}
	for rows.Next() {
		var col ColumnSchema
		var notNull, pk int
		var dfltValue sql.NullString

		if err := rows.Scan(&col.Position, &col.Name, &col.DeclType, &notNull, &dfltValue, &pk); err != nil {
			return TableSchema{}, fmt.Errorf("failed to scan column for %s: %w", name, err)
		}

		col.NotNull = notNull != 0
		col.PrimaryKey = pk != 0
		col.HasDefault = dfltValue.Valid

		schema.Columns = append(schema.Columns, col)
	}
	if err := rows.Err(); err != nil {
		return TableSchema{}, err
	}

	if len(schema.Columns) == 0 {
		return TableSchema{}, fmt.Errorf("no such table: %s", name)
	}
	return schema, nil
}
