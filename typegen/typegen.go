// Package typegen turns a SQL schema script into a textual type
// declaration listing each column's base type and nullability.
//
// The script runs against a disposable in-memory SQLite instance that
// exists only to answer schema-introspection queries; no caller data is
// ever touched.
package typegen

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Options configures a Generate call.
type Options struct {
	// Name is the emitted interface name. Default is "Tables".
	Name string
	// TableNames restricts output to the listed tables, in the given
	// order. Empty means every table in the script, lexicographically.
	TableNames []string
}

// numericHints mark a declared column type as numeric. This is a
// deliberately coarse substring heuristic, not a SQL type parser.
var numericHints = []string{"int", "real", "double", "float", "bool", "bit"}

// Generate executes the schema script against a throwaway database
// instance, introspects the resulting tables, and renders the type
// declaration.
func Generate(ctx context.Context, script string, opts Options) (string, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return "", fmt.Errorf("failed to open scratch database: %w", err)
	}
	defer db.Close()

	// Every pooled connection to :memory: is a distinct database;
	// keep the whole run on one connection.
	db.SetMaxOpenConns(1)

	for _, stmt := range SplitStatements(script) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return "", fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}

	return FromDB(ctx, db, opts)
}

// FromDB introspects an existing SQLite database and renders the type
// declaration for its tables.
func FromDB(ctx context.Context, db *sql.DB, opts Options) (string, error) {
	names := opts.TableNames
	if len(names) == 0 {
		var err error
		names, err = listTables(ctx, db)
		if err != nil {
			return "", err
		}
	}

	tables := make([]TableSchema, 0, len(names))
	for _, name := range names {
		schema, err := introspectTable(ctx, db, name)
		if err != nil {
			return "", err
		}
		tables = append(tables, schema)
	}

	name := opts.Name
	if name == "" {
		name = "Tables"
	}
	return render(name, tables), nil
}

// SplitStatements divides a schema script into individual statements on
// the ";" terminator. Terminators embedded in string literals or
// comments are not recognized; schema scripts must avoid such content.
func SplitStatements(script string) []string {
	var statements []string
	for _, part := range strings.Split(script, ";") {
		stmt := strings.TrimSpace(part)
		if stmt == "" {
			continue
		}
		statements = append(statements, stmt)
	}
	return statements
}

// render writes the interface declaration. Tables keep the given order;
// columns keep the table's natural column order.
func render(name string, tables []TableSchema) string {
	var b strings.Builder
	fmt.Fprintf(&b, "interface %s {\n", name)
	for _, table := range tables {
		fmt.Fprintf(&b, "  %s: {\n", table.Name)
		for _, col := range table.Columns {
			fmt.Fprintf(&b, "    %s: %s;\n", col.Name, columnType(col))
		}
		b.WriteString("  };\n")
	}
	b.WriteString("}\n")
	return b.String()
}

// columnType maps a column to its emitted type. Primary keys are always
// non-nullable; nullable primary keys are bad practice and excluded
// from consideration.
func columnType(col ColumnSchema) string {
	base := "string"
	decl := strings.ToLower(col.DeclType)
	for _, hint := range numericHints {
		if strings.Contains(decl, hint) {
			base = "number"
			break
		}
	}

	if col.NotNull || col.PrimaryKey {
		return base
	}
	return base + " | null"
}
