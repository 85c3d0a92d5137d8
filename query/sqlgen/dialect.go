package sqlgen

import (
	"fmt"
	"strings"
)

// Dialect identifies a SQL provider.
type Dialect string

const (
	// SQLite dialect.
	SQLite Dialect = "sqlite"
	// Postgres dialect.
	Postgres Dialect = "postgres"
	// MySQL dialect.
	MySQL Dialect = "mysql"
)

// QuoteIdentifier quotes an identifier for the given dialect.
func QuoteIdentifier(dialect Dialect, name string) string {
	switch dialect {
	case MySQL:
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	default:
		return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	}
}

// Rebind rewrites "?" placeholders into the dialect's native form.
// SQLite and MySQL use "?" as-is; Postgres uses ordinal "$n" markers.
// A "?" inside a single-quoted string literal is left alone; doubled
// quote escapes ('') toggle the literal state twice and fall out
// naturally.
func Rebind(dialect Dialect, sql string) string {
	if dialect != Postgres {
		return sql
	}

	var b strings.Builder
	b.Grow(len(sql) + 8)
	argIndex := 1
	inLiteral := false
	for _, r := range sql {
		switch {
		case r == '\'':
			inLiteral = !inLiteral
			b.WriteRune(r)
		case r == '?' && !inLiteral:
			b.WriteString(fmt.Sprintf("$%d", argIndex))
			argIndex++
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
