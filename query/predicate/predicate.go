// Package predicate compiles partial-row mappings into SQL fragments.
package predicate

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/tablekit/tablekit/query/sqlgen"
)

// ErrInvalidArgument is returned when a caller-supplied value violates a
// precondition before any statement is issued.
var ErrInvalidArgument = errors.New("invalid argument")

// Row is a mapping from column name to scalar value. A partial Row acts
// as a conjunctive equality predicate; a full Row is an insert payload.
type Row map[string]interface{}

// Columns returns the row's column names in sorted order. Iteration over
// a Go map is randomized, so compiled fragments always use this order.
func Columns(row Row) []string {
	cols := make([]string, 0, len(row))
	for col := range row {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

// Equality compiles a partial row into a conjunction of equality
// conditions. The empty row compiles to an always-true condition.
func Equality(dialect sqlgen.Dialect, row Row) sqlgen.Fragment {
	if len(row) == 0 {
		return sqlgen.True()
	}

	fragments := make([]sqlgen.Fragment, 0, len(row))
	for _, col := range Columns(row) {
		fragments = append(fragments, sqlgen.Raw(
			sqlgen.QuoteIdentifier(dialect, col)+" = ?", row[col],
		))
	}
	return sqlgen.Join(" AND ", fragments...)
}

// InsertColumns compiles a row into a column-list fragment and a
// positionally aligned value-list fragment.
func InsertColumns(dialect sqlgen.Dialect, row Row) (sqlgen.Fragment, sqlgen.Fragment) {
	cols := Columns(row)
	quoted := make([]string, len(cols))
	placeholders := make([]string, len(cols))
	args := make([]interface{}, len(cols))
	for i, col := range cols {
		quoted[i] = sqlgen.QuoteIdentifier(dialect, col)
		placeholders[i] = "?"
		args[i] = row[col]
	}
	return sqlgen.Raw(strings.Join(quoted, ", ")),
		sqlgen.Raw(strings.Join(placeholders, ", "), args...)
}

// SetClause compiles a partial row into a comma-joined assignment list
// for an UPDATE statement. An empty row is rejected: an update with no
// assignments is meaningless.
func SetClause(dialect sqlgen.Dialect, row Row) (sqlgen.Fragment, error) {
	if len(row) == 0 {
		return sqlgen.Fragment{}, fmt.Errorf("%w: empty update set", ErrInvalidArgument)
	}

	fragments := make([]sqlgen.Fragment, 0, len(row))
	for _, col := range Columns(row) {
		fragments = append(fragments, sqlgen.Raw(
			sqlgen.QuoteIdentifier(dialect, col)+" = ?", row[col],
		))
	}
	return sqlgen.Join(", ", fragments...), nil
}

// OrderBy compiles an ORDER BY fragment over one or more columns.
// Direction is "asc" or "desc" (case-insensitive); empty means ascending.
func OrderBy(dialect sqlgen.Dialect, columns []string, direction string) (sqlgen.Fragment, error) {
	if len(columns) == 0 {
		return sqlgen.Fragment{}, fmt.Errorf("%w: empty order-by column list", ErrInvalidArgument)
	}

	dir := "ASC"
	switch strings.ToLower(direction) {
	case "", "asc":
	case "desc":
		dir = "DESC"
	default:
		return sqlgen.Fragment{}, fmt.Errorf("%w: unknown sort direction %q", ErrInvalidArgument, direction)
	}

	// The direction applies to every column, so it is rendered after
	// each one. A single trailing direction would only affect the last
	// sort key.
	terms := make([]string, len(columns))
	for i, col := range columns {
		terms[i] = sqlgen.QuoteIdentifier(dialect, col) + " " + dir
	}
	return sqlgen.Raw(strings.Join(terms, ", ")), nil
}
