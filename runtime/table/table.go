// Package table provides a single-table data-access helper bound to one
// table name and one connection handle.
package table

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/tablekit/tablekit/query/predicate"
	"github.com/tablekit/tablekit/query/sqlgen"
)

// Row is a mapping from column name to scalar value.
type Row = predicate.Row

// Table issues statements against exactly one table through a shared
// connection handle. The handle is held by reference and never closed;
// ownership stays with the caller. Callers needing atomicity across
// multiple operations pass a *sql.Tx as the Querier.
type Table struct {
	q           Querier
	name        string
	dialect     sqlgen.Dialect
	conflictKey []string
}

// Option configures a Table.
type Option func(*Table)

// WithDialect sets the SQL dialect. Default is SQLite.
func WithDialect(dialect sqlgen.Dialect) Option {
	return func(t *Table) { t.dialect = dialect }
}

// WithConflictKey sets the conflict target columns used by
// InsertOrReplace on Postgres, which has no REPLACE verb and needs an
// explicit ON CONFLICT target.
func WithConflictKey(columns ...string) Option {
	return func(t *Table) { t.conflictKey = columns }
}

// New binds a table accessor to one table name and one connection.
func New(q Querier, name string, opts ...Option) *Table {
	t := &Table{
		q:       q,
		name:    name,
		dialect: sqlgen.SQLite,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns the bound table name.
func (t *Table) Name() string {
	return t.name
}

func (t *Table) ident() string {
	return sqlgen.QuoteIdentifier(t.dialect, t.name)
}

// insertMode selects the conflict-resolution behavior of an insert.
type insertMode int

const (
	insertThrow insertMode = iota
	insertIgnore
	insertReplace
)

// InsertOrThrow inserts one or more rows, one statement per row, all
// dispatched concurrently. Any constraint violation surfaces as a
// DataAccessError. The call returns once every statement has settled;
// the first failure in argument order wins.
func (t *Table) InsertOrThrow(ctx context.Context, rows ...Row) error {
	return t.insert(ctx, insertThrow, rows)
}

// InsertOrIgnore inserts rows, skipping any row that conflicts with an
// existing one. Only non-constraint failures are reported.
func (t *Table) InsertOrIgnore(ctx context.Context, rows ...Row) error {
	return t.insert(ctx, insertIgnore, rows)
}

// InsertOrReplace inserts rows, overwriting any existing row it
// conflicts with.
func (t *Table) InsertOrReplace(ctx context.Context, rows ...Row) error {
	return t.insert(ctx, insertReplace, rows)
}

func (t *Table) insert(ctx context.Context, mode insertMode, rows []Row) error {
	if len(rows) == 1 {
		return t.insertOne(ctx, mode, rows[0])
	}

	// Fan out one statement per row. No transaction is opened here:
	// rows that succeed before a later failure stay inserted.
	errs := make([]error, len(rows))
	var wg sync.WaitGroup
	for i, row := range rows {
		wg.Add(1)
		go func(i int, row Row) {
			defer wg.Done()
			errs[i] = t.insertOne(ctx, mode, row)
		}(i, row)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) insertOne(ctx context.Context, mode insertMode, row Row) error {
	stmt, err := t.insertStatement(mode, row)
	if err != nil {
		return err
	}
	if _, err := t.q.ExecContext(ctx, sqlgen.Rebind(t.dialect, stmt.SQL), stmt.Args...); err != nil {
		return t.dataErr("insert", err)
	}
	return nil
}

func (t *Table) insertStatement(mode insertMode, row Row) (sqlgen.Fragment, error) {
	cols, vals := predicate.InsertColumns(t.dialect, row)

	verb := "INSERT"
	suffix := ""
	switch t.dialect {
	case sqlgen.MySQL:
		switch mode {
		case insertIgnore:
			verb = "INSERT IGNORE"
		case insertReplace:
			verb = "REPLACE"
		}
	case sqlgen.Postgres:
		switch mode {
		case insertIgnore:
			suffix = " ON CONFLICT DO NOTHING"
		case insertReplace:
			var err error
			suffix, err = t.postgresReplaceSuffix(row)
			if err != nil {
				return sqlgen.Fragment{}, err
			}
		}
	default: // SQLite
		switch mode {
		case insertIgnore:
			verb = "INSERT OR IGNORE"
		case insertReplace:
			verb = "INSERT OR REPLACE"
		}
	}

	stmt := sqlgen.Raw(fmt.Sprintf("%s INTO %s (%s) VALUES (%s)%s",
		verb, t.ident(), cols.SQL, vals.SQL, suffix), vals.Args...)
	return stmt, nil
}

// postgresReplaceSuffix builds an ON CONFLICT ... DO UPDATE clause that
// overwrites every inserted column outside the conflict key.
func (t *Table) postgresReplaceSuffix(row Row) (string, error) {
	if len(t.conflictKey) == 0 {
		return "", fmt.Errorf("%w: InsertOrReplace on postgres requires WithConflictKey", ErrInvalidArgument)
	}

	key := make(map[string]bool, len(t.conflictKey))
	target := make([]string, len(t.conflictKey))
	for i, col := range t.conflictKey {
		key[col] = true
		target[i] = sqlgen.QuoteIdentifier(t.dialect, col)
	}

	var assigns []string
	for _, col := range predicate.Columns(row) {
		if key[col] {
			continue
		}
		quoted := sqlgen.QuoteIdentifier(t.dialect, col)
		assigns = append(assigns, quoted+" = EXCLUDED."+quoted)
	}
	if len(assigns) == 0 {
		return " ON CONFLICT DO NOTHING", nil
	}
	return fmt.Sprintf(" ON CONFLICT (%s) DO UPDATE SET %s",
		strings.Join(target, ", "), strings.Join(assigns, ", ")), nil
}

// SetBySQL compiles an UPDATE with a raw predicate fragment and returns
// the affected-row count as reported by the engine.
func (t *Table) SetBySQL(ctx context.Context, where sqlgen.Fragment, values Row) (int64, error) {
	assigns, err := predicate.SetClause(t.dialect, values)
	if err != nil {
		return 0, err
	}
	if where.IsEmpty() {
		where = sqlgen.True()
	}

	stmt := sqlgen.Join(" ",
		sqlgen.Raw("UPDATE "+t.ident()+" SET"),
		assigns,
		sqlgen.Raw("WHERE"),
		where,
	)
	res, err := t.q.ExecContext(ctx, sqlgen.Rebind(t.dialect, stmt.SQL), stmt.Args...)
	if err != nil {
		return 0, t.dataErr("update", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, t.dataErr("update", err)
	}
	return affected, nil
}

// Set compiles the whereValues row into an equality predicate and
// delegates to SetBySQL.
func (t *Table) Set(ctx context.Context, whereValues, values Row) (int64, error) {
	return t.SetBySQL(ctx, predicate.Equality(t.dialect, whereValues), values)
}

// DelBySQL deletes every row matching a raw predicate fragment.
func (t *Table) DelBySQL(ctx context.Context, where sqlgen.Fragment) error {
	if where.IsEmpty() {
		where = sqlgen.True()
	}
	stmt := sqlgen.Join(" ",
		sqlgen.Raw("DELETE FROM "+t.ident()+" WHERE"),
		where,
	)
	if _, err := t.q.ExecContext(ctx, sqlgen.Rebind(t.dialect, stmt.SQL), stmt.Args...); err != nil {
		return t.dataErr("delete", err)
	}
	return nil
}

// Del compiles the whereValues row into an equality predicate and
// delegates to DelBySQL.
func (t *Table) Del(ctx context.Context, whereValues Row) error {
	return t.DelBySQL(ctx, predicate.Equality(t.dialect, whereValues))
}

// GetAllBySQL selects every row matching a raw predicate fragment.
// Order is whatever the engine returns unless the fragment carries an
// ORDER BY of its own.
func (t *Table) GetAllBySQL(ctx context.Context, where sqlgen.Fragment) ([]Row, error) {
	if where.IsEmpty() {
		where = sqlgen.True()
	}
	return t.selectAll(ctx, where)
}

func (t *Table) selectAll(ctx context.Context, tail sqlgen.Fragment) ([]Row, error) {
	stmt := sqlgen.Join(" ",
		sqlgen.Raw("SELECT * FROM "+t.ident()+" WHERE"),
		tail,
	)
	rows, err := t.q.QueryContext(ctx, sqlgen.Rebind(t.dialect, stmt.SQL), stmt.Args...)
	if err != nil {
		return nil, t.dataErr("select", err)
	}
	defer rows.Close()

	out, err := scanRows(rows)
	if err != nil {
		return nil, t.dataErr("select", err)
	}
	return out, nil
}

// GetOneBySQL selects the single row matching a raw predicate fragment,
// or nil if none matches. Two or more matches violate the cardinality
// invariant. A LIMIT 2 caps the engine's work; correctness does not
// depend on it.
func (t *Table) GetOneBySQL(ctx context.Context, where sqlgen.Fragment) (Row, error) {
	if where.IsEmpty() {
		where = sqlgen.True()
	}
	rows, err := t.selectAll(ctx, where.Append(" LIMIT 2"))
	if err != nil {
		return nil, err
	}
	if len(rows) > 1 {
		return nil, fmt.Errorf("%w: expected at most one row in %s, got %d",
			ErrInvariantViolation, t.name, len(rows))
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// GetOneBySQLOrThrow is GetOneBySQL, but zero matches is also a
// cardinality failure.
func (t *Table) GetOneBySQLOrThrow(ctx context.Context, where sqlgen.Fragment) (Row, error) {
	row, err := t.GetOneBySQL(ctx, where)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("%w: expected one row in %s, got none",
			ErrInvariantViolation, t.name)
	}
	return row, nil
}

// GetOptions controls ordering and truncation of GetAll results.
type GetOptions struct {
	// OrderBy lists sort columns. A non-nil empty list is rejected.
	OrderBy []string
	// Direction is "asc" or "desc" (case-insensitive). Empty means
	// ascending. Only valid together with OrderBy.
	Direction string
	// Limit caps the result count. Negative values are rejected.
	Limit *int
}

// GetAll selects every row matching the whereValues equality predicate.
// The empty row matches all rows in the table.
func (t *Table) GetAll(ctx context.Context, whereValues Row, opts *GetOptions) ([]Row, error) {
	tail := predicate.Equality(t.dialect, whereValues)

	if opts != nil {
		if opts.OrderBy != nil {
			order, err := predicate.OrderBy(t.dialect, opts.OrderBy, opts.Direction)
			if err != nil {
				return nil, err
			}
			tail = tail.Append(" ORDER BY " + order.SQL)
		} else if opts.Direction != "" {
			return nil, fmt.Errorf("%w: direction given without order-by columns", ErrInvalidArgument)
		}
		if opts.Limit != nil {
			if *opts.Limit < 0 {
				return nil, fmt.Errorf("%w: negative limit %d", ErrInvalidArgument, *opts.Limit)
			}
			tail = tail.Append(" LIMIT ?", *opts.Limit)
		}
	}

	return t.selectAll(ctx, tail)
}

// GetOne selects the single row matching the whereValues equality
// predicate, or nil if none matches. Two or more matches violate the
// cardinality invariant.
func (t *Table) GetOne(ctx context.Context, whereValues Row) (Row, error) {
	rows, err := t.GetAll(ctx, whereValues, nil)
	if err != nil {
		return nil, err
	}
	if len(rows) > 1 {
		return nil, fmt.Errorf("%w: expected at most one row in %s, got %d",
			ErrInvariantViolation, t.name, len(rows))
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// GetOneOrThrow is GetOne, but zero matches is also a cardinality
// failure.
func (t *Table) GetOneOrThrow(ctx context.Context, whereValues Row) (Row, error) {
	row, err := t.GetOne(ctx, whereValues)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("%w: expected one row in %s, got none",
			ErrInvariantViolation, t.name)
	}
	return row, nil
}
