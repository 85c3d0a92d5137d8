package predicate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablekit/tablekit/query/sqlgen"
)

func TestEquality_Empty(t *testing.T) {
	f := Equality(sqlgen.SQLite, Row{})
	assert.Equal(t, "1 = 1", f.SQL)
	assert.Empty(t, f.Args)
}

func TestEquality(t *testing.T) {
	f := Equality(sqlgen.SQLite, Row{"b": 2, "a": 1})

	// Columns come out in sorted order regardless of map order.
	assert.Equal(t, `"a" = ? AND "b" = ?`, f.SQL)
	assert.Equal(t, []interface{}{1, 2}, f.Args)
}

func TestEquality_ClauseCountMatchesKeyCount(t *testing.T) {
	row := Row{"a": 1, "b": 2, "c": 3, "d": 4}
	f := Equality(sqlgen.SQLite, row)
	assert.Equal(t, len(row), strings.Count(f.SQL, "= ?"))
	assert.Len(t, f.Args, len(row))
}

func TestEquality_MySQLQuoting(t *testing.T) {
	f := Equality(sqlgen.MySQL, Row{"a": 1})
	assert.Equal(t, "`a` = ?", f.SQL)
}

func TestInsertColumns(t *testing.T) {
	cols, vals := InsertColumns(sqlgen.SQLite, Row{"name": "alice", "age": 30})

	assert.Equal(t, `"age", "name"`, cols.SQL)
	assert.Equal(t, "?, ?", vals.SQL)
	assert.Equal(t, []interface{}{30, "alice"}, vals.Args)
	assert.Empty(t, cols.Args)
}

func TestSetClause(t *testing.T) {
	f, err := SetClause(sqlgen.SQLite, Row{"bio": "x", "age": 31})
	require.NoError(t, err)
	assert.Equal(t, `"age" = ?, "bio" = ?`, f.SQL)
	assert.Equal(t, []interface{}{31, "x"}, f.Args)
}

func TestSetClause_EmptyRejected(t *testing.T) {
	_, err := SetClause(sqlgen.SQLite, Row{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestOrderBy(t *testing.T) {
	f, err := OrderBy(sqlgen.SQLite, []string{"age"}, "")
	require.NoError(t, err)
	assert.Equal(t, `"age" ASC`, f.SQL)

	// Every column carries the direction, not just the last one.
	f, err = OrderBy(sqlgen.SQLite, []string{"age", "name"}, "DESC")
	require.NoError(t, err)
	assert.Equal(t, `"age" DESC, "name" DESC`, f.SQL)

	f, err = OrderBy(sqlgen.SQLite, []string{"age", "name"}, "")
	require.NoError(t, err)
	assert.Equal(t, `"age" ASC, "name" ASC`, f.SQL)

	f, err = OrderBy(sqlgen.SQLite, []string{"age"}, "desc")
	require.NoError(t, err)
	assert.Equal(t, `"age" DESC`, f.SQL)
}

func TestOrderBy_EmptyListRejected(t *testing.T) {
	_, err := OrderBy(sqlgen.SQLite, nil, "asc")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestOrderBy_UnknownDirectionRejected(t *testing.T) {
	_, err := OrderBy(sqlgen.SQLite, []string{"age"}, "sideways")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
