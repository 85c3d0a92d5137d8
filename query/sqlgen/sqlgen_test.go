package sqlgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteIdentifier(t *testing.T) {
	assert.Equal(t, `"users"`, QuoteIdentifier(SQLite, "users"))
	assert.Equal(t, `"users"`, QuoteIdentifier(Postgres, "users"))
	assert.Equal(t, "`users`", QuoteIdentifier(MySQL, "users"))

	// Embedded quotes are doubled, not stripped.
	assert.Equal(t, `"we""ird"`, QuoteIdentifier(SQLite, `we"ird`))
	assert.Equal(t, "`we``ird`", QuoteIdentifier(MySQL, "we`ird"))
}

func TestRebind(t *testing.T) {
	sql := "SELECT * FROM t WHERE a = ? AND b = ?"

	assert.Equal(t, sql, Rebind(SQLite, sql))
	assert.Equal(t, sql, Rebind(MySQL, sql))
	assert.Equal(t, "SELECT * FROM t WHERE a = $1 AND b = $2", Rebind(Postgres, sql))
}

func TestRebind_SkipsStringLiterals(t *testing.T) {
	sql := "SELECT * FROM t WHERE a = '?' AND b = ?"
	assert.Equal(t, "SELECT * FROM t WHERE a = '?' AND b = $1", Rebind(Postgres, sql))

	// Doubled-quote escapes stay inside the literal.
	sql = "SELECT * FROM t WHERE a = 'it''s ?' AND b = ?"
	assert.Equal(t, "SELECT * FROM t WHERE a = 'it''s ?' AND b = $1", Rebind(Postgres, sql))
}

func TestJoin(t *testing.T) {
	joined := Join(" AND ", Raw("a = ?", 1), Raw("b = ?", 2))
	assert.Equal(t, "a = ? AND b = ?", joined.SQL)
	assert.Equal(t, []interface{}{1, 2}, joined.Args)

	// Empty fragments are skipped.
	joined = Join(", ", Raw("a"), Fragment{}, Raw("b"))
	assert.Equal(t, "a, b", joined.SQL)
}

func TestAppend(t *testing.T) {
	f := Raw("a = ?", 1).Append(" LIMIT ?", 5)
	assert.Equal(t, "a = ? LIMIT ?", f.SQL)
	assert.Equal(t, []interface{}{1, 5}, f.Args)
}

func TestAppendDoesNotAliasArgs(t *testing.T) {
	base := Raw("a = ?", 1)
	one := base.Append(" AND b = ?", 2)
	two := base.Append(" AND c = ?", 3)

	assert.Equal(t, []interface{}{1, 2}, one.Args)
	assert.Equal(t, []interface{}{1, 3}, two.Args)
}

func TestBind(t *testing.T) {
	f := Bind(42)
	assert.Equal(t, "?", f.SQL)
	assert.Equal(t, []interface{}{42}, f.Args)
}

func TestTrue(t *testing.T) {
	f := True()
	assert.Equal(t, "1 = 1", f.SQL)
	assert.Empty(t, f.Args)
}
