package typegen

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	script := `
		CREATE TABLE people (
			id INTEGER PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			bio TEXT
		);
	`

	decl, err := Generate(context.Background(), script, Options{Name: "DB"})
	require.NoError(t, err)

	expected := `interface DB {
  people: {
    id: number;
    name: string;
    bio: string | null;
  };
}
`
	assert.Equal(t, expected, decl)
}

func TestGenerate_DefaultNameAndLexicographicTables(t *testing.T) {
	script := `
		CREATE TABLE zebra (id INTEGER PRIMARY KEY);
		CREATE TABLE apple (id INTEGER PRIMARY KEY);
	`

	decl, err := Generate(context.Background(), script, Options{})
	require.NoError(t, err)

	assert.Contains(t, decl, "interface Tables {")
	assert.Less(t, strings.Index(decl, "apple"), strings.Index(decl, "zebra"))
}

func TestGenerate_ExplicitTableList(t *testing.T) {
	script := `
		CREATE TABLE apple (id INTEGER PRIMARY KEY);
		CREATE TABLE zebra (id INTEGER PRIMARY KEY);
	`

	// Explicit lists keep the given order and can omit tables.
	decl, err := Generate(context.Background(), script, Options{
		TableNames: []string{"zebra"},
	})
	require.NoError(t, err)
	assert.Contains(t, decl, "zebra")
	assert.NotContains(t, decl, "apple")

	decl, err = Generate(context.Background(), script, Options{
		TableNames: []string{"zebra", "apple"},
	})
	require.NoError(t, err)
	assert.Less(t, strings.Index(decl, "zebra"), strings.Index(decl, "apple"))
}

func TestGenerate_UnknownTable(t *testing.T) {
	script := `CREATE TABLE apple (id INTEGER PRIMARY KEY);`

	_, err := Generate(context.Background(), script, Options{
		TableNames: []string{"missing"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such table")
}

func TestGenerate_BadStatement(t *testing.T) {
	_, err := Generate(context.Background(), "CREATE GIBBERISH;", Options{})
	require.Error(t, err)
}

func TestColumnType_NumericHeuristic(t *testing.T) {
	cases := []struct {
		decl     string
		expected string
	}{
		{"INTEGER", "number"},
		{"BIGINT", "number"},
		{"REAL", "number"},
		{"DOUBLE PRECISION", "number"},
		{"FLOAT", "number"},
		{"BOOLEAN", "number"},
		{"BIT(1)", "number"},
		{"TEXT", "string"},
		{"VARCHAR(255)", "string"},
		// The heuristic is a coarse substring match; DECIMAL and
		// NUMERIC fall through to string.
		{"DECIMAL(10,2)", "string"},
		{"DATETIME", "string"},
	}

	for _, tc := range cases {
		got := columnType(ColumnSchema{DeclType: tc.decl, NotNull: true})
		assert.Equal(t, tc.expected, got, "declared type %s", tc.decl)
	}
}

func TestColumnType_Nullability(t *testing.T) {
	// Plain column: nullable.
	assert.Equal(t, "string | null", columnType(ColumnSchema{DeclType: "TEXT"}))
	// NOT NULL column: non-nullable.
	assert.Equal(t, "string", columnType(ColumnSchema{DeclType: "TEXT", NotNull: true}))
	// Primary keys are always non-nullable, even without NOT NULL.
	assert.Equal(t, "string", columnType(ColumnSchema{DeclType: "TEXT", PrimaryKey: true}))
}

func TestGenerate_PrimaryKeyNeverNullable(t *testing.T) {
	// SQLite allows a nullable TEXT primary key; the declaration
	// still treats it as non-nullable.
	script := `CREATE TABLE t (code TEXT PRIMARY KEY, note TEXT);`

	decl, err := Generate(context.Background(), script, Options{})
	require.NoError(t, err)
	assert.Contains(t, decl, "code: string;")
	assert.Contains(t, decl, "note: string | null;")
}

func TestSplitStatements(t *testing.T) {
	statements := SplitStatements("CREATE TABLE a (x INT);\n\nCREATE TABLE b (y INT);\n;")
	require.Len(t, statements, 2)
	assert.Equal(t, "CREATE TABLE a (x INT)", statements[0])
	assert.Equal(t, "CREATE TABLE b (y INT)", statements[1])

	assert.Empty(t, SplitStatements("  \n  "))
}
