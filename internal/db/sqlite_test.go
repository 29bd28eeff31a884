package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteClient(t *testing.T) *SQLiteClient {
	t.Helper()

	ctx := context.Background()
	client, err := NewSQLiteClient(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "failed to open SQLite")
	t.Cleanup(func() { _ = client.Close(ctx) })

	stmts := []string{
		`CREATE TABLE users (id INTEGER PRIMARY KEY, username TEXT NOT NULL, status TEXT DEFAULT 'active')`,
		`CREATE TABLE order_items (order_id INTEGER, product_id INTEGER, qty REAL, PRIMARY KEY (product_id, order_id))`,
	}
	for _, stmt := range stmts {
		_, err := client.Exec(ctx, stmt)
		require.NoError(t, err)
	}

	return client
}

func TestSQLiteExtraction(t *testing.T) {
	ctx := context.Background()
	client := newTestSQLiteClient(t)

	s, err := NewSQLiteExtractor(client).ExtractSchema(ctx, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"order_items", "users"}, s.TableNames())

	users, ok := s.Table("users")
	require.True(t, ok)
	assert.Equal(t, []string{"id", "username", "status"}, users.ColumnNames())
	assert.Equal(t, []string{"id"}, users.PrimaryKey)
	assert.Equal(t, "TEXT", users.Columns[1].Type)
	assert.False(t, users.Columns[1].Nullable)
	require.NotNil(t, users.Columns[2].DefaultValue)
	assert.Equal(t, "'active'", *users.Columns[2].DefaultValue)

	items, ok := s.Table("order_items")
	require.True(t, ok)
	assert.Equal(t, []string{"product_id", "order_id"}, items.PrimaryKey)
}

func TestSQLiteInternalTablesHidden(t *testing.T) {
	ctx := context.Background()
	client := newTestSQLiteClient(t)

	for _, stmt := range []string{
		`CREATE TABLE sqlitex (id INTEGER PRIMARY KEY)`,
		`CREATE TABLE things (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT)`,
	} {
		_, err := client.Exec(ctx, stmt)
		require.NoError(t, err)
	}

	s, err := NewSQLiteExtractor(client).ExtractSchema(ctx, nil)
	require.NoError(t, err)

	// AUTOINCREMENT creates sqlite_sequence, which must stay hidden
	assert.Equal(t, []string{"order_items", "sqlitex", "things", "users"}, s.TableNames())
}

func TestSQLiteSpecificTables(t *testing.T) {
	ctx := context.Background()
	client := newTestSQLiteClient(t)
	extractor := NewSQLiteExtractor(client)

	s, err := extractor.ExtractSchema(ctx, []string{"users"})
	require.NoError(t, err)
	assert.Equal(t, []string{"users"}, s.TableNames())

	_, err = extractor.ExtractSchema(ctx, []string{"missing"})
	assert.Error(t, err)
}

func TestSQLiteExecAndQuery(t *testing.T) {
	ctx := context.Background()
	client := newTestSQLiteClient(t)

	res, err := client.Exec(ctx, "INSERT INTO users (id, username) VALUES (?, ?)", 7, "ada")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.RowsAffected)
	assert.Equal(t, int64(7), res.LastInsertID)

	rows, err := client.Query(ctx, "SELECT id, username, status FROM users WHERE id = ?", 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "username", "status"}, rows.Columns)
	require.Len(t, rows.Values, 1)
	assert.Equal(t, []any{int64(7), "ada", "active"}, rows.Values[0])

	empty, err := client.Query(ctx, "SELECT * FROM users WHERE id = ?", 99)
	require.NoError(t, err)
	assert.Empty(t, empty.Values)

	assert.Equal(t, sqlx.QUESTION, client.BindType())
}

func TestSQLiteOpenFailure(t *testing.T) {
	_, err := NewSQLiteClient(context.Background(), filepath.Join(t.TempDir(), "missing", "dir", "x.db"))
	assert.Error(t, err)
}

func TestDriverType(t *testing.T) {
	assert.Contains(t, []string{"purego", "cgo"}, DriverType())
}

func TestNormalizeValue(t *testing.T) {
	tests := []struct {
		name     string
		typeName string
		input    any
		want     any
	}{
		{name: "non bytes untouched", typeName: "INTEGER", input: int64(3), want: int64(3)},
		{name: "varchar", typeName: "VARCHAR", input: []byte("abc"), want: "abc"},
		{name: "bigint", typeName: "BIGINT", input: []byte("42"), want: int64(42)},
		{name: "double", typeName: "DOUBLE", input: []byte("1.5"), want: 1.5},
		{name: "decimal stays exact", typeName: "DECIMAL", input: []byte("1.10"), want: "1.10"},
		{name: "blob", typeName: "BLOB", input: []byte{0x01}, want: []byte{0x01}},
		{name: "varbinary", typeName: "VARBINARY", input: []byte("x"), want: []byte("x")},
		{name: "point is binary", typeName: "POINT", input: []byte{0x01, 0x02}, want: []byte{0x01, 0x02}},
		{name: "multipoint is binary", typeName: "MULTIPOINT", input: []byte("12"), want: []byte("12")},
		{name: "geometry is binary", typeName: "GEOMETRY", input: []byte("12"), want: []byte("12")},
		{name: "unknown type", typeName: "", input: []byte("x"), want: []byte("x")},
		{name: "nil", typeName: "TEXT", input: nil, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeValue(tt.typeName, tt.input))
		})
	}
}

func TestParseDatabaseName(t *testing.T) {
	name, err := ParseDatabaseName("user:pass@tcp(localhost:3306)/shop?parseTime=true")
	require.NoError(t, err)
	assert.Equal(t, "shop", name)

	_, err = ParseDatabaseName("user:pass@tcp(localhost:3306)/")
	assert.Error(t, err)
}
