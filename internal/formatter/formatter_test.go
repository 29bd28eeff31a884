package formatter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tordrt/sqldal/internal/schema"
)

func strPtr(s string) *string { return &s }

func testSchema() *schema.Schema {
	return schema.New([]schema.Table{
		{
			Name: "users",
			Columns: []schema.Column{
				{Name: "id", Type: "INTEGER"},
				{Name: "name", Type: "TEXT", Nullable: true},
				{Name: "status", Type: "TEXT", Nullable: true, DefaultValue: strPtr("'active'")},
			},
			PrimaryKey: []string{"id"},
		},
		{
			Name: "audit",
			Columns: []schema.Column{
				{Name: "event", Type: "TEXT", Nullable: true},
			},
		},
	})
}

var (
	testColumns = []string{"id", "name"}
	testRows    = [][]any{{int64(1), "alice"}, {int64(2), nil}}
)

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextFormatter(&buf).Format(testSchema()))

	want := `TABLE users (PK: id)
  id: INTEGER NOT NULL
  name: TEXT
  status: TEXT DEFAULT 'active'

TABLE audit
  event: TEXT
`
	assert.Equal(t, want, buf.String())
}

func TestTextFormatRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextFormatter(&buf).FormatRows(testColumns, testRows))

	want := "id  name\n" +
		"--  ----\n" +
		"1   alice\n" +
		"2   NULL\n" +
		"(2 rows)\n"
	assert.Equal(t, want, buf.String())
}

func TestMarkdownFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewMarkdownFormatter(&buf).Format(testSchema()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# Database Schema\n\n## users\n\n### Columns\n\n"))
	assert.Contains(t, out, "- **id:** INTEGER, PK, NOT NULL\n")
	assert.Contains(t, out, "- **name:** TEXT\n")
	assert.Contains(t, out, "- **status:** TEXT, DEFAULT 'active'\n")
	assert.Contains(t, out, "## audit\n")
}

func TestMarkdownFormatRows(t *testing.T) {
	var buf bytes.Buffer
	rows := append(testRows, []any{int64(3), "a|b"})
	require.NoError(t, NewMarkdownFormatter(&buf).FormatRows(testColumns, rows))

	want := "| id | name |\n" +
		"| --- | --- |\n" +
		"| 1 | alice |\n" +
		"| 2 | NULL |\n" +
		"| 3 | a\\|b |\n" +
		"\n(3 rows)\n"
	assert.Equal(t, want, buf.String())
}

func TestJSONFormatRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(&buf).FormatRows(testColumns, testRows))

	assert.JSONEq(t, `[{"id":1,"name":"alice"},{"id":2,"name":null}]`, buf.String())
	assert.Less(t, strings.Index(buf.String(), `"id"`), strings.Index(buf.String(), `"name"`))

	buf.Reset()
	require.NoError(t, NewJSONFormatter(&buf).FormatRows(testColumns, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestJSONFormatSchema(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(&buf).Format(testSchema()))

	var got schema.Schema
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, testSchema().Tables, got.Tables)
	assert.Contains(t, buf.String(), `"primary_key"`)
}

func TestYAMLFormatRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLFormatter(&buf).FormatRows(testColumns, testRows))

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []map[string]any{{"id": 1, "name": "alice"}, {"id": 2, "name": nil}}, got)
	assert.Less(t, strings.Index(buf.String(), "id:"), strings.Index(buf.String(), "name:"))

	buf.Reset()
	require.NoError(t, NewYAMLFormatter(&buf).FormatRows(testColumns, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestYAMLFormatSchema(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLFormatter(&buf).Format(testSchema()))

	var got schema.Schema
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, testSchema().Tables, got.Tables)
}

func TestNew(t *testing.T) {
	for _, format := range []string{"text", "markdown", "JSON", "yaml"} {
		f, err := New(format, &bytes.Buffer{})
		require.NoError(t, err, format)
		assert.NotNil(t, f)
	}

	_, err := New("xml", &bytes.Buffer{})
	assert.Error(t, err)
}

func TestCell(t *testing.T) {
	assert.Equal(t, "NULL", cell(nil))
	assert.Equal(t, "0xdead", cell([]byte{0xde, 0xad}))
	assert.Equal(t, "1.5", cell(1.5))
	assert.Equal(t, "x", cell("x"))
}

func TestMultiFileMarkdown(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, NewMultiFileFormatter(dir, FormatMarkdown).Format(testSchema()))

	overview, err := os.ReadFile(filepath.Join(dir, "_overview.md"))
	require.NoError(t, err)
	assert.Contains(t, string(overview), "# Schema Overview")
	// Tables are listed alphabetically
	assert.Less(t,
		strings.Index(string(overview), "- **audit** (1 columns)"),
		strings.Index(string(overview), "- **users** (3 columns, PK: id)"))

	users, err := os.ReadFile(filepath.Join(dir, "users.md"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(users), "## users\n"))
	assert.Contains(t, string(users), "- **id:** INTEGER, PK, NOT NULL")

	assert.FileExists(t, filepath.Join(dir, "audit.md"))
}

func TestMultiFileText(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewMultiFileFormatter(dir, FormatText).Format(testSchema()))

	users, err := os.ReadFile(filepath.Join(dir, "users.txt"))
	require.NoError(t, err)
	assert.Equal(t, "TABLE users (PK: id)\n  id: INTEGER NOT NULL\n  name: TEXT\n  status: TEXT DEFAULT 'active'\n", string(users))

	overview, err := os.ReadFile(filepath.Join(dir, "_overview.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(overview), "users (3 columns, PK: id)\n")
}

func TestMultiFileRejectsStructuredFormats(t *testing.T) {
	err := NewMultiFileFormatter(t.TempDir(), FormatJSON).Format(testSchema())
	assert.Error(t, err)
}
