//go:build integration
// +build integration

package integration

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/tordrt/sqldal"
	"github.com/tordrt/sqldal/internal/schema"
)

// uniqueTableName returns a table name unlikely to clash with earlier runs
func uniqueTableName(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano()%1_000_000_000)
}

// openDAL connects to url and drops the given tables when the test completes
func openDAL(t *testing.T, url string, opts *sqldal.Options, cleanup ...string) *sqldal.DAL {
	t.Helper()

	ctx := context.Background()
	d, err := sqldal.Open(ctx, url, opts)
	if err != nil {
		t.Fatalf("Failed to open DAL: %v", err)
	}

	t.Cleanup(func() {
		for _, table := range cleanup {
			_ = d.DropTable(ctx, table)
		}
		_ = d.Close(ctx)
	})
	return d
}

// verifyTablesExist checks that all expected tables are present in the schema
func verifyTablesExist(t *testing.T, s *schema.Schema, expectedTables []string) {
	t.Helper()

	for _, tableName := range expectedTables {
		if !s.HasTable(tableName) {
			t.Errorf("Expected table %s not found in schema", tableName)
		}
	}
}

// verifyColumns checks that a table declares exactly the expected columns in order
func verifyColumns(t *testing.T, table *schema.Table, expectedColumns []string) {
	t.Helper()

	got := table.ColumnNames()
	if len(got) != len(expectedColumns) {
		t.Errorf("Expected columns %v in %s table, got %v", expectedColumns, table.Name, got)
		return
	}
	for i, col := range expectedColumns {
		if got[i] != col {
			t.Errorf("Expected columns %v in %s table, got %v", expectedColumns, table.Name, got)
			return
		}
	}
}

// verifyPrimaryKey checks that a table has the expected primary key
func verifyPrimaryKey(t *testing.T, table *schema.Table, expectedPK []string) {
	t.Helper()

	if len(table.PrimaryKey) != len(expectedPK) {
		t.Errorf("Expected primary key %v, got %v", expectedPK, table.PrimaryKey)
		return
	}

	for i, pk := range expectedPK {
		if table.PrimaryKey[i] != pk {
			t.Errorf("Expected primary key %v, got %v", expectedPK, table.PrimaryKey)
			return
		}
	}
}

// asInt64 converts the integer types drivers return for INTEGER columns
func asInt64(t *testing.T, v any) int64 {
	t.Helper()

	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int:
		return int64(n)
	default:
		t.Fatalf("Expected integer value, got %T (%v)", v, v)
		return 0
	}
}

// runScenario exercises every DAL operation against a fresh table
func runScenario(t *testing.T, d *sqldal.DAL, table string) {
	t.Helper()
	ctx := context.Background()

	err := d.CreateTable(ctx, table, []sqldal.FieldSpec{
		{Name: "id", Type: "INTEGER", Options: "NOT NULL PRIMARY KEY"},
		{Name: "name", Type: "VARCHAR(64)"},
		{Name: "score", Type: "INTEGER"},
	})
	if err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}

	cached, ok := d.Schema().Table(table)
	if !ok {
		t.Fatalf("Created table %s missing from schema cache", table)
	}
	verifyColumns(t, cached, []string{"id", "name", "score"})
	verifyPrimaryKey(t, cached, []string{"id"})

	inserts := []sqldal.InsertSource{
		sqldal.Values{1, "alice", 10},
		sqldal.Values{2, "bob", 20},
		sqldal.Record{"id": 3, "name": "carol"},
	}
	for _, src := range inserts {
		n, err := d.Insert(ctx, table, src)
		if err != nil {
			t.Fatalf("Failed to insert: %v", err)
		}
		if n != 1 {
			t.Errorf("Expected 1 row inserted, got %d", n)
		}
	}

	var arityErr *sqldal.ArityError
	if _, err := d.Insert(ctx, table, sqldal.Values{4, "dave"}); !errors.As(err, &arityErr) {
		t.Errorf("Expected ArityError, got %v", err)
	}

	rs, err := d.Get(ctx, table, 1, sqldal.WithFields("name"))
	if err != nil {
		t.Fatalf("Failed to get row: %v", err)
	}
	if rs.Len() != 1 || rs.Record(0)["name"] != "alice" {
		t.Errorf("Expected alice, got %v", rs.Records())
	}

	rs, err = d.Search(ctx, table, sqldal.WithCriteria(
		sqldal.Where("id", sqldal.In, []int{1, 3}),
		sqldal.Where("name", sqldal.Like, "%a%"),
	))
	if err != nil {
		t.Fatalf("Failed to search: %v", err)
	}
	if rs.Len() != 2 {
		t.Errorf("Expected 2 rows, got %d", rs.Len())
	}
	for _, rec := range rs.Records() {
		if id := asInt64(t, rec["id"]); id != 1 && id != 3 {
			t.Errorf("Unexpected row %v", rec)
		}
	}

	n, err := d.Update(ctx, table, sqldal.Record{"score": 99}, sqldal.Where("score", sqldal.Ge, 10))
	if err != nil {
		t.Fatalf("Failed to update: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 rows updated, got %d", n)
	}

	var missing *sqldal.MissingCriteriaError
	if _, err := d.Delete(ctx, table); !errors.As(err, &missing) {
		t.Errorf("Expected MissingCriteriaError, got %v", err)
	}

	n, err = d.Delete(ctx, table, sqldal.Where("id", sqldal.Ne, 2))
	if err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 rows deleted, got %d", n)
	}

	rs, err = d.Search(ctx, table)
	if err != nil {
		t.Fatalf("Failed to search: %v", err)
	}
	if rs.Len() != 1 || asInt64(t, rs.Record(0)["score"]) != 99 {
		t.Errorf("Expected only bob with score 99, got %v", rs.Records())
	}

	if err := d.DropTable(ctx, table); err != nil {
		t.Fatalf("Failed to drop table: %v", err)
	}
	if d.Schema().HasTable(table) {
		t.Errorf("Dropped table %s still in schema cache", table)
	}
}
