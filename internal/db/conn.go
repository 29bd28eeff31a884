package db

import (
	"context"

	"github.com/tordrt/sqldal/internal/schema"
)

// Conn is the capability set the data-access layer needs from a datastore.
type Conn interface {
	// Exec runs a statement that returns no rows and commits it.
	Exec(ctx context.Context, query string, args ...any) (ExecResult, error)

	// Query runs a statement and materialises every returned row.
	Query(ctx context.Context, query string, args ...any) (*Rows, error)

	// BindType reports how bind parameters are spelled, as an sqlx bind type.
	BindType() int

	// Close closes the database connection
	Close(ctx context.Context) error
}

// Extractor loads table and column metadata from a datastore catalog.
type Extractor interface {
	// ExtractSchema extracts the schema for specified tables.
	// If tables is empty, extracts all tables.
	ExtractSchema(ctx context.Context, tables []string) (*schema.Schema, error)
}

// ExecResult reports the outcome of a statement that returns no rows.
type ExecResult struct {
	// RowsAffected is the number of rows affected by the statement.
	RowsAffected int64
	// LastInsertID is the ID of the last inserted row, when the driver supports it.
	LastInsertID int64
}

// Rows is a fully read result set.
type Rows struct {
	Columns []string
	Values  [][]any
}
