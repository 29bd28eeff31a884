package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLiteClient manages the connection to SQLite
type SQLiteClient struct {
	sqlConn
	db *sql.DB
}

// NewSQLiteClient creates a new SQLite client. The database file is created
// if it does not exist.
func NewSQLiteClient(ctx context.Context, path string) (*SQLiteClient, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One handle per file keeps writes and schema reads on the same connection
	db.SetMaxOpenConns(1)

	// Test the connection
	if err := db.PingContext(ctx); err != nil {
		return nil, errors.Join(fmt.Errorf("failed to ping database: %w", err), db.Close())
	}

	return &SQLiteClient{sqlConn: newSQLConn(db, sqliteDriverName), db: db}, nil
}

// Close closes the database connection
func (c *SQLiteClient) Close(_ context.Context) error {
	return c.db.Close()
}

// GetDB returns the underlying database connection
func (c *SQLiteClient) GetDB() *sql.DB {
	return c.db
}

// DriverType reports which SQLite driver was compiled in: "purego" or "cgo".
func DriverType() string {
	return sqliteDriverType
}
