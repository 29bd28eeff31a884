package db

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jmoiron/sqlx"
)

// PostgresClient manages the connection to PostgreSQL.
// A pgx.Conn is not safe for concurrent use, so every use goes through mu.
type PostgresClient struct {
	mu   sync.Mutex
	conn *pgx.Conn
}

// NewPostgresClient creates a new PostgreSQL client
func NewPostgresClient(ctx context.Context, connString string) (*PostgresClient, error) {
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := conn.Ping(ctx); err != nil {
		return nil, errors.Join(fmt.Errorf("failed to ping database: %w", err), conn.Close(ctx))
	}

	return &PostgresClient{conn: conn}, nil
}

// Close closes the database connection
func (c *PostgresClient) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Close(ctx)
}

// Do runs fn with exclusive use of the underlying connection
func (c *PostgresClient) Do(fn func(conn *pgx.Conn) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn(c.conn)
}

// Exec executes a statement and reports rows affected.
// PostgreSQL has no last-insert-ID; use RETURNING for that.
func (c *PostgresClient) Exec(ctx context.Context, q string, args ...any) (ExecResult, error) {
	var result ExecResult
	err := c.Do(func(conn *pgx.Conn) error {
		tag, err := conn.Exec(ctx, q, args...)
		if err != nil {
			return err
		}
		result.RowsAffected = tag.RowsAffected()
		return nil
	})
	return result, err
}

// Query executes a query and reads every row into memory
func (c *PostgresClient) Query(ctx context.Context, q string, args ...any) (*Rows, error) {
	var result *Rows
	err := c.Do(func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		fields := rows.FieldDescriptions()
		result = &Rows{Columns: make([]string, len(fields))}
		for i, fd := range fields {
			result.Columns[i] = fd.Name
		}

		for rows.Next() {
			values, err := rows.Values()
			if err != nil {
				return err
			}
			result.Values = append(result.Values, values)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// BindType returns sqlx.DOLLAR
func (c *PostgresClient) BindType() int {
	return sqlx.BindType("pgx")
}
