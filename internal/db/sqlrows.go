package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
)

// sqlConn implements Conn on top of database/sql.
type sqlConn struct {
	dbx *sqlx.DB
}

func newSQLConn(db *sql.DB, driverName string) sqlConn {
	return sqlConn{dbx: sqlx.NewDb(db, driverName)}
}

// Exec executes a statement and reports rows affected and the last insert ID
func (c sqlConn) Exec(ctx context.Context, q string, args ...any) (ExecResult, error) {
	res, err := c.dbx.ExecContext(ctx, q, args...)
	if err != nil {
		return ExecResult{}, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return ExecResult{}, fmt.Errorf("failed to get rows affected: %w", err)
	}

	// Not every driver or statement reports an insert ID
	lastID, _ := res.LastInsertId()

	return ExecResult{RowsAffected: affected, LastInsertID: lastID}, nil
}

// Query executes a query and reads every row into memory
func (c sqlConn) Query(ctx context.Context, q string, args ...any) (*Rows, error) {
	rows, err := c.dbx.QueryxContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	result := &Rows{Columns: columns}
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, err
		}
		for i, v := range values {
			values[i] = normalizeValue(types[i].DatabaseTypeName(), v)
		}
		result.Values = append(result.Values, values)
	}

	return result, rows.Err()
}

// BindType returns the sqlx placeholder style of the underlying driver
func (c sqlConn) BindType() int {
	return sqlx.BindType(c.dbx.DriverName())
}

// normalizeValue converts raw bytes returned for textual or numeric columns
// into string, int64 or float64. Binary and unknown column types keep []byte.
func normalizeValue(typeName string, v any) any {
	b, ok := v.([]byte)
	if !ok {
		return v
	}

	t := strings.ToUpper(typeName)
	switch {
	case strings.Contains(t, "BLOB"), strings.Contains(t, "BINARY"), strings.Contains(t, "BIT"),
		strings.Contains(t, "POINT"), strings.Contains(t, "GEOM"), strings.Contains(t, "POLYGON"),
		strings.Contains(t, "LINESTRING"):
		return b
	case strings.Contains(t, "INT"):
		if n, err := strconv.ParseInt(string(b), 10, 64); err == nil {
			return n
		}
		return string(b)
	case strings.Contains(t, "FLOAT"), strings.Contains(t, "DOUBLE"), strings.Contains(t, "REAL"):
		if f, err := strconv.ParseFloat(string(b), 64); err == nil {
			return f
		}
		return string(b)
	case strings.Contains(t, "CHAR"), strings.Contains(t, "TEXT"), strings.Contains(t, "CLOB"),
		strings.Contains(t, "ENUM"), strings.Contains(t, "SET"), strings.Contains(t, "JSON"),
		strings.Contains(t, "DATE"), strings.Contains(t, "TIME"), strings.Contains(t, "YEAR"),
		strings.Contains(t, "DEC"), strings.Contains(t, "NUMERIC"):
		return string(b)
	default:
		return b
	}
}
