package sqldal

import (
	"context"

	"github.com/tordrt/sqldal/internal/query"
	"github.com/tordrt/sqldal/internal/syncutil"
)

// Insert writes one row into table and returns the number of rows affected.
//
// src is either Values, bound to every column in declaration order, or a
// Record, which inserts only the columns it names. A Values of the wrong length
// fails with *ArityError; a Record naming unknown columns fails with
// *UnknownColumnError listing all of them. Nothing is written on failure.
func (d *DAL) Insert(ctx context.Context, table string, src InsertSource) (int64, error) {
	res, err := d.InsertWithID(ctx, table, src)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}

// InsertWithID is Insert but also reports the last inserted row ID where the
// engine supports it (SQLite, MySQL). Concurrent inserts are serialized, so the
// ID belongs to this call's row.
func (d *DAL) InsertWithID(ctx context.Context, table string, src InsertSource) (ExecResult, error) {
	return syncutil.Locked(&d.mu, func() (ExecResult, error) {
		t, err := d.table(table)
		if err != nil {
			return ExecResult{}, err
		}
		if src == nil {
			return ExecResult{}, &EmptyRecordError{Table: t.Name}
		}

		columns, values, err := src.bind(t)
		if err != nil {
			return ExecResult{}, err
		}

		stmt, err := query.Insert(d.conn.BindType(), t.Name, columns, values)
		if err != nil {
			return ExecResult{}, err
		}

		return d.exec(ctx, stmt)
	})
}
