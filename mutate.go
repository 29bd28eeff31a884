package sqldal

import (
	"context"

	"github.com/tordrt/sqldal/internal/query"
	"github.com/tordrt/sqldal/internal/syncutil"
)

// Update sets the columns in values on every row of table matching all
// criteria and returns the number of rows affected.
//
// At least one criterion is required; without one Update fails with
// *MissingCriteriaError rather than rewrite the whole table.
func (d *DAL) Update(ctx context.Context, table string, values Record, criteria ...Criterion) (int64, error) {
	return syncutil.Locked(&d.mu, func() (int64, error) {
		t, err := d.table(table)
		if err != nil {
			return 0, err
		}
		if len(criteria) == 0 {
			return 0, &MissingCriteriaError{Op: "update", Table: t.Name}
		}

		columns, args, err := values.bind(t)
		if err != nil {
			return 0, err
		}
		if err := validateCriteria(t, criteria); err != nil {
			return 0, err
		}

		stmt, err := query.Update(d.conn.BindType(), t.Name, columns, args, criteria)
		if err != nil {
			return 0, err
		}

		res, err := d.exec(ctx, stmt)
		if err != nil {
			return 0, err
		}
		return res.RowsAffected, nil
	})
}

// Delete removes every row of table matching all criteria and returns the
// number of rows affected.
//
// At least one criterion is required; without one Delete fails with
// *MissingCriteriaError.
func (d *DAL) Delete(ctx context.Context, table string, criteria ...Criterion) (int64, error) {
	return syncutil.Locked(&d.mu, func() (int64, error) {
		t, err := d.table(table)
		if err != nil {
			return 0, err
		}
		if len(criteria) == 0 {
			return 0, &MissingCriteriaError{Op: "delete", Table: t.Name}
		}
		if err := validateCriteria(t, criteria); err != nil {
			return 0, err
		}

		stmt, err := query.Delete(d.conn.BindType(), t.Name, criteria)
		if err != nil {
			return 0, err
		}

		res, err := d.exec(ctx, stmt)
		if err != nil {
			return 0, err
		}
		return res.RowsAffected, nil
	})
}
