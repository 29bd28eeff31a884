package sqldal

import (
	"context"

	"github.com/tordrt/sqldal/internal/query"
	"github.com/tordrt/sqldal/internal/schema"
)

// Get returns the rows of table whose id field equals id.
//
// The id field defaults to "id" and can be changed with WithIDField.
// WithFields restricts the selected columns; the id filter still applies.
// WithCriteria adds further conditions after the id filter. Identifiers are not
// assumed unique, so several rows may be returned.
func (d *DAL) Get(ctx context.Context, table string, id any, opts ...QueryOption) (*ResultSet, error) {
	t, err := d.table(table)
	if err != nil {
		return nil, err
	}

	o := buildQueryOptions(opts)
	criteria := append([]Criterion{Where(o.idField, Eq, id)}, o.criteria...)

	return d.selectRows(ctx, t, o.fields, criteria)
}

// Search returns the rows of table matching every criterion given with
// WithCriteria. Without criteria every row is returned. WithFields restricts
// the selected columns.
func (d *DAL) Search(ctx context.Context, table string, opts ...QueryOption) (*ResultSet, error) {
	t, err := d.table(table)
	if err != nil {
		return nil, err
	}

	o := buildQueryOptions(opts)
	return d.selectRows(ctx, t, o.fields, o.criteria)
}

func (d *DAL) selectRows(ctx context.Context, t *schema.Table, fields []string, criteria []Criterion) (*ResultSet, error) {
	if unknown := t.UnknownColumns(fields); len(unknown) > 0 {
		return nil, &UnknownColumnError{Table: t.Name, Columns: unknown}
	}
	if err := validateCriteria(t, criteria); err != nil {
		return nil, err
	}

	stmt, err := query.Select(d.conn.BindType(), t.Name, fields, criteria)
	if err != nil {
		return nil, err
	}

	return d.fetch(ctx, stmt)
}
