package sqldal

import (
	"context"
	"strings"

	"github.com/tordrt/sqldal/internal/query"
	"github.com/tordrt/sqldal/internal/syncutil"
)

// CreateTable creates table with fields in the order given and refreshes the
// schema cache.
//
// Table and field names must be plain identifiers, and lower case on
// PostgreSQL. Field types and options are copied into the statement unchecked:
// never pass untrusted input.
func (d *DAL) CreateTable(ctx context.Context, table string, fields []FieldSpec) error {
	return syncutil.Do(&d.mu, func() error {
		if d.schema.Load().HasTable(table) {
			return &TableExistsError{Table: table}
		}
		if err := d.checkIdentifier(table); err != nil {
			return err
		}
		if len(fields) == 0 {
			return &NoFieldsError{Table: table}
		}

		defs := make([]query.ColumnDef, len(fields))
		for i, f := range fields {
			if err := d.checkIdentifier(f.Name); err != nil {
				return err
			}
			defs[i] = query.ColumnDef{Name: f.Name, Type: f.Type, Options: f.Options}
		}

		if _, err := d.exec(ctx, query.CreateTable(table, defs)); err != nil {
			return err
		}
		return d.loadSchema(ctx)
	})
}

// DropTable drops table and refreshes the schema cache. The table is not
// checked against the cache first; the engine reports a missing table.
func (d *DAL) DropTable(ctx context.Context, table string) error {
	return syncutil.Do(&d.mu, func() error {
		if err := d.checkIdentifier(table); err != nil {
			return err
		}

		if _, err := d.exec(ctx, query.DropTable(table)); err != nil {
			return err
		}
		return d.loadSchema(ctx)
	})
}

// checkIdentifier rejects names that are not plain identifiers, and mixed-case
// names on engines that fold unquoted identifiers to lower case.
func (d *DAL) checkIdentifier(name string) error {
	if !query.ValidIdentifier(name) {
		return &IdentifierError{Name: name}
	}
	if d.foldsToLower && name != strings.ToLower(name) {
		return &IdentifierError{Name: name, Reason: "must be lower case on " + d.driver}
	}
	return nil
}
