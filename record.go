package sqldal

import (
	"github.com/tordrt/sqldal/internal/db"
	"github.com/tordrt/sqldal/internal/query"
	"github.com/tordrt/sqldal/internal/schema"
)

// Record maps column names to values. It is both a named insert/update input
// and the dictionary form of a result row.
type Record map[string]any

// Values is a positional insert input: one value per column, in the order the
// table declares its columns.
type Values []any

// InsertSource is the input to Insert. It is implemented only by Values and
// Record.
type InsertSource interface {
	bind(t *schema.Table) (columns []string, values []any, err error)
}

func (v Values) bind(t *schema.Table) ([]string, []any, error) {
	if len(v) != len(t.Columns) {
		return nil, nil, &ArityError{Table: t.Name, Want: len(t.Columns), Got: len(v)}
	}
	return t.ColumnNames(), []any(v), nil
}

// bind validates every key before returning columns in table order
func (r Record) bind(t *schema.Table) ([]string, []any, error) {
	if len(r) == 0 {
		return nil, nil, &EmptyRecordError{Table: t.Name}
	}

	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	if unknown := t.UnknownColumns(keys); len(unknown) > 0 {
		return nil, nil, &UnknownColumnError{Table: t.Name, Columns: unknown}
	}

	columns := make([]string, 0, len(r))
	values := make([]any, 0, len(r))
	for _, col := range t.Columns {
		if v, ok := r[col.Name]; ok {
			columns = append(columns, col.Name)
			values = append(values, v)
		}
	}
	return columns, values, nil
}

// ResultSet holds the rows returned by Get or Search.
// Rows gives positional access; Records gives dictionary access.
type ResultSet struct {
	Columns []string
	Rows    [][]any
}

func newResultSet(rows *db.Rows) *ResultSet {
	return &ResultSet{Columns: rows.Columns, Rows: rows.Values}
}

// Len returns the number of rows
func (rs *ResultSet) Len() int {
	return len(rs.Rows)
}

// Record returns row i keyed by column name
func (rs *ResultSet) Record(i int) Record {
	row := rs.Rows[i]
	rec := make(Record, len(rs.Columns))
	for j, col := range rs.Columns {
		rec[col] = row[j]
	}
	return rec
}

// Records returns every row keyed by column name. The result is never nil.
func (rs *ResultSet) Records() []Record {
	records := make([]Record, 0, len(rs.Rows))
	for i := range rs.Rows {
		records = append(records, rs.Record(i))
	}
	return records
}

// ExecResult reports rows affected and, where the engine supports it, the
// last inserted row ID.
type ExecResult = db.ExecResult

// FieldSpec describes one column for CreateTable. Type and Options are copied
// into the statement verbatim.
type FieldSpec struct {
	Name    string
	Type    string
	Options string
}

// Criterion is a "column operator value" filter. Criteria are combined with AND.
type Criterion = query.Criterion

// Operator is a supported comparison operator.
type Operator = query.Operator

// Supported operators
const (
	Eq   = query.Eq
	Ne   = query.Ne
	Lt   = query.Lt
	Le   = query.Le
	Gt   = query.Gt
	Ge   = query.Ge
	Like = query.Like
	In   = query.In
)

// Where builds a Criterion.
func Where(column string, op Operator, value any) Criterion {
	return Criterion{Column: column, Op: op, Value: value}
}

// ParseOperator converts user input such as "like" or "<>" into an Operator.
func ParseOperator(s string) (Operator, error) {
	op, err := query.ParseOperator(s)
	if err != nil {
		return "", &OperatorError{Op: s}
	}
	return op, nil
}

// QueryOption customises Get and Search.
type QueryOption func(*queryOptions)

type queryOptions struct {
	fields   []string
	criteria []Criterion
	idField  string
}

// WithFields restricts the selected columns.
func WithFields(fields ...string) QueryOption {
	return func(o *queryOptions) {
		o.fields = append(o.fields, fields...)
	}
}

// WithCriteria adds criteria, ANDed in the order given.
func WithCriteria(criteria ...Criterion) QueryOption {
	return func(o *queryOptions) {
		o.criteria = append(o.criteria, criteria...)
	}
}

// WithIDField sets the column Get matches the identifier against. Defaults to "id".
// Search ignores it.
func WithIDField(name string) QueryOption {
	return func(o *queryOptions) {
		o.idField = name
	}
}

func buildQueryOptions(opts []QueryOption) *queryOptions {
	o := &queryOptions{idField: "id"}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
