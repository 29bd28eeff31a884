// Package query assembles parameterized SQL statements.
//
// Statements are written with "?" markers and rebound to the connection's
// sqlx bind type (sqlx.QUESTION, sqlx.DOLLAR, ...) as the last step. IN lists
// are expanded with sqlx.In.
//
// Identifiers passed to the builders are interpolated into the SQL text as-is;
// callers must validate them against the schema first. Values are always bound.
package query

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Statement is SQL text plus its bound arguments.
type Statement struct {
	SQL  string
	Args []any
}

// ColumnDef describes one column of a CREATE TABLE statement.
type ColumnDef struct {
	Name    string
	Type    string
	Options string
}

// params collects bind arguments in marker order
type params struct {
	args []any
}

func (p *params) add(v any) string {
	p.args = append(p.args, v)
	return "?"
}

func (p *params) statement(bindType int, sql string) Statement {
	return Statement{SQL: sqlx.Rebind(bindType, sql), Args: p.args}
}

// Insert builds INSERT INTO table (cols) VALUES (...).
func Insert(bindType int, table string, columns []string, values []any) (Statement, error) {
	if len(columns) != len(values) {
		return Statement{}, fmt.Errorf("%d columns specified, %d values specified", len(columns), len(values))
	}

	p := &params{}
	marks := make([]string, len(values))
	for i, v := range values {
		marks[i] = p.add(v)
	}

	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(columns, ", "),
		strings.Join(marks, ", "))
	return p.statement(bindType, sql), nil
}

// Select builds SELECT fields FROM table [WHERE ...]. No fields selects *.
func Select(bindType int, table string, fields []string, criteria []Criterion) (Statement, error) {
	cols := "*"
	if len(fields) > 0 {
		cols = strings.Join(fields, ", ")
	}

	p := &params{}
	sql := fmt.Sprintf("SELECT %s FROM %s", cols, table)

	if len(criteria) > 0 {
		where, err := p.where(criteria)
		if err != nil {
			return Statement{}, err
		}
		sql += " WHERE " + where
	}

	return p.statement(bindType, sql), nil
}

// Update builds UPDATE table SET ... WHERE .... SET values bind before criteria values.
func Update(bindType int, table string, columns []string, values []any, criteria []Criterion) (Statement, error) {
	if len(columns) != len(values) {
		return Statement{}, fmt.Errorf("%d columns specified, %d values specified", len(columns), len(values))
	}
	if len(criteria) == 0 {
		return Statement{}, fmt.Errorf("update of %s requires criteria", table)
	}

	p := &params{}
	sets := make([]string, len(columns))
	for i, col := range columns {
		sets[i] = fmt.Sprintf("%s = %s", col, p.add(values[i]))
	}

	where, err := p.where(criteria)
	if err != nil {
		return Statement{}, err
	}

	sql := fmt.Sprintf("UPDATE %s SET %s WHERE %s", table, strings.Join(sets, ", "), where)
	return p.statement(bindType, sql), nil
}

// Delete builds DELETE FROM table WHERE ....
func Delete(bindType int, table string, criteria []Criterion) (Statement, error) {
	if len(criteria) == 0 {
		return Statement{}, fmt.Errorf("delete from %s requires criteria", table)
	}

	p := &params{}
	where, err := p.where(criteria)
	if err != nil {
		return Statement{}, err
	}

	return p.statement(bindType, fmt.Sprintf("DELETE FROM %s WHERE %s", table, where)), nil
}

// CreateTable builds CREATE TABLE table (col type [options], ...) in definition order.
func CreateTable(table string, defs []ColumnDef) Statement {
	cols := make([]string, len(defs))
	for i, def := range defs {
		col := def.Name + " " + def.Type
		if def.Options != "" {
			col += " " + def.Options
		}
		cols[i] = col
	}
	return Statement{SQL: fmt.Sprintf("CREATE TABLE %s (%s)", table, strings.Join(cols, ", "))}
}

// DropTable builds DROP TABLE table.
func DropTable(table string) Statement {
	return Statement{SQL: "DROP TABLE " + table}
}

// where renders criteria joined with AND, in order
func (p *params) where(criteria []Criterion) (string, error) {
	conds := make([]string, 0, len(criteria))
	for _, c := range criteria {
		if !c.Op.Valid() {
			return "", fmt.Errorf("%w: %q", ErrUnsupportedOperator, string(c.Op))
		}

		if c.Op != In {
			conds = append(conds, fmt.Sprintf("%s %s %s", c.Column, c.Op, p.add(c.Value)))
			continue
		}

		cond, args, err := expandIn(c)
		if err != nil {
			return "", err
		}
		conds = append(conds, cond)
		p.args = append(p.args, args...)
	}
	return strings.Join(conds, " AND "), nil
}

// expandIn renders "column IN (?, ?, ...)" with one marker per list element.
// A non-slice value (including []byte) binds as a single element.
func expandIn(c Criterion) (string, []any, error) {
	cond, args, err := sqlx.In(c.Column+" IN (?)", c.Value)
	if err != nil {
		return "", nil, fmt.Errorf("criterion on %s: %w: %v", c.Column, ErrInvalidIn, err)
	}
	return cond, args, nil
}
