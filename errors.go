package sqldal

import (
	"fmt"
	"strings"
)

// UnknownTableError is returned when a table is not in the schema cache.
type UnknownTableError struct {
	Table string
}

func (e *UnknownTableError) Error() string {
	return fmt.Sprintf("table %s does not exist in database", e.Table)
}

// UnknownColumnError lists every supplied column missing from a table.
type UnknownColumnError struct {
	Table   string
	Columns []string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("columns not in table %s: %s", e.Table, strings.Join(e.Columns, ", "))
}

// ArityError is returned when a positional insert does not supply exactly one
// value per column.
type ArityError struct {
	Table string
	Want  int
	Got   int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("table %s has %d columns, %d values specified", e.Table, e.Want, e.Got)
}

// MissingCriteriaError is returned by Update and Delete when no criteria are
// given. Pass an explicit always-true criterion such as id > 0 to touch every row.
type MissingCriteriaError struct {
	Op    string
	Table string
}

func (e *MissingCriteriaError) Error() string {
	return fmt.Sprintf("%s on %s aborted: criteria not specified", e.Op, e.Table)
}

// ConnectionError is returned when the datastore cannot be opened or reached.
type ConnectionError struct {
	Driver string
	Err    error
}

func (e *ConnectionError) Error() string {
	if e.Driver == "" {
		return fmt.Sprintf("failed to connect: %v", e.Err)
	}
	return fmt.Sprintf("failed to connect to %s: %v", e.Driver, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// TableExistsError is returned by CreateTable for a table already in the cache.
type TableExistsError struct {
	Table string
}

func (e *TableExistsError) Error() string {
	return fmt.Sprintf("table %s already exists in database", e.Table)
}

// IdentifierError is returned for a table or column name that is not a plain
// SQL identifier, or that PostgreSQL would fold to a different name.
type IdentifierError struct {
	Name   string
	Reason string
}

func (e *IdentifierError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid identifier %q: %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("invalid identifier %q", e.Name)
}

// OperatorError is returned for a comparison operator outside the supported set.
type OperatorError struct {
	Op string
}

func (e *OperatorError) Error() string {
	return fmt.Sprintf("unsupported operator %q", e.Op)
}

// CriterionError is returned for a criterion whose value cannot be bound,
// such as an IN with an empty list.
type CriterionError struct {
	Column string
	Err    error
}

func (e *CriterionError) Error() string {
	return fmt.Sprintf("invalid criterion on %s: %v", e.Column, e.Err)
}

func (e *CriterionError) Unwrap() error {
	return e.Err
}

// EmptyRecordError is returned when a Record or a nil InsertSource supplies no
// columns.
type EmptyRecordError struct {
	Table string
}

func (e *EmptyRecordError) Error() string {
	return fmt.Sprintf("no columns specified for table %s", e.Table)
}

// NoFieldsError is returned by CreateTable without any field descriptors.
type NoFieldsError struct {
	Table string
}

func (e *NoFieldsError) Error() string {
	return fmt.Sprintf("no fields specified for table %s", e.Table)
}
