package query

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedOperator indicates an operator outside the allowed set.
	ErrUnsupportedOperator = errors.New("unsupported operator")

	// ErrInvalidIn indicates an IN criterion whose list cannot be bound,
	// such as an empty slice.
	ErrInvalidIn = errors.New("invalid IN list")
)

// Operator is a comparison operator allowed in a WHERE clause.
type Operator string

// Supported operators
const (
	Eq   Operator = "="
	Ne   Operator = "!="
	Lt   Operator = "<"
	Le   Operator = "<="
	Gt   Operator = ">"
	Ge   Operator = ">="
	Like Operator = "LIKE"
	In   Operator = "IN"
)

var operators = []Operator{Eq, Ne, Lt, Le, Gt, Ge, Like, In}

// Valid reports whether op is one of the supported operators
func (op Operator) Valid() bool {
	for _, o := range operators {
		if op == o {
			return true
		}
	}
	return false
}

// ParseOperator converts user input such as "like" or "<>" into an Operator.
func ParseOperator(s string) (Operator, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "<>" {
		return Ne, nil
	}
	op := Operator(s)
	if !op.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedOperator, s)
	}
	return op, nil
}

// Criterion is a single "column operator value" filter.
type Criterion struct {
	Column string
	Op     Operator
	Value  any
}

// Columns returns the column referenced by each criterion, in order.
func Columns(criteria []Criterion) []string {
	cols := make([]string, 0, len(criteria))
	for _, c := range criteria {
		cols = append(cols, c.Column)
	}
	return cols
}

// Check reports whether the criterion can be rendered: the operator must be
// supported and an IN list must not be empty.
func (c Criterion) Check() error {
	if !c.Op.Valid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedOperator, string(c.Op))
	}
	if c.Op == In {
		_, _, err := expandIn(c)
		return err
	}
	return nil
}
