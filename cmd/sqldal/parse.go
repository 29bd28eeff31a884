package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tordrt/sqldal"
	"github.com/tordrt/sqldal/internal/schema"
)

// parseValue converts a command-line value into int64, float64, nil or string.
// NULL (any case) becomes nil. Quoted values are always strings.
func parseValue(s string) any {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	if strings.EqualFold(s, "NULL") {
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// nextToken splits s at the first run of whitespace
func nextToken(s string) (token, rest string) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return s[:i], strings.TrimSpace(s[i:])
	}
	return s, ""
}

// parseWhere parses "column operator value". For IN the value is a
// comma-separated list.
func parseWhere(s string) (sqldal.Criterion, error) {
	column, rest := nextToken(s)
	opStr, value := nextToken(rest)
	if column == "" || opStr == "" || value == "" {
		return sqldal.Criterion{}, fmt.Errorf("invalid --where %q (expected \"column operator value\")", s)
	}

	op, err := sqldal.ParseOperator(opStr)
	if err != nil {
		return sqldal.Criterion{}, err
	}

	if op == sqldal.In {
		parts := strings.Split(value, ",")
		list := make([]any, 0, len(parts))
		for _, p := range parts {
			list = append(list, parseValue(strings.TrimSpace(p)))
		}
		return sqldal.Where(column, op, list), nil
	}

	return sqldal.Where(column, op, parseValue(value)), nil
}

func parseWheres(exprs []string) ([]sqldal.Criterion, error) {
	criteria := make([]sqldal.Criterion, 0, len(exprs))
	for _, e := range exprs {
		c, err := parseWhere(e)
		if err != nil {
			return nil, err
		}
		criteria = append(criteria, c)
	}
	return criteria, nil
}

// parseAssignments parses "column=value" pairs into a Record
func parseAssignments(pairs []string) (sqldal.Record, error) {
	rec := make(sqldal.Record, len(pairs))
	for _, p := range pairs {
		col, value, ok := strings.Cut(p, "=")
		col = strings.TrimSpace(col)
		if !ok || col == "" {
			return nil, fmt.Errorf("invalid --set %q (expected column=value)", p)
		}
		if _, dup := rec[col]; dup {
			return nil, fmt.Errorf("column %s set more than once", col)
		}
		rec[col] = parseValue(value)
	}
	return rec, nil
}

func parseValueList(values []string) sqldal.Values {
	out := make(sqldal.Values, len(values))
	for i, v := range values {
		out[i] = parseValue(strings.TrimSpace(v))
	}
	return out
}

// parseField parses "name type [options...]"
func parseField(s string) (sqldal.FieldSpec, error) {
	name, rest := nextToken(s)
	typ, options := nextToken(rest)
	if name == "" || typ == "" {
		return sqldal.FieldSpec{}, fmt.Errorf("invalid --field %q (expected \"name type [options]\")", s)
	}
	return sqldal.FieldSpec{Name: name, Type: typ, Options: options}, nil
}

// parseTableList splits a comma-separated table list
func parseTableList(tablesStr string) []string {
	if tablesStr == "" {
		return nil
	}
	tableList := strings.Split(tablesStr, ",")
	for i, t := range tableList {
		tableList[i] = strings.TrimSpace(t)
	}
	return tableList
}

// filterTables returns a new schema without the excluded tables. The input is
// not modified.
func filterTables(s *schema.Schema, exclude []string) *schema.Schema {
	excludeSet := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		excludeSet[name] = true
	}

	tables := make([]schema.Table, 0, len(s.Tables))
	for _, t := range s.Tables {
		if !excludeSet[t.Name] {
			tables = append(tables, t)
		}
	}
	return schema.New(tables)
}
