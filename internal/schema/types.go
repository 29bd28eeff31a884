package schema

import "sort"

// Schema represents a snapshot of a database schema.
// A Schema is never modified after it has been built.
type Schema struct {
	Tables []Table `json:"tables" yaml:"tables"`

	index map[string]int
}

// New builds a Schema with a name index over tables.
func New(tables []Table) *Schema {
	s := &Schema{Tables: tables, index: make(map[string]int, len(tables))}
	for i, t := range tables {
		s.index[t.Name] = i
	}
	return s
}

// Table returns the named table
func (s *Schema) Table(name string) (*Table, bool) {
	if s == nil {
		return nil, false
	}
	if s.index != nil {
		i, ok := s.index[name]
		if !ok {
			return nil, false
		}
		return &s.Tables[i], true
	}
	for i := range s.Tables {
		if s.Tables[i].Name == name {
			return &s.Tables[i], true
		}
	}
	return nil, false
}

// HasTable reports whether the schema contains the named table
func (s *Schema) HasTable(name string) bool {
	_, ok := s.Table(name)
	return ok
}

// TableNames returns table names in extraction order
func (s *Schema) TableNames() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.Tables))
	for _, t := range s.Tables {
		names = append(names, t.Name)
	}
	return names
}

// Table represents a database table
type Table struct {
	Name       string   `json:"name" yaml:"name"`
	Columns    []Column `json:"columns" yaml:"columns"`
	PrimaryKey []string `json:"primary_key,omitempty" yaml:"primary_key,omitempty"`
}

// Column represents a table column
type Column struct {
	Name         string  `json:"name" yaml:"name"`
	Type         string  `json:"type" yaml:"type"`
	Nullable     bool    `json:"nullable" yaml:"nullable"`
	DefaultValue *string `json:"default,omitempty" yaml:"default,omitempty"`
}

// ColumnNames returns the column names in declaration order
func (t *Table) ColumnNames() []string {
	names := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		names = append(names, c.Name)
	}
	return names
}

// HasColumn reports whether the table declares the named column
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// UnknownColumns returns every name not declared by the table, sorted and deduplicated.
func (t *Table) UnknownColumns(names []string) []string {
	seen := make(map[string]bool)
	var unknown []string
	for _, n := range names {
		if seen[n] || t.HasColumn(n) {
			continue
		}
		seen[n] = true
		unknown = append(unknown, n)
	}
	sort.Strings(unknown)
	return unknown
}

// IsPrimaryKey reports whether the column is part of the primary key
func (t *Table) IsPrimaryKey(name string) bool {
	for _, pk := range t.PrimaryKey {
		if pk == name {
			return true
		}
	}
	return false
}
