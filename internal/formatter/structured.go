package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/tordrt/sqldal/internal/schema"
)

// orderedRow marshals a row as a JSON object keyed by column, keeping column order
type orderedRow struct {
	columns []string
	values  []any
}

func (r orderedRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, fmt.Errorf("failed to encode column %s: %w", col, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// JSONFormatter writes schemas and rows as indented JSON
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

func (f *JSONFormatter) encode(v any) error {
	enc := json.NewEncoder(f.writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// Format writes the schema as a JSON document
func (f *JSONFormatter) Format(s *schema.Schema) error {
	return f.encode(s)
}

// FormatRows writes rows as a JSON array of objects
func (f *JSONFormatter) FormatRows(columns []string, rows [][]any) error {
	out := make([]orderedRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, orderedRow{columns: columns, values: row})
	}
	return f.encode(out)
}

// YAMLFormatter writes schemas and rows as YAML
type YAMLFormatter struct {
	writer io.Writer
}

// NewYAMLFormatter creates a new YAML formatter
func NewYAMLFormatter(w io.Writer) *YAMLFormatter {
	return &YAMLFormatter{writer: w}
}

func (f *YAMLFormatter) encode(v any) error {
	enc := yaml.NewEncoder(f.writer)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}

// Format writes the schema as a YAML document
func (f *YAMLFormatter) Format(s *schema.Schema) error {
	return f.encode(s)
}

// FormatRows writes rows as a YAML sequence of mappings in column order
func (f *YAMLFormatter) FormatRows(columns []string, rows [][]any) error {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, row := range rows {
		m := &yaml.Node{Kind: yaml.MappingNode}
		for i, col := range columns {
			var val yaml.Node
			if err := val.Encode(row[i]); err != nil {
				return fmt.Errorf("failed to encode column %s: %w", col, err)
			}
			m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: col}, &val)
		}
		seq.Content = append(seq.Content, m)
	}
	if len(seq.Content) == 0 {
		seq.Style = yaml.FlowStyle
	}
	return f.encode(seq)
}
