package formatter

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/tordrt/sqldal/internal/schema"
)

// TextFormatter formats schema as compact text and rows as aligned columns
type TextFormatter struct {
	writer io.Writer
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(w io.Writer) *TextFormatter {
	return &TextFormatter{writer: w}
}

// Format writes the schema in compact text format
func (f *TextFormatter) Format(s *schema.Schema) error {
	for i, table := range s.Tables {
		if i > 0 {
			_, _ = fmt.Fprintln(f.writer) // Blank line between tables
		}
		f.formatTable(table)
	}
	return nil
}

func (f *TextFormatter) formatTable(table schema.Table) {
	pkStr := ""
	if len(table.PrimaryKey) > 0 {
		pkStr = fmt.Sprintf(" (PK: %s)", strings.Join(table.PrimaryKey, ", "))
	}
	_, _ = fmt.Fprintf(f.writer, "TABLE %s%s\n", table.Name, pkStr)

	for _, col := range table.Columns {
		_, _ = fmt.Fprintf(f.writer, "  %s\n", formatColumn(col))
	}
}

func formatColumn(col schema.Column) string {
	parts := []string{col.Name + ":", col.Type}

	if !col.Nullable {
		parts = append(parts, "NOT NULL")
	}
	if col.DefaultValue != nil {
		parts = append(parts, fmt.Sprintf("DEFAULT %s", *col.DefaultValue))
	}

	return strings.Join(parts, " ")
}

// FormatRows writes a header line, a separator and one aligned line per row
func (f *TextFormatter) FormatRows(columns []string, rows [][]any) error {
	tw := tabwriter.NewWriter(f.writer, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(tw, strings.Join(columns, "\t"))

	sep := make([]string, len(columns))
	for i, c := range columns {
		sep[i] = strings.Repeat("-", len(c))
	}
	_, _ = fmt.Fprintln(tw, strings.Join(sep, "\t"))

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = cell(v)
		}
		_, _ = fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}

	_, err := fmt.Fprintln(f.writer, rowCount(len(rows)))
	return err
}
