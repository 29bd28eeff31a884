package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/tordrt/sqldal/internal/schema"
)

// MarkdownFormatter formats schema as markdown
type MarkdownFormatter struct {
	writer io.Writer
}

// NewMarkdownFormatter creates a new markdown formatter
func NewMarkdownFormatter(w io.Writer) *MarkdownFormatter {
	return &MarkdownFormatter{writer: w}
}

// Format writes the schema in markdown format
func (f *MarkdownFormatter) Format(s *schema.Schema) error {
	_, _ = fmt.Fprintln(f.writer, "# Database Schema")
	_, _ = fmt.Fprintln(f.writer)

	for _, table := range s.Tables {
		f.FormatTable(table)
	}
	return nil
}

// FormatTable formats a single table (exported for use by multifile formatter)
func (f *MarkdownFormatter) FormatTable(table schema.Table) {
	_, _ = fmt.Fprintf(f.writer, "## %s\n\n", table.Name)

	_, _ = fmt.Fprintln(f.writer, "### Columns")
	_, _ = fmt.Fprintln(f.writer)

	for _, col := range table.Columns {
		constraintStr := formatConstraints(col, table.IsPrimaryKey(col.Name))
		if constraintStr != "" {
			_, _ = fmt.Fprintf(f.writer, "- **%s:** %s, %s\n", col.Name, col.Type, constraintStr)
		} else {
			_, _ = fmt.Fprintf(f.writer, "- **%s:** %s\n", col.Name, col.Type)
		}
	}
	_, _ = fmt.Fprintln(f.writer)
}

func formatConstraints(col schema.Column, isPK bool) string {
	var constraints []string

	if isPK {
		constraints = append(constraints, "PK")
	}
	if !col.Nullable {
		constraints = append(constraints, "NOT NULL")
	}
	if col.DefaultValue != nil {
		constraints = append(constraints, fmt.Sprintf("DEFAULT %s", *col.DefaultValue))
	}

	return strings.Join(constraints, ", ")
}

// FormatRows writes rows as a markdown table
func (f *MarkdownFormatter) FormatRows(columns []string, rows [][]any) error {
	_, _ = fmt.Fprintf(f.writer, "| %s |\n", strings.Join(columns, " | "))

	sep := make([]string, len(columns))
	for i := range sep {
		sep[i] = "---"
	}
	_, _ = fmt.Fprintf(f.writer, "| %s |\n", strings.Join(sep, " | "))

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = strings.ReplaceAll(cell(v), "|", `\|`)
		}
		_, _ = fmt.Fprintf(f.writer, "| %s |\n", strings.Join(cells, " | "))
	}

	_, err := fmt.Fprintf(f.writer, "\n%s\n", rowCount(len(rows)))
	return err
}
