// Package formatter renders schemas and query results for the sqldal command.
package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/tordrt/sqldal/internal/schema"
)

// Supported output formats
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
)

// Formatter renders a schema or a result set to its writer
type Formatter interface {
	Format(s *schema.Schema) error
	FormatRows(columns []string, rows [][]any) error
}

// New returns the formatter for format
func New(format string, w io.Writer) (Formatter, error) {
	switch strings.ToLower(format) {
	case FormatText:
		return NewTextFormatter(w), nil
	case FormatMarkdown:
		return NewMarkdownFormatter(w), nil
	case FormatJSON:
		return NewJSONFormatter(w), nil
	case FormatYAML:
		return NewYAMLFormatter(w), nil
	default:
		return nil, fmt.Errorf("invalid format: %s (must be 'text', 'markdown', 'json' or 'yaml')", format)
	}
}

// cell renders one value for the tabular formats
func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return fmt.Sprintf("0x%x", x)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

func rowCount(n int) string {
	if n == 1 {
		return "(1 row)"
	}
	return fmt.Sprintf("(%d rows)", n)
}
