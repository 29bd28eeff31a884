package formatter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tordrt/sqldal/internal/schema"
)

// MultiFileFormatter writes schema to multiple files in a directory
type MultiFileFormatter struct {
	OutputDir    string
	OutputFormat string // "text" or "markdown"
}

// NewMultiFileFormatter creates a new multi-file formatter
func NewMultiFileFormatter(outputDir, format string) *MultiFileFormatter {
	return &MultiFileFormatter{
		OutputDir:    outputDir,
		OutputFormat: format,
	}
}

// Format writes an overview file plus one file per table
func (f *MultiFileFormatter) Format(s *schema.Schema) error {
	if f.OutputFormat != FormatText && f.OutputFormat != FormatMarkdown {
		return fmt.Errorf("invalid format for multi-file output: %s (must be 'text' or 'markdown')", f.OutputFormat)
	}

	if err := os.MkdirAll(f.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := f.writeFile("_overview", func(w io.Writer) { f.writeOverview(w, s) }); err != nil {
		return fmt.Errorf("failed to write overview: %w", err)
	}

	for _, table := range s.Tables {
		if err := f.writeFile(table.Name, func(w io.Writer) { f.writeTable(w, table) }); err != nil {
			return fmt.Errorf("failed to write table file for %s: %w", table.Name, err)
		}
	}

	return nil
}

func (f *MultiFileFormatter) writeFile(name string, write func(io.Writer)) (err error) {
	file, err := os.Create(filepath.Join(f.OutputDir, name+f.getFileExtension()))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	write(file)
	return nil
}

func (f *MultiFileFormatter) writeOverview(w io.Writer, s *schema.Schema) {
	sortedTables := make([]schema.Table, len(s.Tables))
	copy(sortedTables, s.Tables)
	sort.Slice(sortedTables, func(i, j int) bool {
		return sortedTables[i].Name < sortedTables[j].Name
	})

	if f.OutputFormat == FormatMarkdown {
		_, _ = fmt.Fprintf(w, "# Schema Overview\n\n")
		_, _ = fmt.Fprintf(w, "Each table has a corresponding file: `<table_name>%s`\n\n", f.getFileExtension())
		_, _ = fmt.Fprintf(w, "## Tables\n\n")
		for _, table := range sortedTables {
			_, _ = fmt.Fprintf(w, "- **%s** (%s)\n", table.Name, tableSummary(table))
		}
		return
	}

	_, _ = fmt.Fprintf(w, "SCHEMA OVERVIEW\n")
	_, _ = fmt.Fprintf(w, "Each table has a file: <table_name>%s\n\n", f.getFileExtension())
	for _, table := range sortedTables {
		_, _ = fmt.Fprintf(w, "%s (%s)\n", table.Name, tableSummary(table))
	}
}

func tableSummary(table schema.Table) string {
	summary := fmt.Sprintf("%d columns", len(table.Columns))
	if len(table.PrimaryKey) > 0 {
		summary += ", PK: " + strings.Join(table.PrimaryKey, ", ")
	}
	return summary
}

func (f *MultiFileFormatter) writeTable(w io.Writer, table schema.Table) {
	if f.OutputFormat == FormatMarkdown {
		NewMarkdownFormatter(w).FormatTable(table)
		return
	}
	NewTextFormatter(w).formatTable(table)
}

func (f *MultiFileFormatter) getFileExtension() string {
	if f.OutputFormat == FormatMarkdown {
		return ".md"
	}
	return ".txt"
}
