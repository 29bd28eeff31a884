package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tordrt/sqldal"
	"github.com/tordrt/sqldal/internal/config"
	"github.com/tordrt/sqldal/internal/formatter"
	"github.com/tordrt/sqldal/internal/logging"
)

// cli holds flag values and the state resolved before a subcommand runs
type cli struct {
	dbURL      string
	mysqlURL   string
	sqlitePath string
	schemaName string
	configFile string
	logLevel   string
	logFormat  string
	format     string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "sqldal",
		Short: "Read and write database tables through a schema-checked data-access layer",
		Long: `sqldal connects to PostgreSQL, MySQL, or SQLite, caches the table catalog and
validates every table and column name against it before building SQL. Values
are always bound as parameters.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.dbURL, "db-url", "", "PostgreSQL connection string")
	flags.StringVar(&c.mysqlURL, "mysql-url", "", "MySQL connection string")
	flags.StringVar(&c.sqlitePath, "sqlite", "", "SQLite database file path")
	flags.StringVarP(&c.schemaName, "schema", "s", "", "Database schema name (default: public for PostgreSQL, DSN database for MySQL)")
	flags.StringVar(&c.configFile, "config", "", "Config file (default: ./sqldal.yaml)")
	flags.StringVar(&c.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	flags.StringVar(&c.logFormat, "log-format", "text", "Log format: text or json")
	flags.StringVarP(&c.format, "format", "f", "text", "Output format: text, markdown, json or yaml")

	rootCmd.AddCommand(
		c.newSchemaCmd(),
		c.newGetCmd(),
		c.newSearchCmd(),
		c.newInsertCmd(),
		c.newUpdateCmd(),
		c.newDeleteCmd(),
		c.newCreateTableCmd(),
		c.newDropTableCmd(),
	)

	return rootCmd
}

// setup loads configuration, binds flags over it, decodes the result and
// builds the logger
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	v, err := config.New(c.configFile)
	if err != nil {
		return err
	}

	flags := cmd.Root().PersistentFlags()
	bindings := map[string]string{
		"database.schema": "schema",
		"log.level":       "log-level",
		"log.format":      "log-format",
		"output.format":   "format",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}

	cfg, err := config.Decode(v)
	if err != nil {
		return err
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	c.cfg = cfg
	c.logger = logger
	return nil
}

// databaseURL resolves the connection URL from flags, falling back to config
func (c *cli) databaseURL() (string, error) {
	dbCount := 0
	if c.dbURL != "" {
		dbCount++
	}
	if c.mysqlURL != "" {
		dbCount++
	}
	if c.sqlitePath != "" {
		dbCount++
	}
	if dbCount > 1 {
		return "", fmt.Errorf("only one of --db-url, --mysql-url, or --sqlite can be specified")
	}

	switch {
	case c.sqlitePath != "":
		return "sqlite://" + c.sqlitePath, nil
	case c.mysqlURL != "":
		if strings.HasPrefix(c.mysqlURL, "mysql://") {
			return c.mysqlURL, nil
		}
		return "mysql://" + c.mysqlURL, nil
	case c.dbURL != "":
		return c.dbURL, nil
	}

	if url := c.cfg.Database.URL; url != "" {
		return url, nil
	}
	return "", fmt.Errorf("one of --db-url, --mysql-url, or --sqlite must be specified (or database.url in config)")
}

// open connects to the configured database
func (c *cli) open(ctx context.Context) (*sqldal.DAL, error) {
	url, err := c.databaseURL()
	if err != nil {
		return nil, err
	}

	return sqldal.Open(ctx, url, &sqldal.Options{
		SchemaName: c.cfg.Database.Schema,
		Logger:     c.logger,
	})
}

// withDAL opens the database, runs fn and closes the connection
func (c *cli) withDAL(cmd *cobra.Command, fn func(ctx context.Context, d *sqldal.DAL) error) error {
	ctx := cmd.Context()

	d, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := d.Close(ctx); err != nil {
			c.logger.Warn("failed to close database connection", "error", err)
		}
	}()

	return fn(ctx, d)
}

// formatter returns the formatter for the configured output format
func (c *cli) formatter(cmd *cobra.Command) (formatter.Formatter, error) {
	return formatter.New(c.cfg.Output.Format, cmd.OutOrStdout())
}

func (c *cli) printRows(cmd *cobra.Command, rs *sqldal.ResultSet) error {
	f, err := c.formatter(cmd)
	if err != nil {
		return err
	}
	if err := f.FormatRows(rs.Columns, rs.Rows); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
