package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tordrt/sqldal"
	"github.com/tordrt/sqldal/internal/formatter"
)

func (c *cli) newSchemaCmd() *cobra.Command {
	var outputFile, outputDir, exclude string

	cmd := &cobra.Command{
		Use:   "schema [tables...]",
		Short: "Print the cached table catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputDir != "" && outputFile != "" {
				return fmt.Errorf("cannot use both --output-dir and --output flags")
			}

			return c.withDAL(cmd, func(ctx context.Context, d *sqldal.DAL) error {
				described, err := d.DescribeTables(ctx, args...)
				if err != nil {
					return err
				}
				s := filterTables(described, parseTableList(exclude))

				format := c.cfg.Output.Format
				if outputDir != "" {
					if err := formatter.NewMultiFileFormatter(outputDir, format).Format(s); err != nil {
						return fmt.Errorf("failed to format output: %w", err)
					}
					return nil
				}

				writer := cmd.OutOrStdout()
				if outputFile != "" {
					f, err := os.Create(outputFile)
					if err != nil {
						return fmt.Errorf("failed to create output file: %w", err)
					}
					defer func() {
						if err := f.Close(); err != nil {
							c.logger.Warn("failed to close output file", "error", err)
						}
					}()
					writer = f
				}

				out, err := formatter.New(format, writer)
				if err != nil {
					return err
				}
				if err := out.Format(s); err != nil {
					return fmt.Errorf("failed to format output: %w", err)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "d", "", "Output directory for one file per table")
	cmd.Flags().StringVarP(&exclude, "exclude", "e", "", "Tables to exclude (comma-separated)")
	return cmd
}

func (c *cli) newGetCmd() *cobra.Command {
	var fields, where []string
	var idField string

	cmd := &cobra.Command{
		Use:   "get TABLE ID",
		Short: "Print the rows whose id field equals ID",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria, err := parseWheres(where)
			if err != nil {
				return err
			}

			return c.withDAL(cmd, func(ctx context.Context, d *sqldal.DAL) error {
				opts := []sqldal.QueryOption{sqldal.WithFields(fields...), sqldal.WithCriteria(criteria...)}
				if idField != "" {
					opts = append(opts, sqldal.WithIDField(idField))
				}

				rs, err := d.Get(ctx, args[0], parseValue(args[1]), opts...)
				if err != nil {
					return err
				}
				return c.printRows(cmd, rs)
			})
		},
	}

	cmd.Flags().StringSliceVar(&fields, "fields", nil, "Columns to return (comma-separated)")
	cmd.Flags().StringArrayVarP(&where, "where", "w", nil, `Extra filter "column operator value" (repeatable)`)
	cmd.Flags().StringVar(&idField, "id-field", "", "Column matched against ID (default: id)")
	return cmd
}

func (c *cli) newSearchCmd() *cobra.Command {
	var fields, where []string

	cmd := &cobra.Command{
		Use:   "search TABLE",
		Short: "Print the rows matching every --where filter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria, err := parseWheres(where)
			if err != nil {
				return err
			}

			return c.withDAL(cmd, func(ctx context.Context, d *sqldal.DAL) error {
				rs, err := d.Search(ctx, args[0], sqldal.WithFields(fields...), sqldal.WithCriteria(criteria...))
				if err != nil {
					return err
				}
				return c.printRows(cmd, rs)
			})
		},
	}

	cmd.Flags().StringSliceVar(&fields, "fields", nil, "Columns to return (comma-separated)")
	cmd.Flags().StringArrayVarP(&where, "where", "w", nil, `Filter "column operator value" (repeatable)`)
	return cmd
}

func (c *cli) newInsertCmd() *cobra.Command {
	var set, values []string

	cmd := &cobra.Command{
		Use:   "insert TABLE",
		Short: "Insert one row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var src sqldal.InsertSource
			switch {
			case len(set) > 0 && len(values) > 0:
				return fmt.Errorf("cannot use both --set and --values")
			case len(set) > 0:
				rec, err := parseAssignments(set)
				if err != nil {
					return err
				}
				src = rec
			case len(values) > 0:
				src = parseValueList(values)
			default:
				return fmt.Errorf("one of --set or --values must be specified")
			}

			return c.withDAL(cmd, func(ctx context.Context, d *sqldal.DAL) error {
				res, err := d.InsertWithID(ctx, args[0], src)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d row(s) inserted", res.RowsAffected)
				if res.LastInsertID != 0 {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), ", last insert ID %d", res.LastInsertID)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
				return nil
			})
		},
	}

	cmd.Flags().StringArrayVar(&set, "set", nil, "Column value column=value (repeatable)")
	cmd.Flags().StringSliceVar(&values, "values", nil, "One value per column in table order (comma-separated)")
	return cmd
}

func (c *cli) newUpdateCmd() *cobra.Command {
	var set, where []string

	cmd := &cobra.Command{
		Use:   "update TABLE",
		Short: "Update the rows matching every --where filter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := parseAssignments(set)
			if err != nil {
				return err
			}
			criteria, err := parseWheres(where)
			if err != nil {
				return err
			}

			return c.withDAL(cmd, func(ctx context.Context, d *sqldal.DAL) error {
				n, err := d.Update(ctx, args[0], rec, criteria...)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d row(s) updated\n", n)
				return nil
			})
		},
	}

	cmd.Flags().StringArrayVar(&set, "set", nil, "Column value column=value (repeatable)")
	cmd.Flags().StringArrayVarP(&where, "where", "w", nil, `Filter "column operator value" (repeatable, at least one)`)
	return cmd
}

func (c *cli) newDeleteCmd() *cobra.Command {
	var where []string

	cmd := &cobra.Command{
		Use:   "delete TABLE",
		Short: "Delete the rows matching every --where filter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria, err := parseWheres(where)
			if err != nil {
				return err
			}

			return c.withDAL(cmd, func(ctx context.Context, d *sqldal.DAL) error {
				n, err := d.Delete(ctx, args[0], criteria...)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d row(s) deleted\n", n)
				return nil
			})
		},
	}

	cmd.Flags().StringArrayVarP(&where, "where", "w", nil, `Filter "column operator value" (repeatable, at least one)`)
	return cmd
}

func (c *cli) newCreateTableCmd() *cobra.Command {
	var fieldDefs []string

	cmd := &cobra.Command{
		Use:   "create-table TABLE",
		Short: "Create a table from --field definitions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := make([]sqldal.FieldSpec, 0, len(fieldDefs))
			for _, def := range fieldDefs {
				f, err := parseField(def)
				if err != nil {
					return err
				}
				fields = append(fields, f)
			}

			return c.withDAL(cmd, func(ctx context.Context, d *sqldal.DAL) error {
				if err := d.CreateTable(ctx, args[0], fields); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "table %s created\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().StringArrayVar(&fieldDefs, "field", nil, `Column "name type [options]" (repeatable)`)
	return cmd
}

func (c *cli) newDropTableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drop-table TABLE",
		Short: "Drop a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withDAL(cmd, func(ctx context.Context, d *sqldal.DAL) error {
				if err := d.DropTable(ctx, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "table %s dropped\n", args[0])
				return nil
			})
		},
	}
}
