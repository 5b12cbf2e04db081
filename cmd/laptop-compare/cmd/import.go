package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/laptop-compare/internal/catalog"
	"github.com/donaldgifford/laptop-compare/pkg/validate"
)

func importCmd() *cobra.Command {
	var (
		from  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a YAML catalog into PostgreSQL",
		Long: "Read every table from a YAML catalog directory and replace the\n" +
			"catalog stored in PostgreSQL in one transaction. The catalog is\n" +
			"validated first and the import is refused on errors unless --force.",
		Example: `  laptop-compare import --from data --config config.yaml`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if from == "" {
				from = cfg.Data.Dir
			}
			log := newLogger(cfg)

			ctx, cancel := context.WithTimeout(cmd.Context(), dbTimeout)
			defer cancel()

			raw, err := catalog.NewFileSource(from, catalog.WithFileLogger(log)).LoadRaw(ctx)
			if err != nil {
				return err
			}

			res := validate.Validate(catalog.Build(raw),
				validate.WithBounds(cfg.Validation.Bounds),
				validate.WithWorkers(cfg.Validation.Workers),
			)
			if res.HasErrors() && !force {
				return fmt.Errorf("%w: %d errors in %s (run validate, or pass --force)",
					ErrValidationFailed, len(res.Errors), from)
			}

			pg, err := catalog.NewPostgresSource(ctx, cfg.Database.DSN())
			if err != nil {
				return fmt.Errorf("connecting to database: %w", err)
			}
			defer pg.Close()

			if err := pg.Migrate(ctx); err != nil {
				return fmt.Errorf("running migrations: %w", err)
			}

			ir, err := pg.Import(ctx, raw)
			if err != nil {
				return err
			}
			return printImportResult(cmd.OutOrStdout(), ir)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "catalog directory (default: data.dir)")
	cmd.Flags().BoolVar(&force, "force", false, "import even when validation finds errors")

	return cmd
}

func exportCmd() *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the PostgreSQL catalog as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), dbTimeout)
			defer cancel()

			pg, err := catalog.NewPostgresSource(ctx, cfg.Database.DSN())
			if err != nil {
				return fmt.Errorf("connecting to database: %w", err)
			}
			defer pg.Close()

			raw, err := pg.LoadRaw(ctx)
			if err != nil {
				return err
			}
			if err := catalog.WriteRaw(to, raw); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d products to %s\n", len(raw.Products), to)
			return err
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "output directory")
	cobra.CheckErr(cmd.MarkFlagRequired("to"))

	return cmd
}

func importsCmd() *cobra.Command {
	var (
		limit   int
		since   string
		minRows int
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "imports",
		Short: "List past PostgreSQL catalog imports, newest first",
		Example: `  laptop-compare imports --since 2025-09-01
  laptop-compare imports --min-rows 100 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q := catalog.ImportQuery{Limit: limit}
			if since != "" {
				t, err := time.Parse(time.DateOnly, since)
				if err != nil {
					return fmt.Errorf("invalid --since %q: want YYYY-MM-DD", since)
				}
				q.Since = &t
			}
			if cmd.Flags().Changed("min-rows") {
				q.MinRows = &minRows
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), dbTimeout)
			defer cancel()

			pg, err := catalog.NewPostgresSource(ctx, cfg.Database.DSN())
			if err != nil {
				return fmt.Errorf("connecting to database: %w", err)
			}
			defer pg.Close()

			records, err := pg.Imports(ctx, q)
			if err != nil {
				return err
			}
			if jsonOut {
				return outputJSON(cmd.OutOrStdout(), records)
			}
			return printImports(cmd.OutOrStdout(), records)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of imports to list")
	cmd.Flags().StringVar(&since, "since", "", "only imports on or after this date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&minRows, "min-rows", 0, "only imports with at least this many rows")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")

	return cmd
}

func init() {
	rootCmd.AddCommand(importCmd(), exportCmd(), importsCmd())
}

func printImports(w io.Writer, records []catalog.ImportRecord) error {
	tw := newTabWriter(w)
	if len(records) == 0 {
		tw.writef("No imports.\n")
		return tw.finish()
	}
	tw.writef("ID\tROWS\tIMPORTED\n")
	for _, r := range records {
		tw.writef("%s\t%d\t%s\n", r.ID, r.RowCount, r.ImportedAt.UTC().Format(time.DateTime))
	}
	return tw.finish()
}

func printImportResult(w io.Writer, r catalog.ImportResult) error {
	tw := newTabWriter(w)
	tw.writef("Import %s: %d rows\n\n", r.ID, r.Total())
	tw.writef("TABLE\tROWS\n")
	for _, k := range catalog.Kinds {
		tw.writef("%s\t%d\n", k, r.Rows[k])
	}
	return tw.finish()
}
