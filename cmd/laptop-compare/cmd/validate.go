package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/laptop-compare/internal/engine"
	"github.com/donaldgifford/laptop-compare/pkg/validate"
)

func validateCmd() *cobra.Command {
	var (
		asJSON  bool
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the catalog",
		Long: "Load the catalog and report every data problem grouped by level and\n" +
			"category. Exits 1 when there are error-level issues and 2 when the\n" +
			"catalog source is unreachable or could not be parsed.",
		Example: `  # Validate the YAML catalog in ./data
  laptop-compare validate --data-dir data

  # Machine-readable output
  laptop-compare validate --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			return runValidate(cmd, asJSON, !noColor && colorEnabled(out))
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")

	return cmd
}

func init() {
	rootCmd.AddCommand(validateCmd())
}

func runValidate(cmd *cobra.Command, asJSON, color bool) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("validation crashed: %v", r)
		}
	}()

	eng, closeSrc, err := loadEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer closeSrc()

	snap, err := eng.Snapshot()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		err = outputJSON(out, snap.Validation)
	} else {
		err = printValidationReport(out, snap, palette{on: color})
	}
	if err != nil {
		return err
	}

	if snap.Validation.HasErrors() {
		return ErrValidationFailed
	}
	return nil
}

func printValidationReport(w io.Writer, s *engine.Snapshot, pal palette) error {
	res := s.Validation
	var b strings.Builder

	fmt.Fprintf(&b, "Validated %d products (run %s)\n", len(s.Catalog.Products), s.RunID)

	for _, lv := range []struct {
		title  string
		color  string
		issues []validate.Issue
	}{
		{"ERRORS", ansiRed, res.Errors},
		{"WARNINGS", ansiYellow, res.Warnings},
		{"INFO", ansiCyan, res.Info},
	} {
		fmt.Fprintf(&b, "\n%s\n", pal.paint(lv.color, fmt.Sprintf("%s (%d)", lv.title, len(lv.issues))))
		for _, g := range validate.GroupByCategory(lv.issues) {
			fmt.Fprintf(&b, "  %s (%d)\n", g.Category, len(g.Issues))
			for _, is := range g.Issues {
				if is.ProductID != "" {
					fmt.Fprintf(&b, "    - [%s] %s\n", is.ProductID, is.Message)
				} else {
					fmt.Fprintf(&b, "    - %s\n", is.Message)
				}
			}
		}
	}

	status := pal.paint(ansiGreen, "PASSED")
	if res.HasErrors() {
		status = pal.paint(ansiRed, "FAILED")
	}
	fmt.Fprintf(&b, "\n%s: %d errors, %d warnings\n", status, len(res.Errors), len(res.Warnings))

	_, err := io.WriteString(w, b.String())
	return err
}
