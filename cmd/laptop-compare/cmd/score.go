package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/laptop-compare/internal/engine"
	domain "github.com/donaldgifford/laptop-compare/pkg/types"
)

func scoreCmd() *cobra.Command {
	var (
		cpu, display, gpu, ram, storage int
		asJSON                          bool
	)

	cmd := &cobra.Command{
		Use:   "score <product-id>",
		Short: "Score a product",
		Long: "Print dimension scores, percentiles within the lineup, the composite\n" +
			"and value scores, and use-case verdicts for one product. Option flags\n" +
			"pick build-to-order options by index.",
		Example: `  # Base configuration
  laptop-compare score t14-gen5

  # First processor option
  laptop-compare score t14-gen5 --cpu 0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, closeSrc, err := loadEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer closeSrc()

			sel := domain.Selection{
				Processor: optionFlag(cpu),
				Display:   optionFlag(display),
				GPU:       optionFlag(gpu),
				RAM:       optionFlag(ram),
				Storage:   optionFlag(storage),
			}
			r, err := eng.ProductReport(cmd.Context(), args[0], sel)
			if err != nil {
				return err
			}

			if asJSON {
				return outputJSON(cmd.OutOrStdout(), r)
			}
			return printProductReport(cmd.OutOrStdout(), r)
		},
	}

	f := cmd.Flags()
	f.IntVar(&cpu, "cpu", -1, "processor option index")
	f.IntVar(&display, "display", -1, "display option index")
	f.IntVar(&gpu, "gpu", -1, "GPU option index")
	f.IntVar(&ram, "ram", -1, "RAM option index")
	f.IntVar(&storage, "storage", -1, "storage option index")
	f.BoolVar(&asJSON, "json", false, "output JSON")

	return cmd
}

func init() {
	rootCmd.AddCommand(scoreCmd())
}

func optionFlag(i int) *int {
	if i < 0 {
		return nil
	}
	return &i
}

func printProductReport(w io.Writer, r *engine.ProductReport) error {
	p := &r.Product

	tw := newTabWriter(w)
	tw.writef("Product:\t%s (%s)\n", p.Name, p.ID)
	tw.writef("Config:\t%s / %s / %dGB / %dGB\n", p.Processor.Name, p.GPU.Name, p.RAM.Size, p.Storage.Size)
	tw.writef("Composite:\t%.1f\n", r.Composite)
	if r.Value != nil {
		tw.writef("Value:\t%.0f\n", *r.Value)
	} else {
		tw.writef("Value:\t-\n")
	}
	tw.writef("Lowest price:\t%s\n", formatPrice(r.LowestPrice))
	tw.writef("Signal:\t%s (%s)\n", r.Signal.Label, r.Signal.Reason)
	tw.writef("\n")

	tw.writef("DIMENSION\tSCORE\tPERCENTILE\tVS GROUP\tINTERPRETATION\n")
	for _, d := range r.Details {
		tw.writef("%s\t%.0f\t%d\t%s\t%s\n",
			d.Dimension, d.Score, d.Percentile, d.Context.ComparisonText, d.Interpretation)
	}
	tw.writef("\n")

	tw.writef("USE CASE\tVERDICT\tWHY\n")
	for _, sc := range r.Scenarios {
		tw.writef("%s\t%s\t%s\n", sc.Name, sc.Verdict, truncate(sc.Explanation, 70))
	}

	if err := tw.finish(); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
