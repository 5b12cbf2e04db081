package cmd

import (
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/laptop-compare/pkg/market"
)

func signalCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "signal <product-id>",
		Short: "Recommend buying now or waiting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, closeSrc, err := loadEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer closeSrc()

			d, err := eng.Signal(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if asJSON {
				return outputJSON(cmd.OutOrStdout(), d)
			}
			return printDecision(cmd.OutOrStdout(), args[0], d)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")

	return cmd
}

func init() {
	rootCmd.AddCommand(signalCmd())
}

func printDecision(w io.Writer, id string, d market.Decision) error {
	tw := newTabWriter(w)
	tw.writef("Product:\t%s\n", id)
	tw.writef("Signal:\t%s\n", d.Label)
	tw.writef("Reason:\t%s\n", d.Reason)
	if d.UpcomingSale != "" && d.SaleStart != nil {
		tw.writef("Sale:\t%s (%s)\n", d.UpcomingSale, d.SaleStart.Format(time.DateOnly))
	}
	for _, n := range d.Notes {
		tw.writef("Note:\t%s\n", n)
	}
	return tw.finish()
}
