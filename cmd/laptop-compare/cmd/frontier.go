package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/laptop-compare/internal/engine"
	domain "github.com/donaldgifford/laptop-compare/pkg/types"
)

func frontierCmd() *cobra.Command {
	var (
		lineup string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "frontier",
		Short: "Show the price/performance frontier",
		Long: "Plot every priced product by lowest observed price and composite\n" +
			"score and mark the products no cheaper model matches.",
		Example: `  laptop-compare frontier
  laptop-compare frontier --lineup ThinkPad`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l := domain.Lineup(lineup)
			if l != "" && !l.Valid() {
				return fmt.Errorf("unknown lineup %q", lineup)
			}

			eng, closeSrc, err := loadEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer closeSrc()

			res, err := eng.Frontier(cmd.Context(), l)
			if err != nil {
				return err
			}

			if asJSON {
				return outputJSON(cmd.OutOrStdout(), res)
			}
			return printFrontier(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVar(&lineup, "lineup", "", "only include this lineup (ThinkPad, IdeaPad Pro, Legion)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")

	return cmd
}

func init() {
	rootCmd.AddCommand(frontierCmd())
}

func printFrontier(w io.Writer, res *engine.FrontierResult) error {
	if len(res.Points) == 0 {
		_, err := fmt.Fprintln(w, "No priced products.")
		return err
	}

	tw := newTabWriter(w)
	tw.writef("ID\tNAME\tLINEUP\tPRICE\tSCORE\tFRONTIER\n")
	for i := range res.Points {
		p := &res.Points[i]
		mark := ""
		if p.Efficient {
			mark = "*"
		}
		tw.writef("%s\t%s\t%s\t$%.0f\t%.1f\t%s\n", p.ID, truncate(p.Name, 40), p.Lineup, p.Price, p.Perf, mark)
	}
	return tw.finish()
}
