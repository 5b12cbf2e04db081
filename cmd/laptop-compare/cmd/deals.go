package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	domain "github.com/donaldgifford/laptop-compare/pkg/types"
)

func dealsCmd() *cobra.Command {
	dealsRoot := &cobra.Command{
		Use:   "deals",
		Short: "Inspect curated deals",
	}

	dealsRoot.AddCommand(dealsStaleCmd())

	return dealsRoot
}

func dealsStaleCmd() *cobra.Command {
	var (
		days   int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "stale",
		Short: "List deals that need re-verification",
		Long: "List deals never verified or last verified more than --days days ago.\n" +
			"Zero uses the configured market.stale_days.",
		Example: `  laptop-compare deals stale
  laptop-compare deals stale --days 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if days < 0 {
				return fmt.Errorf("--days must be >= 0 (got %d)", days)
			}

			eng, closeSrc, err := loadEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer closeSrc()

			deals, err := eng.StaleDeals(cmd.Context(), days)
			if err != nil {
				return err
			}

			if asJSON {
				return outputJSON(cmd.OutOrStdout(), deals)
			}
			threshold := days
			if threshold == 0 {
				threshold = eng.StaleDays()
			}
			return printStaleDeals(cmd.OutOrStdout(), deals, threshold)
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "days since last verification")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")

	return cmd
}

func init() {
	rootCmd.AddCommand(dealsCmd())
}

func printStaleDeals(w io.Writer, deals []domain.Deal, threshold int) error {
	if len(deals) == 0 {
		_, err := fmt.Fprintf(w, "No deals older than %d days.\n", threshold)
		return err
	}

	tw := newTabWriter(w)
	tw.writef("ID\tPRODUCT\tRETAILER\tPRICE\tLAST VERIFIED\n")
	for i := range deals {
		d := &deals[i]
		verified := "never"
		if d.LastVerified != nil {
			verified = d.LastVerified.Format(time.DateOnly)
		}
		tw.writef("%s\t%s\t%s\t$%.0f\t%s\n", d.ID, d.ProductID, d.Retailer, d.Price, verified)
	}
	return tw.finish()
}
