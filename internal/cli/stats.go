package cli

import (
	"github.com/chupacabra/chupacabra/pkg/types"
	"github.com/spf13/cobra"
)

func newStatsCmd(cc *cliContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stats",
		Aliases: []string{"statistics"},
		Short:   "Show sales statistics",
	}

	add := func(use, short string, run func(cmd *cobra.Command) error) {
		cmd.AddCommand(&cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := cc.require(types.PermissionManager); err != nil {
					return err
				}
				return run(cmd)
			},
		})
	}

	add("turnover", "Profit and its weekly evolution", func(cmd *cobra.Command) error {
		return show(cc, cmd, cc.svc.Statistics.Turnover)
	})
	add("financial", "Money owed and stock value", func(cmd *cobra.Command) error {
		return show(cc, cmd, cc.svc.Statistics.FinancialStatement)
	})
	add("by-category", "Sales per category", func(cmd *cobra.Command) error {
		return show(cc, cmd, cc.svc.Statistics.SalesByCategory)
	})
	add("top-seller", "Seller with the most sales", func(cmd *cobra.Command) error {
		return show(cc, cmd, cc.svc.Statistics.TopSeller)
	})
	return cmd
}
