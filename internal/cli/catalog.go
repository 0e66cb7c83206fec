package cli

import (
	"github.com/spf13/cobra"
)

func newCategoriesCmd(cc *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "List game categories",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return show(cc, cmd, cc.svc.Categories.List)
		},
	}
}

func newPaymentsCmd(cc *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:     "payments",
		Aliases: []string{"means-payment"},
		Short:   "List accepted means of payment",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return show(cc, cmd, cc.svc.Payments.List)
		},
	}
}
