package cli

import (
	"context"

	"github.com/chupacabra/chupacabra/pkg/types"
	"github.com/spf13/cobra"
)

// withID wraps a RunE body that takes the ID in args[0].
func withID(level types.PermissionLevel, cc *cliContext, run func(cmd *cobra.Command, id int) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := cc.require(level); err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return run(cmd, id)
	}
}

func newSellersCmd(cc *cliContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sellers",
		Aliases: []string{"seller"},
		Short:   "Manage sellers, their deposits and payouts",
		Long: `Manage sellers, their deposits and payouts.

Examples:
  chupacabra sellers list
  chupacabra sellers create --set firstName=Ada --set lastName=Lovelace --set email=ada@example.com --set-string phone=0612345678
  chupacabra sellers balance 4
  chupacabra sellers deposit 4 -f deposit.yaml
  chupacabra sellers withdraw 4`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List sellers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cc.require(types.PermissionManager); err != nil {
				return err
			}
			return show(cc, cmd, cc.svc.Sellers.List)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get ID",
		Short: "Show one seller",
		Args:  cobra.ExactArgs(1),
		RunE: withID(types.PermissionManager, cc, func(cmd *cobra.Command, id int) error {
			return show(cc, cmd, func(ctx context.Context) (types.Seller, error) {
				return cc.svc.Sellers.Get(ctx, id)
			})
		}),
	})

	var create bodyFlags
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Register sellers from a file or --set pairs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cc.require(types.PermissionManager); err != nil {
				return err
			}
			forms, err := decodeForms[types.SellerForm](&create)
			if err != nil {
				return err
			}
			for _, form := range forms {
				if err := exec(cc, cmd, func(ctx context.Context) error {
					return cc.svc.Sellers.Create(ctx, form)
				}); err != nil {
					return err
				}
			}
			cc.printOK(plural(len(forms), "seller", "created"))
			return nil
		},
	}
	create.register(createCmd)
	cmd.AddCommand(createCmd)

	var update bodyFlags
	updateCmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a seller",
		Args:  cobra.ExactArgs(1),
		RunE: withID(types.PermissionManager, cc, func(cmd *cobra.Command, id int) error {
			form, err := decodeForm[types.SellerForm](&update)
			if err != nil {
				return err
			}
			if err := exec(cc, cmd, func(ctx context.Context) error {
				return cc.svc.Sellers.Update(ctx, id, form)
			}); err != nil {
				return err
			}
			cc.printOK("Seller updated")
			return nil
		}),
	}
	update.register(updateCmd)
	cmd.AddCommand(updateCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete ID",
		Short: "Remove a seller",
		Args:  cobra.ExactArgs(1),
		RunE: withID(types.PermissionManager, cc, func(cmd *cobra.Command, id int) error {
			if err := exec(cc, cmd, func(ctx context.Context) error {
				return cc.svc.Sellers.Delete(ctx, id)
			}); err != nil {
				return err
			}
			cc.printOK("Seller deleted")
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "balance ID",
		Short: "Show what the event owes a seller",
		Args:  cobra.ExactArgs(1),
		RunE: withID(types.PermissionManager, cc, func(cmd *cobra.Command, id int) error {
			return show(cc, cmd, func(ctx context.Context) (types.SellerBalanceSheet, error) {
				return cc.svc.Sellers.BalanceSheet(ctx, id)
			})
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "deposits ID",
		Short: "List a seller's deposits",
		Args:  cobra.ExactArgs(1),
		RunE: withID(types.PermissionManager, cc, func(cmd *cobra.Command, id int) error {
			return show(cc, cmd, func(ctx context.Context) ([]types.Deposit, error) {
				return cc.svc.Sellers.Deposits(ctx, id)
			})
		}),
	})

	var deposit bodyFlags
	depositCmd := &cobra.Command{
		Use:   "deposit ID",
		Short: "Record a deposit of games for a seller",
		Args:  cobra.ExactArgs(1),
		RunE: withID(types.PermissionManager, cc, func(cmd *cobra.Command, id int) error {
			form, err := decodeForm[types.DepositForm](&deposit)
			if err != nil {
				return err
			}
			if err := exec(cc, cmd, func(ctx context.Context) error {
				return cc.svc.Sellers.CreateDeposit(ctx, id, form)
			}); err != nil {
				return err
			}
			cc.printOK("Deposit recorded")
			return nil
		}),
	}
	deposit.register(depositCmd)
	cmd.AddCommand(depositCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "withdraw ID",
		Short: "Pay out a seller's credit",
		Args:  cobra.ExactArgs(1),
		RunE: withID(types.PermissionManager, cc, func(cmd *cobra.Command, id int) error {
			if err := exec(cc, cmd, func(ctx context.Context) error {
				return cc.svc.Sellers.Withdraw(ctx, id)
			}); err != nil {
				return err
			}
			cc.printOK("Withdrawal recorded")
			return nil
		}),
	})
	return cmd
}
