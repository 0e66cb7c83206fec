package cli

import (
	"context"
	"errors"

	"github.com/chupacabra/chupacabra/pkg/types"
	"github.com/spf13/cobra"
)

func newOrdersCmd(cc *cliContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orders",
		Aliases: []string{"order"},
		Short:   "Sell copies and send invoices",
		Long: `Sell copies and send invoices.

Examples:
  chupacabra orders place --payment 1 12 13
  chupacabra orders invoice --set transactionId=42 --set buyerEmail=jo@example.com --set buyerFirstName=Jo --set buyerLastName=Doe --set buyerAddress="1 rue de la Paix"`,
	}

	var paymentID int
	placeCmd := &cobra.Command{
		Use:   "place PHYSICAL_GAME_ID...",
		Short: "Sell the listed copies",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cc.require(types.PermissionManager); err != nil {
				return err
			}
			if paymentID <= 0 {
				return errors.New("--payment is required")
			}
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			req := types.OrderRequest{PhysicalGameIDs: ids, MeanPaymentID: paymentID}
			return show(cc, cmd, func(ctx context.Context) (types.OrderResponse, error) {
				return cc.svc.Orders.Place(ctx, req)
			})
		},
	}
	placeCmd.Flags().IntVar(&paymentID, "payment", 0, "Means of payment ID")
	cmd.AddCommand(placeCmd)

	var invoice bodyFlags
	invoiceCmd := &cobra.Command{
		Use:   "invoice",
		Short: "Mail an invoice for a transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cc.require(types.PermissionManager); err != nil {
				return err
			}
			req, err := decodeForm[types.InvoiceRequest](&invoice)
			if err != nil {
				return err
			}
			if req.TransactionID <= 0 || req.BuyerEmail == "" {
				return errors.New("transactionId and buyerEmail are required")
			}
			if err := exec(cc, cmd, func(ctx context.Context) error {
				return cc.svc.Orders.SendInvoice(ctx, req)
			}); err != nil {
				return err
			}
			cc.printOK("Invoice sent")
			return nil
		},
	}
	invoice.register(invoiceCmd)
	cmd.AddCommand(invoiceCmd)
	return cmd
}
