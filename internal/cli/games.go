package cli

import (
	"context"
	"fmt"

	"github.com/chupacabra/chupacabra/pkg/types"
	"github.com/spf13/cobra"
)

func newGamesCmd(cc *cliContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "games",
		Aliases: []string{"game"},
		Short:   "Browse and extend the game catalogue",
		Long: `Browse and extend the game catalogue.

Examples:
  chupacabra games list
  chupacabra games for-sale --category Strategy --players 4 --max-price 30
  chupacabra games create --set name=Azul --set minimumPlayersNumber=2 --set maximumPlayersNumber=4 --set categoryId=1 --set publisherId=3`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return show(cc, cmd, cc.svc.Games.List)
		},
	})

	var filter types.GameFilter
	forSaleCmd := &cobra.Command{
		Use:   "for-sale",
		Short: "List games with copies on sale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if filter.MinimumPrice < 0 || filter.MaximumPrice < 0 || filter.PlayerNumber < 0 {
				return fmt.Errorf("filter values cannot be negative")
			}
			if filter.MaximumPrice > 0 && filter.MinimumPrice > filter.MaximumPrice {
				return fmt.Errorf("--min-price %d is above --max-price %d", filter.MinimumPrice, filter.MaximumPrice)
			}
			return show(cc, cmd, func(ctx context.Context) ([]types.Game, error) {
				return cc.svc.Games.ForSale(ctx, filter)
			})
		},
	}
	forSaleCmd.Flags().StringVar(&filter.GameName, "name", "", "Game name")
	forSaleCmd.Flags().StringVar(&filter.PublisherName, "publisher", "", "Publisher name")
	forSaleCmd.Flags().StringVar(&filter.CategoryName, "category", "", "Category name")
	forSaleCmd.Flags().IntVar(&filter.PlayerNumber, "players", 0, "Number of players")
	forSaleCmd.Flags().IntVar(&filter.MinimumPrice, "min-price", 0, "Minimum price")
	forSaleCmd.Flags().IntVar(&filter.MaximumPrice, "max-price", 0, "Maximum price")
	cmd.AddCommand(forSaleCmd)

	var create bodyFlags
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Add games to the catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cc.require(types.PermissionManager); err != nil {
				return err
			}
			forms, err := decodeForms[types.GameForm](&create)
			if err != nil {
				return err
			}
			for _, form := range forms {
				if form.MinimumPlayersNumber > form.MaximumPlayersNumber {
					return fmt.Errorf("%s: minimum players above maximum", form.Name)
				}
			}
			for _, form := range forms {
				if err := exec(cc, cmd, func(ctx context.Context) error {
					return cc.svc.Games.Create(ctx, form)
				}); err != nil {
					return err
				}
			}
			cc.printOK(plural(len(forms), "game", "created"))
			return nil
		},
	}
	create.register(createCmd)
	cmd.AddCommand(createCmd)
	return cmd
}

func newPhysicalGamesCmd(cc *cliContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "physical-games",
		Aliases: []string{"pg", "copies"},
		Short:   "Track deposited copies",
		Long: `Track deposited copies: labelling, lookup by barcode and status changes.

Examples:
  chupacabra physical-games unlabelled
  chupacabra physical-games barcode 3760052140243
  chupacabra physical-games set-status for_sale 12 13 14`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "unlabelled",
		Short: "List copies waiting for a label",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cc.require(types.PermissionManager); err != nil {
				return err
			}
			return show(cc, cmd, cc.svc.PhysicalGames.ListUnlabelled)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "barcode CODE",
		Short: "Look a copy up by barcode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return show(cc, cmd, func(ctx context.Context) (types.PhysicalGame, error) {
				return cc.svc.PhysicalGames.ByBarcode(ctx, args[0])
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "for-sale-barcodes",
		Short: "List barcodes of copies on sale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return show(cc, cmd, cc.svc.PhysicalGames.ForSaleBarcodes)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set-status STATUS ID...",
		Short: "Move copies to a new status",
		Long: `Move copies to a new status. STATUS is one of deposited, for_sale,
sold, forgotten or recovered.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cc.require(types.PermissionManager); err != nil {
				return err
			}
			status := types.PhysicalGameStatus(args[0])
			if !status.Valid() {
				return fmt.Errorf("unknown status %q", args[0])
			}
			ids, err := parseIDs(args[1:])
			if err != nil {
				return err
			}
			if err := exec(cc, cmd, func(ctx context.Context) error {
				return cc.svc.PhysicalGames.UpdateStatus(ctx, ids, status)
			}); err != nil {
				return err
			}
			cc.printOK(plural(len(ids), "physical game", "updated"))
			return nil
		},
	})
	return cmd
}
