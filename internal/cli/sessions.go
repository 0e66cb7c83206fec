package cli

import (
	"context"

	"github.com/chupacabra/chupacabra/pkg/types"
	"github.com/spf13/cobra"
)

func newSessionsCmd(cc *cliContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sessions",
		Aliases: []string{"session", "sess"},
		Short:   "Manage resale sessions",
		Long: `Manage resale sessions. Dates use RFC 3339 with milliseconds,
e.g. 2025-05-01T08:00:00.000Z.

Examples:
  chupacabra sessions current
  chupacabra sessions create -f session.yaml
  chupacabra sessions update 3 --set commissionRate=0.12 -f session.yaml`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return show(cc, cmd, cc.svc.Sessions.List)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "current",
		Short: "Show the session in progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return show(cc, cmd, cc.svc.Sessions.Current)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get ID",
		Short: "Show one session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return show(cc, cmd, func(ctx context.Context) (types.Session, error) {
				return cc.svc.Sessions.Get(ctx, id)
			})
		},
	})

	var create bodyFlags
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create sessions from a file or --set pairs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cc.require(types.PermissionAdmin); err != nil {
				return err
			}
			forms, err := decodeForms[types.SessionForm](&create)
			if err != nil {
				return err
			}
			for _, form := range forms {
				if err := exec(cc, cmd, func(ctx context.Context) error {
					return cc.svc.Sessions.Create(ctx, form)
				}); err != nil {
					return err
				}
			}
			cc.printOK(plural(len(forms), "session", "created"))
			return nil
		},
	}
	create.register(createCmd)
	cmd.AddCommand(createCmd)

	var update bodyFlags
	updateCmd := &cobra.Command{
		Use:   "update ID",
		Short: "Replace a session's settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cc.require(types.PermissionAdmin); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			form, err := decodeForm[types.SessionForm](&update)
			if err != nil {
				return err
			}
			if err := exec(cc, cmd, func(ctx context.Context) error {
				return cc.svc.Sessions.Update(ctx, id, form)
			}); err != nil {
				return err
			}
			cc.printOK("Session updated")
			return nil
		},
	}
	update.register(updateCmd)
	cmd.AddCommand(updateCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete ID",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cc.require(types.PermissionAdmin); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := exec(cc, cmd, func(ctx context.Context) error {
				return cc.svc.Sessions.Delete(ctx, id)
			}); err != nil {
				return err
			}
			cc.printOK("Session deleted")
			return nil
		},
	})
	return cmd
}
