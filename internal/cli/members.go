package cli

import (
	"context"
	"fmt"

	"github.com/chupacabra/chupacabra/pkg/types"
	"github.com/spf13/cobra"
)

// memberFormFlags adds --permission and --password on top of the body flags.
type memberFormFlags struct {
	body       bodyFlags
	permission string
	password   string
}

func (m *memberFormFlags) register(cmd *cobra.Command) {
	m.body.register(cmd)
	cmd.Flags().StringVar(&m.permission, "permission", "", "Permission level: user, manager or admin")
	cmd.Flags().StringVar(&m.password, "password", "", "Password; left unchanged on update when empty")
}

func (m *memberFormFlags) forms() ([]types.MemberForm, error) {
	forms, err := decodeForms[types.MemberForm](&m.body)
	if err != nil {
		return nil, err
	}
	for i := range forms {
		if m.permission != "" {
			level, ok := types.ParsePermissionLevel(m.permission)
			if !ok {
				return nil, fmt.Errorf("unknown permission level %q", m.permission)
			}
			forms[i].PermissionLevel = level
		}
		if m.password != "" {
			pw := m.password
			forms[i].Password = &pw
		}
		if !forms[i].PermissionLevel.Valid() {
			return nil, fmt.Errorf("unknown permission level %d", forms[i].PermissionLevel)
		}
	}
	return forms, nil
}

func newMembersCmd(cc *cliContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "members",
		Aliases: []string{"member"},
		Short:   "Manage staff accounts",
		Long: `Manage staff accounts. Requires the admin permission level.

Examples:
  chupacabra members list
  chupacabra members create --set email=bob@example.com --set firstName=Bob --set lastName=Ross --permission manager --password s3cret
  chupacabra members update 7 -f member.yaml --permission admin`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cc.require(types.PermissionAdmin); err != nil {
				return err
			}
			return show(cc, cmd, cc.svc.Members.List)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get ID",
		Short: "Show one member",
		Args:  cobra.ExactArgs(1),
		RunE: withID(types.PermissionAdmin, cc, func(cmd *cobra.Command, id int) error {
			return show(cc, cmd, func(ctx context.Context) (types.Member, error) {
				return cc.svc.Members.Get(ctx, id)
			})
		}),
	})

	var create memberFormFlags
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cc.require(types.PermissionAdmin); err != nil {
				return err
			}
			forms, err := create.forms()
			if err != nil {
				return err
			}
			for _, form := range forms {
				if err := exec(cc, cmd, func(ctx context.Context) error {
					return cc.svc.Members.Create(ctx, form)
				}); err != nil {
					return err
				}
			}
			cc.printOK(plural(len(forms), "member", "created"))
			return nil
		},
	}
	create.register(createCmd)
	cmd.AddCommand(createCmd)

	var update memberFormFlags
	updateCmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a member",
		Args:  cobra.ExactArgs(1),
		RunE: withID(types.PermissionAdmin, cc, func(cmd *cobra.Command, id int) error {
			forms, err := update.forms()
			if err != nil {
				return err
			}
			if len(forms) != 1 {
				return fmt.Errorf("expected one document, got %d", len(forms))
			}
			if err := exec(cc, cmd, func(ctx context.Context) error {
				return cc.svc.Members.Update(ctx, id, forms[0])
			}); err != nil {
				return err
			}
			cc.printOK("Member updated")
			return nil
		}),
	}
	update.register(updateCmd)
	cmd.AddCommand(updateCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete ID",
		Short: "Remove a member",
		Args:  cobra.ExactArgs(1),
		RunE: withID(types.PermissionAdmin, cc, func(cmd *cobra.Command, id int) error {
			if err := exec(cc, cmd, func(ctx context.Context) error {
				return cc.svc.Members.Delete(ctx, id)
			}); err != nil {
				return err
			}
			cc.printOK("Member deleted")
			return nil
		}),
	})
	return cmd
}
