package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/chupacabra/chupacabra/internal/session"
	"github.com/chupacabra/chupacabra/pkg/types"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// EnvPassword lets scripts log in without putting the password on the
// command line.
const EnvPassword = "CHUPACABRA_PASSWORD"

// permissionLabel renders a level for humans, e.g. "Manager".
func permissionLabel(p types.PermissionLevel) string {
	return cases.Title(language.English).String(p.String())
}

// newLoginCmd creates and returns a new login command
func newLoginCmd(cc *cliContext) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the chupacabra server",
		Long: `Login to obtain an access token. The token is kept in the configured
credentials store until it expires or you log out.

Example:
  chupacabra login --email admin@example.com --password secret
  CHUPACABRA_PASSWORD=secret chupacabra login --email admin@example.com`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return errors.New("no email provided. Use --email")
			}
			if password == "" {
				password = os.Getenv(EnvPassword)
			}
			if password == "" {
				return fmt.Errorf("no password provided. Use --password or set %s", EnvPassword)
			}

			user, err := fetch(cc, cmd, func(ctx context.Context) (session.User, error) {
				return cc.session.Login(ctx, email, password)
			})
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			if cc.opts.jsonOutput {
				printJSON(cc.out, map[string]any{
					"result":          1,
					"memberId":        user.ID,
					"permissionLevel": user.PermissionLevel.String(),
					"expiresAt":       formatExpiry(user.ExpiresAt),
				})
				return nil
			}
			okLabel.Fprintln(cc.out, "✓ Login successful")
			fmt.Fprintf(cc.out, "Logged in as member %d (%s)\n", user.ID, permissionLabel(user.PermissionLevel))
			if !user.ExpiresAt.IsZero() {
				fmt.Fprintf(cc.out, "Token expires at: %s\n", formatExpiry(user.ExpiresAt))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Member email")
	cmd.Flags().StringVar(&password, "password", "", "Member password")
	return cmd
}

func newLogoutCmd(cc *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc.session.Logout()
			cc.printOK("Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(cc *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in member",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, ok := cc.session.Current()
			if !ok {
				return session.ErrNotLoggedIn
			}
			if cc.opts.jsonOutput {
				printJSON(cc.out, map[string]any{
					"result":          1,
					"memberId":        user.ID,
					"permissionLevel": user.PermissionLevel.String(),
					"expiresAt":       formatExpiry(user.ExpiresAt),
				})
				return nil
			}
			fmt.Fprintf(cc.out, "Member:     %d\n", user.ID)
			fmt.Fprintf(cc.out, "Permission: %s\n", permissionLabel(user.PermissionLevel))
			if !user.ExpiresAt.IsZero() {
				fmt.Fprintf(cc.out, "Expires:    %s (in %s)\n", formatExpiry(user.ExpiresAt), time.Until(user.ExpiresAt).Round(time.Minute))
			}
			return nil
		},
	}
}

func formatExpiry(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
