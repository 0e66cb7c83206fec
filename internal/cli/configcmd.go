package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/chupacabra/chupacabra/internal/credstore"
	"github.com/spf13/cobra"
)

func (cc *cliContext) configPath() (string, error) {
	if cc.opts.configFile != "" {
		return cc.opts.configFile, nil
	}
	return GetDefaultConfigPath()
}

// newConfigCmd creates the config command and its subcommands
func newConfigCmd(cc *cliContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  `Manage CLI configuration settings like the server URL and where credentials are kept.`,
	}
	cmd.AddCommand(newConfigSetServerCmd(cc), newConfigShowCmd(cc))
	return cmd
}

func newConfigSetServerCmd(cc *cliContext) *cobra.Command {
	var (
		timeout string
		creds   credstore.Config
	)
	cmd := &cobra.Command{
		Use:   "set-server URL",
		Short: "Write a config file pointing at URL",
		Long: `Write a config file pointing at URL. The file format follows the
extension of --config: .toml for TOML, anything else for YAML.

Examples:
  chupacabra config set-server https://api.example.com/api
  chupacabra config set-server localhost:3000 --credentials-backend redis --redis-addr localhost:6379`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cc.configPath()
			if err != nil {
				return err
			}

			cfg := &Config{
				Version:     configVersion,
				ServerURL:   MorphServer(args[0]),
				Timeout:     timeout,
				Credentials: creds,
			}
			if err := cfg.ValidateConfig(); err != nil {
				return err
			}
			if err := cfg.WriteConfig(path); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}

			if cc.opts.jsonOutput {
				printJSON(cc.out, map[string]string{
					"server":      cfg.ServerURL,
					"config_file": path,
				})
			} else {
				fmt.Fprintf(cc.out, "Server configured: %s\n", cfg.ServerURL)
				fmt.Fprintf(cc.out, "Config file: %s\n", path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&timeout, "timeout", "", "Per-call timeout, e.g. 15s")
	cmd.Flags().StringVar(&creds.Backend, "credentials-backend", credstore.BackendFile, "Where to keep the access token: memory, file or redis")
	cmd.Flags().StringVar(&creds.Path, "credentials-path", "", "Token file for the file backend")
	cmd.Flags().StringVar(&creds.RedisAddr, "redis-addr", "", "Redis address for the redis backend")
	cmd.Flags().StringVar(&creds.RedisKey, "redis-key", "", "Redis key for the redis backend")
	return cmd
}

func newConfigShowCmd(cc *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cc.configPath()
			if err != nil {
				return err
			}
			cfg, err := LoadConfig(path)
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					warnLabel.Fprintf(cc.out, "No config file at %s\n", path)
					return ErrAlreadyHandled
				}
				return err
			}
			if cc.opts.jsonOutput {
				printJSON(cc.out, map[string]any{
					"config_file": path,
					"server_url":  cfg.ServerURL,
					"timeout":     cfg.GetTimeout().String(),
					"log_level":   cfg.LogLevel,
					"credentials": cfg.Credentials,
				})
				return nil
			}
			backend := cfg.Credentials.Backend
			if backend == "" {
				backend = credstore.BackendFile
			}
			fmt.Fprintf(cc.out, "Config file: %s\n", path)
			fmt.Fprintf(cc.out, "Server:      %s\n", cfg.ServerURL)
			fmt.Fprintf(cc.out, "Timeout:     %s\n", cfg.GetTimeout())
			fmt.Fprintf(cc.out, "Credentials: %s\n", backend)
			return nil
		},
	}
}
