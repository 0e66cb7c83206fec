package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/chupacabra/chupacabra/internal/common/apperrors"
	"github.com/chupacabra/chupacabra/internal/common/eventbus"
	"github.com/chupacabra/chupacabra/internal/common/httpclient"
	"github.com/chupacabra/chupacabra/internal/common/logtrace"
	"github.com/chupacabra/chupacabra/internal/credstore"
	"github.com/chupacabra/chupacabra/internal/services"
	"github.com/chupacabra/chupacabra/internal/session"
	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var ErrAlreadyHandled = errors.New("already handled")

var okLabel = color.New(color.FgGreen)
var errorLabel = color.New(color.FgRed)
var warnLabel = color.New(color.FgYellow)

// globalOptions holds the persistent flags.
type globalOptions struct {
	configFile string
	jsonOutput bool
	output     string
	query      string
	retries    int
	verbose    bool
}

// cliContext is what every command runs against. The API side is built in
// the root pre-run once the config is known.
type cliContext struct {
	opts globalOptions
	out  io.Writer

	cfg     *Config
	store   credstore.Store
	bus     *eventbus.EventBus
	client  *httpclient.Client
	svc     *services.Services
	session *session.Holder
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&cliContext{})
}

func newRootCmd(cc *cliContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chupacabra [command] [flags]",
		Short: "chupacabra CLI - manage a board game resale event",
		Long: `chupacabra is a command line client for the board game resale API.
It manages sessions, sellers and their deposits, members, the game catalogue,
physical copies, orders and statistics.

Examples:
  # Point the CLI at a server
  chupacabra config set-server https://api.example.com/api

  # Log in and check who you are
  chupacabra login --email admin@example.com --password secret
  chupacabra whoami

  # List sellers as JSON
  chupacabra sellers list -j

  # Register a seller from flags
  chupacabra sellers create --set firstName=Ada --set lastName=Lovelace --set-string phone=0612345678`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cc.out = cmd.OutOrStdout()
			return cc.setup(cmd)
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cc.opts.configFile, "config", "", "", "Path to configuration file to override default")
	flags.BoolVarP(&cc.opts.jsonOutput, "json", "j", false, "Output in JSON format")
	flags.StringVarP(&cc.opts.output, "output", "o", "yaml", "Output format: yaml or json")
	flags.StringVarP(&cc.opts.query, "query", "q", "", "Select part of the result with a gjson path")
	flags.IntVar(&cc.opts.retries, "retries", 0, "Retry calls that fail on the network this many times")
	flags.BoolVarP(&cc.opts.verbose, "verbose", "V", false, "Log API calls to stderr")

	rootCmd.AddCommand(
		newVersionCmd(cc),
		newConfigCmd(cc),
		newLoginCmd(cc),
		newLogoutCmd(cc),
		newWhoamiCmd(cc),
		newSessionsCmd(cc),
		newSellersCmd(cc),
		newMembersCmd(cc),
		newGamesCmd(cc),
		newPhysicalGamesCmd(cc),
		newCategoriesCmd(cc),
		newPaymentsCmd(cc),
		newOrdersCmd(cc),
		newStatsCmd(cc),
	)
	return rootCmd
}

// Execute runs the CLI and exits the process on failure.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cc := &cliContext{}
	defer cc.close()

	rootCmd := newRootCmd(cc)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	if errors.Is(err, ErrAlreadyHandled) {
		return 1
	}
	if cc.opts.jsonOutput || cc.opts.output == "json" {
		printJSON(stdout, map[string]any{"result": 0, "error": errorMessage(err)})
	} else {
		errorLabel.Fprintf(stderr, "Error: %v\n", errorMessage(err))
	}
	return 1
}

// errorMessage turns an error into what the user should read.
func errorMessage(err error) string {
	switch {
	case apperrors.KindOf(err) == apperrors.KindUnauthorized:
		return "session expired, please login again"
	case errors.Is(err, session.ErrNotLoggedIn):
		return `not logged in, run "chupacabra login" first`
	default:
		return err.Error()
	}
}

// needsAPI reports whether cmd talks to the server.
func needsAPI(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "config" || c.Name() == "version" {
			return false
		}
	}
	return cmd.Runnable() && cmd.HasParent()
}

func (cc *cliContext) setup(cmd *cobra.Command) error {
	if cc.opts.output != "yaml" && cc.opts.output != "json" {
		return fmt.Errorf("unsupported output format %q", cc.opts.output)
	}
	if cc.opts.output == "json" {
		cc.opts.jsonOutput = true
	}
	if cc.opts.retries < 0 {
		return errors.New("--retries cannot be negative")
	}

	if !needsAPI(cmd) {
		logtrace.InitLoggerTo(cmd.ErrOrStderr(), "", true)
		return nil
	}

	cfg, err := LoadConfig(cc.opts.configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return errors.New(`chupacabra config file not found. Configure chupacabra with "chupacabra config set-server" first`)
		}
		return err
	}
	cc.cfg = cfg

	level := cfg.LogLevel
	if cc.opts.verbose {
		level = "debug"
	}
	logtrace.InitLoggerTo(cmd.ErrOrStderr(), level, true)

	store, err := credstore.Open(cfg.Credentials)
	if err != nil {
		return fmt.Errorf("failed to open credentials store: %w", err)
	}
	cc.store = store
	cc.bus = eventbus.New()

	client, err := httpclient.NewClient(
		httpclient.Config{BaseURL: cfg.ServerURL, Timeout: cfg.GetTimeout()},
		store, cc.bus,
		httpclient.WithUserAgent("chupacabra-cli/"+getCLIVersion()),
	)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}
	cc.client = client
	cc.svc = services.New(client)
	cc.session = session.New(store, cc.bus, cc.svc.Auth, session.WithOnExpired(func() {
		log.Debug().Msg("current user cleared after expiry")
	}))

	cmd.SetContext(logtrace.WithRequestID(cmd.Context()))
	return nil
}

func (cc *cliContext) close() {
	if cc.session != nil {
		cc.session.Close()
	}
	if cc.bus != nil {
		cc.bus.Shutdown()
	}
}

// newVersionCmd creates and returns a new version command
func newVersionCmd(cc *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of chupacabra",
		Run: func(cmd *cobra.Command, args []string) {
			configPath := cc.opts.configFile
			if configPath == "" {
				var err error
				configPath, err = GetDefaultConfigPath()
				if err != nil {
					configPath = "unknown"
				}
			}

			if cc.opts.jsonOutput {
				printJSON(cc.out, map[string]string{
					"version":     getCLIVersion(),
					"config_file": configPath,
				})
			} else {
				fmt.Fprintf(cc.out, "chupacabra CLI %s\n", getCLIVersion())
				fmt.Fprintf(cc.out, "Config file: %s\n", configPath)
			}
		},
	}
}

// getCLIVersion returns the current CLI version
func getCLIVersion() string {
	return "v0.1.0"
}
