package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"redseam/internal/api"
	"redseam/internal/cart"
	"redseam/internal/config"
	"redseam/internal/logging"
	"redseam/internal/session"
	"redseam/internal/store"
)

var (
	// Global flags
	verbose    bool
	configPath string
	apiBaseURL string

	// Logger. No-op until PersistentPreRunE builds the real one; browse
	// keeps the no-op because the TUI owns the terminal.
	logger = zap.NewNop()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "redseam",
	Short: "RedSeam Clothing - terminal storefront client",
	Long: `redseam is a terminal client for the RedSeam clothing store.

Browse the catalog with filters, sorting and pagination, inspect products,
manage a server-backed shopping cart, and check out - all against the remote
store API. Run 'redseam browse' for the interactive interface, or use the
subcommands directly.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The interactive browser owns the terminal; skip the logger there
		if cmd.Name() == "browse" {
			return nil
		}

		l, err := buildLogger(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
		logging.CloseAll()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// buildLogger builds the CLI logger; verbose lowers the threshold to debug.
func buildLogger(verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zcfg.Build()
}

// app bundles the explicitly-wired application state. Everything is
// constructed here at the composition root and injected; no package holds a
// hidden singleton.
type app struct {
	cfg      *config.Config
	client   *api.Client
	sessions *session.Manager
	cart     *cart.Manager
	history  *store.Store
}

// newApp builds the application state from config. The history store is
// optional: a failure there degrades to no local history rather than
// blocking shopping.
func newApp() (*app, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if apiBaseURL != "" {
		cfg.API.BaseURL = apiBaseURL
	}
	logger.Debug("Configuration loaded",
		zap.String("path", path),
		zap.String("api", cfg.API.BaseURL),
		zap.String("state_dir", cfg.Storage.StateDir))

	if err := logging.Initialize(cfg.Storage.StateDir, cfg.Logging.Debug, cfg.Logging.Level); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	sessions := session.NewManager(cfg.SessionPath())

	client, err := api.New(cfg.API.BaseURL, cfg.GetAPITimeout(), sessions.Token)
	if err != nil {
		return nil, err
	}

	history, err := store.Open(cfg.Storage.HistoryPath)
	if err != nil {
		logger.Warn("History store unavailable, continuing without local history",
			zap.String("path", cfg.Storage.HistoryPath), zap.Error(err))
		fmt.Fprintf(os.Stderr, "warning: history store unavailable: %v\n", err)
		history = nil
	}

	var receipts cart.ReceiptRecorder
	if history != nil {
		receipts = history
	}
	carts := cart.NewManager(client, sessions, receipts, cfg.Checkout.Delivery)

	// Logging out anywhere (including another process touching the
	// session file) empties the local cart mirror.
	sessions.Subscribe(func() {
		if !sessions.Authenticated() {
			carts.Clear()
		}
	})

	return &app{
		cfg:      cfg,
		client:   client,
		sessions: sessions,
		cart:     carts,
		history:  history,
	}, nil
}

func (a *app) close() {
	if a.history != nil {
		a.history.Close()
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.redseam/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiBaseURL, "api-url", "", "override the store API base URL")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(cartCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(browseCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
