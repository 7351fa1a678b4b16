package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nikolayk812/shopcart/internal/config"
	"github.com/nikolayk812/shopcart/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// set by -ldflags "-X main.version=..."
var version = "dev"

// cli is the state of one command tree, filled in by flag parsing and setup.
type cli struct {
	configPath string
	verbose    bool

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "shopcart",
		Short: "Terminal storefront with a persistent shopping cart",
		Long: `shopcart lists products from a remote catalog and keeps a shopping cart
that survives restarts.

Run without arguments to start the interactive storefront.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
		},
		RunE: c.runInteractive,
	}

	rootCmd.PersistentFlags().StringVar(&c.configPath, "config", config.DefaultPath(), "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd(), c.newProductsCmd(), c.newCartCmd())

	return rootCmd
}

func (c *cli) setup(cmd *cobra.Command, args []string) error {
	var err error
	c.cfg, err = config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	opts := logging.Options{Level: c.cfg.Log.Level}
	if c.verbose {
		opts.Level = "debug"
	}
	// the interactive UI owns the terminal, so its logs go to a file
	if cmd == cmd.Root() {
		opts.File = c.cfg.Log.File
	}

	c.logger, err = logging.New(opts)
	if err != nil {
		return fmt.Errorf("logging.New: %w", err)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the shopcart version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "shopcart %s\n", version)
		},
	}
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
