package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/AlexZinkM/ezkey-wallet/internal/config"
	"github.com/AlexZinkM/ezkey-wallet/internal/logger"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// GlobalFlags are the flags shared by every command
type GlobalFlags struct {
	Yes     bool // approve wallet requests without prompting
	Verbose bool
}

var (
	globalFlags GlobalFlags
	log         *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ezkey",
	Short: "EzKey wallet for Polygon",
	Long: `EzKey wallet - local keystore wallet for EzKey NFTs and EZOCH rewards.

Configuration is read from the environment (EZKEY_FILE_PATH, POLYGON_RPC_URL,
EZKEY_CONTRACT, EZOCH_CONTRACT, ...). The keystore password is prompted on
the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(); err != nil {
			return err
		}
		cfg := config.Get()

		level := cfg.LogLevel
		if globalFlags.Verbose {
			level = "debug"
		}
		var err error
		log, err = logger.New(logger.Options{
			Level:   level,
			File:    cfg.LogFile,
			Console: cmd.Name() == serveCmd.Name() || globalFlags.Verbose,
		})
		if err != nil {
			return fmt.Errorf("failed to init logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Yes, "yes", "y", false, "approve wallet requests without prompting")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Verbose, "verbose", "v", false, "debug logging to the console")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(rekeyCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(networkCmd)
	rootCmd.AddCommand(switchCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(estimateCmd)
	for _, c := range actionCmds() {
		rootCmd.AddCommand(c)
	}
}
