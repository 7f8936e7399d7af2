// Package app provides the entry point for the nexus command-line
// application: one cobra.Command per subcommand, each wiring fan-out,
// resolution, and attach behind argument parsing.
package app

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nexuscli/nexus/internal/config"
	"github.com/nexuscli/nexus/internal/logging"
)

var fleet config.Fleet

// NewRootCmd creates the root command for the nexus CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "nexus",
		DisableAutoGenTag: true,
		Short:             "nexus orchestrates terminal-multiplexer sessions across a fleet of nodes",
		Long: `nexus is a stateless orchestrator for terminal-multiplexer sessions distributed
across a fleet of nodes reached over a multiplexed shell transport.

It never owns state of its own: every command fans a live query out to
the fleet, or dispatches a single targeted operation, and exits.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			logging.Initialize(debug)

			loaded, err := config.Load(viper.GetString("config"))
			if err != nil {
				return err
			}
			fleet = loaded

			ctx, _ := signal.NotifyContext(context.Background(), os.Interrupt)
			cmd.SetContext(ctx)
			return nil
		},
	}

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "Path to fleet config file (default: XDG config dir)")

	if err := viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		logging.Warnf("error binding debug flag: %v", err)
	}
	if err := viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config")); err != nil {
		logging.Warnf("error binding config flag: %v", err)
	}

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newNewCmd())
	rootCmd.AddCommand(newAttachCmd())
	rootCmd.AddCommand(newPeekCmd())
	rootCmd.AddCommand(newLogsCmd())
	rootCmd.AddCommand(newSendCmd())
	rootCmd.AddCommand(newKillCmd())
	rootCmd.AddCommand(newGCCmd())
	rootCmd.AddCommand(newDashCmd())
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	return rootCmd
}
