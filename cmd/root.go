// Package cmd contains the foliobot CLI commands.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nmoreau/foliobot/config"
)

var configDirFlag string

var rootCmd = &cobra.Command{
	Use:   "foliobot",
	Short: "Local conversational assistant for a portfolio site",
	Long: `foliobot answers questions about a portfolio from a structured
snapshot: it builds a fixed knowledge base, matches free-text queries by
keyword, and drives the chat-widget conversation state machine.

No network model is involved; every answer comes from the local snapshot.`,
	PersistentPreRun: func(*cobra.Command, []string) {
		if configDirFlag != "" {
			config.SetConfigDir(configDirFlag)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "Override the config directory (default ~/.foliobot)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
