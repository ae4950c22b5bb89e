package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nmoreau/foliobot/assist"
	"github.com/nmoreau/foliobot/config"
	"github.com/nmoreau/foliobot/portfolio"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the assistant a single question",
	Long: `Ask the assistant a one-shot question and print the answer.

Examples:
  foliobot ask "what skills do you have"
  foliobot ask where are you based`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(_ *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	snap, err := portfolio.Load(cfg.PortfolioPath())
	if err != nil {
		return err
	}

	kb := assist.Build(snap)
	fmt.Println(assist.Match(strings.Join(args, " "), kb))
	return nil
}
