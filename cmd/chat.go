package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nmoreau/foliobot/assist"
	"github.com/nmoreau/foliobot/channel"
	"github.com/nmoreau/foliobot/config"
	"github.com/nmoreau/foliobot/portfolio"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the assistant interactively",
	Long: `Start an interactive conversation in this terminal, including the
simulated thinking delay of the widget. Type "exit" or "quit" to leave.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	snap, err := portfolio.Load(cfg.PortfolioPath())
	if err != nil {
		return err
	}

	ctrl := assist.NewController(assist.Build(snap), cfg.Widget.Greeting, cfg.Delays(), nil)
	defer ctrl.Dispose()
	ctrl.Mount()

	manager := channel.NewManager()
	cli := channel.NewCLIChannel(channel.CLIConfig{Prompt: "you> "})
	manager.Register(cli)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := manager.StartAll(ctx); err != nil {
		return err
	}

	dispatcher := NewDispatcher(manager, ctrl)

	// Consume events inline: the stream ends when the reader hits EOF or
	// an exit command, which ends the session.
	for {
		select {
		case <-ctx.Done():
			return manager.StopAll()
		case ev, ok := <-cli.Events():
			if !ok {
				cancel()
				return manager.StopAll()
			}
			dispatcher.apply(cli.Name(), ev)
		}
	}
}
