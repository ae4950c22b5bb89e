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
	"github.com/nmoreau/foliobot/logger"
	"github.com/nmoreau/foliobot/portfolio"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the assistant as a service for the web widget",
	Long: `Run foliobot as a long-running service. The web channel exposes the
chat widget state over a websocket so the site front end can render it;
the portfolio snapshot is re-checked periodically and the knowledge base
is rebuilt only when the file actually changes.

Examples:
  foliobot serve             # web widget endpoint
  foliobot serve --cli       # additionally chat from this terminal`,
	RunE: runServe,
}

var serveWithCLI bool

func init() {
	serveCmd.Flags().BoolVar(&serveWithCLI, "cli", false, "Also attach an interactive CLI channel")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	snapPath := cfg.PortfolioPath()
	snap, err := portfolio.Load(snapPath)
	if err != nil {
		return err
	}

	ctrl := assist.NewController(assist.Build(snap), cfg.Widget.Greeting, cfg.Delays(), nil)
	defer ctrl.Dispose()
	ctrl.Mount()

	reloader := portfolio.NewReloader(snapPath, cfg.Portfolio.ReloadSpec, func(s *portfolio.Snapshot) {
		ctrl.ReplaceKnowledgeBase(assist.Build(s))
	})
	if err := reloader.Start(); err != nil {
		return fmt.Errorf("failed to start snapshot reloader: %w", err)
	}
	defer reloader.Stop()

	manager := channel.NewManager()
	manager.Register(channel.NewWebChannel(channel.WebConfig{Addr: cfg.Channels.Web.Addr}))
	if serveWithCLI {
		manager.Register(channel.NewCLIChannel(channel.CLIConfig{Prompt: "foliobot> "}))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("shutdown signal received")
		cancel()
	}()

	if err := manager.StartAll(ctx); err != nil {
		return fmt.Errorf("failed to start channels: %w", err)
	}

	logger.Info("foliobot service started", "addr", cfg.Channels.Web.Addr)
	fmt.Println("foliobot is running. Press Ctrl+C to stop.")

	dispatcher := NewDispatcher(manager, ctrl)
	dispatcher.Run(ctx)

	if err := manager.StopAll(); err != nil {
		logger.Error("error stopping channels", "err", err)
	}

	logger.Info("foliobot service stopped")
	return nil
}
