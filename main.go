// foliobot is a local conversational assistant for a portfolio site.
package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/nmoreau/foliobot/cmd"
	"github.com/nmoreau/foliobot/config"
	"github.com/nmoreau/foliobot/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	if err := logger.Init(cfg.BuildLoggerConfig(), config.Dir()); err != nil {
		fmt.Fprintln(os.Stderr, "logger init error:", err)
	}
	cmd.Execute()
}
