// Package config handles configuration loading and saving.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nmoreau/foliobot/assist"
	"github.com/nmoreau/foliobot/logger"
)

const configFileName = "config.yaml"

var configDirOverride string

// SetConfigDir overrides the config directory for the current process.
// Empty value clears the override.
func SetConfigDir(dir string) {
	configDirOverride = strings.TrimSpace(dir)
}

// Config is the root configuration structure.
type Config struct {
	Portfolio PortfolioConfig `json:"portfolio" yaml:"portfolio"`
	Widget    WidgetConfig    `json:"widget,omitempty" yaml:"widget,omitempty"`
	Channels  *ChannelsConfig `json:"channels,omitempty" yaml:"channels,omitempty"`
	Logging   LoggingConfig   `json:"logging,omitempty" yaml:"logging,omitempty"`
}

// PortfolioConfig locates the snapshot and its reload schedule.
type PortfolioConfig struct {
	Path       string `json:"path,omitempty" yaml:"path,omitempty"`             // defaults to portfolio.yaml in the config dir
	ReloadSpec string `json:"reloadSpec,omitempty" yaml:"reloadSpec,omitempty"` // cron spec, defaults to "@every 30s"
}

// WidgetConfig contains chat-widget behavior settings.
type WidgetConfig struct {
	Greeting        string `json:"greeting,omitempty" yaml:"greeting,omitempty"`
	ReplyDelayMs    int    `json:"replyDelayMs,omitempty" yaml:"replyDelayMs,omitempty"`       // defaults to 800
	OrnamentDelayMs int    `json:"ornamentDelayMs,omitempty" yaml:"ornamentDelayMs,omitempty"` // defaults to 250
	HintTimeoutMs   int    `json:"hintTimeoutMs,omitempty" yaml:"hintTimeoutMs,omitempty"`     // defaults to 5000
}

// ChannelsConfig contains channel configurations.
type ChannelsConfig struct {
	Web *WebChannelConfig `json:"web,omitempty" yaml:"web,omitempty"`
}

// WebChannelConfig contains web widget endpoint configuration.
type WebChannelConfig struct {
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"` // default: 127.0.0.1:8080
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Enabled *bool  `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Level   string `json:"level,omitempty" yaml:"level,omitempty"`   // debug, info, warn, error
	Stdout  bool   `json:"stdout,omitempty" yaml:"stdout,omitempty"` // log to stdout
	File    string `json:"file,omitempty" yaml:"file,omitempty"`     // log file path
}

// Dir returns the configuration directory.
func Dir() string {
	if configDirOverride != "" {
		return configDirOverride
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".foliobot")
}

// Load reads config.yaml from the config dir, applies defaults and env
// overrides. A missing file yields the default config.
func Load() (*Config, error) {
	path := filepath.Join(Dir(), configFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	cfg.applyEnv()
	return &cfg, nil
}

// Save writes the config back to config.yaml in the config dir.
func (c *Config) Save() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, configFileName), data, 0644)
}

// PortfolioPath resolves the snapshot path against the config dir.
func (c *Config) PortfolioPath() string {
	path := c.Portfolio.Path
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(Dir(), path)
}

// Delays converts the widget timing settings for the controller.
func (c *Config) Delays() assist.Delays {
	return assist.Delays{
		Reply:    time.Duration(c.Widget.ReplyDelayMs) * time.Millisecond,
		Ornament: time.Duration(c.Widget.OrnamentDelayMs) * time.Millisecond,
		Hint:     time.Duration(c.Widget.HintTimeoutMs) * time.Millisecond,
	}
}

// BuildLoggerConfig converts logging settings for logger.Init.
func (c *Config) BuildLoggerConfig() logger.Config {
	enabled := true
	if c.Logging.Enabled != nil {
		enabled = *c.Logging.Enabled
	}
	return logger.Config{
		Enabled: enabled,
		Level:   c.Logging.Level,
		Stdout:  c.Logging.Stdout,
		File:    c.Logging.File,
	}
}

func (c *Config) applyEnv() {
	if addr := strings.TrimSpace(os.Getenv("FOLIOBOT_ADDR")); addr != "" {
		if c.Channels == nil {
			c.Channels = &ChannelsConfig{}
		}
		if c.Channels.Web == nil {
			c.Channels.Web = &WebChannelConfig{}
		}
		c.Channels.Web.Addr = addr
	}
	if path := strings.TrimSpace(os.Getenv("FOLIOBOT_PORTFOLIO")); path != "" {
		c.Portfolio.Path = path
	}
}
