package config

const (
	defaultPortfolioPath = "portfolio.yaml"
	defaultReloadSpec    = "@every 30s"
	defaultGreeting      = "Hi! I'm the portfolio assistant. Ask me about skills, experience, projects, or how to get in touch."
	defaultReplyDelayMs  = 800
	defaultOrnamentMs    = 250
	defaultHintTimeoutMs = 5000
	defaultWebAddr       = "127.0.0.1:8080"
	defaultLogLevel      = "info"
	defaultLogFile       = "logs/foliobot.log"
)

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Portfolio: PortfolioConfig{
			Path:       defaultPortfolioPath,
			ReloadSpec: defaultReloadSpec,
		},
		Widget: WidgetConfig{
			Greeting:        defaultGreeting,
			ReplyDelayMs:    defaultReplyDelayMs,
			OrnamentDelayMs: defaultOrnamentMs,
			HintTimeoutMs:   defaultHintTimeoutMs,
		},
		Channels: &ChannelsConfig{
			Web: &WebChannelConfig{
				Addr: defaultWebAddr,
			},
		},
		Logging: defaultLoggingConfig(),
	}
}

func defaultLoggingConfig() LoggingConfig {
	enabled := true
	return LoggingConfig{
		Enabled: &enabled,
		Level:   defaultLogLevel,
		Stdout:  true,
		File:    defaultLogFile,
	}
}

func (c *Config) applyDefaults() {
	if c.Portfolio.Path == "" {
		c.Portfolio.Path = defaultPortfolioPath
	}
	if c.Portfolio.ReloadSpec == "" {
		c.Portfolio.ReloadSpec = defaultReloadSpec
	}

	if c.Widget.Greeting == "" {
		c.Widget.Greeting = defaultGreeting
	}
	if c.Widget.ReplyDelayMs <= 0 {
		c.Widget.ReplyDelayMs = defaultReplyDelayMs
	}
	if c.Widget.OrnamentDelayMs <= 0 {
		c.Widget.OrnamentDelayMs = defaultOrnamentMs
	}
	if c.Widget.HintTimeoutMs <= 0 {
		c.Widget.HintTimeoutMs = defaultHintTimeoutMs
	}

	if c.Channels == nil {
		c.Channels = &ChannelsConfig{}
	}
	if c.Channels.Web == nil {
		c.Channels.Web = &WebChannelConfig{}
	}
	if c.Channels.Web.Addr == "" {
		c.Channels.Web.Addr = defaultWebAddr
	}

	def := defaultLoggingConfig()
	if c.Logging == (LoggingConfig{}) {
		c.Logging = def
		return
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Level
	}
	if c.Logging.Enabled == nil {
		c.Logging.Enabled = def.Enabled
	}
	if !c.Logging.Stdout && c.Logging.File == "" {
		c.Logging.Stdout = def.Stdout
		c.Logging.File = def.File
	}
}
