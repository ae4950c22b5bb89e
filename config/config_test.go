package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func withTempConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	SetConfigDir(dir)
	t.Cleanup(func() { SetConfigDir("") })
	return dir
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	withTempConfigDir(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Widget.ReplyDelayMs != 800 || cfg.Widget.OrnamentDelayMs != 250 || cfg.Widget.HintTimeoutMs != 5000 {
		t.Fatalf("default widget timing = %+v", cfg.Widget)
	}
	if cfg.Channels == nil || cfg.Channels.Web == nil || cfg.Channels.Web.Addr == "" {
		t.Fatalf("default web channel missing: %+v", cfg.Channels)
	}
	if cfg.Portfolio.ReloadSpec != "@every 30s" {
		t.Fatalf("default reload spec = %q", cfg.Portfolio.ReloadSpec)
	}
}

func TestLoadMergesDefaultsIntoPartialFile(t *testing.T) {
	dir := withTempConfigDir(t)
	data := `
widget:
  replyDelayMs: 100
channels:
  web:
    addr: "127.0.0.1:9999"
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Widget.ReplyDelayMs != 100 {
		t.Fatalf("explicit replyDelayMs lost: %d", cfg.Widget.ReplyDelayMs)
	}
	if cfg.Widget.HintTimeoutMs != 5000 {
		t.Fatalf("hintTimeoutMs default not applied: %d", cfg.Widget.HintTimeoutMs)
	}
	if cfg.Channels.Web.Addr != "127.0.0.1:9999" {
		t.Fatalf("explicit addr lost: %q", cfg.Channels.Web.Addr)
	}
	if cfg.Widget.Greeting == "" {
		t.Fatal("greeting default not applied")
	}
}

func TestEnvOverrides(t *testing.T) {
	withTempConfigDir(t)
	t.Setenv("FOLIOBOT_ADDR", "0.0.0.0:7000")
	t.Setenv("FOLIOBOT_PORTFOLIO", "/tmp/folio.yaml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Channels.Web.Addr != "0.0.0.0:7000" {
		t.Fatalf("env addr override = %q", cfg.Channels.Web.Addr)
	}
	if cfg.PortfolioPath() != "/tmp/folio.yaml" {
		t.Fatalf("env portfolio override = %q", cfg.PortfolioPath())
	}
}

func TestDelaysConversion(t *testing.T) {
	cfg := DefaultConfig()
	d := cfg.Delays()
	if d.Reply != 800*time.Millisecond || d.Ornament != 250*time.Millisecond || d.Hint != 5*time.Second {
		t.Fatalf("Delays() = %+v", d)
	}
}

func TestPortfolioPathResolvesRelativeToConfigDir(t *testing.T) {
	dir := withTempConfigDir(t)
	cfg := DefaultConfig()
	want := filepath.Join(dir, "portfolio.yaml")
	if got := cfg.PortfolioPath(); got != want {
		t.Fatalf("PortfolioPath() = %q, want %q", got, want)
	}
}
