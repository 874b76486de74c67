package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func TestDefaultConfig_NeedsCapture(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "capture.path") {
		t.Fatalf("expected capture.path error, got %v", err)
	}

	cfg.Capture.Path = "knob.bin"
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults plus a path to validate, got %v", err)
	}
}

func TestLoadConfigFile(t *testing.T) {
	p := writeFile(t, "quadtrace.yaml", `
capture:
  path: captures/knob.bin
  sample_rate_hz: 20000
  active_low: true
report:
  format: yaml
  events: true
logging:
  level: debug
`)
	cfg, err := LoadConfigFile(p)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if cfg.Capture.Path != "captures/knob.bin" {
		t.Errorf("expected capture path, got %q", cfg.Capture.Path)
	}
	if cfg.Capture.SampleRateHz != 20000 || cfg.Capture.ActiveLow == nil || !*cfg.Capture.ActiveLow {
		t.Errorf("unexpected capture config: %+v", cfg.Capture)
	}
	if cfg.Report.Format != reportFormatYAML || !cfg.Report.Events {
		t.Errorf("unexpected report config: %+v", cfg.Report)
	}
	// Not in the file, so the default survives.
	if cfg.Report.BurstWindowMS != defaultBurstWindowMS {
		t.Errorf("expected default burst window %d, got %d", defaultBurstWindowMS, cfg.Report.BurstWindowMS)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadConfigFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown field", "capture:\n  pth: x\n", "decode config yaml"},
		{"trailing document", "logging:\n  level: info\n---\nlogging:\n  level: debug\n", "trailing document"},
		{"bad yaml", "capture: [\n", "decode config yaml"},
		{"trailing document with unknown keys", "logging:\n  level: info\n---\nextra: 1\n", "trailing document"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeFile(t, "c.yaml", tt.content)
			_, err := LoadConfigFile(p)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}

	if _, err := LoadConfigFile(""); err == nil {
		t.Error("expected error for empty path")
	}
	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

// TestLoadConfigFile_TrailingComment tests that comments after the document are allowed
func TestLoadConfigFile_TrailingComment(t *testing.T) {
	p := writeFile(t, "c.yaml", "logging:\n  level: debug\n\n# end of config\n")
	cfg, err := LoadConfigFile(p)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected level debug, got %q", cfg.Logging.Level)
	}
	if cfg.Capture.ActiveLow != nil {
		t.Errorf("expected active_low unset, got %v", *cfg.Capture.ActiveLow)
	}
}

// TestLoadConfigFile_Empty tests that an empty file yields the defaults
func TestLoadConfigFile_Empty(t *testing.T) {
	for _, content := range []string{"", "# nothing configured yet\n"} {
		cfg, err := LoadConfigFile(writeFile(t, "c.yaml", content))
		if err != nil {
			t.Fatalf("LoadConfigFile(%q): %v", content, err)
		}
		if cfg.Report.Format != reportFormatText || cfg.Logging.Level != defaultLogLevel {
			t.Errorf("LoadConfigFile(%q): expected defaults, got %+v", content, cfg)
		}
	}
}

func TestFlagOverrides_Apply(t *testing.T) {
	cfg := DefaultConfig()
	on := true
	cfg.Capture.ActiveLow = &on
	cfg.Report.BurstWindowMS = 500

	path := "override.yaml"
	activeLow := false
	window := 0
	FlagOverrides{
		CapturePath:   &path,
		ActiveLow:     &activeLow,
		BurstWindowMS: &window,
	}.Apply(&cfg)

	if cfg.Capture.Path != path {
		t.Errorf("expected path %q, got %q", path, cfg.Capture.Path)
	}
	if cfg.Capture.ActiveLow == nil || *cfg.Capture.ActiveLow {
		t.Error("expected zero-value override to set active_low=false")
	}
	activeLow = true
	if *cfg.Capture.ActiveLow {
		t.Error("expected config to hold its own copy of the override")
	}
	if cfg.Report.BurstWindowMS != 0 {
		t.Errorf("expected burst window 0, got %d", cfg.Report.BurstWindowMS)
	}
	if cfg.Report.Format != reportFormatText {
		t.Errorf("expected untouched report format, got %q", cfg.Report.Format)
	}

	// nil config is a no-op
	FlagOverrides{CapturePath: &path}.Apply(nil)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"capture format", func(c *Config) { c.Capture.Format = "csv" }, "capture.format"},
		{"sample rate", func(c *Config) { c.Capture.SampleRateHz = -1 }, "capture.sample_rate_hz"},
		{"report format", func(c *Config) { c.Report.Format = "json" }, "report.format"},
		{"burst window", func(c *Config) { c.Report.BurstWindowMS = -5 }, "report.burst_window_ms"},
		{"empty log level", func(c *Config) { c.Logging.Level = "" }, "logging.level"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "invalid log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Capture.Path = "knob.bin"
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	tests := map[string]string{
		"":             "",
		"/abs/path":    "/abs/path",
		"rel/path":     "rel/path",
		"~":            home,
		"~/caps/a.bin": filepath.Join(home, "caps/a.bin"),
		"~other/a.bin": "~other/a.bin",
	}
	for in, want := range tests {
		if got := ExpandPath(in); got != want {
			t.Errorf("ExpandPath(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	for in, want := range map[string]LogLevel{
		"error":   LogLevelError,
		"WARN":    LogLevelWarn,
		"warning": LogLevelWarn,
		"info":    LogLevelInfo,
		"Debug":   LogLevelDebug,
	} {
		got, err := parseLogLevel(in)
		if err != nil || got != want {
			t.Errorf("parseLogLevel(%q): expected %q, got %q (err %v)", in, want, got, err)
		}
	}
	if _, err := parseLogLevel("trace"); err == nil {
		t.Error("expected error for unknown level")
	}
}
