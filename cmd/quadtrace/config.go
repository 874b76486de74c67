package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the YAML configuration for quadtrace.
//
// Every field can also be set from a flag; flags win over the file.
type Config struct {
	Capture CaptureConfig `yaml:"capture"`
	Report  ReportConfig  `yaml:"report"`
	Logging LoggingConfig `yaml:"logging"`
}

type CaptureConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format,omitempty"` // "yaml", "raw", or empty to pick by extension

	// SampleRateHz overrides the rate recorded in the capture when > 0.
	// Raw captures carry no rate of their own.
	SampleRateHz int `yaml:"sample_rate_hz,omitempty"`

	// ActiveLow inverts both pins before decoding (pull-up wiring, idles at 11).
	// When set it replaces the capture's own active_low field; nil keeps it.
	ActiveLow *bool `yaml:"active_low,omitempty"`
}

type ReportConfig struct {
	Format        string `yaml:"format"`          // "text" or "yaml"
	Events        bool   `yaml:"events"`          // log every detent at debug level
	BurstWindowMS int    `yaml:"burst_window_ms"` // 0 disables burst detection
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a fully-populated Config with defaults.
func DefaultConfig() Config {
	return Config{
		Capture: CaptureConfig{
			Format: captureFormatAuto,
		},
		Report: ReportConfig{
			Format:        reportFormatText,
			BurstWindowMS: defaultBurstWindowMS,
		},
		Logging: LoggingConfig{
			Level: defaultLogLevel,
		},
	}
}

// LoadConfigFile reads and parses a YAML config file on top of DefaultConfig.
// Unknown fields and trailing documents are rejected.
func LoadConfigFile(path string) (Config, error) {
	if path == "" {
		return Config{}, errors.New("config path is empty")
	}
	b, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil {
		// An empty (or comments-only) file leaves the defaults in place.
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("decode config yaml: %w", err)
	}

	// Decode into a bare node so a second document is caught whatever its keys.
	if err := dec.Decode(&yaml.Node{}); !errors.Is(err, io.EOF) {
		return Config{}, errors.New("decode config yaml: unexpected trailing document")
	}

	return cfg, nil
}

// FlagOverrides holds values of flags that were explicitly set on the
// command line. A nil pointer means "not set".
type FlagOverrides struct {
	CapturePath   *string
	CaptureFormat *string
	SampleRateHz  *int
	ActiveLow     *bool

	ReportFormat  *string
	ReportEvents  *bool
	BurstWindowMS *int

	LogLevel *string
}

// Apply merges the overrides into cfg. Non-nil pointers are applied even if
// they hold a zero value.
func (o FlagOverrides) Apply(cfg *Config) {
	if cfg == nil {
		return
	}

	if o.CapturePath != nil {
		cfg.Capture.Path = *o.CapturePath
	}
	if o.CaptureFormat != nil {
		cfg.Capture.Format = *o.CaptureFormat
	}
	if o.SampleRateHz != nil {
		cfg.Capture.SampleRateHz = *o.SampleRateHz
	}
	if o.ActiveLow != nil {
		v := *o.ActiveLow
		cfg.Capture.ActiveLow = &v
	}

	if o.ReportFormat != nil {
		cfg.Report.Format = *o.ReportFormat
	}
	if o.ReportEvents != nil {
		cfg.Report.Events = *o.ReportEvents
	}
	if o.BurstWindowMS != nil {
		cfg.Report.BurstWindowMS = *o.BurstWindowMS
	}

	if o.LogLevel != nil {
		cfg.Logging.Level = *o.LogLevel
	}
}

// Validate checks config invariants and returns a user-friendly error.
// Call it after defaults, file and overrides are applied.
func (c *Config) Validate() error {
	// Capture
	if c.Capture.Path == "" {
		return errors.New("capture.path must not be empty")
	}
	switch c.Capture.Format {
	case captureFormatAuto, captureFormatYAML, captureFormatRaw:
	default:
		return fmt.Errorf("capture.format must be %q or %q (or empty for auto)", captureFormatYAML, captureFormatRaw)
	}
	if c.Capture.SampleRateHz < 0 {
		return errors.New("capture.sample_rate_hz must be >= 0")
	}

	// Report
	if c.Report.Format != reportFormatText && c.Report.Format != reportFormatYAML {
		return fmt.Errorf("report.format must be %q or %q", reportFormatText, reportFormatYAML)
	}
	if c.Report.BurstWindowMS < 0 {
		return errors.New("report.burst_window_ms must be >= 0")
	}

	// Logging
	if c.Logging.Level == "" {
		return errors.New("logging.level must not be empty")
	}
	if _, err := parseLogLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}

	return nil
}

// BurstWindow returns the burst window as a duration.
func (c *Config) BurstWindow() time.Duration {
	return time.Duration(c.Report.BurstWindowMS) * time.Millisecond
}

// ExpandPath expands a leading "~" in a path using $HOME.
func ExpandPath(p string) string {
	if p == "" {
		return p
	}
	if p[0] != '~' {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if p == "~" {
		return home
	}
	if len(p) >= 2 && (p[1] == '/' || p[1] == '\\') {
		return filepath.Join(home, p[2:])
	}
	return p
}
