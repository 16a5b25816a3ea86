package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultReason      = "A game is running"
	DefaultLogLevel    = "warn"
	DefaultLogFormat   = "text"
	DefaultCallTimeout = 25 * time.Second

	appDir = "xyzen-inhibit"
)

// Environment variables read by Load.
const (
	EnvDebug     = "INHIBIT_DEBUG"
	EnvReason    = "INHIBIT_REASON"
	EnvLogLevel  = "INHIBIT_LOG_LEVEL"
	EnvLogFormat = "INHIBIT_LOG_FORMAT"
)

type Config struct {
	Reason      string        `yaml:"reason"`
	Verbose     bool          `yaml:"verbose"`
	LogLevel    string        `yaml:"log_level"`
	LogFormat   string        `yaml:"log_format"`
	CallTimeout time.Duration `yaml:"call_timeout"`
}

// Flags holds values given on the command line. Zero values mean "not set".
type Flags struct {
	ConfigPath  string
	Reason      string
	Verbose     bool
	LogLevel    string
	LogFormat   string
	CallTimeout time.Duration
	TimeoutSet  bool
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Reason:      DefaultReason,
		LogLevel:    DefaultLogLevel,
		LogFormat:   DefaultLogFormat,
		CallTimeout: DefaultCallTimeout,
	}
}

// Load resolves configuration from flags > env > config file > defaults.
//
// Only a file named explicitly in f.ConfigPath can fail the load. A broken
// default file or an invalid value is reported through warn and replaced by
// its default, so the wrapped command still runs.
func Load(f Flags, getenv func(string) string, warn func(format string, a ...any)) (*Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if warn == nil {
		warn = func(string, ...any) {}
	}
	cfg := Default()

	// 1. Config file as base
	path := f.ConfigPath
	explicit := path != ""
	if !explicit {
		path = configFilePath(getenv)
	}
	if path != "" {
		fromFile, err := readFile(path)
		switch {
		case err == nil:
			cfg = fromFile
		case explicit:
			return nil, err
		case !errors.Is(err, os.ErrNotExist):
			warn("Ignoring config file: %v", err)
		}
	}

	// 2. Environment variables override config file
	if v := getenv(EnvDebug); v != "" {
		cfg.Verbose = true
	}
	if v := getenv(EnvReason); v != "" {
		cfg.Reason = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
	}

	// 3. CLI flags override everything
	if f.Reason != "" {
		cfg.Reason = f.Reason
	}
	if f.Verbose {
		cfg.Verbose = true
	}
	if f.LogLevel != "" {
		cfg.LogLevel = f.LogLevel
	}
	if f.LogFormat != "" {
		cfg.LogFormat = f.LogFormat
	}
	if f.TimeoutSet {
		cfg.CallTimeout = f.CallTimeout
	}

	cfg.sanitize(warn)
	return cfg, nil
}

// readFile decodes path on top of the defaults. On error nothing from the
// file is kept.
func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// sanitize resets every unusable field to its default.
func (c *Config) sanitize(warn func(format string, a ...any)) {
	if strings.TrimSpace(c.Reason) == "" {
		warn("Empty inhibit reason, using %q", DefaultReason)
		c.Reason = DefaultReason
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		warn("Unknown log level %q, using %q", c.LogLevel, DefaultLogLevel)
		c.LogLevel = DefaultLogLevel
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		warn("Unknown log format %q (want \"text\" or \"json\"), using %q", c.LogFormat, DefaultLogFormat)
		c.LogFormat = DefaultLogFormat
	}
	if c.CallTimeout < 0 {
		warn("Negative call timeout %s, using %s", c.CallTimeout, DefaultCallTimeout)
		c.CallTimeout = DefaultCallTimeout
	}
}

func configFilePath(getenv func(string) string) string {
	base := getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, appDir, "config.yaml")
}
