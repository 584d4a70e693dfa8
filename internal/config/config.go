package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/scicalc"
	"github.com/zephyrtronium/scicalc/internal/logging"
)

// Config is the calculator's file configuration. Command-line flags override
// the values it holds.
type Config struct {
	// Mode is the initial trig mode, "deg" or "rad".
	Mode string `yaml:"mode"`
	// LogLevel is the minimum level logged to stderr.
	LogLevel string `yaml:"log_level"`
	// MetricsAddr is the address to serve Prometheus metrics on. Empty
	// disables the listener.
	MetricsAddr string `yaml:"metrics_addr"`
	// NoColor disables colored output.
	NoColor bool `yaml:"no_color"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Mode:     "deg",
		LogLevel: "warn",
	}
}

// Load reads a YAML configuration file. Fields missing from the file keep
// their defaults. An empty path or a file that does not exist yields the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the mode and log level are recognized.
func (c Config) Validate() error {
	if _, err := c.TrigMode(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// TrigMode parses the configured trig mode.
func (c Config) TrigMode() (scicalc.Mode, error) {
	return scicalc.ParseMode(c.Mode)
}

// Level parses the configured log level.
func (c Config) Level() (slog.Level, error) {
	return logging.ParseLevel(c.LogLevel)
}
