// File: internal/config/config.go (complete file)

package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/baptistax/nettxt/internal/filter"
	"github.com/baptistax/nettxt/internal/logging"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	LogLevel string `yaml:"log_level"`

	// NetTxt is the report path. Empty disables the writer.
	NetTxt        string        `yaml:"nettxt"`
	FlushInterval time.Duration `yaml:"flush_interval"`
	Location      string        `yaml:"location"`

	StateFile  string `yaml:"state_file"`
	WatchState bool   `yaml:"watch_state"`

	FilterExport []string `yaml:"filter_export"`

	MetricsAddr string `yaml:"metrics_addr"`
}

func Default() Config {
	return Config{
		LogLevel:      "info",
		FlushInterval: 30 * time.Second,
		Location:      "Local",
		WatchState:    true,
	}
}

// Load reads a YAML file over the defaults. An empty path returns defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML into cfg, rejecting unknown keys.
func Parse(data []byte, cfg *Config) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(cfg)
}

func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.NetTxt != "" && c.FlushInterval <= 0 {
		return fmt.Errorf("%w: flush_interval must be positive, got %s", ErrInvalid, c.FlushInterval)
	}
	if _, err := c.TimeLocation(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := filter.Parse(c.FilterExport); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// TimeLocation resolves Location; "" and "Local" mean the host zone.
func (c Config) TimeLocation() (*time.Location, error) {
	switch c.Location {
	case "", "Local":
		return time.Local, nil
	case "UTC":
		return time.UTC, nil
	}
	return time.LoadLocation(c.Location)
}
