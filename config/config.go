// Package config loads the leveler's YAML configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mastercactapus/autolevel/calibration"
)

// CalibrationConfig selects where probe calibration comes from.
type CalibrationConfig struct {
	Source    string `yaml:"source"`     // "none", "file", or "serial"
	Path      string `yaml:"path"`       // EEPROM image path ("file")
	Port      string `yaml:"port"`       // serial device ("serial")
	Baud      int    `yaml:"baud"`       // default 115200
	TimeoutMs int    `yaml:"timeout_ms"` // serial read timeout, default 2000
}

// Config aggregates the leveling configuration.
type Config struct {
	Mode         string            `yaml:"mode"`          // "skew" or "tilt"
	MaxDeviation int64             `yaml:"max_deviation"` // allowed probe Z spread, steps
	ZOffset      int64             `yaml:"z_offset"`      // probe tip to nozzle, steps
	Calibration  CalibrationConfig `yaml:"calibration"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// Load reads and validates a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}
	cfg.applyDefaults()
	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Mode == "" {
		c.Mode = "skew"
	}
	if c.MaxDeviation == 0 {
		c.MaxDeviation = 200
	}
	if c.Calibration.Source == "" {
		c.Calibration.Source = "none"
	}
	if c.Calibration.Baud == 0 {
		c.Calibration.Baud = 115200
	}
	if c.Calibration.TimeoutMs == 0 {
		c.Calibration.TimeoutMs = 2000
	}
}

func (c *Config) Validate() error {
	switch c.Mode {
	case "skew", "tilt":
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if c.MaxDeviation <= 0 {
		return fmt.Errorf("max_deviation must be positive, got %d", c.MaxDeviation)
	}

	switch c.Calibration.Source {
	case "none":
	case "file":
		if c.Calibration.Path == "" {
			return fmt.Errorf("calibration source %q needs a path", c.Calibration.Source)
		}
	case "serial":
		if c.Calibration.Port == "" {
			return fmt.Errorf("calibration source %q needs a port", c.Calibration.Source)
		}
	default:
		return fmt.Errorf("unknown calibration source %q", c.Calibration.Source)
	}

	return nil
}

// Store builds the configured calibration store. A "none" source
// returns nil, meaning zero calibration.
func (c *Config) Store() (calibration.Store, error) {
	switch c.Calibration.Source {
	case "", "none":
		return nil, nil
	case "file":
		f, err := os.Open(c.Calibration.Path)
		if err != nil {
			return nil, fmt.Errorf("open eeprom image: %w", err)
		}
		return calibration.NewBlockStore(f), nil
	case "serial":
		return calibration.OpenSerialStore(
			c.Calibration.Port,
			c.Calibration.Baud,
			time.Duration(c.Calibration.TimeoutMs)*time.Millisecond,
		)
	}
	return nil, fmt.Errorf("unknown calibration source %q", c.Calibration.Source)
}
