// Package config holds the file configuration for the upse CLI and
// daemon.
package config

import (
	"os"

	pkgerrors "github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/upsehat/upse/pkg/ups"
)

// Config is the upse configuration. All fields have working defaults;
// a config file only needs the keys it overrides.
type Config struct {
	// Device is the I2C bus device path.
	Device string `yaml:"device"`
	// Address is the 7-bit I2C address of the UPS.
	Address uint16 `yaml:"address"`
	// CellLowVoltageThresholdMillivolts is the per-cell threshold used by
	// the battery-low predicate.
	CellLowVoltageThresholdMillivolts uint16 `yaml:"cell_low_voltage_threshold_mv"`
	// MonitorIntervalSeconds is the refresh interval of `upse monitor`.
	MonitorIntervalSeconds int `yaml:"monitor_interval_seconds"`
	// Listen is the address `upse serve` binds to.
	Listen string `yaml:"listen"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Device:                            ups.DefaultI2CDevPath,
		Address:                           ups.DefaultI2CAddress,
		CellLowVoltageThresholdMillivolts: ups.DefaultCellLowVoltageThreshold,
		MonitorIntervalSeconds:            2,
		Listen:                            "127.0.0.1:9090",
	}
}

// LoadFile reads and validates a config file. Keys missing from the file
// keep their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to read config %s", path)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to parse config %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, pkgerrors.Wrapf(err, "invalid config %s", path)
	}

	return cfg, nil
}

// LoadFileOrDefault is LoadFile, except a missing file yields the
// defaults instead of an error.
func LoadFileOrDefault(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if err != nil && os.IsNotExist(pkgerrors.Cause(err)) {
		return Default(), nil
	}
	return cfg, err
}

// Validate checks configuration correctness. It does not mutate the
// configuration.
func (c *Config) Validate() error {
	if c.Device == "" {
		return pkgerrors.New("device must not be empty")
	}
	if c.Address > 0x7f {
		return pkgerrors.Errorf("address 0x%x does not fit 7-bit I2C addressing", c.Address)
	}
	if c.CellLowVoltageThresholdMillivolts == 0 {
		return pkgerrors.New("cell_low_voltage_threshold_mv must be positive")
	}
	if c.MonitorIntervalSeconds < 1 {
		return pkgerrors.Errorf("monitor_interval_seconds must be at least 1, got %d", c.MonitorIntervalSeconds)
	}
	if c.Listen == "" {
		return pkgerrors.New("listen must not be empty")
	}
	return nil
}
