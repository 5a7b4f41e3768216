package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upse.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Device != "/dev/i2c-1" {
		t.Errorf("Device = %q", cfg.Device)
	}
	if cfg.Address != 0x2d {
		t.Errorf("Address = 0x%x", cfg.Address)
	}
	if cfg.CellLowVoltageThresholdMillivolts != 3400 {
		t.Errorf("threshold = %d", cfg.CellLowVoltageThresholdMillivolts)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoadFilePartialOverride(t *testing.T) {
	path := writeConfig(t, "device: /dev/i2c-4\ncell_low_voltage_threshold_mv: 3300\n")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.Device != "/dev/i2c-4" {
		t.Errorf("Device = %q", cfg.Device)
	}
	if cfg.CellLowVoltageThresholdMillivolts != 3300 {
		t.Errorf("threshold = %d", cfg.CellLowVoltageThresholdMillivolts)
	}
	// Untouched keys keep defaults.
	if cfg.Address != 0x2d || cfg.MonitorIntervalSeconds != 2 {
		t.Errorf("defaults not preserved: %+v", cfg)
	}
}

func TestLoadFileInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "address too wide", content: "address: 0x90\n"},
		{name: "zero threshold", content: "cell_low_voltage_threshold_mv: 0\n"},
		{name: "bad interval", content: "monitor_interval_seconds: 0\n"},
		{name: "empty device", content: "device: \"\"\n"},
		{name: "not yaml", content: "{{{\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadFile(writeConfig(t, tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadFileOrDefault(t *testing.T) {
	cfg, err := LoadFileOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("missing file must fall back to defaults: %v", err)
	}
	if cfg.Device != "/dev/i2c-1" {
		t.Errorf("Device = %q", cfg.Device)
	}

	// A present-but-broken file is still an error.
	if _, err := LoadFileOrDefault(writeConfig(t, "address: 0x90\n")); err == nil {
		t.Error("expected error for invalid file")
	}
}
