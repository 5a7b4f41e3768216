package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/upsehat/upse/pkg/config"
	"github.com/upsehat/upse/pkg/i2c"
	"github.com/upsehat/upse/pkg/ups"
)

var (
	logLevel   = "info"
	configPath = "/etc/upse.yaml"
	devicePath = ""
	i2cAddress = uint16(0)
)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

// loadConfig merges the config file with command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFileOrDefault(configPath)
	if err != nil {
		return nil, err
	}

	if devicePath != "" {
		cfg.Device = devicePath
	}
	if i2cAddress != 0 {
		cfg.Address = i2cAddress
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// openUps opens the I2C bus per config and returns the device facade.
// The caller owns the handle and must Close it.
func openUps(cfg *config.Config) (*ups.UpsHatE, error) {
	bus, err := i2c.Open(cfg.Device, cfg.Address)
	if err != nil {
		return nil, err
	}

	device := ups.New(bus)
	device.SetCellLowVoltageThreshold(cfg.CellLowVoltageThresholdMillivolts)

	return device, nil
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upse",
		Short: "upse monitors a Waveshare UPS HAT E over I2C",
		Long: `upse reads battery, cell, USB-C and charger telemetry from a
Waveshare UPS HAT E (Raspberry Pi UPS) and can command an unclean
power-off through the UPS.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&logLevel, "log-level", "l", logLevel,
		"Log level (trace, debug, info, warn, error)")
	flags.StringVarP(&configPath, "config", "c", configPath,
		"Path to the config file")
	flags.StringVar(&devicePath, "device", "",
		"I2C bus device path (overrides config)")
	flags.Uint16Var(&i2cAddress, "address", 0,
		"7-bit I2C address of the UPS (overrides config)")

	cmd.AddCommand(
		NewStatusCommand(),
		NewMonitorCommand(),
		NewPowerOffCommand(),
		NewServeCommand(),
		NewVersionCommand(),
	)

	return cmd
}
