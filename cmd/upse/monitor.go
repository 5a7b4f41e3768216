package main

import (
	"time"

	"github.com/spf13/cobra"
)

const (
	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
)

func NewMonitorCommand() *cobra.Command {
	interval := 0

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Continuously display UPS telemetry",
		Long: `Poll the UPS at a fixed interval and redraw all telemetry,
like a small top for the UPS. Press Ctrl+C to exit.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if interval > 0 {
				cfg.MonitorIntervalSeconds = interval
			}

			device, err := openUps(cfg)
			if err != nil {
				return err
			}
			defer device.Close()

			for {
				data, err := fetchStatusData(device)
				if err != nil {
					return err
				}

				cmd.Print(clearScreen + cursorHome)
				cmd.Println(bold("UPS HAT E monitor") + "  " + time.Now().Format(time.RFC3339))
				cmd.Println()
				printStatus(cmd, data)
				cmd.Println()
				cmd.Println("Press Ctrl+C to exit")

				time.Sleep(time.Duration(cfg.MonitorIntervalSeconds) * time.Second)
			}
		},
	}

	cmd.Flags().IntVarP(&interval, "interval", "n", 0,
		"Refresh interval in seconds (overrides config)")

	return cmd
}
