package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func confirmPowerOff(cmd *cobra.Command) (bool, error) {
	cmd.Print("Are you sure you want to power off the Raspberry Pi? [y/N] ")

	input, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("failed to read input: %w", err)
	}

	return strings.EqualFold(strings.TrimSpace(input), "y"), nil
}

func NewPowerOffCommand() *cobra.Command {
	yes := false

	cmd := &cobra.Command{
		Use:   "power-off",
		Short: "Power off the attached Raspberry Pi through the UPS",
		Long: `Command the UPS to cut power about 30 seconds after the command is
accepted. This is an unclean shutdown from the Pi's point of view and
cannot be canceled once accepted. Sync or shut down the OS first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				confirmed, err := confirmPowerOff(cmd)
				if err != nil {
					return err
				}
				if !confirmed {
					cmd.Println("Aborting power-off. Use -y to skip the confirmation prompt.")
					return nil
				}
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			device, err := openUps(cfg)
			if err != nil {
				return err
			}
			defer device.Close()

			if err := device.ForcePowerOff(); err != nil {
				return fmt.Errorf("failed to issue power-off command: %w", err)
			}

			pending, err := device.IsPowerOffPending()
			if err != nil {
				return fmt.Errorf("failed to read power-off status: %w", err)
			}

			if !pending {
				fmt.Fprintln(os.Stderr, "Error: UPS did not accept the power-off command")
				os.Exit(2)
			}

			logrus.Warn("UPS will cut power to the attached Raspberry Pi in about 30 seconds")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
