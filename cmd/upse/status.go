package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/upsehat/upse/pkg/ups"
)

type statusData struct {
	battery ups.BatteryState
	power   ups.PowerState
	comm    ups.CommunicationState
	vbus    ups.UsbCVBus
	cells   ups.CellVoltage

	batteryLow      bool
	powerOffPending bool
}

// fetchStatusData reads every telemetry register once. Each reading is a
// fresh bus transaction; nothing is cached.
func fetchStatusData(device *ups.UpsHatE) (*statusData, error) {
	battery, err := device.GetBatteryState()
	if err != nil {
		return nil, fmt.Errorf("failed to get battery state: %w", err)
	}

	power, err := device.GetPowerState()
	if err != nil {
		return nil, fmt.Errorf("failed to get power state: %w", err)
	}

	comm, err := device.GetCommunicationState()
	if err != nil {
		return nil, fmt.Errorf("failed to get communication state: %w", err)
	}

	vbus, err := device.GetUsbCVBus()
	if err != nil {
		return nil, fmt.Errorf("failed to get USB-C VBUS readings: %w", err)
	}

	cells, err := device.GetCellVoltage()
	if err != nil {
		return nil, fmt.Errorf("failed to get cell voltages: %w", err)
	}

	batteryLow, err := device.IsBatteryLow()
	if err != nil {
		return nil, fmt.Errorf("failed to check battery-low: %w", err)
	}

	powerOffPending, err := device.IsPowerOffPending()
	if err != nil {
		return nil, fmt.Errorf("failed to check power-off status: %w", err)
	}

	return &statusData{
		battery:         battery,
		power:           power,
		comm:            comm,
		vbus:            vbus,
		cells:           cells,
		batteryLow:      batteryLow,
		powerOffPending: powerOffPending,
	}, nil
}

func printStatus(cmd *cobra.Command, data *statusData) {
	cmd.Println(bold("Power:"))
	cmd.Printf("  State:         %s\n", data.power.ChargingState)
	cmd.Printf("  Activity:      %s\n", data.power.ChargerActivity)
	cmd.Printf("  USB-C in:      %s\n", data.power.UsbCInputState)
	cmd.Printf("  USB-C PD:      %s\n", data.power.UsbCPowerDelivery)
	cmd.Printf("  Off pending:   %s\n", bool2Text(data.powerOffPending))
	cmd.Println()

	cmd.Println(bold("Communication:"))
	cmd.Printf("  BQ4050:        %s\n", data.comm.BQ4050)
	cmd.Printf("  IP2368:        %s\n", data.comm.IP2368)
	cmd.Println()

	cmd.Println(bold("Battery:"))
	cmd.Printf("  Charge:        %s\n", bold("%d%%", data.battery.RemainingPercent))
	cmd.Printf("  Voltage:       %d mV\n", data.battery.Millivolts)
	cmd.Printf("  Current:       %d mA\n", data.battery.Milliamps)
	cmd.Printf("  Est. capacity: %d mAh\n", data.battery.RemainingCapacityMilliampHours)
	flow := data.battery.Flow()
	if flow.Direction == ups.FlowDischarging {
		cmd.Printf("  Est. runtime:  %d min\n", flow.Minutes)
	} else if flow.Minutes > 0 {
		cmd.Printf("  Time to full:  %d min\n", flow.Minutes)
	}
	cmd.Printf("  Battery low:   %s\n", bool2Text(data.batteryLow))
	cmd.Println()

	cmd.Println(bold("USB-C VBUS:"))
	cmd.Printf("  Voltage:       %d mV\n", data.vbus.Millivolts)
	cmd.Printf("  Current:       %d mA\n", data.vbus.Milliamps)
	cmd.Printf("  Power:         %d mW\n", data.vbus.Milliwatts)
	cmd.Println()

	cmd.Println(bold("Cell voltages:"))
	cmd.Printf("  Cell 1:        %d mV\n", data.cells.Cell1Millivolts)
	cmd.Printf("  Cell 2:        %d mV\n", data.cells.Cell2Millivolts)
	cmd.Printf("  Cell 3:        %d mV\n", data.cells.Cell3Millivolts)
	cmd.Printf("  Cell 4:        %d mV\n", data.cells.Cell4Millivolts)
}

type statusJSON struct {
	Battery         ups.BatteryState  `json:"battery"`
	Flow            ups.ChargeFlow    `json:"flow"`
	Power           powerJSON         `json:"power"`
	Communication   communicationJSON `json:"communication"`
	UsbCVBus        ups.UsbCVBus      `json:"usbcVbus"`
	Cells           ups.CellVoltage   `json:"cells"`
	BatteryLow      bool              `json:"batteryLow"`
	PowerOffPending bool              `json:"powerOffPending"`
}

type powerJSON struct {
	ChargingState     string `json:"chargingState"`
	ChargerActivity   string `json:"chargerActivity"`
	UsbCInputState    string `json:"usbcInputState"`
	UsbCPowerDelivery string `json:"usbcPowerDelivery"`
}

type communicationJSON struct {
	BQ4050 string `json:"bq4050"`
	IP2368 string `json:"ip2368"`
}

func printStatusJSON(cmd *cobra.Command, data *statusData) error {
	out := statusJSON{
		Battery: data.battery,
		Flow:    data.battery.Flow(),
		Power: powerJSON{
			ChargingState:     data.power.ChargingState.String(),
			ChargerActivity:   data.power.ChargerActivity.String(),
			UsbCInputState:    data.power.UsbCInputState.String(),
			UsbCPowerDelivery: data.power.UsbCPowerDelivery.String(),
		},
		Communication: communicationJSON{
			BQ4050: data.comm.BQ4050.String(),
			IP2368: data.comm.IP2368.String(),
		},
		UsbCVBus:        data.vbus,
		Cells:           data.cells,
		BatteryLow:      data.batteryLow,
		PowerOffPending: data.powerOffPending,
	}

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}

	cmd.Println(string(encoded))
	return nil
}

func NewStatusCommand() *cobra.Command {
	jsonOutput := false

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Read all UPS telemetry once",
		Long:  `Read battery, cell, USB-C, charger and link status from the UPS and print it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			device, err := openUps(cfg)
			if err != nil {
				return err
			}
			defer device.Close()

			data, err := fetchStatusData(device)
			if err != nil {
				return err
			}

			if jsonOutput {
				return printStatusJSON(cmd, data)
			}

			printStatus(cmd, data)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output status as JSON")

	return cmd
}
