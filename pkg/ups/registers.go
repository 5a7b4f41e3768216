package ups

// Register is one addressable telemetry or command group on the UPS HAT E.
// Length is the exact number of bytes the device returns for a block read
// of this register; it is used both to size the read and to validate what
// comes back.
type Register struct {
	ID     uint8
	Length uint8
}

// Register map of the UPS HAT E.
var (
	// PowerOffReg commands and reports a pending power-off.
	PowerOffReg = Register{ID: 0x01, Length: 1}
	// ChargingReg reports plugged-in, power-delivery and charger activity.
	ChargingReg = Register{ID: 0x02, Length: 1}
	// CommunicationReg reports link health to the BQ4050 and IP2368.
	CommunicationReg = Register{ID: 0x03, Length: 1}
	// UsbCVBusReg reports USB-C voltage, current and power.
	UsbCVBusReg = Register{ID: 0x10, Length: 6}
	// BatteryReg reports voltage, current, charge, capacity and runtime.
	BatteryReg = Register{ID: 0x20, Length: 12}
	// CellVoltageReg reports the four per-cell voltages.
	CellVoltageReg = Register{ID: 0x30, Length: 8}
)

const (
	// DefaultI2CAddress is the 7-bit I2C address of the UPS HAT E.
	DefaultI2CAddress = 0x2d

	// DefaultI2CDevPath is the I2C bus device path on a Raspberry Pi.
	DefaultI2CDevPath = "/dev/i2c-1"

	// DefaultCellLowVoltageThreshold is the per-cell low-voltage threshold
	// in millivolts. The UPS HAT E hardware cutoff is observed at 3.2V
	// (undocumented); 3.4V leaves enough headroom to run a clean shutdown.
	DefaultCellLowVoltageThreshold uint16 = 3400

	// PowerOffValue written to PowerOffReg initiates a power-off. The same
	// value read back from PowerOffReg means a power-off is pending.
	PowerOffValue uint8 = 0x55
)
