// Package ups decodes the register wire protocol of the Waveshare UPS
// HAT E battery backup board and drives its power-off handshake.
package ups

import (
	"github.com/sirupsen/logrus"
)

// Conn is the bus transport the facade reads registers through. The
// periph-backed implementation lives in pkg/i2c; tests use MockConn.
//
// ReadBlock must return exactly length bytes on success. Implementations
// own any timeout policy; the facade never retries.
type Conn interface {
	// ReadBlock reads length bytes from the given register.
	ReadBlock(register uint8, length uint8) ([]byte, error)
	// WriteByte writes a single byte to the given register.
	WriteByte(register uint8, value uint8) error
	// Close releases the underlying bus handle.
	Close() error
}

// UpsHatE monitors a Waveshare UPS HAT E over I2C: battery voltage,
// current, per-cell voltages, USB-C input and charger status, plus the
// power-off command.
//
// The connection is an exclusively-owned handle. UpsHatE does no locking
// of its own; callers that share one device across goroutines must
// serialize access themselves.
type UpsHatE struct {
	conn Conn

	// cellLowVoltageThreshold is the per-cell threshold, in millivolts,
	// used by IsBatteryLow.
	cellLowVoltageThreshold uint16
}

// New returns a UPS HAT E facade over the given bus connection.
func New(conn Conn) *UpsHatE {
	return &UpsHatE{
		conn:                    conn,
		cellLowVoltageThreshold: DefaultCellLowVoltageThreshold,
	}
}

// SetCellLowVoltageThreshold overrides the per-cell low-voltage threshold
// (millivolts) used by IsBatteryLow.
func (u *UpsHatE) SetCellLowVoltageThreshold(millivolts uint16) {
	u.cellLowVoltageThreshold = millivolts
}

// Close closes the underlying bus connection.
func (u *UpsHatE) Close() error {
	return u.conn.Close()
}

// GetCellVoltage reads the four per-cell battery voltages.
func (u *UpsHatE) GetCellVoltage() (CellVoltage, error) {
	data, err := u.readBlock(CellVoltageReg)
	if err != nil {
		return CellVoltage{}, err
	}
	return DecodeCellVoltage(data)
}

// GetUsbCVBus reads voltage, current and power on the USB-C input.
func (u *UpsHatE) GetUsbCVBus() (UsbCVBus, error) {
	data, err := u.readBlock(UsbCVBusReg)
	if err != nil {
		return UsbCVBus{}, err
	}
	return DecodeUsbCVBus(data)
}

// GetBatteryState reads the aggregate battery telemetry.
func (u *UpsHatE) GetBatteryState() (BatteryState, error) {
	data, err := u.readBlock(BatteryReg)
	if err != nil {
		return BatteryState{}, err
	}
	return DecodeBatteryState(data)
}

// GetPowerState reads the charging status register.
func (u *UpsHatE) GetPowerState() (PowerState, error) {
	data, err := u.readBlock(ChargingReg)
	if err != nil {
		return PowerState{}, err
	}
	return DecodePowerState(data)
}

// GetCommunicationState reads the link health of the BQ4050 and IP2368.
func (u *UpsHatE) GetCommunicationState() (CommunicationState, error) {
	data, err := u.readBlock(CommunicationReg)
	if err != nil {
		return CommunicationState{}, err
	}
	return DecodeCommunicationState(data)
}

// IsBatteryLow reports whether the summed pack voltage is at or below
// four times the per-cell low-voltage threshold. This is the easy "should
// I shut down now?" indicator.
func (u *UpsHatE) IsBatteryLow() (bool, error) {
	cells, err := u.GetCellVoltage()
	if err != nil {
		return false, err
	}

	cutoff := 4 * uint32(u.cellLowVoltageThreshold)
	return cells.TotalMillivolts() <= cutoff, nil
}

// ForcePowerOff unconditionally and uncleanly powers off the attached
// Raspberry Pi after a device-side delay of about 30 seconds.
//
// This cannot be canceled once the device accepts it. A write error is
// returned as-is and never retried here: the device treats duplicate
// writes as idempotent, but whether to try again is the caller's call.
func (u *UpsHatE) ForcePowerOff() error {
	logrus.WithFields(logrus.Fields{
		"register": PowerOffReg.ID,
		"value":    PowerOffValue,
	}).Trace("writing power-off command")

	return u.conn.WriteByte(PowerOffReg.ID, PowerOffValue)
}

// IsPowerOffPending reports whether the device has accepted a power-off
// command and the hardware cut is pending.
func (u *UpsHatE) IsPowerOffPending() (bool, error) {
	data, err := u.readBlock(PowerOffReg)
	if err != nil {
		return false, err
	}
	return data[0] == PowerOffValue, nil
}

// readBlock performs one bus transaction for the register and validates
// the returned length before any codec sees the bytes.
func (u *UpsHatE) readBlock(reg Register) ([]byte, error) {
	logrus.WithFields(logrus.Fields{
		"register": reg.ID,
		"length":   reg.Length,
	}).Trace("reading register block")

	data, err := u.conn.ReadBlock(reg.ID, reg.Length)
	if err != nil {
		return nil, err
	}

	if len(data) != int(reg.Length) {
		return nil, &InvalidDataLenError{
			Register: reg.ID,
			Expected: int(reg.Length),
			Got:      len(data),
		}
	}

	logrus.WithFields(logrus.Fields{
		"register": reg.ID,
		"data":     data,
	}).Trace("register block read")

	return data, nil
}
