package ups

// Field codecs: pure decoders from a fixed-length register block to a
// typed record. All multi-byte fields on the wire are little-endian
// 16-bit. Each decoder checks its input length so it is safe to call
// directly, but the facade validates before dispatching anyway.

func le16(b []byte, off int) uint16 {
	return uint16(b[off]) | uint16(b[off+1])<<8
}

// DecodeCellVoltage decodes the 8-byte cell voltage block into the four
// per-cell readings.
func DecodeCellVoltage(data []byte) (CellVoltage, error) {
	if len(data) != int(CellVoltageReg.Length) {
		return CellVoltage{}, &InvalidDataLenError{
			Register: CellVoltageReg.ID,
			Expected: int(CellVoltageReg.Length),
			Got:      len(data),
		}
	}

	return CellVoltage{
		Cell1Millivolts: le16(data, 0),
		Cell2Millivolts: le16(data, 2),
		Cell3Millivolts: le16(data, 4),
		Cell4Millivolts: le16(data, 6),
	}, nil
}

// DecodeUsbCVBus decodes the 6-byte USB-C VBUS block.
func DecodeUsbCVBus(data []byte) (UsbCVBus, error) {
	if len(data) != int(UsbCVBusReg.Length) {
		return UsbCVBus{}, &InvalidDataLenError{
			Register: UsbCVBusReg.ID,
			Expected: int(UsbCVBusReg.Length),
			Got:      len(data),
		}
	}

	return UsbCVBus{
		Millivolts: le16(data, 0),
		Milliamps:  le16(data, 2),
		Milliwatts: le16(data, 4),
	}, nil
}

// DecodeBatteryState decodes the 12-byte battery block.
//
// The current field is sign-adjusted the same way the vendor's reference
// code does it: values above 0x7fff have 0xffff subtracted, not 0x10000.
// That is off by one from two's complement, but it is what real hardware
// readings are calibrated against, so it is reproduced exactly.
//
// The tail of the block is conditional on current direction: when
// discharging (negative current) bytes 8-9 hold the remaining runtime in
// minutes; otherwise bytes 10-11 hold the time to full in minutes. The
// unselected field is left zero.
func DecodeBatteryState(data []byte) (BatteryState, error) {
	if len(data) != int(BatteryReg.Length) {
		return BatteryState{}, &InvalidDataLenError{
			Register: BatteryReg.ID,
			Expected: int(BatteryReg.Length),
			Got:      len(data),
		}
	}

	current := int32(le16(data, 2))
	if current > 0x7fff {
		current -= 0xffff
	}
	milliamps := int16(current)

	state := BatteryState{
		Millivolts:                     le16(data, 0),
		Milliamps:                      milliamps,
		RemainingPercent:               le16(data, 4),
		RemainingCapacityMilliampHours: le16(data, 6),
	}

	if milliamps < 0 {
		state.RemainingRuntimeMinutes = le16(data, 8)
	} else {
		state.TimeToFullMinutes = le16(data, 10)
	}

	return state, nil
}

// DecodePowerState decodes the 1-byte charging status register.
//
// Bit layout (bit 0 = LSB): bits 0-2 charger activity code, bit 5 USB-C
// input presence, bit 6 USB-C power delivery negotiated, bit 7 charging
// state. Activity code 0b111 is undefined and fails the decode.
func DecodePowerState(data []byte) (PowerState, error) {
	if len(data) != int(ChargingReg.Length) {
		return PowerState{}, &InvalidDataLenError{
			Register: ChargingReg.ID,
			Expected: int(ChargingReg.Length),
			Got:      len(data),
		}
	}

	b := data[0]

	activity := ChargerActivity(b & 0b111)
	if activity > Timeout {
		return PowerState{}, &InvalidChargerActivityError{Value: b & 0b111}
	}

	state := PowerState{
		ChargerActivity:   activity,
		UsbCInputState:    NoPower,
		UsbCPowerDelivery: StandardCharging,
		ChargingState:     NotCharging,
	}
	if b&(1<<5) != 0 {
		state.UsbCInputState = Powered
	}
	if b&(1<<6) != 0 {
		state.UsbCPowerDelivery = FastCharging
	}
	if b&(1<<7) != 0 {
		state.ChargingState = Charging
	}

	return state, nil
}

// DecodeCommunicationState decodes the 1-byte communication status
// register: bit 0 is the IP2368 link, bit 1 the BQ4050 link, 1 = normal.
func DecodeCommunicationState(data []byte) (CommunicationState, error) {
	if len(data) != int(CommunicationReg.Length) {
		return CommunicationState{}, &InvalidDataLenError{
			Register: CommunicationReg.ID,
			Expected: int(CommunicationReg.Length),
			Got:      len(data),
		}
	}

	b := data[0]

	state := CommunicationState{
		IP2368: CommError,
		BQ4050: CommError,
	}
	if b&(1<<0) != 0 {
		state.IP2368 = CommNormal
	}
	if b&(1<<1) != 0 {
		state.BQ4050 = CommNormal
	}

	return state, nil
}
