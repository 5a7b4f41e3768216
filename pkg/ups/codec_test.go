package ups

import (
	"errors"
	"testing"
)

func TestDecodeCellVoltage(t *testing.T) {
	// 1000, 2000, 3000, 4000 mV, little-endian.
	data := []byte{0xe8, 0x03, 0xd0, 0x07, 0xb8, 0x0b, 0xa0, 0x0f}

	got, err := DecodeCellVoltage(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := CellVoltage{
		Cell1Millivolts: 1000,
		Cell2Millivolts: 2000,
		Cell3Millivolts: 3000,
		Cell4Millivolts: 4000,
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if got.TotalMillivolts() != 10000 {
		t.Errorf("TotalMillivolts() = %d, want 10000", got.TotalMillivolts())
	}
}

func TestDecodeCellVoltageBadLength(t *testing.T) {
	_, err := DecodeCellVoltage([]byte{0x01, 0x02})

	var lenErr *InvalidDataLenError
	if !errors.As(err, &lenErr) {
		t.Fatalf("expected InvalidDataLenError, got %v", err)
	}
	if lenErr.Register != CellVoltageReg.ID || lenErr.Expected != 8 || lenErr.Got != 2 {
		t.Errorf("wrong error context: %+v", lenErr)
	}
}

func TestDecodeUsbCVBus(t *testing.T) {
	// 5048 mV, 1250 mA, 6310 mW.
	data := []byte{0xb8, 0x13, 0xe2, 0x04, 0xa6, 0x18}

	got, err := DecodeUsbCVBus(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := UsbCVBus{Millivolts: 5048, Milliamps: 1250, Milliwatts: 6310}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func batteryBlock(millivolts, rawCurrent, percent, capacity, runtime, timeToFull uint16) []byte {
	fields := []uint16{millivolts, rawCurrent, percent, capacity, runtime, timeToFull}
	data := make([]byte, 0, 12)
	for _, f := range fields {
		data = append(data, byte(f), byte(f>>8))
	}
	return data
}

func TestDecodeBatteryStateDischarging(t *testing.T) {
	// -1500 mA on the wire is 0xffff - 1500 = 0xfa23.
	data := batteryBlock(14800, 0xfa23, 76, 7600, 304, 999)

	got, err := DecodeBatteryState(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Milliamps != -1500 {
		t.Errorf("Milliamps = %d, want -1500", got.Milliamps)
	}
	if got.RemainingRuntimeMinutes != 304 {
		t.Errorf("RemainingRuntimeMinutes = %d, want 304", got.RemainingRuntimeMinutes)
	}
	if got.TimeToFullMinutes != 0 {
		t.Errorf("TimeToFullMinutes = %d, want 0 while discharging", got.TimeToFullMinutes)
	}

	flow := got.Flow()
	if flow.Direction != FlowDischarging || flow.Minutes != 304 {
		t.Errorf("Flow() = %+v, want discharging/304", flow)
	}
}

func TestDecodeBatteryStateCharging(t *testing.T) {
	data := batteryBlock(16100, 2100, 81, 8100, 304, 47)

	got, err := DecodeBatteryState(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Milliamps != 2100 {
		t.Errorf("Milliamps = %d, want 2100", got.Milliamps)
	}
	if got.TimeToFullMinutes != 47 {
		t.Errorf("TimeToFullMinutes = %d, want 47", got.TimeToFullMinutes)
	}
	if got.RemainingRuntimeMinutes != 0 {
		t.Errorf("RemainingRuntimeMinutes = %d, want 0 while charging", got.RemainingRuntimeMinutes)
	}

	flow := got.Flow()
	if flow.Direction != FlowCharging || flow.Minutes != 47 {
		t.Errorf("Flow() = %+v, want charging/47", flow)
	}
}

// The reference firmware subtracts 0xffff, not 0x10000, when the raw
// current exceeds 0x7fff. 0x8000 must therefore decode to -32767, not
// the two's-complement -32768.
func TestDecodeBatteryStateSignRule(t *testing.T) {
	tests := []struct {
		name string
		raw  uint16
		want int16
	}{
		{name: "0x8000 edge", raw: 0x8000, want: -32767},
		{name: "0xffff is zero", raw: 0xffff, want: 0},
		{name: "0x7fff stays positive", raw: 0x7fff, want: 32767},
		{name: "small negative", raw: 0xfffe, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeBatteryState(batteryBlock(0, tt.raw, 0, 0, 0, 0))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Milliamps != tt.want {
				t.Errorf("raw 0x%04x: Milliamps = %d, want %d", tt.raw, got.Milliamps, tt.want)
			}
		})
	}
}

func TestDecodePowerState(t *testing.T) {
	tests := []struct {
		name string
		byte byte
		want PowerState
	}{
		{
			name: "idle on battery",
			byte: 0b0000_0000,
			want: PowerState{NotCharging, Standby, NoPower, StandardCharging},
		},
		{
			name: "fast charging constant current",
			byte: 0b1110_0010,
			want: PowerState{Charging, ConstantCurrent, Powered, FastCharging},
		},
		{
			name: "powered standard full",
			byte: 0b0010_0101,
			want: PowerState{NotCharging, Full, Powered, StandardCharging},
		},
		{
			name: "trickle charging",
			byte: 0b1010_0001,
			want: PowerState{Charging, Trickle, Powered, StandardCharging},
		},
		{
			name: "charge timeout",
			byte: 0b0110_0110,
			want: PowerState{NotCharging, Timeout, Powered, FastCharging},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodePowerState([]byte{tt.byte})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("byte 0b%08b: got %+v, want %+v", tt.byte, got, tt.want)
			}
		})
	}
}

func TestDecodePowerStateAllValidActivities(t *testing.T) {
	for activity := byte(0b000); activity <= 0b110; activity++ {
		got, err := DecodePowerState([]byte{activity})
		if err != nil {
			t.Fatalf("activity 0b%03b: unexpected error: %v", activity, err)
		}
		if got.ChargerActivity != ChargerActivity(activity) {
			t.Errorf("activity 0b%03b decoded as %v", activity, got.ChargerActivity)
		}
	}
}

func TestDecodePowerStateInvalidActivity(t *testing.T) {
	// Any byte with activity bits 0b111 must fail, independent of the
	// upper bits.
	for _, b := range []byte{0b0000_0111, 0b1110_0111} {
		_, err := DecodePowerState([]byte{b})

		var actErr *InvalidChargerActivityError
		if !errors.As(err, &actErr) {
			t.Fatalf("byte 0b%08b: expected InvalidChargerActivityError, got %v", b, err)
		}
		if actErr.Value != 0b111 {
			t.Errorf("byte 0b%08b: error value = 0b%03b, want 0b111", b, actErr.Value)
		}
	}
}

func TestDecodeCommunicationState(t *testing.T) {
	tests := []struct {
		byte byte
		want CommunicationState
	}{
		{0b00, CommunicationState{BQ4050: CommError, IP2368: CommError}},
		{0b01, CommunicationState{BQ4050: CommError, IP2368: CommNormal}},
		{0b10, CommunicationState{BQ4050: CommNormal, IP2368: CommError}},
		{0b11, CommunicationState{BQ4050: CommNormal, IP2368: CommNormal}},
	}

	for _, tt := range tests {
		got, err := DecodeCommunicationState([]byte{tt.byte})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tt.want {
			t.Errorf("byte 0b%02b: got %+v, want %+v", tt.byte, got, tt.want)
		}
	}
}

func TestEnumStrings(t *testing.T) {
	if Standby.String() != "Standby" || Timeout.String() != "Timeout" {
		t.Error("ChargerActivity strings wrong")
	}
	if ChargerActivity(0b111).String() != "Unknown" {
		t.Error("undefined activity should stringify as Unknown")
	}
	if Charging.String() != "Charging" || NoPower.String() != "NoPower" {
		t.Error("status enum strings wrong")
	}
	if CommNormal.String() != "Normal" || CommError.String() != "Error" {
		t.Error("CommState strings wrong")
	}
}
