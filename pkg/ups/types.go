package ups

// ChargingState reports whether the UPS is charging the battery pack.
type ChargingState uint8

const (
	NotCharging ChargingState = 0
	Charging    ChargingState = 1
)

func (s ChargingState) String() string {
	if s == Charging {
		return "Charging"
	}
	return "NotCharging"
}

// ChargerActivity is the 3-bit code describing what kind of charging (if
// any) is taking place.
type ChargerActivity uint8

const (
	Standby         ChargerActivity = 0b000
	Trickle         ChargerActivity = 0b001
	ConstantCurrent ChargerActivity = 0b010
	ConstantVoltage ChargerActivity = 0b011
	Pending         ChargerActivity = 0b100
	Full            ChargerActivity = 0b101
	Timeout         ChargerActivity = 0b110
)

func (a ChargerActivity) String() string {
	switch a {
	case Standby:
		return "Standby"
	case Trickle:
		return "Trickle"
	case ConstantCurrent:
		return "ConstantCurrent"
	case ConstantVoltage:
		return "ConstantVoltage"
	case Pending:
		return "Pending"
	case Full:
		return "Full"
	case Timeout:
		return "Timeout"
	}
	return "Unknown"
}

// UsbCInputState reports whether USB-C power is detected.
type UsbCInputState uint8

const (
	NoPower UsbCInputState = 0
	Powered UsbCInputState = 1
)

func (s UsbCInputState) String() string {
	if s == Powered {
		return "Powered"
	}
	return "NoPower"
}

// UsbCPowerDelivery reports whether USB-C power delivery was negotiated
// (FastCharging) or not (StandardCharging).
type UsbCPowerDelivery uint8

const (
	StandardCharging UsbCPowerDelivery = 0
	FastCharging     UsbCPowerDelivery = 1
)

func (d UsbCPowerDelivery) String() string {
	if d == FastCharging {
		return "FastCharging"
	}
	return "StandardCharging"
}

// CommState is the state of the UPS microcontroller's link to an on-board
// chip.
type CommState uint8

const (
	CommError  CommState = 0
	CommNormal CommState = 1
)

func (s CommState) String() string {
	if s == CommNormal {
		return "Normal"
	}
	return "Error"
}

// PowerState is the composite power state of the UPS HAT E, decoded from
// the charging status register.
type PowerState struct {
	ChargingState     ChargingState     `json:"chargingState"`
	ChargerActivity   ChargerActivity   `json:"chargerActivity"`
	UsbCInputState    UsbCInputState    `json:"usbcInputState"`
	UsbCPowerDelivery UsbCPowerDelivery `json:"usbcPowerDelivery"`
}

// CommunicationState is the ability of the UPS to talk to the on-board
// BQ4050 gas gauge chip and IP2368 charge management chip.
type CommunicationState struct {
	BQ4050 CommState `json:"bq4050"`
	IP2368 CommState `json:"ip2368"`
}

// BatteryState is the aggregate battery state of the UPS HAT E.
//
// A negative Milliamps value means the UPS is discharging the battery
// cells; a positive value means USB-C power is available and the battery
// is charging. Exactly one of RemainingRuntimeMinutes and
// TimeToFullMinutes is populated per read, selected by the sign of
// Milliamps; the other is zero. Flow exposes the same selection as a
// tagged value.
//
// The vendor wiki notes it may take a few charge cycles before the
// remaining-* and time-to-full estimates are calibrated.
type BatteryState struct {
	Millivolts                     uint16 `json:"millivolts"`
	Milliamps                      int16  `json:"milliamps"`
	RemainingPercent               uint16 `json:"remainingPercent"`
	RemainingCapacityMilliampHours uint16 `json:"remainingCapacityMilliampHours"`
	RemainingRuntimeMinutes        uint16 `json:"remainingRuntimeMinutes"`
	TimeToFullMinutes              uint16 `json:"timeToFullMinutes"`
}

// FlowDirection tags which way current is flowing through the battery.
type FlowDirection uint8

const (
	FlowDischarging FlowDirection = iota
	FlowCharging
)

func (d FlowDirection) String() string {
	if d == FlowCharging {
		return "Charging"
	}
	return "Discharging"
}

// ChargeFlow is the direction-tagged view of the battery's conditional
// tail fields: Minutes is the remaining runtime when discharging, or the
// time to full when charging.
type ChargeFlow struct {
	Direction FlowDirection `json:"direction"`
	Minutes   uint16        `json:"minutes"`
}

// Flow returns the runtime/time-to-full estimate tagged by current
// direction, making the mutual exclusivity of the two flat fields
// explicit.
func (b BatteryState) Flow() ChargeFlow {
	if b.Milliamps < 0 {
		return ChargeFlow{Direction: FlowDischarging, Minutes: b.RemainingRuntimeMinutes}
	}
	return ChargeFlow{Direction: FlowCharging, Minutes: b.TimeToFullMinutes}
}

// CellVoltage holds the voltage readings for each of the four battery
// cells, in physical cell order.
type CellVoltage struct {
	Cell1Millivolts uint16 `json:"cell1Millivolts"`
	Cell2Millivolts uint16 `json:"cell2Millivolts"`
	Cell3Millivolts uint16 `json:"cell3Millivolts"`
	Cell4Millivolts uint16 `json:"cell4Millivolts"`
}

// TotalMillivolts is the summed pack voltage.
func (c CellVoltage) TotalMillivolts() uint32 {
	return uint32(c.Cell1Millivolts) + uint32(c.Cell2Millivolts) +
		uint32(c.Cell3Millivolts) + uint32(c.Cell4Millivolts)
}

// UsbCVBus holds voltage, current and power readings from the USB-C port.
// Milliwatts is reported by the device, not computed from the other two.
type UsbCVBus struct {
	Millivolts uint16 `json:"millivolts"`
	Milliamps  uint16 `json:"milliamps"`
	Milliwatts uint16 `json:"milliwatts"`
}
