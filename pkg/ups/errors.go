package ups

import "fmt"

// InvalidDataLenError means a block read returned a different number of
// bytes than the register's fixed length. The read is never truncated or
// padded; the whole call fails.
type InvalidDataLenError struct {
	Register uint8
	Expected int
	Got      int
}

func (e *InvalidDataLenError) Error() string {
	return fmt.Sprintf("reading register 0x%02x invalid data length: expected %d, got %d",
		e.Register, e.Expected, e.Got)
}

// InvalidChargerActivityError means the 3-bit charger activity code
// decoded to the undefined value 0b111. The raw value is preserved for
// diagnostics.
type InvalidChargerActivityError struct {
	Value uint8
}

func (e *InvalidChargerActivityError) Error() string {
	return fmt.Sprintf("invalid charger activity value: 0b%03b", e.Value)
}
