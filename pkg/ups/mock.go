package ups

import "fmt"

// MockConn is an in-memory Conn with prefilled register contents. Reads
// return a copy of the prefill value; single-byte writes land in the same
// map, so a ForcePowerOff followed by IsPowerOffPending behaves like the
// real device.
type MockConn struct {
	registers map[uint8][]byte
	closed    bool

	// ReadErr and WriteErr, when set, are returned by every read/write to
	// simulate transport failures.
	ReadErr  error
	WriteErr error
}

// NewMockConn returns a MockConn prefilled with the given register
// contents.
func NewMockConn(prefill map[uint8][]byte) *MockConn {
	registers := make(map[uint8][]byte, len(prefill))
	for reg, data := range prefill {
		registers[reg] = append([]byte(nil), data...)
	}
	return &MockConn{registers: registers}
}

// NewMock returns a UPS facade over a MockConn, for tests and demos.
func NewMock(prefill map[uint8][]byte) *UpsHatE {
	return New(NewMockConn(prefill))
}

// Set replaces the contents of one register.
func (m *MockConn) Set(register uint8, data []byte) {
	m.registers[register] = append([]byte(nil), data...)
}

func (m *MockConn) ReadBlock(register uint8, length uint8) ([]byte, error) {
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}

	data, ok := m.registers[register]
	if !ok {
		return nil, fmt.Errorf("mock: no such register 0x%02x", register)
	}

	// Deliberately not clamped to length: the facade must catch short and
	// long reads itself.
	return append([]byte(nil), data...), nil
}

func (m *MockConn) WriteByte(register uint8, value uint8) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}

	m.registers[register] = []byte{value}
	return nil
}

func (m *MockConn) Close() error {
	m.closed = true
	return nil
}
