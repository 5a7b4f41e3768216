// Package i2c provides the periph.io-backed bus transport for the UPS
// HAT E on Linux (i2cdev).
package i2c

import (
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/upsehat/upse/pkg/ups"
)

var _ ups.Conn = &Bus{}

// Bus is an exclusively-owned handle to one I2C device. It implements
// ups.Conn. Not safe for concurrent use; serialize access externally if
// shared.
type Bus struct {
	bus i2c.BusCloser
	dev *i2c.Dev
}

// Open opens the I2C bus at devPath (e.g. /dev/i2c-1) and addresses the
// device at addr (7-bit).
func Open(devPath string, addr uint16) (*Bus, error) {
	if _, err := host.Init(); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to initialize host drivers")
	}

	bus, err := i2creg.Open(devPath)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to open I2C bus %s", devPath)
	}

	logrus.WithFields(logrus.Fields{
		"bus":     devPath,
		"address": addr,
	}).Debug("I2C bus opened")

	return &Bus{
		bus: bus,
		dev: &i2c.Dev{Addr: addr, Bus: bus},
	}, nil
}

// OpenDefault opens the UPS HAT E at its factory bus path and address.
func OpenDefault() (*Bus, error) {
	return Open(ups.DefaultI2CDevPath, ups.DefaultI2CAddress)
}

// ReadBlock reads length bytes from the given register in one
// write-then-read transaction.
func (b *Bus) ReadBlock(register uint8, length uint8) ([]byte, error) {
	buf := make([]byte, length)
	if err := b.dev.Tx([]byte{register}, buf); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to read %d bytes from register 0x%02x", length, register)
	}
	return buf, nil
}

// WriteByte writes a single byte to the given register.
func (b *Bus) WriteByte(register uint8, value uint8) error {
	if _, err := b.dev.Write([]byte{register, value}); err != nil {
		return pkgerrors.Wrapf(err, "failed to write register 0x%02x", register)
	}
	return nil
}

// Close releases the bus handle.
func (b *Bus) Close() error {
	return b.bus.Close()
}
