// Package linuxhw provides the ADAQ8092 collaborators on a Linux host: a
// spidev port through periph.io and power control lines through the GPIO
// character device.
package linuxhw

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// DefaultSPIClock is used when OpenSPI is given a zero frequency.
const DefaultSPIClock = 1 * physic.MegaHertz

// SPI is a spidev port connected in mode 0 with 8 bit words.
type SPI struct {
	name string
	port spi.PortCloser
	conn spi.Conn
}

// OpenSPI opens dev, either a periph name such as "SPI0.0" or a path such as
// "/dev/spidev0.0".
func OpenSPI(dev string, hz physic.Frequency) (*SPI, error) {
	if hz == 0 {
		hz = DefaultSPIClock
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph host: %w", err)
	}

	port, err := spireg.Open(dev)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", dev, err)
	}
	conn, err := port.Connect(hz, spi.Mode0, 8)
	if err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("failed to connect %s at %s: %w", dev, hz, err)
	}
	return &SPI{name: dev, port: port, conn: conn}, nil
}

func (s *SPI) String() string {
	return s.name
}

// Tx runs one full duplex transfer. r must be nil or as long as w.
func (s *SPI) Tx(w, r []byte) error {
	if r != nil && len(r) != len(w) {
		return fmt.Errorf("%s: read buffer is %d bytes, write is %d", s.name, len(r), len(w))
	}
	return s.conn.Tx(w, r)
}

func (s *SPI) Close() error {
	return s.port.Close()
}
