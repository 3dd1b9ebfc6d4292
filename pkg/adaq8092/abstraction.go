package adaq8092

import (
	"errors"
	"fmt"
)

// SerialInterface is the SPI port the converter sits on.
type SerialInterface interface {
	// Tx clocks w out while clocking len(r) bytes in, with chip select held
	// for the whole transfer. r may be nil for write-only transfers.
	Tx(w, r []byte) error

	// Close releases the port.
	Close() error
}

// Line is one digital output. [*gpiod.Line] satisfies it.
type Line interface {
	SetValue(value int) error
	Close() error
}

// Clock gates the converter's input reference clock. It must be running
// before reset and while settings are written.
type Clock interface {
	Enable() error
	Disable() error
}

// PowerLines are the four outputs used for power sequencing.
type PowerLines struct {
	PD1    Line // channel 1 power down, active low
	PD2    Line // channel 2 power down, active low
	En1P8  Line // 1.8V digital rail enable
	ParSer Line // parallel/serial programming select
}

// ErrMissingResource is returned by [New] when a collaborator is nil.
var ErrMissingResource = errors.New("adaq8092: missing resource")

func (pl PowerLines) validate() error {
	var missing []string
	if pl.PD1 == nil {
		missing = append(missing, "PD1")
	}
	if pl.PD2 == nil {
		missing = append(missing, "PD2")
	}
	if pl.En1P8 == nil {
		missing = append(missing, "EN_1P8")
	}
	if pl.ParSer == nil {
		missing = append(missing, "PAR/SER")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: GPIO %v", ErrMissingResource, missing)
	}
	return nil
}

// LineClock drives the enable input of an external oscillator.
type LineClock struct {
	Line Line
}

func (lc LineClock) Enable() error {
	return lc.Line.SetValue(1)
}

// Disable stops the oscillator and releases the line.
func (lc LineClock) Disable() error {
	return errors.Join(lc.Line.SetValue(0), lc.Line.Close())
}

// FreeRunningClock is for boards whose oscillator cannot be gated.
type FreeRunningClock struct{}

func (FreeRunningClock) Enable() error  { return nil }
func (FreeRunningClock) Disable() error { return nil }
