package adaq8092

import (
	"fmt"
	"time"
)

// State is a step of the fixed power-up sequence.
type State int

const (
	StateUnpowered State = iota
	StateAnalogEnabled
	StateDigitalEnabled
	StateResetIssued
	StateConfigured
)

func (s State) String() string {
	switch s {
	case StateUnpowered:
		return "unpowered"
	case StateAnalogEnabled:
		return "analog_enabled"
	case StateDigitalEnabled:
		return "digital_enabled"
	case StateResetIssued:
		return "reset_issued"
	case StateConfigured:
		return "configured"
	default:
		return fmt.Sprintf("(invalid state %d)", int(s))
	}
}

// Delays are the blocking settle waits of the power-up sequence.
type Delays struct {
	AnalogSettle  time.Duration // after all lines are driven low
	DigitalSettle time.Duration // after the 1P8 rail is enabled
	ResetSettle   time.Duration // after the software reset write
}

// DefaultDelays returns the waits used by the reference drivers.
func DefaultDelays() Delays {
	return Delays{
		AnalogSettle:  1000 * time.Millisecond,
		DigitalSettle: 1000 * time.Millisecond,
		ResetSettle:   100 * time.Millisecond,
	}
}

func (adc *ADAQ8092) setState(s State) {
	adc.log.Debug().Stringer("from", adc.state).Stringer("to", s).Msg("power state")
	adc.state = s
}

func drive(name string, l Line, value int) error {
	if err := l.SetValue(value); err != nil {
		return fmt.Errorf("failed to drive %s to %d: %w", name, value, err)
	}
	return nil
}

// powerUp runs the GPIO part of the sequence. Caller holds mu.
func (adc *ADAQ8092) powerUp() error {
	adc.setState(StateUnpowered)

	if err := drive("PD1", adc.lines.PD1, 0); err != nil {
		return err
	}
	if err := drive("PD2", adc.lines.PD2, 0); err != nil {
		return err
	}
	if err := drive("EN_1P8", adc.lines.En1P8, 0); err != nil {
		return err
	}
	if err := drive("PAR/SER", adc.lines.ParSer, 0); err != nil {
		return err
	}

	adc.sleep(adc.delays.AnalogSettle)
	adc.setState(StateAnalogEnabled)

	if err := drive("EN_1P8", adc.lines.En1P8, 1); err != nil {
		return err
	}

	adc.sleep(adc.delays.DigitalSettle)
	adc.setState(StateDigitalEnabled)

	if err := drive("PD1", adc.lines.PD1, 1); err != nil {
		return err
	}
	return drive("PD2", adc.lines.PD2, 1)
}

// reset issues a software reset and waits for it to settle. Every setting
// returns to its post-reset default of zero. Caller holds mu.
func (adc *ADAQ8092) reset() error {
	if err := adc.writeRegister(RegReset, FieldReset.Prep(1)); err != nil {
		return err
	}

	adc.sleep(adc.delays.ResetSettle)

	adc.shadow = [numSettings]uint8{}
	adc.regLW = [NumRegisters]byte{}
	adc.regLR = [NumRegisters]byte{}
	adc.setState(StateResetIssued)
	return nil
}

// Reset issues a software reset. Settings are back at their post-reset
// defaults afterwards; use [ADAQ8092.Apply] to configure the chip again.
func (adc *ADAQ8092) Reset() error {
	adc.mu.Lock()
	defer adc.mu.Unlock()
	if adc.closed {
		return ErrClosed
	}
	if adc.state < StateDigitalEnabled {
		return fmt.Errorf("cannot reset while %s", adc.state)
	}
	return adc.reset()
}
