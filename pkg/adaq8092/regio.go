package adaq8092

import (
	"errors"
	"fmt"
)

// ErrRegisterRange is returned for addresses above [MaxRegister].
var ErrRegisterRange = errors.New("adaq8092: register address out of range")

func checkRegister(reg Register) error {
	if reg > MaxRegister {
		return fmt.Errorf("%w: 0x%02X", ErrRegisterRange, byte(reg))
	}
	return nil
}

// writeRegister writes a single register [reg] with the given value. Bus
// errors are returned as is.
func (adc *ADAQ8092) writeRegister(reg Register, value byte) error {
	if err := checkRegister(reg); err != nil {
		return err
	}

	out := getFrame()
	defer putFrame(out)
	out[0] = byte(reg) &^ ReadFlag
	out[1] = value

	if err := adc.spi.Tx(out, nil); err != nil {
		return err
	}

	if reg < NumRegisters {
		adc.regLW[reg] = value
	}
	return nil
}

// readRegister reads a single register [reg]. Bus errors are returned as is.
func (adc *ADAQ8092) readRegister(reg Register) (byte, error) {
	if err := checkRegister(reg); err != nil {
		return 0, err
	}

	out := getFrame()
	defer putFrame(out)
	out[0] = byte(reg) | ReadFlag

	in := getFrame()
	defer putFrame(in)

	if err := adc.spi.Tx(out, in); err != nil {
		return 0, err
	}

	if reg < NumRegisters {
		adc.regLR[reg] = in[1]
	}
	return in[1], nil
}

// updateField read-modify-writes f so sibling fields keep their bits.
func (adc *ADAQ8092) updateField(f Field, v uint8) error {
	var old byte
	if adc.cached {
		old = adc.regLW[f.Reg]
	} else {
		var err error
		if old, err = adc.readRegister(f.Reg); err != nil {
			return err
		}
	}
	return adc.writeRegister(f.Reg, f.Update(old, v))
}

// ReadRegister reads any register up to [MaxRegister] over the bus.
func (adc *ADAQ8092) ReadRegister(reg Register) (byte, error) {
	adc.mu.Lock()
	defer adc.mu.Unlock()
	if adc.closed {
		return 0, ErrClosed
	}
	return adc.readRegister(reg)
}

// WriteRegister writes a raw byte to any register up to [MaxRegister].
//
// Shadows of settings living in reg are refreshed from value, and writing the
// reset bit behaves like [ADAQ8092.Reset], so setting reads stay truthful
// after a poke.
func (adc *ADAQ8092) WriteRegister(reg Register, value byte) error {
	adc.mu.Lock()
	defer adc.mu.Unlock()
	if adc.closed {
		return ErrClosed
	}

	if reg == RegReset && FieldReset.Get(value) == 1 {
		return adc.reset()
	}

	if err := adc.writeRegister(reg, value); err != nil {
		return err
	}

	for i, info := range settingTable {
		if info.field.Reg != reg {
			continue
		}
		v := info.field.Get(value)
		adc.shadow[i] = v
		if !Setting(i).Valid(v) {
			// Config() will not validate until the setting is written again
			adc.log.Warn().
				Str("setting", info.name).
				Str("value", Setting(i).ItemName(v)).
				Stringer("register", reg).
				Msg("raw write left an undefined code")
		}
	}
	return nil
}

// LastReadRegister returns the byte last read from reg.
func (adc *ADAQ8092) LastReadRegister(reg Register) byte {
	adc.mu.Lock()
	defer adc.mu.Unlock()
	if reg >= NumRegisters {
		return 0
	}
	return adc.regLR[reg]
}

// LastWrittenRegister returns the byte last written to reg.
func (adc *ADAQ8092) LastWrittenRegister(reg Register) byte {
	adc.mu.Lock()
	defer adc.mu.Unlock()
	if reg >= NumRegisters {
		return 0
	}
	return adc.regLW[reg]
}

// Registers returns the last written value of every setting register.
func (adc *ADAQ8092) Registers() map[Register]byte {
	adc.mu.Lock()
	r := make(map[Register]byte, NumRegisters)
	for reg, val := range adc.regLW {
		r[Register(reg)] = val
	}
	adc.mu.Unlock()
	return r
}

// ReadAllRegisters reads the setting registers back from the chip.
func (adc *ADAQ8092) ReadAllRegisters() (registers map[Register]byte, err error) {
	adc.mu.Lock()
	defer adc.mu.Unlock()
	if adc.closed {
		return nil, ErrClosed
	}

	registers = make(map[Register]byte, NumRegisters)
	for reg := Register(0); reg < NumRegisters; reg++ {
		val, err := adc.readRegister(reg)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", reg, err)
		}
		registers[reg] = val
	}
	return registers, nil
}
