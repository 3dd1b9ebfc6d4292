package adaq8092

import "fmt"

type Register byte

func (r Register) String() string {
	switch r {
	case RegReset:
		return "RESET"
	case RegPowerdown:
		return "POWERDOWN"
	case RegTiming:
		return "TIMING"
	case RegOutputMode:
		return "OUTPUT_MODE"
	case RegDataFormat:
		return "DATA_FORMAT"
	default:
		return fmt.Sprintf("REG_0x%02X", byte(r))
	}
}

// Field is a contiguous run of bits inside one register.
type Field struct {
	Reg   Register
	Shift uint8
	Width uint8
}

// FieldReset is the self-clearing software reset bit.
var FieldReset = Field{Reg: RegReset, Shift: 7, Width: 1}

// Mask returns the register bits covered by the field.
func (f Field) Mask() byte {
	return byte((uint16(1)<<f.Width - 1) << f.Shift)
}

// Max is the largest value the field can hold.
func (f Field) Max() uint8 {
	return uint8(uint16(1)<<f.Width - 1)
}

// Prep shifts v into position, like FIELD_PREP.
func (f Field) Prep(v uint8) byte {
	return (v << f.Shift) & f.Mask()
}

// Get extracts the field value from a register byte.
func (f Field) Get(b byte) uint8 {
	return (b & f.Mask()) >> f.Shift
}

// Update replaces the field bits of old with v, leaving sibling bits alone.
func (f Field) Update(old byte, v uint8) byte {
	return (old &^ f.Mask()) | f.Prep(v)
}

func (f Field) String() string {
	hi := f.Shift + f.Width - 1
	if f.Width == 1 {
		return fmt.Sprintf("%s[%d]", f.Reg, f.Shift)
	}
	return fmt.Sprintf("%s[%d:%d]", f.Reg, hi, f.Shift)
}

// checkLayout verifies every field fits in a byte and that no two fields of
// the same register share a bit.
func checkLayout(fields []Field) error {
	used := make(map[Register]byte)
	for _, f := range fields {
		if f.Width == 0 || int(f.Shift)+int(f.Width) > 8 {
			return fmt.Errorf("field %s does not fit in an 8 bit register", f)
		}
		if f.Reg > MaxRegister {
			return fmt.Errorf("field %s: %w", f, ErrRegisterRange)
		}
		if used[f.Reg]&f.Mask() != 0 {
			return fmt.Errorf("field %s overlaps another field in %s (used bits %08b)", f, f.Reg, used[f.Reg])
		}
		used[f.Reg] |= f.Mask()
	}
	return nil
}

func fieldTable() []Field {
	fields := make([]Field, 0, numSettings+1)
	fields = append(fields, FieldReset)
	for _, s := range settingTable {
		fields = append(fields, s.field)
	}
	return fields
}

func init() {
	if err := checkLayout(fieldTable()); err != nil {
		panic(err)
	}
}
