package adaq8092

// Constants from the datasheet

// Register Addresses
const (
	// RegReset is the software reset register
	RegReset Register = 0x00
	// RegPowerdown is the power-down mode register
	RegPowerdown Register = 0x01
	// RegTiming is the output clock timing register
	RegTiming Register = 0x02
	// RegOutputMode is the digital output mode register
	RegOutputMode Register = 0x03
	// RegDataFormat is the data format register
	RegDataFormat Register = 0x04

	// NumRegisters is the number of registers backing settings.
	NumRegisters = 0x05

	// MaxRegister is the highest address the serial port decodes.
	MaxRegister Register = 0x1A
)

// ReadFlag is set in the transaction header byte to read a register.
const ReadFlag = 0x80

// Bits for the RESET register
const (
	ResetBit = 0x80 // (bit7, self clearing)
)

// Bits for the POWERDOWN register
const (
	PowerdownModeMask = 0x03 // (bits1-0)
)

// Bits for the TIMING register
const (
	ClkInvertBit    = 0x08 // (bit3)
	ClkPhaseMask    = 0x06 // (bits2-1)
	ClkDutyCycleBit = 0x01 // (bit0)
)

// Bits for the OUTPUT MODE register
const (
	ILVDSMask  = 0x70 // (bits6-4)
	TermOnBit  = 0x08 // (bit3)
	OutOffBit  = 0x04 // (bit2)
	OutModeMsk = 0x03 // (bits1-0)
)

// Bits for the DATA FORMAT register
const (
	OutTestMask = 0x38 // (bits5-3)
	ABPBit      = 0x04 // (bit2)
	RandBit     = 0x02 // (bit1)
	TwosCompBit = 0x01 // (bit0)
)
