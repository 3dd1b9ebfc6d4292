package adaq8092

import "fmt"

// PowerdownMode trades power for channel availability.
type PowerdownMode uint8

const (
	PowerdownNormal PowerdownMode = iota
	PowerdownCh2Nap
	PowerdownCh1Ch2Nap
	PowerdownSleep
)

// ClockPolarity selects the CLKOUT polarity.
type ClockPolarity uint8

const (
	ClockPolarityNormal ClockPolarity = iota
	ClockPolarityInverted
)

// ClockPhase delays CLKOUT relative to the data outputs.
type ClockPhase uint8

const (
	ClockPhaseNoDelay ClockPhase = iota
	ClockPhase45Deg
	ClockPhase90Deg
	ClockPhase180Deg
)

// ClockDutyCycle switches the clock duty cycle stabilizer.
type ClockDutyCycle uint8

const (
	DutyCycleStabilizerOff ClockDutyCycle = iota
	DutyCycleStabilizerOn
)

// LVDSCurrent is the LVDS output drive current. The codes are the datasheet
// codes and are not contiguous.
type LVDSCurrent uint8

const (
	LVDSCurrent3mA5  LVDSCurrent = 0
	LVDSCurrent4mA   LVDSCurrent = 1
	LVDSCurrent4mA5  LVDSCurrent = 2
	LVDSCurrent3mA   LVDSCurrent = 4
	LVDSCurrent2mA5  LVDSCurrent = 5
	LVDSCurrent2mA1  LVDSCurrent = 6
	LVDSCurrent1mA75 LVDSCurrent = 7
)

// LVDSTermination switches the on-chip LVDS termination.
type LVDSTermination uint8

const (
	TerminationOff LVDSTermination = iota
	TerminationOn
)

// DigitalOutput maps the OUTOFF bit, 1 puts the output drivers in Hi-Z.
type DigitalOutput uint8

const (
	OutputsEnabled DigitalOutput = iota
	OutputsDisabled
)

// OutputMode selects the digital output interface.
type OutputMode uint8

const (
	FullRateCMOS OutputMode = iota
	DoubleRateLVDS
	DoubleRateCMOS
)

// TestPattern replaces conversion data with a fixed pattern.
type TestPattern uint8

const (
	TestOff TestPattern = iota
	TestAllOnes
	TestAllZeros
	TestCheckerboard
	TestAlternating
)

// AltBitPolarity switches alternate bit polarity mode.
type AltBitPolarity uint8

const (
	AltBitPolarityOff AltBitPolarity = iota
	AltBitPolarityOn
)

// DataRandomizer switches the output data randomizer.
type DataRandomizer uint8

const (
	RandomizerOff DataRandomizer = iota
	RandomizerOn
)

// DataFormat selects offset binary or two's complement output codes.
type DataFormat uint8

const (
	OffsetBinary DataFormat = iota
	TwosComplement
)

type code interface{ ~uint8 }

func marshalItem[T code](s Setting, v T) ([]byte, error) {
	if !s.Valid(uint8(v)) {
		return nil, fmt.Errorf("%w %s: %d", ErrInvalidValue, s.Name(), uint8(v))
	}
	return []byte(s.ItemName(uint8(v))), nil
}

func unmarshalItem[T code](s Setting, text []byte, v *T) error {
	c, err := s.ParseItem(string(text))
	if err != nil {
		return err
	}
	*v = T(c)
	return nil
}

func (m PowerdownMode) String() string { return SettingPowerdownMode.ItemName(uint8(m)) }
func (m PowerdownMode) MarshalText() ([]byte, error) {
	return marshalItem(SettingPowerdownMode, m)
}
func (m *PowerdownMode) UnmarshalText(b []byte) error {
	return unmarshalItem(SettingPowerdownMode, b, m)
}

func (m ClockPolarity) String() string { return SettingClockPolarity.ItemName(uint8(m)) }
func (m ClockPolarity) MarshalText() ([]byte, error) {
	return marshalItem(SettingClockPolarity, m)
}
func (m *ClockPolarity) UnmarshalText(b []byte) error {
	return unmarshalItem(SettingClockPolarity, b, m)
}

func (m ClockPhase) String() string { return SettingClockPhase.ItemName(uint8(m)) }
func (m ClockPhase) MarshalText() ([]byte, error) {
	return marshalItem(SettingClockPhase, m)
}
func (m *ClockPhase) UnmarshalText(b []byte) error {
	return unmarshalItem(SettingClockPhase, b, m)
}

func (m ClockDutyCycle) String() string { return SettingClockDutyCycle.ItemName(uint8(m)) }
func (m ClockDutyCycle) MarshalText() ([]byte, error) {
	return marshalItem(SettingClockDutyCycle, m)
}
func (m *ClockDutyCycle) UnmarshalText(b []byte) error {
	return unmarshalItem(SettingClockDutyCycle, b, m)
}

func (m LVDSCurrent) String() string { return SettingLVDSCurrent.ItemName(uint8(m)) }
func (m LVDSCurrent) MarshalText() ([]byte, error) {
	return marshalItem(SettingLVDSCurrent, m)
}
func (m *LVDSCurrent) UnmarshalText(b []byte) error {
	return unmarshalItem(SettingLVDSCurrent, b, m)
}

func (m LVDSTermination) String() string { return SettingLVDSTermination.ItemName(uint8(m)) }
func (m LVDSTermination) MarshalText() ([]byte, error) {
	return marshalItem(SettingLVDSTermination, m)
}
func (m *LVDSTermination) UnmarshalText(b []byte) error {
	return unmarshalItem(SettingLVDSTermination, b, m)
}

func (m DigitalOutput) String() string { return SettingDigitalOutput.ItemName(uint8(m)) }
func (m DigitalOutput) MarshalText() ([]byte, error) {
	return marshalItem(SettingDigitalOutput, m)
}
func (m *DigitalOutput) UnmarshalText(b []byte) error {
	return unmarshalItem(SettingDigitalOutput, b, m)
}

func (m OutputMode) String() string { return SettingOutputMode.ItemName(uint8(m)) }
func (m OutputMode) MarshalText() ([]byte, error) {
	return marshalItem(SettingOutputMode, m)
}
func (m *OutputMode) UnmarshalText(b []byte) error {
	return unmarshalItem(SettingOutputMode, b, m)
}

func (m TestPattern) String() string { return SettingTestPattern.ItemName(uint8(m)) }
func (m TestPattern) MarshalText() ([]byte, error) {
	return marshalItem(SettingTestPattern, m)
}
func (m *TestPattern) UnmarshalText(b []byte) error {
	return unmarshalItem(SettingTestPattern, b, m)
}

func (m AltBitPolarity) String() string { return SettingAltBitPolarity.ItemName(uint8(m)) }
func (m AltBitPolarity) MarshalText() ([]byte, error) {
	return marshalItem(SettingAltBitPolarity, m)
}
func (m *AltBitPolarity) UnmarshalText(b []byte) error {
	return unmarshalItem(SettingAltBitPolarity, b, m)
}

func (m DataRandomizer) String() string { return SettingDataRandomizer.ItemName(uint8(m)) }
func (m DataRandomizer) MarshalText() ([]byte, error) {
	return marshalItem(SettingDataRandomizer, m)
}
func (m *DataRandomizer) UnmarshalText(b []byte) error {
	return unmarshalItem(SettingDataRandomizer, b, m)
}

func (m DataFormat) String() string { return SettingDataFormat.ItemName(uint8(m)) }
func (m DataFormat) MarshalText() ([]byte, error) {
	return marshalItem(SettingDataFormat, m)
}
func (m *DataFormat) UnmarshalText(b []byte) error {
	return unmarshalItem(SettingDataFormat, b, m)
}
