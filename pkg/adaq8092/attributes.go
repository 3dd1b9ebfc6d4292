package adaq8092

import (
	"periph.io/x/conn/v3/physic"
)

// Converter is the surface a host framework binds to: named enumerated
// attributes plus raw register access for diagnostics.
type Converter interface {
	Attributes() []string
	ReadAttribute(name string) (string, error)
	AvailableValues(name string) ([]string, error)
	WriteAttribute(name, value string) error

	DebugRegisterRead(reg Register) (byte, error)
	DebugRegisterWrite(reg Register, value byte) error
}

var _ Converter = (*ADAQ8092)(nil)

// ChannelInfo describes the sample layout of one converter channel.
type ChannelInfo struct {
	Index       int
	Signed      bool
	RealBits    int
	StorageBits int
}

// ChipInfo describes the part for hosts that register channels.
type ChipInfo struct {
	Name          string
	MaxSampleRate physic.Frequency
	Channels      []ChannelInfo
}

// Info returns the fixed description of the ADAQ8092.
func Info() ChipInfo {
	return ChipInfo{
		Name:          "adaq8092",
		MaxSampleRate: 105 * physic.MegaHertz,
		Channels: []ChannelInfo{
			{Index: 0, Signed: true, RealBits: 14, StorageBits: 16},
			{Index: 1, Signed: true, RealBits: 14, StorageBits: 16},
		},
	}
}

// Attributes lists the attribute names in table order.
func (adc *ADAQ8092) Attributes() []string {
	names := make([]string, 0, numSettings)
	for _, s := range Settings() {
		names = append(names, s.Name())
	}
	return names
}

// ReadAttribute returns the current value name of an attribute.
func (adc *ADAQ8092) ReadAttribute(name string) (string, error) {
	s, err := SettingByName(name)
	if err != nil {
		return "", err
	}
	return s.ItemName(adc.Get(s)), nil
}

// AvailableValues lists the value names an attribute accepts.
func (adc *ADAQ8092) AvailableValues(name string) ([]string, error) {
	s, err := SettingByName(name)
	if err != nil {
		return nil, err
	}
	return s.Items(), nil
}

// WriteAttribute parses value as one of the attribute's names and writes it.
func (adc *ADAQ8092) WriteAttribute(name, value string) error {
	s, err := SettingByName(name)
	if err != nil {
		return err
	}
	v, err := s.ParseItem(value)
	if err != nil {
		return err
	}
	return adc.Set(s, v)
}

func (adc *ADAQ8092) DebugRegisterRead(reg Register) (byte, error) {
	return adc.ReadRegister(reg)
}

func (adc *ADAQ8092) DebugRegisterWrite(reg Register, value byte) error {
	return adc.WriteRegister(reg, value)
}
