package adaq8092

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownSetting = errors.New("adaq8092: unknown setting")
	ErrInvalidValue   = errors.New("adaq8092: invalid value for setting")
)

// Setting names one logical configuration value backed by a single [Field].
type Setting int

const (
	SettingPowerdownMode Setting = iota
	SettingClockPolarity
	SettingClockPhase
	SettingClockDutyCycle
	SettingLVDSCurrent
	SettingLVDSTermination
	SettingDigitalOutput
	SettingOutputMode
	SettingTestPattern
	SettingAltBitPolarity
	SettingDataRandomizer
	SettingDataFormat

	numSettings
)

type item struct {
	code uint8
	name string
}

type settingInfo struct {
	name  string
	field Field
	items []item
}

var onOff = []item{{0, "off"}, {1, "on"}}

// settingTable is indexed by Setting. Item order is the order values are
// listed to a host.
var settingTable = [numSettings]settingInfo{
	SettingPowerdownMode: {
		name:  "pd_mode",
		field: Field{Reg: RegPowerdown, Shift: 0, Width: 2},
		items: []item{{0, "normal"}, {1, "ch2_nap"}, {2, "ch1_ch2_nap"}, {3, "sleep"}},
	},
	SettingClockPolarity: {
		name:  "clk_pol_mode",
		field: Field{Reg: RegTiming, Shift: 3, Width: 1},
		items: []item{{0, "normal"}, {1, "inverted"}},
	},
	SettingClockPhase: {
		name:  "clk_phase_mode",
		field: Field{Reg: RegTiming, Shift: 1, Width: 2},
		items: []item{{0, "no_delay"}, {1, "45_deg"}, {2, "90_deg"}, {3, "180_deg"}},
	},
	SettingClockDutyCycle: {
		name:  "clk_dc_mode",
		field: Field{Reg: RegTiming, Shift: 0, Width: 1},
		items: onOff,
	},
	SettingLVDSCurrent: {
		name:  "lvds_cur_mode",
		field: Field{Reg: RegOutputMode, Shift: 4, Width: 3},
		// code 3 is not defined by the datasheet
		items: []item{
			{0, "3.5mA"}, {1, "4mA"}, {2, "4.5mA"}, {4, "3mA"}, {5, "2.5mA"}, {6, "2.1mA"}, {7, "1.75mA"},
		},
	},
	SettingLVDSTermination: {
		name:  "lvds_term_mode",
		field: Field{Reg: RegOutputMode, Shift: 3, Width: 1},
		items: onOff,
	},
	SettingDigitalOutput: {
		name:  "dout_en",
		field: Field{Reg: RegOutputMode, Shift: 2, Width: 1},
		items: []item{{0, "enabled"}, {1, "disabled"}},
	},
	SettingOutputMode: {
		name:  "dout_mode",
		field: Field{Reg: RegOutputMode, Shift: 0, Width: 2},
		items: []item{{0, "full_rate_cmos"}, {1, "double_rate_lvds"}, {2, "double_rate_cmos"}},
	},
	SettingTestPattern: {
		name:  "test_mode",
		field: Field{Reg: RegDataFormat, Shift: 3, Width: 3},
		items: []item{{0, "off"}, {1, "all_ones"}, {2, "all_zeros"}, {3, "checkerboard"}, {4, "alternating"}},
	},
	SettingAltBitPolarity: {
		name:  "alt_bit_pol_en",
		field: Field{Reg: RegDataFormat, Shift: 2, Width: 1},
		items: onOff,
	},
	SettingDataRandomizer: {
		name:  "data_rand_en",
		field: Field{Reg: RegDataFormat, Shift: 1, Width: 1},
		items: onOff,
	},
	SettingDataFormat: {
		name:  "twos_complement",
		field: Field{Reg: RegDataFormat, Shift: 0, Width: 1},
		items: []item{{0, "offset_binary"}, {1, "twos_complement"}},
	},
}

// Settings returns every setting in table order.
func Settings() []Setting {
	s := make([]Setting, numSettings)
	for i := range s {
		s[i] = Setting(i)
	}
	return s
}

func (s Setting) valid() bool {
	return s >= 0 && s < numSettings
}

// Name is the attribute name a host exposes the setting under.
func (s Setting) Name() string {
	if !s.valid() {
		return fmt.Sprintf("(invalid setting %d)", int(s))
	}
	return settingTable[s].name
}

func (s Setting) String() string {
	return s.Name()
}

// Field returns the register bits backing the setting.
func (s Setting) Field() Field {
	if !s.valid() {
		return Field{}
	}
	return settingTable[s].field
}

// Valid reports whether v is one of the codes the datasheet defines for s.
func (s Setting) Valid(v uint8) bool {
	if !s.valid() {
		return false
	}
	for _, it := range settingTable[s].items {
		if it.code == v {
			return true
		}
	}
	return false
}

// Codes lists the defined codes of s in host listing order.
func (s Setting) Codes() []uint8 {
	if !s.valid() {
		return nil
	}
	codes := make([]uint8, len(settingTable[s].items))
	for i, it := range settingTable[s].items {
		codes[i] = it.code
	}
	return codes
}

// Items lists the value names of s in host listing order.
func (s Setting) Items() []string {
	if !s.valid() {
		return nil
	}
	names := make([]string, len(settingTable[s].items))
	for i, it := range settingTable[s].items {
		names[i] = it.name
	}
	return names
}

// ItemName returns the name of code v, or a hex placeholder for codes the
// datasheet does not define.
func (s Setting) ItemName(v uint8) string {
	if s.valid() {
		for _, it := range settingTable[s].items {
			if it.code == v {
				return it.name
			}
		}
	}
	return fmt.Sprintf("0x%02X", v)
}

// ParseItem maps a value name back to its code. Matching ignores case.
func (s Setting) ParseItem(name string) (uint8, error) {
	if !s.valid() {
		return 0, ErrUnknownSetting
	}
	name = strings.TrimSpace(name)
	for _, it := range settingTable[s].items {
		if strings.EqualFold(it.name, name) {
			return it.code, nil
		}
	}
	return 0, fmt.Errorf("%w %s: %q (available: %s)",
		ErrInvalidValue, s.Name(), name, strings.Join(s.Items(), " "))
}

// SettingByName looks a setting up by its attribute name.
func SettingByName(name string) (Setting, error) {
	for i, info := range settingTable {
		if info.name == name {
			return Setting(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSetting, name)
}
