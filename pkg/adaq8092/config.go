package adaq8092

import (
	"errors"
	"fmt"
)

// Config represents user-level configuration parameters. Field names in
// profiles match the attribute names a host exposes.
type Config struct {
	PowerdownMode   PowerdownMode   `yaml:"pd_mode"`
	ClockPolarity   ClockPolarity   `yaml:"clk_pol_mode"`
	ClockPhase      ClockPhase      `yaml:"clk_phase_mode"`
	ClockDutyCycle  ClockDutyCycle  `yaml:"clk_dc_mode"`
	LVDSCurrent     LVDSCurrent     `yaml:"lvds_cur_mode"`
	LVDSTermination LVDSTermination `yaml:"lvds_term_mode"`
	DigitalOutput   DigitalOutput   `yaml:"dout_en"`
	OutputMode      OutputMode      `yaml:"dout_mode"`
	TestPattern     TestPattern     `yaml:"test_mode"`
	AltBitPolarity  AltBitPolarity  `yaml:"alt_bit_pol_en"`
	DataRandomizer  DataRandomizer  `yaml:"data_rand_en"`
	DataFormat      DataFormat      `yaml:"twos_complement"`
}

// DefaultConfig is the post-reset state with two's complement output, which
// is what the signed sample channels expect.
func DefaultConfig() Config {
	return Config{
		PowerdownMode:   PowerdownNormal,
		ClockPolarity:   ClockPolarityNormal,
		ClockPhase:      ClockPhaseNoDelay,
		ClockDutyCycle:  DutyCycleStabilizerOff,
		LVDSCurrent:     LVDSCurrent3mA5,
		LVDSTermination: TerminationOff,
		DigitalOutput:   OutputsEnabled,
		OutputMode:      FullRateCMOS,
		TestPattern:     TestOff,
		AltBitPolarity:  AltBitPolarityOff,
		DataRandomizer:  RandomizerOff,
		DataFormat:      TwosComplement,
	}
}

// Value returns the code cfg holds for s.
func (cfg Config) Value(s Setting) uint8 {
	switch s {
	case SettingPowerdownMode:
		return uint8(cfg.PowerdownMode)
	case SettingClockPolarity:
		return uint8(cfg.ClockPolarity)
	case SettingClockPhase:
		return uint8(cfg.ClockPhase)
	case SettingClockDutyCycle:
		return uint8(cfg.ClockDutyCycle)
	case SettingLVDSCurrent:
		return uint8(cfg.LVDSCurrent)
	case SettingLVDSTermination:
		return uint8(cfg.LVDSTermination)
	case SettingDigitalOutput:
		return uint8(cfg.DigitalOutput)
	case SettingOutputMode:
		return uint8(cfg.OutputMode)
	case SettingTestPattern:
		return uint8(cfg.TestPattern)
	case SettingAltBitPolarity:
		return uint8(cfg.AltBitPolarity)
	case SettingDataRandomizer:
		return uint8(cfg.DataRandomizer)
	case SettingDataFormat:
		return uint8(cfg.DataFormat)
	default:
		return 0
	}
}

// SetValue stores code v for s without validating it.
func (cfg *Config) SetValue(s Setting, v uint8) {
	switch s {
	case SettingPowerdownMode:
		cfg.PowerdownMode = PowerdownMode(v)
	case SettingClockPolarity:
		cfg.ClockPolarity = ClockPolarity(v)
	case SettingClockPhase:
		cfg.ClockPhase = ClockPhase(v)
	case SettingClockDutyCycle:
		cfg.ClockDutyCycle = ClockDutyCycle(v)
	case SettingLVDSCurrent:
		cfg.LVDSCurrent = LVDSCurrent(v)
	case SettingLVDSTermination:
		cfg.LVDSTermination = LVDSTermination(v)
	case SettingDigitalOutput:
		cfg.DigitalOutput = DigitalOutput(v)
	case SettingOutputMode:
		cfg.OutputMode = OutputMode(v)
	case SettingTestPattern:
		cfg.TestPattern = TestPattern(v)
	case SettingAltBitPolarity:
		cfg.AltBitPolarity = AltBitPolarity(v)
	case SettingDataRandomizer:
		cfg.DataRandomizer = DataRandomizer(v)
	case SettingDataFormat:
		cfg.DataFormat = DataFormat(v)
	}
}

// Validate checks every value against the datasheet codes.
func (cfg Config) Validate() error {
	var errs []error
	for _, s := range Settings() {
		if v := cfg.Value(s); !s.Valid(v) {
			errs = append(errs, fmt.Errorf("%w %s: %d", ErrInvalidValue, s.Name(), v))
		}
	}
	return errors.Join(errs...)
}
