package adaq8092

import "fmt"

// Set writes v into the field backing s and records it as the shadow value.
//
// Bus errors are returned unchanged and leave the shadow value untouched.
func (adc *ADAQ8092) Set(s Setting, v uint8) error {
	if !s.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownSetting, int(s))
	}
	if !s.Valid(v) {
		return fmt.Errorf("%w %s: %d", ErrInvalidValue, s.Name(), v)
	}

	adc.mu.Lock()
	defer adc.mu.Unlock()
	if adc.closed {
		return ErrClosed
	}
	return adc.set(s, v)
}

func (adc *ADAQ8092) set(s Setting, v uint8) error {
	info := settingTable[s]
	if err := adc.updateField(info.field, v); err != nil {
		return err
	}
	adc.shadow[s] = v

	adc.log.Debug().
		Str("setting", info.name).
		Str("value", s.ItemName(v)).
		Stringer("field", info.field).
		Msg("setting written")
	return nil
}

// Get returns the shadow value of s without any bus traffic.
func (adc *ADAQ8092) Get(s Setting) uint8 {
	if !s.valid() {
		return 0
	}
	adc.mu.Lock()
	v := adc.shadow[s]
	adc.mu.Unlock()
	return v
}

// Apply writes every setting of cfg in table order and stops at the first
// failure. Settings written before the failure keep their new values.
func (adc *ADAQ8092) Apply(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	adc.mu.Lock()
	defer adc.mu.Unlock()
	if adc.closed {
		return ErrClosed
	}
	return adc.apply(cfg)
}

func (adc *ADAQ8092) apply(cfg Config) error {
	for _, s := range Settings() {
		if err := adc.set(s, cfg.Value(s)); err != nil {
			return fmt.Errorf("failed to write %s: %w", s.Name(), err)
		}
	}
	if adc.state >= StateResetIssued {
		adc.setState(StateConfigured)
	}
	return nil
}

// Config returns a snapshot of the shadow values.
func (adc *ADAQ8092) Config() Config {
	adc.mu.Lock()
	defer adc.mu.Unlock()
	var cfg Config
	for i, v := range adc.shadow {
		cfg.SetValue(Setting(i), v)
	}
	return cfg
}

func (adc *ADAQ8092) SetPowerdownMode(m PowerdownMode) error {
	return adc.Set(SettingPowerdownMode, uint8(m))
}

func (adc *ADAQ8092) PowerdownMode() PowerdownMode {
	return PowerdownMode(adc.Get(SettingPowerdownMode))
}

func (adc *ADAQ8092) SetClockPolarity(m ClockPolarity) error {
	return adc.Set(SettingClockPolarity, uint8(m))
}

func (adc *ADAQ8092) ClockPolarity() ClockPolarity {
	return ClockPolarity(adc.Get(SettingClockPolarity))
}

func (adc *ADAQ8092) SetClockPhase(m ClockPhase) error {
	return adc.Set(SettingClockPhase, uint8(m))
}

func (adc *ADAQ8092) ClockPhase() ClockPhase {
	return ClockPhase(adc.Get(SettingClockPhase))
}

func (adc *ADAQ8092) SetClockDutyCycle(m ClockDutyCycle) error {
	return adc.Set(SettingClockDutyCycle, uint8(m))
}

func (adc *ADAQ8092) ClockDutyCycle() ClockDutyCycle {
	return ClockDutyCycle(adc.Get(SettingClockDutyCycle))
}

func (adc *ADAQ8092) SetLVDSCurrent(m LVDSCurrent) error {
	return adc.Set(SettingLVDSCurrent, uint8(m))
}

func (adc *ADAQ8092) LVDSCurrent() LVDSCurrent {
	return LVDSCurrent(adc.Get(SettingLVDSCurrent))
}

func (adc *ADAQ8092) SetLVDSTermination(m LVDSTermination) error {
	return adc.Set(SettingLVDSTermination, uint8(m))
}

func (adc *ADAQ8092) LVDSTermination() LVDSTermination {
	return LVDSTermination(adc.Get(SettingLVDSTermination))
}

func (adc *ADAQ8092) SetDigitalOutput(m DigitalOutput) error {
	return adc.Set(SettingDigitalOutput, uint8(m))
}

func (adc *ADAQ8092) DigitalOutput() DigitalOutput {
	return DigitalOutput(adc.Get(SettingDigitalOutput))
}

func (adc *ADAQ8092) SetOutputMode(m OutputMode) error {
	return adc.Set(SettingOutputMode, uint8(m))
}

func (adc *ADAQ8092) OutputMode() OutputMode {
	return OutputMode(adc.Get(SettingOutputMode))
}

func (adc *ADAQ8092) SetTestPattern(m TestPattern) error {
	return adc.Set(SettingTestPattern, uint8(m))
}

func (adc *ADAQ8092) TestPattern() TestPattern {
	return TestPattern(adc.Get(SettingTestPattern))
}

func (adc *ADAQ8092) SetAltBitPolarity(m AltBitPolarity) error {
	return adc.Set(SettingAltBitPolarity, uint8(m))
}

func (adc *ADAQ8092) AltBitPolarity() AltBitPolarity {
	return AltBitPolarity(adc.Get(SettingAltBitPolarity))
}

func (adc *ADAQ8092) SetDataRandomizer(m DataRandomizer) error {
	return adc.Set(SettingDataRandomizer, uint8(m))
}

func (adc *ADAQ8092) DataRandomizer() DataRandomizer {
	return DataRandomizer(adc.Get(SettingDataRandomizer))
}

func (adc *ADAQ8092) SetDataFormat(m DataFormat) error {
	return adc.Set(SettingDataFormat, uint8(m))
}

func (adc *ADAQ8092) DataFormat() DataFormat {
	return DataFormat(adc.Get(SettingDataFormat))
}
