package adaq8092

import (
	"errors"
	"sync"
	"testing"
)

func TestSetGet(t *testing.T) {
	r := newRig()
	adc := r.open(t, DefaultConfig())
	defer adc.Close()

	for _, s := range Settings() {
		s := s
		t.Run(s.Name(), func(t *testing.T) {
			f := s.Field()
			for _, v := range s.Codes() {
				if err := adc.Set(s, v); err != nil {
					t.Fatalf("set %s=%d: unexpected error: %v", s, v, err)
				}
				if got := adc.Get(s); got != v {
					t.Errorf("expected %d, got %d", v, got)
				}
				if got := f.Get(r.bus.regs[f.Reg]); got != v {
					t.Errorf("register %s holds %d in %s, expected %d", f.Reg, got, f, v)
				}
			}
		})
	}
}

func TestSiblingFieldsIndependent(t *testing.T) {
	r := newRig()
	adc := r.open(t, DefaultConfig())
	defer adc.Close()

	for _, s := range Settings() {
		for _, other := range Settings() {
			if s == other || s.Field().Reg != other.Field().Reg {
				continue
			}
			codes := s.Codes()
			v1 := codes[len(codes)-1]
			if err := adc.Set(s, v1); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, v2 := range other.Codes() {
				if err := adc.Set(other, v2); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got := adc.Get(s); got != v1 {
					t.Errorf("%s changed to %d after writing %s=%d", s, got, other, v2)
				}
				f := s.Field()
				if got := f.Get(r.bus.regs[f.Reg]); got != v1 {
					t.Errorf("%s bits corrupted on the chip after writing %s=%d: %08b",
						s, other, v2, r.bus.regs[f.Reg])
				}
			}
		}
	}
}

func TestOutputModeWrite(t *testing.T) {
	t.Run("ReadModifyWrite", func(t *testing.T) {
		r := newRig()
		adc := r.open(t, DefaultConfig())
		defer adc.Close()

		r.bus.regs[RegOutputMode] = 0b0000_1000 // termon set behind our back
		if err := adc.SetOutputMode(DoubleRateLVDS); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		w := r.bus.lastWrite()
		if w[0] != byte(RegOutputMode) || w[1] != 0b0000_1001 {
			t.Errorf("expected write 03 09, got % X", w)
		}
		if adc.OutputMode() != DoubleRateLVDS || adc.Get(SettingOutputMode) != 1 {
			t.Errorf("unexpected shadow %s", adc.OutputMode())
		}
	})

	t.Run("Cached", func(t *testing.T) {
		r := newRig()
		adc := r.open(t, DefaultConfig(), WithRegisterCache())
		defer adc.Close()

		if err := adc.SetLVDSTermination(TerminationOn); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		mark := len(r.bus.txs)
		if err := adc.SetOutputMode(DoubleRateLVDS); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(r.bus.txs) != mark+1 {
			t.Fatalf("cached update should be a single write, got:\n%s", pprint.Sdump(r.bus.txs[mark:]))
		}
		if w := r.bus.lastWrite(); w[1] != 0b0000_1001 {
			t.Errorf("expected 0b00001001, got %08b", w[1])
		}
	})
}

func TestSetBusFailure(t *testing.T) {
	for name, fail := range map[string]func([]byte) error{
		"Write": failWrites(RegPowerdown),
		"Read":  failReads(RegPowerdown),
	} {
		fail := fail
		t.Run(name, func(t *testing.T) {
			r := newRig()
			adc := r.open(t, DefaultConfig())
			defer adc.Close()

			if err := adc.SetPowerdownMode(PowerdownCh2Nap); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			before := r.bus.regs[RegPowerdown]

			r.bus.fail = fail
			err := adc.SetPowerdownMode(PowerdownSleep)
			if err != errBus {
				t.Fatalf("expected the transport error unchanged, got %v", err)
			}
			if adc.PowerdownMode() != PowerdownCh2Nap {
				t.Errorf("shadow changed on failure: %s", adc.PowerdownMode())
			}
			if adc.LastWrittenRegister(RegPowerdown) != before {
				t.Errorf("register image changed on failure")
			}
		})
	}
}

func TestSetRejectsInvalid(t *testing.T) {
	r := newRig()
	adc := r.open(t, DefaultConfig())
	defer adc.Close()
	mark := len(r.bus.txs)

	t.Run("LVDSGap", func(t *testing.T) {
		if err := adc.SetLVDSCurrent(3); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("expected ErrInvalidValue, got %v", err)
		}
		if err := adc.SetLVDSCurrent(LVDSCurrent1mA75); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		mark = len(r.bus.txs)
	})
	t.Run("OutOfRange", func(t *testing.T) {
		if err := adc.Set(SettingOutputMode, 3); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("expected ErrInvalidValue, got %v", err)
		}
		if err := adc.Set(SettingTestPattern, 5); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("expected ErrInvalidValue, got %v", err)
		}
		if err := adc.Set(SettingClockPolarity, 2); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("expected ErrInvalidValue, got %v", err)
		}
	})
	t.Run("UnknownSetting", func(t *testing.T) {
		if err := adc.Set(numSettings, 0); !errors.Is(err, ErrUnknownSetting) {
			t.Errorf("expected ErrUnknownSetting, got %v", err)
		}
		if adc.Get(Setting(-1)) != 0 {
			t.Error("invalid setting should read as zero")
		}
	})
	if len(r.bus.txs) != mark {
		t.Errorf("rejected values reached the bus:\n%s", pprint.Sdump(r.bus.txs[mark:]))
	}
}

func TestConcurrentSetters(t *testing.T) {
	r := newRig()
	adc := r.open(t, DefaultConfig())
	defer adc.Close()

	var wg sync.WaitGroup
	for _, s := range []Setting{SettingLVDSCurrent, SettingLVDSTermination, SettingDigitalOutput, SettingOutputMode} {
		wg.Add(1)
		go func(s Setting) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				for _, v := range s.Codes() {
					if err := adc.Set(s, v); err != nil {
						t.Errorf("unexpected error: %v", err)
						return
					}
					_ = adc.Get(s)
				}
			}
		}(s)
	}
	wg.Wait()

	reg := r.bus.regs[RegOutputMode]
	for _, s := range []Setting{SettingLVDSCurrent, SettingLVDSTermination, SettingDigitalOutput, SettingOutputMode} {
		if got := s.Field().Get(reg); got != adc.Get(s) {
			t.Errorf("%s: chip holds %d, shadow %d", s, got, adc.Get(s))
		}
	}
}
