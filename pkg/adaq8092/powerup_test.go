package adaq8092

import (
	"errors"
	"testing"
)

func TestPowerUpSequence(t *testing.T) {
	r := newRig()
	adc := r.open(t, DefaultConfig())

	t.Run("GPIOOrder", func(t *testing.T) {
		want := []string{
			"PD1=0", "PD2=0", "EN_1P8=0", "PAR/SER=0",
			"sleep 1s",
			"EN_1P8=1",
			"sleep 1s",
			"PD1=1", "PD2=1",
			"sleep 100ms",
		}
		if got := r.gpioEvents(); !equalStrings(got, want) {
			t.Errorf("unexpected GPIO sequence:\n%s", pprint.Sdump(got))
		}
	})

	t.Run("ClockBeforePower", func(t *testing.T) {
		if r.j.index("clk on") != 0 {
			t.Errorf("input clock must be enabled first:\n%s", pprint.Sdump(r.j.events))
		}
	})

	t.Run("ResetThenSettle", func(t *testing.T) {
		pdHigh := r.j.index("PD2=1")
		reset := r.j.index("write 0x00=0x80")
		settle := r.j.index("sleep 100ms")
		firstSetting := r.j.index("read 0x01")
		if pdHigh < 0 || reset < 0 || settle < 0 || firstSetting < 0 {
			t.Fatalf("missing events:\n%s", pprint.Sdump(r.j.events))
		}
		if !(pdHigh < reset && reset+1 == settle && settle < firstSetting) {
			t.Errorf("reset must follow power-down exit and settle before settings:\n%s",
				pprint.Sdump(r.j.events))
		}
	})

	t.Run("Configured", func(t *testing.T) {
		if adc.State() != StateConfigured {
			t.Errorf("expected %s, got %s", StateConfigured, adc.State())
		}
		if adc.Config() != DefaultConfig() {
			t.Errorf("shadow does not match applied config:\n%s", pprint.Sdump(adc.Config()))
		}
		if r.bus.regs[RegDataFormat] != TwosCompBit {
			t.Errorf("expected DATA_FORMAT 0x%02X, got 0x%02X", TwosCompBit, r.bus.regs[RegDataFormat])
		}
	})

	t.Run("Close", func(t *testing.T) {
		mark := len(r.j.events)
		if err := adc.Close(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"clk off", "close PAR/SER", "close EN_1P8", "close PD2", "close PD1", "close bus"}
		if got := r.j.events[mark:]; !equalStrings(got, want) {
			t.Errorf("unexpected teardown order:\n%s", pprint.Sdump(got))
		}
		if err := adc.Close(); err != nil {
			t.Errorf("second close should be a no-op, got %v", err)
		}
		if len(r.j.events) != mark+len(want) {
			t.Errorf("second close released resources again")
		}
		if err := adc.SetPowerdownMode(PowerdownSleep); !errors.Is(err, ErrClosed) {
			t.Errorf("expected ErrClosed, got %v", err)
		}
	})
}

func TestInitFailureTeardown(t *testing.T) {
	fullTeardown := []string{"clk off", "close PAR/SER", "close EN_1P8", "close PD2", "close PD1", "close bus"}

	t.Run("GPIO", func(t *testing.T) {
		r := newRig()
		r.pd2.fail = map[int]error{1: errGPIO}
		adc, err := r.new(DefaultConfig())
		if adc != nil || !errors.Is(err, errGPIO) {
			t.Fatalf("expected GPIO error, got %v", err)
		}
		tail := r.j.events[len(r.j.events)-len(fullTeardown):]
		if !equalStrings(tail, fullTeardown) {
			t.Errorf("unexpected teardown:\n%s", pprint.Sdump(r.j.events))
		}
		if r.j.index("write 0x00=0x80") >= 0 {
			t.Error("reset must not be issued after a failed power-up")
		}
	})

	t.Run("Reset", func(t *testing.T) {
		r := newRig()
		r.bus.fail = failWrites(RegReset)
		_, err := r.new(DefaultConfig())
		if !errors.Is(err, errBus) {
			t.Fatalf("expected bus error, got %v", err)
		}
		if r.j.index("sleep 100ms") >= 0 {
			t.Error("no settle wait expected after a failed reset")
		}
		tail := r.j.events[len(r.j.events)-len(fullTeardown):]
		if !equalStrings(tail, fullTeardown) {
			t.Errorf("unexpected teardown:\n%s", pprint.Sdump(r.j.events))
		}
	})

	t.Run("Setting", func(t *testing.T) {
		r := newRig()
		r.bus.fail = failWrites(RegOutputMode)
		_, err := r.new(DefaultConfig())
		if !errors.Is(err, errBus) {
			t.Fatalf("expected bus error, got %v", err)
		}
		if r.j.index("read 0x04") >= 0 {
			t.Error("configuration should stop at the first failed setting")
		}
		if !r.bus.closed || r.clk.enabled {
			t.Error("resources not released")
		}
	})

	t.Run("Clock", func(t *testing.T) {
		r := newRig()
		r.clk.enableErr = errors.New("clk: no such oscillator")
		_, err := r.new(DefaultConfig())
		if !errors.Is(err, r.clk.enableErr) {
			t.Fatalf("expected clock error, got %v", err)
		}
		want := fullTeardown[1:]
		if !equalStrings(r.j.events, want) {
			t.Errorf("unexpected teardown:\n%s", pprint.Sdump(r.j.events))
		}
	})

	t.Run("MissingLine", func(t *testing.T) {
		r := newRig()
		lines := r.lines()
		lines.En1P8 = nil
		_, err := New(r.bus, lines, r.clk, DefaultConfig(), WithSleep(r.sleep))
		if !errors.Is(err, ErrMissingResource) {
			t.Fatalf("expected ErrMissingResource, got %v", err)
		}
		want := []string{"close PAR/SER", "close PD2", "close PD1", "close bus"}
		if !equalStrings(r.j.events, want) {
			t.Errorf("unexpected teardown:\n%s", pprint.Sdump(r.j.events))
		}
	})

	t.Run("InvalidConfig", func(t *testing.T) {
		r := newRig()
		cfg := DefaultConfig()
		cfg.LVDSCurrent = 3
		_, err := r.new(cfg)
		if !errors.Is(err, ErrInvalidValue) {
			t.Fatalf("expected ErrInvalidValue, got %v", err)
		}
		if r.j.index("PD1=0") >= 0 {
			t.Error("power-up must not start with an invalid config")
		}
	})
}

func TestReset(t *testing.T) {
	r := newRig()
	adc := r.open(t, DefaultConfig())
	defer adc.Close()

	if err := adc.SetTestPattern(TestCheckerboard); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := adc.Reset(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if adc.State() != StateResetIssued {
		t.Errorf("expected %s, got %s", StateResetIssued, adc.State())
	}
	for _, s := range Settings() {
		if v := adc.Get(s); v != 0 {
			t.Errorf("%s: expected post-reset default 0, got %d", s, v)
		}
	}

	cfg := DefaultConfig()
	cfg.OutputMode = DoubleRateLVDS
	if err := adc.Apply(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if adc.State() != StateConfigured || adc.OutputMode() != DoubleRateLVDS {
		t.Errorf("apply after reset did not configure the device: %s %s", adc.State(), adc.OutputMode())
	}
}
