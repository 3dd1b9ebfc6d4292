package adaq8092

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ErrClosed is returned by operations on a closed device.
var ErrClosed = errors.New("adaq8092: device closed")

// ADAQ8092 provides control over an Analog Devices ADAQ8092 dual 14-bit ADC.
//
// It owns the [SerialInterface], the [PowerLines] and the [Clock] handed to
// [New] and keeps a shadow copy of every [Setting], so reads of settings
// never touch the bus.
type ADAQ8092 struct {
	mu    sync.Mutex // Serializes register access and power sequencing
	spi   SerialInterface
	lines PowerLines
	clk   Clock

	clkOn  bool
	closed bool
	state  State

	shadow [numSettings]uint8

	// Last read or written register states (for reference or debugging)
	regLR [NumRegisters]byte // "Last Read"  register data
	regLW [NumRegisters]byte // "Last Write" register data

	cached bool // read-modify-write from regLW instead of the bus
	log    zerolog.Logger
	sleep  func(time.Duration)
	delays Delays
}

// Option customizes a device built by [New].
type Option func(*ADAQ8092)

// WithLogger sets the logger used for power sequencing and register writes.
func WithLogger(l zerolog.Logger) Option {
	return func(adc *ADAQ8092) {
		adc.log = l
	}
}

// WithSleep replaces [time.Sleep] for the fixed settle waits.
func WithSleep(sleep func(time.Duration)) Option {
	return func(adc *ADAQ8092) {
		if sleep != nil {
			adc.sleep = sleep
		}
	}
}

// WithDelays overrides the power-up settle times.
func WithDelays(d Delays) Option {
	return func(adc *ADAQ8092) {
		adc.delays = d
	}
}

// WithRegisterCache makes field updates start from the last written register
// byte instead of reading the register back over the bus.
func WithRegisterCache() Option {
	return func(adc *ADAQ8092) {
		adc.cached = true
	}
}

// New takes ownership of spi, lines and clk, runs the power-up sequence,
// resets the chip and applies cfg.
//
// If any step fails everything handed in is released in reverse order and
// the cause is returned. Nothing is retried.
func New(spi SerialInterface, lines PowerLines, clk Clock, cfg Config, opts ...Option) (*ADAQ8092, error) {
	adc := &ADAQ8092{
		spi:    spi,
		lines:  lines,
		clk:    clk,
		log:    zerolog.Nop(),
		sleep:  time.Sleep,
		delays: DefaultDelays(),
	}
	for _, opt := range opts {
		opt(adc)
	}

	adc.mu.Lock()
	defer adc.mu.Unlock()

	if spi == nil {
		return nil, adc.abort(fmt.Errorf("%w: serial interface", ErrMissingResource))
	}
	if err := lines.validate(); err != nil {
		return nil, adc.abort(err)
	}
	if clk == nil {
		return nil, adc.abort(fmt.Errorf("%w: input clock", ErrMissingResource))
	}
	if err := cfg.Validate(); err != nil {
		return nil, adc.abort(err)
	}

	if err := adc.clk.Enable(); err != nil {
		return nil, adc.abort(fmt.Errorf("failed to enable input clock: %w", err))
	}
	adc.clkOn = true

	if err := adc.powerUp(); err != nil {
		return nil, adc.abort(fmt.Errorf("power-up sequence failed: %w", err))
	}

	if err := adc.reset(); err != nil {
		return nil, adc.abort(fmt.Errorf("software reset failed: %w", err))
	}

	if err := adc.apply(cfg); err != nil {
		return nil, adc.abort(fmt.Errorf("failed to configure device: %w", err))
	}

	adc.log.Info().Stringer("state", adc.state).Msg("ADAQ8092 configured")

	return adc, nil
}

// abort releases everything and reports cause first.
func (adc *ADAQ8092) abort(cause error) error {
	adc.log.Error().Err(cause).Stringer("state", adc.state).Msg("initialization aborted")
	return errors.Join(cause, adc.release())
}

// release frees resources in reverse acquisition order: clock, PAR/SER,
// 1P8 enable, PD2, PD1, serial interface.
func (adc *ADAQ8092) release() error {
	var errs []error
	if adc.clkOn {
		if err := adc.clk.Disable(); err != nil {
			errs = append(errs, fmt.Errorf("failed to disable input clock: %w", err))
		}
		adc.clkOn = false
	}

	ordered := []struct {
		name string
		line Line
	}{
		{"PAR/SER", adc.lines.ParSer},
		{"EN_1P8", adc.lines.En1P8},
		{"PD2", adc.lines.PD2},
		{"PD1", adc.lines.PD1},
	}
	for _, l := range ordered {
		if l.line == nil {
			continue
		}
		if err := l.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to release %s line: %w", l.name, err))
		}
	}

	if adc.spi != nil {
		if err := adc.spi.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close serial interface: %w", err))
		}
	}

	adc.closed = true
	return errors.Join(errs...)
}

// Close releases every resource the device owns. Calling it again is a no-op.
func (adc *ADAQ8092) Close() error {
	adc.mu.Lock()
	defer adc.mu.Unlock()
	if adc.closed {
		return nil
	}
	err := adc.release()
	adc.log.Debug().Err(err).Msg("ADAQ8092 closed")
	return err
}

// State reports how far the power-up sequence has progressed.
func (adc *ADAQ8092) State() State {
	adc.mu.Lock()
	defer adc.mu.Unlock()
	return adc.state
}
