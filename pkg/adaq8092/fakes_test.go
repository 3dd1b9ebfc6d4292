package adaq8092

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/l0nax/go-spew/spew"
)

var pprint = spew.ConfigState{
	Indent:                  "\t",
	MaxDepth:                0,
	DisableMethods:          false,
	DisablePointerMethods:   false,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	ContinueOnMethod:        true,
	SortKeys:                true,
	SpewKeys:                true,
	HighlightValues:         false,
	HighlightHex:            true,
}

var (
	errBus  = errors.New("spi: transfer failed")
	errGPIO = errors.New("gpio: line busy")
)

// journal records every collaborator interaction in order.
type journal struct {
	events []string
}

func (j *journal) add(format string, args ...interface{}) {
	j.events = append(j.events, fmt.Sprintf(format, args...))
}

func (j *journal) index(event string) int {
	for i, e := range j.events {
		if e == event {
			return i
		}
	}
	return -1
}

// fakeBus is an in-memory register file speaking the chip's framing.
type fakeBus struct {
	j      *journal
	regs   [int(MaxRegister) + 1]byte
	txs    [][]byte
	fail   func(w []byte) error
	closed bool
}

func (b *fakeBus) Tx(w, r []byte) error {
	b.txs = append(b.txs, append([]byte(nil), w...))
	if b.fail != nil {
		if err := b.fail(w); err != nil {
			return err
		}
	}
	addr := w[0] &^ ReadFlag
	if w[0]&ReadFlag != 0 {
		b.j.add("read 0x%02X", addr)
		r[1] = b.regs[addr]
		return nil
	}
	b.j.add("write 0x%02X=0x%02X", addr, w[1])
	if Register(addr) == RegReset && w[1]&ResetBit != 0 {
		// reset bit self clears and every register returns to zero
		b.regs = [int(MaxRegister) + 1]byte{}
		return nil
	}
	b.regs[addr] = w[1]
	return nil
}

func (b *fakeBus) Close() error {
	b.closed = true
	b.j.add("close bus")
	return nil
}

func (b *fakeBus) lastWrite() []byte {
	for i := len(b.txs) - 1; i >= 0; i-- {
		if b.txs[i][0]&ReadFlag == 0 {
			return b.txs[i]
		}
	}
	return nil
}

// failWrites fails every write to reg.
func failWrites(reg Register) func([]byte) error {
	return func(w []byte) error {
		if w[0] == byte(reg) {
			return errBus
		}
		return nil
	}
}

// failReads fails every read of reg.
func failReads(reg Register) func([]byte) error {
	return func(w []byte) error {
		if w[0] == byte(reg)|ReadFlag {
			return errBus
		}
		return nil
	}
}

type fakeLine struct {
	j      *journal
	name   string
	value  int
	fail   map[int]error
	closed bool
}

func (l *fakeLine) SetValue(v int) error {
	if err := l.fail[v]; err != nil {
		return err
	}
	l.value = v
	l.j.add("%s=%d", l.name, v)
	return nil
}

func (l *fakeLine) Close() error {
	l.closed = true
	l.j.add("close %s", l.name)
	return nil
}

type fakeClock struct {
	j         *journal
	enableErr error
	enabled   bool
}

func (c *fakeClock) Enable() error {
	if c.enableErr != nil {
		return c.enableErr
	}
	c.enabled = true
	c.j.add("clk on")
	return nil
}

func (c *fakeClock) Disable() error {
	c.enabled = false
	c.j.add("clk off")
	return nil
}

type rig struct {
	j                  *journal
	bus                *fakeBus
	pd1, pd2, en, psel *fakeLine
	clk                *fakeClock
}

func newRig() *rig {
	j := &journal{}
	return &rig{
		j:    j,
		bus:  &fakeBus{j: j},
		pd1:  &fakeLine{j: j, name: "PD1", value: -1},
		pd2:  &fakeLine{j: j, name: "PD2", value: -1},
		en:   &fakeLine{j: j, name: "EN_1P8", value: -1},
		psel: &fakeLine{j: j, name: "PAR/SER", value: -1},
		clk:  &fakeClock{j: j},
	}
}

func (r *rig) lines() PowerLines {
	return PowerLines{PD1: r.pd1, PD2: r.pd2, En1P8: r.en, ParSer: r.psel}
}

func (r *rig) sleep(d time.Duration) {
	r.j.add("sleep %s", d)
}

func (r *rig) new(cfg Config, opts ...Option) (*ADAQ8092, error) {
	opts = append([]Option{WithSleep(r.sleep)}, opts...)
	return New(r.bus, r.lines(), r.clk, cfg, opts...)
}

func (r *rig) open(t *testing.T, cfg Config, opts ...Option) *ADAQ8092 {
	t.Helper()
	adc, err := r.new(cfg, opts...)
	if err != nil {
		t.Fatalf("failed to initialize ADAQ8092: %v\n%s", err, pprint.Sdump(r.j.events))
	}
	return adc
}

// gpioEvents filters the journal down to line transitions and sleeps.
func (r *rig) gpioEvents() []string {
	var out []string
	for _, e := range r.j.events {
		switch {
		case len(e) > 5 && e[:5] == "sleep":
			out = append(out, e)
		case e == "PD1=0", e == "PD1=1", e == "PD2=0", e == "PD2=1",
			e == "EN_1P8=0", e == "EN_1P8=1", e == "PAR/SER=0", e == "PAR/SER=1":
			out = append(out, e)
		}
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
