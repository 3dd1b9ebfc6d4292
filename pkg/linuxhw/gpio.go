package linuxhw

import (
	"errors"
	"fmt"

	"github.com/warthog618/gpiod"

	"github.com/yunginnanet/ftdi-adaq8092/pkg/adaq8092"
)

const consumer = "adaq8092"

var ErrBadOffsets = errors.New("linuxhw: invalid line offsets")

// Offsets are the GPIO chip offsets of the power sequencing lines.
type Offsets struct {
	PD1    int
	PD2    int
	En1P8  int
	ParSer int
}

// Validate rejects negative and shared offsets.
func (o Offsets) Validate() error {
	seen := make(map[int]string, 4)
	for _, l := range []struct {
		name   string
		offset int
	}{
		{"PD1", o.PD1}, {"PD2", o.PD2}, {"EN_1P8", o.En1P8}, {"PAR/SER", o.ParSer},
	} {
		if l.offset < 0 {
			return fmt.Errorf("%w: %s offset %d", ErrBadOffsets, l.name, l.offset)
		}
		if other, ok := seen[l.offset]; ok {
			return fmt.Errorf("%w: %s and %s share offset %d", ErrBadOffsets, other, l.name, l.offset)
		}
		seen[l.offset] = l.name
	}
	return nil
}

// RequestPowerLines requests the four power sequencing lines from chip as
// outputs driven low. Nothing is left requested on failure.
func RequestPowerLines(chip string, o Offsets) (adaq8092.PowerLines, error) {
	if err := o.Validate(); err != nil {
		return adaq8092.PowerLines{}, err
	}

	c, err := gpiod.NewChip(chip, gpiod.WithConsumer(consumer))
	if err != nil {
		return adaq8092.PowerLines{}, fmt.Errorf("failed to open %s: %w", chip, err)
	}
	// requested lines outlive the chip handle
	defer c.Close()

	var held []*gpiod.Line
	request := func(name string, offset int) (*gpiod.Line, error) {
		l, err := c.RequestLine(offset, gpiod.AsOutput(0))
		if err != nil {
			return nil, fmt.Errorf("failed to request %s (%s:%d): %w", name, chip, offset, err)
		}
		held = append(held, l)
		return l, nil
	}
	release := func(cause error) (adaq8092.PowerLines, error) {
		errs := []error{cause}
		for _, l := range held {
			errs = append(errs, l.Close())
		}
		return adaq8092.PowerLines{}, errors.Join(errs...)
	}

	pd1, err := request("PD1", o.PD1)
	if err != nil {
		return release(err)
	}
	pd2, err := request("PD2", o.PD2)
	if err != nil {
		return release(err)
	}
	en, err := request("EN_1P8", o.En1P8)
	if err != nil {
		return release(err)
	}
	ps, err := request("PAR/SER", o.ParSer)
	if err != nil {
		return release(err)
	}

	return adaq8092.PowerLines{PD1: pd1, PD2: pd2, En1P8: en, ParSer: ps}, nil
}

// RequestLine requests a single output line, initially low. It is meant for
// the enable pin of a gated oscillator, see [adaq8092.LineClock].
func RequestLine(chip string, offset int) (*gpiod.Line, error) {
	if offset < 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadOffsets, offset)
	}
	c, err := gpiod.NewChip(chip, gpiod.WithConsumer(consumer))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", chip, err)
	}
	defer c.Close()

	l, err := c.RequestLine(offset, gpiod.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("failed to request %s:%d: %w", chip, offset, err)
	}
	return l, nil
}
