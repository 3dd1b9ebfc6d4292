package ft232h

import (
	"errors"
	"fmt"
	"github.com/yunginnanet/ft232h"
)

var (
	ErrLineBusy   = errors.New("FT232H: line already requested")
	ErrLineClosed = errors.New("FT232H: line released")
	ErrClosed     = errors.New("FT232H: device closed")
)

// Line is one C-bus pin driven as an output.
type Line struct {
	ft  *FT232H
	pin ft232h.CPin
}

// Line requests the C-bus pin at mask as an output, initially low.
func (ft *FT232H) Line(mask uint) (*Line, error) {
	pin := ft232h.CPin(mask)

	ft.mu.Lock()
	defer ft.mu.Unlock()
	if ft.closed {
		return nil, ErrClosed
	}
	if _, ok := ft.lines[pin]; ok {
		return nil, fmt.Errorf("%w: %s", ErrLineBusy, pin)
	}

	if err := ft.GPIO.ConfigPin(pin, ft232h.Output, false); err != nil {
		return nil, fmt.Errorf("failed to configure %s: %w", pin, err)
	}

	l := &Line{ft: ft, pin: pin}
	ft.lines[pin] = l
	return l, nil
}

func (l *Line) String() string {
	return fmt.Sprintf("%s (pos %d)", l.pin, l.pin.Pos())
}

// SetValue drives the pin, any non-zero v is high. It fails once the line or
// its device has been closed.
func (l *Line) SetValue(v int) error {
	l.ft.mu.Lock()
	closed, held := l.ft.closed, l.ft.lines[l.pin] == l
	l.ft.mu.Unlock()
	switch {
	case closed:
		return fmt.Errorf("%w: %s", ErrClosed, l.pin)
	case !held:
		return fmt.Errorf("%w: %s", ErrLineClosed, l.pin)
	}

	if err := l.ft.GPIO.Set(l.pin, v != 0); err != nil {
		return fmt.Errorf("failed to set %s: %w", l.pin, err)
	}
	return nil
}

// Close returns the pin to an input so it stops driving the board.
func (l *Line) Close() error {
	l.ft.mu.Lock()
	held := l.ft.lines[l.pin] == l
	if held {
		delete(l.ft.lines, l.pin)
	}
	l.ft.mu.Unlock()
	if !held {
		return nil
	}
	return l.ft.GPIO.ConfigPin(l.pin, ft232h.Input, false)
}
