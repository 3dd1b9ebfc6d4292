package ft232h

import (
	"fmt"
	"github.com/yunginnanet/ft232h"
)

// DefaultSPIClock is the bridge clock used when ConfigureSPI is given zero.
const DefaultSPIClock uint32 = 1_000_000

// ConfigureSPI sets up the MPSSE engine. The chip select is driven active
// low by the engine itself, cs being the D-bus pin mask.
func (ft *FT232H) ConfigureSPI(clockHz uint32, mode byte, cs uint) error {
	if clockHz == 0 {
		clockHz = DefaultSPIClock
	}

	cfg := ft.SPI.GetConfig()
	cfg.Clock = clockHz
	cfg.CS = ft232h.C(cs)
	cfg.Mode = mode
	cfg.ActiveLow = true

	if err := ft.SPI.Config(cfg); err != nil {
		return fmt.Errorf("failed to configure SPI: %w", err)
	}
	return nil
}

// Tx runs one chip-select framed transaction.
//
// The bridge is half duplex, so for reads (r != nil) only the header byte
// w[0] is clocked out and the remaining len(w)-1 bytes are clocked in to r[1:]
// under the same chip select. A nil r writes all of w.
func (ft *FT232H) Tx(w, r []byte) error {
	if len(w) == 0 {
		return nil
	}

	if r == nil {
		if _, err := ft.SPI.Write(w, true, true); err != nil {
			return fmt.Errorf("spi write: %w", err)
		}
		return nil
	}

	if len(r) < len(w) {
		return fmt.Errorf("spi read: buffer too small, need %d bytes, got %d", len(w), len(r))
	}

	if _, err := ft.SPI.Write(w[:1], true, len(w) == 1); err != nil {
		return fmt.Errorf("spi write: %w", err)
	}
	if len(w) == 1 {
		return nil
	}

	in, err := ft.SPI.Read(uint(len(w)-1), false, true)
	if err != nil {
		return fmt.Errorf("spi read: %w", err)
	}
	copy(r[1:], in)
	return nil
}
