// Package ft232h adapts an FTDI FT232H USB bridge into the SPI transport and
// GPIO lines an ADAQ8092 needs: MPSSE SPI on the D bus, power control on the
// C bus.
package ft232h

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"github.com/yunginnanet/ft232h"
	"strconv"
	"sync"
)

// DeviceInfo represents a snapshot of the device information for the [FT232H] device.
type DeviceInfo struct {
	Index       int
	Serial      string
	Description string
	ProductID   string
	VendorID    string
	IsOpen      bool
	IsHighSpeed bool
}

func (ft DeviceInfo) String() string {
	return fmt.Sprintf(
		"DeviceInfo{Index:%d, Serial:%s, Description:%s, ProductID:%s, VendorID:%s, IsOpen:%t, IsHighSpeed:%t}",
		ft.Index, ft.Serial, ft.Description, ft.ProductID, ft.VendorID, ft.IsOpen, ft.IsHighSpeed,
	)
}

// FT232H is an opened bridge. It satisfies the ADAQ8092 serial interface
// through [FT232H.Tx] and hands out C-bus pins through [FT232H.Line].
type FT232H struct {
	*ft232h.FT232H

	mu     sync.Mutex
	lines  map[ft232h.CPin]*Line
	closed bool
}

func (ft *FT232H) vidPid() (vid string, pid string) {
	vid = strconv.Itoa(int(ft.VID()))
	pid = strconv.Itoa(int(ft.PID()))

	b := bytes.NewBuffer(nil)
	h := hex.NewEncoder(b)

	if err := binary.Write(h, binary.BigEndian, ft.VID()); err == nil && len(b.String()) > 5 {
		vid = b.String()[4:]
	}

	b.Reset()

	if err := binary.Write(h, binary.BigEndian, ft.PID()); err == nil && len(b.String()) > 5 {
		pid = b.String()[4:]
	}

	return vid, pid
}

// Info returns a snapshot of the device information for the FT232H device. Read-only.
func (ft *FT232H) Info() DeviceInfo {
	vid, pid := ft.vidPid()
	return DeviceInfo{
		Index:       ft.Index(),
		Serial:      ft.Serial(),
		Description: ft.Desc(),
		ProductID:   pid,
		VendorID:    vid,
		IsOpen:      ft.IsOpen(),
		IsHighSpeed: ft.IsHiSpeed(),
	}
}

func (ft *FT232H) String() string {
	vid, pid := ft.vidPid()
	return fmt.Sprintf("FT232H[%s:%s]: %s", vid, pid, ft.Desc())
}

// Connect opens the first bridge found, or the one matching choice.
func Connect(choice ...Descriptor) (ft *FT232H, err error) {
	ft = &FT232H{lines: make(map[ft232h.CPin]*Line)}

	switch len(choice) {
	case 0:
		ft.FT232H, err = ft232h.New()
	case 1:
		if err = choice[0].Validate(); err != nil {
			return nil, err
		}
		ft.FT232H, err = ft232h.OpenMask(choice[0].Mask())
	default:
		return nil, fmt.Errorf("invalid number of arguments: %d", len(choice))
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open FT232H: %w", err)
	}
	return ft, nil
}

// Close shuts the SPI engine down and releases the USB device. Lines still
// held are released first.
func (ft *FT232H) Close() error {
	ft.mu.Lock()
	if ft.closed {
		ft.mu.Unlock()
		return nil
	}
	ft.closed = true
	held := make([]*Line, 0, len(ft.lines))
	for _, l := range ft.lines {
		held = append(held, l)
	}
	ft.mu.Unlock()

	var errs []error
	for _, l := range held {
		errs = append(errs, l.Close())
	}
	errs = append(errs, ft.SPI.Close(), ft.FT232H.Close())
	return errors.Join(errs...)
}
