package ft232h

import (
	"errors"
	"fmt"
	"github.com/yunginnanet/ft232h"
	"strconv"
)

var ErrBadDescriptor = errors.New("invalid FT232H descriptor provided")

// Descriptor identifies which FT232H bridge to open. Index, serial number
// and a raw [ft232h.Mask] are tried in that order of precedence.
type Descriptor struct {
	Index  int
	Serial string
	mask   *ft232h.Mask
}

func emptyMask(mask *ft232h.Mask) bool {
	return mask == nil || (mask.Serial == "" && mask.PID == "" && mask.VID == "" && mask.Desc == "" && mask.Index == "")
}

// Validate checks if [Descriptor] names at least one device property.
func (ftd Descriptor) Validate() error {
	if ftd.Index < 0 && ftd.Serial == "" && emptyMask(ftd.mask) {
		return ErrBadDescriptor
	}
	return nil
}

// Mask returns the [ft232h.Mask] used to open the bridge. The stored mask is
// never modified.
func (ftd Descriptor) Mask() *ft232h.Mask {
	m := new(ft232h.Mask)
	if ftd.mask != nil {
		*m = *ftd.mask
	}
	if ftd.Serial != "" {
		m.Serial = ftd.Serial
	}
	if ftd.Index >= 0 {
		m.Index = strconv.Itoa(ftd.Index)
	}
	return m
}

func (ftd Descriptor) String() string {
	switch {
	case ftd.Serial != "":
		return fmt.Sprintf("FT232H{serial:%s}", ftd.Serial)
	case ftd.Index >= 0:
		return fmt.Sprintf("FT232H{index:%d}", ftd.Index)
	default:
		return fmt.Sprintf("FT232H{mask:%+v}", ftd.mask)
	}
}

// ByIndex selects the bridge at the given enumeration index.
func ByIndex(index int) Descriptor {
	return Descriptor{Index: index}
}

// BySerial selects the bridge with the given serial number.
func BySerial(serial string) Descriptor {
	return Descriptor{Serial: serial, Index: -1}
}

func ByMask(mask *ft232h.Mask) Descriptor {
	return Descriptor{mask: mask, Index: -1}
}
