package bram

import (
	"fmt"
	"strings"
)

const (
	// PrimitiveName is the block RAM cell every layout instantiates.
	PrimitiveName = "TDP_RAM36K"
	// AddrBits is the width of each port's ADDR bus.
	AddrBits = 15
	// DataBits is the width of each port's WDATA/RDATA bus.
	DataBits = 36
	// ByteEnableBits is the width of each port's BE bus.
	ByteEnableBits = 4
	// InitBits is the size of the INIT parameter.
	InitBits = 36864
	// ModeBitsWidth is the size of the MODE_BITS parameter.
	ModeBitsWidth = 81
)

// Aspect is one depth x width configuration of the primitive. Shift is the
// number of low ADDR bits left unused (tied 0) in that configuration.
type Aspect struct {
	Depth int
	Width int
	Shift int
}

// Aspects lists the supported configurations, widest first.
var Aspects = []Aspect{
	{Depth: 1024, Width: 36, Shift: 5},
	{Depth: 2048, Width: 18, Shift: 4},
	{Depth: 4096, Width: 9, Shift: 3},
	{Depth: 8192, Width: 4, Shift: 2},
	{Depth: 16384, Width: 2, Shift: 1},
	{Depth: 32768, Width: 1, Shift: 0},
}

// String returns the "DxW" spelling used by the aspect argument.
func (a Aspect) String() string {
	return fmt.Sprintf("%dx%d", a.Depth, a.Width)
}

// IntraBits is the number of ADDR bits that index a word.
func (a Aspect) IntraBits() int {
	return AddrBits - a.Shift
}

// ByteWritable reports whether the aspect has 9-bit lanes usable for byte
// writes.
func (a Aspect) ByteWritable() bool {
	return a.Width%9 == 0
}

// DataWidth is how many user data bits one primitive carries. With byte
// writes each 9-bit lane holds one byte and the parity bit stays unused.
func (a Aspect) DataWidth(byteWrite bool) int {
	if byteWrite {
		return a.Width / 9 * 8
	}
	return a.Width
}

// Lanes is the number of 9-bit byte lanes in a byte-writable aspect.
func (a Aspect) Lanes() int {
	return a.Width / 9
}

// ParseAspect resolves a "DxW" string such as "2048x18".
func ParseAspect(s string) (Aspect, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for _, a := range Aspects {
		if a.String() == norm {
			return a, nil
		}
	}
	names := make([]string, len(Aspects))
	for i, a := range Aspects {
		names[i] = a.String()
	}
	return Aspect{}, fmt.Errorf("unknown aspect %q (want auto or one of %s)", s, strings.Join(names, ", "))
}

// widthCodes are the 3-bit MODE_BITS encodings of a port word width.
var widthCodes = map[int]uint8{
	0:  0b000,
	1:  0b001,
	2:  0b010,
	4:  0b011,
	9:  0b100,
	18: 0b101,
	36: 0b110,
}

// WidthCode returns the encoding of a port word width; 0 marks an unused
// port direction.
func WidthCode(width int) (uint8, error) {
	c, ok := widthCodes[width]
	if !ok {
		return 0, fmt.Errorf("no width code for a %d-bit port", width)
	}
	return c, nil
}
