package bram

import (
	"strings"

	"github.com/vk/ipforge/internal/hdl"
)

// PortMode configures one primitive port. A zero width disables that
// direction.
type PortMode struct {
	ReadWidth  int
	WriteWidth int
	OutputReg  bool
}

// ModeBits is the decoded content of the MODE_BITS parameter.
type ModeBits struct {
	A         PortMode
	B         PortMode
	ByteWrite bool
}

// Bit positions inside MODE_BITS. Everything above ByteWriteBit is 0.
const (
	splitBit       = 0
	readWidthALo   = 1
	writeWidthALo  = 4
	outputRegABit  = 7
	readWidthBLo   = 8
	writeWidthBLo  = 11
	outputRegBBit  = 14
	byteWriteEnBit = 15
)

// Vector returns the 81 mode bits, index 0 being the LSB.
func (m ModeBits) Vector() ([ModeBitsWidth]bool, error) {
	var v [ModeBitsWidth]bool
	put := func(lo int, width int) error {
		code, err := WidthCode(width)
		if err != nil {
			return err
		}
		for i := 0; i < 3; i++ {
			v[lo+i] = code&(1<<i) != 0
		}
		return nil
	}
	// splitBit stays 0: the 36K cell is never split into two 18K halves.
	for _, f := range []struct {
		lo    int
		width int
	}{
		{readWidthALo, m.A.ReadWidth},
		{writeWidthALo, m.A.WriteWidth},
		{readWidthBLo, m.B.ReadWidth},
		{writeWidthBLo, m.B.WriteWidth},
	} {
		if err := put(f.lo, f.width); err != nil {
			return v, err
		}
	}
	v[outputRegABit] = m.A.OutputReg
	v[outputRegBBit] = m.B.OutputReg
	v[byteWriteEnBit] = m.ByteWrite
	return v, nil
}

// String returns the mode bits MSB first, or an error marker when a width
// has no encoding.
func (m ModeBits) String() string {
	v, err := m.Vector()
	if err != nil {
		return "invalid: " + err.Error()
	}
	var sb strings.Builder
	sb.Grow(ModeBitsWidth)
	for i := ModeBitsWidth - 1; i >= 0; i-- {
		if v[i] {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Literal returns the parameter value as a sized binary literal.
func (m ModeBits) Literal() string {
	return hdl.BinLit(m.String())
}

// modeFor encodes the port usage of a memory type at a given word width.
func modeFor(t MemoryType, width int, outputReg, byteWrite bool) ModeBits {
	rw := PortMode{ReadWidth: width, WriteWidth: width, OutputReg: outputReg}
	switch t {
	case SimpleDualPort:
		return ModeBits{
			A:         PortMode{WriteWidth: width},
			B:         PortMode{ReadWidth: width, OutputReg: outputReg},
			ByteWrite: byteWrite,
		}
	case TrueDualPort:
		return ModeBits{A: rw, B: rw, ByteWrite: byteWrite}
	case ROM:
		return ModeBits{A: PortMode{ReadWidth: width, OutputReg: outputReg}}
	default:
		return ModeBits{A: rw, ByteWrite: byteWrite}
	}
}
