package bram

import (
	"fmt"
	"math/bits"
)

// InitVectors spreads memory contents across the primitives. words[i] is
// the word at address i; missing trailing words are zero. The result holds
// one INIT value per primitive (same order as Primitives) as a hex string of
// InitBits/4 digits, MSB first. Inside a primitive, entry i occupies
// INIT[i*w+w-1 : i*w] where w is the aspect width.
func (l *Layout) InitVectors(words []uint64) ([]string, error) {
	if len(words) > l.Request.Depth {
		return nil, fmt.Errorf("init data has %d words, memory depth is %d", len(words), l.Request.Depth)
	}
	if l.Request.DataWidth < 64 {
		for addr, w := range words {
			if bits.Len64(w) > l.Request.DataWidth {
				return nil, fmt.Errorf("init word %#x at address %d does not fit in %d bits", w, addr, l.Request.DataWidth)
			}
		}
	}

	out := make([]string, len(l.Primitives))
	for idx, p := range l.Primitives {
		var image [InitBits]bool
		for entry := 0; entry < l.Aspect.Depth; entry++ {
			addr := p.Row*l.Aspect.Depth + entry
			if addr >= len(words) {
				break
			}
			word := words[addr]
			for _, s := range p.Segments {
				for b := 0; b < s.Width; b++ {
					ub := s.UserLo + b
					if ub >= 64 || word&(1<<uint(ub)) == 0 {
						continue
					}
					image[entry*l.Aspect.Width+s.PrimLo+b] = true
				}
			}
		}
		out[idx] = toHex(image[:])
	}
	return out, nil
}

// toHex renders a bit vector (index 0 = LSB) as hex, MSB first.
func toHex(v []bool) string {
	const digits = "0123456789abcdef"
	n := (len(v) + 3) / 4
	buf := make([]byte, n)
	for d := 0; d < n; d++ {
		var nib byte
		for b := 0; b < 4; b++ {
			if i := d*4 + b; i < len(v) && v[i] {
				nib |= 1 << b
			}
		}
		buf[n-1-d] = digits[nib]
	}
	return string(buf)
}
