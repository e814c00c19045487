package bram

import (
	"fmt"
	"strings"

	"github.com/vk/ipforge/internal/hdl"
	"github.com/vk/ipforge/internal/ipcore"
)

// MemoryType selects which primitive ports a memory uses.
type MemoryType string

const (
	SinglePort     MemoryType = "single_port"
	SimpleDualPort MemoryType = "simple_dual_port"
	TrueDualPort   MemoryType = "true_dual_port"
	ROM            MemoryType = "rom"
)

// MemoryTypes lists the accepted memory types.
var MemoryTypes = []MemoryType{SinglePort, SimpleDualPort, TrueDualPort, ROM}

// AutoAspect lets Plan choose the aspect with the fewest primitives.
const AutoAspect = "auto"

const (
	MinDataWidth = 1
	MaxDataWidth = 4096
	MinDepth     = 2
	MaxDepth     = 1 << 20
	// MaxPrimitives bounds the size of a single generated memory.
	MaxPrimitives = 4096
)

// core is the name parameter errors are reported under.
const core = "on_chip_memory"

// Request is the user-facing description of a memory.
type Request struct {
	Type            MemoryType
	DataWidth       int
	Depth           int
	ByteWriteEnable bool
	OutputRegister  bool
	// Aspect is AutoAspect or a "DxW" string from Aspects.
	Aspect string
}

// Segment maps user data bits [UserLo+Width-1:UserLo] onto primitive data
// bits [PrimLo+Width-1:PrimLo].
type Segment struct {
	UserLo int
	PrimLo int
	Width  int
}

// UserHi is the most significant user bit of the segment.
func (s Segment) UserHi() int { return s.UserLo + s.Width - 1 }

// PrimHi is the most significant primitive bit of the segment.
func (s Segment) PrimHi() int { return s.PrimLo + s.Width - 1 }

// Unused marks a byte lane whose BE input is tied 0.
const Unused = -1

// Primitive is one placed TDP_RAM36K.
type Primitive struct {
	Name   string
	Row    int
	Column int
	// Segments are ordered by primitive bit, LSB first.
	Segments []Segment
	// ByteLanes gives, per BE bit, the user byte-enable index driving it or
	// Unused. Nil when byte writes are disabled.
	ByteLanes []int
}

// Layout is the result of packing a Request.
type Layout struct {
	Request Request
	Aspect  Aspect
	// BitsPerPrimitive is the number of user data bits one primitive stores.
	BitsPerPrimitive int
	Rows             int
	Columns          int
	// AddressWidth is the width of the user address bus.
	AddressWidth int
	// IntraBits is the number of user address bits that index a word inside
	// a primitive.
	IntraBits int
	// SelectWidth is the width of the row-select field addr[AW-1:IntraBits];
	// 0 when the memory fits in one row.
	SelectWidth int
	// ByteEnables is the width of the user byte-enable bus, 0 without byte
	// writes.
	ByteEnables int
	ReadLatency int
	Mode        ModeBits
	Primitives  []Primitive
}

// Count is the number of primitives used.
func (l *Layout) Count() int { return l.Rows * l.Columns }

// Primitive returns the primitive placed at (row, col).
func (l *Layout) Primitive(row, col int) *Primitive {
	return &l.Primitives[row*l.Columns+col]
}

// AddrExpr builds the 15-bit ADDR value for a user address signal: zero
// pad, the intra-primitive address and Shift zero bits.
func (l *Layout) AddrExpr(addr string) string {
	used := min(l.AddressWidth, l.IntraBits)
	pad := AddrBits - l.Aspect.Shift - used
	var parts []string
	if pad > 0 {
		parts = append(parts, hdl.Zeros(pad))
	}
	if l.AddressWidth == 1 {
		// A one-bit address port is a scalar and cannot be bit-selected.
		parts = append(parts, addr)
	} else {
		parts = append(parts, hdl.Slice(addr, used-1, 0))
	}
	if l.Aspect.Shift > 0 {
		parts = append(parts, hdl.Zeros(l.Aspect.Shift))
	}
	return hdl.Concat(parts...)
}

// SelectExpr returns the row-select field of a user address signal, or ""
// for single-row layouts.
func (l *Layout) SelectExpr(addr string) string {
	if l.SelectWidth == 0 {
		return ""
	}
	return hdl.Slice(addr, l.AddressWidth-1, l.IntraBits)
}

// Summary is a one-line description for logs.
func (l *Layout) Summary() string {
	return fmt.Sprintf("%dx%d as %d row(s) x %d column(s) of %s %s",
		l.Request.Depth, l.Request.DataWidth, l.Rows, l.Columns, PrimitiveName, l.Aspect)
}

// Plan validates a request and packs it onto primitives.
func Plan(req Request) (*Layout, error) {
	if err := validate(&req); err != nil {
		return nil, err
	}

	candidates := Aspects
	if req.ByteWriteEnable {
		candidates = nil
		for _, a := range Aspects {
			if a.ByteWritable() {
				candidates = append(candidates, a)
			}
		}
	}

	var aspect Aspect
	if req.Aspect == AutoAspect {
		best := -1
		for _, a := range candidates {
			// Strict comparison keeps the wider aspect on ties.
			if n := count(req, a); best < 0 || n < best {
				best, aspect = n, a
			}
		}
	} else {
		a, err := ParseAspect(req.Aspect)
		if err != nil {
			return nil, ipcore.NewParamError(core, "aspect", "%s", err)
		}
		if req.ByteWriteEnable && !a.ByteWritable() {
			return nil, ipcore.NewParamError(core, "aspect",
				"%s has no byte lanes; byte_write_enable needs one of 1024x36, 2048x18, 4096x9", a)
		}
		aspect = a
	}

	if n := count(req, aspect); n > MaxPrimitives {
		return nil, ipcore.NewParamError(core, "depth",
			"%dx%d needs %d primitives at aspect %s, more than the %d supported",
			req.Depth, req.DataWidth, n, aspect, MaxPrimitives)
	}

	l := &Layout{
		Request:          req,
		Aspect:           aspect,
		BitsPerPrimitive: aspect.DataWidth(req.ByteWriteEnable),
		Rows:             ipcore.CeilDiv(req.Depth, aspect.Depth),
		AddressWidth:     ipcore.Clog2(req.Depth),
		IntraBits:        ipcore.Log2(aspect.Depth),
		ReadLatency:      1,
		Mode:             modeFor(req.Type, aspect.Width, req.OutputRegister, req.ByteWriteEnable),
	}
	l.Columns = ipcore.CeilDiv(req.DataWidth, l.BitsPerPrimitive)
	if l.AddressWidth > l.IntraBits {
		l.SelectWidth = l.AddressWidth - l.IntraBits
	}
	if req.ByteWriteEnable {
		l.ByteEnables = req.DataWidth / 8
	}
	if req.OutputRegister {
		l.ReadLatency++
	}

	for r := 0; r < l.Rows; r++ {
		for c := 0; c < l.Columns; c++ {
			l.Primitives = append(l.Primitives, l.place(r, c))
		}
	}
	return l, nil
}

func (l *Layout) place(row, col int) Primitive {
	p := Primitive{
		Name:   fmt.Sprintf("u_bram_r%d_c%d", row, col),
		Row:    row,
		Column: col,
	}
	base := col * l.BitsPerPrimitive
	if !l.Request.ByteWriteEnable {
		p.Segments = []Segment{{UserLo: base, PrimLo: 0, Width: min(l.BitsPerPrimitive, l.Request.DataWidth-base)}}
		return p
	}

	lanes := l.Aspect.Lanes()
	p.ByteLanes = make([]int, ByteEnableBits)
	for j := range p.ByteLanes {
		p.ByteLanes[j] = Unused
	}
	for j := 0; j < lanes; j++ {
		byteIdx := col*lanes + j
		if byteIdx >= l.ByteEnables {
			break
		}
		p.Segments = append(p.Segments, Segment{UserLo: byteIdx * 8, PrimLo: 9 * j, Width: 8})
		p.ByteLanes[j] = byteIdx
	}
	return p
}

func count(req Request, a Aspect) int {
	return ipcore.CeilDiv(req.Depth, a.Depth) * ipcore.CeilDiv(req.DataWidth, a.DataWidth(req.ByteWriteEnable))
}

func validate(req *Request) error {
	if req.Aspect == "" {
		req.Aspect = AutoAspect
	}
	req.Aspect = strings.ToLower(strings.TrimSpace(req.Aspect))
	req.Type = MemoryType(strings.ToLower(strings.TrimSpace(string(req.Type))))
	if err := ipcore.CheckChoice(core, "memory_type", req.Type, MemoryTypes...); err != nil {
		return err
	}
	if err := ipcore.CheckRange(core, "data_width", req.DataWidth, MinDataWidth, MaxDataWidth); err != nil {
		return err
	}
	if err := ipcore.CheckRange(core, "depth", req.Depth, MinDepth, MaxDepth); err != nil {
		return err
	}
	if req.ByteWriteEnable {
		if req.Type == ROM {
			return ipcore.NewParamError(core, "byte_write_enable", "is not supported for a rom")
		}
		if req.DataWidth%8 != 0 {
			return ipcore.NewParamError(core, "byte_write_enable",
				"requires data_width to be a multiple of 8, got %d", req.DataWidth)
		}
	}
	return nil
}
