package on_chip_memory

import (
	"fmt"

	"github.com/vk/ipforge/internal/bram"
	"github.com/vk/ipforge/internal/hdl"
)

// port is one user-facing memory port and the primitive port it drives.
type port struct {
	suffix string // user signal suffix, "a" or "b"
	prim   string // primitive port letter, "A" or "B"
	clk    string
	read   bool
	write  bool

	wenRows []string
	renRows []string
}

func (p *port) sig(name string) string { return name + "_" + p.suffix }

// portsFor lists the user ports of a memory type. Single-port memories and
// ROMs always use one clock.
func portsFor(t bram.MemoryType, commonClock bool) []*port {
	clkA, clkB := "clk", "clk"
	if !commonClock && (t == bram.SimpleDualPort || t == bram.TrueDualPort) {
		clkA, clkB = "clk_a", "clk_b"
	}
	switch t {
	case bram.SimpleDualPort:
		return []*port{
			{suffix: "a", prim: "A", clk: clkA, write: true},
			{suffix: "b", prim: "B", clk: clkB, read: true},
		}
	case bram.TrueDualPort:
		return []*port{
			{suffix: "a", prim: "A", clk: clkA, read: true, write: true},
			{suffix: "b", prim: "B", clk: clkB, read: true, write: true},
		}
	case bram.ROM:
		return []*port{{suffix: "a", prim: "A", clk: clkA, read: true}}
	default:
		return []*port{{suffix: "a", prim: "A", clk: clkA, read: true, write: true}}
	}
}

// bits selects hi..lo of a user bus, leaving one-bit buses as scalars.
func bits(sig string, width, hi, lo int) string {
	if width == 1 {
		return sig
	}
	return hdl.Slice(sig, hi, lo)
}

// buildWrapper lays out the user ports, the row decode, the primitive array
// and the read multiplexers.
func buildWrapper(name string, l *bram.Layout, commonClock bool, inits []string) *hdl.Module {
	m := &hdl.Module{
		Name: name,
		Header: []string{
			l.Summary() + ".",
			fmt.Sprintf("Read latency: %d cycle(s).", l.ReadLatency),
		},
	}
	ports := portsFor(l.Request.Type, commonClock)
	width := l.Request.DataWidth

	declared := map[string]bool{}
	for _, p := range ports {
		if !declared[p.clk] {
			m.AddPort(p.clk, hdl.Input, 1, "")
			declared[p.clk] = true
		}
	}
	for _, p := range ports {
		m.AddPort(p.sig("addr"), hdl.Input, l.AddressWidth, "")
		if p.write {
			m.AddPort(p.sig("wen"), hdl.Input, 1, "write enable")
			if l.ByteEnables > 0 {
				m.AddPort(p.sig("be"), hdl.Input, l.ByteEnables, "byte enables, one per 8 data bits")
			}
			m.AddPort(p.sig("wdata"), hdl.Input, width, "")
		}
		if p.read {
			m.AddPort(p.sig("ren"), hdl.Input, 1, "read enable")
			m.Ports = append(m.Ports, hdl.Port{Name: p.sig("rdata"), Dir: hdl.Output, Width: width, Reg: l.Rows > 1})
		}
	}

	for _, p := range ports {
		if p.write {
			p.wenRows = rowEnables(m, l, p, "wen")
		}
		if p.read {
			p.renRows = rowEnables(m, l, p, "ren")
		}
	}

	for i, prim := range l.Primitives {
		inst := hdl.Instance{
			Primitive: bram.PrimitiveName,
			Name:      prim.Name,
			Comment:   fmt.Sprintf("row %d, column %d", prim.Row, prim.Column),
			Params:    []hdl.Param{{Name: "MODE_BITS", Value: l.Mode.Literal()}},
		}
		if inits != nil {
			inst.Params = append(inst.Params, hdl.Param{Name: "INIT", Value: hdl.HexLit(bram.InitBits, inits[i])})
		}
		for _, letter := range []string{"A", "B"} {
			var p *port
			for _, candidate := range ports {
				if candidate.prim == letter {
					p = candidate
				}
			}
			inst.Conns = append(inst.Conns, primitivePort(m, l, prim, p, letter)...)
		}
		m.Instances = append(m.Instances, inst)
	}

	for _, p := range ports {
		if p.read {
			readMux(m, l, p)
		}
	}
	return m
}

// rowEnables gates a port's enable with the row select field. It returns
// one expression per row.
func rowEnables(m *hdl.Module, l *bram.Layout, p *port, enable string) []string {
	en := p.sig(enable)
	if l.Rows == 1 {
		return []string{en}
	}
	bus := en + "_row"
	m.AddWire(bus, l.Rows)
	sel := l.SelectExpr(p.sig("addr"))
	out := make([]string, l.Rows)
	for r := range out {
		out[r] = hdl.Slice(bus, r, r)
		m.AddAssign(out[r], fmt.Sprintf("%s & (%s == %s)", en, sel, hdl.Lit(l.SelectWidth, uint64(r))))
	}
	return out
}

// primitivePort connects one side of a primitive. A nil port ties the side
// off.
func primitivePort(m *hdl.Module, l *bram.Layout, prim bram.Primitive, p *port, letter string) []hdl.Conn {
	pin := func(name string) string { return name + "_" + letter }
	if p == nil {
		return []hdl.Conn{
			{Port: pin("CLK"), Expr: hdl.Zeros(1)},
			{Port: pin("WEN"), Expr: hdl.Zeros(1)},
			{Port: pin("REN"), Expr: hdl.Zeros(1)},
			{Port: pin("BE"), Expr: hdl.Zeros(bram.ByteEnableBits)},
			{Port: pin("ADDR"), Expr: hdl.Zeros(bram.AddrBits)},
			{Port: pin("WDATA"), Expr: hdl.Zeros(bram.DataBits)},
			{Port: pin("RDATA")},
		}
	}

	conns := []hdl.Conn{{Port: pin("CLK"), Expr: p.clk}}
	if p.write {
		be := hdl.Ones(bram.ByteEnableBits)
		if prim.ByteLanes != nil {
			be = byteEnables(prim, p.sig("be"), l.ByteEnables)
		}
		conns = append(conns,
			hdl.Conn{Port: pin("WEN"), Expr: p.wenRows[prim.Row]},
			hdl.Conn{Port: pin("BE"), Expr: be},
		)
	} else {
		conns = append(conns,
			hdl.Conn{Port: pin("WEN"), Expr: hdl.Zeros(1)},
			hdl.Conn{Port: pin("BE"), Expr: hdl.Zeros(bram.ByteEnableBits)},
		)
	}
	if p.read {
		conns = append(conns, hdl.Conn{Port: pin("REN"), Expr: p.renRows[prim.Row]})
	} else {
		conns = append(conns, hdl.Conn{Port: pin("REN"), Expr: hdl.Zeros(1)})
	}
	conns = append(conns, hdl.Conn{Port: pin("ADDR"), Expr: l.AddrExpr(p.sig("addr"))})
	if p.write {
		conns = append(conns, hdl.Conn{Port: pin("WDATA"), Expr: packWrite(prim, p.sig("wdata"), l.Request.DataWidth)})
	} else {
		conns = append(conns, hdl.Conn{Port: pin("WDATA"), Expr: hdl.Zeros(bram.DataBits)})
	}
	if !p.read {
		return append(conns, hdl.Conn{Port: pin("RDATA")})
	}

	raw := prim.Name + "_" + p.sig("rdata")
	m.AddWire(raw, bram.DataBits)
	target := p.sig("rdata")
	if l.Rows > 1 {
		target = rowBus(p, prim.Row)
		if prim.Column == 0 {
			m.AddWire(target, l.Request.DataWidth)
		}
	}
	for _, s := range prim.Segments {
		m.AddAssign(bits(target, l.Request.DataWidth, s.UserHi(), s.UserLo), hdl.Slice(raw, s.PrimHi(), s.PrimLo))
	}
	return append(conns, hdl.Conn{Port: pin("RDATA"), Expr: raw})
}

func rowBus(p *port, row int) string {
	return fmt.Sprintf("%s_row%d", p.sig("rdata"), row)
}

// packWrite places the user data segments of a primitive on its 36-bit
// WDATA input, zero filling unused bits.
func packWrite(prim bram.Primitive, sig string, width int) string {
	var parts []string
	top := bram.DataBits
	for i := len(prim.Segments) - 1; i >= 0; i-- {
		s := prim.Segments[i]
		if gap := top - (s.PrimHi() + 1); gap > 0 {
			parts = append(parts, hdl.Zeros(gap))
		}
		parts = append(parts, bits(sig, width, s.UserHi(), s.UserLo))
		top = s.PrimLo
	}
	if top > 0 {
		parts = append(parts, hdl.Zeros(top))
	}
	return hdl.Concat(parts...)
}

// byteEnables maps the user byte enables onto the primitive's BE lanes,
// MSB first.
func byteEnables(prim bram.Primitive, sig string, width int) string {
	parts := make([]string, 0, len(prim.ByteLanes))
	for j := len(prim.ByteLanes) - 1; j >= 0; j-- {
		if idx := prim.ByteLanes[j]; idx == bram.Unused {
			parts = append(parts, hdl.Zeros(1))
		} else {
			parts = append(parts, bits(sig, width, idx, idx))
		}
	}
	return hdl.Concat(parts...)
}

// readMux selects the addressed row's read data. The select field is
// registered with the read so it lines up with the primitive's output, and
// delayed once more when the output register is on.
func readMux(m *hdl.Module, l *bram.Layout, p *port) {
	if l.Rows == 1 {
		return
	}
	rsel := p.sig("rsel")
	m.AddReg(rsel, l.SelectWidth)
	lines := []string{
		fmt.Sprintf("    always @(posedge %s) begin", p.clk),
		fmt.Sprintf("        if (%s) begin", p.sig("ren")),
		fmt.Sprintf("            %s <= %s;", rsel, l.SelectExpr(p.sig("addr"))),
		"        end",
	}
	sel := rsel
	if l.Request.OutputRegister {
		sel = rsel + "_q"
		m.AddReg(sel, l.SelectWidth)
		lines = append(lines, fmt.Sprintf("        %s <= %s;", sel, rsel))
	}
	lines = append(lines, "    end")
	m.AddBlock(lines...)

	out := p.sig("rdata")
	mux := []string{
		"    always @(*) begin",
		fmt.Sprintf("        case (%s)", sel),
	}
	for r := 0; r < l.Rows; r++ {
		mux = append(mux, fmt.Sprintf("            %s: %s = %s;", hdl.Lit(l.SelectWidth, uint64(r)), out, rowBus(p, r)))
	}
	mux = append(mux,
		fmt.Sprintf("            default: %s = %s;", out, hdl.Zeros(l.Request.DataWidth)),
		"        endcase",
		"    end",
	)
	m.AddBlock(mux...)
}
