package hdl

// PrimitivePort is one port of a vendor primitive. A Width of 0 marks a port
// whose width follows a parameter (e.g. the SerDes parallel bus).
type PrimitivePort struct {
	Name  string
	Dir   Direction
	Width int
}

// Primitive is the fixed contract of a vendor cell.
type Primitive struct {
	Name   string
	Params []string
	Ports  []PrimitivePort
}

// HasParam reports whether the primitive declares the named parameter.
func (p *Primitive) HasParam(name string) bool {
	for _, n := range p.Params {
		if n == name {
			return true
		}
	}
	return false
}

// Port returns the named port.
func (p *Primitive) Port(name string) (PrimitivePort, bool) {
	for _, pp := range p.Ports {
		if pp.Name == name {
			return pp, true
		}
	}
	return PrimitivePort{}, false
}

func in(name string, width int) PrimitivePort  { return PrimitivePort{Name: name, Dir: Input, Width: width} }
func out(name string, width int) PrimitivePort { return PrimitivePort{Name: name, Dir: Output, Width: width} }

var primitives = map[string]*Primitive{
	"TDP_RAM36K": {
		Name:   "TDP_RAM36K",
		Params: []string{"MODE_BITS", "INIT"},
		Ports: []PrimitivePort{
			in("CLK_A", 1), in("CLK_B", 1),
			in("WEN_A", 1), in("WEN_B", 1),
			in("REN_A", 1), in("REN_B", 1),
			in("BE_A", 4), in("BE_B", 4),
			in("ADDR_A", 15), in("ADDR_B", 15),
			in("WDATA_A", 36), in("WDATA_B", 36),
			out("RDATA_A", 36), out("RDATA_B", 36),
		},
	},
	"DSP38": {
		Name:   "DSP38",
		Params: []string{"DSP_MODE", "INPUT_REG_EN", "OUTPUT_REG_EN"},
		Ports: []PrimitivePort{
			in("CLK", 1), in("RESET", 1),
			in("A", 20), in("B", 18),
			in("FEEDBACK", 3), in("LOAD_ACC", 1),
			in("UNSIGNED_A", 1), in("UNSIGNED_B", 1),
			in("SATURATE", 1), in("SHIFT_RIGHT", 6),
			in("ROUND", 1), in("SUBTRACT", 1),
			out("Z", 38),
		},
	},
	"I_BUF": {
		Name:   "I_BUF",
		Params: []string{"WEAK_KEEPER", "IOSTANDARD"},
		Ports:  []PrimitivePort{in("I", 1), in("EN", 1), out("O", 1)},
	},
	"I_BUF_DS": {
		Name:   "I_BUF_DS",
		Params: []string{"IOSTANDARD", "DIFFERENTIAL_TERMINATION"},
		Ports:  []PrimitivePort{in("I_P", 1), in("I_N", 1), in("EN", 1), out("O", 1)},
	},
	"O_BUF": {
		Name:   "O_BUF",
		Params: []string{"IOSTANDARD", "DRIVE_STRENGTH", "SLEW_RATE"},
		Ports:  []PrimitivePort{in("I", 1), out("O", 1)},
	},
	"O_BUFT": {
		Name:   "O_BUFT",
		Params: []string{"WEAK_KEEPER", "IOSTANDARD", "DRIVE_STRENGTH", "SLEW_RATE"},
		Ports:  []PrimitivePort{in("I", 1), in("T", 1), out("O", 1)},
	},
	"O_BUF_DS": {
		Name:   "O_BUF_DS",
		Params: []string{"IOSTANDARD", "DIFFERENTIAL_TERMINATION"},
		Ports:  []PrimitivePort{in("I", 1), out("O_P", 1), out("O_N", 1)},
	},
	"IO_BUF": {
		Name:   "IO_BUF",
		Params: []string{"WEAK_KEEPER", "IOSTANDARD", "DRIVE_STRENGTH", "SLEW_RATE"},
		Ports: []PrimitivePort{
			in("I", 1), in("T", 1),
			{Name: "IO", Dir: Inout, Width: 1},
			out("O", 1),
		},
	},
	"I_SERDES": {
		Name:   "I_SERDES",
		Params: []string{"DATA_RATE", "WIDTH", "DPA_MODE"},
		Ports: []PrimitivePort{
			in("D", 1), in("RST", 1), in("BITSLIP_ADJ", 1), in("EN", 1),
			in("CLK_IN", 1), in("PLL_LOCK", 1), in("PLL_CLK", 1),
			out("CLK_OUT", 1), out("Q", 0), out("DATA_VALID", 1),
			out("DPA_LOCK", 1), out("DPA_ERROR", 1),
		},
	},
	"O_SERDES": {
		Name:   "O_SERDES",
		Params: []string{"DATA_RATE", "WIDTH", "CLOCK_PHASE"},
		Ports: []PrimitivePort{
			in("D", 0), in("RST", 1), in("DATA_VALID", 1), in("CLK_IN", 1),
			in("OE_IN", 1), in("PLL_LOCK", 1), in("PLL_CLK", 1),
			in("CHANNEL_BOND_SYNC_IN", 1),
			out("OE_OUT", 1), out("Q", 1), out("CHANNEL_BOND_SYNC_OUT", 1),
		},
	},
}

// LookupPrimitive returns the contract of a primitive by cell name.
func LookupPrimitive(name string) (*Primitive, bool) {
	p, ok := primitives[name]
	return p, ok
}
