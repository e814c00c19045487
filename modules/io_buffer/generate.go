package io_buffer

import (
	"context"
	"strconv"
	"strings"

	"github.com/vk/ipforge/internal/ctxlog"
	"github.com/vk/ipforge/internal/hdl"
	"github.com/vk/ipforge/internal/ipcore"
)

const (
	coreName = "io_buffer"
	maxWidth = 256
	loopVar  = "idx"
)

// Directions.
const (
	DirInput    = "input"
	DirOutput   = "output"
	DirTristate = "tristate"
	DirInout    = "inout"
)

// Input defines the arguments of an io_buffer instance.
type Input struct {
	Direction               string `ipf:"direction"`
	Width                   int    `ipf:"width"`
	Differential            bool   `ipf:"differential"`
	IOStandard              string `ipf:"io_standard"`
	WeakKeeper              string `ipf:"weak_keeper"`
	DriveStrength           int    `ipf:"drive_strength"`
	SlewRate                string `ipf:"slew_rate"`
	DifferentialTermination bool   `ipf:"differential_termination"`
}

// Output describes the generated buffer bank.
type Output struct {
	ModuleName  string `cty:"module_name"`
	BufferCount int    `cty:"buffer_count"`
	Primitive   string `cty:"primitive"`
}

func validate(in *Input) error {
	in.Direction = strings.ToLower(in.Direction)
	in.IOStandard = strings.ToUpper(in.IOStandard)
	in.WeakKeeper = strings.ToUpper(in.WeakKeeper)
	in.SlewRate = strings.ToUpper(in.SlewRate)

	if err := ipcore.CheckChoice(coreName, "direction", in.Direction, DirInput, DirOutput, DirTristate, DirInout); err != nil {
		return err
	}
	if err := ipcore.CheckRange(coreName, "width", in.Width, 1, maxWidth); err != nil {
		return err
	}
	if err := ipcore.CheckChoice(coreName, "io_standard", in.IOStandard, IOStandards...); err != nil {
		return err
	}
	if err := ipcore.CheckChoice(coreName, "weak_keeper", in.WeakKeeper, weakKeepers...); err != nil {
		return err
	}
	if err := ipcore.CheckChoice(coreName, "drive_strength", in.DriveStrength, driveStrengths...); err != nil {
		return err
	}
	if err := ipcore.CheckChoice(coreName, "slew_rate", in.SlewRate, slewRates...); err != nil {
		return err
	}

	if in.Differential {
		if in.Direction != DirInput && in.Direction != DirOutput {
			return ipcore.NewParamError(coreName, "differential", "is only supported for input and output buffers, not %s", in.Direction)
		}
		if in.IOStandard != "DEFAULT" && !isDifferential(in.IOStandard) {
			return ipcore.NewParamError(coreName, "io_standard", "%s is single-ended; differential buffers need a *_DIFF standard", in.IOStandard)
		}
	} else if isDifferential(in.IOStandard) {
		return ipcore.NewParamError(coreName, "io_standard", "%s is differential; set differential = true", in.IOStandard)
	}
	return nil
}

// Generate emits the buffer bank.
func Generate(ctx context.Context, e *ipcore.Emitter, in *Input) (*Output, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	b := newBank(in)
	inst := b.instance()
	m := &hdl.Module{Name: e.Name()}
	for _, p := range b.ports {
		m.AddPort(p.Name, p.Dir, in.Width, p.Comment)
	}

	if in.Width == 1 {
		m.Instances = append(m.Instances, inst)
	} else {
		m.Loops = append(m.Loops, hdl.Loop{Var: loopVar, Label: "gen_" + strings.ToLower(inst.Primitive), Count: in.Width, Instance: inst})
	}
	ctxlog.FromContext(ctx).Debug("Configured pad buffers.", "primitive", inst.Primitive, "count", in.Width)

	if err := e.AddVerilog(m); err != nil {
		return nil, err
	}
	return &Output{ModuleName: m.Name, BufferCount: in.Width, Primitive: inst.Primitive}, nil
}

// bank is a buffer bank's user ports and the connections of one primitive
// in it.
type bank struct {
	in        *Input
	primitive string
	ports     []hdl.Port
	conns     []hdl.Conn
}

func newBank(in *Input) *bank {
	b := &bank{in: in}
	switch {
	case in.Direction == DirInput && in.Differential:
		b.primitive = "I_BUF_DS"
		b.port("pad_p", hdl.Input, "I_P", "")
		b.port("pad_n", hdl.Input, "I_N", "")
		b.port("en", hdl.Input, "EN", "input enable")
		b.port("o", hdl.Output, "O", "to fabric")
	case in.Direction == DirInput:
		b.primitive = "I_BUF"
		b.port("pad", hdl.Input, "I", "")
		b.port("en", hdl.Input, "EN", "input enable")
		b.port("o", hdl.Output, "O", "to fabric")
	case in.Direction == DirOutput && in.Differential:
		b.primitive = "O_BUF_DS"
		b.port("i", hdl.Input, "I", "from fabric")
		b.port("pad_p", hdl.Output, "O_P", "")
		b.port("pad_n", hdl.Output, "O_N", "")
	case in.Direction == DirOutput:
		b.primitive = "O_BUF"
		b.port("i", hdl.Input, "I", "from fabric")
		b.port("pad", hdl.Output, "O", "")
	case in.Direction == DirTristate:
		b.primitive = "O_BUFT"
		b.port("i", hdl.Input, "I", "from fabric")
		b.port("t", hdl.Input, "T", "1 drives the pad, 0 releases it")
		b.port("pad", hdl.Output, "O", "")
	default:
		b.primitive = "IO_BUF"
		b.port("i", hdl.Input, "I", "from fabric")
		b.port("t", hdl.Input, "T", "1 drives the pad, 0 releases it")
		b.port("pad", hdl.Inout, "IO", "")
		b.port("o", hdl.Output, "O", "to fabric")
	}
	return b
}

func (b *bank) port(name string, dir hdl.Direction, pin, comment string) {
	b.ports = append(b.ports, hdl.Port{Name: name, Dir: dir, Comment: comment})
	expr := name
	if b.in.Width > 1 {
		expr = name + "[" + loopVar + "]"
	}
	b.conns = append(b.conns, hdl.Conn{Port: pin, Expr: expr})
}

// instance builds the primitive with the parameters its family accepts.
func (b *bank) instance() hdl.Instance {
	in := b.in
	params := map[string]string{
		"WEAK_KEEPER":              hdl.Str(in.WeakKeeper),
		"IOSTANDARD":               hdl.Str(in.IOStandard),
		"DRIVE_STRENGTH":           strconv.Itoa(in.DriveStrength),
		"SLEW_RATE":                hdl.Str(in.SlewRate),
		"DIFFERENTIAL_TERMINATION": hdl.Bool(in.DifferentialTermination),
	}
	prim, _ := hdl.LookupPrimitive(b.primitive)
	inst := hdl.Instance{Primitive: b.primitive, Name: "u_buf", Conns: b.conns}
	for _, name := range prim.Params {
		inst.Params = append(inst.Params, hdl.Param{Name: name, Value: params[name]})
	}
	return inst
}
