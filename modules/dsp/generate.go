package dsp

import (
	"context"
	"strings"

	"github.com/vk/ipforge/internal/ctxlog"
	"github.com/vk/ipforge/internal/hdl"
	"github.com/vk/ipforge/internal/ipcore"
)

const coreName = "dsp"

// Modes.
const (
	Multiply           = "multiply"
	MultiplyAddSub     = "multiply_add_sub"
	MultiplyAccumulate = "multiply_accumulate"
)

// DSP38 operand and result widths.
const (
	aBits     = 20
	bBits     = 18
	zBits     = 38
	shiftBits = 6
	maxShift  = 1<<shiftBits - 1
)

var primitiveModes = map[string]string{
	Multiply:           "MULTIPLY",
	MultiplyAddSub:     "MULTIPLY_ADD_SUB",
	MultiplyAccumulate: "MULTIPLY_ACCUMULATE",
}

// Input defines the arguments of a dsp instance.
type Input struct {
	Mode           string `ipf:"mode"`
	AWidth         int    `ipf:"a_width"`
	BWidth         int    `ipf:"b_width"`
	Signed         bool   `ipf:"signed"`
	InputRegister  bool   `ipf:"input_register"`
	OutputRegister bool   `ipf:"output_register"`
	ShiftRight     int    `ipf:"shift_right"`
	Round          bool   `ipf:"round"`
	Saturate       bool   `ipf:"saturate"`
}

// Output describes the generated slice.
type Output struct {
	ModuleName string `cty:"module_name"`
	ZWidth     int    `cty:"z_width"`
	Latency    int    `cty:"latency"`
	DSPCount   int    `cty:"dsp_count"`
}

func validate(in *Input) error {
	in.Mode = strings.ToLower(in.Mode)

	if err := ipcore.CheckChoice(coreName, "mode", in.Mode, Multiply, MultiplyAddSub, MultiplyAccumulate); err != nil {
		return err
	}
	if err := ipcore.CheckRange(coreName, "a_width", in.AWidth, 1, aBits); err != nil {
		return err
	}
	if err := ipcore.CheckRange(coreName, "b_width", in.BWidth, 1, bBits); err != nil {
		return err
	}
	return ipcore.CheckRange(coreName, "shift_right", in.ShiftRight, 0, maxShift)
}

// Generate emits the DSP38 wrapper.
func Generate(ctx context.Context, e *ipcore.Emitter, in *Input) (*Output, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	zWidth := zBits
	if in.Mode == Multiply {
		zWidth = in.AWidth + in.BWidth
	}
	accumulate := in.Mode == MultiplyAccumulate
	clocked := in.InputRegister || in.OutputRegister || accumulate

	latency := 0
	if in.InputRegister {
		latency++
	}
	// The accumulator register doubles as the output stage.
	if in.OutputRegister || accumulate {
		latency++
	}
	ctxlog.FromContext(ctx).Debug("Configured DSP38.", "mode", in.Mode, "z_width", zWidth, "latency", latency)

	m := &hdl.Module{Name: e.Name()}
	clk, reset := hdl.Zeros(1), hdl.Zeros(1)
	if clocked {
		m.AddPort("clk", hdl.Input, 1, "")
		m.AddPort("reset", hdl.Input, 1, "synchronous, active high")
		clk, reset = "clk", "reset"
	}
	m.AddPort("a", hdl.Input, in.AWidth, "")
	m.AddPort("b", hdl.Input, in.BWidth, "")
	loadAcc, subtract := hdl.Zeros(1), hdl.Zeros(1)
	feedback := hdl.Lit(3, 0)
	switch in.Mode {
	case MultiplyAccumulate:
		m.AddPort("load_acc", hdl.Input, 1, "restart accumulation from a*b")
		loadAcc = "load_acc"
		feedback = hdl.Lit(3, 1)
	case MultiplyAddSub:
		m.AddPort("subtract", hdl.Input, 1, "z = a*b - acc when set")
		subtract = "subtract"
	}
	m.AddPort("z", hdl.Output, zWidth, "")

	unsigned := hdl.Ones(1)
	if in.Signed {
		unsigned = hdl.Zeros(1)
	}

	zNet := "z"
	if zWidth < zBits {
		zNet = "z_full"
		m.AddWire(zNet, zBits)
		m.AddAssign("z", hdl.Slice(zNet, zWidth-1, 0))
	}

	m.Instances = append(m.Instances, hdl.Instance{
		Primitive: "DSP38",
		Name:      "u_dsp",
		Params: []hdl.Param{
			{Name: "DSP_MODE", Value: hdl.Str(primitiveModes[in.Mode])},
			{Name: "INPUT_REG_EN", Value: hdl.Bool(in.InputRegister)},
			{Name: "OUTPUT_REG_EN", Value: hdl.Bool(in.OutputRegister)},
		},
		Conns: []hdl.Conn{
			{Port: "CLK", Expr: clk},
			{Port: "RESET", Expr: reset},
			{Port: "A", Expr: extend("a", in.AWidth, aBits, in.Signed)},
			{Port: "B", Expr: extend("b", in.BWidth, bBits, in.Signed)},
			{Port: "FEEDBACK", Expr: feedback},
			{Port: "LOAD_ACC", Expr: loadAcc},
			{Port: "UNSIGNED_A", Expr: unsigned},
			{Port: "UNSIGNED_B", Expr: unsigned},
			{Port: "SATURATE", Expr: flag(in.Saturate)},
			{Port: "SHIFT_RIGHT", Expr: hdl.Lit(shiftBits, uint64(in.ShiftRight))},
			{Port: "ROUND", Expr: flag(in.Round)},
			{Port: "SUBTRACT", Expr: subtract},
			{Port: "Z", Expr: zNet},
		},
	})

	if err := e.AddVerilog(m); err != nil {
		return nil, err
	}
	return &Output{ModuleName: m.Name, ZWidth: zWidth, Latency: latency, DSPCount: 1}, nil
}

// extend sign- or zero-extends an operand to the primitive's port width.
func extend(sig string, width, to int, signed bool) string {
	pad := to - width
	if pad == 0 {
		return sig
	}
	if !signed {
		return hdl.Concat(hdl.Zeros(pad), sig)
	}
	msb := sig
	if width > 1 {
		msb = hdl.Slice(sig, width-1, width-1)
	}
	return hdl.Concat(hdl.Repeat(pad, msb), sig)
}

func flag(b bool) string {
	if b {
		return hdl.Ones(1)
	}
	return hdl.Zeros(1)
}
