package serdes

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/vk/ipforge/internal/ctxlog"
	"github.com/vk/ipforge/internal/hdl"
	"github.com/vk/ipforge/internal/ipcore"
)

const (
	coreName = "serdes"
	maxLanes = 32
	minRatio = 3
	maxRatio = 10
)

// Directions.
const (
	RX = "rx"
	TX = "tx"
)

// Input defines the arguments of a serdes instance.
type Input struct {
	Direction  string `ipf:"direction"`
	Lanes      int    `ipf:"lanes"`
	Ratio      int    `ipf:"ratio"`
	DataRate   string `ipf:"data_rate"`
	DPAMode    string `ipf:"dpa_mode"`
	ClockPhase int    `ipf:"clock_phase"`
}

// Output describes the generated lanes.
type Output struct {
	ModuleName    string `cty:"module_name"`
	ParallelWidth int    `cty:"parallel_width"`
	Lanes         int    `cty:"lanes"`
	Ratio         int    `cty:"ratio"`
}

func validate(in *Input) error {
	in.Direction = strings.ToLower(in.Direction)
	in.DataRate = strings.ToUpper(in.DataRate)
	in.DPAMode = strings.ToUpper(in.DPAMode)

	if err := ipcore.CheckChoice(coreName, "direction", in.Direction, RX, TX); err != nil {
		return err
	}
	if err := ipcore.CheckRange(coreName, "lanes", in.Lanes, 1, maxLanes); err != nil {
		return err
	}
	if err := ipcore.CheckRange(coreName, "ratio", in.Ratio, minRatio, maxRatio); err != nil {
		return err
	}
	if err := ipcore.CheckChoice(coreName, "data_rate", in.DataRate, "SDR", "DDR"); err != nil {
		return err
	}
	if err := ipcore.CheckChoice(coreName, "dpa_mode", in.DPAMode, "NONE", "DPA", "CDR"); err != nil {
		return err
	}
	if err := ipcore.CheckChoice(coreName, "clock_phase", in.ClockPhase, 0, 90, 180, 270); err != nil {
		return err
	}
	if in.Direction == TX && in.DPAMode != "NONE" {
		return ipcore.NewParamError(coreName, "dpa_mode", "applies to rx only")
	}
	if in.Direction == RX && in.ClockPhase != 0 {
		return ipcore.NewParamError(coreName, "clock_phase", "applies to tx only")
	}
	return nil
}

// Generate emits one SerDes primitive per lane. Lane l carries parallel
// bits [l*ratio+ratio-1 : l*ratio].
func Generate(ctx context.Context, e *ipcore.Emitter, in *Input) (*Output, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	width := in.Lanes * in.Ratio

	m := &hdl.Module{Name: e.Name()}
	m.AddPort("rst", hdl.Input, 1, "")
	m.AddPort("clk_in", hdl.Input, 1, "fabric clock")
	m.AddPort("pll_clk", hdl.Input, 1, "fast clock")
	m.AddPort("pll_lock", hdl.Input, 1, "")
	if in.Direction == RX {
		buildRX(m, in, width)
	} else {
		buildTX(m, in, width)
	}
	ctxlog.FromContext(ctx).Debug("Configured SerDes lanes.", "direction", in.Direction, "lanes", in.Lanes, "ratio", in.Ratio)

	if err := e.AddVerilog(m); err != nil {
		return nil, err
	}
	return &Output{ModuleName: m.Name, ParallelWidth: width, Lanes: in.Lanes, Ratio: in.Ratio}, nil
}

// lane returns bit l of a per-lane bus, or the bus itself for one lane.
func lane(sig string, lanes, l int) string {
	if lanes == 1 {
		return sig
	}
	return hdl.Slice(sig, l, l)
}

func buildRX(m *hdl.Module, in *Input, width int) {
	dpa := in.DPAMode != "NONE"
	m.AddPort("en", hdl.Input, 1, "")
	m.AddPort("sdata", hdl.Input, in.Lanes, "serial data from the pads")
	m.AddPort("bitslip_adj", hdl.Input, in.Lanes, "")
	m.AddPort("pdata", hdl.Output, width, "")
	m.AddPort("data_valid", hdl.Output, in.Lanes, "")
	if dpa {
		m.AddPort("dpa_lock", hdl.Output, in.Lanes, "")
		m.AddPort("dpa_error", hdl.Output, in.Lanes, "")
	}

	for l := 0; l < in.Lanes; l++ {
		dpaLock, dpaError := "", ""
		if dpa {
			dpaLock, dpaError = lane("dpa_lock", in.Lanes, l), lane("dpa_error", in.Lanes, l)
		}
		m.Instances = append(m.Instances, hdl.Instance{
			Primitive: "I_SERDES",
			Name:      fmt.Sprintf("u_iserdes_l%d", l),
			Params: []hdl.Param{
				{Name: "DATA_RATE", Value: hdl.Str(in.DataRate)},
				{Name: "WIDTH", Value: strconv.Itoa(in.Ratio)},
				{Name: "DPA_MODE", Value: hdl.Str(in.DPAMode)},
			},
			Conns: []hdl.Conn{
				{Port: "D", Expr: lane("sdata", in.Lanes, l)},
				{Port: "RST", Expr: "rst"},
				{Port: "BITSLIP_ADJ", Expr: lane("bitslip_adj", in.Lanes, l)},
				{Port: "EN", Expr: "en"},
				{Port: "CLK_IN", Expr: "clk_in"},
				{Port: "PLL_LOCK", Expr: "pll_lock"},
				{Port: "PLL_CLK", Expr: "pll_clk"},
				{Port: "CLK_OUT"},
				{Port: "Q", Expr: hdl.Slice("pdata", l*in.Ratio+in.Ratio-1, l*in.Ratio)},
				{Port: "DATA_VALID", Expr: lane("data_valid", in.Lanes, l)},
				{Port: "DPA_LOCK", Expr: dpaLock},
				{Port: "DPA_ERROR", Expr: dpaError},
			},
		})
	}
}

func buildTX(m *hdl.Module, in *Input, width int) {
	m.AddPort("pdata", hdl.Input, width, "")
	m.AddPort("data_valid", hdl.Input, 1, "")
	m.AddPort("oe", hdl.Input, in.Lanes, "output enable per lane")
	m.AddPort("sdata", hdl.Output, in.Lanes, "serial data to the pads")

	for l := 0; l < in.Lanes; l++ {
		m.Instances = append(m.Instances, hdl.Instance{
			Primitive: "O_SERDES",
			Name:      fmt.Sprintf("u_oserdes_l%d", l),
			Params: []hdl.Param{
				{Name: "DATA_RATE", Value: hdl.Str(in.DataRate)},
				{Name: "WIDTH", Value: strconv.Itoa(in.Ratio)},
				{Name: "CLOCK_PHASE", Value: strconv.Itoa(in.ClockPhase)},
			},
			Conns: []hdl.Conn{
				{Port: "D", Expr: hdl.Slice("pdata", l*in.Ratio+in.Ratio-1, l*in.Ratio)},
				{Port: "RST", Expr: "rst"},
				{Port: "DATA_VALID", Expr: "data_valid"},
				{Port: "CLK_IN", Expr: "clk_in"},
				{Port: "OE_IN", Expr: lane("oe", in.Lanes, l)},
				{Port: "PLL_LOCK", Expr: "pll_lock"},
				{Port: "PLL_CLK", Expr: "pll_clk"},
				{Port: "CHANNEL_BOND_SYNC_IN", Expr: hdl.Zeros(1)},
				{Port: "OE_OUT"},
				{Port: "Q", Expr: lane("sdata", in.Lanes, l)},
				{Port: "CHANNEL_BOND_SYNC_OUT"},
			},
		})
	}
}
