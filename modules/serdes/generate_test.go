package serdes

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/ipforge/internal/ctxlog"
	"github.com/vk/ipforge/internal/ipcore"
)

func generate(t *testing.T, in *Input) (*Output, string) {
	t.Helper()
	e := ipcore.NewEmitter(coreName, "link")
	out, err := Generate(ctxlog.Discard(context.Background()), e, in)
	require.NoError(t, err)
	require.Len(t, e.Files(), 1)
	return out, e.Files()[0].Content
}

func TestGenerate_RX(t *testing.T) {
	out, src := generate(t, &Input{Direction: RX, Lanes: 4, Ratio: 8, DataRate: "ddr", DPAMode: "dpa"})
	assert.Equal(t, &Output{ModuleName: "link", ParallelWidth: 32, Lanes: 4, Ratio: 8}, out)

	for _, want := range []string{
		"    input  wire [3:0] sdata, // serial data from the pads",
		"    output wire [31:0] pdata,",
		"    output wire [3:0] dpa_error\n);",
		") u_iserdes_l3 (",
		`.DATA_RATE("DDR")`,
		".WIDTH(8)",
		`.DPA_MODE("DPA")`,
		".D(sdata[2])",
		".Q(pdata[23:16])",
		".Q(pdata[31:24])",
		".DPA_LOCK(dpa_lock[1])",
		".CLK_OUT()",
	} {
		assert.Contains(t, src, want)
	}
	assert.Equal(t, 4, strings.Count(src, "I_SERDES #("))
}

func TestGenerate_RXSingleLaneNoDPA(t *testing.T) {
	_, src := generate(t, &Input{Direction: RX, Lanes: 1, Ratio: 10, DataRate: "SDR", DPAMode: "NONE"})
	assert.Contains(t, src, ".D(sdata)")
	assert.Contains(t, src, ".Q(pdata[9:0])")
	assert.Contains(t, src, ".DPA_LOCK()")
	assert.NotContains(t, src, "dpa_lock")
}

func TestGenerate_TX(t *testing.T) {
	out, src := generate(t, &Input{Direction: TX, Lanes: 2, Ratio: 4, DataRate: "SDR", DPAMode: "NONE", ClockPhase: 90})
	assert.Equal(t, 8, out.ParallelWidth)

	for _, want := range []string{
		"    input  wire [7:0] pdata,",
		"    output wire [1:0] sdata // serial data to the pads\n);",
		") u_oserdes_l1 (",
		".CLOCK_PHASE(90)",
		".D(pdata[7:4])",
		".OE_IN(oe[0])",
		".Q(sdata[1])",
		".CHANNEL_BOND_SYNC_IN(1'b0)",
	} {
		assert.Contains(t, src, want)
	}
}

func TestGenerate_DirectionIgnoresCase(t *testing.T) {
	_, want := generate(t, &Input{Direction: TX, Lanes: 1, Ratio: 4, DataRate: "SDR", DPAMode: "NONE"})
	_, got := generate(t, &Input{Direction: "TX", Lanes: 1, Ratio: 4, DataRate: "sdr", DPAMode: "none"})
	assert.Equal(t, want, got)
	assert.Contains(t, got, "O_SERDES #(")
}

func TestGenerate_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		in    Input
		param string
	}{
		{"bad direction", Input{Direction: "both", Lanes: 1, Ratio: 8, DataRate: "SDR", DPAMode: "NONE"}, "direction"},
		{"no lanes", Input{Direction: RX, Lanes: 0, Ratio: 8, DataRate: "SDR", DPAMode: "NONE"}, "lanes"},
		{"ratio too small", Input{Direction: RX, Lanes: 1, Ratio: 2, DataRate: "SDR", DPAMode: "NONE"}, "ratio"},
		{"ratio too large", Input{Direction: TX, Lanes: 1, Ratio: 11, DataRate: "SDR", DPAMode: "NONE"}, "ratio"},
		{"bad rate", Input{Direction: RX, Lanes: 1, Ratio: 8, DataRate: "QDR", DPAMode: "NONE"}, "data_rate"},
		{"bad phase", Input{Direction: TX, Lanes: 1, Ratio: 8, DataRate: "SDR", DPAMode: "NONE", ClockPhase: 45}, "clock_phase"},
		{"dpa on tx", Input{Direction: TX, Lanes: 1, Ratio: 8, DataRate: "SDR", DPAMode: "CDR"}, "dpa_mode"},
		{"phase on rx", Input{Direction: RX, Lanes: 1, Ratio: 8, DataRate: "SDR", DPAMode: "NONE", ClockPhase: 180}, "clock_phase"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in := tc.in
			_, err := Generate(ctxlog.Discard(context.Background()), ipcore.NewEmitter(coreName, "link"), &in)
			require.Error(t, err)
			var pe *ipcore.ParamError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tc.param, pe.Param)
		})
	}
}
