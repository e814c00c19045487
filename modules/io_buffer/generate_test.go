package io_buffer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/ipforge/internal/ctxlog"
	"github.com/vk/ipforge/internal/ipcore"
)

func defaults() *Input {
	return &Input{
		Direction:               DirInput,
		Width:                   1,
		IOStandard:              "DEFAULT",
		WeakKeeper:              "NONE",
		DriveStrength:           2,
		SlewRate:                "SLOW",
		DifferentialTermination: true,
	}
}

func generate(t *testing.T, in *Input) (*Output, string) {
	t.Helper()
	e := ipcore.NewEmitter(coreName, "pads")
	out, err := Generate(ctxlog.Discard(context.Background()), e, in)
	require.NoError(t, err)
	require.Len(t, e.Files(), 1)
	return out, e.Files()[0].Content
}

func TestGenerate(t *testing.T) {
	testCases := []struct {
		name      string
		mutate    func(in *Input)
		primitive string
		want      []string
		absent    []string
	}{
		{
			name:      "single input buffer",
			mutate:    func(in *Input) {},
			primitive: "I_BUF",
			want: []string{
				"    input  wire pad,",
				"    input  wire en, // input enable",
				"    output wire o // to fabric\n);",
				"    I_BUF #(\n        .WEAK_KEEPER(\"NONE\"),\n        .IOSTANDARD(\"DEFAULT\")\n    ) u_buf (",
				".I(pad)",
				".EN(en)",
			},
			absent: []string{"genvar"},
		},
		{
			name: "tristate bus",
			mutate: func(in *Input) {
				in.Direction = DirTristate
				in.Width = 8
				in.DriveStrength = 12
				in.SlewRate = "fast"
			},
			primitive: "O_BUFT",
			want: []string{
				"    input  wire [7:0] t, // 1 drives the pad, 0 releases it",
				"    genvar idx;\n    generate\n        for (idx = 0; idx < 8; idx = idx + 1) begin : gen_o_buft",
				"            O_BUFT #(\n                .WEAK_KEEPER(\"NONE\"),",
				".DRIVE_STRENGTH(12)",
				".SLEW_RATE(\"FAST\")",
				"            ) u_buf (",
				".I(i[idx])",
				".T(t[idx])",
				".O(pad[idx])",
				"        end\n    endgenerate",
			},
		},
		{
			name: "differential input",
			mutate: func(in *Input) {
				in.Width = 4
				in.Differential = true
				in.IOStandard = "lvds_hr_diff"
			},
			primitive: "I_BUF_DS",
			want: []string{
				"    input  wire [3:0] pad_n,",
				".IOSTANDARD(\"LVDS_HR_DIFF\")",
				".DIFFERENTIAL_TERMINATION(\"TRUE\")",
				".I_P(pad_p[idx])",
			},
			absent: []string{"WEAK_KEEPER"},
		},
		{
			name: "differential output on default standard",
			mutate: func(in *Input) {
				in.Direction = DirOutput
				in.Differential = true
				in.DifferentialTermination = false
			},
			primitive: "O_BUF_DS",
			want: []string{
				"    output wire pad_p,",
				".DIFFERENTIAL_TERMINATION(\"FALSE\")",
				".O_N(pad_n)",
			},
		},
		{
			name: "bidirectional bus",
			mutate: func(in *Input) {
				in.Direction = DirInout
				in.Width = 2
				in.WeakKeeper = "pullup"
				in.IOStandard = "LVCMOS_33"
			},
			primitive: "IO_BUF",
			want: []string{
				"    inout  wire [1:0] pad,",
				".WEAK_KEEPER(\"PULLUP\")",
				".IO(pad[idx])",
				".O(o[idx])",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in := defaults()
			tc.mutate(in)
			out, src := generate(t, in)

			assert.Equal(t, tc.primitive, out.Primitive)
			assert.Equal(t, in.Width, out.BufferCount)
			assert.Equal(t, "pads", out.ModuleName)
			for _, w := range tc.want {
				assert.Contains(t, src, w)
			}
			for _, a := range tc.absent {
				assert.NotContains(t, src, a)
			}
		})
	}
}

func TestGenerate_DirectionIgnoresCase(t *testing.T) {
	want := defaults()
	want.Direction = DirTristate
	wantOut, wantSrc := generate(t, want)

	in := defaults()
	in.Direction = "TriState"
	out, src := generate(t, in)
	assert.Equal(t, wantOut, out)
	assert.Equal(t, wantSrc, src)
}

func TestGenerate_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(in *Input)
		param  string
	}{
		{"bad direction", func(in *Input) { in.Direction = "sideways" }, "direction"},
		{"zero width", func(in *Input) { in.Width = 0 }, "width"},
		{"too wide", func(in *Input) { in.Width = 257 }, "width"},
		{"unknown standard", func(in *Input) { in.IOStandard = "LVCMOS_50" }, "io_standard"},
		{"bad keeper", func(in *Input) { in.WeakKeeper = "UP" }, "weak_keeper"},
		{"bad drive", func(in *Input) { in.DriveStrength = 3 }, "drive_strength"},
		{"bad slew", func(in *Input) { in.SlewRate = "MEDIUM" }, "slew_rate"},
		{"differential tristate", func(in *Input) { in.Direction = DirTristate; in.Differential = true }, "differential"},
		{"differential on single-ended standard", func(in *Input) { in.Differential = true; in.IOStandard = "LVCMOS_18_HP" }, "io_standard"},
		{"single-ended on differential standard", func(in *Input) { in.IOStandard = "MIPI_DIFF" }, "io_standard"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in := defaults()
			tc.mutate(in)
			_, err := Generate(ctxlog.Discard(context.Background()), ipcore.NewEmitter(coreName, "pads"), in)
			require.Error(t, err)
			var pe *ipcore.ParamError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tc.param, pe.Param)
		})
	}
}
