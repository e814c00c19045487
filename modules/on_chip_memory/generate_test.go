package on_chip_memory

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/ipforge/internal/ctxlog"
	"github.com/vk/ipforge/internal/hdl"
	"github.com/vk/ipforge/internal/ipcore"
)

func defaults() *Input {
	return &Input{
		MemoryType:  "single_port",
		DataWidth:   32,
		Depth:       1024,
		CommonClock: true,
		Aspect:      "auto",
		InitFormat:  "hex",
	}
}

func generate(t *testing.T, name string, in *Input) (*Output, string) {
	t.Helper()
	e := ipcore.NewEmitter(coreName, name)
	out, err := Generate(ctxlog.Discard(context.Background()), e, in)
	require.NoError(t, err)
	files := e.Files()
	require.Len(t, files, 1)
	assert.Equal(t, "src/"+name+".v", files[0].Path)
	return out, files[0].Content
}

func zeros(n int) string { return strings.Repeat("0", n) }

func assertContainsAll(t *testing.T, src string, want ...string) {
	t.Helper()
	for _, w := range want {
		assert.Contains(t, src, w)
	}
}

func TestGenerate_SinglePort(t *testing.T) {
	out, src := generate(t, "scratch", defaults())

	want := &Output{
		ModuleName:     "scratch",
		AddressWidth:   10,
		DataWidth:      32,
		Depth:          1024,
		BramCount:      1,
		Rows:           1,
		Columns:        1,
		PrimitiveDepth: 1024,
		PrimitiveWidth: 36,
		ReadLatency:    1,
	}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}

	assertContainsAll(t, src,
		"module scratch (",
		"    input  wire clk,",
		"    input  wire [9:0] addr_a,",
		"    input  wire wen_a, // write enable",
		"    output wire [31:0] rdata_a\n);",
		"    // row 0, column 0\n    TDP_RAM36K #(",
		".MODE_BITS(81'b"+zeros(74)+"1101100)",
		") u_bram_r0_c0 (",
		".CLK_A(clk)",
		".WEN_A(wen_a)",
		".BE_A(4'b1111)",
		".REN_A(ren_a)",
		".ADDR_A({addr_a[9:0], 5'b0})",
		".WDATA_A({4'b0, wdata_a[31:0]})",
		".RDATA_A(u_bram_r0_c0_rdata_a)",
		".CLK_B(1'b0)",
		".ADDR_B(15'b0)",
		".RDATA_B()",
		"assign rdata_a[31:0] = u_bram_r0_c0_rdata_a[31:0];",
	)
	assert.NotContains(t, src, "always")
	assert.NotContains(t, src, ".INIT(")
}

func TestGenerate_MultiRowReadMux(t *testing.T) {
	in := defaults()
	in.Depth = 4096
	out, src := generate(t, "big", in)

	assert.Equal(t, 4, out.BramCount)
	assert.Equal(t, 4, out.Rows)
	assert.Equal(t, 12, out.AddressWidth)

	assertContainsAll(t, src,
		"    output reg  [31:0] rdata_a\n);",
		"    wire [3:0] wen_a_row;",
		"    wire [3:0] ren_a_row;",
		"    wire [31:0] rdata_a_row3;",
		"    reg  [1:0] rsel_a;",
		"assign wen_a_row[2] = wen_a & (addr_a[11:10] == 2'd2);",
		"assign ren_a_row[0] = ren_a & (addr_a[11:10] == 2'd0);",
		") u_bram_r3_c0 (",
		".WEN_A(wen_a_row[1])",
		"assign rdata_a_row1[31:0] = u_bram_r1_c0_rdata_a[31:0];",
		"    always @(posedge clk) begin\n        if (ren_a) begin\n            rsel_a <= addr_a[11:10];\n        end\n    end",
		"        case (rsel_a)",
		"            2'd3: rdata_a = rdata_a_row3;",
		"            default: rdata_a = 32'b0;",
	)
}

func TestGenerate_SimpleDualPortByteWrite(t *testing.T) {
	in := defaults()
	in.MemoryType = "simple_dual_port"
	in.Depth = 4096
	in.ByteWriteEnable = true
	in.OutputRegister = true
	in.CommonClock = false
	out, src := generate(t, "frame_ram", in)

	assert.Equal(t, 4, out.BramCount)
	assert.Equal(t, 2, out.ReadLatency)
	assert.Equal(t, 36, out.PrimitiveWidth)

	assertContainsAll(t, src,
		"    input  wire clk_a,",
		"    input  wire clk_b,",
		"    input  wire [3:0] be_a, // byte enables, one per 8 data bits",
		"    output reg  [31:0] rdata_b\n);",
		".MODE_BITS(81'b"+zeros(65)+"1100011001100000)",
		".CLK_A(clk_a)",
		".REN_A(1'b0)",
		".BE_A({be_a[3], be_a[2], be_a[1], be_a[0]})",
		".WDATA_A({1'b0, wdata_a[31:24], 1'b0, wdata_a[23:16], 1'b0, wdata_a[15:8], 1'b0, wdata_a[7:0]})",
		".RDATA_A()",
		".CLK_B(clk_b)",
		".WEN_B(1'b0)",
		".REN_B(ren_b_row[2])",
		".ADDR_B({addr_b[9:0], 5'b0})",
		"assign rdata_b_row0[15:8] = u_bram_r0_c0_rdata_b[16:9];",
		"    always @(posedge clk_b) begin",
		"            rsel_b <= addr_b[11:10];",
		"        rsel_b_q <= rsel_b;",
		"        case (rsel_b_q)",
	)
	assert.NotContains(t, src, "ren_a")
}

func TestGenerate_TrueDualPortSharesClock(t *testing.T) {
	in := defaults()
	in.MemoryType = "true_dual_port"
	in.DataWidth = 18
	in.Depth = 2048
	_, src := generate(t, "tdp", in)

	assertContainsAll(t, src,
		".CLK_A(clk)",
		".CLK_B(clk)",
		".WEN_B(wen_b)",
		".REN_A(ren_a)",
		".RDATA_B(u_bram_r0_c0_rdata_b)",
		"assign rdata_b[17:0] = u_bram_r0_c0_rdata_b[17:0];",
	)
	assert.NotContains(t, src, "clk_a")
}

func TestGenerate_MemoryTypeIgnoresCase(t *testing.T) {
	for _, memType := range []string{"SIMPLE_DUAL_PORT", "Simple_Dual_Port", " simple_dual_port "} {
		t.Run(memType, func(t *testing.T) {
			lower := defaults()
			lower.MemoryType = "simple_dual_port"
			mixed := defaults()
			mixed.MemoryType = memType

			wantOut, wantSrc := generate(t, "sdp", lower)
			gotOut, gotSrc := generate(t, "sdp", mixed)
			assert.Equal(t, wantOut, gotOut)
			if diff := cmp.Diff(wantSrc, gotSrc); diff != "" {
				t.Errorf("wrapper mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerate_ROMWithInitFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rom.hex"), []byte("// boot\n12 34\n@f ff\n"), 0o644))

	in := defaults()
	in.MemoryType = "rom"
	in.DataWidth = 8
	in.Depth = 16
	in.InitFile = "rom.hex"

	e := ipcore.NewEmitter(coreName, "boot_rom")
	e.SetBaseDir(dir)
	out, err := Generate(ctxlog.Discard(context.Background()), e, in)
	require.NoError(t, err)
	assert.Equal(t, 1, out.BramCount)
	assert.Equal(t, 4, out.AddressWidth)

	m := e.Files()[0].Content
	assertContainsAll(t, m,
		".MODE_BITS(81'b"+zeros(77)+"1100)",
		".WEN_A(1'b0)",
		".REN_A(ren_a)",
		".WDATA_A(36'b0)",
	)
	assert.NotContains(t, m, "wen_a")

	start := strings.Index(m, ".INIT(36864'h")
	require.NotEqual(t, -1, start)
	init := m[start+len(".INIT(36864'h"):]
	init = init[:strings.IndexByte(init, ')')]
	require.Len(t, init, 9216)
	assert.True(t, strings.HasSuffix(init, "34000000012"))
	assert.Equal(t, byte('f'), init[9215-135])
	assert.Equal(t, byte('f'), init[9215-136])
}

func TestGenerate_Errors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wide.hex"), []byte("1ff\n"), 0o644))

	testCases := []struct {
		name       string
		mutate     func(in *Input)
		wantErr    string
		wantParam  bool
		wantNotExt bool
	}{
		{"bad memory type", func(in *Input) { in.MemoryType = "fifo" }, `"memory_type"`, true, false},
		{"byte write on odd width", func(in *Input) { in.DataWidth = 12; in.ByteWriteEnable = true }, "multiple of 8", true, false},
		{"depth too small", func(in *Input) { in.Depth = 1 }, `"depth"`, true, false},
		{"rom without init", func(in *Input) { in.MemoryType = "rom" }, "required for a rom", true, false},
		{"bad init format", func(in *Input) { in.InitFile = "wide.hex"; in.InitFormat = "oct" }, "unknown init format", true, false},
		{"missing init file", func(in *Input) { in.InitFile = "nope.hex" }, "open memory init file", false, true},
		{"init word too wide", func(in *Input) { in.DataWidth = 8; in.InitFile = "wide.hex" }, "does not fit in 8 bits", false, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in := defaults()
			tc.mutate(in)
			e := ipcore.NewEmitter(coreName, "m")
			e.SetBaseDir(dir)

			_, err := Generate(ctxlog.Discard(context.Background()), e, in)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
			if tc.wantParam {
				assert.ErrorIs(t, err, ipcore.ErrInvalidParameter)
			}
			if tc.wantNotExt {
				assert.ErrorIs(t, err, os.ErrNotExist)
			}
			assert.Empty(t, e.Files())
		})
	}
}

func TestBits(t *testing.T) {
	assert.Equal(t, "d", bits("d", 1, 0, 0))
	assert.Equal(t, "d[7:0]", bits("d", 8, 7, 0))
	assert.Equal(t, hdl.Slice("be", 2, 2), bits("be", 4, 2, 2))
}
