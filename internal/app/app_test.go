package app_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/ipforge/internal/app"
	"github.com/vk/ipforge/internal/hcl_adapter"
	"github.com/vk/ipforge/internal/testutil"
	"gopkg.in/yaml.v2"
)

const socBuild = `
ip "on_chip_memory" "frame_ram" {
  arguments {
    memory_type       = "simple_dual_port"
    data_width        = 32
    depth             = 4096
    byte_write_enable = true
  }
}

ip "dsp" "mac0" {
  arguments {
    mode    = "multiply_accumulate"
    a_width = 16
    b_width = ip.on_chip_memory.frame_ram.data_width / 2
  }
}

ip "io_buffer" "leds" {
  arguments {
    direction = "output"
    width     = 8
  }
}

ip "serdes" "cam_rx" {
  arguments {
    lanes = 2
    ratio = 10
  }
  depends_on = ["io_buffer.leds"]
}
`

func TestRun_FullCatalog(t *testing.T) {
	res := testutil.RunBuildWithConfig(context.Background(), t, map[string]string{"soc.hcl": socBuild}, func(c *app.Config) {
		c.Header = "Copyright ACME"
	})
	require.NoError(t, res.Err)

	for _, id := range [][2]string{{"on_chip_memory", "frame_ram"}, {"dsp", "mac0"}, {"io_buffer", "leds"}, {"serdes", "cam_rx"}} {
		testutil.AssertInstanceGenerated(t, res, id[0], id[1])
		src := testutil.ReadArtifact(t, res, "src/"+id[1]+".v")
		assert.Contains(t, src, "// Copyright ACME\n")
		assert.Contains(t, src, "module "+id[1]+" (")
	}

	var rep app.Report
	require.NoError(t, yaml.Unmarshal([]byte(testutil.ReadArtifact(t, res, app.ReportFile)), &rep))
	assert.Equal(t, "test", rep.Build)
	require.Len(t, rep.Instances, 4)

	byName := map[string]app.InstanceReport{}
	for _, ir := range rep.Instances {
		byName[ir.Name] = ir
	}
	assert.Equal(t, "dsp", byName["mac0"].Core)
	assert.Equal(t, "mac0", byName["mac0"].Module)
	assert.Equal(t, []string{"src/mac0.v"}, byName["mac0"].Files)
	assert.EqualValues(t, 38, byName["mac0"].Outputs["z_width"])
	assert.EqualValues(t, 20, byName["cam_rx"].Outputs["parallel_width"])
	assert.Equal(t, "O_BUF", byName["leds"].Outputs["primitive"])
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	res := testutil.RunBuildWithConfig(context.Background(), t, map[string]string{"soc.hcl": socBuild}, func(c *app.Config) {
		c.DryRun = true
	})
	require.NoError(t, res.Err)
	assert.Contains(t, res.LogOutput, "Dry run, not writing.")
	assert.NoDirExists(t, res.OutDir)
}

func TestRun_EmptyBuild(t *testing.T) {
	res := testutil.RunBuild(t, map[string]string{"empty.hcl": "# nothing yet\n"})
	require.NoError(t, res.Err)
	assert.Contains(t, res.LogOutput, "nothing to generate")
}

func TestRun_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		build   string
		wantErr string
	}{
		{
			name:    "unknown core",
			build:   `ip "pll" "sys" {` + "\n  arguments {}\n}\n",
			wantErr: "unknown core type 'pll'",
		},
		{
			name: "dependency cycle",
			build: `
ip "dsp" "a" {
  arguments {
    a_width = ip.dsp.b.z_width
  }
}
ip "dsp" "b" {
  arguments {
    a_width = ip.dsp.a.z_width
  }
}
`,
			wantErr: "cycle",
		},
		{
			name: "undeclared argument",
			build: `
ip "dsp" "a" {
  arguments {
    c_width = 4
  }
}
`,
			wantErr: "unsupported argument(s): c_width",
		},
		{
			name: "parameter out of range",
			build: `
ip "serdes" "rx" {
  arguments {
    ratio = 12
  }
}
`,
			wantErr: `serdes: parameter "ratio" must be in range [3, 10], got 12`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := testutil.RunBuild(t, map[string]string{"b.hcl": tc.build})
			require.Error(t, res.Err)
			assert.Contains(t, res.Err.Error(), tc.wantErr)
		})
	}
}

func TestNewApp_PanicsOnBadBuildFile(t *testing.T) {
	res := testutil.RunBuild(t, map[string]string{"bad.hcl": "ip \"dsp\" {\n"})
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "application startup panicked")
	assert.Contains(t, res.Err.Error(), "failed to parse")
}

func TestListCores(t *testing.T) {
	out := &bytes.Buffer{}
	a := app.NewApp(out, &app.Config{List: true, LogLevel: "error"}, hcl_adapter.NewLoader())

	var list bytes.Buffer
	require.NoError(t, a.ListCores(&list))
	got := list.String()

	for _, want := range []string{
		"dsp\n  Multiplier, multiply-add/sub or multiply-accumulate on one DSP38 slice.\n",
		"    a_width (number) = 16: Width of operand a, 1 to 20.\n",
		"io_buffer\n",
		"    io_standard (string) = \"DEFAULT\"\n",
		"on_chip_memory\n",
		"    byte_write_enable (bool) = false: ",
		"serdes\n",
	} {
		assert.Contains(t, got, want)
	}
	assert.Less(t, bytes.Index(list.Bytes(), []byte("dsp\n")), bytes.Index(list.Bytes(), []byte("serdes\n")))
}

func TestNewConfig(t *testing.T) {
	_, err := app.NewConfig(app.Config{BuildDir: "b", BuildName: "n"})
	assert.ErrorContains(t, err, "build file or directory is required")

	cfg, err := app.NewConfig(app.Config{List: true})
	require.NoError(t, err)
	assert.True(t, cfg.List)

	_, err = app.NewConfig(app.Config{BuildPath: "x.hcl", BuildDir: "b", BuildName: ".."})
	assert.ErrorContains(t, err, "path separators")
}

func TestRun_WritesIntoNestedBuildDir(t *testing.T) {
	dir := t.TempDir()
	res := testutil.RunBuildWithConfig(context.Background(), t, map[string]string{"soc.hcl": socBuild}, func(c *app.Config) {
		c.BuildDir = filepath.Join(dir, "out", "fpga")
		c.BuildName = "rev_a"
	})
	require.NoError(t, res.Err)
	_, err := os.Stat(filepath.Join(dir, "out", "fpga", "rev_a", "src", "frame_ram.v"))
	assert.NoError(t, err)
}
