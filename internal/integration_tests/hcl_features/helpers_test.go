package hcl_features_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/ipforge/internal/ipcore"
	"github.com/vk/ipforge/internal/testutil"
)

const tapManifest = `
core "tap" {
  description = "Test core that echoes its arguments into a stub module."
  lifecycle {
    on_generate = "GenerateTap"
  }
  input "width" {
    type    = number
    default = 8
  }
  input "prefix" {
    type    = string
    default = "tap"
  }
  output "module_name" {
    type = string
  }
  output "width" {
    type = number
  }
}
`

type tapInput struct {
	Width  int    `ipf:"width"`
	Prefix string `ipf:"prefix"`
}

type tapOutput struct {
	ModuleName string `cty:"module_name"`
	Width      int    `cty:"width"`
}

func generateTap(_ context.Context, e *ipcore.Emitter, in *tapInput) (*tapOutput, error) {
	name := in.Prefix + "_" + e.Name()
	src := fmt.Sprintf("module %s; // width %d\nendmodule\n", name, in.Width)
	if err := e.AddFile("src/"+e.Name()+".v", src); err != nil {
		return nil, err
	}
	return &tapOutput{ModuleName: name, Width: in.Width}, nil
}

// tapModule returns the tap core with its manifest embedded, or with the
// generator alone when the manifest lives in a build file.
func tapModule(withManifest bool) *testutil.SimpleModule {
	m := &testutil.SimpleModule{GeneratorName: "GenerateTap", Generator: generateTap}
	if withManifest {
		m.Manifest = tapManifest
	}
	return m
}

// generatedAt returns the log line index at which an instance finished.
func generatedAt(t *testing.T, logs, id string) int {
	t.Helper()
	for i, line := range strings.Split(logs, "\n") {
		if strings.Contains(line, "Generated IP instance") && strings.Contains(line, "ip="+id) {
			return i
		}
	}
	require.Failf(t, "instance not generated", "no completion line for %s", id)
	return -1
}
