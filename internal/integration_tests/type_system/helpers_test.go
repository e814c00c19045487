package type_system_test

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/vk/ipforge/internal/ipcore"
	"github.com/vk/ipforge/internal/testutil"
)

const firManifest = `
core "fir" {
  lifecycle {
    on_generate = "GenerateFIR"
  }
  input "taps" {
    type = list(number)
  }
  input "symmetric" {
    type    = bool
    default = false
  }
  input "label" {
    type    = string
    default = "fir"
  }
  input "attributes" {
    type    = map(string)
    default = {}
  }
  output "tap_count" {
    type = number
  }
  output "coefficient_sum" {
    type = number
  }
  output "taps" {
    type = list(number)
  }
}
`

type firInput struct {
	Taps       []int             `ipf:"taps"`
	Symmetric  bool              `ipf:"symmetric"`
	Label      string            `ipf:"label"`
	Attributes map[string]string `ipf:"attributes"`
}

type firOutput struct {
	TapCount       int   `cty:"tap_count"`
	CoefficientSum int   `cty:"coefficient_sum"`
	Taps           []int `cty:"taps"`
}

func generateFIR(_ context.Context, e *ipcore.Emitter, in *firInput) (*firOutput, error) {
	if len(in.Taps) == 0 {
		return nil, ipcore.NewParamError(e.Core(), "taps", "must not be empty")
	}
	taps := in.Taps
	if in.Symmetric {
		for i := len(in.Taps) - 1; i >= 0; i-- {
			taps = append(taps, in.Taps[i])
		}
	}
	sum := 0
	coeffs := make([]string, len(taps))
	for i, c := range taps {
		sum += c
		coeffs[i] = fmt.Sprint(c)
	}

	keys := make([]string, 0, len(in.Attributes))
	for k := range in.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "(* %s = %q *)\n", k, in.Attributes[k])
	}
	fmt.Fprintf(&sb, "module %s_%s; // %s\nendmodule\n", in.Label, e.Name(), strings.Join(coeffs, ","))
	if err := e.AddFile("src/"+e.Name()+".v", sb.String()); err != nil {
		return nil, err
	}
	return &firOutput{TapCount: len(taps), CoefficientSum: sum, Taps: taps}, nil
}

func firModule() *testutil.SimpleModule {
	return &testutil.SimpleModule{GeneratorName: "GenerateFIR", Generator: generateFIR, Manifest: firManifest}
}
