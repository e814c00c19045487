package error_handling_test

import (
	"context"
	"fmt"

	"github.com/vk/ipforge/internal/ipcore"
	"github.com/vk/ipforge/internal/testutil"
)

const gateManifest = `
core "gate" {
  lifecycle {
    on_generate = "GenerateGate"
  }
  input "inputs" {
    type = number
  }
  output "module_name" {
    type = string
  }
}
`

type gateInput struct {
	Inputs int `ipf:"inputs"`
}

type gateOutput struct {
	ModuleName string `cty:"module_name"`
}

func generateGate(_ context.Context, e *ipcore.Emitter, in *gateInput) (*gateOutput, error) {
	if in.Inputs < 2 || in.Inputs > 8 {
		return nil, ipcore.NewParamError(e.Core(), "inputs", "must be between 2 and 8, got %d", in.Inputs)
	}
	name := fmt.Sprintf("and%d_%s", in.Inputs, e.Name())
	if err := e.AddFile("src/"+name+".v", "module "+name+";\nendmodule\n"); err != nil {
		return nil, err
	}
	return &gateOutput{ModuleName: name}, nil
}

func gateModule() *testutil.SimpleModule {
	return &testutil.SimpleModule{GeneratorName: "GenerateGate", Generator: generateGate, Manifest: gateManifest}
}
