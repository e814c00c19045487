package executor

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/ipforge/internal/config"
	"github.com/vk/ipforge/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// buildEvalContext exposes the outputs of an instance's completed
// dependencies as `ip.<core>.<name>.<output>`.
func (e *Executor) buildEvalContext(ctx context.Context, inst *config.Instance, outputs map[string]cty.Value) (*hcl.EvalContext, error) {
	logger := ctxlog.FromContext(ctx)

	deps, err := e.graph.Dependencies(inst.ID())
	if err != nil {
		return nil, err
	}

	byCore := make(map[string]map[string]cty.Value)
	for _, depID := range deps {
		out, done := outputs[depID]
		if !done {
			continue
		}
		dep := e.instances[depID]
		if _, ok := byCore[dep.CoreType]; !ok {
			byCore[dep.CoreType] = make(map[string]cty.Value)
		}
		if out == cty.NilVal {
			out = cty.EmptyObjectVal
		}
		byCore[dep.CoreType][dep.Name] = out
	}

	ip := make(map[string]cty.Value, len(byCore))
	for coreType, byName := range byCore {
		ip[coreType] = cty.ObjectVal(byName)
	}
	logger.Debug("Built HCL evaluation context.", "instance", inst.ID(), "dependencies", len(deps))

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"ip": cty.ObjectVal(ip)},
		Functions: e.converter.Functions(),
	}, nil
}
