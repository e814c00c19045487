package executor

import (
	"context"
	"fmt"
	"path/filepath"
	"reflect"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/ipforge/internal/config"
	"github.com/vk/ipforge/internal/ctxlog"
	"github.com/vk/ipforge/internal/ipcore"
)

// runInstance decodes an instance's arguments, calls its generator and
// converts the output.
func (e *Executor) runInstance(ctx context.Context, inst *config.Instance, evalCtx *hcl.EvalContext) (*Result, error) {
	logger := ctxlog.FromContext(ctx).With("ip", inst.ID())
	logger.Info("▶️ Generating IP instance")

	def, ok := e.registry.DefinitionRegistry[inst.CoreType]
	if !ok {
		return nil, fmt.Errorf("unknown core type '%s'", inst.CoreType)
	}
	genName := def.Lifecycle.OnGenerate
	gen, ok := e.registry.GeneratorRegistry[genName]
	if !ok {
		return nil, fmt.Errorf("generator '%s' not registered", genName)
	}

	input := gen.NewInput()
	if err := e.converter.DecodeBody(ctx, input, inst.Arguments, def.Inputs, evalCtx); err != nil {
		return nil, fmt.Errorf("failed to decode arguments: %w", err)
	}
	logger.Debug("Decoded generator input.", "input", fmt.Sprintf("%+v", reflect.ValueOf(input).Elem().Interface()))

	emitter := ipcore.NewEmitter(inst.CoreType, inst.Name, e.header...)
	if inst.SourceFile != "" {
		emitter.SetBaseDir(filepath.Dir(inst.SourceFile))
	}
	callArgs := []reflect.Value{reflect.ValueOf(ctxlog.WithLogger(ctx, logger)), reflect.ValueOf(emitter), reflect.ValueOf(input)}
	results := reflect.ValueOf(gen.Fn).Call(callArgs)
	if errResult := results[1].Interface(); errResult != nil {
		return nil, errResult.(error)
	}
	if results[0].IsNil() {
		return nil, fmt.Errorf("generator '%s' returned no output", genName)
	}

	output, err := e.converter.ToCtyValue(results[0].Interface())
	if err != nil {
		return nil, fmt.Errorf("failed to convert generator output: %w", err)
	}

	files := emitter.Files()
	logger.Info("✅ Generated IP instance", "files", len(files))
	return &Result{
		ID:       inst.ID(),
		CoreType: inst.CoreType,
		Name:     inst.Name,
		Output:   output,
		Files:    files,
	}, nil
}
