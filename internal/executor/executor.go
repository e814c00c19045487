// Package executor runs the generators of a build in dependency order.
package executor

import (
	"context"
	"fmt"

	"github.com/vk/ipforge/internal/config"
	"github.com/vk/ipforge/internal/ctxlog"
	"github.com/vk/ipforge/internal/dag"
	"github.com/vk/ipforge/internal/ipcore"
	"github.com/vk/ipforge/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Result is the outcome of one generated instance.
type Result struct {
	ID       string
	CoreType string
	Name     string
	Output   cty.Value
	Files    []ipcore.File
}

// Executor generates every instance of a build sequentially. Generators are
// pure and fast, so there is no worker pool; the graph only fixes the order
// in which referenced outputs become available.
type Executor struct {
	graph     *dag.Graph
	instances map[string]*config.Instance
	registry  *registry.Registry
	converter config.Converter
	header    []string
}

// New creates an executor for the instances of model ordered by graph.
// header lines are added to every generated source file.
func New(graph *dag.Graph, model *config.Model, r *registry.Registry, converter config.Converter, header ...string) *Executor {
	instances := make(map[string]*config.Instance, len(model.Build.Instances))
	for _, inst := range model.Build.Instances {
		instances[inst.ID()] = inst
	}
	return &Executor{
		graph:     graph,
		instances: instances,
		registry:  r,
		converter: converter,
		header:    header,
	}
}

// Execute runs each generator once, in topological order. The first failure
// stops the build.
func (e *Executor) Execute(ctx context.Context) ([]*Result, error) {
	logger := ctxlog.FromContext(ctx)
	order, err := e.graph.TopologicalOrder()
	if err != nil {
		return nil, err
	}
	logger.Debug("Executor starting.", "instances", len(order))

	outputs := make(map[string]cty.Value, len(order))
	results := make([]*Result, 0, len(order))
	for _, id := range order {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("build cancelled before %s: %w", id, err)
		}
		inst, ok := e.instances[id]
		if !ok {
			return nil, fmt.Errorf("internal error: graph node %s has no instance", id)
		}

		evalCtx, err := e.buildEvalContext(ctx, inst, outputs)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", id, err)
		}
		res, err := e.runInstance(ctx, inst, evalCtx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", id, err)
		}
		outputs[id] = res.Output
		results = append(results, res)
	}
	logger.Debug("Executor finished.", "instances", len(results))
	return results, nil
}
