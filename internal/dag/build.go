package dag

import (
	"context"
	"fmt"

	"github.com/vk/ipforge/internal/config"
	"github.com/vk/ipforge/internal/ctxlog"
	"github.com/vk/ipforge/internal/registry"
)

// Build constructs a complete, validated dependency graph from a config
// model. Every instance must use a defined core, every reference must
// resolve, and the graph must be acyclic.
func Build(ctx context.Context, model *config.Model, r *registry.Registry) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.")
	graph := New()

	// First pass: one node per instance.
	instances := make(map[string]*config.Instance, len(model.Build.Instances))
	for _, inst := range model.Build.Instances {
		if _, ok := r.DefinitionRegistry[inst.CoreType]; !ok {
			return nil, fmt.Errorf("%s (%s): unknown core type '%s'", inst.ID(), inst.SourceFile, inst.CoreType)
		}
		graph.AddNode(inst.ID())
		instances[inst.ID()] = inst
	}
	logger.Debug("Build: Node creation complete.", "node_count", len(instances))

	// Second pass: link dependencies.
	for _, inst := range model.Build.Instances {
		if err := linkExplicitDeps(ctx, graph, inst); err != nil {
			return nil, err
		}
		for _, name := range sortedKeys(inst.Arguments) {
			if err := linkImplicitDeps(ctx, graph, inst, inst.Arguments[name], instances, r); err != nil {
				return nil, fmt.Errorf("%s, argument '%s': %w", inst.ID(), name, err)
			}
		}
	}
	logger.Debug("Build: Node linking complete.")

	if err := graph.DetectCycles(); err != nil {
		return nil, fmt.Errorf("error validating dependency graph: %w", err)
	}
	logger.Debug("Build: Graph construction successful.")
	return graph, nil
}
