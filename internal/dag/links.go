package dag

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/ipforge/internal/config"
	"github.com/vk/ipforge/internal/ctxlog"
	"github.com/vk/ipforge/internal/registry"
)

// linkExplicitDeps resolves a `depends_on` list. Entries name an instance
// as "<core>.<name>"; the "ip." prefix is optional.
func linkExplicitDeps(ctx context.Context, graph *Graph, inst *config.Instance) error {
	logger := ctxlog.FromContext(ctx)
	for _, raw := range inst.DependsOn {
		depID := raw
		if !strings.HasPrefix(depID, "ip.") {
			depID = "ip." + depID
		}
		if strings.Count(depID, ".") != 2 {
			return fmt.Errorf("%s: depends_on entry '%s' must have the form <core>.<name>", inst.ID(), raw)
		}
		if !graph.HasNode(depID) {
			return fmt.Errorf("%s depends on non-existent instance '%s'", inst.ID(), raw)
		}
		logger.Debug("Linking explicit dependency.", "from", inst.ID(), "to", depID)
		if err := graph.AddEdge(depID, inst.ID()); err != nil {
			return fmt.Errorf("%s: %w", inst.ID(), err)
		}
	}
	return nil
}

// linkImplicitDeps adds an edge for every `ip.<core>.<name>` traversal in
// expr. A fourth segment must name an output declared by the referenced
// core's manifest.
func linkImplicitDeps(ctx context.Context, graph *Graph, inst *config.Instance, expr hcl.Expression, instances map[string]*config.Instance, r *registry.Registry) error {
	logger := ctxlog.FromContext(ctx)
	for _, traversal := range expr.Variables() {
		if traversal.RootName() != "ip" {
			continue
		}
		depID, output, ok := parseInstanceTraversal(traversal)
		if !ok {
			return fmt.Errorf("reference %s must have the form ip.<core>.<name>.<output>", formatTraversal(traversal))
		}
		dep, found := instances[depID]
		if !found {
			return fmt.Errorf("reference to undeclared instance '%s'", depID)
		}
		if output != "" {
			if _, ok := r.DefinitionRegistry[dep.CoreType].Outputs[output]; !ok {
				return fmt.Errorf("reference to undeclared output %q on %s", output, depID)
			}
		}
		logger.Debug("Linking implicit dependency.", "from", inst.ID(), "to", depID)
		if err := graph.AddEdge(depID, inst.ID()); err != nil {
			return err
		}
	}
	return nil
}

// parseInstanceTraversal splits ip.<core>.<name>[.<output>...] into the
// instance address and the output name ("" when absent).
func parseInstanceTraversal(t hcl.Traversal) (id, output string, ok bool) {
	if len(t) < 3 {
		return "", "", false
	}
	core, coreOk := t[1].(hcl.TraverseAttr)
	name, nameOk := t[2].(hcl.TraverseAttr)
	if !coreOk || !nameOk {
		return "", "", false
	}
	id = "ip." + core.Name + "." + name.Name
	if len(t) > 3 {
		if attr, isAttr := t[3].(hcl.TraverseAttr); isAttr {
			output = attr.Name
		}
	}
	return id, output, true
}

// formatTraversal renders a traversal for error messages.
func formatTraversal(t hcl.Traversal) string {
	var sb strings.Builder
	for _, step := range t {
		switch s := step.(type) {
		case hcl.TraverseRoot:
			sb.WriteString(s.Name)
		case hcl.TraverseAttr:
			sb.WriteString("." + s.Name)
		case hcl.TraverseIndex:
			sb.WriteString("[" + s.Key.GoString() + "]")
		default:
			sb.WriteString(".?")
		}
	}
	return sb.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
