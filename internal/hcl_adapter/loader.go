package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/ipforge/internal/config"
	"github.com/vk/ipforge/internal/ctxlog"
	"github.com/vk/ipforge/internal/fsutil"
	"github.com/vk/ipforge/internal/hdl"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the in-memory sources first, then every .hcl file found under
// paths, and merges all core and ip blocks into one model. Any block may
// appear in any document.
func (l *Loader) Load(ctx context.Context, sources []config.Source, paths ...string) (*config.Model, config.Converter, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "source_count", len(sources), "path_count", len(paths))

	model := &config.Model{
		Cores: make(map[string]*config.CoreDefinition),
		Build: &config.Build{},
	}
	st := &loadState{
		model:     model,
		coreFrom:  make(map[string]string),
		instFrom:  make(map[string]declared),
		parser:    hclparse.NewParser(),
		translate: l,
	}

	for _, src := range sources {
		file, diags := st.parser.ParseHCL(src.Data, src.Name)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to parse HCL source %s: %w", src.Name, diags)
		}
		if err := st.merge(ctx, src.Name, file); err != nil {
			return nil, nil, err
		}
	}

	files, err := findAllHCLFiles(paths)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	for _, path := range files {
		file, diags := st.parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
		}
		if err := st.merge(ctx, path, file); err != nil {
			return nil, nil, err
		}
	}

	logger.Debug("HCL loading complete.", "cores", len(model.Cores), "instances", len(model.Build.Instances))
	return model, NewConverter(), nil
}

// loadState accumulates one load. instFrom is keyed on the bare instance
// name: it becomes the Verilog module and file name, so it must be unique
// across cores.
type loadState struct {
	model     *config.Model
	coreFrom  map[string]string
	instFrom  map[string]declared
	parser    *hclparse.Parser
	translate *Loader
}

// declared records where an instance was first seen.
type declared struct {
	id     string
	origin string
}

func (st *loadState) merge(ctx context.Context, origin string, file *hcl.File) error {
	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", origin, diags)
	}

	for _, core := range root.Cores {
		if prev, dup := st.coreFrom[core.Type]; dup {
			return fmt.Errorf("core %q is defined twice (%s and %s)", core.Type, prev, origin)
		}
		def, err := st.translate.translateCoreDefinition(ctx, core)
		if err != nil {
			return fmt.Errorf("%s: %w", origin, err)
		}
		st.coreFrom[core.Type] = origin
		st.model.Cores[def.Type] = def
	}

	for _, ip := range root.Instances {
		if !hdl.IsIdentifier(ip.Name) {
			return fmt.Errorf("%s: ip %q %q: name must be a Verilog identifier", origin, ip.CoreType, ip.Name)
		}
		if _, prim := hdl.LookupPrimitive(ip.Name); prim {
			return fmt.Errorf("%s: ip %q %q: name collides with the %s primitive", origin, ip.CoreType, ip.Name, ip.Name)
		}
		inst, err := st.translate.translateInstance(ip, origin)
		if err != nil {
			return err
		}
		if prev, dup := st.instFrom[inst.Name]; dup {
			if prev.id == inst.ID() {
				return fmt.Errorf("%s is declared twice (%s and %s)", inst.ID(), prev.origin, origin)
			}
			return fmt.Errorf("instance name %q is used by both %s (%s) and %s (%s); names must be unique across cores",
				inst.Name, prev.id, prev.origin, inst.ID(), origin)
		}
		st.instFrom[inst.Name] = declared{id: inst.ID(), origin: origin}
		st.model.Build.Instances = append(st.model.Build.Instances, inst)
	}
	return nil
}

// findAllHCLFiles expands every path into its .hcl files, keeping the first
// occurrence of each.
func findAllHCLFiles(paths []string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})
	for _, p := range paths {
		files, err := fsutil.FindFilesByExtension(p, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("error accessing build path %s: %w", p, err)
		}
		for _, f := range files {
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			all = append(all, f)
		}
	}
	return all, nil
}
