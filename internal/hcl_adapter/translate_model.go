// This file translates the HCL schema structs into the format-agnostic
// configuration model.

package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/ipforge/internal/config"
	"github.com/vk/ipforge/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// translateInstance converts an `ip` block into the agnostic model.
func (l *Loader) translateInstance(s *Instance, origin string) (*config.Instance, error) {
	inst := &config.Instance{
		CoreType:   s.CoreType,
		Name:       s.Name,
		Arguments:  map[string]hcl.Expression{},
		DependsOn:  s.DependsOn,
		SourceFile: origin,
	}
	if s.Arguments == nil || s.Arguments.Body == nil {
		return inst, nil
	}
	attrs, diags := s.Arguments.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("%s: arguments of %s: %w", origin, inst.ID(), diags)
	}
	for name, attr := range attrs {
		inst.Arguments[name] = attr.Expr
	}
	return inst, nil
}

// translateCoreDefinition converts a `core` manifest block into the agnostic
// model.
func (l *Loader) translateCoreDefinition(ctx context.Context, s *CoreDefinition) (*config.CoreDefinition, error) {
	logger := ctxlog.FromContext(ctx).With("core", s.Type)
	logger.Debug("Translating core manifest.", "inputs", len(s.Inputs), "outputs", len(s.Outputs))

	d := &config.CoreDefinition{
		Type:        s.Type,
		Description: s.Description,
		Inputs:      make(map[string]*config.InputDefinition),
		Outputs:     make(map[string]*config.OutputDefinition),
	}
	if s.Lifecycle != nil {
		d.Lifecycle = &config.Lifecycle{OnGenerate: s.Lifecycle.OnGenerate}
	}

	for _, in := range s.Inputs {
		if _, dup := d.Inputs[in.Name]; dup {
			return nil, fmt.Errorf("in core '%s': input '%s' is declared twice", s.Type, in.Name)
		}
		def, err := translateInputDefinition(ctx, in, s.Type)
		if err != nil {
			return nil, err
		}
		d.Inputs[in.Name] = def
	}

	for _, out := range s.Outputs {
		if _, dup := d.Outputs[out.Name]; dup {
			return nil, fmt.Errorf("in core '%s': output '%s' is declared twice", s.Type, out.Name)
		}
		parsedType, err := typeExprToCtyType(out.Type)
		if err != nil {
			return nil, fmt.Errorf("in core '%s', output '%s': %w", s.Type, out.Name, err)
		}
		d.Outputs[out.Name] = &config.OutputDefinition{
			Name:        out.Name,
			Type:        parsedType,
			Description: out.Description,
		}
	}
	return d, nil
}

// translateInputDefinition parses an input's type and default. An input
// with a non-null default is optional; the default must convert to the
// declared type.
func translateInputDefinition(ctx context.Context, in *InputDefinition, coreType string) (*config.InputDefinition, error) {
	parsedType, err := typeExprToCtyType(in.Type)
	if err != nil {
		return nil, fmt.Errorf("in core '%s', input '%s': %w", coreType, in.Name, err)
	}

	def := &config.InputDefinition{
		Name:        in.Name,
		Type:        parsedType,
		Description: in.Description,
	}

	if in.Default != nil {
		val, diags := in.Default.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid default value for input '%s' in core '%s': %w", in.Name, coreType, diags)
		}
		if !val.IsNull() {
			converted, err := convertTo(val, parsedType)
			if err != nil {
				return nil, fmt.Errorf("default value for input '%s' in core '%s': %w", in.Name, coreType, err)
			}
			def.Default = &converted
			def.Optional = true
		}
	}
	ctxlog.FromContext(ctx).Debug("Translated input.", "core", coreType, "input", in.Name,
		"type", parsedType.FriendlyName(), "optional", def.Optional)
	return def, nil
}

func convertTo(val cty.Value, ty cty.Type) (cty.Value, error) {
	if ty == cty.DynamicPseudoType {
		return val, nil
	}
	return convert.Convert(val, ty)
}
