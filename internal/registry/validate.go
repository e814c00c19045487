package registry

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/vk/ipforge/internal/config"
	"github.com/vk/ipforge/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ValidateRegistry performs a strict parity check between manifests and Go
// code: every core must name a registered generator, and the generator's
// input and output structs must match the manifest by name and type.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, coreType := range r.CoreTypes() {
		def := r.DefinitionRegistry[coreType]
		if def.Lifecycle == nil || def.Lifecycle.OnGenerate == "" {
			errs = append(errs, fmt.Sprintf("core '%s': manifest has no lifecycle.on_generate", coreType))
			continue
		}
		gen, ok := r.GeneratorRegistry[def.Lifecycle.OnGenerate]
		if !ok {
			errs = append(errs, fmt.Sprintf("core '%s': generator '%s' is not registered", coreType, def.Lifecycle.OnGenerate))
			continue
		}

		inputTypes := make(map[string]cty.Type, len(def.Inputs))
		for name, in := range def.Inputs {
			inputTypes[name] = in.Type
		}
		outputTypes := make(map[string]cty.Type, len(def.Outputs))
		for name, out := range def.Outputs {
			outputTypes[name] = out.Type
		}

		errs = append(errs, checkParity(coreType, "input", inputTypes, gen.InputType, config.InputTag)...)
		errs = append(errs, checkParity(coreType, "output", outputTypes, gen.OutputType, config.OutputTag)...)

		for name, in := range def.Inputs {
			if in.Type.Equals(cty.DynamicPseudoType) {
				logger.Warn("Core input has 'type = any', which disables static type checking.", "core", coreType, "input", name)
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// checkParity compares manifest fields against the tagged fields of a Go
// struct, by presence and by implied cty type.
func checkParity(coreType, kind string, manifest map[string]cty.Type, goType reflect.Type, tag string) []string {
	var errs []string

	goFields := make(map[string]reflect.StructField)
	for i := 0; i < goType.NumField(); i++ {
		f := goType.Field(i)
		if name := config.TagName(f, tag); name != "" {
			goFields[name] = f
		}
	}

	for _, name := range sortedKeys(goFields) {
		if _, ok := manifest[name]; !ok {
			errs = append(errs, fmt.Sprintf("core '%s': Go struct has field for %s '%s' which is not declared in manifest", coreType, kind, name))
		}
	}
	for _, name := range sortedKeys(manifest) {
		manifestType := manifest[name]
		field, ok := goFields[name]
		if !ok {
			errs = append(errs, fmt.Sprintf("core '%s': manifest declares %s '%s' which is not found in Go struct", coreType, kind, name))
			continue
		}
		if manifestType.Equals(cty.DynamicPseudoType) {
			continue
		}
		goFieldType, err := gocty.ImpliedType(reflect.Zero(field.Type).Interface())
		if err != nil {
			errs = append(errs, fmt.Sprintf("core '%s', %s '%s': could not imply cty type from Go field type %s: %v", coreType, kind, name, field.Type, err))
			continue
		}
		if !manifestType.Equals(goFieldType) {
			errs = append(errs, fmt.Sprintf("core '%s', %s '%s': type mismatch. Manifest requires '%s' but Go struct field '%s' provides '%s'",
				coreType, kind, name, manifestType.FriendlyName(), field.Name, goFieldType.FriendlyName()))
		}
	}
	return errs
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
