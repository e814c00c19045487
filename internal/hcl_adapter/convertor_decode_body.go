package hcl_adapter

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/ipforge/internal/config"
	"github.com/vk/ipforge/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// DecodeBody evaluates each argument, falls back to manifest defaults and
// decodes the result into the `ipf`-tagged fields of inputStruct.
func (c *Converter) DecodeBody(
	ctx context.Context,
	inputStruct any,
	args map[string]hcl.Expression,
	defs map[string]*config.InputDefinition,
	evalCtx *hcl.EvalContext,
) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting HCL body decoding.", "arguments", len(args))

	structVal := reflect.ValueOf(inputStruct)
	if structVal.Kind() != reflect.Ptr || structVal.IsNil() || structVal.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("inputStruct must be a non-nil pointer to a struct")
	}
	structVal = structVal.Elem()
	structType := structVal.Type()

	var unknown []string
	for name := range args {
		if _, ok := defs[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unsupported argument(s): %s", strings.Join(unknown, ", "))
	}

	for i := 0; i < structType.NumField(); i++ {
		fieldDef := structType.Field(i)
		fieldVal := structVal.Field(i)
		tagName := config.TagName(fieldDef, config.InputTag)
		if tagName == "" || !fieldVal.CanSet() {
			continue
		}

		inputDef, ok := defs[tagName]
		if !ok {
			continue
		}

		var value cty.Value
		if expr, provided := args[tagName]; provided {
			v, diags := expr.Value(evalCtx)
			if diags.HasErrors() {
				return fmt.Errorf("argument %q: %w", tagName, diags)
			}
			value = v
		}
		if value.IsNull() {
			switch {
			case inputDef.Default != nil:
				value = *inputDef.Default
			case inputDef.Optional:
				continue
			default:
				return fmt.Errorf("missing required argument %q", tagName)
			}
		}

		if err := c.decode(value, inputDef.Type, fieldVal.Addr().Interface()); err != nil {
			return fmt.Errorf("failed to decode argument '%s': %w", tagName, err)
		}
	}
	logger.Debug("Finished HCL body decoding successfully.")
	return nil
}
