package hcl_adapter

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Converter is the HCL-specific implementation of the config.Converter interface.
type Converter struct {
	funcs map[string]function.Function
}

// NewConverter creates a new HCL converter.
func NewConverter() *Converter {
	return &Converter{funcs: Functions()}
}

// Functions returns the functions available to argument expressions.
func (c *Converter) Functions() map[string]function.Function {
	return c.funcs
}

// ToCtyValue converts a native Go value into its corresponding cty.Value.
// Structs are converted through their `cty` field tags.
func (c *Converter) ToCtyValue(v any) (cty.Value, error) {
	if v == nil {
		return cty.NilVal, nil
	}
	ty, err := gocty.ImpliedType(v)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unable to infer cty.Type: %w", err)
	}
	return gocty.ToCtyValue(v, ty)
}

// ToNative converts a cty.Value into plain Go values.
func (c *Converter) ToNative(v cty.Value) (any, error) {
	return ctyToNative(v)
}
