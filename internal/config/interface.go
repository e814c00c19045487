package config

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// Source is an in-memory configuration document, typically a manifest
// embedded in a catalog module.
type Source struct {
	// Name is used in diagnostics; by convention "<core>/manifest.hcl".
	Name string
	Data []byte
}

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load parses the in-memory sources and every build file found under
	// paths, translates them into the format-agnostic model, and returns a
	// matching Converter.
	Load(ctx context.Context, sources []Source, paths ...string) (*Model, Converter, error)
}

// Converter binds raw configuration to the Go types used by generators.
type Converter interface {
	// DecodeBody evaluates the instance arguments and decodes them into a
	// generator's input struct, applying manifest defaults and rejecting
	// missing or undeclared arguments.
	DecodeBody(
		ctx context.Context,
		inputStruct any,
		args map[string]hcl.Expression,
		defs map[string]*InputDefinition,
		evalCtx *hcl.EvalContext,
	) error

	// ToCtyValue converts a native Go value (such as a generator's output
	// struct) into a cty.Value.
	ToCtyValue(v any) (cty.Value, error)

	// ToNative converts a cty.Value into plain Go values (string, bool,
	// int64/float64, []any, map[string]any) for reporting.
	ToNative(v cty.Value) (any, error)

	// Functions is the function table argument expressions are evaluated
	// with.
	Functions() map[string]function.Function
}
