package registry

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/vk/ipforge/internal/ipcore"
)

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	emitterType = reflect.TypeOf((*ipcore.Emitter)(nil))
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// RegisteredGenerator holds the compiled Go parts of a core's generator.
type RegisteredGenerator struct {
	// NewInput allocates a zero input struct and returns a pointer to it.
	NewInput   func() any
	InputType  reflect.Type
	OutputType reflect.Type
	// Fn has the signature
	// func(context.Context, *ipcore.Emitter, *Input) (*Output, error).
	Fn any
}

// NewGenerator inspects fn and builds its registration. It panics when fn
// does not have the generator signature, since that is a programming error.
func NewGenerator(fn any) *RegisteredGenerator {
	ft := reflect.TypeOf(fn)
	if ft == nil || ft.Kind() != reflect.Func {
		panic(fmt.Sprintf("generator must be a function, got %T", fn))
	}
	if ft.NumIn() != 3 || ft.NumOut() != 2 ||
		ft.In(0) != contextType || ft.In(1) != emitterType ||
		!isStructPtr(ft.In(2)) || !isStructPtr(ft.Out(0)) || ft.Out(1) != errorType {
		panic(fmt.Sprintf("generator has signature %s, want func(context.Context, *ipcore.Emitter, *Input) (*Output, error)", ft))
	}
	inputType := ft.In(2).Elem()
	return &RegisteredGenerator{
		NewInput:   func() any { return reflect.New(inputType).Interface() },
		InputType:  inputType,
		OutputType: ft.Out(0).Elem(),
		Fn:         fn,
	}
}

func isStructPtr(t reflect.Type) bool {
	return t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Struct
}

// RegisterGenerator registers a Go generator under the name manifests use in
// `lifecycle { on_generate = ... }`.
func (r *Registry) RegisterGenerator(name string, gen *RegisteredGenerator) {
	if _, exists := r.GeneratorRegistry[name]; exists {
		panic(fmt.Sprintf("generator with name '%s' already registered", name))
	}
	slog.Debug("Registering generator.", "name", name)
	r.GeneratorRegistry[name] = gen
}

// RegisterManifest records an embedded manifest. name is only used in
// diagnostics.
func (r *Registry) RegisterManifest(name string, src []byte) {
	if _, exists := r.manifests[name]; exists {
		panic(fmt.Sprintf("manifest '%s' already registered", name))
	}
	r.manifests[name] = src
}
