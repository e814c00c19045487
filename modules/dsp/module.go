// Package dsp generates arithmetic wrappers around one DSP38 slice.
package dsp

import (
	_ "embed"

	"github.com/vk/ipforge/internal/registry"
)

//go:embed manifest.hcl
var manifest []byte

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the manifest and generator with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterManifest("dsp/manifest.hcl", manifest)
	r.RegisterGenerator("GenerateDSP", registry.NewGenerator(Generate))
}
