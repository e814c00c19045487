// Package serdes generates multi-lane I_SERDES and O_SERDES wrappers.
package serdes

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
	r.RegisterManifest("serdes/manifest.hcl", manifest)
	r.RegisterGenerator("GenerateSerdes", registry.NewGenerator(Generate))
}
