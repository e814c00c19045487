// Package on_chip_memory generates block RAM and ROM wrappers around the
// TDP_RAM36K primitive.
package on_chip_memory

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
	r.RegisterManifest("on_chip_memory/manifest.hcl", manifest)
	r.RegisterGenerator("GenerateOnChipMemory", registry.NewGenerator(Generate))
}
