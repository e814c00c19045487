// Package io_buffer generates pad buffer banks from the I_BUF, O_BUF,
// O_BUFT and IO_BUF primitive families.
package io_buffer

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
	r.RegisterManifest("io_buffer/manifest.hcl", manifest)
	r.RegisterGenerator("GenerateIOBuffer", registry.NewGenerator(Generate))
}
