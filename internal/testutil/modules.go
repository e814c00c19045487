package testutil

import (
	"github.com/vk/ipforge/internal/registry"
)

// SimpleModule registers one generator and, optionally, an in-memory
// manifest. Tests that keep their manifest in a build file leave Manifest
// empty.
type SimpleModule struct {
	GeneratorName string
	Generator     any
	Manifest      string
}

// Register implements registry.Module.
func (m *SimpleModule) Register(r *registry.Registry) {
	if m.Manifest != "" {
		r.RegisterManifest(m.GeneratorName+"/manifest.hcl", []byte(m.Manifest))
	}
	r.RegisterGenerator(m.GeneratorName, registry.NewGenerator(m.Generator))
}
