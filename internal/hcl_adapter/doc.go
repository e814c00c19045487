// Package hcl_adapter provides the HCL implementation of the config.Loader
// and config.Converter interfaces.
//
// It parses build files and embedded core manifests, translates them into
// the format-agnostic config.Model, and binds evaluated arguments to the Go
// input structs of the generators.
package hcl_adapter
