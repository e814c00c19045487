// Package config defines the format-agnostic model of a build: the catalog
// of core definitions (from manifests) and the IP instances a build file
// declares. It also defines the Loader and Converter interfaces that a
// concrete format, such as HCL, implements.
//
// The Model is the single source of truth for the dag and executor
// packages.
package config
