// Package registry provides the glue between core manifests and the Go
// generators that implement them.
//
// The Registry maps the generator names used in manifests (e.g.
// "GenerateOnChipMemory") to compiled Go functions, and holds both the
// embedded manifest sources and the parsed core definitions. At startup it
// is populated and then validated so that manifests and Go code cannot
// drift apart silently.
package registry
