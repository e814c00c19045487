// Package app wires the loader, the module registry, the dependency graph and
// the executor into one build. It is independent of the command line so that
// tests can drive a complete build in-process.
package app
