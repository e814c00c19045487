// Package hdl is a small Verilog-2001 emission layer. Generators describe a
// wrapper as a Module value (ports, nets, primitive instances, continuous
// assignments and free-form procedural blocks) and Render turns it into
// source text through a text/template skeleton.
//
// The package also carries the fixed port/parameter contracts of the vendor
// primitives the catalog instantiates, so that Module.Validate can catch a
// generator that connects a port the primitive does not have.
package hdl
