package config

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Model is the unified, format-agnostic representation of a build: the core
// catalog and the instances to generate.
type Model struct {
	Cores map[string]*CoreDefinition
	Build *Build
}

// Build is the set of IP instances declared across all build files.
type Build struct {
	Instances []*Instance
}

// Instance is the format-agnostic representation of an `ip` block.
type Instance struct {
	CoreType   string
	Name       string
	Arguments  map[string]hcl.Expression
	DependsOn  []string
	SourceFile string
}

// ID returns the address other instances use to reference this one.
func (i *Instance) ID() string {
	return "ip." + i.CoreType + "." + i.Name
}

// --- Core Manifest Models ---

// CoreDefinition is the format-agnostic representation of a core manifest.
type CoreDefinition struct {
	Type        string
	Description string
	Lifecycle   *Lifecycle
	Inputs      map[string]*InputDefinition
	Outputs     map[string]*OutputDefinition
}

// Lifecycle maps a core's events to Go generator names.
type Lifecycle struct {
	OnGenerate string
}

// InputDefinition defines a single input argument of a core.
type InputDefinition struct {
	Name        string
	Type        cty.Type
	Description string
	Default     *cty.Value
	Optional    bool
}

// OutputDefinition defines a single output value of a core.
type OutputDefinition struct {
	Name        string
	Type        cty.Type
	Description string
}
