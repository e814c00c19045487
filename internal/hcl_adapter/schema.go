package hcl_adapter

import (
	"github.com/hashicorp/hcl/v2"
)

// fileRoot decodes every top-level block a build file or manifest may hold.
type fileRoot struct {
	Cores     []*CoreDefinition `hcl:"core,block"`
	Instances []*Instance       `hcl:"ip,block"`
	Remain    hcl.Body          `hcl:",remain"`
}

// InstanceArgs is the content of the `arguments` block of an ip.
type InstanceArgs struct {
	Body hcl.Body `hcl:",remain"`
}

// Instance is an `ip "<core>" "<name>"` block of a build file.
type Instance struct {
	CoreType  string        `hcl:"core_type,label"`
	Name      string        `hcl:"name,label"`
	Arguments *InstanceArgs `hcl:"arguments,block"`
	DependsOn []string      `hcl:"depends_on,optional"`
}

// Lifecycle maps the generate event to a registered Go generator.
type Lifecycle struct {
	OnGenerate string `hcl:"on_generate"`
}

// InputDefinition is an `input` block of a manifest.
type InputDefinition struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type"`
	Description string         `hcl:"description,optional"`
	Default     hcl.Expression `hcl:"default,optional"`
}

// OutputDefinition is an `output` block of a manifest.
type OutputDefinition struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type"`
	Description string         `hcl:"description,optional"`
}

// CoreDefinition is the `core "<type>"` block of a manifest.
type CoreDefinition struct {
	Type        string              `hcl:"type,label"`
	Description string              `hcl:"description,optional"`
	Lifecycle   *Lifecycle          `hcl:"lifecycle,block"`
	Inputs      []*InputDefinition  `hcl:"input,block"`
	Outputs     []*OutputDefinition `hcl:"output,block"`
}
