package hdl

import (
	"fmt"
	"strings"
)

// Direction is the direction of a module or primitive port.
type Direction int

const (
	Input Direction = iota
	Output
	Inout
)

// String returns the Verilog keyword for the direction.
func (d Direction) String() string {
	switch d {
	case Output:
		return "output"
	case Inout:
		return "inout"
	default:
		return "input"
	}
}

// Port is a port of a generated module.
type Port struct {
	Name    string
	Dir     Direction
	Width   int
	Reg     bool
	Comment string
}

// Decl returns the ANSI-style declaration of the port, without separator.
func (p Port) Decl() string {
	kind := "wire"
	if p.Reg {
		kind = "reg"
	}
	decl := fmt.Sprintf("%-6s %-4s", p.Dir, kind)
	if r := Range(p.Width); r != "" {
		decl += " " + r
	}
	return decl + " " + p.Name
}

// Signal is an internal wire or reg.
type Signal struct {
	Name    string
	Width   int
	Comment string
}

// Param is a named parameter value. Value is emitted verbatim, so string
// values must already be quoted (see Str).
type Param struct {
	Name  string
	Value string
}

// Conn connects an instance port to a net expression. An empty Expr leaves
// the port explicitly unconnected.
type Conn struct {
	Port string
	Expr string
}

// Instance is a primitive instantiation.
type Instance struct {
	Primitive string
	Name      string
	Comment   string
	Params    []Param
	Conns     []Conn
}

// Loop replicates one instance Count times inside a generate-for block. The
// instance's connections may index buses with Var.
type Loop struct {
	Var      string
	Label    string
	Count    int
	Instance Instance
}

// Assign is a continuous assignment.
type Assign struct {
	LHS string
	RHS string
}

// Module is a complete generated Verilog module.
type Module struct {
	Name        string
	Header      []string
	Ports       []Port
	Localparams []Param
	Wires       []Signal
	Regs        []Signal
	Instances   []Instance
	Loops       []Loop
	Assigns     []Assign
	// Blocks are emitted verbatim after the instances; each entry is a full
	// procedural or generate block, already indented.
	Blocks []string
}

// AddPort appends a port.
func (m *Module) AddPort(name string, dir Direction, width int, comment string) {
	m.Ports = append(m.Ports, Port{Name: name, Dir: dir, Width: width, Comment: comment})
}

// AddWire appends an internal wire.
func (m *Module) AddWire(name string, width int) {
	m.Wires = append(m.Wires, Signal{Name: name, Width: width})
}

// AddReg appends an internal reg.
func (m *Module) AddReg(name string, width int) {
	m.Regs = append(m.Regs, Signal{Name: name, Width: width})
}

// AddAssign appends `assign lhs = rhs;`.
func (m *Module) AddAssign(lhs, rhs string) {
	m.Assigns = append(m.Assigns, Assign{LHS: lhs, RHS: rhs})
}

// AddBlock appends a verbatim block.
func (m *Module) AddBlock(lines ...string) {
	m.Blocks = append(m.Blocks, strings.Join(lines, "\n"))
}

// Port returns the named port.
func (m *Module) Port(name string) (Port, bool) {
	for _, p := range m.Ports {
		if p.Name == name {
			return p, true
		}
	}
	return Port{}, false
}

// Instance returns the named instance.
func (m *Module) Instance(name string) (Instance, bool) {
	for _, in := range m.Instances {
		if in.Name == name {
			return in, true
		}
	}
	return Instance{}, false
}

// InstancesOf returns every instance of the given primitive, in order.
func (m *Module) InstancesOf(primitive string) []Instance {
	var out []Instance
	for _, in := range m.Instances {
		if in.Primitive == primitive {
			out = append(out, in)
		}
	}
	return out
}

// Param returns the value of the named parameter on an instance.
func (in Instance) Param(name string) (string, bool) {
	for _, p := range in.Params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// Conn returns the expression driving or driven by the named port.
func (in Instance) Conn(port string) (string, bool) {
	for _, c := range in.Conns {
		if c.Port == port {
			return c.Expr, true
		}
	}
	return "", false
}

// Validate checks names and checks every instance, looped ones included,
// against the primitive library. The primitive must exist, parameters and
// ports must be declared, no port may be connected twice and every input
// must be driven.
func (m *Module) Validate() error {
	var errs []string
	if !IsIdentifier(m.Name) {
		errs = append(errs, fmt.Sprintf("module name %q is not a valid identifier", m.Name))
	}

	names := make(map[string]string)
	claim := func(kind, name string) {
		if !IsIdentifier(name) {
			errs = append(errs, fmt.Sprintf("%s name %q is not a valid identifier", kind, name))
			return
		}
		if prev, ok := names[name]; ok {
			errs = append(errs, fmt.Sprintf("%s %q collides with %s of the same name", kind, name, prev))
			return
		}
		names[name] = kind
	}
	for _, p := range m.Ports {
		claim("port", p.Name)
	}
	for _, w := range m.Wires {
		claim("wire", w.Name)
	}
	for _, r := range m.Regs {
		claim("reg", r.Name)
	}

	for _, in := range m.Instances {
		claim("instance", in.Name)
		errs = append(errs, checkInstance(in)...)
	}
	for _, l := range m.Loops {
		claim("genvar", l.Var)
		claim("generate block", l.Label)
		if l.Count < 1 {
			errs = append(errs, fmt.Sprintf("generate block %q: count must be positive, got %d", l.Label, l.Count))
		}
		if !IsIdentifier(l.Instance.Name) {
			errs = append(errs, fmt.Sprintf("instance name %q is not a valid identifier", l.Instance.Name))
		}
		errs = append(errs, checkInstance(l.Instance)...)
	}

	if len(errs) > 0 {
		return fmt.Errorf("module %s is invalid:\n- %s", m.Name, strings.Join(errs, "\n- "))
	}
	return nil
}

func checkInstance(in Instance) []string {
	prim, ok := LookupPrimitive(in.Primitive)
	if !ok {
		return []string{fmt.Sprintf("instance %q: unknown primitive %q", in.Name, in.Primitive)}
	}
	var errs []string
	for _, p := range in.Params {
		if !prim.HasParam(p.Name) {
			errs = append(errs, fmt.Sprintf("instance %q: primitive %s has no parameter %q", in.Name, prim.Name, p.Name))
		}
	}
	seen := make(map[string]bool)
	for _, c := range in.Conns {
		if _, ok := prim.Port(c.Port); !ok {
			errs = append(errs, fmt.Sprintf("instance %q: primitive %s has no port %q", in.Name, prim.Name, c.Port))
			continue
		}
		if seen[c.Port] {
			errs = append(errs, fmt.Sprintf("instance %q: port %q connected twice", in.Name, c.Port))
		}
		seen[c.Port] = true
	}
	for _, pp := range prim.Ports {
		if pp.Dir != Output && !seen[pp.Name] {
			errs = append(errs, fmt.Sprintf("instance %q: %s %s.%s is not connected", in.Name, pp.Dir, prim.Name, pp.Name))
		}
	}
	return errs
}
