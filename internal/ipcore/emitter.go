package ipcore

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/vk/ipforge/internal/hdl"
)

// File is one generated artifact, relative to the build output directory.
type File struct {
	Path    string
	Content string
}

// Emitter collects the artifacts one IP instance produces. Generators never
// touch the filesystem; the app writes Files() once the whole build succeeds.
type Emitter struct {
	core    string
	name    string
	header  []string
	baseDir string
	files   []File
	paths   map[string]struct{}
}

// NewEmitter creates the sink for instance `name` of core `core`. Extra
// header lines are appended to the standard generated-file banner.
func NewEmitter(core, name string, extraHeader ...string) *Emitter {
	header := []string{
		fmt.Sprintf("Generated by ipforge: ip %q %q.", core, name),
		"Do not edit by hand; regenerate from the build file instead.",
	}
	for _, h := range extraHeader {
		if h != "" {
			header = append(header, h)
		}
	}
	return &Emitter{core: core, name: name, header: header, paths: make(map[string]struct{})}
}

// Name is the instance name. Generators use it as the top module name.
func (e *Emitter) Name() string { return e.name }

// Core is the core type being generated.
func (e *Emitter) Core() string { return e.core }

// SetBaseDir sets the directory relative input paths are resolved against,
// normally the directory of the build file declaring the instance.
func (e *Emitter) SetBaseDir(dir string) { e.baseDir = dir }

// Resolve maps an input file path given in the build file to a filesystem
// path.
func (e *Emitter) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || e.baseDir == "" {
		return p
	}
	return filepath.Join(e.baseDir, p)
}

// Header returns the comment lines every generated source starts with.
func (e *Emitter) Header() []string {
	return append([]string(nil), e.header...)
}

// AddFile records an artifact. rel must be a relative, slash-separated path
// that stays inside the output directory and was not added before.
func (e *Emitter) AddFile(rel, content string) error {
	clean := path.Clean(rel)
	if rel == "" || path.IsAbs(clean) || clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("ip %s.%s: invalid artifact path %q", e.core, e.name, rel)
	}
	if _, dup := e.paths[clean]; dup {
		return fmt.Errorf("ip %s.%s: artifact %q emitted twice", e.core, e.name, clean)
	}
	e.paths[clean] = struct{}{}
	e.files = append(e.files, File{Path: clean, Content: content})
	return nil
}

// AddVerilog renders m with the standard header and records it as
// src/<module>.v.
func (e *Emitter) AddVerilog(m *hdl.Module) error {
	m.Header = append(e.Header(), m.Header...)
	src, err := hdl.Render(m)
	if err != nil {
		return fmt.Errorf("ip %s.%s: %w", e.core, e.name, err)
	}
	return e.AddFile(path.Join("src", m.Name+".v"), src)
}

// Files returns the recorded artifacts in emission order.
func (e *Emitter) Files() []File {
	return append([]File(nil), e.files...)
}
