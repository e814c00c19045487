package app

import (
	"fmt"

	"github.com/vk/ipforge/internal/executor"
	"github.com/vk/ipforge/internal/fsutil"
	"gopkg.in/yaml.v2"
)

// Report is the machine-readable summary of a build.
type Report struct {
	Build     string           `yaml:"build"`
	Instances []InstanceReport `yaml:"instances"`
}

// InstanceReport describes one generated instance.
type InstanceReport struct {
	Name    string         `yaml:"name"`
	Core    string         `yaml:"core"`
	Module  string         `yaml:"module,omitempty"`
	Files   []string       `yaml:"files"`
	Outputs map[string]any `yaml:"outputs,omitempty"`
}

func (a *App) buildReport(results []*executor.Result) (*Report, error) {
	rep := &Report{Build: a.cfg.BuildName}
	for _, res := range results {
		ir := InstanceReport{Name: res.Name, Core: res.CoreType}
		for _, f := range res.Files {
			ir.Files = append(ir.Files, f.Path)
		}

		native, err := a.converter.ToNative(res.Output)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to convert outputs: %w", res.ID, err)
		}
		if outputs, ok := native.(map[string]any); ok {
			ir.Outputs = outputs
			if name, ok := outputs["module_name"].(string); ok {
				ir.Module = name
			}
		}
		rep.Instances = append(rep.Instances, ir)
	}
	return rep, nil
}

func writeReport(outDir string, rep *Report) (string, error) {
	data, err := yaml.Marshal(rep)
	if err != nil {
		return "", fmt.Errorf("failed to encode build report: %w", err)
	}
	path, err := fsutil.WriteFile(outDir, ReportFile, string(data))
	if err != nil {
		return "", fmt.Errorf("failed to write build report: %w", err)
	}
	return path, nil
}
