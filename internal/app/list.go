package app

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/vk/ipforge/internal/config"
)

// ListCores prints the catalog sorted by core type, with each core's inputs
// and their defaults.
func (a *App) ListCores(w io.Writer) error {
	for i, coreType := range a.registry.CoreTypes() {
		def := a.registry.DefinitionRegistry[coreType]
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, coreType)
		if def.Description != "" {
			fmt.Fprintf(w, "  %s\n", strings.TrimSpace(def.Description))
		}

		names := make([]string, 0, len(def.Inputs))
		for name := range def.Inputs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			line, err := a.describeInput(def.Inputs[name])
			if err != nil {
				return fmt.Errorf("core %s: %w", coreType, err)
			}
			fmt.Fprintf(w, "    %s\n", line)
		}
	}
	return nil
}

func (a *App) describeInput(in *config.InputDefinition) (string, error) {
	line := fmt.Sprintf("%s (%s)", in.Name, in.Type.FriendlyName())
	if in.Default == nil || in.Default.IsNull() {
		if !in.Optional {
			line += " required"
		}
	} else {
		v, err := a.converter.ToNative(*in.Default)
		if err != nil {
			return "", err
		}
		if s, ok := v.(string); ok {
			line += fmt.Sprintf(" = %q", s)
		} else {
			line += fmt.Sprintf(" = %v", v)
		}
	}
	if in.Description != "" {
		line += ": " + in.Description
	}
	return line, nil
}
