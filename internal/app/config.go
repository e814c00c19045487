package app

import (
	"errors"
	"fmt"
)

// Config holds everything one App needs to run a build.
type Config struct {
	// BuildPath is a build file or a directory of build files.
	BuildPath string
	BuildDir  string
	BuildName string
	// Header is an optional extra comment line for generated files.
	Header string

	LogFormat string
	LogLevel  string

	// DryRun generates everything in memory but writes nothing.
	DryRun bool
	// List only prints the catalog; BuildPath may be empty.
	List bool
}

// NewConfig validates cfg and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.BuildPath == "" && !cfg.List {
		return nil, errors.New("a build file or directory is required")
	}
	if !cfg.List {
		if cfg.BuildDir == "" {
			return nil, errors.New("build directory cannot be empty")
		}
		if cfg.BuildName == "" {
			return nil, errors.New("build name cannot be empty")
		}
		if !validBuildName(cfg.BuildName) {
			return nil, fmt.Errorf("build name %q must not contain path separators", cfg.BuildName)
		}
	}
	return &cfg, nil
}

func validBuildName(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	for _, r := range name {
		if r == '/' || r == '\\' {
			return false
		}
	}
	return true
}
