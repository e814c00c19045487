package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/ipforge/internal/config"
	"github.com/vk/ipforge/internal/ctxlog"
	"github.com/vk/ipforge/internal/registry"
)

// App is one configured build: its logger, registry and loaded model.
type App struct {
	outW      io.Writer
	cfg       *Config
	logger    *slog.Logger
	registry  *registry.Registry
	model     *config.Model
	converter config.Converter
}

// NewApp registers the catalog modules (the compiled-in catalog when none
// are given), loads their manifests together with the build files, and
// validates that manifests and generators agree. Load and validation errors
// are fatal and panic; callers recover them at the process boundary.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All Go modules registered.", "count", len(modules))

	var paths []string
	if cfg.BuildPath != "" {
		paths = append(paths, cfg.BuildPath)
	}
	model, converter, err := loader.Load(ctx, reg.Sources(), paths...)
	if err != nil {
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	logger.Debug("Configuration loaded.", "cores", len(model.Cores), "instances", len(model.Build.Instances))

	reg.PopulateDefinitionsFromModel(model)
	if err := reg.ValidateRegistry(ctx); err != nil {
		// Manifest and Go code disagree; nothing a build file can fix.
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:      outW,
		cfg:       cfg,
		logger:    logger,
		registry:  reg,
		model:     model,
		converter: converter,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
