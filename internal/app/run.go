package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/vk/ipforge/internal/ctxlog"
	"github.com/vk/ipforge/internal/dag"
	"github.com/vk/ipforge/internal/executor"
	"github.com/vk/ipforge/internal/fsutil"
)

// ReportFile is the name of the build report written next to the sources.
const ReportFile = "ipforge-build.yaml"

// OutputDir is where a build writes its artifacts.
func (a *App) OutputDir() string {
	return filepath.Join(a.cfg.BuildDir, a.cfg.BuildName)
}

// Run generates every instance of the build. Nothing is written unless all
// generators succeed, and nothing at all in dry-run mode.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	graph, err := dag.Build(ctx, a.model, a.registry)
	if err != nil {
		return fmt.Errorf("failed to build dependency graph: %w", err)
	}
	nodes := graph.Nodes()
	if len(nodes) == 0 {
		a.logger.Warn("No ip instances found, nothing to generate.")
		return nil
	}

	var header []string
	if a.cfg.Header != "" {
		header = append(header, a.cfg.Header)
	}

	a.logger.Info("🚀 Generating IP instances...", "count", len(nodes))
	exec := executor.New(graph, a.model, a.registry, a.converter, header...)
	results, err := exec.Execute(ctx)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}
	if err := checkArtifactPaths(results); err != nil {
		return err
	}

	rep, err := a.buildReport(results)
	if err != nil {
		return err
	}

	outDir := a.OutputDir()
	if a.cfg.DryRun {
		for _, res := range results {
			for _, f := range res.Files {
				a.logger.Info("Dry run, not writing.", "path", filepath.Join(outDir, filepath.FromSlash(f.Path)))
			}
		}
		a.logger.Info("🏁 Dry run finished.", "instances", len(results))
		return nil
	}

	written := 0
	for _, res := range results {
		for _, f := range res.Files {
			full, err := fsutil.WriteFile(outDir, f.Path, f.Content)
			if err != nil {
				return fmt.Errorf("%s: %w", res.ID, err)
			}
			a.logger.Debug("Wrote artifact.", "path", full)
			written++
		}
	}
	reportPath, err := writeReport(outDir, rep)
	if err != nil {
		return err
	}

	a.logger.Info("🏁 Build finished.", "instances", len(results), "files", written, "report", reportPath)
	return nil
}

// checkArtifactPaths fails when two instances emit the same file, which
// would otherwise leave only the last one on disk.
func checkArtifactPaths(results []*executor.Result) error {
	owner := make(map[string]string)
	for _, res := range results {
		for _, f := range res.Files {
			if prev, dup := owner[f.Path]; dup {
				return fmt.Errorf("artifact %s is emitted by both %s and %s", f.Path, prev, res.ID)
			}
			owner[f.Path] = res.ID
		}
	}
	return nil
}
