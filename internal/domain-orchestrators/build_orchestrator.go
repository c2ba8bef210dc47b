// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nakurei/crossforge/internal/domain/entities"
	"github.com/nakurei/crossforge/internal/domain/interfaces"
	"github.com/nakurei/crossforge/internal/domain/interfaces/gateways"
	"github.com/nakurei/crossforge/internal/domain/services"
	"github.com/nakurei/crossforge/internal/filelock"
)

// lockFileName is the flock guard inside the distribution directory.
const lockFileName = ".crossforge.lock"

// BuildOrchestrator drives the sequential cross-target build workflow:
// for each enabled target, ensure toolchain support, release-build, stage
// the binary, and attach integrity artifacts. The first fatal error aborts
// the remaining targets; target registration failures never do.
type BuildOrchestrator struct {
	installer     gateways.TargetInstaller
	compiler      gateways.Compiler
	stager        gateways.Stager
	integrity     *services.IntegrityService
	logger        interfaces.Logger
	skipChecksums bool
}

// BuildOrchestratorConfig holds configuration for the orchestrator
type BuildOrchestratorConfig struct {
	SkipChecksums bool
}

// NewBuildOrchestrator creates a new build orchestrator
func NewBuildOrchestrator(
	installer gateways.TargetInstaller,
	compiler gateways.Compiler,
	stager gateways.Stager,
	integrity *services.IntegrityService,
	logger interfaces.Logger,
	config BuildOrchestratorConfig,
) *BuildOrchestrator {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &BuildOrchestrator{
		installer:     installer,
		compiler:      compiler,
		stager:        stager,
		integrity:     integrity,
		logger:        logger,
		skipChecksums: config.SkipChecksums,
	}
}

// RunResult contains the outcome of one driver run
type RunResult struct {
	Manifest      *entities.Manifest
	ManifestPath  string
	BuiltTargets  int
	TotalTargets  int
	TotalDuration time.Duration
	Success       bool
	Error         error
}

// Summary returns a human-readable summary of the run
func (r *RunResult) Summary() string {
	if !r.Success {
		return fmt.Sprintf("Build failed after %d/%d targets: %v",
			r.BuiltTargets, r.TotalTargets, r.Error)
	}
	return fmt.Sprintf("Build complete: %d/%d targets in %v",
		r.BuiltTargets, r.TotalTargets, r.TotalDuration.Round(time.Millisecond))
}

// BuildAll executes the full build workflow for every enabled target in the
// plan, in plan order. Execution is strictly sequential: each target's
// toolchain invocation runs to completion before the next target begins.
func (o *BuildOrchestrator) BuildAll(ctx context.Context, plan *entities.BuildPlan) (*RunResult, error) {
	startTime := time.Now()

	targets := plan.EnabledTargets()
	result := &RunResult{TotalTargets: len(targets)}

	if err := os.MkdirAll(plan.OutputDir, 0750); err != nil {
		result.Error = fmt.Errorf("failed to create output directory: %w", err)
		return result, result.Error
	}

	// The distribution directory is the only shared resource. Hold an
	// exclusive lock for the run so two operator invocations cannot
	// interleave writes.
	lock := filelock.NewFileLock(filepath.Join(plan.OutputDir, lockFileName))
	acquired, err := lock.TryLock()
	if err != nil {
		result.Error = fmt.Errorf("failed to lock output directory: %w", err)
		return result, result.Error
	}
	if !acquired {
		result.Error = fmt.Errorf("output directory %s is locked by another build", plan.OutputDir)
		return result, result.Error
	}
	//nolint:errcheck // Unlock on exit; the lock file stays behind
	defer lock.Unlock()

	manifest := o.integrity.NewManifest(plan.Binary)
	result.Manifest = manifest

	for i, target := range targets {
		o.logger.Info("building target",
			interfaces.F("triple", target.Triple),
			interfaces.F("step", fmt.Sprintf("%d/%d", i+1, len(targets))))

		// Step 1: register the target with the toolchain. Non-fatal by
		// contract; the gateway logs and swallows failures.
		o.installer.EnsureTarget(ctx, target)

		// Step 2: release build. Fatal: everything after depends on it.
		if err := o.compiler.BuildRelease(ctx, plan, target); err != nil {
			result.Error = err
			result.TotalDuration = time.Since(startTime)
			return result, result.Error
		}

		// Step 3: stage the binary under its platform-qualified name.
		artifact, err := o.stager.Stage(ctx, plan, target)
		if err != nil {
			result.Error = err
			result.TotalDuration = time.Since(startTime)
			return result, result.Error
		}

		if !o.skipChecksums {
			if err := o.integrity.AttachChecksums(artifact); err != nil {
				result.Error = err
				result.TotalDuration = time.Since(startTime)
				return result, result.Error
			}
		}

		manifest.Artifacts = append(manifest.Artifacts, *artifact)
		result.BuiltTargets++

		o.logger.Info("staged artifact",
			interfaces.F("name", artifact.Name),
			interfaces.F("size", artifact.Size))
	}

	manifestPath, err := o.integrity.WriteManifest(manifest, plan.OutputDir)
	if err != nil {
		result.Error = err
		result.TotalDuration = time.Since(startTime)
		return result, result.Error
	}
	result.ManifestPath = manifestPath

	result.Success = true
	result.TotalDuration = time.Since(startTime)
	return result, nil
}
