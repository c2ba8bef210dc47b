// Package gateways defines interfaces for external toolchain adapters.
package gateways

import (
	"context"

	"github.com/nakurei/crossforge/internal/domain/entities"
)

// TargetInstaller registers platform targets with the build toolchain
type TargetInstaller interface {
	// EnsureTarget makes the target's standard library available to the
	// toolchain. Failures are swallowed by contract: the target may already
	// be installed, and the subsequent compile surfaces any real problem.
	EnsureTarget(ctx context.Context, target entities.Target)
}

// Compiler performs release builds for a single target
type Compiler interface {
	// BuildRelease runs a release-mode build of the plan's binary for the
	// given target with the plan's feature flags enabled. A non-zero exit
	// from the toolchain is returned as an error; callers treat it as fatal.
	BuildRelease(ctx context.Context, plan *entities.BuildPlan, target entities.Target) error
}

// Stager copies built binaries into the flat distribution directory
type Stager interface {
	// Stage copies the compiled binary for the target from the toolchain's
	// per-target output path into the distribution directory under its
	// platform-qualified name, overwriting any prior artifact.
	Stage(ctx context.Context, plan *entities.BuildPlan, target entities.Target) (*entities.Artifact, error)

	// List returns the filenames currently present in the distribution
	// directory, sorted.
	List() ([]string, error)
}
