// Package repositories defines interfaces for data access layers.
package repositories

import (
	"context"

	"github.com/nakurei/crossforge/internal/domain/entities"
)

// TargetRepository defines the interface for loading build plans
type TargetRepository interface {
	// GetPlan loads the build plan (targets, binary name, features, output dir).
	// Implementations fall back to the embedded default plan when no
	// configuration exists.
	GetPlan(ctx context.Context) (*entities.BuildPlan, error)
}
