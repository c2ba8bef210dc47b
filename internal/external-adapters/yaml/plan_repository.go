package yaml

import (
	"context"
	"fmt"
	"os"

	"github.com/nakurei/crossforge/internal/domain/entities"
)

// PlanRepository implements repositories.TargetRepository using a targets.yml file
type PlanRepository struct {
	configPath string
	parser     *PlanParser
}

// NewPlanRepository creates a new YAML-based plan repository reading from
// configPath (normally "targets.yml" in the working directory).
func NewPlanRepository(configPath string) *PlanRepository {
	return &PlanRepository{
		configPath: configPath,
		parser:     NewPlanParser(),
	}
}

// GetPlan loads the build plan from the configuration file. A missing file is
// not an error: the embedded default plan is returned, preserving the
// zero-configuration invocation. A malformed file is an error.
func (r *PlanRepository) GetPlan(_ context.Context) (*entities.BuildPlan, error) {
	//nolint:gosec // G304: configPath is the operator-provided plan path
	data, err := os.ReadFile(r.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultPlan(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", r.configPath, err)
	}

	plan, err := r.parser.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid build plan %s: %w", r.configPath, err)
	}
	return plan, nil
}
