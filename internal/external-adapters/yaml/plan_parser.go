// Package yaml provides YAML-based build plan parsing and repository implementations.
package yaml

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/nakurei/crossforge/internal/domain/entities"
)

// yamlPlan represents the raw targets.yml structure
type yamlPlan struct {
	Binary     string       `yaml:"binary"`
	Features   []string     `yaml:"features"`
	OutputDir  string       `yaml:"output_dir"`
	TargetRoot string       `yaml:"target_root"`
	Targets    []yamlTarget `yaml:"targets"`
}

type yamlTarget struct {
	Triple  string `yaml:"triple"`
	Enabled *bool  `yaml:"enabled"` // nil means enabled
}

// PlanParser parses YAML build plan files
type PlanParser struct{}

// NewPlanParser creates a new YAML parser
func NewPlanParser() *PlanParser {
	return &PlanParser{}
}

// Parse parses YAML bytes into a BuildPlan entity. Omitted fields fall back
// to the embedded defaults; the target order in the file is the build order.
func (p *PlanParser) Parse(data []byte) (*entities.BuildPlan, error) {
	var raw yamlPlan
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	plan := DefaultPlan()

	if raw.Binary != "" {
		plan.Binary = raw.Binary
	}
	if raw.Features != nil {
		plan.Features = raw.Features
	}
	if raw.OutputDir != "" {
		plan.OutputDir = raw.OutputDir
	}
	if raw.TargetRoot != "" {
		plan.TargetRoot = raw.TargetRoot
	}

	if len(raw.Targets) > 0 {
		targets := make([]entities.Target, 0, len(raw.Targets))
		for i, yt := range raw.Targets {
			if yt.Triple == "" {
				return nil, fmt.Errorf("target %d is missing a triple", i)
			}
			target := entities.ParseTriple(yt.Triple)
			if yt.Enabled != nil {
				target.Enabled = *yt.Enabled
			}
			targets = append(targets, target)
		}
		plan.Targets = targets
	}

	return plan, nil
}

// defaultTriples is the embedded target set used when no targets.yml exists.
// The order is the build order.
var defaultTriples = []string{
	"x86_64-unknown-linux-gnu",
	"x86_64-pc-windows-msvc",
	"x86_64-apple-darwin",
	"aarch64-apple-darwin",
}

// DefaultPlan returns the embedded default build plan: the file-search binary
// with the cli feature, staged into dist/, for the four stock targets.
func DefaultPlan() *entities.BuildPlan {
	targets := make([]entities.Target, 0, len(defaultTriples))
	for _, triple := range defaultTriples {
		targets = append(targets, entities.ParseTriple(triple))
	}

	return &entities.BuildPlan{
		Binary:     "file-search",
		Features:   []string{"cli"},
		OutputDir:  "dist",
		TargetRoot: "target",
		Targets:    targets,
	}
}
