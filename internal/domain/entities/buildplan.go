package entities

// BuildPlan describes one full driver run: which binary to build, with which
// feature flags, for which ordered sequence of targets, and where the staged
// artifacts go. Plans come from targets.yml or from the embedded defaults.
type BuildPlan struct {
	Binary     string   // Crate binary name (default "file-search")
	Features   []string // Cargo feature flags (default ["cli"])
	OutputDir  string   // Flat distribution directory (default "dist")
	TargetRoot string   // Cargo target directory (default "target")
	Targets    []Target // Ordered; order is the build order
}

// EnabledTargets returns the plan's targets with disabled entries filtered
// out, preserving order.
func (p *BuildPlan) EnabledTargets() []Target {
	enabled := make([]Target, 0, len(p.Targets))
	for _, t := range p.Targets {
		if t.Enabled {
			enabled = append(enabled, t)
		}
	}
	return enabled
}
