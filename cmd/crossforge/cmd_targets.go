package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/nakurei/crossforge/internal/domain/services"
	"github.com/nakurei/crossforge/internal/external-adapters/yaml"
)

func runTargets(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("targets", flag.ExitOnError)
	configPath := fs.String("config", "targets.yml", "Path to the build plan file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: crossforge targets [options]

List the configured targets with their OS family, architecture, and the
artifact name each one stages.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(2)
	}

	planRepo := yaml.NewPlanRepository(*configPath)
	plan, err := planRepo.GetPlan(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	naming := services.NewNamingService()

	fmt.Printf("Build plan: %s (features: %v, output: %s)\n\n", plan.Binary, plan.Features, plan.OutputDir)
	for _, target := range plan.Targets {
		state := ""
		if !target.Enabled {
			state = "  [disabled]"
		}
		fmt.Printf("  %-32s os=%-8s arch=%-8s -> %s%s\n",
			target.Triple, target.OS, target.Arch,
			naming.StagedName(plan.Binary, target), state)
	}
}
