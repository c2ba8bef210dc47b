// Package main provides the crossforge CLI, a cross-target build driver for
// the file-search binary.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/nakurei/crossforge/internal/domain-adapters/gateways"
	orchestrators "github.com/nakurei/crossforge/internal/domain-orchestrators"
	"github.com/nakurei/crossforge/internal/domain/interfaces/repositories"
	"github.com/nakurei/crossforge/internal/domain/services"
	"github.com/nakurei/crossforge/internal/external-adapters/yaml"
	"github.com/nakurei/crossforge/internal/ui"
)

func runBuild(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	var (
		configPath    = fs.String("config", "targets.yml", "Path to the build plan file")
		outputDir     = fs.String("output-dir", "", "Override the distribution directory")
		targetRoot    = fs.String("target-root", "", "Override the cargo target directory")
		skipChecksums = fs.Bool("skip-checksums", false, "Skip checksum sidecar generation")
		quiet         = fs.Bool("quiet", false, "Quiet mode - minimal output")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: crossforge build [options]

Cross-compile file-search for every configured target, in order, and stage
the binaries into the distribution directory under platform-qualified names.
Without a targets.yml the embedded default target set is used, so a bare
"crossforge build" needs no arguments at all.

The first failing compile aborts the whole run; artifacts staged before the
failure are left in place. Target registration failures are ignored.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  crossforge build
  crossforge build --config ci-targets.yml --output-dir out
  crossforge build --skip-checksums --quiet
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(2)
	}

	// Load the build plan
	var planRepo repositories.TargetRepository = yaml.NewPlanRepository(*configPath)
	plan, err := planRepo.GetPlan(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if *outputDir != "" {
		plan.OutputDir = *outputDir
	}
	if *targetRoot != "" {
		plan.TargetRoot = *targetRoot
	}

	logger := ui.NewConsoleLogger(os.Stderr, *quiet)

	// Initialize toolchain gateways
	cargo := gateways.NewCargoGateway(logger)
	if err := cargo.CheckTool(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	rustup := gateways.NewRustupGateway(logger)
	stager := gateways.NewArtifactStager(plan.OutputDir)
	integrity := services.NewIntegrityService(logger)

	orch := orchestrators.NewBuildOrchestrator(
		rustup,
		cargo,
		stager,
		integrity,
		logger,
		orchestrators.BuildOrchestratorConfig{
			SkipChecksums: *skipChecksums,
		},
	)

	if !*quiet {
		fmt.Printf("Building %s for %d targets\n\n", plan.Binary, len(plan.EnabledTargets()))
	}

	result, err := orch.BuildAll(ctx, plan)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\n❌ %s\n", result.Summary())
		os.Exit(1)
	}

	if !*quiet {
		fmt.Printf("\n✅ %s\n", result.Summary())
	}

	// Final confirmation: list the distribution directory contents.
	names, err := stager.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to list distribution directory: %v\n", err)
		return
	}
	if !*quiet {
		fmt.Printf("\nContents of %s:\n", plan.OutputDir)
		for _, name := range names {
			fmt.Printf("  %s\n", name)
		}
	}
}
