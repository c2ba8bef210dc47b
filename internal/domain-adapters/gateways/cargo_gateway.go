package gateways

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/nakurei/crossforge/internal/domain/entities"
	"github.com/nakurei/crossforge/internal/domain/interfaces"
)

// CargoGateway performs release-mode builds through the cargo toolchain
type CargoGateway struct {
	cargoPath string
	logger    interfaces.Logger
}

// NewCargoGateway creates a new cargo gateway. The cargo binary can be
// overridden through the CARGO environment variable.
func NewCargoGateway(logger interfaces.Logger) *CargoGateway {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	path := os.Getenv("CARGO")
	if path == "" {
		path = "cargo"
	}
	return &CargoGateway{cargoPath: path, logger: logger}
}

// CheckTool verifies that the cargo binary is reachable. Called once before
// a run so a missing toolchain fails before any target is attempted.
func (g *CargoGateway) CheckTool() error {
	if _, err := exec.LookPath(g.cargoPath); err != nil {
		return fmt.Errorf("%s not found in PATH", g.cargoPath)
	}
	return nil
}

// BuildRelease runs `cargo build --release --features <flags> --target
// <triple>`, blocking until the toolchain exits. A non-zero exit is returned
// as an error carrying the tail of the captured output; the caller treats it
// as fatal for the whole run.
func (g *CargoGateway) BuildRelease(ctx context.Context, plan *entities.BuildPlan, target entities.Target) error {
	args := []string{"build", "--release", "--target", target.Triple}
	if len(plan.Features) > 0 {
		args = append(args, "--features", strings.Join(plan.Features, ","))
	}
	if plan.TargetRoot != "" {
		args = append(args, "--target-dir", plan.TargetRoot)
	}

	g.logger.Debug("invoking toolchain",
		interfaces.F("cmd", g.cargoPath+" "+strings.Join(args, " ")))

	cmd := exec.CommandContext(ctx, g.cargoPath, args...)

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("cargo build failed for %s: %w\n%s",
			target.Triple, err, tailLines(output.String(), 20))
	}

	return nil
}

// tailLines returns the last n lines of s, trimmed.
func tailLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
