// Package gateways contains adapters that drive external toolchain processes.
package gateways

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/nakurei/crossforge/internal/domain/entities"
	"github.com/nakurei/crossforge/internal/domain/interfaces"
)

// RustupGateway registers platform targets with the Rust toolchain
type RustupGateway struct {
	rustupPath string
	logger     interfaces.Logger
}

// NewRustupGateway creates a new rustup gateway. The rustup binary can be
// overridden through the RUSTUP environment variable.
func NewRustupGateway(logger interfaces.Logger) *RustupGateway {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	path := os.Getenv("RUSTUP")
	if path == "" {
		path = "rustup"
	}
	return &RustupGateway{rustupPath: path, logger: logger}
}

// EnsureTarget runs `rustup target add <triple>`. Failures are swallowed by
// contract: the target is usually already installed, and a genuinely broken
// toolchain surfaces on the compile step anyway. The failure is logged at
// warn level so operators can still see it.
func (g *RustupGateway) EnsureTarget(ctx context.Context, target entities.Target) {
	cmd := exec.CommandContext(ctx, g.rustupPath, "target", "add", target.Triple)

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		g.logger.Warn("target registration failed (ignored)",
			interfaces.F("triple", target.Triple),
			interfaces.F("error", err),
			interfaces.F("output", strings.TrimSpace(output.String())))
		return
	}

	g.logger.Debug("target registered", interfaces.F("triple", target.Triple))
}
