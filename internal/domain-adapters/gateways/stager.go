package gateways

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/nakurei/crossforge/internal/domain/entities"
	"github.com/nakurei/crossforge/internal/domain/services"
)

// ArtifactStager copies compiled binaries into the flat distribution directory
type ArtifactStager struct {
	outputDir string
	naming    *services.NamingService
}

// NewArtifactStager creates a stager writing into outputDir
func NewArtifactStager(outputDir string) *ArtifactStager {
	if outputDir == "" {
		outputDir = "dist"
	}
	return &ArtifactStager{
		outputDir: outputDir,
		naming:    services.NewNamingService(),
	}
}

// Stage copies the compiled binary for the target from the toolchain's
// per-target release path into the distribution directory under its
// platform-qualified name. Existing artifacts are overwritten, so re-runs
// need no manual cleanup.
func (s *ArtifactStager) Stage(_ context.Context, plan *entities.BuildPlan, target entities.Target) (*entities.Artifact, error) {
	src := s.naming.BuiltPath(plan.TargetRoot, plan.Binary, target)
	name := s.naming.StagedName(plan.Binary, target)
	dst := filepath.Join(s.outputDir, name)

	if err := os.MkdirAll(s.outputDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	size, err := copyFile(src, dst)
	if err != nil {
		return nil, fmt.Errorf("failed to stage %s: %w", target.Triple, err)
	}

	return &entities.Artifact{
		Name:   name,
		Triple: target.Triple,
		Path:   dst,
		Size:   size,
	}, nil
}

// List returns the filenames currently present in the distribution
// directory, sorted. Used for the final confirmation listing.
func (s *ArtifactStager) List() ([]string, error) {
	entries, err := os.ReadDir(s.outputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// copyFile copies src to dst, truncating dst if it exists and preserving the
// executable bit for staged binaries.
func copyFile(src, dst string) (int64, error) {
	//nolint:gosec // G304: src is the toolchain's release output path
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	//nolint:errcheck // Defer close on read-only file
	defer in.Close()

	//nolint:gosec // G302: staged binaries must stay executable
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0755)
	if err != nil {
		return 0, err
	}

	size, err := io.Copy(out, in)
	if err != nil {
		_ = out.Close()
		return 0, err
	}

	if err := out.Close(); err != nil {
		return 0, err
	}
	return size, nil
}
