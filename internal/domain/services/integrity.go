package services

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/nakurei/crossforge/internal/domain/entities"
	"github.com/nakurei/crossforge/internal/domain/interfaces"
	"github.com/nakurei/crossforge/internal/filelock"
)

// builderID identifies this driver in generated manifests.
const builderID = "github.com/nakurei/crossforge"

// IntegrityService generates checksum sidecar files and the run manifest for
// staged artifacts.
type IntegrityService struct {
	logger interfaces.Logger
}

// NewIntegrityService creates a new integrity service
func NewIntegrityService(logger interfaces.Logger) *IntegrityService {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &IntegrityService{logger: logger}
}

// NewManifest starts a manifest for one driver run with a fresh run ID.
func (s *IntegrityService) NewManifest(binary string) *entities.Manifest {
	return &entities.Manifest{
		RunID:     uuid.New().String(),
		Builder:   builderID,
		Binary:    binary,
		StartedAt: time.Now().UTC(),
	}
}

// AttachChecksums computes SHA256 and SHA512 digests for the artifact, writes
// sha256sum-compatible sidecar files next to it, and records the digests on
// the artifact.
func (s *IntegrityService) AttachChecksums(artifact *entities.Artifact) error {
	sum256, err := hashFile(artifact.Path, sha256.New())
	if err != nil {
		return fmt.Errorf("failed to hash %s: %w", artifact.Name, err)
	}
	sum512, err := hashFile(artifact.Path, sha512.New())
	if err != nil {
		return fmt.Errorf("failed to hash %s: %w", artifact.Name, err)
	}

	for ext, sum := range map[string]string{".sha256": sum256, ".sha512": sum512} {
		sidecar := artifact.Path + ext
		content := fmt.Sprintf("%s  %s\n", sum, filepath.Base(artifact.Path))
		if err := os.WriteFile(sidecar, []byte(content), 0600); err != nil {
			return fmt.Errorf("failed to write checksum file: %w", err)
		}
	}

	artifact.SHA256 = sum256
	artifact.SHA512 = sum512
	s.logger.Debug("checksums written",
		interfaces.F("artifact", artifact.Name),
		interfaces.F("sha256", sum256))
	return nil
}

// WriteManifest finalizes the manifest and writes it as manifest.json in the
// distribution directory, overwriting any manifest from a prior run.
func (s *IntegrityService) WriteManifest(manifest *entities.Manifest, outputDir string) (string, error) {
	manifest.FinishedAt = time.Now().UTC()

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal manifest: %w", err)
	}

	// Atomic write so a concurrent reader never sees a truncated manifest.
	manifestPath := filepath.Join(outputDir, "manifest.json")
	if err := filelock.AtomicWrite(manifestPath, data); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}

	return manifestPath, nil
}

// VerifyChecksum recomputes a file's digest and compares it against the
// expected hex sum. The algorithm is picked from the sum length (64 hex chars
// for SHA256, 128 for SHA512).
func (s *IntegrityService) VerifyChecksum(filePath, expectedSum string) error {
	var h hash.Hash
	switch len(expectedSum) {
	case 64:
		h = sha256.New()
	case 128:
		h = sha512.New()
	default:
		return fmt.Errorf("unrecognized checksum length %d", len(expectedSum))
	}

	actual, err := hashFile(filePath, h)
	if err != nil {
		return fmt.Errorf("failed to hash file: %w", err)
	}
	if actual != expectedSum {
		return fmt.Errorf("checksum mismatch: expected %s, got %s", expectedSum, actual)
	}
	return nil
}

func hashFile(filePath string, h hash.Hash) (string, error) {
	//nolint:gosec // G304: filePath is a staged artifact path
	f, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
