// Package services contains domain logic shared between commands and orchestrators.
package services

import (
	"path/filepath"

	"github.com/nakurei/crossforge/internal/domain/entities"
)

// NamingService maps targets to artifact filenames and toolchain output paths.
// Both mappings are pure functions of the binary name and the target; the
// executable suffix is decided by the target's OS family tag.
type NamingService struct{}

// NewNamingService creates a new naming service
func NewNamingService() *NamingService {
	return &NamingService{}
}

// StagedName returns the platform-qualified filename an artifact gets in the
// distribution directory: <binary>-<triple> with ".exe" appended for Windows
// targets.
func (s *NamingService) StagedName(binary string, target entities.Target) string {
	return binary + "-" + target.Triple + target.ExeSuffix()
}

// BuiltPath returns the path where the toolchain places the compiled binary:
// <targetRoot>/<triple>/release/<binary>[.exe]. The layout is imposed by
// cargo, not chosen here.
func (s *NamingService) BuiltPath(targetRoot, binary string, target entities.Target) string {
	return filepath.Join(targetRoot, target.Triple, "release", binary+target.ExeSuffix())
}
