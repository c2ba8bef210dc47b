package orchestrators

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	adapters "github.com/nakurei/crossforge/internal/domain-adapters/gateways"
	"github.com/nakurei/crossforge/internal/domain/entities"
	"github.com/nakurei/crossforge/internal/domain/interfaces"
	"github.com/nakurei/crossforge/internal/domain/services"
)

// fakeInstaller records registration calls in order.
type fakeInstaller struct {
	registered []string
}

func (f *fakeInstaller) EnsureTarget(_ context.Context, target entities.Target) {
	f.registered = append(f.registered, target.Triple)
}

// fakeCompiler simulates cargo by writing the built binary into the target
// root, and fails on a designated triple.
type fakeCompiler struct {
	failOn string
	built  []string
}

func (f *fakeCompiler) BuildRelease(_ context.Context, plan *entities.BuildPlan, target entities.Target) error {
	if target.Triple == f.failOn {
		return fmt.Errorf("compilation failed for target %s", target.Triple)
	}
	releaseDir := filepath.Join(plan.TargetRoot, target.Triple, "release")
	if err := os.MkdirAll(releaseDir, 0750); err != nil {
		return err
	}
	name := plan.Binary + target.ExeSuffix()
	//nolint:gosec // G306: built binaries are executable
	if err := os.WriteFile(filepath.Join(releaseDir, name), []byte("bin-"+target.Triple), 0755); err != nil {
		return err
	}
	f.built = append(f.built, target.Triple)
	return nil
}

func planWithTriples(tmpDir string, triples ...string) *entities.BuildPlan {
	targets := make([]entities.Target, 0, len(triples))
	for _, triple := range triples {
		targets = append(targets, entities.ParseTriple(triple))
	}
	return &entities.BuildPlan{
		Binary:     "file-search",
		Features:   []string{"cli"},
		OutputDir:  filepath.Join(tmpDir, "dist"),
		TargetRoot: filepath.Join(tmpDir, "target"),
		Targets:    targets,
	}
}

func newTestOrchestrator(plan *entities.BuildPlan, compiler *fakeCompiler) (*BuildOrchestrator, *fakeInstaller) {
	installer := &fakeInstaller{}
	orch := NewBuildOrchestrator(
		installer,
		compiler,
		adapters.NewArtifactStager(plan.OutputDir),
		services.NewIntegrityService(&interfaces.NoOpLogger{}),
		&interfaces.NoOpLogger{},
		BuildOrchestratorConfig{},
	)
	return orch, installer
}

func distNames(t *testing.T, outputDir string) map[string]bool {
	t.Helper()
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		t.Fatalf("Failed to read output dir: %v", err)
	}
	names := make(map[string]bool, len(entries))
	for _, entry := range entries {
		names[entry.Name()] = true
	}
	return names
}

func TestBuildOrchestrator_BuildAll_AllTargets(t *testing.T) {
	tmpDir := t.TempDir()
	plan := planWithTriples(tmpDir,
		"x86_64-unknown-linux-gnu",
		"x86_64-pc-windows-msvc",
		"x86_64-apple-darwin",
		"aarch64-apple-darwin",
	)

	compiler := &fakeCompiler{}
	orch, installer := newTestOrchestrator(plan, compiler)

	result, err := orch.BuildAll(context.Background(), plan)
	if err != nil {
		t.Fatalf("BuildAll() error = %v", err)
	}
	if !result.Success || result.BuiltTargets != 4 {
		t.Errorf("result = %d/%d success=%v, want 4/4 success", result.BuiltTargets, result.TotalTargets, result.Success)
	}

	// Registration and build happen in plan order
	if len(installer.registered) != 4 || installer.registered[0] != "x86_64-unknown-linux-gnu" {
		t.Errorf("registration order = %v", installer.registered)
	}
	for i, triple := range compiler.built {
		if triple != plan.Targets[i].Triple {
			t.Errorf("build order[%d] = %s, want %s", i, triple, plan.Targets[i].Triple)
		}
	}

	names := distNames(t, plan.OutputDir)
	for _, want := range []string{
		"file-search-x86_64-unknown-linux-gnu",
		"file-search-x86_64-pc-windows-msvc.exe",
		"file-search-x86_64-apple-darwin",
		"file-search-aarch64-apple-darwin",
		"manifest.json",
	} {
		if !names[want] {
			t.Errorf("dist is missing %s (have %v)", want, names)
		}
	}
}

func TestBuildOrchestrator_BuildAll_FailFast(t *testing.T) {
	tmpDir := t.TempDir()
	plan := planWithTriples(tmpDir,
		"x86_64-unknown-linux-gnu",
		"x86_64-pc-windows-msvc",
		"x86_64-apple-darwin",
		"aarch64-apple-darwin",
	)

	// Third target fails; the fourth must never build.
	compiler := &fakeCompiler{failOn: "x86_64-apple-darwin"}
	orch, _ := newTestOrchestrator(plan, compiler)

	result, err := orch.BuildAll(context.Background(), plan)
	if err == nil {
		t.Fatal("BuildAll() should fail when a target's compilation fails")
	}
	if result.Success || result.BuiltTargets != 2 {
		t.Errorf("result = %d built, success=%v; want 2 built, failed", result.BuiltTargets, result.Success)
	}
	if len(compiler.built) != 2 {
		t.Errorf("compiler built %v, targets after the failure must not build", compiler.built)
	}

	names := distNames(t, plan.OutputDir)
	if !names["file-search-x86_64-unknown-linux-gnu"] || !names["file-search-x86_64-pc-windows-msvc.exe"] {
		t.Errorf("artifacts before the failure should remain staged, have %v", names)
	}
	if names["file-search-x86_64-apple-darwin"] || names["file-search-aarch64-apple-darwin"] {
		t.Errorf("artifacts at or after the failure must not exist, have %v", names)
	}
	if names["manifest.json"] {
		t.Error("manifest must not be written for a failed run")
	}
}

func TestBuildOrchestrator_BuildAll_SkipsDisabledTargets(t *testing.T) {
	tmpDir := t.TempDir()
	plan := planWithTriples(tmpDir, "x86_64-unknown-linux-gnu", "x86_64-pc-windows-msvc")
	plan.Targets[1].Enabled = false

	compiler := &fakeCompiler{}
	orch, _ := newTestOrchestrator(plan, compiler)

	result, err := orch.BuildAll(context.Background(), plan)
	if err != nil {
		t.Fatalf("BuildAll() error = %v", err)
	}
	if result.TotalTargets != 1 || result.BuiltTargets != 1 {
		t.Errorf("result = %d/%d, disabled target should not count", result.BuiltTargets, result.TotalTargets)
	}
}

func TestBuildOrchestrator_BuildAll_WritesManifest(t *testing.T) {
	tmpDir := t.TempDir()
	plan := planWithTriples(tmpDir, "x86_64-unknown-linux-gnu")

	orch, _ := newTestOrchestrator(plan, &fakeCompiler{})
	result, err := orch.BuildAll(context.Background(), plan)
	if err != nil {
		t.Fatalf("BuildAll() error = %v", err)
	}

	data, err := os.ReadFile(result.ManifestPath) //nolint:gosec // G304: test path
	if err != nil {
		t.Fatalf("Failed to read manifest: %v", err)
	}
	var manifest entities.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		t.Fatalf("Manifest is not valid JSON: %v", err)
	}
	if manifest.Binary != "file-search" || len(manifest.Artifacts) != 1 {
		t.Errorf("manifest = binary %q with %d artifacts", manifest.Binary, len(manifest.Artifacts))
	}
	if manifest.Artifacts[0].SHA256 == "" {
		t.Error("manifest artifact is missing its checksum")
	}
}

func TestBuildOrchestrator_BuildAll_ChecksumSidecars(t *testing.T) {
	tmpDir := t.TempDir()
	plan := planWithTriples(tmpDir, "x86_64-unknown-linux-gnu")

	orch, _ := newTestOrchestrator(plan, &fakeCompiler{})
	if _, err := orch.BuildAll(context.Background(), plan); err != nil {
		t.Fatalf("BuildAll() error = %v", err)
	}

	names := distNames(t, plan.OutputDir)
	if !names["file-search-x86_64-unknown-linux-gnu.sha256"] || !names["file-search-x86_64-unknown-linux-gnu.sha512"] {
		t.Errorf("checksum sidecars missing, have %v", names)
	}
}

func TestBuildOrchestrator_BuildAll_RerunOverwrites(t *testing.T) {
	tmpDir := t.TempDir()
	plan := planWithTriples(tmpDir, "x86_64-unknown-linux-gnu")

	orch, _ := newTestOrchestrator(plan, &fakeCompiler{})
	first, err := orch.BuildAll(context.Background(), plan)
	if err != nil {
		t.Fatalf("First BuildAll() error = %v", err)
	}
	second, err := orch.BuildAll(context.Background(), plan)
	if err != nil {
		t.Fatalf("Second BuildAll() error = %v", err)
	}
	if first.Manifest.RunID == second.Manifest.RunID {
		t.Error("each run must carry a distinct run ID")
	}
}
