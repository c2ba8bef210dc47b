package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nakurei/crossforge/internal/domain/interfaces"
	"github.com/nakurei/crossforge/internal/domain/services"
	"github.com/nakurei/crossforge/internal/external-adapters/gpg"
)

func runVerify(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	var (
		distDir   = fs.String("dist", "dist", "Distribution directory")
		keyPath   = fs.String("key", "", "Armored public key file for signature verification")
		verifyAll = fs.Bool("all", false, "Verify every staged artifact in the distribution directory")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: crossforge verify <file> [options]
       crossforge verify --all [options]

Verify staged artifacts against their checksum sidecars and, when a public
key is provided and an .asc signature exists, their detached signatures.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  crossforge verify dist/file-search-x86_64-unknown-linux-gnu
  crossforge verify --all
  crossforge verify --all --key release-pub.asc
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(2)
	}

	var files []string
	if *verifyAll {
		var err error
		files, err = stagedArtifacts(*distDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(files) == 0 {
			fmt.Fprintf(os.Stderr, "Error: no artifacts found in %s\n", *distDir)
			os.Exit(1)
		}
	} else {
		if fs.NArg() < 1 {
			fmt.Fprintf(os.Stderr, "Error: file path is required\n\n")
			fs.Usage()
			os.Exit(2)
		}
		files = []string{fs.Arg(0)}
	}

	var verifier *gpg.Verifier
	if *keyPath != "" {
		verifier = gpg.NewVerifier()
		if err := verifier.ImportKeyFromFile(*keyPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if err := executeVerify(ctx, files, verifier); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func executeVerify(_ context.Context, files []string, verifier *gpg.Verifier) error {
	integrity := services.NewIntegrityService(&interfaces.NoOpLogger{})

	verified := 0
	failed := 0

	for _, file := range files {
		for _, ext := range []string{".sha256", ".sha512"} {
			sidecar := file + ext
			if !fileExists(sidecar) {
				continue
			}
			expected, err := readChecksumSidecar(sidecar)
			if err != nil {
				fmt.Printf("❌ %s: %v\n", filepath.Base(sidecar), err)
				failed++
				continue
			}
			if err := integrity.VerifyChecksum(file, expected); err != nil {
				fmt.Printf("❌ %s (%s): %v\n", filepath.Base(file), ext, err)
				failed++
				continue
			}
			fmt.Printf("✅ %s (%s)\n", filepath.Base(file), ext)
			verified++
		}

		if verifier != nil && fileExists(file+".asc") {
			if err := verifier.VerifyDetached(file, file+".asc"); err != nil {
				fmt.Printf("❌ %s (signature): %v\n", filepath.Base(file), err)
				failed++
			} else {
				fmt.Printf("✅ %s (signature)\n", filepath.Base(file))
				verified++
			}
		}
	}

	fmt.Printf("\nVerified: %d, failed: %d\n", verified, failed)
	if failed > 0 {
		return fmt.Errorf("%d verification(s) failed", failed)
	}
	if verified == 0 {
		return fmt.Errorf("nothing to verify: no checksum sidecars or signatures found")
	}
	return nil
}

// readChecksumSidecar parses a sha256sum-compatible sidecar ("<hex>  <name>").
func readChecksumSidecar(path string) (string, error) {
	//nolint:gosec // G304: path is a sidecar next to the verified artifact
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read checksum file: %w", err)
	}
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return "", fmt.Errorf("empty checksum file")
	}
	return fields[0], nil
}

// stagedArtifacts lists the artifact files in the distribution directory,
// skipping sidecars, the manifest, and the lock file.
func stagedArtifacts(distDir string) ([]string, error) {
	entries, err := os.ReadDir(distDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read distribution directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		switch {
		case strings.HasSuffix(name, ".sha256"),
			strings.HasSuffix(name, ".sha512"),
			strings.HasSuffix(name, ".asc"),
			strings.HasSuffix(name, ".json"),
			strings.HasPrefix(name, "."):
			continue
		}
		files = append(files, filepath.Join(distDir, name))
	}
	return files, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
