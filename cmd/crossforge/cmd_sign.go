package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nakurei/crossforge/internal/external-adapters/gpg"
)

func runSign(_ context.Context, args []string) {
	fs := flag.NewFlagSet("sign", flag.ExitOnError)
	var (
		distDir = fs.String("dist", "dist", "Distribution directory")
		keyPath = fs.String("key", "", "Armored private key file (required)")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: crossforge sign --key <private-key> [options]

Create detached armored signatures (.asc) for every staged artifact in the
distribution directory.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  crossforge sign --key release-key.asc
  crossforge sign --key release-key.asc --dist out
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(2)
	}

	if *keyPath == "" {
		fmt.Fprintf(os.Stderr, "Error: --key is required\n\n")
		fs.Usage()
		os.Exit(2)
	}

	signer, err := gpg.NewSignerFromFile(*keyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	files, err := stagedArtifacts(*distDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no artifacts found in %s\n", *distDir)
		os.Exit(1)
	}

	for _, file := range files {
		sigPath, err := signer.SignDetached(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✅ signed %s -> %s\n", filepath.Base(file), filepath.Base(sigPath))
	}
}
