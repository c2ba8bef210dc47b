package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	ctx := context.Background()
	command := os.Args[1]

	// Dispatch to subcommand
	switch command {
	case "build":
		runBuild(ctx, os.Args[2:])
	case "targets":
		runTargets(ctx, os.Args[2:])
	case "verify":
		runVerify(ctx, os.Args[2:])
	case "sign":
		runSign(ctx, os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(2)
	}
}

func printUsage() {
	fmt.Println(`crossforge - cross-target build driver for the file-search CLI

Usage:
  crossforge <command> [options]

Commands:
  build    Cross-compile file-search for every configured target and stage
           the binaries into the distribution directory
  targets  List the configured targets and their artifact names
  verify   Verify checksums and signatures of staged artifacts
  sign     Create detached signatures for staged artifacts

Use "crossforge <command> --help" for more information about a command.`)
}
