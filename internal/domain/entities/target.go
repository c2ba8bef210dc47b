// Package entities defines core domain models and data structures.
package entities

import "strings"

// OSFamily is an enumerated operating-system tag for a compilation target.
// Artifact naming decisions key off this tag rather than substring checks
// against the raw triple.
type OSFamily string

// Known operating-system families.
const (
	OSLinux   OSFamily = "linux"
	OSWindows OSFamily = "windows"
	OSDarwin  OSFamily = "darwin"
	OSUnknown OSFamily = "unknown"
)

// Target represents a compilation target: an architecture/vendor/OS/ABI
// quadruple as understood by the Rust toolchain (e.g. x86_64-unknown-linux-gnu).
type Target struct {
	Triple  string
	Arch    string
	Vendor  string
	OS      OSFamily
	ABI     string
	Enabled bool
}

// ParseTriple builds a Target from a toolchain triple. It is total: a triple
// with an unrecognized or missing OS component yields OSUnknown rather than
// an error, since the toolchain itself is the authority on valid triples.
func ParseTriple(triple string) Target {
	t := Target{
		Triple:  triple,
		OS:      OSUnknown,
		Enabled: true,
	}

	parts := strings.Split(triple, "-")
	if len(parts) >= 1 {
		t.Arch = parts[0]
	}
	if len(parts) >= 2 {
		t.Vendor = parts[1]
	}
	if len(parts) >= 3 {
		t.OS = classifyOS(parts[2])
	}
	if len(parts) >= 4 {
		t.ABI = parts[3]
	}

	// Two-component triples like wasm32-wasi carry the OS in the second slot.
	if t.OS == OSUnknown && len(parts) == 2 {
		t.OS = classifyOS(parts[1])
	}

	return t
}

func classifyOS(component string) OSFamily {
	switch component {
	case "linux":
		return OSLinux
	case "windows":
		return OSWindows
	case "darwin":
		return OSDarwin
	default:
		return OSUnknown
	}
}

// ExeSuffix returns the executable filename suffix for the target's OS family.
// Windows targets get ".exe"; everything else is extensionless.
func (t Target) ExeSuffix() string {
	if t.OS == OSWindows {
		return ".exe"
	}
	return ""
}
