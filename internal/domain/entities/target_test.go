package entities

import "testing"

func TestParseTriple(t *testing.T) {
	tests := []struct {
		triple string
		arch   string
		vendor string
		os     OSFamily
		abi    string
	}{
		{
			triple: "x86_64-unknown-linux-gnu",
			arch:   "x86_64",
			vendor: "unknown",
			os:     OSLinux,
			abi:    "gnu",
		},
		{
			triple: "x86_64-pc-windows-msvc",
			arch:   "x86_64",
			vendor: "pc",
			os:     OSWindows,
			abi:    "msvc",
		},
		{
			triple: "x86_64-apple-darwin",
			arch:   "x86_64",
			vendor: "apple",
			os:     OSDarwin,
			abi:    "",
		},
		{
			triple: "aarch64-apple-darwin",
			arch:   "aarch64",
			vendor: "apple",
			os:     OSDarwin,
			abi:    "",
		},
		{
			triple: "wasm32-wasi",
			arch:   "wasm32",
			vendor: "wasi",
			os:     OSUnknown,
			abi:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.triple, func(t *testing.T) {
			target := ParseTriple(tt.triple)

			if target.Triple != tt.triple {
				t.Errorf("Triple = %q, want %q", target.Triple, tt.triple)
			}
			if target.Arch != tt.arch {
				t.Errorf("Arch = %q, want %q", target.Arch, tt.arch)
			}
			if target.Vendor != tt.vendor {
				t.Errorf("Vendor = %q, want %q", target.Vendor, tt.vendor)
			}
			if target.OS != tt.os {
				t.Errorf("OS = %q, want %q", target.OS, tt.os)
			}
			if target.ABI != tt.abi {
				t.Errorf("ABI = %q, want %q", target.ABI, tt.abi)
			}
			if !target.Enabled {
				t.Error("parsed targets should be enabled by default")
			}
		})
	}
}

func TestTarget_ExeSuffix(t *testing.T) {
	if got := ParseTriple("x86_64-pc-windows-msvc").ExeSuffix(); got != ".exe" {
		t.Errorf("windows suffix = %q, want .exe", got)
	}
	if got := ParseTriple("x86_64-unknown-linux-gnu").ExeSuffix(); got != "" {
		t.Errorf("linux suffix = %q, want empty", got)
	}
	if got := ParseTriple("aarch64-apple-darwin").ExeSuffix(); got != "" {
		t.Errorf("darwin suffix = %q, want empty", got)
	}
}

func TestBuildPlan_EnabledTargets(t *testing.T) {
	plan := &BuildPlan{
		Targets: []Target{
			ParseTriple("x86_64-unknown-linux-gnu"),
			{Triple: "x86_64-pc-windows-msvc", OS: OSWindows, Enabled: false},
			ParseTriple("aarch64-apple-darwin"),
		},
	}

	enabled := plan.EnabledTargets()
	if len(enabled) != 2 {
		t.Fatalf("EnabledTargets() returned %d targets, want 2", len(enabled))
	}
	if enabled[0].Triple != "x86_64-unknown-linux-gnu" || enabled[1].Triple != "aarch64-apple-darwin" {
		t.Errorf("EnabledTargets() did not preserve order: %v", enabled)
	}
}
