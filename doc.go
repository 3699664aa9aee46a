// Package toolchain resolves build configuration for a native extension
// that can be compiled in two modes: host-compiler-only, or dual-toolchain
// with a secondary device compiler pass for accelerator code.
//
// The package owns the conditional part of the extension build: platform
// and compiler detection, language-standard selection, dependency
// discovery, flag translation between the host and device compiler
// syntaxes, and suppression of known-benign cross-toolchain diagnostics.
// Compiling the extension's own sources and packaging the result are
// declarative concerns that live downstream of the ResolvedConfig this
// package produces.
//
// # Resolution Pipeline
//
// Resolution is strictly sequential; each step consumes the output of
// the previous one:
//
//	Resolver
//	├── detect    platform, host compiler vendor and version
//	├── standard  C++14/C11 baseline, C++17 for msvc-class + device
//	├── locate    external tensor library (fatal when absent)
//	├── device    register the device compiler (only when requested)
//	├── translate per-target host/device flag tables
//	├── suppress  fixed diagnostic-suppression list
//	└── assemble  warning + ABI flags into the global accumulation
//
// The device, translate, and suppress steps are only part of the
// pipeline when the device toolchain is requested; a run without it is
// indistinguishable from a build with no device-toolchain support.
//
// # Basic Usage
//
// Load options from a file plus the environment, then resolve:
//
//	opts, err := toolchain.LoadOptions("extension.toml")
//	if err != nil {
//	    return err
//	}
//
//	resolver := toolchain.NewResolver()
//	cfg, err := resolver.Resolve(ctx, opts)
//	if err != nil {
//	    return err // e.g. the dependency was not found
//	}
//	if !cfg.Enabled {
//	    return nil // extension build switched off
//	}
//
// The ResolvedConfig carries the toolchain profile, the frozen standard
// policy, the global flag accumulation, and a per-language flag table
// for each dependency sub-target; the stage declaring the extension's
// compiled targets looks flags up by the language of each source file.
//
// # Requirements
//
// Requires Go 1.25 or later.
package toolchain
