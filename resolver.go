package toolchain

import (
	"context"

	"github.com/phuslu/log"
)

// Resolver runs the build-configuration resolution pipeline for the
// native extension.
//
// A resolution run is one-shot and deterministic: detect the platform
// and host compiler, freeze the language standard, locate the external
// dependency, optionally register the device toolchain, translate the
// dependency's interface compile options per target, suppress the fixed
// diagnostic set, and assemble the final configuration. Steps run
// strictly in that order; each consumes the output of the previous one.
//
// # Usage
//
//	resolver := toolchain.NewResolver()
//	cfg, err := resolver.Resolve(ctx, &toolchain.ResolveOptions{
//	    BuildExtension:    true,
//	    UseDeviceCompiler: true,
//	    HostFlags:         os.Getenv("CXXFLAGS"),
//	    SearchDirs:        []string{"/opt/torch"},
//	})
//
// # Thread Safety
//
// Configure the resolver (SetLocator, SetLogger) before use. After
// configuration, Resolve is safe to call concurrently; runs share no
// state.
type Resolver struct {
	locator Locator
	logger  *log.Logger
}

// NewResolver creates a resolver with the default directory locator and
// logger.
func NewResolver() *Resolver {
	return &Resolver{
		logger: &log.DefaultLogger,
	}
}

// SetLocator replaces the dependency locator. A nil locator restores the
// default, which probes ResolveOptions.SearchDirs for the tensor library.
func (r *Resolver) SetLocator(locator Locator) {
	r.locator = locator
}

// SetLogger replaces the logger used for non-fatal findings.
func (r *Resolver) SetLogger(logger *log.Logger) {
	if logger == nil {
		logger = &log.DefaultLogger
	}
	r.logger = logger
}

// Resolve runs the resolution pipeline and returns the finalized
// configuration for the subordinate stage that declares the extension's
// compiled targets.
//
// When the extension build is disabled, Resolve returns a zero config
// with Enabled false and performs no work at all. When the device
// toolchain is not requested, the translation and suppression steps are
// never part of the pipeline, so the output is indistinguishable from a
// build with no device-toolchain support.
//
// A missing dependency is fatal: Resolve returns a nil config and an
// error wrapping ErrDependencyMissing, with no targets created.
func (r *Resolver) Resolve(ctx context.Context, opts *ResolveOptions) (*ResolvedConfig, error) {
	if opts == nil {
		opts = &ResolveOptions{}
	}
	if !opts.BuildExtension {
		return &ResolvedConfig{}, nil
	}

	steps := []resolveStep{
		r.detectStep,
		r.standardStep,
		r.locateStep,
	}
	if opts.UseDeviceCompiler {
		steps = append(steps, r.deviceStep, r.translateStep, r.suppressStep)
	}
	steps = append(steps, r.assembleStep)

	st, err := runPipeline(ctx, opts, steps)
	if err != nil {
		return nil, err
	}

	cfg := st.config
	cfg.Enabled = true
	return &cfg, nil
}

// detectStep computes the immutable toolchain profile.
func (r *Resolver) detectStep(ctx context.Context, opts *ResolveOptions, st runState) (runState, error) {
	st.config.Profile = r.detectToolchain(opts)
	return st, nil
}

// standardStep freezes the language-standard policy. This is the only
// assignment to the policy in a run.
func (r *Resolver) standardStep(ctx context.Context, opts *ResolveOptions, st runState) (runState, error) {
	policy, warnings := r.resolveStandard(opts, st.config.Profile)
	st.config.Policy = policy
	st.config.Warnings = append(st.config.Warnings, warnings...)
	return st, nil
}

// locateStep discovers the external dependency. Failure aborts the run.
func (r *Resolver) locateStep(ctx context.Context, opts *ResolveOptions, st runState) (runState, error) {
	locator := r.locator
	if locator == nil {
		locator = &DirectoryLocator{
			LibName:    defaultDependencyName,
			SearchDirs: opts.SearchDirs,
			OSFamily:   st.config.Profile.OSFamily,
		}
	}

	dep, err := locator.Locate(ctx)
	if err != nil {
		return st, err
	}
	st.dep = dep
	return st, nil
}

// assembleStep merges the host warning flags and the dependency's ABI
// flags into the global host accumulation. Skipping the ABI merge is a
// defect class: it produces dual-ABI symbol mismatches between the
// extension and the dependency's prebuilt binaries.
func (r *Resolver) assembleStep(ctx context.Context, opts *ResolveOptions, st runState) (runState, error) {
	st.config.Flags = st.config.Flags.AppendHost(hostWarningFlags(st.config.Profile.CompilerVendor)...)
	st.config.Flags = st.config.Flags.AppendHost(st.dep.ABIFlags...)
	return st, nil
}

// hostWarningFlags returns the warning flags for the host compiler
// vendor class.
func hostWarningFlags(vendor string) []string {
	if vendor == VendorMSVC {
		return []string{"/W4"}
	}
	return []string{"-Wall", "-Wextra"}
}
