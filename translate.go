package toolchain

import (
	"context"
	"strings"
)

// devicePassthroughPrefix forwards a host compiler option through the
// device compiler's frontend. The frontend requires the forwarded options
// to be comma-joined inside this wrapper, not space-joined like the host
// driver. The prefix doubles as the wrapping signature that makes
// translation idempotent.
const devicePassthroughPrefix = "-Xcompiler="

// translateTargetFlags converts one target's interface compile options
// into the per-language flag table:
//
//	host form:   options space-joined, passed through unchanged
//	device form: options comma-joined behind the passthrough wrapper
//
// The build-graph phase looks the right form up by the language of each
// source file, so a single target can mix host and device sources.
func translateTargetFlags(options []string) TargetFlags {
	return TargetFlags{
		ByLanguage: map[Language]string{
			LanguageHost:   strings.Join(options, " "),
			LanguageDevice: devicePassthroughPrefix + strings.Join(options, ","),
		},
	}
}

// alreadyTranslated reports whether an option list carries the
// passthrough wrapping signature from a previous translation run.
func alreadyTranslated(options []string) bool {
	for _, opt := range options {
		if strings.HasPrefix(opt, devicePassthroughPrefix) {
			return true
		}
	}
	return false
}

// translateStep builds the per-language flag table for every dependency
// sub-target that is present and has a non-empty interface option list.
//
// Empty lists are skipped, never replaced: overwriting them with an empty
// translation would clobber options other steps may have contributed.
// Options already carrying the wrapping signature are skipped as well,
// so re-running the step yields the same tables.
func (r *Resolver) translateStep(ctx context.Context, opts *ResolveOptions, st runState) (runState, error) {
	for _, target := range st.dep.Targets {
		if !target.Present || len(target.InterfaceCompileOptions) == 0 {
			continue
		}
		if alreadyTranslated(target.InterfaceCompileOptions) {
			continue
		}
		if st.config.Targets == nil {
			st.config.Targets = make(map[string]TargetFlags)
		}
		st.config.Targets[target.Name] = translateTargetFlags(target.InterfaceCompileOptions)
	}
	return st, nil
}
