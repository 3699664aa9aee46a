package toolchain

import (
	"context"
	"sort"
)

// suppressedDiagnostics are device-frontend diagnostics known to be
// benign cross-toolchain noise when the msvc-class host compiler pairs
// with the device compiler. The set is fixed; its effect on compiler
// output does not depend on ordering.
var suppressedDiagnostics = []string{
	"base_class_has_different_dll_interface",
	"dll_interface_conflict_dllexport_assumed",
	"dll_interface_conflict_none_assumed",
	"field_without_dll_interface",
}

// suppressionDirectives renders one suppression directive per diagnostic
// identifier, sorted so the emitted flag sequence is deterministic
// regardless of how the suppression list is maintained.
func suppressionDirectives() []string {
	ids := append([]string{}, suppressedDiagnostics...)
	sort.Strings(ids)

	directives := make([]string, 0, len(ids)*2)
	for _, id := range ids {
		directives = append(directives, "-Xcudafe", "--diag_suppress="+id)
	}
	return directives
}

// suppressStep appends the fixed suppression directives to the device
// flag accumulation. It only applies for msvc-class hosts; other vendors
// do not produce this noise.
func (r *Resolver) suppressStep(ctx context.Context, opts *ResolveOptions, st runState) (runState, error) {
	if st.config.Profile.CompilerVendor != VendorMSVC {
		return st, nil
	}
	st.config.Flags = st.config.Flags.AppendDevice(suppressionDirectives()...)
	return st, nil
}
