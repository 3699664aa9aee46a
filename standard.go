package toolchain

import (
	"fmt"
	"regexp"
)

// Baseline language standards. The C++ standard is raised to 17 only for
// msvc-class hosts paired with the device compiler, which cannot consume
// C++14 translation units from the device frontend.
const (
	baselineCXXStandard = 14
	elevatedCXXStandard = 17
	baselineCStandard   = 11
)

// standardMarkerPattern finds an embedded language-standard flag in a
// user-supplied flags string, in either GNU (-std=c++17) or MSVC
// (/std:c++17) spelling.
var standardMarkerPattern = regexp.MustCompile(`(?:^|\s)([-/]std[:=]\S+)`)

// resolveStandard computes the StandardPolicy for this run.
//
// The policy is single-assignment: it is computed here, before any target
// receives compile properties, and frozen thereafter. A standard marker in
// the user flags yields a non-fatal warning; the computed value always
// wins over the user literal.
func (r *Resolver) resolveStandard(opts *ResolveOptions, profile ToolchainProfile) (StandardPolicy, []string) {
	policy := StandardPolicy{
		CXXStandard: baselineCXXStandard,
		CStandard:   baselineCStandard,
	}

	if profile.CompilerVendor == VendorMSVC && opts.UseDeviceCompiler {
		policy.CXXStandard = elevatedCXXStandard
	}

	var warnings []string
	if m := standardMarkerPattern.FindStringSubmatch(opts.HostFlags); m != nil {
		policy.OverrideDetected = true
		warning := fmt.Sprintf("explicit standard flag %q in host flags will be overridden by C++%d", m[1], policy.CXXStandard)
		warnings = append(warnings, warning)
		r.logger.Warn().
			Str("flag", m[1]).
			Int("cxx_standard", policy.CXXStandard).
			Msg("host flags carry an explicit language standard; the resolved standard takes precedence")
	}

	return policy, warnings
}
