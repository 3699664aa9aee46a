package toolchain

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/magefile/mage/sh"
)

// normalizedSharedLibSuffix is the dynamic-library suffix every downstream
// consumer sees, regardless of what the platform linker actually produces.
const normalizedSharedLibSuffix = ".so"

// bannerVersionPattern extracts a major.minor version from a compiler
// version banner, e.g. "Apple clang version 15.0.0 (clang-1500.1.0.2.5)".
var bannerVersionPattern = regexp.MustCompile(`version (\d+\.\d+)`)

// defaultCompiler returns the conventional host compiler driver for the
// platform, used when neither the options nor CXX name one.
func defaultCompiler(osFamily string) string {
	switch osFamily {
	case OSWindows:
		return "cl"
	case OSDarwin:
		return "clang++"
	default:
		return "c++"
	}
}

// detectToolchain identifies the OS family and host compiler for this run.
//
// Detection order for the compiler executable: explicit option, CXX
// environment variable, platform default. On Apple platforms the compiler
// is invoked for its version banner; a banner that does not match the
// expected pattern leaves the version unset rather than failing the run.
func (r *Resolver) detectToolchain(opts *ResolveOptions) ToolchainProfile {
	osFamily := opts.OSFamily
	if osFamily == "" {
		osFamily = runtime.GOOS
	}

	compiler := opts.Compiler
	if compiler == "" {
		compiler = os.Getenv("CXX")
	}
	if compiler == "" {
		compiler = defaultCompiler(osFamily)
	}

	profile := ToolchainProfile{
		OSFamily:        osFamily,
		CompilerVendor:  classifyVendor(compiler, osFamily),
		SharedLibSuffix: normalizedSharedLibSuffix,
	}

	if osFamily == OSDarwin {
		profile.CompilerVersion = r.compilerBannerVersion(compiler)
	}

	return profile
}

// classifyVendor maps a compiler executable name to its vendor class.
// Generic driver names (cc, c++) fall back to the platform convention.
func classifyVendor(compiler, osFamily string) string {
	base := strings.TrimSuffix(filepath.Base(compiler), ".exe")

	switch {
	case MatchesPattern(base, `^cl$`, `clang-cl`):
		return VendorMSVC
	case MatchesPattern(base, `clang`):
		return VendorClang
	case MatchesPattern(base, `gcc`, `g\+\+`):
		return VendorGNU
	}

	switch osFamily {
	case OSWindows:
		return VendorMSVC
	case OSDarwin:
		return VendorClang
	default:
		return VendorGNU
	}
}

// compilerBannerVersion runs the compiler for its version banner and
// extracts a major.minor version. Any failure degrades to an unset
// version; detection never aborts the run.
func (r *Resolver) compilerBannerVersion(compiler string) string {
	banner, err := sh.Output(compiler, "--version")
	if err != nil {
		r.logger.Debug().Err(err).Str("compiler", compiler).Msg("compiler version banner unavailable")
		return ""
	}

	version := parseCompilerVersion(banner)
	if version == "" {
		r.logger.Debug().Str("compiler", compiler).Msg("compiler version banner did not match expected pattern")
	}
	return version
}

// parseCompilerVersion extracts "major.minor" from a version banner,
// or returns the empty string when the banner doesn't match.
func parseCompilerVersion(banner string) string {
	m := bannerVersionPattern.FindStringSubmatch(banner)
	if m == nil {
		return ""
	}
	return m[1]
}
