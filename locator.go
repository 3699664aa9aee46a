package toolchain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ErrDependencyMissing is the failure class for a dependency that could
// not be discovered. Discovery failure is always fatal: no targets are
// created after it.
var ErrDependencyMissing = errors.New("required dependency not found")

// defaultDependencyName is the base name of the external tensor library
// the extension links against.
const defaultDependencyName = "torch"

// subTargetNames are the optional sub-targets the dependency may expose,
// in probe order. Which of them exist depends on how the dependency was
// built; absent ones are skipped silently.
var subTargetNames = []string{
	"core_host",
	"core_device_primary",
	"core_device_secondary",
}

// Locator discovers the external dependency the extension is built
// against.
//
// Implementations must be non-interactive and fail fast: a dependency
// that cannot be found is a fatal configuration error, never a silent
// degradation.
//
// Implementations should be stateless and thread-safe.
type Locator interface {
	// Name returns the human-readable name of this locator,
	// used in error messages and logs.
	Name() string

	// Locate probes for the dependency and returns its descriptor.
	//
	// On success the descriptor carries the dependency's required ABI
	// flags and its probed sub-targets. On failure the returned error
	// wraps ErrDependencyMissing.
	Locate(ctx context.Context) (*Dependency, error)
}

// DirectoryLocator finds the dependency by probing a list of install
// directories for its shared library.
//
// Layout expectations, per directory:
//
//	lib/lib<name>.so|.dylib          main library (presence decides discovery)
//	lib/lib<target>.so|.dylib        one library per optional sub-target
//	share/<name>/abi.flags           optional ABI flag list, whitespace-separated
//	share/<name>/<target>.flags      optional per-target interface compile options
//
// Missing sidecar files are not errors: a target without a flags file has
// an empty interface option list, and a missing abi.flags falls back to
// the platform default dual-ABI flag.
type DirectoryLocator struct {
	// LibName is the dependency's base library name (e.g. "torch").
	LibName string

	// SearchDirs are probed in order; the first directory containing
	// the main library wins.
	SearchDirs []string

	// OSFamily selects the default ABI flags; empty means linux-like.
	OSFamily string
}

// NewDirectoryLocator creates a locator for the named library over the
// given search directories.
func NewDirectoryLocator(name string, searchDirs []string) *DirectoryLocator {
	return &DirectoryLocator{LibName: name, SearchDirs: searchDirs}
}

// Name returns the locator name.
func (l *DirectoryLocator) Name() string {
	return "Directory"
}

// Locate probes the search directories for the dependency.
func (l *DirectoryLocator) Locate(ctx context.Context) (*Dependency, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, dir := range l.SearchDirs {
		if findLibrary(dir, l.LibName) == "" {
			continue
		}

		dep := &Dependency{
			Name:     l.LibName,
			Dir:      dir,
			ABIFlags: l.abiFlags(dir),
		}
		for _, name := range subTargetNames {
			target := DependencyTarget{Name: name}
			if findLibrary(dir, name) != "" {
				target.Present = true
				target.InterfaceCompileOptions = readFlagsFile(
					filepath.Join(dir, "share", l.LibName, name+".flags"))
			}
			dep.Targets = append(dep.Targets, target)
		}
		return dep, nil
	}

	return nil, DependencyError(l.LibName, l.SearchDirs)
}

// abiFlags returns the dependency's C++ standard-library ABI flags.
// An explicit abi.flags sidecar wins; otherwise non-Windows platforms
// default to the libstdc++ dual-ABI selector. Omitting these flags from
// the host accumulation produces dual-ABI symbol mismatches against the
// dependency's prebuilt binaries, so a non-empty result is expected
// everywhere but Windows.
func (l *DirectoryLocator) abiFlags(dir string) []string {
	if flags := readFlagsFile(filepath.Join(dir, "share", l.LibName, "abi.flags")); flags != nil {
		return flags
	}
	if l.OSFamily == OSWindows {
		return nil
	}
	return []string{"-D_GLIBCXX_USE_CXX11_ABI=1"}
}

// findLibrary returns the path of lib<name> under dir/lib with any of the
// platform shared-library suffixes, or "" when absent.
func findLibrary(dir, name string) string {
	for _, suffix := range []string{".so", ".dylib", ".dll"} {
		path := filepath.Join(dir, "lib", "lib"+name+suffix)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// readFlagsFile reads a whitespace-separated flag list, returning nil
// when the file is absent or empty.
func readFlagsFile(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return nil
	}
	return fields
}
