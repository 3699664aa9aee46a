package toolchain

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/phuslu/log"
)

// Environment variables that override the options file. They carry the
// same names the surrounding build tooling uses.
const (
	envBuildExtension    = "BUILD_EXTENSION"
	envUseDeviceCompiler = "USE_DEVICE_COMPILER"
	envHostFlags         = "CXXFLAGS"
	envHostCompiler      = "CXX"
	envDependencyDir     = "EXTENSION_DEP_DIR"
)

// optionsFile is the on-disk TOML shape of ResolveOptions.
type optionsFile struct {
	BuildExtension    bool     `toml:"build_extension"`
	UseDeviceCompiler bool     `toml:"use_device_compiler"`
	HostFlags         string   `toml:"host_flags"`
	Compiler          string   `toml:"compiler"`
	DeviceCompiler    string   `toml:"device_compiler"`
	SearchDirs        []string `toml:"search_dirs"`
}

// LoadOptions reads ResolveOptions from a TOML file and applies
// environment overrides on top.
//
// A missing file is not an error: the defaults (everything off) are used
// and the environment still applies, so a run can be driven entirely by
// the tooling-supplied environment. A file that exists but does not
// parse is an error.
func LoadOptions(path string) (*ResolveOptions, error) {
	opts := &ResolveOptions{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			var f optionsFile
			if err := toml.Unmarshal(data, &f); err != nil {
				return nil, fmt.Errorf("failed to parse options file %s: %w", path, err)
			}
			opts = &ResolveOptions{
				BuildExtension:    f.BuildExtension,
				UseDeviceCompiler: f.UseDeviceCompiler,
				HostFlags:         f.HostFlags,
				Compiler:          f.Compiler,
				DeviceCompiler:    f.DeviceCompiler,
				SearchDirs:        f.SearchDirs,
			}
		case os.IsNotExist(err):
			log.Debug().Str("path", path).Msg("options file not found, using defaults")
		default:
			return nil, fmt.Errorf("failed to read options file %s: %w", path, err)
		}
	}

	applyEnvOverrides(opts)
	return opts, nil
}

// applyEnvOverrides layers the tooling-supplied environment over the
// file-loaded options. Unset variables leave the file values untouched.
func applyEnvOverrides(opts *ResolveOptions) {
	if v := os.Getenv(envBuildExtension); v != "" {
		opts.BuildExtension = parseBoolOption(v)
	}
	if v := os.Getenv(envUseDeviceCompiler); v != "" {
		opts.UseDeviceCompiler = parseBoolOption(v)
	}
	if v := os.Getenv(envHostFlags); v != "" {
		opts.HostFlags = v
	}
	if v := os.Getenv(envHostCompiler); v != "" {
		opts.Compiler = v
	}
	if v := os.Getenv(envDependencyDir); v != "" {
		opts.SearchDirs = append([]string{v}, opts.SearchDirs...)
	}
}

// parseBoolOption accepts the boolean spellings build tooling commonly
// emits (1/0, true/false, on/off, yes/no). Unrecognized values are false.
func parseBoolOption(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}
