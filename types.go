package toolchain

// OS family constants used by the detector and resolver.
const (
	OSLinux   = "linux"
	OSDarwin  = "darwin"
	OSWindows = "windows"
)

// Compiler vendor classes.
//
// The resolver only cares about the vendor class, not the exact product:
// clang-cl is classified as msvc because it accepts the MSVC driver syntax
// and pairs with the device compiler the same way cl.exe does.
const (
	VendorGNU   = "gnu"
	VendorClang = "clang"
	VendorMSVC  = "msvc"
)

// Language identifies the compiled language of a source file inside a
// build target. It is the lookup key of the per-language flag table
// produced by flag translation.
type Language string

const (
	// LanguageHost is ordinary object code compiled by the host compiler.
	LanguageHost Language = "host"
	// LanguageDevice is accelerator code compiled by the device compiler.
	LanguageDevice Language = "device"
)

// ToolchainProfile identifies the platform and host compiler.
//
// A profile is computed once by the detector at the start of a resolution
// run and is immutable afterwards.
type ToolchainProfile struct {
	OSFamily        string // linux, darwin, windows
	CompilerVendor  string // gnu, clang, msvc
	CompilerVersion string // "major.minor", empty when the banner could not be parsed
	SharedLibSuffix string // normalized suffix, always ".so"
}

// StandardPolicy is the resolved C/C++ language standard.
//
// The policy is computed exactly once per run, before any target receives
// compile properties, and is never recomputed or mutated afterwards.
type StandardPolicy struct {
	CXXStandard      int  // 14, or 17 for msvc-class hosts with the device compiler enabled
	CStandard        int  // always 11
	OverrideDetected bool // true if the user flags carried their own -std marker
}

// FlagSet is the ordered accumulation of compiler flags, partitioned by
// compiled language. A FlagSet only grows: the append methods return an
// updated copy and never drop previously merged flags, so each resolution
// step can hand the next step a new value without sharing mutable state.
type FlagSet struct {
	Host   []string // flags for host-compiled sources
	Device []string // flags for device-compiled sources
}

// AppendHost returns a copy of the set with flags added to the host partition.
func (f FlagSet) AppendHost(flags ...string) FlagSet {
	out := f
	out.Host = append(append([]string{}, f.Host...), flags...)
	return out
}

// AppendDevice returns a copy of the set with flags added to the device partition.
func (f FlagSet) AppendDevice(flags ...string) FlagSet {
	out := f
	out.Device = append(append([]string{}, f.Device...), flags...)
	return out
}

// DependencyTarget is one named sub-target of the external dependency.
//
// Which sub-targets exist depends on how the dependency itself was built;
// presence must be probed per target, never assumed. Absent targets are
// skipped silently - that is documented behavior, not an error.
type DependencyTarget struct {
	Name                    string   // core_host, core_device_primary, core_device_secondary
	InterfaceCompileOptions []string // options the dependency requires its consumers to compile with
	Present                 bool     // whether the target was found during discovery
}

// Dependency describes the located external tensor library.
type Dependency struct {
	Name     string             // library base name, e.g. "torch"
	Dir      string             // root directory the library was found under
	ABIFlags []string           // flags aligning the C++ standard-library ABI with the dependency's binaries
	Targets  []DependencyTarget // optional sub-targets, in discovery order
}

// Target returns the named sub-target, or a non-present zero target when
// the dependency was built without it.
func (d *Dependency) Target(name string) DependencyTarget {
	for _, t := range d.Targets {
		if t.Name == name {
			return t
		}
	}
	return DependencyTarget{Name: name}
}

// DeviceToolchain records the optional secondary compiler registration.
type DeviceToolchain struct {
	Enabled  bool   // true only when requested and registered
	Compiler string // device compiler executable, empty when disabled
}

// TargetFlags is the declarative per-language flag table produced by flag
// translation for one dependency target. The build-graph phase selects the
// flag string by the language of each source file at compile time; a single
// target can therefore contain both host and device sources, each receiving
// the correct form.
type TargetFlags struct {
	ByLanguage map[Language]string
}

// ForLanguage returns the flag string for sources of the given language.
// Unknown languages yield an empty string.
func (t TargetFlags) ForLanguage(lang Language) string {
	return t.ByLanguage[lang]
}

// ResolveOptions are the configuration inputs of a resolution run.
//
// The zero value disables everything: the extension is not built and the
// device toolchain stays off. Overrides exist for fields normally detected
// from the environment so callers (and tests) can pin the platform.
type ResolveOptions struct {
	// BuildExtension gates the whole resolution. Default off.
	BuildExtension bool

	// UseDeviceCompiler requests the secondary device toolchain. Default off.
	UseDeviceCompiler bool

	// HostFlags is the tooling-supplied host compiler flags string
	// (typically the CXXFLAGS environment value).
	HostFlags string

	// OSFamily overrides platform detection when non-empty.
	OSFamily string

	// Compiler overrides the host compiler executable when non-empty.
	Compiler string

	// DeviceCompiler overrides the device compiler executable when
	// non-empty. A caller-supplied value is trusted as-is; only the
	// default is probed on PATH.
	DeviceCompiler string

	// SearchDirs are the directories probed for the external dependency.
	SearchDirs []string
}

// ResolvedConfig is the finalized configuration handed to the stage that
// declares the extension's own compiled targets. It is produced once per
// run and requires no teardown.
type ResolvedConfig struct {
	Enabled  bool                   // false when BuildExtension was off; everything else is zero
	Profile  ToolchainProfile       // platform and host compiler identity
	Policy   StandardPolicy         // resolved language standards
	Flags    FlagSet                // global flag accumulation
	Device   DeviceToolchain        // device toolchain registration
	Targets  map[string]TargetFlags // per-language flag tables keyed by dependency target name
	Warnings []string               // non-fatal findings, in emission order
}
