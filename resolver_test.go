package toolchain

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

// stubLocator returns a canned dependency descriptor or error.
type stubLocator struct {
	dep *Dependency
	err error
}

func (s *stubLocator) Name() string { return "Stub" }

func (s *stubLocator) Locate(ctx context.Context) (*Dependency, error) {
	return s.dep, s.err
}

func testDependency() *Dependency {
	return &Dependency{
		Name:     "torch",
		Dir:      "/opt/torch",
		ABIFlags: []string{"-D_GLIBCXX_USE_CXX11_ABI=1"},
		Targets: []DependencyTarget{
			{Name: "core_host", Present: true, InterfaceCompileOptions: []string{"-a", "-b"}},
			{Name: "core_device_primary", Present: true, InterfaceCompileOptions: []string{"-c"}},
			{Name: "core_device_secondary"},
		},
	}
}

func newTestResolver(dep *Dependency, err error) *Resolver {
	r := NewResolver()
	r.SetLocator(&stubLocator{dep: dep, err: err})
	return r
}

func TestResolveDisabledBuild(t *testing.T) {
	r := newTestResolver(testDependency(), nil)

	cfg, err := r.Resolve(context.Background(), &ResolveOptions{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cfg.Enabled {
		t.Error("Enabled = true with BuildExtension off")
	}
	if !reflect.DeepEqual(cfg, &ResolvedConfig{}) {
		t.Errorf("disabled build produced non-zero config: %+v", cfg)
	}
}

func TestResolveHostOnly(t *testing.T) {
	r := newTestResolver(testDependency(), nil)

	cfg, err := r.Resolve(context.Background(), &ResolveOptions{
		BuildExtension: true,
		OSFamily:       OSLinux,
		Compiler:       "g++",
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if !cfg.Enabled {
		t.Fatal("Enabled = false")
	}
	if cfg.Policy.CXXStandard != 14 || cfg.Policy.CStandard != 11 {
		t.Errorf("policy = %+v, want C++14/C11", cfg.Policy)
	}

	// With the device toolchain off, translation and suppression never
	// run: no device registration, no target tables, no device flags.
	if cfg.Device.Enabled || cfg.Device.Compiler != "" {
		t.Errorf("device toolchain registered without request: %+v", cfg.Device)
	}
	if len(cfg.Targets) != 0 {
		t.Errorf("targets translated without device toolchain: %v", cfg.Targets)
	}
	if len(cfg.Flags.Device) != 0 {
		t.Errorf("device flags accumulated without device toolchain: %v", cfg.Flags.Device)
	}

	// Warning flags first, then the dependency's ABI flags.
	expectedHost := []string{"-Wall", "-Wextra", "-D_GLIBCXX_USE_CXX11_ABI=1"}
	if !reflect.DeepEqual(cfg.Flags.Host, expectedHost) {
		t.Errorf("host flags = %v, want %v", cfg.Flags.Host, expectedHost)
	}
}

func TestResolveDeviceEnabled(t *testing.T) {
	r := newTestResolver(testDependency(), nil)

	cfg, err := r.Resolve(context.Background(), &ResolveOptions{
		BuildExtension:    true,
		UseDeviceCompiler: true,
		DeviceCompiler:    "nvcc",
		OSFamily:          OSLinux,
		Compiler:          "g++",
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if !cfg.Device.Enabled || cfg.Device.Compiler != "nvcc" {
		t.Errorf("device toolchain = %+v, want enabled nvcc", cfg.Device)
	}

	host := cfg.Targets["core_host"]
	if got := host.ForLanguage(LanguageHost); got != "-a -b" {
		t.Errorf("core_host host form = %q, want %q", got, "-a -b")
	}
	if got := host.ForLanguage(LanguageDevice); got != "-Xcompiler=-a,-b" {
		t.Errorf("core_host device form = %q, want %q", got, "-Xcompiler=-a,-b")
	}
	if got := cfg.Targets["core_device_primary"].ForLanguage(LanguageDevice); got != "-Xcompiler=-c" {
		t.Errorf("core_device_primary device form = %q, want %q", got, "-Xcompiler=-c")
	}
	if _, ok := cfg.Targets["core_device_secondary"]; ok {
		t.Error("absent sub-target received a flag table")
	}

	// gnu host: C++14 stays, no diagnostic suppression.
	if cfg.Policy.CXXStandard != 14 {
		t.Errorf("CXXStandard = %d, want 14 for gnu host", cfg.Policy.CXXStandard)
	}
	if len(cfg.Flags.Device) != 0 {
		t.Errorf("suppression applied for gnu host: %v", cfg.Flags.Device)
	}
}

func TestResolveDeviceEnabledMSVC(t *testing.T) {
	r := newTestResolver(testDependency(), nil)

	cfg, err := r.Resolve(context.Background(), &ResolveOptions{
		BuildExtension:    true,
		UseDeviceCompiler: true,
		DeviceCompiler:    "nvcc",
		OSFamily:          OSWindows,
		Compiler:          "cl",
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if cfg.Policy.CXXStandard != 17 {
		t.Errorf("CXXStandard = %d, want 17 for msvc host with device compiler", cfg.Policy.CXXStandard)
	}
	if len(cfg.Flags.Device) == 0 {
		t.Fatal("expected suppression directives for msvc host")
	}
	joined := strings.Join(cfg.Flags.Device, " ")
	for _, id := range suppressedDiagnostics {
		if !strings.Contains(joined, "--diag_suppress="+id) {
			t.Errorf("device flags missing suppression for %s: %v", id, cfg.Flags.Device)
		}
	}
	if cfg.Flags.Host[0] != "/W4" {
		t.Errorf("host warning flags = %v, want /W4 first for msvc", cfg.Flags.Host)
	}
}

func TestResolveStandardOverrideWarningSurvives(t *testing.T) {
	r := newTestResolver(testDependency(), nil)

	cfg, err := r.Resolve(context.Background(), &ResolveOptions{
		BuildExtension: true,
		HostFlags:      "-O2 -std=c++17",
		OSFamily:       OSLinux,
		Compiler:       "g++",
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if !cfg.Policy.OverrideDetected {
		t.Error("OverrideDetected = false for flags containing -std=c++17")
	}
	if len(cfg.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", cfg.Warnings)
	}
	// The computed baseline wins over the user literal.
	if cfg.Policy.CXXStandard != 14 {
		t.Errorf("CXXStandard = %d, want 14", cfg.Policy.CXXStandard)
	}
}

func TestResolveDependencyMissing(t *testing.T) {
	r := newTestResolver(nil, DependencyError("torch", []string{"/opt/torch"}))

	cfg, err := r.Resolve(context.Background(), &ResolveOptions{
		BuildExtension: true,
		OSFamily:       OSLinux,
		Compiler:       "g++",
	})
	if err == nil {
		t.Fatal("expected error for missing dependency")
	}
	if !errors.Is(err, ErrDependencyMissing) {
		t.Errorf("error %v does not wrap ErrDependencyMissing", err)
	}
	// The run aborts before any target exists.
	if cfg != nil {
		t.Errorf("expected nil config after fatal error, got %+v", cfg)
	}
}

func TestResolveDeterministic(t *testing.T) {
	r := newTestResolver(testDependency(), nil)
	opts := &ResolveOptions{
		BuildExtension:    true,
		UseDeviceCompiler: true,
		DeviceCompiler:    "nvcc",
		OSFamily:          OSWindows,
		Compiler:          "cl",
	}

	first, err := r.Resolve(context.Background(), opts)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	second, err := r.Resolve(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Resolve failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated resolution differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestResolveCanceledContext(t *testing.T) {
	r := newTestResolver(testDependency(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.Resolve(ctx, &ResolveOptions{BuildExtension: true}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
