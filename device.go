package toolchain

import (
	"context"
	"fmt"
)

// defaultDeviceCompiler is the conventional device compiler driver.
const defaultDeviceCompiler = "nvcc"

// deviceStep registers the secondary device compiler toolchain.
//
// This step only runs when the device toolchain was explicitly requested;
// a run without the request never reaches it, keeping the disabled mode
// byte-identical to a build with no device-toolchain awareness.
//
// A caller-supplied compiler path is trusted as-is. Only the default
// compiler name is probed on PATH, and a missing default is fatal: the
// caller asked for a toolchain that cannot be registered.
func (r *Resolver) deviceStep(ctx context.Context, opts *ResolveOptions, st runState) (runState, error) {
	compiler := opts.DeviceCompiler
	if compiler == "" {
		compiler = defaultDeviceCompiler
		if err := CheckToolAvailable(compiler); err != nil {
			return st, fmt.Errorf("device toolchain requested but %w", err)
		}
	}

	st.config.Device = DeviceToolchain{
		Enabled:  true,
		Compiler: compiler,
	}
	return st, nil
}
