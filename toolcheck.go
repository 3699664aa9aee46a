package toolchain

import (
	"fmt"
	"os/exec"
	"strings"
)

// ToolRequirement describes an external toolchain executable the
// resolution run depends on.
//
// Requirements distinguish:
//   - Required tools (must be available)
//   - Optional tools (checked, but missing ones don't fail)
//   - Alternative tools (any one of several satisfies the requirement)
//
// Example:
//
//	ToolRequirement{
//	    Name:         "c++",
//	    Alternatives: []string{"clang++", "g++"},
//	    Purpose:      "host C++ compiler",
//	}
type ToolRequirement struct {
	// Name is the primary executable name (e.g. "nvcc").
	Name string

	// Alternatives are executable names that also satisfy this
	// requirement. The requirement is met if any of them is found.
	Alternatives []string

	// Optional marks tools that are checked but never fail the run.
	Optional bool

	// Purpose is a human-readable reason the tool is needed,
	// included in error messages.
	Purpose string
}

// RequiredTools returns the external tools a resolution run with the
// given options depends on. Callers can check these before Resolve to
// fail fast with a better message than a mid-run error.
func (r *Resolver) RequiredTools(opts *ResolveOptions) []ToolRequirement {
	if opts == nil || !opts.BuildExtension {
		return nil
	}

	tools := []ToolRequirement{
		{
			Name:         "c++",
			Alternatives: []string{"clang++", "g++", "cl"},
			Purpose:      "host C++ compiler",
		},
	}
	if opts.UseDeviceCompiler && opts.DeviceCompiler == "" {
		tools = append(tools, ToolRequirement{
			Name:    defaultDeviceCompiler,
			Purpose: "device compiler for accelerator sources",
		})
	}
	return tools
}

// CheckTools verifies that the tools a resolution run needs are
// available, returning an error naming every missing required tool.
func (r *Resolver) CheckTools(opts *ResolveOptions) error {
	return CheckRequiredTools(r.RequiredTools(opts))
}

// CheckToolAvailable checks if a tool is available in the system PATH.
//
// Returns nil if the tool is found, or an error naming the tool.
//
// This function is thread-safe and can be called concurrently.
func CheckToolAvailable(tool string) error {
	if _, err := exec.LookPath(tool); err != nil {
		return fmt.Errorf("%s not found in PATH", tool)
	}
	return nil
}

// CheckRequiredTools verifies all required tools are available.
//
// The primary name is checked first, then each alternative in order.
// Optional tools never cause errors. All missing required tools are
// reported in a single error.
//
// This function is thread-safe and can be called concurrently.
func CheckRequiredTools(requirements []ToolRequirement) error {
	var missing []string

	for _, req := range requirements {
		found := CheckToolAvailable(req.Name) == nil
		if !found {
			for _, alt := range req.Alternatives {
				if CheckToolAvailable(alt) == nil {
					found = true
					break
				}
			}
		}
		if !found && !req.Optional {
			if req.Purpose != "" {
				missing = append(missing, fmt.Sprintf("%s (%s)", req.Name, req.Purpose))
			} else {
				missing = append(missing, req.Name)
			}
		}
	}

	if len(missing) == 0 {
		return nil
	}
	if len(missing) == 1 {
		return fmt.Errorf("%s not found in PATH", missing[0])
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}
