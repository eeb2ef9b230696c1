package runtime

import (
	"fmt"
	"io"
	"os"

	"github.com/windsorcli/boxctl/pkg/constants"
	"github.com/windsorcli/boxctl/pkg/runtime/config"
	"github.com/windsorcli/boxctl/pkg/runtime/env"
	"github.com/windsorcli/boxctl/pkg/runtime/notify"
	"github.com/windsorcli/boxctl/pkg/runtime/shell"
	"github.com/windsorcli/boxctl/pkg/runtime/tools"
	"github.com/windsorcli/boxctl/pkg/workstation/virt"
)

// The Runtime assembles the dependencies of a boxctl command.
// Loaders are chained and record the first error, which Do returns. A loader only
// fills fields that are still nil, so callers can inject mocks before loading.

// =============================================================================
// Types
// =============================================================================

// Runtime encapsulates the core boxctl dependencies for injection
type Runtime struct {
	Shell         shell.Shell
	ConfigHandler config.ConfigHandler
	ToolsManager  tools.ToolsManager
	Machine       virt.Machine
	Hypervisor    virt.Hypervisor
	Containers    virt.ContainerRuntime
	EnvPrinter    env.EnvPrinter

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Warnings holds the non-fatal findings of configuration validation
	Warnings []string

	err error
}

// =============================================================================
// Constructor
// =============================================================================

// NewRuntime creates a Runtime bound to the process standard streams
func NewRuntime() *Runtime {
	return &Runtime{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// =============================================================================
// Public Methods
// =============================================================================

// Do returns the first error recorded by the preceding loaders
func (r *Runtime) Do() error {
	return r.err
}

// LoadShell creates the shell and applies the verbosity
func (r *Runtime) LoadShell(verbose bool) *Runtime {
	if r.err != nil {
		return r
	}
	if r.Shell == nil {
		r.Shell = shell.NewDefaultShell()
	}
	r.Shell.SetVerbosity(verbose)
	return r
}

// LoadConfig loads and validates the box configuration. Validation warnings are
// printed and kept on the Runtime.
func (r *Runtime) LoadConfig() *Runtime {
	if r.err != nil {
		return r
	}
	if r.Shell == nil {
		r.err = fmt.Errorf("shell not loaded - call LoadShell() first")
		return r
	}
	if r.ConfigHandler == nil {
		r.ConfigHandler = config.NewConfigHandler(r.Shell)
	}
	if !r.ConfigHandler.IsLoaded() {
		if err := r.ConfigHandler.LoadConfig(); err != nil {
			r.err = err
			return r
		}
	}

	warnings, err := r.ConfigHandler.Validate()
	if err != nil {
		r.err = err
		return r
	}
	for _, warning := range warnings {
		notify.Warningf(r.Stderr, "%s", warning)
	}
	r.Warnings = warnings
	return r
}

// CheckTools verifies that each named tool is on PATH
func (r *Runtime) CheckTools(names ...string) *Runtime {
	if r.err != nil {
		return r
	}
	if r.Shell == nil {
		r.err = fmt.Errorf("shell not loaded - call LoadShell() first")
		return r
	}
	if r.ToolsManager == nil {
		r.ToolsManager = tools.NewToolsManager(r.Shell, r.Stderr)
	}
	r.err = r.ToolsManager.Require(names...)
	return r
}

// LoadVirt creates the machine, hypervisor, container runtime and docker environment
// for the configured box
func (r *Runtime) LoadVirt() *Runtime {
	if r.err != nil {
		return r
	}
	if r.Shell == nil || r.ConfigHandler == nil {
		r.err = fmt.Errorf("config not loaded - call LoadConfig() first")
		return r
	}

	name := r.ConfigHandler.GetString("vm.name")
	if r.Machine == nil {
		r.Machine = virt.NewDockerMachine(r.Shell, r.ConfigHandler.GetString("vm.driver", constants.DefaultDriver))
	}
	if r.Hypervisor == nil {
		r.Hypervisor = virt.NewVBoxManage(r.Shell)
	}
	if r.Containers == nil {
		r.Containers = virt.NewDockerRuntime(r.Shell, r.Machine, name)
	}
	if r.EnvPrinter == nil {
		r.EnvPrinter = env.NewDockerEnvPrinter(r.Machine, name)
	}
	return r
}

// Close releases the container runtime client
func (r *Runtime) Close() error {
	if r.Containers == nil {
		return nil
	}
	return r.Containers.Close()
}
