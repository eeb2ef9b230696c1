// This file defines the built-in configuration for boxctl.
// It is the lowest layer; user, project and environment settings are merged on top of it.

package config

import (
	"github.com/windsorcli/boxctl/api/v1alpha1"
	"github.com/windsorcli/boxctl/api/v1alpha1/docker"
	"github.com/windsorcli/boxctl/api/v1alpha1/vm"
	"github.com/windsorcli/boxctl/pkg/constants"
)

// DefaultConfig holds the values used when no other layer sets them.
// The box name has no default and must be configured.
var DefaultConfig = v1alpha1.Config{
	Version: "v1alpha1",
	VM: &vm.VMConfig{
		Driver:      ptrString(constants.DefaultDriver),
		Memory:      ptrInt(constants.DefaultMemory),
		Disk:        ptrInt(constants.DefaultDisk),
		DisableSwap: ptrBool(false),
		BootScript:  ptrString(constants.DefaultBootScript),
	},
	Docker: &docker.DockerConfig{
		ExecCommand: ptrString(constants.DefaultExecCommand),
	},
}

// =============================================================================
// Helpers
// =============================================================================

func ptrString(s string) *string {
	return &s
}

func ptrInt(i int) *int {
	return &i
}

func ptrBool(b bool) *bool {
	return &b
}
