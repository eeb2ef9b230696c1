// The DockerEnvPrinter points a docker client at the engine inside the box.
// It yields the same variables as docker-machine env, read from the machine's URL
// and TLS options.

package env

import (
	"fmt"

	"github.com/windsorcli/boxctl/pkg/workstation/virt"
)

// =============================================================================
// Types
// =============================================================================

// DockerEnvPrinter computes DOCKER_* variables for a box
type DockerEnvPrinter struct {
	machine virt.Machine
	name    string
}

// =============================================================================
// Constructor
// =============================================================================

// NewDockerEnvPrinter creates a new DockerEnvPrinter for the named box
func NewDockerEnvPrinter(machine virt.Machine, name string) *DockerEnvPrinter {
	return &DockerEnvPrinter{
		machine: machine,
		name:    name,
	}
}

// =============================================================================
// Public Methods
// =============================================================================

// GetEnvVars returns DOCKER_HOST, DOCKER_TLS_VERIFY, DOCKER_CERT_PATH and DOCKER_MACHINE_NAME
func (e *DockerEnvPrinter) GetEnvVars() (map[string]string, error) {
	envVars, err := e.machine.DockerEnv(e.name)
	if err != nil {
		return nil, fmt.Errorf("error resolving docker environment for %s: %w", e.name, err)
	}
	return envVars, nil
}

// =============================================================================
// Interface Compliance
// =============================================================================

var _ EnvPrinter = (*DockerEnvPrinter)(nil)
