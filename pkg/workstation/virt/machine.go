package virt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/windsorcli/boxctl/pkg/constants"
	"github.com/windsorcli/boxctl/pkg/runtime/errdefs"
	"github.com/windsorcli/boxctl/pkg/runtime/shell"
)

// The DockerMachine drives the box lifecycle through the docker-machine CLI.
// Listings use docker-machine's format templates so records are parsed from
// tab separated fields rather than from the human readable table.

// =============================================================================
// Constants
// =============================================================================

// listFormat renders one tab separated record per machine
const listFormat = "{{.Name}}\t{{.DriverName}}\t{{.State}}"

// authOptionsFormat renders the TLS options of a machine as JSON
const authOptionsFormat = "{{json .HostOptions.AuthOptions}}"

// =============================================================================
// Types
// =============================================================================

// DockerMachine implements Machine on top of docker-machine
type DockerMachine struct {
	*BaseVirt
	driver string
}

// =============================================================================
// Constructor
// =============================================================================

// NewDockerMachine creates a DockerMachine that only sees machines of the given driver
func NewDockerMachine(sh shell.Shell, driver string) *DockerMachine {
	return &DockerMachine{
		BaseVirt: NewBaseVirt(sh),
		driver:   driver,
	}
}

// =============================================================================
// Public Methods
// =============================================================================

// List returns the machines managed by docker-machine for the configured driver
func (m *DockerMachine) List() ([]MachineRecord, error) {
	args := []string{"ls", "--filter", "driver=" + m.driver, "--format", listFormat}
	out, err := m.shell.ExecSilent(constants.MachineCommand, args...)
	if err != nil {
		return nil, errdefs.NewExternalToolError(constants.MachineCommand, args, err)
	}
	return parseMachineList(out), nil
}

// Status returns the state reported by docker-machine status
func (m *DockerMachine) Status(name string) (string, error) {
	args := []string{"status", name}
	out, err := m.shell.ExecSilent(constants.MachineCommand, args...)
	if err != nil {
		return "", errdefs.NewExternalToolError(constants.MachineCommand, args, err)
	}
	return strings.TrimSpace(out), nil
}

// Create creates a virtualbox machine without automatic host shares
func (m *DockerMachine) Create(name string, memoryMB, diskMB int) error {
	args := []string{
		"create",
		"--driver", m.driver,
		"--virtualbox-memory", strconv.Itoa(memoryMB),
		"--virtualbox-disk-size", strconv.Itoa(diskMB),
		"--virtualbox-no-share",
		name,
	}
	return m.progress(fmt.Sprintf("Creating box %s", name), args)
}

// Start boots the machine
func (m *DockerMachine) Start(name string) error {
	return m.progress(fmt.Sprintf("Starting box %s", name), []string{"start", name})
}

// Stop powers the machine off
func (m *DockerMachine) Stop(name string) error {
	return m.progress(fmt.Sprintf("Stopping box %s", name), []string{"stop", name})
}

// Restart reboots the machine so its boot script runs
func (m *DockerMachine) Restart(name string) error {
	return m.progress(fmt.Sprintf("Restarting box %s", name), []string{"restart", name})
}

// Remove deletes the machine without prompting
func (m *DockerMachine) Remove(name string) error {
	return m.progress(fmt.Sprintf("Removing box %s", name), []string{"rm", "-y", name})
}

// Inspect returns the raw docker-machine inspect document
func (m *DockerMachine) Inspect(name string) (string, error) {
	args := []string{"inspect", name}
	out, err := m.shell.ExecSilent(constants.MachineCommand, args...)
	if err != nil {
		return "", errdefs.NewExternalToolError(constants.MachineCommand, args, err)
	}
	return out, nil
}

// SSH runs script on the machine and returns its output
func (m *DockerMachine) SSH(name string, script string) (string, error) {
	args := []string{"ssh", name, script}
	out, err := m.shell.ExecSilent(constants.MachineCommand, args...)
	if err != nil {
		return out, errdefs.NewExternalToolError(constants.MachineCommand, []string{"ssh", name}, err)
	}
	return out, nil
}

// Connect replaces the current process with an interactive ssh session.
// When command is not empty it is run on connect.
func (m *DockerMachine) Connect(name string, command string) error {
	args := []string{"ssh", name}
	if command != "" {
		args = append(args, command)
	}
	if err := m.shell.ExecReplace(nil, constants.MachineCommand, args...); err != nil {
		return errdefs.NewExternalToolError(constants.MachineCommand, args, err)
	}
	return nil
}

// URL returns the docker engine URL of the machine
func (m *DockerMachine) URL(name string) (string, error) {
	args := []string{"url", name}
	out, err := m.shell.ExecSilent(constants.MachineCommand, args...)
	if err != nil {
		return "", errdefs.NewExternalToolError(constants.MachineCommand, args, err)
	}
	return strings.TrimSpace(out), nil
}

// AuthOptions returns the TLS material of the machine
func (m *DockerMachine) AuthOptions(name string) (AuthOptions, error) {
	args := []string{"inspect", "--format", authOptionsFormat, name}
	out, err := m.shell.ExecSilent(constants.MachineCommand, args...)
	if err != nil {
		return AuthOptions{}, errdefs.NewExternalToolError(constants.MachineCommand, args, err)
	}

	var auth AuthOptions
	if err := m.shims.UnmarshalJSON([]byte(strings.TrimSpace(out)), &auth); err != nil {
		return AuthOptions{}, fmt.Errorf("error parsing auth options of %s: %w", name, err)
	}
	return auth, nil
}

// DockerEnv returns the environment pointing a docker client at the machine engine
func (m *DockerMachine) DockerEnv(name string) (map[string]string, error) {
	url, err := m.URL(name)
	if err != nil {
		return nil, err
	}
	auth, err := m.AuthOptions(name)
	if err != nil {
		return nil, err
	}

	certPath := auth.StorePath
	if certPath == "" {
		certPath = auth.CertDir
	}

	return map[string]string{
		"DOCKER_HOST":         url,
		"DOCKER_TLS_VERIFY":   "1",
		"DOCKER_CERT_PATH":    certPath,
		"DOCKER_MACHINE_NAME": name,
	}, nil
}

// =============================================================================
// Private Methods
// =============================================================================

// progress runs a mutating docker-machine command behind a progress line
func (m *DockerMachine) progress(message string, args []string) error {
	if _, err := m.shell.ExecProgress(message, constants.MachineCommand, args...); err != nil {
		return errdefs.NewExternalToolError(constants.MachineCommand, args, err)
	}
	return nil
}

// =============================================================================
// Helpers
// =============================================================================

// parseMachineList parses tab separated name, driver and state records
func parseMachineList(out string) []MachineRecord {
	var records []MachineRecord
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		record := MachineRecord{Name: strings.TrimSpace(fields[0])}
		if len(fields) > 1 {
			record.Driver = strings.TrimSpace(fields[1])
		}
		if len(fields) > 2 {
			record.State = strings.TrimSpace(fields[2])
		}
		records = append(records, record)
	}
	return records
}

// =============================================================================
// Interface Compliance
// =============================================================================

var _ Machine = (*DockerMachine)(nil)
