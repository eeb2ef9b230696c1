package virt

import (
	"strconv"
	"strings"

	"github.com/windsorcli/boxctl/pkg/constants"
	"github.com/windsorcli/boxctl/pkg/runtime/errdefs"
	"github.com/windsorcli/boxctl/pkg/runtime/shell"
)

// The VBoxManage wrapper covers the VirtualBox operations docker-machine leaves out:
// shared folders and guest properties. VM details are read from the machine readable
// showvminfo dump, which is one key=value record per line.

// =============================================================================
// Constants
// =============================================================================

const (
	sharedFolderNameKey = "SharedFolderNameMachineMapping"
	sharedFolderPathKey = "SharedFolderPathMachineMapping"
	guestPropertyPrefix = "Value:"
)

// =============================================================================
// Types
// =============================================================================

// VBoxManage implements Hypervisor on top of the VBoxManage CLI
type VBoxManage struct {
	*BaseVirt
}

// =============================================================================
// Constructor
// =============================================================================

// NewVBoxManage creates a new VBoxManage instance
func NewVBoxManage(sh shell.Shell) *VBoxManage {
	return &VBoxManage{
		BaseVirt: NewBaseVirt(sh),
	}
}

// =============================================================================
// Public Methods
// =============================================================================

// VMInfo returns the machine readable showvminfo records of the VM
func (h *VBoxManage) VMInfo(name string) (map[string]string, error) {
	args := []string{"showvminfo", name, "--machinereadable"}
	out, err := h.shell.ExecSilent(constants.HypervisorCommand, args...)
	if err != nil {
		return nil, errdefs.NewExternalToolError(constants.HypervisorCommand, args, err)
	}
	return parseMachineReadable(out), nil
}

// SharedFolders returns the machine level shared folders of the VM in mapping order
func (h *VBoxManage) SharedFolders(name string) ([]SharedFolder, error) {
	info, err := h.VMInfo(name)
	if err != nil {
		return nil, err
	}

	var folders []SharedFolder
	for i := 1; ; i++ {
		shareName, ok := info[sharedFolderNameKey+strconv.Itoa(i)]
		if !ok {
			break
		}
		folders = append(folders, SharedFolder{
			Name:     shareName,
			HostPath: info[sharedFolderPathKey+strconv.Itoa(i)],
		})
	}
	return folders, nil
}

// AddSharedFolder attaches a host directory to the VM. The VM must be powered off.
func (h *VBoxManage) AddSharedFolder(name string, folder SharedFolder) error {
	args := []string{"sharedfolder", "add", name, "--name", folder.Name, "--hostpath", folder.HostPath}
	if _, err := h.shell.ExecSilent(constants.HypervisorCommand, args...); err != nil {
		return errdefs.NewExternalToolError(constants.HypervisorCommand, args, err)
	}
	return nil
}

// GuestProperty reads a guest property, returning an empty string when it is unset
func (h *VBoxManage) GuestProperty(name, property string) (string, error) {
	args := []string{"guestproperty", "get", name, property}
	out, err := h.shell.ExecSilent(constants.HypervisorCommand, args...)
	if err != nil {
		return "", errdefs.NewExternalToolError(constants.HypervisorCommand, args, err)
	}

	out = strings.TrimSpace(out)
	if !strings.HasPrefix(out, guestPropertyPrefix) {
		return "", nil
	}
	return strings.TrimSpace(strings.TrimPrefix(out, guestPropertyPrefix)), nil
}

// =============================================================================
// Helpers
// =============================================================================

// parseMachineReadable parses key=value records, unquoting keys and values
func parseMachineReadable(out string) map[string]string {
	records := make(map[string]string)
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		records[unquote(key)] = unquote(value)
	}
	return records
}

// unquote strips one pair of surrounding double quotes
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}

// =============================================================================
// Interface Compliance
// =============================================================================

var _ Hypervisor = (*VBoxManage)(nil)
