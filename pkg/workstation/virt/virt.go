// The virt package wraps the external tools that own the box.
// It provides the docker-machine lifecycle wrapper, the VBoxManage hypervisor wrapper
// and the docker engine client used to look inside the box.
// Every tool call goes through the shell so it can be replaced in tests.

package virt

import (
	"github.com/windsorcli/boxctl/pkg/runtime/shell"
)

// =============================================================================
// Types
// =============================================================================

// MachineRecord is one line of the docker-machine listing
type MachineRecord struct {
	Name   string
	Driver string
	State  string
}

// AuthOptions holds the TLS material docker-machine generated for a box
type AuthOptions struct {
	CertDir        string `json:"CertDir"`
	CaCertPath     string `json:"CaCertPath"`
	ServerCertPath string `json:"ServerCertPath"`
	ServerKeyPath  string `json:"ServerKeyPath"`
	ClientCertPath string `json:"ClientCertPath"`
	ClientKeyPath  string `json:"ClientKeyPath"`
	StorePath      string `json:"StorePath"`
}

// SharedFolder is a hypervisor level shared folder
type SharedFolder struct {
	Name     string
	HostPath string
}

// Container is a container known to the box engine
type Container struct {
	ID     string
	Name   string
	Image  string
	State  string
	Status string
}

// Image is an image known to the box engine
type Image struct {
	ID  string
	Tag string
}

// BaseVirt holds what every tool wrapper shares
type BaseVirt struct {
	shell shell.Shell
	shims *Shims
}

// =============================================================================
// Interfaces
// =============================================================================

// Machine defines the box lifecycle operations backed by docker-machine
type Machine interface {
	List() ([]MachineRecord, error)
	Status(name string) (string, error)
	Create(name string, memoryMB, diskMB int) error
	Start(name string) error
	Stop(name string) error
	Restart(name string) error
	Remove(name string) error
	Inspect(name string) (string, error)
	SSH(name string, script string) (string, error)
	Connect(name string, command string) error
	URL(name string) (string, error)
	AuthOptions(name string) (AuthOptions, error)
	DockerEnv(name string) (map[string]string, error)
}

// Hypervisor defines the VirtualBox operations that docker-machine does not cover
type Hypervisor interface {
	VMInfo(name string) (map[string]string, error)
	SharedFolders(name string) ([]SharedFolder, error)
	AddSharedFolder(name string, folder SharedFolder) error
	GuestProperty(name, property string) (string, error)
}

// =============================================================================
// Constructor
// =============================================================================

// NewBaseVirt creates a new BaseVirt instance
func NewBaseVirt(sh shell.Shell) *BaseVirt {
	return &BaseVirt{
		shell: sh,
		shims: NewShims(),
	}
}

// setShims sets the shims for testing purposes
func (v *BaseVirt) setShims(shims *Shims) {
	v.shims = shims
}
