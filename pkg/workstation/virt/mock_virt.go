// The mock_virt file holds test implementations of the virt interfaces
// Each mock exposes a function field per method and falls back to zero values when unset

package virt

import (
	"context"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
)

// =============================================================================
// Types
// =============================================================================

// MockMachine is a mock implementation of the Machine interface
type MockMachine struct {
	ListFunc        func() ([]MachineRecord, error)
	StatusFunc      func(name string) (string, error)
	CreateFunc      func(name string, memoryMB, diskMB int) error
	StartFunc       func(name string) error
	StopFunc        func(name string) error
	RestartFunc     func(name string) error
	RemoveFunc      func(name string) error
	InspectFunc     func(name string) (string, error)
	SSHFunc         func(name string, script string) (string, error)
	ConnectFunc     func(name string, command string) error
	URLFunc         func(name string) (string, error)
	AuthOptionsFunc func(name string) (AuthOptions, error)
	DockerEnvFunc   func(name string) (map[string]string, error)
}

// MockHypervisor is a mock implementation of the Hypervisor interface
type MockHypervisor struct {
	VMInfoFunc          func(name string) (map[string]string, error)
	SharedFoldersFunc   func(name string) ([]SharedFolder, error)
	AddSharedFolderFunc func(name string, folder SharedFolder) error
	GuestPropertyFunc   func(name, property string) (string, error)
}

// MockContainerRuntime is a mock implementation of the ContainerRuntime interface
type MockContainerRuntime struct {
	ContainersFunc func(ctx context.Context) ([]Container, error)
	ImagesFunc     func(ctx context.Context) ([]Image, error)
	ContainerFunc  func(ctx context.Context, id string) (Container, error)
	CloseFunc      func() error
}

// MockDockerAPI is a mock implementation of the DockerAPI interface
type MockDockerAPI struct {
	ContainerListFunc    func(ctx context.Context, options container.ListOptions) ([]container.Summary, error)
	ImageListFunc        func(ctx context.Context, options image.ListOptions) ([]image.Summary, error)
	ContainerInspectFunc func(ctx context.Context, containerID string) (container.InspectResponse, error)
	CloseFunc            func() error
}

// =============================================================================
// Constructors
// =============================================================================

// NewMockMachine creates a new MockMachine
func NewMockMachine() *MockMachine {
	return &MockMachine{}
}

// NewMockHypervisor creates a new MockHypervisor
func NewMockHypervisor() *MockHypervisor {
	return &MockHypervisor{}
}

// NewMockContainerRuntime creates a new MockContainerRuntime
func NewMockContainerRuntime() *MockContainerRuntime {
	return &MockContainerRuntime{}
}

// NewMockDockerAPI creates a new MockDockerAPI
func NewMockDockerAPI() *MockDockerAPI {
	return &MockDockerAPI{}
}

// =============================================================================
// MockMachine
// =============================================================================

func (m *MockMachine) List() ([]MachineRecord, error) {
	if m.ListFunc != nil {
		return m.ListFunc()
	}
	return nil, nil
}

func (m *MockMachine) Status(name string) (string, error) {
	if m.StatusFunc != nil {
		return m.StatusFunc(name)
	}
	return "", nil
}

func (m *MockMachine) Create(name string, memoryMB, diskMB int) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(name, memoryMB, diskMB)
	}
	return nil
}

func (m *MockMachine) Start(name string) error {
	if m.StartFunc != nil {
		return m.StartFunc(name)
	}
	return nil
}

func (m *MockMachine) Stop(name string) error {
	if m.StopFunc != nil {
		return m.StopFunc(name)
	}
	return nil
}

func (m *MockMachine) Restart(name string) error {
	if m.RestartFunc != nil {
		return m.RestartFunc(name)
	}
	return nil
}

func (m *MockMachine) Remove(name string) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(name)
	}
	return nil
}

func (m *MockMachine) Inspect(name string) (string, error) {
	if m.InspectFunc != nil {
		return m.InspectFunc(name)
	}
	return "", nil
}

func (m *MockMachine) SSH(name string, script string) (string, error) {
	if m.SSHFunc != nil {
		return m.SSHFunc(name, script)
	}
	return "", nil
}

func (m *MockMachine) Connect(name string, command string) error {
	if m.ConnectFunc != nil {
		return m.ConnectFunc(name, command)
	}
	return nil
}

func (m *MockMachine) URL(name string) (string, error) {
	if m.URLFunc != nil {
		return m.URLFunc(name)
	}
	return "", nil
}

func (m *MockMachine) AuthOptions(name string) (AuthOptions, error) {
	if m.AuthOptionsFunc != nil {
		return m.AuthOptionsFunc(name)
	}
	return AuthOptions{}, nil
}

func (m *MockMachine) DockerEnv(name string) (map[string]string, error) {
	if m.DockerEnvFunc != nil {
		return m.DockerEnvFunc(name)
	}
	return map[string]string{}, nil
}

// =============================================================================
// MockHypervisor
// =============================================================================

func (m *MockHypervisor) VMInfo(name string) (map[string]string, error) {
	if m.VMInfoFunc != nil {
		return m.VMInfoFunc(name)
	}
	return map[string]string{}, nil
}

func (m *MockHypervisor) SharedFolders(name string) ([]SharedFolder, error) {
	if m.SharedFoldersFunc != nil {
		return m.SharedFoldersFunc(name)
	}
	return nil, nil
}

func (m *MockHypervisor) AddSharedFolder(name string, folder SharedFolder) error {
	if m.AddSharedFolderFunc != nil {
		return m.AddSharedFolderFunc(name, folder)
	}
	return nil
}

func (m *MockHypervisor) GuestProperty(name, property string) (string, error) {
	if m.GuestPropertyFunc != nil {
		return m.GuestPropertyFunc(name, property)
	}
	return "", nil
}

// =============================================================================
// MockContainerRuntime
// =============================================================================

func (m *MockContainerRuntime) Containers(ctx context.Context) ([]Container, error) {
	if m.ContainersFunc != nil {
		return m.ContainersFunc(ctx)
	}
	return nil, nil
}

func (m *MockContainerRuntime) Images(ctx context.Context) ([]Image, error) {
	if m.ImagesFunc != nil {
		return m.ImagesFunc(ctx)
	}
	return nil, nil
}

func (m *MockContainerRuntime) Container(ctx context.Context, id string) (Container, error) {
	if m.ContainerFunc != nil {
		return m.ContainerFunc(ctx, id)
	}
	return Container{ID: id}, nil
}

func (m *MockContainerRuntime) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// =============================================================================
// MockDockerAPI
// =============================================================================

func (m *MockDockerAPI) ContainerList(ctx context.Context, options container.ListOptions) ([]container.Summary, error) {
	if m.ContainerListFunc != nil {
		return m.ContainerListFunc(ctx, options)
	}
	return nil, nil
}

func (m *MockDockerAPI) ImageList(ctx context.Context, options image.ListOptions) ([]image.Summary, error) {
	if m.ImageListFunc != nil {
		return m.ImageListFunc(ctx, options)
	}
	return nil, nil
}

func (m *MockDockerAPI) ContainerInspect(ctx context.Context, containerID string) (container.InspectResponse, error) {
	if m.ContainerInspectFunc != nil {
		return m.ContainerInspectFunc(ctx, containerID)
	}
	return container.InspectResponse{}, nil
}

func (m *MockDockerAPI) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// =============================================================================
// Interface Compliance
// =============================================================================

var _ Machine = (*MockMachine)(nil)
var _ Hypervisor = (*MockHypervisor)(nil)
var _ ContainerRuntime = (*MockContainerRuntime)(nil)
var _ DockerAPI = (*MockDockerAPI)(nil)
