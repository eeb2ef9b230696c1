package runtime

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/windsorcli/boxctl/pkg/runtime/config"
	"github.com/windsorcli/boxctl/pkg/runtime/errdefs"
	"github.com/windsorcli/boxctl/pkg/runtime/shell"
	"github.com/windsorcli/boxctl/pkg/runtime/tools"
	"github.com/windsorcli/boxctl/pkg/workstation/virt"
)

// =============================================================================
// Test Setup
// =============================================================================

type RuntimeTestMocks struct {
	Shell         *shell.MockShell
	ConfigHandler *config.MockConfigHandler
	Stderr        *bytes.Buffer
}

func setupRuntimeMocks(t *testing.T) (*Runtime, *RuntimeTestMocks) {
	t.Helper()

	mockShell := shell.NewMockShell()
	mockConfig := config.NewMockConfigHandler()
	mockConfig.IsLoadedFunc = func() bool { return false }
	mockConfig.GetStringFunc = func(key string, defaultValue ...string) string {
		if key == "vm.name" {
			return "dev-box"
		}
		if len(defaultValue) > 0 {
			return defaultValue[0]
		}
		return ""
	}

	stderr := &bytes.Buffer{}
	rt := NewRuntime()
	rt.Shell = mockShell
	rt.ConfigHandler = mockConfig
	rt.Stdout = &bytes.Buffer{}
	rt.Stderr = stderr

	return rt, &RuntimeTestMocks{
		Shell:         mockShell,
		ConfigHandler: mockConfig,
		Stderr:        stderr,
	}
}

// =============================================================================
// Test Public Methods
// =============================================================================

func TestRuntime_LoadShell(t *testing.T) {
	t.Run("AppliesVerbosity", func(t *testing.T) {
		// Given a runtime with a mock shell
		rt, mocks := setupRuntimeMocks(t)
		var verbose bool
		mocks.Shell.SetVerbosityFunc = func(v bool) {
			verbose = v
		}

		// When loading the shell verbosely
		err := rt.LoadShell(true).Do()

		// Then verbosity should be enabled
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !verbose {
			t.Error("Expected verbosity to be set")
		}
	})

	t.Run("CreatesDefaultShell", func(t *testing.T) {
		rt := NewRuntime()

		if err := rt.LoadShell(false).Do(); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if _, ok := rt.Shell.(*shell.DefaultShell); !ok {
			t.Errorf("Expected *shell.DefaultShell, got %T", rt.Shell)
		}
	})
}

func TestRuntime_LoadConfig(t *testing.T) {
	t.Run("PrintsWarnings", func(t *testing.T) {
		// Given validation that reports a warning
		rt, mocks := setupRuntimeMocks(t)
		mocks.ConfigHandler.ValidateFunc = func() ([]string, error) {
			return []string{"memory exceeds host memory"}, nil
		}

		// When loading config
		err := rt.LoadConfig().Do()

		// Then the warning is printed and kept
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !strings.Contains(mocks.Stderr.String(), "memory exceeds host memory") {
			t.Errorf("Expected warning on stderr, got %q", mocks.Stderr.String())
		}
		if len(rt.Warnings) != 1 {
			t.Errorf("Expected 1 warning, got %d", len(rt.Warnings))
		}
	})

	t.Run("LoadError", func(t *testing.T) {
		rt, mocks := setupRuntimeMocks(t)
		mocks.ConfigHandler.LoadConfigFunc = func() error {
			return &errdefs.ConfigurationError{Reason: "bad yaml"}
		}

		err := rt.LoadConfig().Do()

		if !errdefs.IsConfiguration(err) {
			t.Errorf("Expected configuration error, got %v", err)
		}
	})

	t.Run("SkipsLoadWhenLoaded", func(t *testing.T) {
		rt, mocks := setupRuntimeMocks(t)
		mocks.ConfigHandler.IsLoadedFunc = func() bool { return true }
		mocks.ConfigHandler.LoadConfigFunc = func() error {
			t.Error("Expected LoadConfig not to be called")
			return nil
		}

		if err := rt.LoadConfig().Do(); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	})

	t.Run("ValidationError", func(t *testing.T) {
		rt, mocks := setupRuntimeMocks(t)
		mocks.ConfigHandler.ValidateFunc = func() ([]string, error) {
			return nil, &errdefs.ConfigurationError{Key: "vm.name", Reason: "is required"}
		}

		err := rt.LoadConfig().Do()

		if errdefs.ExitCode(err) != errdefs.ExitConfiguration {
			t.Errorf("Expected exit code %d, got %d", errdefs.ExitConfiguration, errdefs.ExitCode(err))
		}
	})

	t.Run("RequiresShell", func(t *testing.T) {
		rt := NewRuntime()

		if err := rt.LoadConfig().Do(); err == nil {
			t.Error("Expected error, got nil")
		}
	})
}

func TestRuntime_CheckTools(t *testing.T) {
	t.Run("AllPresent", func(t *testing.T) {
		rt, _ := setupRuntimeMocks(t)

		if err := rt.CheckTools("docker-machine", "VBoxManage").Do(); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("MissingTool", func(t *testing.T) {
		// Given VBoxManage is not on PATH
		rt, mocks := setupRuntimeMocks(t)
		mocks.Shell.LookPathFunc = func(name string) (string, error) {
			if name == "VBoxManage" {
				return "", errors.New("executable file not found in $PATH")
			}
			return "/usr/local/bin/" + name, nil
		}

		// When checking tools
		err := rt.CheckTools("docker-machine", "VBoxManage").Do()

		// Then the error maps onto exit code 127 and names the tool
		if errdefs.ExitCode(err) != errdefs.ExitToolNotFound {
			t.Errorf("Expected exit code 127, got %d", errdefs.ExitCode(err))
		}
		if !strings.Contains(err.Error(), "VBoxManage") {
			t.Errorf("Expected error to name VBoxManage, got %v", err)
		}
	})

	t.Run("UsesInjectedToolsManager", func(t *testing.T) {
		rt, _ := setupRuntimeMocks(t)
		manager := tools.NewMockToolsManager()
		var required []string
		manager.RequireFunc = func(names ...string) error {
			required = names
			return nil
		}
		rt.ToolsManager = manager

		if err := rt.CheckTools("docker-machine", "VBoxManage").Do(); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(required) != 2 {
			t.Errorf("Expected two tools, got %v", required)
		}
	})

	t.Run("StopsAfterError", func(t *testing.T) {
		rt, mocks := setupRuntimeMocks(t)
		mocks.ConfigHandler.LoadConfigFunc = func() error {
			return errors.New("load failed")
		}
		mocks.Shell.LookPathFunc = func(name string) (string, error) {
			t.Error("Expected LookPath not to be called")
			return "", nil
		}

		if err := rt.LoadConfig().CheckTools("docker").Do(); err == nil {
			t.Error("Expected error, got nil")
		}
	})
}

func TestRuntime_LoadVirt(t *testing.T) {
	t.Run("CreatesDefaults", func(t *testing.T) {
		rt, _ := setupRuntimeMocks(t)

		if err := rt.LoadVirt().Do(); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if _, ok := rt.Machine.(*virt.DockerMachine); !ok {
			t.Errorf("Expected *virt.DockerMachine, got %T", rt.Machine)
		}
		if _, ok := rt.Hypervisor.(*virt.VBoxManage); !ok {
			t.Errorf("Expected *virt.VBoxManage, got %T", rt.Hypervisor)
		}
		if rt.Containers == nil || rt.EnvPrinter == nil {
			t.Error("Expected container runtime and env printer to be set")
		}
	})

	t.Run("KeepsInjected", func(t *testing.T) {
		rt, _ := setupRuntimeMocks(t)
		machine := virt.NewMockMachine()
		rt.Machine = machine

		if err := rt.LoadVirt().Do(); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if rt.Machine != machine {
			t.Error("Expected injected machine to be kept")
		}
	})

	t.Run("RequiresConfig", func(t *testing.T) {
		rt := NewRuntime()

		if err := rt.LoadVirt().Do(); err == nil {
			t.Error("Expected error, got nil")
		}
	})
}

func TestRuntime_Close(t *testing.T) {
	t.Run("ClosesContainers", func(t *testing.T) {
		rt, _ := setupRuntimeMocks(t)
		containers := virt.NewMockContainerRuntime()
		closed := false
		containers.CloseFunc = func() error {
			closed = true
			return nil
		}
		rt.Containers = containers

		if err := rt.Close(); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !closed {
			t.Error("Expected container runtime to be closed")
		}
	})
}
