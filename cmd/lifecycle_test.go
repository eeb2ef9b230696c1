package cmd

import (
	"strings"
	"testing"

	"github.com/windsorcli/boxctl/pkg/runtime/errdefs"
	"github.com/windsorcli/boxctl/pkg/workstation/virt"
)

func TestStopCmd(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		captureOutput(t)
		mocks := setupMocks(t)
		rootCmd.SetArgs([]string{"stop"})

		if err := Execute(); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if strings.Join(mocks.Calls, ",") != "stop dev-box" {
			t.Errorf("Expected stop, got %v", mocks.Calls)
		}
	})

	t.Run("MissingBox", func(t *testing.T) {
		// Given no box exists
		_, stderr := captureOutput(t)
		mocks := setupMocks(t)
		mocks.Machine.ListFunc = func() ([]virt.MachineRecord, error) {
			return nil, nil
		}
		rootCmd.SetArgs([]string{"stop"})

		// When stopping
		err := Execute()

		// Then the exit code is 3 and the error is printed
		if errdefs.ExitCode(err) != errdefs.ExitNotFound {
			t.Errorf("Expected exit code 3, got %d", errdefs.ExitCode(err))
		}
		if !strings.Contains(stderr.String(), "box dev-box does not exist") {
			t.Errorf("Expected error on stderr, got %q", stderr.String())
		}
		if len(mocks.Calls) != 0 {
			t.Errorf("Expected no calls, got %v", mocks.Calls)
		}
	})
}

func TestRmCmd(t *testing.T) {
	captureOutput(t)
	mocks := setupMocks(t)
	rootCmd.SetArgs([]string{"rm"})

	if err := Execute(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if strings.Join(mocks.Calls, ",") != "rm dev-box" {
		t.Errorf("Expected rm, got %v", mocks.Calls)
	}
}

func TestStatusCmd(t *testing.T) {
	stdout, _ := captureOutput(t)
	setupMocks(t)
	rootCmd.SetArgs([]string{"status"})

	if err := Execute(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if stdout.String() != "Running\n" {
		t.Errorf("Expected Running, got %q", stdout.String())
	}
}

func TestInspectCmd(t *testing.T) {
	stdout, _ := captureOutput(t)
	mocks := setupMocks(t)
	mocks.Machine.InspectFunc = func(name string) (string, error) {
		return "{\"Name\": \"dev-box\"}\n", nil
	}
	rootCmd.SetArgs([]string{"inspect"})

	if err := Execute(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(stdout.String(), `"Name": "dev-box"`) {
		t.Errorf("Unexpected output %q", stdout.String())
	}
}
