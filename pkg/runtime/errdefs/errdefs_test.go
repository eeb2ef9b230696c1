package errdefs

import (
	"errors"
	"fmt"
	"os/exec"
	"testing"
)

// =============================================================================
// Test Helpers
// =============================================================================

// exitError runs a shell that exits with the given status and returns its *exec.ExitError
func exitError(t *testing.T, status int) error {
	t.Helper()
	err := exec.Command("sh", "-c", fmt.Sprintf("exit %d", status)).Run()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Expected *exec.ExitError, got %v", err)
	}
	return err
}

// =============================================================================
// Test Public Functions
// =============================================================================

func TestErrdefs_ExitCode(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		if code := ExitCode(nil); code != ExitOK {
			t.Errorf("Expected %d, got %d", ExitOK, code)
		}
	})

	t.Run("Configuration", func(t *testing.T) {
		// Given a wrapped configuration error
		err := fmt.Errorf("loading: %w", &ConfigurationError{Key: "vm.name", Reason: "must be set"})

		// Then the configuration exit code should be returned
		if code := ExitCode(err); code != ExitConfiguration {
			t.Errorf("Expected %d, got %d", ExitConfiguration, code)
		}
		if !IsConfiguration(err) {
			t.Error("Expected IsConfiguration to be true")
		}
	})

	t.Run("ToolNotFound", func(t *testing.T) {
		err := &ToolNotFoundError{Tool: "VBoxManage", Err: exec.ErrNotFound}

		if code := ExitCode(err); code != ExitToolNotFound {
			t.Errorf("Expected %d, got %d", ExitToolNotFound, code)
		}
		if !errors.Is(err, exec.ErrNotFound) {
			t.Error("Expected ToolNotFoundError to unwrap to exec.ErrNotFound")
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := fmt.Errorf("stop: %w", &ResourceNotFoundError{Kind: "box", Name: "dev-box"})

		if code := ExitCode(err); code != ExitNotFound {
			t.Errorf("Expected %d, got %d", ExitNotFound, code)
		}
		if !IsNotFound(err) {
			t.Error("Expected IsNotFound to be true")
		}
		if err.Error() != "stop: box dev-box does not exist" {
			t.Errorf("Unexpected message %q", err.Error())
		}
	})

	t.Run("ExternalToolPassesThroughStatus", func(t *testing.T) {
		// Given a tool that exited with status 42
		err := NewExternalToolError("docker", []string{"ps"}, fmt.Errorf("command execution failed: %w", exitError(t, 42)))

		// Then the status should be passed through
		if code := ExitCode(err); code != 42 {
			t.Errorf("Expected 42, got %d", code)
		}
	})

	t.Run("BareExitErrorPassesThroughStatus", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", exitError(t, 5))

		if code := ExitCode(err); code != 5 {
			t.Errorf("Expected 5, got %d", code)
		}
	})

	t.Run("ExternalToolWithoutExitStatus", func(t *testing.T) {
		err := NewExternalToolError("docker-machine", []string{"ls"}, errors.New("start failed"))

		if code := ExitCode(err); code != ExitFailure {
			t.Errorf("Expected %d, got %d", ExitFailure, code)
		}
	})

	t.Run("Generic", func(t *testing.T) {
		if code := ExitCode(errors.New("boom")); code != ExitFailure {
			t.Errorf("Expected %d, got %d", ExitFailure, code)
		}
	})
}

func TestErrdefs_NewExternalToolError(t *testing.T) {
	t.Run("KeepsInnerStatus", func(t *testing.T) {
		inner := &ExternalToolError{Tool: "docker", ExitCode: 125, Err: errors.New("exit status 125")}

		err := NewExternalToolError("docker", []string{"run"}, inner)

		if code := ExitCode(err); code != 125 {
			t.Errorf("Expected 125, got %d", code)
		}
	})

	t.Run("NilError", func(t *testing.T) {
		if err := NewExternalToolError("docker", nil, nil); err != nil {
			t.Errorf("Expected nil, got %v", err)
		}
	})

	t.Run("Message", func(t *testing.T) {
		err := NewExternalToolError("docker-machine", []string{"stop", "dev-box"}, exitError(t, 1))

		expected := "docker-machine stop dev-box exited with status 1"
		if err.Error() != expected {
			t.Errorf("Expected %q, got %q", expected, err.Error())
		}
	})
}

func TestErrdefs_ExternalToolError(t *testing.T) {
	t.Run("KeepsCapturedOutput", func(t *testing.T) {
		// Given a shell error carrying stderr after the first line
		cause := fmt.Errorf("command execution failed: %w\nHost does not exist: \"dev-box\"", exitError(t, 1))

		// When wrapping it as an external tool error
		err := NewExternalToolError("docker-machine", []string{"status", "dev-box"}, cause)

		// Then the captured output should follow the status line
		expected := "docker-machine status dev-box exited with status 1\nHost does not exist: \"dev-box\""
		if err.Error() != expected {
			t.Errorf("Expected %q, got %q", expected, err.Error())
		}
	})
}

func TestErrdefs_ResourceStateError(t *testing.T) {
	t.Run("Unwrap", func(t *testing.T) {
		cause := errors.New("VERR_ALREADY_EXISTS")
		err := &ResourceStateError{Resource: "shared folder /src", Err: cause}

		if !errors.Is(err, cause) {
			t.Error("Expected ResourceStateError to unwrap to its cause")
		}
		if err.Error() != "shared folder /src: VERR_ALREADY_EXISTS" {
			t.Errorf("Unexpected message %q", err.Error())
		}
	})
}
