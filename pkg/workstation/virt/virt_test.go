package virt

import (
	"strings"
	"testing"

	"github.com/windsorcli/boxctl/pkg/runtime/shell"
)

// =============================================================================
// Test Setup
// =============================================================================

// ExecCall records a single shell invocation
type ExecCall struct {
	Mode    string
	Command string
	Args    []string
}

func (c ExecCall) String() string {
	return c.Command + " " + strings.Join(c.Args, " ")
}

type VirtTestMocks struct {
	Shell  *shell.MockShell
	Shims  *Shims
	Calls  []ExecCall
	Output map[string]string
	Errors map[string]error
}

// setupVirtMocks creates a mock shell that records calls and answers from Output and Errors,
// keyed by the full command line
func setupVirtMocks(t *testing.T) *VirtTestMocks {
	t.Helper()

	mocks := &VirtTestMocks{
		Shell:  shell.NewMockShell(),
		Shims:  NewShims(),
		Output: map[string]string{},
		Errors: map[string]error{},
	}

	record := func(mode, command string, args []string) (string, error) {
		call := ExecCall{Mode: mode, Command: command, Args: args}
		mocks.Calls = append(mocks.Calls, call)
		key := call.String()
		return mocks.Output[key], mocks.Errors[key]
	}

	mocks.Shell.ExecSilentFunc = func(command string, args ...string) (string, error) {
		return record("silent", command, args)
	}
	mocks.Shell.ExecProgressFunc = func(message string, command string, args ...string) (string, error) {
		return record("progress", command, args)
	}
	mocks.Shell.ExecReplaceFunc = func(env map[string]string, command string, args ...string) error {
		_, err := record("replace", command, args)
		return err
	}

	return mocks
}
