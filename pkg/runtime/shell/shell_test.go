package shell

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	fcolor "github.com/fatih/color"
)

// =============================================================================
// Test Setup
// =============================================================================

type ShellTestMocks struct {
	Shims  *Shims
	TmpDir string
	Stdout *bytes.Buffer
	Stderr *bytes.Buffer
	Ran    []*exec.Cmd
}

// setupShellMocks creates shims that record commands instead of running them
func setupShellMocks(t *testing.T) *ShellTestMocks {
	t.Helper()

	original := fcolor.NoColor
	fcolor.NoColor = true
	t.Cleanup(func() {
		fcolor.NoColor = original
	})

	mocks := &ShellTestMocks{
		TmpDir: t.TempDir(),
		Stdout: &bytes.Buffer{},
		Stderr: &bytes.Buffer{},
	}

	shims := NewShims()
	shims.Getwd = func() (string, error) {
		return mocks.TmpDir, nil
	}
	shims.Stat = func(name string) (os.FileInfo, error) {
		return nil, os.ErrNotExist
	}
	shims.Stdin = func() io.Reader {
		return strings.NewReader("")
	}
	shims.Stdout = func() io.Writer {
		return mocks.Stdout
	}
	shims.Stderr = func() io.Writer {
		return mocks.Stderr
	}
	shims.Environ = func() []string {
		return []string{"PATH=/usr/bin"}
	}
	shims.LookPath = func(file string) (string, error) {
		return "/usr/local/bin/" + file, nil
	}
	shims.CmdRun = func(cmd *exec.Cmd) error {
		mocks.Ran = append(mocks.Ran, cmd)
		if cmd.Stdout != nil {
			fmt.Fprint(cmd.Stdout, "output")
		}
		return nil
	}
	shims.SyscallExec = func(argv0 string, argv []string, envv []string) error {
		return errors.New("exec not stubbed")
	}
	shims.IsTerminal = func(fd int) bool {
		return false
	}
	mocks.Shims = shims

	return mocks
}

func setupShell(t *testing.T) (*DefaultShell, *ShellTestMocks) {
	t.Helper()
	mocks := setupShellMocks(t)
	shell := NewDefaultShell()
	shell.shims = mocks.Shims
	return shell, mocks
}

// =============================================================================
// Test Public Methods
// =============================================================================

func TestDefaultShell_GetProjectRoot(t *testing.T) {
	testCases := []struct {
		name     string
		fileName string
	}{
		{"BoxctlYaml", "boxctl.yaml"},
		{"BoxctlYml", "boxctl.yml"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Given a shell started in a subdirectory of the project
			shell, mocks := setupShell(t)
			rootDir := mocks.TmpDir
			subDir := filepath.Join(rootDir, "src", "app")
			shell.shims.Getwd = func() (string, error) {
				return subDir, nil
			}
			shell.shims.Stat = func(name string) (os.FileInfo, error) {
				if name == filepath.Join(rootDir, tc.fileName) {
					return nil, nil
				}
				return nil, os.ErrNotExist
			}

			// When finding the project root
			projectRoot, err := shell.GetProjectRoot()

			// Then the directory holding the project file should be returned
			if err != nil {
				t.Fatalf("GetProjectRoot returned an error: %v", err)
			}
			if projectRoot != rootDir {
				t.Errorf("Expected project root to be %s, got %s", rootDir, projectRoot)
			}
		})
	}

	t.Run("FallsBackToWorkingDirectory", func(t *testing.T) {
		// Given no project file anywhere
		shell, mocks := setupShell(t)

		// When finding the project root
		projectRoot, err := shell.GetProjectRoot()

		// Then the working directory should be returned
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if projectRoot != mocks.TmpDir {
			t.Errorf("Expected %s, got %s", mocks.TmpDir, projectRoot)
		}
	})

	t.Run("GetwdError", func(t *testing.T) {
		shell, _ := setupShell(t)
		shell.shims.Getwd = func() (string, error) {
			return "", errors.New("getwd failed")
		}

		if _, err := shell.GetProjectRoot(); err == nil {
			t.Error("Expected error, got nil")
		}
	})
}

func TestDefaultShell_Exec(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Given a shell
		shell, mocks := setupShell(t)

		// When executing a command
		output, err := shell.Exec("docker-machine", "ls")

		// Then stdout should be captured and streamed
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if output != "output" {
			t.Errorf("Expected output %q, got %q", "output", output)
		}
		if mocks.Stdout.String() != "output" {
			t.Errorf("Expected streamed stdout, got %q", mocks.Stdout.String())
		}
	})

	t.Run("VerbosePrintsCommand", func(t *testing.T) {
		shell, mocks := setupShell(t)
		shell.SetVerbosity(true)

		if _, err := shell.Exec("docker-machine", "ls"); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if !strings.Contains(mocks.Stderr.String(), "+ docker-machine ls") {
			t.Errorf("Expected command echo, got %q", mocks.Stderr.String())
		}
	})

	t.Run("ErrorRunningCommand", func(t *testing.T) {
		shell, mocks := setupShell(t)
		mocks.Shims.CmdRun = func(cmd *exec.Cmd) error {
			return errors.New("run failed")
		}

		_, err := shell.Exec("docker-machine", "ls")

		if err == nil || !strings.Contains(err.Error(), "command execution failed") {
			t.Errorf("Expected command execution error, got %v", err)
		}
	})
}

func TestDefaultShell_ExecSilent(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Given a shell
		shell, mocks := setupShell(t)

		// When executing silently
		output, err := shell.ExecSilent("VBoxManage", "showvminfo", "dev-box")

		// Then output should be captured but nothing streamed
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if output != "output" {
			t.Errorf("Expected output %q, got %q", "output", output)
		}
		if mocks.Stdout.Len() != 0 {
			t.Errorf("Expected nothing on stdout, got %q", mocks.Stdout.String())
		}
	})

	t.Run("ErrorIncludesStderr", func(t *testing.T) {
		// Given a command that fails with stderr output
		shell, mocks := setupShell(t)
		mocks.Shims.CmdRun = func(cmd *exec.Cmd) error {
			fmt.Fprint(cmd.Stderr, "VERR_ALREADY_EXISTS\n")
			return errors.New("exit status 1")
		}

		// When executing silently
		_, err := shell.ExecSilent("VBoxManage", "sharedfolder", "add")

		// Then the error should carry stderr
		if err == nil {
			t.Fatal("Expected error, got nil")
		}
		if !strings.Contains(err.Error(), "VERR_ALREADY_EXISTS") {
			t.Errorf("Expected stderr in error, got %v", err)
		}
	})

	t.Run("PreservesExitError", func(t *testing.T) {
		// Given a real command exiting non-zero
		shell, mocks := setupShell(t)
		mocks.Shims.CmdRun = (*exec.Cmd).Run
		mocks.Shims.Command = func(name string, arg ...string) *exec.Cmd {
			return exec.Command("sh", "-c", "exit 3")
		}

		// When executing silently
		_, err := shell.ExecSilent("docker-machine", "status", "dev-box")

		// Then the exit status should be reachable
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("Expected *exec.ExitError, got %v", err)
		}
		if exitErr.ExitCode() != 3 {
			t.Errorf("Expected exit code 3, got %d", exitErr.ExitCode())
		}
	})
}

func TestDefaultShell_ExecProgress(t *testing.T) {
	t.Run("SuccessWithoutTerminal", func(t *testing.T) {
		// Given a shell not attached to a terminal
		shell, mocks := setupShell(t)

		// When executing with progress
		output, err := shell.ExecProgress("Creating dev-box", "docker-machine", "create")

		// Then a done message should be printed
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if output != "output" {
			t.Errorf("Expected output %q, got %q", "output", output)
		}
		if mocks.Stderr.String() != "✔ Creating dev-box - Done\n" {
			t.Errorf("Unexpected stderr %q", mocks.Stderr.String())
		}
	})

	t.Run("Failure", func(t *testing.T) {
		shell, mocks := setupShell(t)
		mocks.Shims.CmdRun = func(cmd *exec.Cmd) error {
			return errors.New("boom")
		}

		_, err := shell.ExecProgress("Creating dev-box", "docker-machine", "create")

		if err == nil {
			t.Fatal("Expected error, got nil")
		}
		if mocks.Stderr.String() != "✗ Creating dev-box - Failed\n" {
			t.Errorf("Unexpected stderr %q", mocks.Stderr.String())
		}
	})

	t.Run("VerboseStreams", func(t *testing.T) {
		shell, mocks := setupShell(t)
		shell.SetVerbosity(true)

		if _, err := shell.ExecProgress("Starting dev-box", "docker-machine", "start", "dev-box"); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if !strings.Contains(mocks.Stderr.String(), "► Starting dev-box") {
			t.Errorf("Expected activity message, got %q", mocks.Stderr.String())
		}
		if mocks.Stdout.String() != "output" {
			t.Errorf("Expected streamed stdout, got %q", mocks.Stdout.String())
		}
	})
}

func TestDefaultShell_ExecInteractive(t *testing.T) {
	t.Run("MergesEnvironment", func(t *testing.T) {
		// Given a shell
		shell, mocks := setupShell(t)

		// When executing interactively with extra env
		err := shell.ExecInteractive(map[string]string{"DOCKER_TLS_VERIFY": "1", "DOCKER_HOST": "tcp://192.168.99.100:2376"}, "docker", "ps")

		// Then the env should be appended after the inherited environment in key order
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(mocks.Ran) != 1 {
			t.Fatalf("Expected 1 command, got %d", len(mocks.Ran))
		}
		expected := []string{"PATH=/usr/bin", "DOCKER_HOST=tcp://192.168.99.100:2376", "DOCKER_TLS_VERIFY=1"}
		if strings.Join(mocks.Ran[0].Env, ",") != strings.Join(expected, ",") {
			t.Errorf("Expected env %v, got %v", expected, mocks.Ran[0].Env)
		}
		if mocks.Ran[0].Stdin == nil {
			t.Error("Expected stdin to be attached")
		}
	})

	t.Run("Error", func(t *testing.T) {
		shell, mocks := setupShell(t)
		mocks.Shims.CmdRun = func(cmd *exec.Cmd) error {
			return errors.New("boom")
		}

		if err := shell.ExecInteractive(nil, "docker", "ps"); err == nil {
			t.Error("Expected error, got nil")
		}
	})
}

func TestDefaultShell_ExecReplace(t *testing.T) {
	t.Run("CallsExecWithResolvedPath", func(t *testing.T) {
		// Given a shell whose exec shim records its arguments
		shell, mocks := setupShell(t)
		var gotPath string
		var gotArgv, gotEnv []string
		mocks.Shims.SyscallExec = func(argv0 string, argv []string, envv []string) error {
			gotPath, gotArgv, gotEnv = argv0, argv, envv
			return errors.New("exec returned")
		}

		// When replacing the process
		err := shell.ExecReplace(map[string]string{"A": "1"}, "docker-machine", "ssh", "dev-box")

		// Then exec should receive the resolved path and full argv
		if err == nil {
			t.Error("Expected error when exec returns")
		}
		if gotPath != "/usr/local/bin/docker-machine" {
			t.Errorf("Expected resolved path, got %q", gotPath)
		}
		if strings.Join(gotArgv, " ") != "docker-machine ssh dev-box" {
			t.Errorf("Unexpected argv %v", gotArgv)
		}
		if gotEnv[len(gotEnv)-1] != "A=1" {
			t.Errorf("Expected extra env last, got %v", gotEnv)
		}
	})

	t.Run("FallsBackWhenUnsupported", func(t *testing.T) {
		// Given a platform without process replacement
		shell, mocks := setupShell(t)
		mocks.Shims.SyscallExec = func(argv0 string, argv []string, envv []string) error {
			return ErrReplaceUnsupported
		}

		// When replacing the process
		err := shell.ExecReplace(nil, "docker-machine", "ssh", "dev-box")

		// Then the command should run as an attached child instead
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(mocks.Ran) != 1 {
			t.Errorf("Expected fallback command to run, got %d", len(mocks.Ran))
		}
	})

	t.Run("LookPathError", func(t *testing.T) {
		shell, mocks := setupShell(t)
		mocks.Shims.LookPath = func(file string) (string, error) {
			return "", exec.ErrNotFound
		}

		err := shell.ExecReplace(nil, "docker-machine", "ssh")

		if !errors.Is(err, exec.ErrNotFound) {
			t.Errorf("Expected exec.ErrNotFound, got %v", err)
		}
	})
}

func TestMockShell(t *testing.T) {
	t.Run("DefaultsToZeroValues", func(t *testing.T) {
		// Given a mock shell without stubs
		mockShell := NewMockShell()

		// Then every call should succeed with zero values
		if out, err := mockShell.ExecSilent("docker-machine", "ls"); out != "" || err != nil {
			t.Errorf("Expected zero values, got %q, %v", out, err)
		}
		if err := mockShell.ExecReplace(nil, "docker-machine", "ssh"); err != nil {
			t.Errorf("Expected nil, got %v", err)
		}
		if mockShell.IsInteractive() {
			t.Error("Expected non-interactive mock shell")
		}
	})

	t.Run("DelegatesToFuncs", func(t *testing.T) {
		mockShell := NewMockShell()
		mockShell.ExecSilentFunc = func(command string, args ...string) (string, error) {
			return command + " " + strings.Join(args, " "), nil
		}

		out, _ := mockShell.ExecSilent("docker-machine", "status", "dev-box")

		if out != "docker-machine status dev-box" {
			t.Errorf("Unexpected output %q", out)
		}
	})
}
