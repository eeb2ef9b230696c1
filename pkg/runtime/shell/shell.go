package shell

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/windsorcli/boxctl/pkg/constants"
	"github.com/windsorcli/boxctl/pkg/runtime/notify"
)

// The Shell package is the single place boxctl starts external processes.
// It provides silent, progress-reporting, interactive and process-replacing execution
// modes, plus project root discovery for configuration lookup.

// =============================================================================
// Constants
// =============================================================================

// maxFolderSearchDepth is the maximum depth to search for the project root
const maxFolderSearchDepth = 10

// ErrReplaceUnsupported is returned by the process replacement shim on platforms without exec(2)
var ErrReplaceUnsupported = errors.New("process replacement is not supported on this platform")

// =============================================================================
// Types
// =============================================================================

// Shell is the interface that defines shell operations.
type Shell interface {
	SetVerbosity(verbose bool)
	IsVerbose() bool
	IsInteractive() bool
	GetProjectRoot() (string, error)
	LookPath(command string) (string, error)
	Exec(command string, args ...string) (string, error)
	ExecSilent(command string, args ...string) (string, error)
	ExecProgress(message string, command string, args ...string) (string, error)
	ExecInteractive(env map[string]string, command string, args ...string) error
	ExecReplace(env map[string]string, command string, args ...string) error
}

// DefaultShell is the default implementation of the Shell interface
type DefaultShell struct {
	projectRoot string
	verbose     bool
	shims       *Shims
}

// =============================================================================
// Constructor
// =============================================================================

// NewDefaultShell creates a new instance of DefaultShell
func NewDefaultShell() *DefaultShell {
	return &DefaultShell{
		shims:   NewShims(),
		verbose: false,
	}
}

// =============================================================================
// Public Methods
// =============================================================================

// SetVerbosity sets the verbosity flag
func (s *DefaultShell) SetVerbosity(verbose bool) {
	s.verbose = verbose
}

// IsVerbose reports whether external tool output is streamed
func (s *DefaultShell) IsVerbose() bool {
	return s.verbose
}

// IsInteractive reports whether stdin and stderr are attached to a terminal
func (s *DefaultShell) IsInteractive() bool {
	return s.shims.IsTerminal(int(os.Stdin.Fd())) && s.shims.IsTerminal(int(os.Stderr.Fd()))
}

// GetProjectRoot finds the project root. It checks for a cached root first.
// If not found, it looks for "boxctl.yaml" or "boxctl.yml" in the current
// directory and its parents up to a maximum depth. Returns the working directory
// when no project file is found.
func (s *DefaultShell) GetProjectRoot() (string, error) {
	if s.projectRoot != "" {
		return s.projectRoot, nil
	}
	originalDir, err := s.shims.Getwd()
	if err != nil {
		return "", err
	}
	currentDir := originalDir
	depth := 0
	for {
		if depth > maxFolderSearchDepth {
			return originalDir, nil
		}
		for _, name := range constants.ProjectConfigFiles {
			if _, err := s.shims.Stat(filepath.Join(currentDir, name)); err == nil {
				s.projectRoot = currentDir
				return s.projectRoot, nil
			}
		}
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return originalDir, nil
		}
		currentDir = parentDir
		depth++
	}
}

// LookPath resolves command on PATH
func (s *DefaultShell) LookPath(command string) (string, error) {
	return s.shims.LookPath(command)
}

// Exec runs a command with args, streaming stdout and stderr to the terminal while
// capturing stdout. Returns the captured stdout.
func (s *DefaultShell) Exec(command string, args ...string) (string, error) {
	if s.verbose {
		fmt.Fprintf(s.shims.Stderr(), "+ %s\n", formatCommand(command, args))
	}

	cmd := s.shims.Command(command, args...)
	var stdoutBuf bytes.Buffer
	cmd.Stdout = io.MultiWriter(s.shims.Stdout(), &stdoutBuf)
	cmd.Stderr = s.shims.Stderr()
	if cmd.Env == nil {
		cmd.Env = s.shims.Environ()
	}

	if err := s.shims.CmdRun(cmd); err != nil {
		return stdoutBuf.String(), fmt.Errorf("command execution failed: %w", err)
	}
	return stdoutBuf.String(), nil
}

// ExecSilent runs a command quietly, capturing its output.
// It returns the command's stdout and, on failure, an error carrying stderr.
// The process is started in its own session so tools cannot grab the terminal.
func (s *DefaultShell) ExecSilent(command string, args ...string) (string, error) {
	if s.verbose {
		return s.Exec(command, args...)
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd := s.shims.Command(command, args...)
	if cmd == nil {
		return "", fmt.Errorf("failed to create command")
	}

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	cmd.SysProcAttr = detachedProcAttr()
	if cmd.Env == nil {
		cmd.Env = s.shims.Environ()
	}

	if err := s.shims.CmdRun(cmd); err != nil {
		return stdoutBuf.String(), fmt.Errorf("command execution failed: %w\n%s", err, strings.TrimSpace(stderrBuf.String()))
	}

	return stdoutBuf.String(), nil
}

// ExecProgress runs a command while displaying a progress indicator with the given message.
// In verbose mode the message is printed and the command output is streamed instead.
// The spinner is only shown when stderr is a terminal.
func (s *DefaultShell) ExecProgress(message string, command string, args ...string) (string, error) {
	if s.verbose {
		notify.Activityf(s.shims.Stderr(), "%s", message)
		return s.Exec(command, args...)
	}

	var spin *spinner.Spinner
	if s.shims.IsTerminal(int(os.Stderr.Fd())) {
		spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithColor("green"), spinner.WithWriter(s.shims.Stderr()))
		spin.Suffix = " " + message
		spin.Start()
	}

	output, err := s.ExecSilent(command, args...)

	if spin != nil {
		spin.Stop()
	}

	if err != nil {
		notify.Errorf(s.shims.Stderr(), "%s - Failed", message)
		return output, err
	}

	notify.Successf(s.shims.Stderr(), "%s - Done", message)
	return output, nil
}

// ExecInteractive runs a command attached to the terminal with env added to the
// current environment. The command's exit status is preserved in the returned error.
func (s *DefaultShell) ExecInteractive(env map[string]string, command string, args ...string) error {
	if s.verbose {
		fmt.Fprintf(s.shims.Stderr(), "+ %s\n", formatCommand(command, args))
	}

	cmd := s.shims.Command(command, args...)
	if cmd == nil {
		return fmt.Errorf("failed to create command")
	}

	cmd.Stdin = s.shims.Stdin()
	cmd.Stdout = s.shims.Stdout()
	cmd.Stderr = s.shims.Stderr()
	cmd.Env = mergeEnv(s.shims.Environ(), env)

	if err := s.shims.CmdRun(cmd); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}
	return nil
}

// ExecReplace replaces the current process with command. On platforms without
// process replacement it falls back to ExecInteractive. It only returns on failure.
func (s *DefaultShell) ExecReplace(env map[string]string, command string, args ...string) error {
	path, err := s.shims.LookPath(command)
	if err != nil {
		return fmt.Errorf("error resolving %s: %w", command, err)
	}

	if s.verbose {
		fmt.Fprintf(s.shims.Stderr(), "+ exec %s\n", formatCommand(command, args))
	}

	argv := append([]string{command}, args...)
	err = s.shims.SyscallExec(path, argv, mergeEnv(s.shims.Environ(), env))
	if errors.Is(err, ErrReplaceUnsupported) {
		return s.ExecInteractive(env, command, args...)
	}
	return fmt.Errorf("error replacing process with %s: %w", command, err)
}

// =============================================================================
// Helper Functions
// =============================================================================

// mergeEnv appends env to base in key order. Later entries win when the process starts.
func mergeEnv(base []string, env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	merged := append([]string{}, base...)
	for _, k := range keys {
		merged = append(merged, k+"="+env[k])
	}
	return merged
}

// formatCommand renders a command line for verbose output
func formatCommand(command string, args []string) string {
	if len(args) == 0 {
		return command
	}
	return command + " " + strings.Join(args, " ")
}

// =============================================================================
// Interface Compliance
// =============================================================================

// Ensure DefaultShell implements the Shell interface
var _ Shell = (*DefaultShell)(nil)
