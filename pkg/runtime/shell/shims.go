// The shims package is a system call abstraction layer
// It provides mockable wrappers around system and runtime functions
// It serves as a testing aid by allowing system calls to be intercepted

package shell

import (
	"io"
	"os"
	"os/exec"

	"golang.org/x/term"
)

// =============================================================================
// Types
// =============================================================================

// Shims provides mockable wrappers around system and runtime functions
type Shims struct {
	// OS operations
	Getwd  func() (string, error)
	Stat   func(name string) (os.FileInfo, error)
	Getenv func(key string) string

	// Standard I/O operations
	Stdin  func() io.Reader
	Stdout func() io.Writer
	Stderr func() io.Writer

	// Exec operations
	Command  func(name string, arg ...string) *exec.Cmd
	Environ  func() []string
	LookPath func(file string) (string, error)
	CmdRun   func(cmd *exec.Cmd) error

	// Process replacement, unavailable on windows
	SyscallExec func(argv0 string, argv []string, envv []string) error

	// Terminal operations
	IsTerminal func(fd int) bool
}

// =============================================================================
// Constructor
// =============================================================================

// NewShims creates a new Shims instance with default implementations
func NewShims() *Shims {
	return &Shims{
		// OS operations
		Getwd:  os.Getwd,
		Stat:   os.Stat,
		Getenv: os.Getenv,

		// Standard I/O operations
		Stdin: func() io.Reader {
			return os.Stdin
		},
		Stdout: func() io.Writer {
			return os.Stdout
		},
		Stderr: func() io.Writer {
			return os.Stderr
		},

		// Exec operations
		Command:  exec.Command,
		Environ:  os.Environ,
		LookPath: exec.LookPath,
		CmdRun:   (*exec.Cmd).Run,

		SyscallExec: syscallExec,

		// Terminal operations
		IsTerminal: term.IsTerminal,
	}
}
