//go:build !windows
// +build !windows

package shell

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// syscallExec replaces the current process image via execve(2)
var syscallExec = unix.Exec

// detachedProcAttr starts silent commands in a new session so they cannot read from the terminal
func detachedProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
