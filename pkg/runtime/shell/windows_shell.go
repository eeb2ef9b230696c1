//go:build windows
// +build windows

package shell

import (
	"syscall"
)

// syscallExec is unavailable on windows; ExecReplace falls back to an attached child process
var syscallExec = func(argv0 string, argv []string, envv []string) error {
	return ErrReplaceUnsupported
}

// detachedProcAttr returns no process attributes on windows
func detachedProcAttr() *syscall.SysProcAttr {
	return nil
}
