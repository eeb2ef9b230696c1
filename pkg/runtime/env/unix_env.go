//go:build !windows
// +build !windows

package env

import (
	"fmt"
	"strings"
)

// exportStatement renders a POSIX export with the value single quoted
func exportStatement(key, value string) string {
	return fmt.Sprintf("export %s='%s'", key, strings.ReplaceAll(value, "'", `'\''`))
}

// unsetStatement renders a POSIX unset
func unsetStatement(key string) string {
	return fmt.Sprintf("unset %s", key)
}
