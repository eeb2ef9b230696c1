//go:build windows
// +build windows

package env

import (
	"fmt"
	"strings"
)

// exportStatement renders a PowerShell assignment; single quotes are doubled
func exportStatement(key, value string) string {
	return fmt.Sprintf("$env:%s='%s'", key, strings.ReplaceAll(value, "'", "''"))
}

// unsetStatement renders a PowerShell removal
func unsetStatement(key string) string {
	return fmt.Sprintf("Remove-Item Env:%s", key)
}
