// The EnvPrinter renders environment variables for the user's shell.
// Printers compute a set of variables; rendering turns them into export statements
// for the current platform's shell so they can be applied with eval.

package env

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// =============================================================================
// Types
// =============================================================================

// EnvPrinter defines the method for computing environment variables
type EnvPrinter interface {
	GetEnvVars() (map[string]string, error)
}

// =============================================================================
// Public Functions
// =============================================================================

// Print writes the variables of printer to w as shell statements
func Print(w io.Writer, printer EnvPrinter) error {
	envVars, err := printer.GetEnvVars()
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, RenderEnvVars(envVars))
	return err
}

// RenderEnvVars returns one statement per variable in key order. Empty values are unset.
func RenderEnvVars(envVars map[string]string) string {
	keys := make([]string, 0, len(envVars))
	for k := range envVars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var result strings.Builder
	for _, k := range keys {
		if envVars[k] == "" {
			result.WriteString(unsetStatement(k))
		} else {
			result.WriteString(exportStatement(k, envVars[k]))
		}
		result.WriteString("\n")
	}
	return result.String()
}
