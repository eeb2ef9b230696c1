package errdefs

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// The errdefs package classifies boxctl failures.
// Each class maps onto a process exit status so callers and scripts can tell them apart.

// =============================================================================
// Exit codes
// =============================================================================

const (
	ExitOK            = 0
	ExitFailure       = 1
	ExitConfiguration = 2
	ExitNotFound      = 3
	ExitToolNotFound  = 127
)

// =============================================================================
// Types
// =============================================================================

// ConfigurationError reports invalid or missing configuration, detected before any action
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("invalid configuration: %s", e.Reason)
	}
	return fmt.Sprintf("invalid configuration %s: %s", e.Key, e.Reason)
}

// ToolNotFoundError reports a required executable missing from PATH
type ToolNotFoundError struct {
	Tool string
	Err  error
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("%s not found in PATH", e.Tool)
}

func (e *ToolNotFoundError) Unwrap() error {
	return e.Err
}

// ResourceNotFoundError reports a missing box or container
type ResourceNotFoundError struct {
	Kind string
	Name string
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("%s %s does not exist", e.Kind, e.Name)
}

// ResourceStateError reports a best-effort step that failed without aborting the sequence
type ResourceStateError struct {
	Resource string
	Err      error
}

func (e *ResourceStateError) Error() string {
	return fmt.Sprintf("%s: %v", e.Resource, e.Err)
}

func (e *ResourceStateError) Unwrap() error {
	return e.Err
}

// ExternalToolError reports a non-zero exit from a wrapped tool
type ExternalToolError struct {
	Tool     string
	Args     []string
	ExitCode int
	Err      error
}

// Error renders the invocation and status. Captured tool output carried after the first
// line of the wrapped error is kept as detail.
func (e *ExternalToolError) Error() string {
	msg := fmt.Sprintf("%s %s exited with status %d", e.Tool, strings.Join(e.Args, " "), e.ExitCode)
	if e.Err != nil {
		if _, detail, ok := strings.Cut(e.Err.Error(), "\n"); ok && strings.TrimSpace(detail) != "" {
			msg += "\n" + strings.TrimSpace(detail)
		}
	}
	return msg
}

func (e *ExternalToolError) Unwrap() error {
	return e.Err
}

// =============================================================================
// Constructors
// =============================================================================

// NewExternalToolError wraps err with the tool invocation. The exit status is taken from
// an inner ExternalToolError or *exec.ExitError in the chain, or ExitFailure when the tool
// never ran to completion.
func NewExternalToolError(tool string, args []string, err error) error {
	if err == nil {
		return nil
	}
	code := ExitFailure
	var exitErr *exec.ExitError
	var toolErr *ExternalToolError
	switch {
	case errors.As(err, &toolErr):
		code = toolErr.ExitCode
	case errors.As(err, &exitErr) && exitErr.ExitCode() > 0:
		code = exitErr.ExitCode()
	}
	return &ExternalToolError{
		Tool:     tool,
		Args:     append([]string{}, args...),
		ExitCode: code,
		Err:      err,
	}
}

// =============================================================================
// Helpers
// =============================================================================

// IsNotFound reports whether err is a ResourceNotFoundError
func IsNotFound(err error) bool {
	var target *ResourceNotFoundError
	return errors.As(err, &target)
}

// IsConfiguration reports whether err is a ConfigurationError
func IsConfiguration(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// IsToolNotFound reports whether err is a ToolNotFoundError
func IsToolNotFound(err error) bool {
	var target *ToolNotFoundError
	return errors.As(err, &target)
}

// ExitCode maps an error onto the process exit status. Tool exit statuses are passed through.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var configErr *ConfigurationError
	var toolErr *ToolNotFoundError
	var notFoundErr *ResourceNotFoundError
	var externalErr *ExternalToolError
	var exitErr *exec.ExitError

	switch {
	case errors.As(err, &configErr):
		return ExitConfiguration
	case errors.As(err, &toolErr):
		return ExitToolNotFound
	case errors.As(err, &notFoundErr):
		return ExitNotFound
	case errors.As(err, &externalErr):
		return externalErr.ExitCode
	case errors.As(err, &exitErr) && exitErr.ExitCode() > 0:
		return exitErr.ExitCode()
	default:
		return ExitFailure
	}
}
