package tools

import (
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/briandowns/spinner"
	"github.com/windsorcli/boxctl/pkg/constants"
	"github.com/windsorcli/boxctl/pkg/runtime/errdefs"
	"github.com/windsorcli/boxctl/pkg/runtime/notify"
	"github.com/windsorcli/boxctl/pkg/runtime/shell"
)

// The ToolsManager verifies the external tools boxctl drives.
// Require is the cheap PATH check run before every command. Check additionally asks each
// tool for its version and compares it against the supported minimum.

// =============================================================================
// Types
// =============================================================================

// ToolsManager checks for the presence and versions of external tools
type ToolsManager interface {
	Require(tools ...string) error
	Check() error
}

// Requirement is a tool, the arguments that print its version and the lowest supported version
type Requirement struct {
	Tool    string
	Args    []string
	Minimum string
}

// BaseToolsManager is the base implementation of the ToolsManager interface
type BaseToolsManager struct {
	shell        shell.Shell
	stderr       io.Writer
	requirements []Requirement
}

// versionPattern finds the first dotted version in tool output
var versionPattern = regexp.MustCompile(`\d+\.\d+\.\d+`)

// DefaultRequirements are the tools boxctl drives
var DefaultRequirements = []Requirement{
	{Tool: constants.MachineCommand, Args: []string{"version"}, Minimum: constants.MinimumVersionDockerMachine},
	{Tool: constants.HypervisorCommand, Args: []string{"--version"}, Minimum: constants.MinimumVersionVBoxManage},
	{Tool: constants.DockerCommand, Args: []string{"version", "--format", "{{.Client.Version}}"}, Minimum: constants.MinimumVersionDocker},
}

// =============================================================================
// Constructor
// =============================================================================

// NewToolsManager creates a new ToolsManager that reports progress on stderr
func NewToolsManager(sh shell.Shell, stderr io.Writer) *BaseToolsManager {
	return &BaseToolsManager{
		shell:        sh,
		stderr:       stderr,
		requirements: DefaultRequirements,
	}
}

// =============================================================================
// Public Methods
// =============================================================================

// Require returns a ToolNotFoundError for the first tool missing from PATH
func (t *BaseToolsManager) Require(tools ...string) error {
	for _, tool := range tools {
		if _, err := t.shell.LookPath(tool); err != nil {
			return &errdefs.ToolNotFoundError{Tool: tool, Err: err}
		}
	}
	return nil
}

// Check verifies that every required tool is installed at a supported version.
// A version that cannot be read from the tool output is not treated as a failure.
func (t *BaseToolsManager) Check() error {
	message := "Checking tool versions"
	spin := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithColor("green"), spinner.WithWriter(t.stderr))
	spin.Suffix = " " + message
	spin.Start()

	for _, req := range t.requirements {
		if err := t.check(req); err != nil {
			spin.Stop()
			notify.Errorf(t.stderr, "%s - Failed", message)
			return err
		}
	}

	spin.Stop()
	notify.Successf(t.stderr, "%s - Done", message)
	return nil
}

// =============================================================================
// Private Methods
// =============================================================================

// check verifies a single requirement
func (t *BaseToolsManager) check(req Requirement) error {
	if err := t.Require(req.Tool); err != nil {
		return err
	}

	output, err := t.shell.ExecSilent(req.Tool, req.Args...)
	if err != nil {
		return errdefs.NewExternalToolError(req.Tool, req.Args, err)
	}

	version := ExtractVersion(output)
	if version == "" {
		return nil
	}

	ok, err := MeetsMinimum(version, req.Minimum)
	if err != nil {
		return fmt.Errorf("error comparing %s version %s: %w", req.Tool, version, err)
	}
	if !ok {
		return fmt.Errorf("%s version %s is below the minimum required version %s", req.Tool, version, req.Minimum)
	}
	return nil
}

// =============================================================================
// Helpers
// =============================================================================

// ExtractVersion returns the first dotted version in output, or an empty string
func ExtractVersion(output string) string {
	return versionPattern.FindString(output)
}

// MeetsMinimum reports whether version is at least minimum
func MeetsMinimum(version, minimum string) (bool, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return false, err
	}
	m, err := semver.NewVersion(minimum)
	if err != nil {
		return false, err
	}
	return !v.LessThan(m), nil
}

// =============================================================================
// Interface Compliance
// =============================================================================

var _ ToolsManager = (*BaseToolsManager)(nil)
