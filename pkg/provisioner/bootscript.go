package provisioner

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/windsorcli/boxctl/pkg/constants"
)

// The boot script is a shell script on the box that boot2docker runs on every boot.
// boxctl only ever appends to it, and only lines whose marker is not already present,
// so re-provisioning never duplicates a line.

// plainShellWord matches words a POSIX shell reads literally
var plainShellWord = regexp.MustCompile(`^[A-Za-z0-9_./:,=+@%-]+$`)

// =============================================================================
// Types
// =============================================================================

// BootLine is one boot script line and the substring that shows it is already present
type BootLine struct {
	Text   string
	Marker string
}

// =============================================================================
// Public Functions
// =============================================================================

// PlanBootLines returns the lines the box needs, in append order: swap lines when swap
// is disabled, one mount line per attached folder, the compose install when a version is
// set, then one line per tce extension.
func PlanBootLines(cfg Config, attached []SharedFolder) []BootLine {
	var lines []BootLine

	if cfg.DisableSwap {
		lines = append(lines,
			BootLine{Text: "swapoff -a", Marker: "swapoff -a"},
			BootLine{Text: "sysctl -w vm.swappiness=0", Marker: "vm.swappiness=0"},
		)
	}

	for _, folder := range attached {
		lines = append(lines, MountLine(folder))
	}

	if cfg.ComposeVersion != "" {
		url := fmt.Sprintf(constants.ComposeDownloadURL, cfg.ComposeVersion)
		lines = append(lines, BootLine{
			Text:   fmt.Sprintf(`curl -fsSL "%s" -o %s && chmod +x %s`, url, constants.ComposeBinaryPath, constants.ComposeBinaryPath),
			Marker: fmt.Sprintf("releases/download/%s/", cfg.ComposeVersion),
		})
	}

	for _, extension := range cfg.Extensions {
		lines = append(lines, BootLine{
			Text:   fmt.Sprintf("su docker -c 'tce-load -wi %s'", extension),
			Marker: fmt.Sprintf("tce-load -wi %s'", extension),
		})
	}

	return lines
}

// MountLine returns the line that mounts a shared folder at its guest path
func MountLine(folder SharedFolder) BootLine {
	guestPath := shellArg(folder.GuestPath)
	mount := fmt.Sprintf("mount -t vboxsf -o %s %s %s", constants.SharedFolderMountOptions, shellArg(folder.Name), guestPath)
	return BootLine{
		Text:   fmt.Sprintf("mkdir -p %s && %s", guestPath, mount),
		Marker: mount,
	}
}

// MissingLines returns the lines whose marker appears nowhere in script, dropping
// repeated markers
func MissingLines(script string, lines []BootLine) []BootLine {
	var missing []BootLine
	seen := map[string]bool{}
	for _, line := range lines {
		if seen[line.Marker] || hasMarker(script, line.Marker) {
			continue
		}
		seen[line.Marker] = true
		missing = append(missing, line)
	}
	return missing
}

// SeedCommand returns the remote command that creates the boot script, marks it executable
// and writes the shebang when the script is empty
func SeedCommand(scriptPath string) string {
	return fmt.Sprintf(
		"sudo mkdir -p %[1]s && sudo touch %[2]s && sudo chmod +x %[2]s && (sudo test -s %[2]s || echo %[3]s | sudo tee %[2]s > /dev/null)",
		path.Dir(scriptPath), scriptPath, shellQuote(constants.BootScriptShebang),
	)
}

// ReadCommand returns the remote command that prints the boot script
func ReadCommand(scriptPath string) string {
	return fmt.Sprintf("sudo cat %s", scriptPath)
}

// AppendCommand returns the remote command that appends one line to the boot script
func AppendCommand(scriptPath string, line BootLine) string {
	return fmt.Sprintf("echo %s | sudo tee -a %s > /dev/null", shellQuote(line.Text), scriptPath)
}

// =============================================================================
// Helpers
// =============================================================================

// hasMarker reports whether any line of script contains marker
func hasMarker(script, marker string) bool {
	for _, line := range strings.Split(script, "\n") {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

// shellArg returns s as a single shell word, quoting it only when it holds characters
// outside the plain path set
func shellArg(s string) string {
	if s != "" && plainShellWord.MatchString(s) {
		return s
	}
	return shellQuote(s)
}

// shellQuote single quotes s for a POSIX shell
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
