package provisioner

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/windsorcli/boxctl/pkg/constants"
	"github.com/windsorcli/boxctl/pkg/runtime/config"
)

// =============================================================================
// Types
// =============================================================================

// SharedFolder maps a host directory onto a guest directory through a named share
type SharedFolder struct {
	Name      string
	HostPath  string
	GuestPath string
}

// Config is the resolved, read-only description of the box. It is built once from the
// config handler and copied into the Provisioner, which never changes it.
type Config struct {
	Name           string
	Driver         string
	MemoryMB       int
	DiskMB         int
	SharedFolders  []SharedFolder
	DisableSwap    bool
	ComposeVersion string
	Extensions     []string
	DefaultCommand string
	ExecCommand    string
	BootScript     string
}

// unsafeShareChars matches everything VirtualBox share names should not contain
var unsafeShareChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// =============================================================================
// Constructor
// =============================================================================

// NewConfig builds a Config from a loaded and validated config handler
func NewConfig(handler config.ConfigHandler) Config {
	var folders []SharedFolder
	for _, entry := range handler.GetStringSlice("vm.shared_folders") {
		folders = append(folders, ParseSharedFolder(entry))
	}

	return Config{
		Name:           handler.GetString("vm.name"),
		Driver:         handler.GetString("vm.driver", constants.DefaultDriver),
		MemoryMB:       handler.GetInt("vm.memory", constants.DefaultMemory),
		DiskMB:         handler.GetInt("vm.disk", constants.DefaultDisk),
		SharedFolders:  folders,
		DisableSwap:    handler.GetBool("vm.disable_swap"),
		ComposeVersion: handler.GetString("docker.compose_version"),
		Extensions:     handler.GetStringSlice("vm.extensions"),
		DefaultCommand: handler.GetString("vm.command"),
		ExecCommand:    handler.GetString("docker.exec_command", constants.DefaultExecCommand),
		BootScript:     handler.GetString("vm.boot_script", constants.DefaultBootScript),
	}
}

// =============================================================================
// Public Methods
// =============================================================================

// Copy returns a Config that shares no slices with c
func (c Config) Copy() Config {
	copied := c
	if c.SharedFolders != nil {
		copied.SharedFolders = append([]SharedFolder{}, c.SharedFolders...)
	}
	if c.Extensions != nil {
		copied.Extensions = append([]string{}, c.Extensions...)
	}
	return copied
}

// =============================================================================
// Public Functions
// =============================================================================

// ParseSharedFolder parses a "host" or "host:guest" entry. Without a guest path the
// folder is mounted at the host path.
func ParseSharedFolder(entry string) SharedFolder {
	hostPath, guestPath, ok := strings.Cut(strings.TrimSpace(entry), ":")
	hostPath = strings.TrimRight(hostPath, "/")
	if hostPath == "" {
		hostPath = "/"
	}
	if !ok || guestPath == "" {
		guestPath = hostPath
	}
	return SharedFolder{
		Name:      ShareName(hostPath),
		HostPath:  hostPath,
		GuestPath: guestPath,
	}
}

// ShareName derives the VirtualBox share name for a host path: the leading slash is
// dropped and separators or unsafe characters become underscores.
func ShareName(hostPath string) string {
	name := strings.TrimPrefix(hostPath, "/")
	name = unsafeShareChars.ReplaceAllString(name, "_")
	if name == "" {
		return "root"
	}
	return name
}

// =============================================================================
// Helpers
// =============================================================================

// uniqueShareName returns name, or name with the first free numeric suffix when taken
func uniqueShareName(name string, taken map[string]bool) string {
	if !taken[name] {
		return name
	}
	for i := 2; ; i++ {
		candidate := name + "_" + strconv.Itoa(i)
		if !taken[candidate] {
			return candidate
		}
	}
}
