package constants

// Version is the CLI version, set at build time via ldflags
var Version = "dev"

// CommitSHA is the git commit SHA, set at build time via ldflags
var CommitSHA = "none"

// The Constants package provides centralized default values for boxctl.
// It is the single source of truth for tool names, box defaults and boot script content.

// =============================================================================
// Tools
// =============================================================================

// MachineCommand is the virtual machine lifecycle tool
const MachineCommand = "docker-machine"

// HypervisorCommand is the VirtualBox management tool
const HypervisorCommand = "VBoxManage"

// DockerCommand is the container runtime client
const DockerCommand = "docker"

// =============================================================================
// Box defaults
// =============================================================================

const DefaultDriver = "virtualbox"

// DefaultMemory is the box memory in MB
const DefaultMemory = 2048

// DefaultDisk is the box disk size in MB
const DefaultDisk = 20000

// DefaultBootScript is the boot2docker script executed on every boot
const DefaultBootScript = "/var/lib/boot2docker/bootlocal.sh"

// DefaultExecCommand is run inside a selected container or image
const DefaultExecCommand = "bash"

// HostOnlyIPProperty is the guest property holding the host-only adapter address
const HostOnlyIPProperty = "/VirtualBox/GuestInfo/Net/1/V4/IP"

// =============================================================================
// Boot script content
// =============================================================================

const BootScriptShebang = "#!/bin/sh"

// SharedFolderMountOptions maps the shared folder onto the docker user of boot2docker
const SharedFolderMountOptions = "uid=1000,gid=50"

// ComposeDownloadURL is formatted with the compose version
const ComposeDownloadURL = "https://github.com/docker/compose/releases/download/%s/docker-compose-$(uname -s)-$(uname -m)"

const ComposeBinaryPath = "/usr/local/bin/docker-compose"

// =============================================================================
// Configuration
// =============================================================================

// ConfigEnvPrefix prefixes every environment override
const ConfigEnvPrefix = "BOXCTL_"

// ProjectConfigFiles are searched for from the working directory upwards
var ProjectConfigFiles = []string{"boxctl.yaml", "boxctl.yml"}

// ProjectEnvFile is read from the project root when present
const ProjectEnvFile = ".boxctl.env"

// UserConfigFile is resolved relative to the XDG config home
const UserConfigFile = "boxctl/config.yaml"

// =============================================================================
// Minimum tool versions
// =============================================================================

const MinimumVersionDockerMachine = "0.16.0"

const MinimumVersionVBoxManage = "5.2.0"

const MinimumVersionDocker = "20.10.0"
