package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/windsorcli/boxctl/api/v1alpha1"
	"github.com/windsorcli/boxctl/api/v1alpha1/docker"
	"github.com/windsorcli/boxctl/api/v1alpha1/vm"
	"github.com/windsorcli/boxctl/pkg/constants"
	"github.com/windsorcli/boxctl/pkg/runtime/errdefs"
	"github.com/windsorcli/boxctl/pkg/runtime/shell"
)

// The ConfigHandler resolves the boxctl configuration from its layers.
// Layers are applied in order: built-in defaults, the user file under the XDG config home
// (or BOXCTL_CONFIG), the project boxctl.yaml found from the working directory upwards,
// the project .boxctl.env file, and finally BOXCTL_* variables from the process environment.
// Values are read through dotted keys such as "vm.name" and checked by Validate before
// any external tool is touched.

type ConfigHandler interface {
	LoadConfig() error
	LoadConfigString(content string) error
	GetConfig() *v1alpha1.Config
	GetString(key string, defaultValue ...string) string
	GetInt(key string, defaultValue ...int) int
	GetBool(key string, defaultValue ...bool) bool
	GetStringSlice(key string, defaultValue ...[]string) []string
	Set(key string, value string) error
	Validate() ([]string, error)
	IsLoaded() bool
	Sources() []string
}

// envBinding maps an environment variable suffix onto a configuration key
type envBinding struct {
	suffix string
	key    string
}

// envBindings lists every BOXCTL_* override in the order it is applied
var envBindings = []envBinding{
	{"NAME", "vm.name"},
	{"DRIVER", "vm.driver"},
	{"MEMORY", "vm.memory"},
	{"DISK", "vm.disk"},
	{"SHARED_FOLDERS", "vm.shared_folders"},
	{"DISABLE_SWAP", "vm.disable_swap"},
	{"BOOT_SCRIPT", "vm.boot_script"},
	{"EXTENSIONS", "vm.extensions"},
	{"COMMAND", "vm.command"},
	{"COMPOSE_VERSION", "docker.compose_version"},
	{"EXEC_COMMAND", "docker.exec_command"},
}

// configHandler is the YAML and environment backed implementation of ConfigHandler
type configHandler struct {
	shell   shell.Shell
	shims   *Shims
	config  *v1alpha1.Config
	sources []string
	loaded  bool
}

// =============================================================================
// Constructor
// =============================================================================

// NewConfigHandler creates a new ConfigHandler seeded with the built-in defaults.
func NewConfigHandler(shell shell.Shell) ConfigHandler {
	return &configHandler{
		shell:  shell,
		shims:  NewShims(),
		config: DefaultConfig.DeepCopy(),
	}
}

// =============================================================================
// Public Methods
// =============================================================================

// LoadConfig applies every configuration layer on top of the defaults. A missing user or
// project file is not an error; an unreadable or malformed one is. An explicit BOXCTL_CONFIG
// that does not exist is reported as a configuration error.
func (c *configHandler) LoadConfig() error {
	if c.shell == nil {
		return fmt.Errorf("shell not initialized")
	}

	c.config = DefaultConfig.DeepCopy()
	c.sources = nil

	if userConfigPath, ok := c.shims.LookupEnv(constants.ConfigEnvPrefix + "CONFIG"); ok && userConfigPath != "" {
		if _, err := c.shims.Stat(userConfigPath); err != nil {
			return &errdefs.ConfigurationError{Key: constants.ConfigEnvPrefix + "CONFIG", Reason: fmt.Sprintf("file %s not found", userConfigPath)}
		}
		if err := c.loadFile(userConfigPath); err != nil {
			return err
		}
	} else if userConfigPath, err := c.shims.SearchConfigFile(constants.UserConfigFile); err == nil {
		if err := c.loadFile(userConfigPath); err != nil {
			return err
		}
	}

	projectRoot, err := c.shell.GetProjectRoot()
	if err != nil {
		return fmt.Errorf("error retrieving project root: %w", err)
	}

	for _, name := range constants.ProjectConfigFiles {
		projectConfigPath := filepath.Join(projectRoot, name)
		if _, err := c.shims.Stat(projectConfigPath); err == nil {
			if err := c.loadFile(projectConfigPath); err != nil {
				return err
			}
			break
		}
	}

	dotenv := map[string]string{}
	envFilePath := filepath.Join(projectRoot, constants.ProjectEnvFile)
	if _, err := c.shims.Stat(envFilePath); err == nil {
		dotenv, err = c.shims.ReadEnvFile(envFilePath)
		if err != nil {
			return fmt.Errorf("error reading env file %s: %w", envFilePath, err)
		}
		c.sources = append(c.sources, envFilePath)
	}

	for _, binding := range envBindings {
		name := constants.ConfigEnvPrefix + binding.suffix
		value, ok := c.shims.LookupEnv(name)
		if !ok {
			value, ok = dotenv[name]
		}
		if !ok {
			continue
		}
		if err := c.Set(binding.key, value); err != nil {
			return fmt.Errorf("error applying %s: %w", name, err)
		}
	}

	c.loaded = true
	return nil
}

// LoadConfigString merges YAML content on top of the current configuration.
// It is intended for tests; production code uses LoadConfig.
func (c *configHandler) LoadConfigString(content string) error {
	if content == "" {
		return nil
	}
	if err := c.mergeYAML([]byte(content), "string"); err != nil {
		return err
	}
	c.loaded = true
	return nil
}

// GetConfig returns a copy of the resolved configuration
func (c *configHandler) GetConfig() *v1alpha1.Config {
	return c.config.DeepCopy()
}

// GetString retrieves a string value for the specified key, or the default when unset.
func (c *configHandler) GetString(key string, defaultValue ...string) string {
	value := c.get(key)
	if value == nil {
		if len(defaultValue) > 0 {
			return defaultValue[0]
		}
		return ""
	}
	if strValue, ok := value.(string); ok {
		return strValue
	}
	return fmt.Sprintf("%v", value)
}

// GetInt retrieves an integer value for the specified key, or the default when unset.
func (c *configHandler) GetInt(key string, defaultValue ...int) int {
	if intValue, ok := c.get(key).(int); ok {
		return intValue
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return 0
}

// GetBool retrieves a boolean value for the specified key, or the default when unset.
func (c *configHandler) GetBool(key string, defaultValue ...bool) bool {
	if boolValue, ok := c.get(key).(bool); ok {
		return boolValue
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return false
}

// GetStringSlice retrieves a string slice for the specified key, or the default when unset.
func (c *configHandler) GetStringSlice(key string, defaultValue ...[]string) []string {
	if sliceValue, ok := c.get(key).([]string); ok {
		return append([]string{}, sliceValue...)
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return []string{}
}

// Set parses value for the type of key and stores it. Slices are comma separated.
func (c *configHandler) Set(key string, value string) error {
	overlay := &v1alpha1.Config{}
	switch key {
	case "vm.name", "vm.driver", "vm.boot_script", "vm.command":
		overlay.VM = stringOverlay(key, value)
	case "vm.memory", "vm.disk":
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return &errdefs.ConfigurationError{Key: key, Reason: fmt.Sprintf("%q is not an integer", value)}
		}
		overlay.VM = intOverlay(key, n)
	case "vm.disable_swap":
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return &errdefs.ConfigurationError{Key: key, Reason: fmt.Sprintf("%q is not a boolean", value)}
		}
		overlay.VM = boolOverlay(key, b)
	case "vm.shared_folders", "vm.extensions":
		overlay.VM = sliceOverlay(key, splitList(value))
	case "docker.compose_version", "docker.exec_command":
		overlay.Docker = dockerOverlay(key, value)
	default:
		return &errdefs.ConfigurationError{Key: key, Reason: "unknown key"}
	}
	c.config.Merge(overlay)
	return nil
}

// Validate checks the resolved configuration. It returns warnings for settings that are
// valid but suspicious, and a ConfigurationError for the first invalid setting.
func (c *configHandler) Validate() ([]string, error) {
	var warnings []string

	if strings.TrimSpace(c.GetString("vm.name")) == "" {
		return nil, &errdefs.ConfigurationError{Key: "vm.name", Reason: "box name is not set (set vm.name in boxctl.yaml or BOXCTL_NAME)"}
	}

	if driver := c.GetString("vm.driver"); driver != constants.DefaultDriver {
		return nil, &errdefs.ConfigurationError{Key: "vm.driver", Reason: fmt.Sprintf("unsupported driver %q, only %s is supported", driver, constants.DefaultDriver)}
	}

	memory := c.GetInt("vm.memory")
	if memory <= 0 {
		return nil, &errdefs.ConfigurationError{Key: "vm.memory", Reason: "must be a positive number of megabytes"}
	}
	if c.GetInt("vm.disk") <= 0 {
		return nil, &errdefs.ConfigurationError{Key: "vm.disk", Reason: "must be a positive number of megabytes"}
	}

	if composeVersion := c.GetString("docker.compose_version"); composeVersion != "" {
		if _, err := semver.StrictNewVersion(composeVersion); err != nil {
			return nil, &errdefs.ConfigurationError{Key: "docker.compose_version", Reason: fmt.Sprintf("%q is not a valid version: %v", composeVersion, err)}
		}
	}

	for _, entry := range c.GetStringSlice("vm.shared_folders") {
		hostPath, guestPath, _ := strings.Cut(entry, ":")
		if !strings.HasPrefix(hostPath, "/") {
			return nil, &errdefs.ConfigurationError{Key: "vm.shared_folders", Reason: fmt.Sprintf("host path %q must be absolute", hostPath)}
		}
		if guestPath != "" && !strings.HasPrefix(guestPath, "/") {
			return nil, &errdefs.ConfigurationError{Key: "vm.shared_folders", Reason: fmt.Sprintf("guest path %q must be absolute", guestPath)}
		}
	}

	if vmStat, err := c.shims.VirtualMemory(); err == nil && vmStat != nil {
		hostMemoryMB := int(vmStat.Total / 1024 / 1024)
		if hostMemoryMB > 0 && memory > hostMemoryMB {
			warnings = append(warnings, fmt.Sprintf("box memory %dMB exceeds host memory %dMB", memory, hostMemoryMB))
		}
	}

	return warnings, nil
}

// IsLoaded reports whether LoadConfig or LoadConfigString has run
func (c *configHandler) IsLoaded() bool {
	return c.loaded
}

// Sources lists the files that contributed to the configuration, in load order
func (c *configHandler) Sources() []string {
	return append([]string{}, c.sources...)
}

// =============================================================================
// Private Methods
// =============================================================================

// loadFile reads a YAML file and merges it over the current configuration
func (c *configHandler) loadFile(path string) error {
	data, err := c.shims.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading config file %s: %w", path, err)
	}
	if err := c.mergeYAML(data, path); err != nil {
		return err
	}
	c.sources = append(c.sources, path)
	return nil
}

// mergeYAML unmarshals data and merges it over the current configuration
func (c *configHandler) mergeYAML(data []byte, source string) error {
	var overlay v1alpha1.Config
	if err := c.shims.YamlUnmarshal(data, &overlay); err != nil {
		return &errdefs.ConfigurationError{Key: source, Reason: fmt.Sprintf("error unmarshalling yaml: %v", err)}
	}
	if overlay.Version != "" && overlay.Version != "v1alpha1" {
		return &errdefs.ConfigurationError{Key: source, Reason: fmt.Sprintf("unsupported config version %q", overlay.Version)}
	}
	c.config.Merge(&overlay)
	return nil
}

// get returns the value stored under key, or nil when unset
func (c *configHandler) get(key string) any {
	vmConfig := c.config.VM
	dockerConfig := c.config.Docker
	section, field, _ := strings.Cut(key, ".")

	switch section {
	case "vm":
		if vmConfig == nil {
			return nil
		}
		switch field {
		case "name":
			return deref(vmConfig.Name)
		case "driver":
			return deref(vmConfig.Driver)
		case "memory":
			return deref(vmConfig.Memory)
		case "disk":
			return deref(vmConfig.Disk)
		case "shared_folders":
			return nilSlice(vmConfig.SharedFolders)
		case "disable_swap":
			return deref(vmConfig.DisableSwap)
		case "boot_script":
			return deref(vmConfig.BootScript)
		case "extensions":
			return nilSlice(vmConfig.Extensions)
		case "command":
			return deref(vmConfig.Command)
		}
	case "docker":
		if dockerConfig == nil {
			return nil
		}
		switch field {
		case "compose_version":
			return deref(dockerConfig.ComposeVersion)
		case "exec_command":
			return deref(dockerConfig.ExecCommand)
		}
	}
	return nil
}

// =============================================================================
// Helpers
// =============================================================================

// deref returns the pointed-to value, or nil for a nil pointer
func deref[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

// nilSlice keeps an unset slice distinguishable from an empty one
func nilSlice(s []string) any {
	if s == nil {
		return nil
	}
	return s
}

// splitList splits a comma separated list, dropping blanks
func splitList(value string) []string {
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func stringOverlay(key, value string) *vm.VMConfig {
	overlay := &vm.VMConfig{}
	switch key {
	case "vm.name":
		overlay.Name = ptrString(value)
	case "vm.driver":
		overlay.Driver = ptrString(value)
	case "vm.boot_script":
		overlay.BootScript = ptrString(value)
	case "vm.command":
		overlay.Command = ptrString(value)
	}
	return overlay
}

func intOverlay(key string, value int) *vm.VMConfig {
	overlay := &vm.VMConfig{}
	if key == "vm.memory" {
		overlay.Memory = ptrInt(value)
	} else {
		overlay.Disk = ptrInt(value)
	}
	return overlay
}

func boolOverlay(_ string, value bool) *vm.VMConfig {
	return &vm.VMConfig{DisableSwap: ptrBool(value)}
}

func sliceOverlay(key string, value []string) *vm.VMConfig {
	overlay := &vm.VMConfig{}
	if key == "vm.shared_folders" {
		overlay.SharedFolders = value
	} else {
		overlay.Extensions = value
	}
	return overlay
}

func dockerOverlay(key, value string) *docker.DockerConfig {
	overlay := &docker.DockerConfig{}
	if key == "docker.compose_version" {
		overlay.ComposeVersion = ptrString(value)
	} else {
		overlay.ExecCommand = ptrString(value)
	}
	return overlay
}

// =============================================================================
// Interface Compliance
// =============================================================================

var _ ConfigHandler = (*configHandler)(nil)
