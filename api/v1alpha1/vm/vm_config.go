package vm

// VMConfig represents the managed box configuration
type VMConfig struct {
	Name          *string  `yaml:"name,omitempty"`
	Driver        *string  `yaml:"driver,omitempty"`
	Memory        *int     `yaml:"memory,omitempty"`
	Disk          *int     `yaml:"disk,omitempty"`
	SharedFolders []string `yaml:"shared_folders,omitempty"`
	DisableSwap   *bool    `yaml:"disable_swap,omitempty"`
	BootScript    *string  `yaml:"boot_script,omitempty"`
	Extensions    []string `yaml:"extensions,omitempty"`
	Command       *string  `yaml:"command,omitempty"`
}

// Merge performs a deep merge of the current VMConfig with another VMConfig.
// Slices in the overlay replace the base slices when set.
func (base *VMConfig) Merge(overlay *VMConfig) {
	if overlay == nil {
		return
	}
	if overlay.Name != nil {
		base.Name = overlay.Name
	}
	if overlay.Driver != nil {
		base.Driver = overlay.Driver
	}
	if overlay.Memory != nil {
		base.Memory = overlay.Memory
	}
	if overlay.Disk != nil {
		base.Disk = overlay.Disk
	}
	if overlay.SharedFolders != nil {
		base.SharedFolders = append([]string{}, overlay.SharedFolders...)
	}
	if overlay.DisableSwap != nil {
		base.DisableSwap = overlay.DisableSwap
	}
	if overlay.BootScript != nil {
		base.BootScript = overlay.BootScript
	}
	if overlay.Extensions != nil {
		base.Extensions = append([]string{}, overlay.Extensions...)
	}
	if overlay.Command != nil {
		base.Command = overlay.Command
	}
}

// DeepCopy creates a deep copy of the VMConfig object
func (c *VMConfig) DeepCopy() *VMConfig {
	if c == nil {
		return nil
	}
	copied := &VMConfig{}

	if c.Name != nil {
		nameCopy := *c.Name
		copied.Name = &nameCopy
	}
	if c.Driver != nil {
		driverCopy := *c.Driver
		copied.Driver = &driverCopy
	}
	if c.Memory != nil {
		memoryCopy := *c.Memory
		copied.Memory = &memoryCopy
	}
	if c.Disk != nil {
		diskCopy := *c.Disk
		copied.Disk = &diskCopy
	}
	if c.SharedFolders != nil {
		copied.SharedFolders = append([]string{}, c.SharedFolders...)
	}
	if c.DisableSwap != nil {
		disableSwapCopy := *c.DisableSwap
		copied.DisableSwap = &disableSwapCopy
	}
	if c.BootScript != nil {
		bootScriptCopy := *c.BootScript
		copied.BootScript = &bootScriptCopy
	}
	if c.Extensions != nil {
		copied.Extensions = append([]string{}, c.Extensions...)
	}
	if c.Command != nil {
		commandCopy := *c.Command
		copied.Command = &commandCopy
	}

	return copied
}
