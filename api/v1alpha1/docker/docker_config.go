package docker

// DockerConfig represents the configuration of the docker engine inside the box
type DockerConfig struct {
	ComposeVersion *string `yaml:"compose_version,omitempty"`
	ExecCommand    *string `yaml:"exec_command,omitempty"`
}

// Merge performs a deep merge of the current DockerConfig with another DockerConfig.
func (base *DockerConfig) Merge(overlay *DockerConfig) {
	if overlay == nil {
		return
	}
	if overlay.ComposeVersion != nil {
		base.ComposeVersion = overlay.ComposeVersion
	}
	if overlay.ExecCommand != nil {
		base.ExecCommand = overlay.ExecCommand
	}
}

// Copy creates a deep copy of the DockerConfig object
func (c *DockerConfig) Copy() *DockerConfig {
	if c == nil {
		return nil
	}

	var composeVersionCopy *string
	if c.ComposeVersion != nil {
		composeVersionCopy = ptrString(*c.ComposeVersion)
	}

	var execCommandCopy *string
	if c.ExecCommand != nil {
		execCommandCopy = ptrString(*c.ExecCommand)
	}

	return &DockerConfig{
		ComposeVersion: composeVersionCopy,
		ExecCommand:    execCommandCopy,
	}
}

// Helper functions to create pointers for basic types
func ptrString(s string) *string {
	return &s
}
