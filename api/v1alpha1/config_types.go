package v1alpha1

import (
	"github.com/windsorcli/boxctl/api/v1alpha1/docker"
	"github.com/windsorcli/boxctl/api/v1alpha1/vm"
)

// Config represents the entire boxctl configuration
type Config struct {
	Version string               `yaml:"version,omitempty"`
	VM      *vm.VMConfig         `yaml:"vm,omitempty"`
	Docker  *docker.DockerConfig `yaml:"docker,omitempty"`
}

// Merge performs a deep merge of the current Config with another Config.
func (base *Config) Merge(overlay *Config) {
	if overlay == nil {
		return
	}
	if overlay.Version != "" {
		base.Version = overlay.Version
	}
	if overlay.VM != nil {
		if base.VM == nil {
			base.VM = &vm.VMConfig{}
		}
		base.VM.Merge(overlay.VM)
	}
	if overlay.Docker != nil {
		if base.Docker == nil {
			base.Docker = &docker.DockerConfig{}
		}
		base.Docker.Merge(overlay.Docker)
	}
}

// DeepCopy creates a deep copy of the Config object
func (c *Config) DeepCopy() *Config {
	if c == nil {
		return nil
	}
	return &Config{
		Version: c.Version,
		VM:      c.VM.DeepCopy(),
		Docker:  c.Docker.Copy(),
	}
}
