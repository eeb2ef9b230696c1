// The shims file holds mockable wrappers around the file system, environment and
// library calls used while loading configuration.

package config

import (
	"os"

	"github.com/adrg/xdg"
	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/shirou/gopsutil/mem"
)

// =============================================================================
// Types
// =============================================================================

// Shims provides mockable wrappers around system and library functions
type Shims struct {
	ReadFile         func(name string) ([]byte, error)
	Stat             func(name string) (os.FileInfo, error)
	LookupEnv        func(key string) (string, bool)
	YamlUnmarshal    func(data []byte, v any) error
	ReadEnvFile      func(filenames ...string) (map[string]string, error)
	SearchConfigFile func(relPath string) (string, error)
	VirtualMemory    func() (*mem.VirtualMemoryStat, error)
}

// =============================================================================
// Constructor
// =============================================================================

// NewShims creates a new Shims instance with default implementations
func NewShims() *Shims {
	return &Shims{
		ReadFile:         os.ReadFile,
		Stat:             os.Stat,
		LookupEnv:        os.LookupEnv,
		YamlUnmarshal:    yaml.Unmarshal,
		ReadEnvFile:      godotenv.Read,
		SearchConfigFile: xdg.SearchConfigFile,
		VirtualMemory:    mem.VirtualMemory,
	}
}
