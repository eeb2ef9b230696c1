// The shims package is a system call abstraction layer for the virt package
// It provides mockable wrappers around JSON decoding and docker client construction

package virt

import (
	"encoding/json"
	"net/http"

	"github.com/docker/docker/client"
	"github.com/docker/go-connections/tlsconfig"
)

// =============================================================================
// Types
// =============================================================================

// Shims provides mockable wrappers around system and library functions
type Shims struct {
	UnmarshalJSON   func(data []byte, v any) error
	NewDockerAPI    func(host string, auth AuthOptions) (DockerAPI, error)
	TLSClientConfig func(options tlsconfig.Options) (*http.Transport, error)
}

// =============================================================================
// Constructor
// =============================================================================

// NewShims creates a new Shims instance with default implementations
func NewShims() *Shims {
	shims := &Shims{
		UnmarshalJSON: json.Unmarshal,
	}
	shims.TLSClientConfig = func(options tlsconfig.Options) (*http.Transport, error) {
		tlsConfig, err := tlsconfig.Client(options)
		if err != nil {
			return nil, err
		}
		return &http.Transport{TLSClientConfig: tlsConfig}, nil
	}
	shims.NewDockerAPI = func(host string, auth AuthOptions) (DockerAPI, error) {
		transport, err := shims.TLSClientConfig(tlsconfig.Options{
			CAFile:   auth.CaCertPath,
			CertFile: auth.ClientCertPath,
			KeyFile:  auth.ClientKeyPath,
		})
		if err != nil {
			return nil, err
		}
		dockerClient, err := client.NewClientWithOpts(
			client.WithHost(host),
			client.WithHTTPClient(&http.Client{Transport: transport}),
			client.WithAPIVersionNegotiation(),
		)
		if err != nil {
			return nil, err
		}
		return dockerClient, nil
	}
	return shims
}
