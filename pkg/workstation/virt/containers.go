package virt

import (
	"context"
	"fmt"
	"strings"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/windsorcli/boxctl/pkg/runtime/errdefs"
	"github.com/windsorcli/boxctl/pkg/runtime/shell"
)

// The DockerRuntime reads containers and images from the engine inside the box through
// the Engine API. The client is built lazily from the machine URL and TLS material, so
// commands that never look inside the box do not need a running engine.

// =============================================================================
// Interfaces
// =============================================================================

// DockerAPI is the subset of the docker Engine API client used by boxctl
type DockerAPI interface {
	ContainerList(ctx context.Context, options container.ListOptions) ([]container.Summary, error)
	ImageList(ctx context.Context, options image.ListOptions) ([]image.Summary, error)
	ContainerInspect(ctx context.Context, containerID string) (container.InspectResponse, error)
	Close() error
}

// ContainerRuntime defines the read side of the box engine
type ContainerRuntime interface {
	Containers(ctx context.Context) ([]Container, error)
	Images(ctx context.Context) ([]Image, error)
	Container(ctx context.Context, id string) (Container, error)
	Close() error
}

// =============================================================================
// Types
// =============================================================================

// DockerRuntime implements ContainerRuntime against the engine of a docker-machine box
type DockerRuntime struct {
	*BaseVirt
	machine Machine
	name    string
	api     DockerAPI
}

// =============================================================================
// Constructor
// =============================================================================

// NewDockerRuntime creates a DockerRuntime for the engine of the named box
func NewDockerRuntime(sh shell.Shell, machine Machine, name string) *DockerRuntime {
	return &DockerRuntime{
		BaseVirt: NewBaseVirt(sh),
		machine:  machine,
		name:     name,
	}
}

// =============================================================================
// Public Methods
// =============================================================================

// Containers lists every container, running or not
func (d *DockerRuntime) Containers(ctx context.Context) ([]Container, error) {
	api, err := d.client()
	if err != nil {
		return nil, err
	}

	summaries, err := api.ContainerList(ctx, container.ListOptions{All: true})
	if err != nil {
		return nil, fmt.Errorf("error listing containers: %w", err)
	}

	containers := make([]Container, 0, len(summaries))
	for _, summary := range summaries {
		containers = append(containers, Container{
			ID:     shortID(summary.ID),
			Name:   containerName(summary.Names),
			Image:  summary.Image,
			State:  string(summary.State),
			Status: summary.Status,
		})
	}
	return containers, nil
}

// Images lists tagged images. Untagged images are listed by ID.
func (d *DockerRuntime) Images(ctx context.Context) ([]Image, error) {
	api, err := d.client()
	if err != nil {
		return nil, err
	}

	summaries, err := api.ImageList(ctx, image.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("error listing images: %w", err)
	}

	var images []Image
	for _, summary := range summaries {
		id := shortID(strings.TrimPrefix(summary.ID, "sha256:"))
		if len(summary.RepoTags) == 0 {
			images = append(images, Image{ID: id, Tag: "<none>:<none>"})
			continue
		}
		for _, tag := range summary.RepoTags {
			images = append(images, Image{ID: id, Tag: tag})
		}
	}
	return images, nil
}

// Container looks up a single container, returning a ResourceNotFoundError when it is gone
func (d *DockerRuntime) Container(ctx context.Context, id string) (Container, error) {
	api, err := d.client()
	if err != nil {
		return Container{}, err
	}

	inspect, err := api.ContainerInspect(ctx, id)
	if err != nil {
		if cerrdefs.IsNotFound(err) {
			return Container{}, &errdefs.ResourceNotFoundError{Kind: "container", Name: id}
		}
		return Container{}, fmt.Errorf("error inspecting container %s: %w", id, err)
	}

	result := Container{
		ID:   shortID(inspect.ID),
		Name: strings.TrimPrefix(inspect.Name, "/"),
	}
	if inspect.Config != nil {
		result.Image = inspect.Config.Image
	}
	if inspect.State != nil {
		result.State = string(inspect.State.Status)
	}
	return result, nil
}

// Close releases the engine client if one was created
func (d *DockerRuntime) Close() error {
	if d.api == nil {
		return nil
	}
	err := d.api.Close()
	d.api = nil
	return err
}

// =============================================================================
// Private Methods
// =============================================================================

// client builds the engine client on first use
func (d *DockerRuntime) client() (DockerAPI, error) {
	if d.api != nil {
		return d.api, nil
	}

	host, err := d.machine.URL(d.name)
	if err != nil {
		return nil, fmt.Errorf("error resolving engine URL: %w", err)
	}
	auth, err := d.machine.AuthOptions(d.name)
	if err != nil {
		return nil, fmt.Errorf("error resolving engine TLS options: %w", err)
	}

	api, err := d.shims.NewDockerAPI(host, auth)
	if err != nil {
		return nil, fmt.Errorf("error creating docker client for %s: %w", host, err)
	}
	d.api = api
	return d.api, nil
}

// =============================================================================
// Helpers
// =============================================================================

// shortID truncates an ID to the 12 characters docker prints
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

// containerName returns the first name without its leading slash
func containerName(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return strings.TrimPrefix(names[0], "/")
}

// =============================================================================
// Interface Compliance
// =============================================================================

var _ ContainerRuntime = (*DockerRuntime)(nil)
