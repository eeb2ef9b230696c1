package provisioner

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/windsorcli/boxctl/pkg/constants"
	"github.com/windsorcli/boxctl/pkg/runtime/errdefs"
	"github.com/windsorcli/boxctl/pkg/workstation/virt"
)

// The docker side of the Provisioner runs the host docker CLI against the engine in the
// box and summarizes the box for the info command.

// =============================================================================
// Types
// =============================================================================

// Info summarizes the box. Fields that could not be read are left empty and
// RunningContainers is -1 when the engine could not be reached.
type Info struct {
	Name              string
	State             State
	Driver            string
	URL               string
	HostOnlyIP        string
	MemoryMB          int
	DiskMB            int
	SharedFolders     []virt.SharedFolder
	RunningContainers int
}

// =============================================================================
// Public Methods
// =============================================================================

// DockerEnv returns the environment pointing the docker CLI at the box engine
func (p *Provisioner) DockerEnv() (map[string]string, error) {
	if _, err := p.Require(); err != nil {
		return nil, err
	}
	return p.EnvPrinter.GetEnvVars()
}

// Docker runs the host docker CLI against the box engine. The exit status of docker is
// carried by the returned error.
func (p *Provisioner) Docker(args []string) error {
	env, err := p.DockerEnv()
	if err != nil {
		return err
	}
	if _, err := p.Shell.LookPath(constants.DockerCommand); err != nil {
		return &errdefs.ToolNotFoundError{Tool: constants.DockerCommand, Err: err}
	}
	return p.docker(env, args)
}

// Bash prompts for a container or image of the box and opens command in it. An empty
// command runs the configured exec command.
func (p *Provisioner) Bash(ctx context.Context, command []string) error {
	env, err := p.DockerEnv()
	if err != nil {
		return err
	}
	if _, err := p.Shell.LookPath(constants.DockerCommand); err != nil {
		return &errdefs.ToolNotFoundError{Tool: constants.DockerCommand, Err: err}
	}

	containers, err := p.Containers.Containers(ctx)
	if err != nil {
		return err
	}
	images, err := p.Containers.Images(ctx)
	if err != nil {
		return err
	}

	choice, err := Select(p.Stdin, p.Stdout, BuildChoices(containers, images))
	if err != nil {
		return err
	}

	if choice.Kind == ChoiceContainer {
		if _, err := p.Containers.Container(ctx, choice.Ref); err != nil {
			return err
		}
	}

	if len(command) == 0 {
		command = strings.Fields(p.config.ExecCommand)
	}
	if len(command) == 0 {
		command = []string{constants.DefaultExecCommand}
	}
	return p.docker(env, ExecArgs(choice, command))
}

// Info gathers the box summary. Only the existence check is fatal.
func (p *Provisioner) Info(ctx context.Context) (*Info, error) {
	record, err := p.record()
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, &errdefs.ResourceNotFoundError{Kind: "box", Name: p.config.Name}
	}

	info := &Info{
		Name:              p.config.Name,
		State:             ParseState(record.State),
		Driver:            record.Driver,
		MemoryMB:          p.config.MemoryMB,
		DiskMB:            p.config.DiskMB,
		RunningContainers: -1,
	}

	if folders, err := p.Hypervisor.SharedFolders(p.config.Name); err == nil {
		info.SharedFolders = folders
	}
	if info.State != StateRunning {
		return info, nil
	}

	if url, err := p.Machine.URL(p.config.Name); err == nil {
		info.URL = url
	}
	if ip, err := p.Hypervisor.GuestProperty(p.config.Name, constants.HostOnlyIPProperty); err == nil {
		info.HostOnlyIP = ip
	}
	if containers, err := p.Containers.Containers(ctx); err == nil {
		running := 0
		for _, c := range containers {
			if c.State == "running" {
				running++
			}
		}
		info.RunningContainers = running
	}
	return info, nil
}

// =============================================================================
// Private Methods
// =============================================================================

// docker runs the docker CLI attached to the terminal
func (p *Provisioner) docker(env map[string]string, args []string) error {
	if err := p.Shell.ExecInteractive(env, constants.DockerCommand, args...); err != nil {
		return errdefs.NewExternalToolError(constants.DockerCommand, args, err)
	}
	return nil
}

// =============================================================================
// Public Functions
// =============================================================================

// RenderInfo writes the summary as aligned name and value columns
func RenderInfo(w io.Writer, info *Info) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	row := func(key, value string) {
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(tw, "%s:\t%s\n", key, value)
	}

	row("Name", info.Name)
	row("State", info.State.String())
	row("Driver", info.Driver)
	row("URL", info.URL)
	row("Host-only IP", info.HostOnlyIP)
	row("Memory", fmt.Sprintf("%d MB", info.MemoryMB))
	row("Disk", fmt.Sprintf("%d MB", info.DiskMB))
	if len(info.SharedFolders) == 0 {
		row("Shared folders", "")
	}
	for i, folder := range info.SharedFolders {
		key := ""
		if i == 0 {
			key = "Shared folders"
		}
		fmt.Fprintf(tw, "%s\t%s -> %s\n", labelFor(key), folder.HostPath, folder.Name)
	}
	if info.RunningContainers >= 0 {
		row("Running containers", fmt.Sprintf("%d", info.RunningContainers))
	} else {
		row("Running containers", "")
	}
	return tw.Flush()
}

// labelFor returns the row label with its colon, or nothing for continuation rows
func labelFor(key string) string {
	if key == "" {
		return ""
	}
	return key + ":"
}
