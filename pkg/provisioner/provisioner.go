package provisioner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/windsorcli/boxctl/pkg/runtime"
	"github.com/windsorcli/boxctl/pkg/runtime/errdefs"
	"github.com/windsorcli/boxctl/pkg/runtime/notify"
	"github.com/windsorcli/boxctl/pkg/workstation/virt"
)

// The Provisioner drives the box towards the state a command needs.
// It reads the current state from docker-machine, asks NextStep for the single action
// that closes the gap, and runs it through the collaborators on the Runtime. The box
// configuration is copied in at construction and never changes afterwards.

// =============================================================================
// Types
// =============================================================================

// Provisioner manages the lifecycle of the box
type Provisioner struct {
	*runtime.Runtime
	config Config
}

// =============================================================================
// Constructor
// =============================================================================

// NewProvisioner creates a Provisioner over a loaded runtime. The runtime must carry a
// machine and hypervisor, normally via LoadVirt.
func NewProvisioner(rt *runtime.Runtime, cfg Config) *Provisioner {
	return &Provisioner{
		Runtime: rt,
		config:  cfg.Copy(),
	}
}

// =============================================================================
// Public Methods
// =============================================================================

// Config returns a copy of the box configuration
func (p *Provisioner) Config() Config {
	return p.config.Copy()
}

// State returns the lifecycle state of the box. A listing the tool could not produce is
// treated as an absent box; any other failure is returned.
func (p *Provisioner) State() (State, error) {
	record, err := p.record()
	if err != nil {
		return StateAbsent, err
	}
	if record == nil {
		return StateAbsent, nil
	}
	return ParseState(record.State), nil
}

// Require returns the state of the box, or a ResourceNotFoundError when it does not exist
func (p *Provisioner) Require() (State, error) {
	state, err := p.State()
	if err != nil {
		return state, err
	}
	if state == StateAbsent {
		return state, &errdefs.ResourceNotFoundError{Kind: "box", Name: p.config.Name}
	}
	return state, nil
}

// EnsureReady provisions the box when it is absent, starts it when it is not running and
// connects to it, running the default command when one is configured
func (p *Provisioner) EnsureReady() error {
	state, err := p.State()
	if err != nil {
		return err
	}

	if NextStep(state, StateRunning) == ActionProvision {
		if err := p.Provision(); err != nil {
			return err
		}
		state = StateRunning
	}

	if NextStep(state, StateRunning) == ActionStart {
		if err := p.Machine.Start(p.config.Name); err != nil {
			return err
		}
	}

	return p.Connect()
}

// Provision creates the box, attaches its shared folders, writes the boot script and
// restarts the box so the script runs. Shared folders are attached on a best-effort basis:
// a folder that fails gets no mount line and is reported once provisioning is done.
func (p *Provisioner) Provision() error {
	name := p.config.Name

	if err := p.Machine.Create(name, p.config.MemoryMB, p.config.DiskMB); err != nil {
		return fmt.Errorf("error creating box %s: %w", name, err)
	}
	if err := p.Machine.Stop(name); err != nil {
		return fmt.Errorf("error stopping box %s: %w", name, err)
	}

	attached, failed := p.attachFolders()

	if err := p.Machine.Start(name); err != nil {
		return fmt.Errorf("error starting box %s: %w", name, err)
	}
	if err := p.writeBootScript(attached); err != nil {
		return err
	}
	if err := p.Machine.Restart(name); err != nil {
		return fmt.Errorf("error restarting box %s: %w", name, err)
	}

	for _, failure := range failed {
		notify.Warningf(p.Stderr, "shared folder not attached: %v", failure)
	}
	return nil
}

// Stop powers the box off. A box that is already stopped is left alone.
func (p *Provisioner) Stop() error {
	state, err := p.Require()
	if err != nil {
		return err
	}

	switch NextStep(state, StateStopped) {
	case ActionStop:
		return p.Machine.Stop(p.config.Name)
	default:
		notify.Infof(p.Stderr, "Box %s is already stopped", p.config.Name)
		return nil
	}
}

// Remove deletes the box
func (p *Provisioner) Remove() error {
	state, err := p.Require()
	if err != nil {
		return err
	}
	if NextStep(state, StateAbsent) != ActionRemove {
		return nil
	}
	return p.Machine.Remove(p.config.Name)
}

// Status returns the state text reported by docker-machine
func (p *Provisioner) Status() (string, error) {
	if _, err := p.Require(); err != nil {
		return "", err
	}
	return p.Machine.Status(p.config.Name)
}

// Inspect returns the docker-machine inspect document of the box
func (p *Provisioner) Inspect() (string, error) {
	if _, err := p.Require(); err != nil {
		return "", err
	}
	return p.Machine.Inspect(p.config.Name)
}

// Connect opens an interactive session on the box
func (p *Provisioner) Connect() error {
	return p.Machine.Connect(p.config.Name, p.config.DefaultCommand)
}

// =============================================================================
// Private Methods
// =============================================================================

// record returns the listing entry of the box, or nil when it is not listed
func (p *Provisioner) record() (*virt.MachineRecord, error) {
	records, err := p.Machine.List()
	if err != nil {
		var toolErr *errdefs.ExternalToolError
		if !errors.As(err, &toolErr) {
			return nil, fmt.Errorf("error listing boxes: %w", err)
		}
		if p.Shell != nil && p.Shell.IsVerbose() {
			notify.Warningf(p.Stderr, "treating box %s as absent: %v", p.config.Name, err)
		}
		return nil, nil
	}

	for i := range records {
		if records[i].Name == p.config.Name {
			return &records[i], nil
		}
	}
	return nil, nil
}

// attachFolders adds each configured folder to the powered off box. A folder whose host
// path is already shared counts as attached under the existing share name. A folder
// whose derived name is taken by another host path gets a numbered name.
func (p *Provisioner) attachFolders() ([]SharedFolder, []error) {
	if len(p.config.SharedFolders) == 0 {
		return nil, nil
	}

	var attached []SharedFolder
	var failed []error

	existing, err := p.Hypervisor.SharedFolders(p.config.Name)
	if err != nil {
		for _, folder := range p.config.SharedFolders {
			failed = append(failed, &errdefs.ResourceStateError{Resource: folder.HostPath, Err: err})
		}
		return nil, failed
	}

	names := map[string]bool{}
	byPath := map[string]string{}
	for _, share := range existing {
		names[share.Name] = true
		if _, ok := byPath[share.HostPath]; !ok {
			byPath[share.HostPath] = share.Name
		}
	}

	seen := map[string]bool{}
	for _, folder := range p.config.SharedFolders {
		key := folder.HostPath + "\x00" + folder.GuestPath
		if seen[key] {
			continue
		}
		seen[key] = true

		if name, ok := byPath[folder.HostPath]; ok {
			folder.Name = name
			attached = append(attached, folder)
			continue
		}

		folder.Name = uniqueShareName(folder.Name, names)
		share := virt.SharedFolder{Name: folder.Name, HostPath: folder.HostPath}
		if err := p.Hypervisor.AddSharedFolder(p.config.Name, share); err != nil {
			failed = append(failed, &errdefs.ResourceStateError{Resource: folder.HostPath, Err: err})
			continue
		}
		names[folder.Name] = true
		byPath[folder.HostPath] = folder.Name
		attached = append(attached, folder)
	}
	return attached, failed
}

// writeBootScript seeds the boot script and appends each line it is missing
func (p *Provisioner) writeBootScript(attached []SharedFolder) error {
	name := p.config.Name
	scriptPath := p.config.BootScript

	if _, err := p.Machine.SSH(name, SeedCommand(scriptPath)); err != nil {
		return fmt.Errorf("error seeding boot script: %w", err)
	}

	script, err := p.Machine.SSH(name, ReadCommand(scriptPath))
	if err != nil {
		return fmt.Errorf("error reading boot script: %w", err)
	}

	for _, line := range MissingLines(script, PlanBootLines(p.config, attached)) {
		if _, err := p.Machine.SSH(name, AppendCommand(scriptPath, line)); err != nil {
			return fmt.Errorf("error appending %q to boot script: %w", strings.TrimSpace(line.Text), err)
		}
	}
	return nil
}
