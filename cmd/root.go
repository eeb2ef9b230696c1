package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/windsorcli/boxctl/pkg/constants"
	"github.com/windsorcli/boxctl/pkg/provisioner"
	"github.com/windsorcli/boxctl/pkg/runtime"
	"github.com/windsorcli/boxctl/pkg/runtime/notify"
)

// contextKey scopes values stored on the command context
type contextKey string

const (
	// runtimeOverridesKey carries a pre-populated Runtime, used by tests to inject mocks
	runtimeOverridesKey contextKey = "runtimeOverrides"
	runtimeKey          contextKey = "runtime"
)

var verbose bool

// rootCmd provisions the box when needed and connects to it
var rootCmd = &cobra.Command{
	Use:   "boxctl",
	Short: "Provision and connect to a VirtualBox docker-machine box",
	Long: "boxctl creates a docker-machine box on VirtualBox when it does not exist, attaches the\n" +
		"configured shared folders, writes its boot script and connects to it over ssh.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadRuntime,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			_ = cmd.Help()
			return fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath())
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newProvisioner(cmd)
		if err != nil {
			return err
		}
		return p.EnsureReady()
	},
}

// Execute runs the root command and prints the failure, if any
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		notify.Errorf(rootCmd.ErrOrStderr(), "%v", err)
	}
	return err
}

// loadRuntime checks the required tools, loads the configuration and attaches the
// resulting Runtime to the command context. Help and version need none of it.
func loadRuntime(cmd *cobra.Command, args []string) error {
	switch cmd.Name() {
	case "help", "version":
		return nil
	}

	rt := runtime.NewRuntime()
	if override := cmd.Context().Value(runtimeOverridesKey); override != nil {
		rt = override.(*runtime.Runtime)
	} else {
		rt.Stdin = cmd.InOrStdin()
		rt.Stdout = cmd.OutOrStdout()
		rt.Stderr = cmd.ErrOrStderr()
	}

	if err := rt.
		LoadShell(verbose).
		CheckTools(constants.MachineCommand, constants.HypervisorCommand).
		LoadConfig().
		LoadVirt().
		Do(); err != nil {
		return err
	}

	cmd.SetContext(context.WithValue(cmd.Context(), runtimeKey, rt))
	return nil
}

// newProvisioner builds a Provisioner from the Runtime loaded for cmd
func newProvisioner(cmd *cobra.Command) (*provisioner.Provisioner, error) {
	rt, ok := cmd.Context().Value(runtimeKey).(*runtime.Runtime)
	if !ok || rt == nil {
		return nil, fmt.Errorf("runtime not loaded")
	}
	return provisioner.NewProvisioner(rt, provisioner.NewConfig(rt.ConfigHandler)), nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Stream the output of docker-machine and VBoxManage")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
