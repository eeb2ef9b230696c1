package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/windsorcli/boxctl/pkg/provisioner"
	"github.com/windsorcli/boxctl/pkg/runtime/env"
)

// dockerCmd forwards its arguments to the host docker CLI pointed at the box
var dockerCmd = &cobra.Command{
	Use:                "docker [args...]",
	Aliases:            []string{"d"},
	Short:              "Run docker against the engine in the box",
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newProvisioner(cmd)
		if err != nil {
			return err
		}
		return p.Docker(args)
	},
}

// bashCmd opens a command in a container or image chosen from the box
var bashCmd = &cobra.Command{
	Use:     "bash [command [args...]]",
	Aliases: []string{"b"},
	Short:   "Open a shell in a container or image of the box",
	Long: "List the containers and images of the box, prompt for one and run the command in it.\n" +
		"Containers are entered with docker exec, images are started with docker run --rm.",
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 && args[0] == "--" {
			args = args[1:]
		}
		p, err := newProvisioner(cmd)
		if err != nil {
			return err
		}
		defer p.Close()
		return p.Bash(cmd.Context(), args)
	},
}

// infoCmd prints a summary of the box
var infoCmd = &cobra.Command{
	Use:     "info",
	Aliases: []string{"i"},
	Short:   "Summarize the box",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newProvisioner(cmd)
		if err != nil {
			return err
		}
		defer p.Close()
		info, err := p.Info(cmd.Context())
		if err != nil {
			return err
		}
		return provisioner.RenderInfo(cmd.OutOrStdout(), info)
	},
}

// envCmd prints the docker environment of the box for eval
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Print the docker environment of the box",
	Long:  "Print export statements pointing the docker CLI at the box, for use with eval \"$(boxctl env)\".",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newProvisioner(cmd)
		if err != nil {
			return err
		}
		envVars, err := p.DockerEnv()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), env.RenderEnvVars(envVars))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dockerCmd)
	rootCmd.AddCommand(bashCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(envCmd)
}
