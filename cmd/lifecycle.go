package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// stopCmd powers the box off
var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the box",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newProvisioner(cmd)
		if err != nil {
			return err
		}
		return p.Stop()
	},
}

// rmCmd deletes the box
var rmCmd = &cobra.Command{
	Use:   "rm",
	Short: "Remove the box",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newProvisioner(cmd)
		if err != nil {
			return err
		}
		return p.Remove()
	},
}

// statusCmd prints the docker-machine state of the box
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the state of the box",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newProvisioner(cmd)
		if err != nil {
			return err
		}
		status, err := p.Status()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), status)
		return nil
	},
}

// inspectCmd prints the docker-machine inspect document
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the docker-machine details of the box",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newProvisioner(cmd)
		if err != nil {
			return err
		}
		out, err := p.Inspect()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(inspectCmd)
}
