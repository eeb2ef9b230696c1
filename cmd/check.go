package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/windsorcli/boxctl/pkg/runtime"
)

// checkCmd verifies the versions of the tools boxctl drives
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the versions of docker-machine, VBoxManage and docker",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, ok := cmd.Context().Value(runtimeKey).(*runtime.Runtime)
		if !ok || rt == nil {
			return fmt.Errorf("runtime not loaded")
		}
		return rt.ToolsManager.Check()
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
