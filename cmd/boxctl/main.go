package main

import (
	"os"

	"github.com/windsorcli/boxctl/cmd"
	"github.com/windsorcli/boxctl/pkg/runtime/errdefs"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errdefs.ExitCode(err))
	}
}
