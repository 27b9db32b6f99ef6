// internal/app/app.go
package app

import (
	"context"
	"io"

	"pblast/internal/cli"
)

// RunContext executes the pblast command line and returns the exit code.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	root := cli.NewRootCommand(stdout, stderr)
	if len(argv) == 0 {
		argv = []string{"--help"}
	}
	root.SetArgs(argv)
	return cli.ExitCode(root.ExecuteContext(parent), stderr)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
