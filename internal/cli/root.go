// Package cli defines the pblast command tree.
package cli

import (
	"io"

	"github.com/spf13/cobra"

	"pblast/internal/cmdutil"
	"pblast/internal/version"
)

type globals struct {
	quiet   bool
	verbose bool
	threads int
}

// NewRootCommand builds the pblast command tree writing to stdout/stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:   "pblast",
		Short: "Seed-and-extend search of DNA queries against probabilistic references",
		Long: `pblast searches DNA queries against a reference given as a probability
matrix: one row per position holding the probabilities of A, C, G and T.

Queries are seeded with exact k-mers from a seed index, extended without gaps
under an x-drop rule, then extended with affine-gap alignment on both flanks.
Hits are ranked by their final score.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			cmdutil.SetupLogging(stderr, g.verbose, g.quiet)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate("pblast version {{.Version}}\n")

	pf := root.PersistentFlags()
	pf.BoolVarP(&g.quiet, "quiet", "q", false, "only log errors and hide the progress bar")
	pf.BoolVar(&g.verbose, "verbose", false, "log debug details")
	pf.IntVarP(&g.threads, "threads", "j", 0, "worker threads (0 = all CPUs)")

	root.AddCommand(
		indexCommand(g),
		searchCommand(g),
		simulateCommand(g),
		evalCommand(g),
		convertCommand(g),
		versionCommand(),
	)
	return root
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information and exit",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("pblast version %s\n", version.Version)
		},
	}
}
