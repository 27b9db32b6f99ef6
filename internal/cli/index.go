// internal/cli/index.go
package cli

import (
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"pblast/core/seed"
	"pblast/internal/cmdutil"
	"pblast/internal/indexio"
)

type indexOptions struct {
	ref refFlags
	eng *engineFlags
	out string
}

func indexCommand(g *globals) *cobra.Command {
	o := &indexOptions{eng: newEngineFlags()}
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build and save the seed index of a reference",
		Long: `Build the seed index of a reference and save it for repeated searches.

The consensus policy indexes the most probable symbol of every position. The
threshold policy indexes every k-mer whose symbols all reach --threshold
(plus the most probable symbol), up to --max-kmers-per-window per window.`,
		Example: `  pblast index -r ref.tsv -k 11 -o ref.pbi
  pblast index -r ref.pbm --seed-policy threshold --threshold 0.2 -o ref.pbi.gz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runIndex(cmd, o)
		},
	}
	fs := cmd.Flags()
	o.ref.register(fs)
	o.eng.registerSeed(fs)
	fs.StringVarP(&o.out, "out-file", "o", "", `index file to write (".gz" compresses)`)
	return cmd
}

func runIndex(cmd *cobra.Command, o *indexOptions) error {
	if o.out == "" {
		return usagef("flag --out-file is required")
	}
	cfg, err := o.eng.config(cmd.Flags())
	if err != nil {
		return err
	}
	ref, err := o.ref.load()
	if err != nil {
		return err
	}

	start := time.Now()
	idx, err := seed.Build(ref, cfg.BuildOptions())
	if err != nil {
		return inputErr(err)
	}
	st := idx.Stats()
	cmdutil.Log.Infof("indexed %s windows (k=%d, policy=%s): %s k-mers, %s entries in %s",
		humanize.Comma(int64(st.Positions)), idx.K(), idx.Policy(),
		humanize.Comma(int64(st.Kmers)), humanize.Comma(int64(st.Entries)),
		time.Since(start).Round(time.Millisecond))

	if err := indexio.Save(o.out, idx); err != nil {
		return runtimeErr(err)
	}
	if fi, err := os.Stat(o.out); err == nil {
		cmdutil.Log.Infof("index saved to %s (%s, fingerprint %016x)", o.out, humanize.Bytes(uint64(fi.Size())), idx.Fingerprint())
	}
	return nil
}
