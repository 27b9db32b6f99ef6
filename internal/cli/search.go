// internal/cli/search.go
package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"pblast/core/engine"
	"pblast/core/probmat"
	"pblast/core/seed"
	"pblast/internal/appcore"
	"pblast/internal/cmdutil"
	"pblast/internal/output"
	"pblast/internal/pipeline"
	"pblast/internal/writers"
)

type searchOptions struct {
	ref     refFlags
	eng     *engineFlags
	index   string
	queries []string

	out    string
	format string
	header bool
	pretty bool
	align  bool

	noMatchExitCode int
}

func searchCommand(g *globals) *cobra.Command {
	o := &searchOptions{eng: newEngineFlags()}
	cmd := &cobra.Command{
		Use:   "search [flags] [query.fa ...]",
		Short: "Search query sequences against a probabilistic reference",
		Long: `Search DNA queries (FASTA/FASTQ files, globs, or --query literals) against
a reference matrix and report ranked hits.

Reference coordinates are 0-based and inclusive. Hits of one query are
ranked by final score, best first; ties keep seed order.`,
		Example: `  pblast search -r ref.tsv -k 11 queries.fa
  pblast search -r ref.tsv -x ref.pbi -f jsonl --align -o hits.jsonl 'reads/*.fa'
  pblast search -r ref.tsv -k 4 -Q ACGTTGCA --pretty`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, g, o, args)
		},
	}
	fs := cmd.Flags()
	o.ref.register(fs)
	o.eng.registerSeed(fs)
	o.eng.registerExtend(fs)
	fs.StringVarP(&o.index, "index", "x", "", "prebuilt seed index (see 'pblast index')")
	fs.StringArrayVarP(&o.queries, "query", "Q", nil, "literal query sequence (repeatable)")
	fs.StringVarP(&o.out, "out-file", "o", "-", `output file ("-" for stdout, ".gz" compresses)`)
	fs.StringVarP(&o.format, "format", "f", output.FormatText, "output format: "+strings.Join(writers.HitFormats(), " | "))
	fs.BoolVar(&o.header, "header", true, "print the header row (text)")
	fs.BoolVar(&o.pretty, "pretty", false, "print an alignment block under every row (text)")
	fs.BoolVar(&o.align, "align", false, "include alignment rows (json, jsonl)")
	fs.IntVar(&o.noMatchExitCode, "no-match-exit-code", 0, "exit code when no query has a hit")
	return cmd
}

func runSearch(cmd *cobra.Command, g *globals, o *searchOptions, args []string) error {
	if err := checkFormat(o.format, writers.HitFormats()); err != nil {
		return err
	}
	cfg, err := o.eng.config(cmd.Flags())
	if err != nil {
		return err
	}
	ref, err := o.ref.load()
	if err != nil {
		return err
	}
	queries, err := loadQueries(args, o.queries)
	if err != nil {
		return err
	}
	eng, queryThreads, err := prepareEngine(cmd, g, cfg, ref, o.index, len(queries))
	if err != nil {
		return err
	}

	out, err := openOutput(cmd, o.out)
	if err != nil {
		return err
	}
	wf := appcore.NewHitWriterFactory(o.format, o.header, o.pretty, o.align)
	for _, f := range wf.Ignored() {
		cmdutil.Warnf(g.quiet, "%s has no effect with --format %s", f, o.format)
	}
	withAlignment := wf.NeedAlignment()
	visit := func(r pipeline.Result) ([]output.Hit, error) {
		return output.NewHits(r.Query.ID, r.Seq, ref, r.Hits, withAlignment), nil
	}
	code := appcore.Run[output.Hit](cmd.Context(), out, cmd.ErrOrStderr(), appcore.Options{
		Queries:         queries,
		Threads:         queryThreads,
		Progress:        true,
		Quiet:           g.quiet,
		NoMatchExitCode: o.noMatchExitCode,
	}, eng, visit, wf)
	if err := out.Close(); err != nil && code == appcore.ExitOK {
		return runtimeErr(err)
	}
	return exitCode(code)
}

// prepareEngine loads or builds the seed index and splits the thread budget:
// one query parallelizes its extensions, many queries get one worker each.
func prepareEngine(cmd *cobra.Command, g *globals, cfg engine.Config, ref *probmat.Matrix, indexPath string, nQueries int) (*engine.Engine, int, error) {
	var idx *seed.Index
	if indexPath != "" {
		var err error
		if idx, err = loadIndex(indexPath); err != nil {
			return nil, 0, err
		}
		adoptIndex(cmd.Flags(), &cfg, idx)
	}
	thr := appcore.EffectiveThreads(g.threads)
	queryThreads := thr
	cfg.Threads = 1
	if nQueries == 1 {
		cfg.Threads, queryThreads = thr, 1
	}
	eng, err := newEngine(ref, idx, cfg)
	if err != nil {
		return nil, 0, err
	}
	return eng, queryThreads, nil
}
