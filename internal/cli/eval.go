// internal/cli/eval.go
package cli

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"pblast/internal/appcore"
	"pblast/internal/cmdutil"
	"pblast/internal/evaluate"
	"pblast/internal/jsonutil"
	"pblast/internal/matrixio"
	"pblast/internal/output"
	"pblast/internal/pipeline"
	"pblast/internal/querygen"
	"pblast/internal/queryio"
	"pblast/internal/writers"
	"pblast/pkg/api"
)

type evalOptions struct {
	ref    refFlags
	eng    *engineFlags
	index  string
	hits   string
	out    string
	format string
	header bool
}

func evalCommand(g *globals) *cobra.Command {
	o := &evalOptions{eng: newEngineFlags()}
	cmd := &cobra.Command{
		Use:   "eval [flags] simulated.fa ...",
		Short: "Score search results against known query origins",
		Long: `Evaluate hits of simulated queries (see 'pblast simulate') against their
true origins. Per query it reports the IoU of the best hit, the best IoU among
the first 5 and 10 hits, and the ROC AUC of hit scores separating overlapping
hits (IoU > 0) from the rest. Means over all queries are logged at the end.

Queries are searched with the given parameters unless --hits names a JSONL
file written earlier by 'pblast search -f jsonl'.`,
		Example: `  pblast eval -r ref.tsv -k 11 sim.fa
  pblast eval --hits hits.jsonl -f jsonl sim.fa`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, g, o, args)
		},
	}
	fs := cmd.Flags()
	o.ref.register(fs)
	o.eng.registerSeed(fs)
	o.eng.registerExtend(fs)
	fs.StringVarP(&o.index, "index", "x", "", "prebuilt seed index (see 'pblast index')")
	fs.StringVar(&o.hits, "hits", "", "evaluate these JSONL hits instead of searching")
	fs.StringVarP(&o.out, "out-file", "o", "-", `output file ("-" for stdout, ".gz" compresses)`)
	fs.StringVarP(&o.format, "format", "f", output.FormatText, "output format: "+strings.Join(writers.EvalFormats(), " | "))
	fs.BoolVar(&o.header, "header", true, "print the header row (text)")
	return cmd
}

func origins(recs []queryio.Record) (map[string]evaluate.Interval, error) {
	out := make(map[string]evaluate.Interval, len(recs))
	for _, r := range recs {
		l, rr, ok := querygen.ParseOrigin(r.Desc)
		if !ok {
			return nil, usagef("query %s: no origin=START-END in its header", r.ID)
		}
		out[r.ID] = evaluate.Interval{Left: l, Right: rr}
	}
	return out, nil
}

func evalRecord(id string, truth evaluate.Interval, p evaluate.Performance) api.EvalV1 {
	e := api.EvalV1{
		QueryID:  id,
		Origin:   [2]int{truth.Left, truth.Right},
		Hits:     p.Hits,
		Top1IoU:  p.Top1,
		Top5IoU:  p.Top5,
		Top10IoU: p.Top10,
	}
	if p.HasAUC {
		auc := p.AUC
		e.AUC = &auc
	}
	return e
}

func logSummary(s evaluate.Summary) {
	s.Finish()
	auc := "NA"
	if !math.IsNaN(s.MeanAUC) {
		auc = fmt.Sprintf("%.4f over %d queries", s.MeanAUC, s.AUCQueries)
	}
	cmdutil.Log.Infof("evaluated %d queries (%d without hits): mean IoU top1 %.4f, top5 %.4f, top10 %.4f; mean AUC %s",
		s.Queries, s.NoHits, s.MeanTop1, s.MeanTop5, s.MeanTop10, auc)
}

func runEval(cmd *cobra.Command, g *globals, o *evalOptions, args []string) error {
	if len(args) == 0 {
		return usagef("eval needs the simulated query file(s)")
	}
	if err := checkFormat(o.format, writers.EvalFormats()); err != nil {
		return err
	}
	queries, err := loadQueries(args, nil)
	if err != nil {
		return err
	}
	truth, err := origins(queries)
	if err != nil {
		return err
	}
	if o.hits != "" {
		return evalFromHits(cmd, o, queries, truth)
	}

	cfg, err := o.eng.config(cmd.Flags())
	if err != nil {
		return err
	}
	ref, err := o.ref.load()
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
	var sum evaluate.Summary
	visit := func(r pipeline.Result) ([]api.EvalV1, error) {
		t := truth[r.Query.ID]
		scored := make([]evaluate.Scored, len(r.Hits))
		for i, h := range r.Hits {
			scored[i] = evaluate.Scored{Range: evaluate.Interval{Left: h.Final.RefLeft, Right: h.Final.RefRight}, Score: h.Final.Score}
		}
		p := evaluate.Compute(t, scored)
		sum.Add(p)
		return []api.EvalV1{evalRecord(r.Query.ID, t, p)}, nil
	}
	code := appcore.Run[api.EvalV1](cmd.Context(), out, cmd.ErrOrStderr(), appcore.Options{
		Queries:  queries,
		Threads:  queryThreads,
		Progress: true,
		Quiet:    g.quiet,
	}, eng, visit, appcore.EvalWriterFactory{Format: o.format, Header: o.header})
	if err := out.Close(); err != nil && code == appcore.ExitOK {
		return runtimeErr(err)
	}
	if code == appcore.ExitOK {
		logSummary(sum)
	}
	return exitCode(code)
}

// evalFromHits groups saved hits by query and ranks them by their rank field.
func evalFromHits(cmd *cobra.Command, o *evalOptions, queries []queryio.Record, truth map[string]evaluate.Interval) error {
	rc, err := matrixio.OpenInput(o.hits)
	if err != nil {
		return inputErr(err)
	}
	byQuery := make(map[string][]api.HitV1)
	err = jsonutil.DecodeLines(rc, func(h api.HitV1) error {
		if _, ok := truth[h.QueryID]; !ok {
			return fmt.Errorf("hit for unknown query %q", h.QueryID)
		}
		byQuery[h.QueryID] = append(byQuery[h.QueryID], h)
		return nil
	})
	_ = rc.Close()
	if err != nil {
		return inputErr(fmt.Errorf("%s: %w", o.hits, err))
	}

	out, err := openOutput(cmd, o.out)
	if err != nil {
		return err
	}
	in, done := writers.StartEvalWriter(out, o.format, writers.Options{Header: o.header}, 64)
	var sum evaluate.Summary
	for _, q := range queries {
		hs := byQuery[q.ID]
		sort.SliceStable(hs, func(i, j int) bool { return hs[i].Rank < hs[j].Rank })
		scored := make([]evaluate.Scored, len(hs))
		for i, h := range hs {
			scored[i] = evaluate.Scored{Range: evaluate.Interval{Left: h.RefStart, Right: h.RefEnd}, Score: h.Score}
		}
		p := evaluate.Compute(truth[q.ID], scored)
		sum.Add(p)
		in <- evalRecord(q.ID, truth[q.ID], p)
	}
	close(in)
	werr := <-done
	cerr := out.Close()
	if werr != nil {
		return runtimeErr(werr)
	}
	if cerr != nil {
		return runtimeErr(cerr)
	}
	logSummary(sum)
	return nil
}
