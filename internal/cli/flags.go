// internal/cli/flags.go
package cli

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"pblast/core/engine"
	"pblast/core/probmat"
	"pblast/core/scoring"
	"pblast/core/seed"
	"pblast/internal/cmdutil"
	"pblast/internal/indexio"
	"pblast/internal/matrixio"
)

// ---------------- reference input ----------------

type refFlags struct {
	path   string
	format string
	probs  string
}

func (f *refFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.path, "ref", "r", "", `reference matrix file ("-" for stdin, gzip ok)`)
	fs.StringVar(&f.format, "ref-format", matrixio.FormatAuto, "reference format: auto | tsv | binary | consensus")
	fs.StringVar(&f.probs, "ref-probs", "", "per-position call probabilities for --ref-format consensus")
}

func (f *refFlags) load() (*probmat.Matrix, error) {
	if f.path == "" {
		return nil, usagef("flag --ref is required")
	}
	start := time.Now()
	m, err := matrixio.Load(f.path, f.format, f.probs)
	if err != nil {
		return nil, inputErr(err)
	}
	cmdutil.Log.Infof("reference %s: %s positions loaded in %s",
		f.path, humanize.Comma(int64(m.Len())), time.Since(start).Round(time.Millisecond))
	return m, nil
}

// ---------------- engine parameters ----------------

type engineFlags struct {
	cfg          engine.Config
	substitution string
	stopScore    float64
}

func newEngineFlags() *engineFlags {
	return &engineFlags{cfg: engine.DefaultConfig()}
}

func (f *engineFlags) registerSeed(fs *pflag.FlagSet) {
	c := &f.cfg
	fs.IntVarP(&c.K, "k", "k", c.K, "seed k-mer length (1..32)")
	fs.Var(&c.SeedPolicy, "seed-policy", "seed index policy: consensus | threshold")
	fs.Float64Var(&c.Threshold, "threshold", c.Threshold, "minimum probability of an indexed symbol (threshold policy)")
	fs.IntVar(&c.MaxKmersPerWindow, "max-kmers-per-window", c.MaxKmersPerWindow, "cap on k-mers indexed per reference window (threshold policy)")
}

func (f *engineFlags) registerExtend(fs *pflag.FlagSet) {
	c := &f.cfg
	fs.Float64Var(&c.Delta, "delta", c.Delta, "x-drop tolerance of the ungapped extension")
	fs.Var(&c.ScoreMethod, "score-method", "position score: sum_proba_score | sum_proba_score_clamped")
	fs.Float64Var(&c.MismatchPenalty, "mismatch-penalty", c.MismatchPenalty, "weight of the probability mass that disagrees with the query")
	fs.StringVar(&f.substitution, "substitution", "", `substitution costs "AC=-1,AG=-0.5,..." (query then reference symbol)`)
	fs.Float64Var(&c.GapOpen, "gap-open", c.GapOpen, "score added once per gap (<= 0)")
	fs.Float64Var(&c.GapExtend, "gap-extend", c.GapExtend, "score added per gap column (<= 0)")
	fs.IntVar(&c.RefMaxLengthFactor, "ref-max-length-factor", c.RefMaxLengthFactor, "flank window length as a multiple of the query length")
	fs.IntVar(&c.GapPeriod, "gap-period", c.GapPeriod, "open gaps only every N reference columns (0/1 = anywhere)")
	fs.Float64Var(&f.stopScore, "stop-score", 0, "stop flank alignment once a column reaches this score (unset = never)")
	fs.IntVar(&c.MaxHits, "max-hits", c.MaxHits, "keep the best N hits per query (0 = all)")
}

// config finalizes the parsed flags into a validated engine.Config.
func (f *engineFlags) config(fs *pflag.FlagSet) (engine.Config, error) {
	c := f.cfg
	sub, err := scoring.ParseSubstitution(f.substitution)
	if err != nil {
		return c, inputErr(err)
	}
	c.Substitution = sub
	if fs.Changed("stop-score") {
		v := f.stopScore
		c.StopScore = &v
	}
	if err := c.Validate(); err != nil {
		return c, inputErr(err)
	}
	return c, nil
}

// adoptIndex takes seed parameters from a loaded index unless they were set
// explicitly; explicit mismatches are caught by engine.NewWithIndex.
func adoptIndex(fs *pflag.FlagSet, c *engine.Config, idx *seed.Index) {
	if !fs.Changed("k") {
		c.K = idx.K()
	}
	if !fs.Changed("seed-policy") {
		c.SeedPolicy = idx.Policy()
	}
	if !fs.Changed("threshold") {
		c.Threshold = idx.Threshold()
	}
}

func loadIndex(path string) (*seed.Index, error) {
	start := time.Now()
	idx, err := indexio.Load(path)
	if err != nil {
		return nil, inputErr(err)
	}
	st := idx.Stats()
	cmdutil.Log.Infof("seed index %s: k=%d policy=%s, %s k-mers over %s positions, loaded in %s",
		path, idx.K(), idx.Policy(), humanize.Comma(int64(st.Kmers)), humanize.Comma(int64(st.Positions)),
		time.Since(start).Round(time.Millisecond))
	return idx, nil
}

// newEngine builds the seed index unless idx is given.
func newEngine(ref *probmat.Matrix, idx *seed.Index, cfg engine.Config) (*engine.Engine, error) {
	if idx != nil {
		e, err := engine.NewWithIndex(ref, idx, cfg)
		if err != nil {
			return nil, inputErr(err)
		}
		return e, nil
	}
	start := time.Now()
	e, err := engine.New(ref, cfg)
	if err != nil {
		return nil, inputErr(err)
	}
	st := e.Index().Stats()
	cmdutil.Log.Infof("seed index built in %s: %s k-mers, %s entries",
		time.Since(start).Round(time.Millisecond), humanize.Comma(int64(st.Kmers)), humanize.Comma(int64(st.Entries)))
	return e, nil
}
