// core/engine/config.go
package engine

import (
	"errors"
	"fmt"
	"math"

	"pblast/core/scoring"
	"pblast/core/seed"
)

// ErrConfig marks every parameter validation failure.
var ErrConfig = errors.New("invalid search configuration")

// Config holds all search parameters.
type Config struct {
	K               int     // seed length (1..32)
	Delta           float64 // x-drop tolerance of the ungapped walk (>=0)
	ScoreMethod     scoring.Method
	MismatchPenalty float64
	Substitution    *scoring.Substitution // nil = probability-weighted default

	GapOpen            float64 // added once per gap (<=0)
	GapExtend          float64 // added per gap column (<=0)
	RefMaxLengthFactor int     // flank window = factor × query length
	GapPeriod          int     // gaps may open only every N reference columns (0/1 = always)
	StopScore          *float64

	SeedPolicy        seed.Policy
	Threshold         float64 // threshold policy only
	MaxKmersPerWindow int     // threshold policy only (0 = default)

	Threads int // extension workers per query (>=1)
	MaxHits int // keep the best N hits (0 = all)
}

// DefaultConfig returns the parameters used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		K:                  11,
		Delta:              1,
		ScoreMethod:        scoring.SumProba,
		MismatchPenalty:    5,
		GapOpen:            -2,
		GapExtend:          -1,
		RefMaxLengthFactor: 2,
		GapPeriod:          1,
		SeedPolicy:         seed.Consensus,
		Threshold:          0.3,
		MaxKmersPerWindow:  seed.DefaultMaxKmersPerWindow,
		Threads:            1,
	}
}

// Validate reports the first invalid parameter, wrapped in ErrConfig.
func (c Config) Validate() error {
	bad := func(format string, a ...any) error {
		return fmt.Errorf("%w: "+format, append([]any{ErrConfig}, a...)...)
	}
	switch {
	case c.K <= 0 || c.K > seed.MaxK:
		return bad("k must be in 1..%d, got %d", seed.MaxK, c.K)
	case !(c.Delta >= 0):
		return bad("delta must be >= 0, got %g", c.Delta)
	case !(c.MismatchPenalty >= 0):
		return bad("mismatch penalty must be >= 0, got %g", c.MismatchPenalty)
	case !(c.GapOpen <= 0) || !(c.GapExtend <= 0):
		return bad("gap open/extend are added to the score and must be <= 0 (got %g/%g)", c.GapOpen, c.GapExtend)
	case c.RefMaxLengthFactor < 1:
		return bad("ref max length factor must be >= 1, got %d", c.RefMaxLengthFactor)
	case c.GapPeriod < 0:
		return bad("gap period must be >= 0, got %d", c.GapPeriod)
	case !(c.Threshold >= 0 && c.Threshold <= 1):
		return bad("threshold must be in [0,1], got %g", c.Threshold)
	case c.MaxKmersPerWindow < 0:
		return bad("max k-mers per window must be >= 0, got %d", c.MaxKmersPerWindow)
	case c.Threads < 0:
		return bad("threads must be >= 0, got %d", c.Threads)
	case c.MaxHits < 0:
		return bad("max hits must be >= 0, got %d", c.MaxHits)
	}
	if c.StopScore != nil && math.IsNaN(*c.StopScore) {
		return bad("stop score must be a number")
	}
	if c.SeedPolicy != seed.Consensus && c.SeedPolicy != seed.Threshold {
		return bad("%v", fmt.Errorf("%w: %v", seed.ErrUnknownPolicy, c.SeedPolicy))
	}
	if _, err := c.scorer(); err != nil {
		return bad("%v", err)
	}
	return nil
}

func (c Config) scorer() (scoring.Scorer, error) {
	return scoring.New(c.ScoreMethod, c.MismatchPenalty, c.Substitution)
}

// BuildOptions are the seed index parameters of c.
func (c Config) BuildOptions() seed.BuildOptions {
	return seed.BuildOptions{
		Policy:            c.SeedPolicy,
		K:                 c.K,
		Threshold:         c.Threshold,
		MaxKmersPerWindow: c.MaxKmersPerWindow,
	}
}
