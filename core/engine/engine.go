// core/engine/engine.go
package engine

import (
	"errors"
	"fmt"
	"sync"

	"pblast/core/extend"
	"pblast/core/probmat"
	"pblast/core/scoring"
	"pblast/core/seed"
)

// ErrIndexMismatch is returned when a prebuilt index does not fit the matrix
// or the configuration.
var ErrIndexMismatch = errors.New("seed index does not match reference or configuration")

// Engine searches queries against one reference.
type Engine struct {
	cfg    Config
	ref    *probmat.Matrix
	idx    *seed.Index
	scorer scoring.Scorer
}

// New validates cfg and builds the seed index of ref.
func New(ref *probmat.Matrix, cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	idx, err := seed.Build(ref, cfg.BuildOptions())
	if err != nil {
		return nil, err
	}
	return newEngine(ref, idx, cfg)
}

// NewWithIndex reuses a prebuilt (typically loaded) index. Its k, policy,
// threshold (threshold policy only) and reference length must agree with cfg
// and ref.
func NewWithIndex(ref *probmat.Matrix, idx *seed.Index, cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if ref == nil || ref.Len() == 0 {
		return nil, fmt.Errorf("reference: %w", probmat.ErrEmpty)
	}
	switch {
	case idx.K() != cfg.K:
		return nil, fmt.Errorf("%w: index k=%d, configured k=%d", ErrIndexMismatch, idx.K(), cfg.K)
	case idx.Policy() != cfg.SeedPolicy:
		return nil, fmt.Errorf("%w: index policy %v, configured %v", ErrIndexMismatch, idx.Policy(), cfg.SeedPolicy)
	case cfg.SeedPolicy == seed.Threshold && idx.Threshold() != cfg.Threshold:
		return nil, fmt.Errorf("%w: index threshold %g, configured %g", ErrIndexMismatch, idx.Threshold(), cfg.Threshold)
	case idx.RefLen() != ref.Len():
		return nil, fmt.Errorf("%w: index built over %d positions, reference has %d", ErrIndexMismatch, idx.RefLen(), ref.Len())
	}
	return newEngine(ref, idx, cfg)
}

func newEngine(ref *probmat.Matrix, idx *seed.Index, cfg Config) (*Engine, error) {
	sc, err := cfg.scorer()
	if err != nil {
		return nil, err
	}
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	return &Engine{cfg: cfg, ref: ref, idx: idx, scorer: sc}, nil
}

// Index returns the seed index the engine searches.
func (e *Engine) Index() *seed.Index { return e.idx }

func (e *Engine) ungappedOptions() extend.UngappedOptions {
	return extend.UngappedOptions{Delta: e.cfg.Delta, Scorer: e.scorer}
}

func (e *Engine) gappedOptions() extend.GappedOptions {
	return extend.GappedOptions{
		Scorer:             e.scorer,
		GapOpen:            e.cfg.GapOpen,
		GapExtend:          e.cfg.GapExtend,
		RefMaxLengthFactor: e.cfg.RefMaxLengthFactor,
		GapPeriod:          e.cfg.GapPeriod,
		StopScore:          e.cfg.StopScore,
	}
}

// Search validates query and returns its ranked hits.
func (e *Engine) Search(query string) ([]extend.GappedHit, error) {
	q, err := probmat.NewQuery(query)
	if err != nil {
		return nil, err
	}
	return e.SearchQuery(q)
}

// SearchQuery runs seed matching, ungapped and gapped extension and ranking
// for an already validated query.
func (e *Engine) SearchQuery(q probmat.Query) ([]extend.GappedHit, error) {
	hits, err := seed.Match(e.idx, q)
	if err != nil {
		return nil, err
	}
	var out []extend.GappedHit
	if e.cfg.Threads > 1 && len(hits) > 1 {
		out, err = e.extendParallel(q, hits)
	} else {
		out, err = e.extendSerial(q, hits)
	}
	if err != nil {
		return nil, err
	}
	Rank(out)
	if e.cfg.MaxHits > 0 && len(out) > e.cfg.MaxHits {
		out = out[:e.cfg.MaxHits]
	}
	return out, nil
}

func (e *Engine) extendSerial(q probmat.Query, hits []seed.Hit) ([]extend.GappedHit, error) {
	ums, err := extend.ExtendUngapped(q, e.ref, hits, e.cfg.K, e.ungappedOptions())
	if err != nil {
		return nil, err
	}
	return extend.ExtendGapped(q, e.ref, ums, e.gappedOptions())
}

// extendParallel extends hits on a bounded worker pool. Every hit owns its
// output slot, so the result equals the serial one.
func (e *Engine) extendParallel(q probmat.Query, hits []seed.Hit) ([]extend.GappedHit, error) {
	workers := e.cfg.Threads
	if workers > len(hits) {
		workers = len(hits)
	}
	uo, gopt := e.ungappedOptions(), e.gappedOptions()
	out := make([]extend.GappedHit, len(hits))
	errs := make([]error, len(hits))

	jobs := make(chan int, workers*2)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				ums, err := extend.ExtendUngapped(q, e.ref, hits[i:i+1], e.cfg.K, uo)
				if err != nil {
					errs[i] = err
					continue
				}
				out[i] = extend.GappedExtendOne(q, e.ref, ums[0], gopt)
			}
		}()
	}
	for i := range hits {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Search is the one-shot form: build an index for ref under cfg and search
// query against it.
func Search(query string, ref *probmat.Matrix, cfg Config) ([]extend.GappedHit, error) {
	e, err := New(ref, cfg)
	if err != nil {
		return nil, err
	}
	return e.Search(query)
}
