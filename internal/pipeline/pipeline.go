// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"sync"

	"pblast/core/extend"
	"pblast/core/probmat"
	"pblast/internal/queryio"
)

// Searcher is the minimal capability the pipeline needs.
// *engine.Engine satisfies it; tests use fakes.
type Searcher interface {
	SearchQuery(q probmat.Query) ([]extend.GappedHit, error)
}

// Config controls the query pipeline.
type Config struct {
	Threads int  // number of worker goroutines (>=1)
	Ordered bool // visit results in input order
}

// Result is one query's ranked hits.
type Result struct {
	Ordinal int // position of the query in the input
	Query   queryio.Record
	Seq     probmat.Query // validated form of Query.Seq
	Hits    []extend.GappedHit
}

// ForEachResult searches every query and calls visit once per query, from a
// single goroutine. It returns the first error encountered (a bad query, a
// search failure, a visit error or context cancellation).
func ForEachResult(
	ctx context.Context,
	cfg Config,
	queries []queryio.Record,
	s Searcher,
	visit func(Result) error,
) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	parent := ctx
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	type outcome struct {
		res Result
		err error
	}
	jobs := make(chan int, cfg.Threads*2)
	results := make(chan outcome, cfg.Threads*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case i, ok := <-jobs:
					if !ok {
						return
					}
					o := outcome{res: Result{Ordinal: i, Query: queries[i]}}
					q, err := probmat.NewQuery(queries[i].Seq)
					if err == nil {
						o.res.Seq = q
						o.res.Hits, err = s.SearchQuery(q)
					}
					if err != nil {
						o.err = fmt.Errorf("query %s: %w", queries[i].ID, err)
					}
					select {
					case results <- o:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector
	var (
		cerr error
		cwg  sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		next := 0
		pending := make(map[int]Result)
		emit := func(r Result) {
			if err := visit(r); err != nil && cerr == nil {
				cerr = err
				cancel()
			}
		}
		for o := range results {
			if cerr != nil {
				continue
			}
			if o.err != nil {
				cerr = o.err
				cancel()
				continue
			}
			if !cfg.Ordered {
				emit(o.res)
				continue
			}
			pending[o.res.Ordinal] = o.res
			for {
				r, ok := pending[next]
				if !ok || cerr != nil {
					break
				}
				delete(pending, next)
				next++
				emit(r)
			}
		}
	}()

	// Feed work
feed:
	for i := range queries {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	if cerr != nil {
		return cerr
	}
	return parent.Err()
}
