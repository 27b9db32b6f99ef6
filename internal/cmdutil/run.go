// internal/cmdutil/run.go
package cmdutil

import (
	"context"

	"pblast/internal/pipeline"
	"pblast/internal/queryio"
)

// Stats counts what RunStream saw.
type Stats struct {
	Queries int // queries searched
	Matched int // queries with at least one hit
	Hits    int // hits sent
}

// RunStream runs the query pipeline, converts every result with visit, and
// streams the converted items via send. It returns the counts and the first
// error encountered.
func RunStream[T any](
	ctx context.Context,
	cfg pipeline.Config,
	queries []queryio.Record,
	s pipeline.Searcher,
	progress *Progress,
	visit func(pipeline.Result) ([]T, error),
	send func(T) error,
) (Stats, error) {
	var st Stats
	err := pipeline.ForEachResult(ctx, cfg, queries, s, func(r pipeline.Result) error {
		st.Queries++
		progress.Incr()
		if len(r.Hits) > 0 {
			st.Matched++
		}
		items, err := visit(r)
		if err != nil {
			return err
		}
		for _, it := range items {
			if err := send(it); err != nil {
				return err
			}
			st.Hits++
		}
		return nil
	})
	return st, err
}
