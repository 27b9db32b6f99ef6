package pipeline

import (
	"context"
	"errors"
	"testing"

	"pblast/core/engine"
	"pblast/core/extend"
	"pblast/core/probmat"
	"pblast/internal/queryio"
)

// Compile-time check: the concrete engine satisfies the minimal contract.
var _ Searcher = (*engine.Engine)(nil)

// fake searcher: one hit whose score is the query length
type fakeSearcher struct{}

func (fakeSearcher) SearchQuery(q probmat.Query) ([]extend.GappedHit, error) {
	return []extend.GappedHit{{Final: extend.Range{RefLeft: 0, RefRight: q.Len() - 1, Score: float64(q.Len())}}}, nil
}

var errBoom = errors.New("boom")

type failingSearcher struct{ bad string }

func (f failingSearcher) SearchQuery(q probmat.Query) ([]extend.GappedHit, error) {
	if q.String() == f.bad {
		return nil, errBoom
	}
	return nil, nil
}

func manyQueries(n int) []queryio.Record {
	seqs := make([]string, n)
	for i := range seqs {
		seqs[i] = "ACGTACGTAC"[:1+i%10]
	}
	return queryio.FromStrings(seqs)
}

func TestForEachResult_Ordered(t *testing.T) {
	qs := manyQueries(50)
	var got []int
	err := ForEachResult(context.Background(), Config{Threads: 8, Ordered: true}, qs, fakeSearcher{},
		func(r Result) error {
			got = append(got, r.Ordinal)
			if want := float64(len(r.Query.Seq)); r.Hits[0].Final.Score != want {
				t.Fatalf("%s: score %g, want %g", r.Query.ID, r.Hits[0].Final.Score, want)
			}
			return nil
		})
	if err != nil {
		t.Fatalf("pipeline err: %v", err)
	}
	if len(got) != len(qs) {
		t.Fatalf("visited %d, want %d", len(got), len(qs))
	}
	for i, o := range got {
		if o != i {
			t.Fatalf("position %d holds ordinal %d", i, o)
		}
	}
}

func TestForEachResult_Unordered(t *testing.T) {
	qs := manyQueries(20)
	seen := make(map[int]bool)
	err := ForEachResult(context.Background(), Config{Threads: 4}, qs, fakeSearcher{},
		func(r Result) error { seen[r.Ordinal] = true; return nil })
	if err != nil {
		t.Fatalf("pipeline err: %v", err)
	}
	if len(seen) != len(qs) {
		t.Fatalf("visited %d distinct queries, want %d", len(seen), len(qs))
	}
}

func TestForEachResult_SearchError(t *testing.T) {
	qs := queryio.FromStrings([]string{"ACGT", "GGGG", "TTTT"})
	err := ForEachResult(context.Background(), Config{Threads: 2}, qs, failingSearcher{bad: "GGGG"},
		func(Result) error { return nil })
	if !errors.Is(err, errBoom) {
		t.Fatalf("err = %v, want errBoom", err)
	}
}

func TestForEachResult_BadQuery(t *testing.T) {
	qs := queryio.FromStrings([]string{"ACGT", "ACNT"})
	err := ForEachResult(context.Background(), Config{Threads: 1}, qs, fakeSearcher{},
		func(Result) error { return nil })
	if !errors.Is(err, probmat.ErrBadSymbol) {
		t.Fatalf("err = %v, want ErrBadSymbol", err)
	}
}

func TestForEachResult_VisitError(t *testing.T) {
	var n int
	err := ForEachResult(context.Background(), Config{Threads: 3, Ordered: true}, manyQueries(30), fakeSearcher{},
		func(Result) error {
			n++
			if n == 2 {
				return errBoom
			}
			return nil
		})
	if !errors.Is(err, errBoom) {
		t.Fatalf("err = %v, want errBoom", err)
	}
	if n != 2 {
		t.Fatalf("visit called %d times after error, want 2", n)
	}
}

func TestForEachResult_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := ForEachResult(ctx, Config{Threads: 2}, manyQueries(100), fakeSearcher{},
		func(Result) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
