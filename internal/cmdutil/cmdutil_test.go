package cmdutil

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"pblast/core/extend"
	"pblast/core/probmat"
	"pblast/internal/pipeline"
	"pblast/internal/queryio"
)

func TestSetupLoggingLevels(t *testing.T) {
	defer SetupLogging(os.Stderr, false, false)

	var buf bytes.Buffer
	SetupLogging(&buf, false, false)
	Log.Info("hello")
	Log.Debug("hidden")
	if !strings.Contains(buf.String(), "[INFO] hello") || strings.Contains(buf.String(), "hidden") {
		t.Fatalf("default level output: %q", buf.String())
	}

	buf.Reset()
	SetupLogging(&buf, false, true)
	Warnf(false, "dropped %d", 1)
	Log.Error("kept")
	if strings.Contains(buf.String(), "dropped") || !strings.Contains(buf.String(), "kept") {
		t.Fatalf("quiet level output: %q", buf.String())
	}

	buf.Reset()
	SetupLogging(&buf, true, false)
	Log.Debugf("k=%d", 11)
	if !strings.Contains(buf.String(), "k=11") {
		t.Fatalf("verbose level output: %q", buf.String())
	}
}

type lenSearcher struct{}

func (lenSearcher) SearchQuery(q probmat.Query) ([]extend.GappedHit, error) {
	if q.Len() < 3 {
		return nil, nil
	}
	return make([]extend.GappedHit, q.Len()-2), nil
}

func TestRunStream(t *testing.T) {
	qs := queryio.FromStrings([]string{"AC", "ACG", "ACGT"})
	var sent []int
	st, err := RunStream(context.Background(), pipeline.Config{Threads: 2, Ordered: true}, qs, lenSearcher{}, nil,
		func(r pipeline.Result) ([]int, error) {
			out := make([]int, len(r.Hits))
			for i := range out {
				out[i] = r.Ordinal
			}
			return out, nil
		},
		func(v int) error { sent = append(sent, v); return nil })
	if err != nil {
		t.Fatal(err)
	}
	if st != (Stats{Queries: 3, Matched: 2, Hits: 3}) {
		t.Fatalf("stats = %+v", st)
	}
	if len(sent) != 3 || sent[0] != 1 || sent[2] != 2 {
		t.Fatalf("sent = %v", sent)
	}
}

func TestRunStreamSendError(t *testing.T) {
	boom := errors.New("boom")
	_, err := RunStream(context.Background(), pipeline.Config{}, queryio.FromStrings([]string{"ACGT"}), lenSearcher{}, nil,
		func(r pipeline.Result) ([]extend.GappedHit, error) { return r.Hits, nil },
		func(extend.GappedHit) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestProgressDisabledIsNil(t *testing.T) {
	if p := NewProgress(os.Stderr, "queries: ", 1, true); p != nil {
		t.Fatal("single item must not get a bar")
	}
	var p *Progress
	p.Incr()
	p.Done()
}
