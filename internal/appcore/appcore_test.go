package appcore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"pblast/core/engine"
	"pblast/core/extend"
	"pblast/core/probmat"
	"pblast/internal/output"
	"pblast/internal/pipeline"
	"pblast/internal/queryio"
)

func TestHitWriterFactory_NeedAlignment(t *testing.T) {
	if !NewHitWriterFactory("text", false, true, false).NeedAlignment() {
		t.Fatal("pretty text must need alignments")
	}
	if NewHitWriterFactory("text", false, false, true).NeedAlignment() {
		t.Fatal("plain text never prints alignments")
	}
	if !NewHitWriterFactory("jsonl", false, false, true).NeedAlignment() {
		t.Fatal("jsonl + --align must need alignments")
	}
	if NewHitWriterFactory("json", false, false, false).NeedAlignment() {
		t.Fatal("json without --align should not need alignments")
	}
}

func TestHitWriterFactory_Ignored(t *testing.T) {
	cases := []struct {
		f    HitWriterFactory
		want []string
	}{
		{NewHitWriterFactory("text", true, true, false), nil},
		{NewHitWriterFactory("jsonl", false, false, true), nil},
		{NewHitWriterFactory("json", false, true, true), []string{"--pretty"}},
		{NewHitWriterFactory("text", true, false, true), []string{"--align"}},
		{NewHitWriterFactory("fasta", false, true, true), []string{"--pretty", "--align"}},
	}
	for _, tc := range cases {
		if got := tc.f.Ignored(); strings.Join(got, ",") != strings.Join(tc.want, ",") {
			t.Errorf("%+v: Ignored() = %v, want %v", tc.f, got, tc.want)
		}
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, ExitOK},
		{context.Canceled, ExitCanceled},
		{fmt.Errorf("query q1: %w", probmat.ErrBadSymbol), ExitUsage},
		{fmt.Errorf("x: %w", engine.ErrConfig), ExitUsage},
		{os.ErrPermission, ExitIO},
	}
	for _, tc := range cases {
		if got := Classify(tc.err); got != tc.want {
			t.Errorf("Classify(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func roundTrip(t *testing.T) (*engine.Engine, *probmat.Matrix) {
	t.Helper()
	ref, _ := probmat.FromSequence("AAAAACGTTTTT")
	cfg := engine.DefaultConfig()
	cfg.K = 2
	cfg.Delta = 0
	cfg.MismatchPenalty = 1
	e, err := engine.New(ref, cfg)
	if err != nil {
		t.Fatal(err)
	}
	return e, ref
}

func hitVisitor(ref *probmat.Matrix) VisitorFunc[output.Hit] {
	return func(r pipeline.Result) ([]output.Hit, error) {
		return output.NewHits(r.Query.ID, r.Seq, ref, r.Hits, false), nil
	}
}

func TestRun_WritesHits(t *testing.T) {
	e, ref := roundTrip(t)
	var out, errBuf bytes.Buffer
	code := Run[output.Hit](context.Background(), &out, &errBuf,
		Options{Queries: queryio.FromStrings([]string{"ACGT", "GGGG"}), Threads: 2, Quiet: true, NoMatchExitCode: 1},
		e, hitVisitor(ref), NewHitWriterFactory("text", true, false, false))
	if code != ExitOK {
		t.Fatalf("code = %d, stderr = %s", code, errBuf.String())
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 4 || lines[0] != output.TSVHeader {
		t.Fatalf("output:\n%s", out.String())
	}
	for _, l := range lines[1:] {
		if !strings.HasPrefix(l, "q1\t") {
			t.Fatalf("unexpected row %q", l)
		}
	}
}

func TestRun_NoMatchExitCode(t *testing.T) {
	e, ref := roundTrip(t)
	var out, errBuf bytes.Buffer
	code := Run[output.Hit](context.Background(), &out, &errBuf,
		Options{Queries: queryio.FromStrings([]string{"GGGG"}), Quiet: true, NoMatchExitCode: 1},
		e, hitVisitor(ref), NewHitWriterFactory("jsonl", false, false, false))
	if code != 1 {
		t.Fatalf("code = %d, want 1", code)
	}
}

type failSearcher struct{}

func (failSearcher) SearchQuery(probmat.Query) ([]extend.GappedHit, error) {
	return nil, errors.New("disk on fire")
}

func TestRun_Errors(t *testing.T) {
	_, ref := roundTrip(t)
	var out, errBuf bytes.Buffer
	code := Run[output.Hit](context.Background(), &out, &errBuf,
		Options{Queries: queryio.FromStrings([]string{"ACNT"}), Quiet: true},
		failSearcher{}, hitVisitor(ref), NewHitWriterFactory("text", false, false, false))
	if code != ExitUsage || !strings.Contains(errBuf.String(), "q1") {
		t.Fatalf("bad query: code = %d, stderr = %q", code, errBuf.String())
	}

	errBuf.Reset()
	code = Run[output.Hit](context.Background(), &out, &errBuf,
		Options{Queries: queryio.FromStrings([]string{"ACGT"}), Quiet: true},
		failSearcher{}, hitVisitor(ref), NewHitWriterFactory("text", false, false, false))
	if code != ExitIO || !strings.Contains(errBuf.String(), "disk on fire") {
		t.Fatalf("search failure: code = %d, stderr = %q", code, errBuf.String())
	}

	errBuf.Reset()
	code = Run[output.Hit](context.Background(), &out, &errBuf,
		Options{Queries: queryio.FromStrings([]string{"ACGT"}), Quiet: true},
		failSearcher{}, hitVisitor(ref), NewHitWriterFactory("yaml", false, false, false))
	if code != ExitIO || !strings.Contains(errBuf.String(), "unknown hit format") {
		t.Fatalf("bad format: code = %d, stderr = %q", code, errBuf.String())
	}
}

func TestRun_Canceled(t *testing.T) {
	e, ref := roundTrip(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out, errBuf bytes.Buffer
	qs := make([]string, 200)
	for i := range qs {
		qs[i] = "ACGT"
	}
	code := Run[output.Hit](ctx, &out, &errBuf, Options{Queries: queryio.FromStrings(qs), Quiet: true},
		e, hitVisitor(ref), NewHitWriterFactory("text", false, false, false))
	if code != ExitCanceled {
		t.Fatalf("code = %d, want %d", code, ExitCanceled)
	}
}
