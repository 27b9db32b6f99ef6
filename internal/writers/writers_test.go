package writers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"
	"syscall"
	"testing"

	"pblast/core/extend"
	"pblast/internal/jsonutil"
	"pblast/internal/output"
	"pblast/pkg/api"
)

func hits() []output.Hit {
	return []output.Hit{
		{QueryID: "q1", Rank: 1, GappedHit: extend.GappedHit{Final: extend.Range{RefLeft: 4, RefRight: 7, Score: 4}},
			AlignedQuery: "ACGT", AlignedRef: "ACGT", RefSeq: "ACGT"},
		{QueryID: "q1", Rank: 2, GappedHit: extend.GappedHit{Final: extend.Range{RefLeft: 0, RefRight: 3, Score: -1}},
			AlignedQuery: "ACGT", AlignedRef: "AAAA", RefSeq: "AAAA"},
	}
}

func run(t *testing.T, format string, opt Options) string {
	t.Helper()
	var buf bytes.Buffer
	in, done := StartHitWriter(&buf, format, opt, 1)
	for _, h := range hits() {
		in <- h
	}
	close(in)
	if err := <-done; err != nil {
		t.Fatalf("%s writer: %v", format, err)
	}
	return buf.String()
}

func TestUnknownHitFormatError(t *testing.T) {
	var b bytes.Buffer
	in, done := StartHitWriter(&b, "nope-format", Options{}, 1)
	in <- output.Hit{}
	close(in)
	err := <-done
	if err == nil || !strings.Contains(err.Error(), "unknown hit format") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUnknownEvalFormatError(t *testing.T) {
	in, done := StartEvalWriter(io.Discard, "fasta", Options{}, 1)
	close(in)
	if err := <-done; err == nil || !strings.Contains(err.Error(), "unknown eval format") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFormatsRegistered(t *testing.T) {
	if got := HitFormats(); !reflect.DeepEqual(got, []string{"fasta", "json", "jsonl", "text"}) {
		t.Fatalf("hit formats = %v", got)
	}
	if got := EvalFormats(); !reflect.DeepEqual(got, []string{"json", "jsonl", "text"}) {
		t.Fatalf("eval formats = %v", got)
	}
}

func TestHitWriter_Text(t *testing.T) {
	got := run(t, output.FormatText, Options{Header: true, Pretty: true})
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if lines[0] != output.TSVHeader {
		t.Fatalf("missing header: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "q1\t1\t4\t7\t4\t4\t") {
		t.Fatalf("first row = %q", lines[1])
	}
	if !strings.Contains(got, "# Query 0 ACGT 3") {
		t.Fatalf("pretty block missing:\n%s", got)
	}
}

func TestHitWriter_JSONL(t *testing.T) {
	got := run(t, output.FormatJSONL, Options{})
	var ranks []int
	err := jsonutil.DecodeLines(strings.NewReader(got), func(h api.HitV1) error {
		ranks = append(ranks, h.Rank)
		return nil
	})
	if err != nil || !reflect.DeepEqual(ranks, []int{1, 2}) {
		t.Fatalf("jsonl roundtrip: %v ranks=%v", err, ranks)
	}
}

func TestHitWriter_JSON(t *testing.T) {
	var got []api.HitV1
	if err := json.Unmarshal([]byte(run(t, output.FormatJSON, Options{})), &got); err != nil || len(got) != 2 {
		t.Fatalf("json roundtrip: %v len=%d", err, len(got))
	}
	if got[1].RefStart != 0 || got[1].Score != -1 {
		t.Fatalf("second hit = %+v", got[1])
	}
}

func TestHitWriter_FASTA(t *testing.T) {
	const want = ">q1_1 ref=4-7 score=4\nACGT\n>q1_2 ref=0-3 score=-1\nAAAA\n"
	if got := run(t, output.FormatFASTA, Options{}); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEvalWriter_Text(t *testing.T) {
	var buf bytes.Buffer
	in, done := StartEvalWriter(&buf, output.FormatText, Options{Header: true}, 1)
	auc := 0.75
	in <- api.EvalV1{QueryID: "q1", Origin: [2]int{10, 19}, Hits: 3, Top1IoU: 1, Top5IoU: 1, Top10IoU: 1, AUC: &auc}
	in <- api.EvalV1{QueryID: "q2", Origin: [2]int{0, 9}}
	close(in)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	want := EvalTSVHeader + "\nq1\t10\t19\t3\t1\t1\t1\t0.75\nq2\t0\t9\t0\t0\t0\t0\tNA\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, syscall.EPIPE }

func TestBrokenPipeIsSilent(t *testing.T) {
	in, done := StartHitWriter(brokenWriter{}, output.FormatText, Options{Header: true}, 1)
	for _, h := range hits() {
		in <- h
	}
	close(in)
	if err := <-done; err != nil {
		t.Fatalf("broken pipe surfaced: %v", err)
	}
	if !IsBrokenPipe(errors.Join(errors.New("x"), io.ErrClosedPipe)) {
		t.Fatal("wrapped closed pipe not recognized")
	}
}
