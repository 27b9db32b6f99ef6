package matrixio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"pblast/core/probmat"
)

func sample(t *testing.T) *probmat.Matrix {
	t.Helper()
	m, err := probmat.FromConsensus("ACGTA", []float64{1, 0.7, 0.4, 0.97, 0.25})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestTSVRoundTrip(t *testing.T) {
	m := sample(t)
	var buf bytes.Buffer
	if err := WriteTSV(&buf, m); err != nil {
		t.Fatalf("WriteTSV: %v", err)
	}
	back, err := ReadTSV(&buf)
	if err != nil {
		t.Fatalf("ReadTSV: %v", err)
	}
	if !reflect.DeepEqual(back.Rows(), m.Rows()) {
		t.Fatal("tsv round trip changed rows")
	}
}

func TestReadTSVCommentsAndErrors(t *testing.T) {
	in := "# reference\nA C G T\n\n1 0 0 0\n0.25 0.25 0.25 0.25\n"
	m, err := ReadTSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadTSV: %v", err)
	}
	if m.Len() != 2 || m.ConsensusAt(1) != 'A' {
		t.Fatalf("got len %d consensus %q", m.Len(), m.Consensus(0, m.Len()))
	}

	if _, err := ReadTSV(strings.NewReader("0.5 0.5 0.5 0.5\n")); !errors.Is(err, probmat.ErrRowSum) {
		t.Fatalf("row sum: err = %v", err)
	}
	if _, err := ReadTSV(strings.NewReader("1 0 0\n")); !errors.Is(err, ErrFormat) {
		t.Fatalf("column count: err = %v", err)
	}
	if _, err := ReadTSV(strings.NewReader("# nothing\n")); !errors.Is(err, probmat.ErrEmpty) {
		t.Fatalf("empty: err = %v", err)
	}
}

func TestBinaryRoundTripAndChecksum(t *testing.T) {
	m := sample(t)
	var buf bytes.Buffer
	if err := WriteBinary(&buf, m); err != nil {
		t.Fatalf("WriteBinary: %v", err)
	}
	raw := buf.Bytes()
	back, err := ReadBinary(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("ReadBinary: %v", err)
	}
	if !reflect.DeepEqual(back.Rows(), m.Rows()) {
		t.Fatal("binary round trip changed rows")
	}

	bad := append([]byte(nil), raw...)
	bad[20] ^= 0xff
	if _, err := ReadBinary(bytes.NewReader(bad)); !errors.Is(err, ErrChecksum) {
		t.Fatalf("corrupt payload: err = %v", err)
	}
	if _, err := ReadBinary(strings.NewReader("nope")); !errors.Is(err, ErrBadMagic) {
		t.Fatalf("bad magic: err = %v", err)
	}
}

func TestLoadSaveFiles(t *testing.T) {
	dir := t.TempDir()
	m := sample(t)
	for _, name := range []string{"ref.tsv", "ref.tsv.gz", "ref.pbm"} {
		path := filepath.Join(dir, name)
		if err := Save(path, FormatAuto, m); err != nil {
			t.Fatalf("Save(%s): %v", name, err)
		}
		back, err := Load(path, FormatAuto, "")
		if err != nil {
			t.Fatalf("Load(%s): %v", name, err)
		}
		if !reflect.DeepEqual(back.Rows(), m.Rows()) {
			t.Fatalf("%s: round trip changed rows", name)
		}
	}
}

func TestLoadConsensus(t *testing.T) {
	dir := t.TempDir()
	seq := filepath.Join(dir, "ref.fa")
	probs := filepath.Join(dir, "ref.probs")
	if err := os.WriteFile(seq, []byte(">ref\nACG\nTA\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(probs, []byte("1 0.7 0.4\n0.97 0.25\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := Load(seq, FormatConsensus, probs)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(m.Rows(), sample(t).Rows()) {
		t.Fatal("consensus load differs from FromConsensus")
	}
	if _, err := Load(seq, FormatConsensus, ""); err == nil {
		t.Fatal("expected missing probabilities error")
	}
}

func TestReadConsensusPlainSequence(t *testing.T) {
	dir := t.TempDir()
	seq := filepath.Join(dir, "ref.txt")
	probs := filepath.Join(dir, "ref.probs")
	if err := os.WriteFile(seq, []byte("acgta\nignored\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(probs, []byte("1 0.7 0.4 0.97 0.25"), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := ReadConsensusFiles(seq, probs)
	if err != nil {
		t.Fatalf("ReadConsensusFiles: %v", err)
	}
	if !reflect.DeepEqual(m.Rows(), sample(t).Rows()) {
		t.Fatal("plain sequence load differs from FromConsensus")
	}
}
