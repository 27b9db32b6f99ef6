package indexio

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"pblast/core/probmat"
	"pblast/core/seed"
)

func buildIndex(t *testing.T) *seed.Index {
	t.Helper()
	m, err := probmat.FromConsensus("ACGTTGCAACGGTACCATGA",
		[]float64{1, .9, .6, .4, 1, 1, .8, .5, 1, 1, 1, .7, .9, 1, .3, 1, 1, .95, 1, 1})
	if err != nil {
		t.Fatal(err)
	}
	idx, err := seed.Build(m, seed.BuildOptions{Policy: seed.Threshold, K: 4, Threshold: 0.2})
	if err != nil {
		t.Fatal(err)
	}
	return idx
}

func TestRoundTrip(t *testing.T) {
	idx := buildIndex(t)
	var buf bytes.Buffer
	if err := Write(&buf, idx); err != nil {
		t.Fatalf("Write: %v", err)
	}
	back, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if back.Fingerprint() != idx.Fingerprint() || back.K() != 4 || back.Policy() != seed.Threshold {
		t.Fatal("round trip changed the index")
	}
}

func TestCorruption(t *testing.T) {
	idx := buildIndex(t)
	var buf bytes.Buffer
	if err := Write(&buf, idx); err != nil {
		t.Fatal(err)
	}
	raw := buf.Bytes()

	bad := append([]byte(nil), raw...)
	bad[len(bad)-3] ^= 0x55
	if _, err := Read(bytes.NewReader(bad)); !errors.Is(err, ErrChecksum) {
		t.Fatalf("payload flip: err = %v", err)
	}

	bad = append([]byte(nil), raw...)
	bad[0] = 'X'
	if _, err := Read(bytes.NewReader(bad)); !errors.Is(err, ErrBadMagic) {
		t.Fatalf("magic: err = %v", err)
	}

	bad = append([]byte(nil), raw...)
	bad[6] ^= 0x01 // fingerprint, first byte after magic+version
	if _, err := Read(bytes.NewReader(bad)); !errors.Is(err, ErrFingerprint) {
		t.Fatalf("fingerprint: err = %v", err)
	}
}

func TestSaveLoadGzip(t *testing.T) {
	idx := buildIndex(t)
	path := filepath.Join(t.TempDir(), "ref.pbix.gz")
	if err := Save(path, idx); err != nil {
		t.Fatalf("Save: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if back.Fingerprint() != idx.Fingerprint() {
		t.Fatal("gzip round trip changed the index")
	}
}
