package jsonutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

type rec struct {
	N int `json:"n"`
}

func TestStartLinesAndDecode(t *testing.T) {
	var buf bytes.Buffer
	in, done := StartLines[int](&buf, 0, func(enc *json.Encoder, n int) error {
		return enc.Encode(rec{N: n})
	}, func(error) bool { return false })
	for i := 1; i <= 3; i++ {
		in <- i
	}
	close(in)
	if err := <-done; err != nil {
		t.Fatalf("writer: %v", err)
	}
	if got := strings.Count(buf.String(), "\n"); got != 3 {
		t.Fatalf("%d lines, want 3", got)
	}

	var sum int
	if err := DecodeLines(&buf, func(r rec) error { sum += r.N; return nil }); err != nil {
		t.Fatalf("DecodeLines: %v", err)
	}
	if sum != 6 {
		t.Fatalf("sum = %d, want 6", sum)
	}
}

func TestStartLinesBrokenPipeSuppressed(t *testing.T) {
	errPipe := errors.New("pipe")
	in, done := StartLines[int](&bytes.Buffer{}, 1, func(*json.Encoder, int) error { return errPipe },
		func(err error) bool { return errors.Is(err, errPipe) })
	in <- 1
	in <- 2
	close(in)
	if err := <-done; err != nil {
		t.Fatalf("broken pipe not suppressed: %v", err)
	}
}

func TestDecodeLinesBadRecord(t *testing.T) {
	err := DecodeLines(strings.NewReader("{\"n\":1}\n{oops\n"), func(rec) error { return nil })
	if err == nil || !strings.Contains(err.Error(), "record 2") {
		t.Fatalf("err = %v", err)
	}
}

func TestEncodePretty(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodePretty(&buf, []rec{{N: 1}}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\n  {") {
		t.Fatalf("not indented: %q", buf.String())
	}
}
