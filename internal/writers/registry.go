// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"pblast/internal/output"
	"pblast/internal/pretty"
	"pblast/pkg/api"
)

// Options shape the text renderers; JSON formats ignore them.
type Options struct {
	Header        bool
	Pretty        bool
	PrettyOptions pretty.Options
}

// HitWriterFunc consumes in until it is closed.
type HitWriterFunc func(w io.Writer, in <-chan output.Hit, opt Options) error

// EvalWriterFunc consumes in until it is closed.
type EvalWriterFunc func(w io.Writer, in <-chan api.EvalV1, opt Options) error

// Writer registries (format → handler). Registered in init() blocks of the
// hit/eval writer files.
var (
	HitWriters  = map[string]HitWriterFunc{}
	EvalWriters = map[string]EvalWriterFunc{}
)

// Register helpers (idempotent last-wins)
func RegisterHit(format string, fn HitWriterFunc)   { HitWriters[format] = fn }
func RegisterEval(format string, fn EvalWriterFunc) { EvalWriters[format] = fn }

// HitFormats lists the registered hit formats, sorted.
func HitFormats() []string { return keys(HitWriters) }

// EvalFormats lists the registered evaluation formats, sorted.
func EvalFormats() []string { return keys(EvalWriters) }

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// start runs fn on a goroutine. An unknown format still drains in so that
// senders never block.
func start[T any](out io.Writer, format, kind string, fn func(io.Writer, <-chan T, Options) error, ok bool, opt Options, bufSize int) (chan<- T, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan T, bufSize)
	errCh := make(chan error, 1)
	go func() {
		if !ok {
			for range in {
			}
			errCh <- fmt.Errorf("unknown %s format %q (no writer registered)", kind, format)
			return
		}
		err := fn(out, in, opt)
		if IsBrokenPipe(err) {
			err = nil
		}
		errCh <- err
	}()
	return in, errCh
}

// StartHitWriter spins up a writer goroutine for hits in the given format.
func StartHitWriter(out io.Writer, format string, opt Options, bufSize int) (chan<- output.Hit, <-chan error) {
	fn, ok := HitWriters[format]
	return start[output.Hit](out, format, "hit", fn, ok, opt, bufSize)
}

// StartEvalWriter spins up a writer goroutine for per-query evaluations.
func StartEvalWriter(out io.Writer, format string, opt Options, bufSize int) (chan<- api.EvalV1, <-chan error) {
	fn, ok := EvalWriters[format]
	return start[api.EvalV1](out, format, "eval", fn, ok, opt, bufSize)
}
