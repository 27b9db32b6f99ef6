// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"

	"pblast/internal/cmdutil"
	"pblast/internal/pipeline"
	"pblast/internal/queryio"
	"pblast/internal/writers"
)

// Exit codes shared by every subcommand.
const (
	ExitOK       = 0
	ExitUsage    = 2 // bad flags, bad input files, invalid parameters
	ExitIO       = 3 // write failures and other runtime errors
	ExitCanceled = 130
)

type Options struct {
	Queries []queryio.Record

	Threads  int // query workers; <=0 uses every CPU
	Progress bool
	Quiet    bool

	NoMatchExitCode int
}

// EffectiveThreads resolves a thread flag value.
func EffectiveThreads(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

type VisitorFunc[T any] func(pipeline.Result) ([]T, error)

type WriterFactory[T any] interface {
	Start(out io.Writer, bufSize int) (chan<- T, <-chan error)
}

// Run searches every query with s, converts results with visit and writes
// them through wf. It reports errors on stderr and returns the exit code.
func Run[T any](
	parent context.Context,
	stdout, stderr io.Writer,
	o Options,
	s pipeline.Searcher,
	visit VisitorFunc[T],
	wf WriterFactory[T],
) int {
	outw := bufio.NewWriter(stdout)
	thr := EffectiveThreads(o.Threads)

	inCh, writeErr := wf.Start(outw, thr*4)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	progress := cmdutil.NewProgress(stderr, "queries: ", len(o.Queries), o.Progress && !o.Quiet)
	start := time.Now()
	st, perr := cmdutil.RunStream[T](
		ctx,
		pipeline.Config{Threads: thr, Ordered: true},
		o.Queries,
		s,
		progress,
		visit,
		func(x T) error {
			select {
			case inCh <- x:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	)
	progress.Done()

	close(inCh)

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return ExitOK
	} else if werr != nil {
		fmt.Fprintln(stderr, werr)
		return ExitIO
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return ExitOK
	} else if e != nil {
		fmt.Fprintln(stderr, e)
		return ExitIO
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return ExitCanceled
		}
		fmt.Fprintln(stderr, perr)
		return Classify(perr)
	}
	if !o.Quiet {
		cmdutil.Log.Infof("searched %s queries in %s: %s matched, %s records written",
			humanize.Comma(int64(st.Queries)), time.Since(start).Round(time.Millisecond),
			humanize.Comma(int64(st.Matched)), humanize.Comma(int64(st.Hits)))
	}
	if st.Matched == 0 {
		return o.NoMatchExitCode
	}
	return ExitOK
}
