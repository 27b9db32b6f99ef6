// internal/cli/io.go
package cli

import (
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"pblast/internal/cliutil"
	"pblast/internal/cmdutil"
	"pblast/internal/matrixio"
	"pblast/internal/queryio"
)

// loadQueries reads query files (globs allowed) and literal sequences. With
// neither, queries come from stdin.
func loadQueries(args, literals []string) ([]queryio.Record, error) {
	files, err := cliutil.ExpandPositionals(args)
	if err != nil {
		return nil, inputErr(err)
	}
	if len(files) == 0 && len(literals) == 0 {
		cmdutil.Log.Info("no query files given, reading from stdin")
		files = []string{"-"}
	}
	start := time.Now()
	recs, err := queryio.ReadFiles(files)
	if err != nil {
		return nil, inputErr(err)
	}
	recs = append(recs, queryio.FromStrings(literals)...)
	if len(recs) == 0 {
		return nil, usagef("no query sequences found")
	}
	var bases int64
	for _, r := range recs {
		bases += int64(len(r.Seq))
	}
	cmdutil.Log.Infof("%s queries (%s bases) read in %s",
		humanize.Comma(int64(len(recs))), humanize.Comma(bases), time.Since(start).Round(time.Millisecond))
	return recs, nil
}

// openOutput returns the command's stdout for "-" and a (possibly gzipped)
// file otherwise.
func openOutput(cmd *cobra.Command, path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{cmd.OutOrStdout()}, nil
	}
	w, err := matrixio.CreateOutput(path)
	if err != nil {
		return nil, runtimeErr(err)
	}
	return w, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// checkFormat rejects a format with no registered writer before any work starts.
func checkFormat(format string, known []string) error {
	for _, f := range known {
		if f == format {
			return nil
		}
	}
	return usagef("unknown output format %q (want %s)", format, strings.Join(known, " | "))
}
