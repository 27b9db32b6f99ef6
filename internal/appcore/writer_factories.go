package appcore

import (
	"io"

	"pblast/internal/output"
	"pblast/internal/writers"
	"pblast/pkg/api"
)

// ---------------- Hit writer ----------------

type HitWriterFactory struct {
	Format string
	Header bool
	Pretty bool
	Align  bool // include alignment rows in JSON output
}

func NewHitWriterFactory(format string, header, pretty, align bool) HitWriterFactory {
	return HitWriterFactory{Format: format, Header: header, Pretty: pretty, Align: align}
}

// NeedAlignment reports whether hits must carry rendered alignment rows.
func (w HitWriterFactory) NeedAlignment() bool {
	if w.Format == output.FormatText && w.Pretty {
		return true
	}
	return w.Align && (w.Format == output.FormatJSON || w.Format == output.FormatJSONL)
}

// Ignored lists the options that have no effect on Format.
func (w HitWriterFactory) Ignored() []string {
	var out []string
	if w.Pretty && w.Format != output.FormatText {
		out = append(out, "--pretty")
	}
	if w.Align && w.Format != output.FormatJSON && w.Format != output.FormatJSONL {
		out = append(out, "--align")
	}
	return out
}

func (w HitWriterFactory) Start(out io.Writer, bufSize int) (chan<- output.Hit, <-chan error) {
	return writers.StartHitWriter(out, w.Format, writers.Options{Header: w.Header, Pretty: w.Pretty}, bufSize)
}

// ---------------- Eval writer ----------------

type EvalWriterFactory struct {
	Format string
	Header bool
}

func (w EvalWriterFactory) Start(out io.Writer, bufSize int) (chan<- api.EvalV1, <-chan error) {
	return writers.StartEvalWriter(out, w.Format, writers.Options{Header: w.Header}, bufSize)
}
