// internal/cmdutil/progress.go
package cmdutil

import (
	"io"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Progress is a counter bar over a known number of items. A nil *Progress is
// a valid no-op.
type Progress struct {
	pbs  *mpb.Progress
	bar  *mpb.Bar
	last time.Time
}

// NewProgress returns nil when disabled or when there is nothing to count.
func NewProgress(w io.Writer, name string, total int, enabled bool) *Progress {
	if !enabled || total < 2 {
		return nil
	}
	pbs := mpb.New(mpb.WithWidth(40), mpb.WithOutput(w))
	bar := pbs.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name(name, decor.WC{W: len(name), C: decor.DindentRight}),
			decor.Name("", decor.WCSyncSpaceR),
			decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.Name("ETA: ", decor.WC{W: len("ETA: ")}),
			decor.EwmaETA(decor.ET_STYLE_GO, 1024),
			decor.OnComplete(decor.Name(""), ". done"),
		),
	)
	return &Progress{pbs: pbs, bar: bar, last: time.Now()}
}

// Incr counts one finished item. Not safe for concurrent use.
func (p *Progress) Incr() {
	if p == nil {
		return
	}
	now := time.Now()
	p.bar.EwmaIncrBy(1, now.Sub(p.last))
	p.last = now
}

// Done waits for the bar to render; an unfinished bar is aborted.
func (p *Progress) Done() {
	if p == nil {
		return
	}
	if !p.bar.Completed() {
		p.bar.Abort(false)
	}
	p.pbs.Wait()
}
