// internal/output/text.go
package output

import (
	"fmt"
	"io"
)

// Renderer draws an optional block after a TSV row.
type Renderer func(Hit) string

func writeRow(w io.Writer, h Hit, render Renderer) error {
	if _, err := fmt.Fprintln(w, FormatRowTSV(h)); err != nil {
		return err
	}
	if render != nil {
		if _, err := fmt.Fprint(w, render(h)); err != nil {
			return err
		}
	}
	return nil
}

// WriteText writes hits as TSV rows; render may be nil.
func WriteText(w io.Writer, list []Hit, header bool, render Renderer) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for _, h := range list {
		if err := writeRow(w, h, render); err != nil {
			return err
		}
	}
	return nil
}

// StreamText is WriteText over a channel. It drains in after a write error.
func StreamText(w io.Writer, in <-chan Hit, header bool, render Renderer) error {
	var err error
	if header {
		_, err = fmt.Fprintln(w, TSVHeader)
	}
	for h := range in {
		if err != nil {
			continue
		}
		err = writeRow(w, h, render)
	}
	return err
}
