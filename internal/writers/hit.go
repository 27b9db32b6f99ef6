// internal/writers/hit.go
package writers

import (
	"encoding/json"
	"io"

	"pblast/internal/jsonutil"
	"pblast/internal/output"
	"pblast/internal/pretty"
)

func init() {
	RegisterHit(output.FormatText, writeHitText)
	RegisterHit(output.FormatJSONL, writeHitJSONL)
	RegisterHit(output.FormatJSON, writeHitJSON)
	RegisterHit(output.FormatFASTA, func(w io.Writer, in <-chan output.Hit, _ Options) error {
		return output.StreamFASTA(w, in)
	})
}

func writeHitText(w io.Writer, in <-chan output.Hit, opt Options) error {
	var render output.Renderer
	if opt.Pretty {
		popt := opt.PrettyOptions
		render = func(h output.Hit) string { return pretty.RenderHitWithOptions(h, popt) }
	}
	return output.StreamText(w, in, opt.Header, render)
}

func writeHitJSON(w io.Writer, in <-chan output.Hit, _ Options) error {
	buf := []output.Hit{}
	for h := range in {
		buf = append(buf, h)
	}
	return output.WriteJSON(w, buf)
}

// writeHitJSONL streams each hit as one JSON line (v1).
func writeHitJSONL(w io.Writer, in <-chan output.Hit, _ Options) error {
	lines, done := jsonutil.StartLines[output.Hit](w, cap(in),
		func(enc *json.Encoder, h output.Hit) error {
			return enc.Encode(output.ToAPIHit(h))
		},
		IsBrokenPipe,
	)
	for h := range in {
		lines <- h
	}
	close(lines)
	return <-done
}
