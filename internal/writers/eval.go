// internal/writers/eval.go
package writers

import (
	"encoding/json"
	"fmt"
	"io"

	"pblast/internal/jsonutil"
	"pblast/internal/output"
	"pblast/pkg/api"
)

// EvalTSVHeader is the header of text evaluation output.
const EvalTSVHeader = "query_id\torigin_start\torigin_end\thits\ttop1_iou\ttop5_iou\ttop10_iou\tauc"

func init() {
	RegisterEval(output.FormatText, writeEvalText)
	RegisterEval(output.FormatJSONL, func(w io.Writer, in <-chan api.EvalV1, _ Options) error {
		lines, done := jsonutil.StartLines[api.EvalV1](w, cap(in),
			func(enc *json.Encoder, e api.EvalV1) error { return enc.Encode(e) },
			IsBrokenPipe,
		)
		for e := range in {
			lines <- e
		}
		close(lines)
		return <-done
	})
	RegisterEval(output.FormatJSON, func(w io.Writer, in <-chan api.EvalV1, _ Options) error {
		buf := []api.EvalV1{}
		for e := range in {
			buf = append(buf, e)
		}
		return jsonutil.EncodePretty(w, buf)
	})
}

func writeEvalText(w io.Writer, in <-chan api.EvalV1, opt Options) error {
	var err error
	if opt.Header {
		_, err = fmt.Fprintln(w, EvalTSVHeader)
	}
	for e := range in {
		if err != nil {
			continue
		}
		auc := "NA"
		if e.AUC != nil {
			auc = output.Float(*e.AUC)
		}
		_, err = fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%s\t%s\t%s\n",
			e.QueryID, e.Origin[0], e.Origin[1], e.Hits,
			output.Float(e.Top1IoU), output.Float(e.Top5IoU), output.Float(e.Top10IoU), auc)
	}
	return err
}
