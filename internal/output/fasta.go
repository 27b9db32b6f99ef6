package output

import (
	"fmt"
	"io"
)

func writeFASTARecord(w io.Writer, h Hit) error {
	if h.RefSeq == "" {
		return nil
	}
	_, err := fmt.Fprintf(w, ">%s_%d ref=%d-%d score=%s\n%s\n",
		h.QueryID, h.Rank, h.Final.RefLeft, h.Final.RefRight, Float(h.Final.Score), h.RefSeq)
	return err
}

// StreamFASTA writes the reference consensus of each hit's final range.
func StreamFASTA(w io.Writer, in <-chan Hit) error {
	var err error
	for h := range in {
		if err != nil {
			continue
		}
		err = writeFASTARecord(w, h)
	}
	return err
}

// WriteFASTA writes a slice of hits as FASTA records to the writer.
func WriteFASTA(w io.Writer, list []Hit) error {
	for _, h := range list {
		if err := writeFASTARecord(w, h); err != nil {
			return err
		}
	}
	return nil
}
