// Package queryio loads query sequences and writes simulated ones.
package queryio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shenwei356/bio/seqio/fastx"
)

// Record is one named query. Desc holds the rest of the FASTA header line.
type Record struct {
	ID   string
	Desc string
	Seq  string
}

// ReadFile reads every FASTA/FASTQ record of path ("-" is stdin; gzip is
// handled transparently).
func ReadFile(path string) ([]Record, error) {
	r, err := fastx.NewReader(nil, path, "")
	if err != nil {
		return nil, err
	}
	defer r.Close()
	var out []Record
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%s: record %d: %w", path, len(out)+1, err)
		}
		id := string(rec.ID)
		desc := strings.TrimSpace(strings.TrimPrefix(string(rec.Name), id))
		out = append(out, Record{ID: id, Desc: desc, Seq: string(rec.Seq.Seq)})
	}
	return out, nil
}

// ReadFiles concatenates ReadFile over paths.
func ReadFiles(paths []string) ([]Record, error) {
	var out []Record
	for _, p := range paths {
		recs, err := ReadFile(p)
		if err != nil {
			return nil, err
		}
		out = append(out, recs...)
	}
	return out, nil
}

// FromStrings names literal sequences q1, q2, ...
func FromStrings(seqs []string) []Record {
	out := make([]Record, len(seqs))
	for i, s := range seqs {
		out[i] = Record{ID: "q" + strconv.Itoa(i+1), Seq: s}
	}
	return out
}

// WriteFASTA writes records with 60-column sequence lines.
func WriteFASTA(w io.Writer, recs []Record) error {
	const width = 60
	bw := bufio.NewWriter(w)
	for _, r := range recs {
		bw.WriteByte('>')
		bw.WriteString(r.ID)
		if r.Desc != "" {
			bw.WriteByte(' ')
			bw.WriteString(r.Desc)
		}
		bw.WriteByte('\n')
		for i := 0; i < len(r.Seq); i += width {
			end := i + width
			if end > len(r.Seq) {
				end = len(r.Seq)
			}
			bw.WriteString(r.Seq[i:end])
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}
