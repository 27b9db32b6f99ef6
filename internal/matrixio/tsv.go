// internal/matrixio/tsv.go
package matrixio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"pblast/core/probmat"
)

// ReadTSV parses the tsv format.
func ReadTSV(r io.Reader) (*probmat.Matrix, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	var rows []probmat.Row
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		f := strings.Fields(line)
		if len(rows) == 0 && isHeader(f) {
			continue
		}
		if len(f) != probmat.Size {
			return nil, fmt.Errorf("%w: line %d: want %d columns, got %d", ErrFormat, lineNo, probmat.Size, len(f))
		}
		var row probmat.Row
		for i, s := range f {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %d: %v", ErrFormat, lineNo, i+1, err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	m, err := probmat.New(rows)
	if err != nil {
		return nil, fmt.Errorf("matrix: %w", err)
	}
	return m, nil
}

func isHeader(f []string) bool {
	if len(f) != probmat.Size {
		return false
	}
	for i, s := range f {
		if len(s) != 1 || probmat.SymbolIndex(s[0]) != i {
			return false
		}
	}
	return true
}

// WriteTSV writes m in the tsv format with an "A C G T" header.
func WriteTSV(w io.Writer, m *probmat.Matrix) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, "A\tC\tG\tT"); err != nil {
		return err
	}
	buf := make([]byte, 0, 64)
	for _, r := range m.Rows() {
		buf = buf[:0]
		for i, v := range r {
			if i > 0 {
				buf = append(buf, '\t')
			}
			buf = strconv.AppendFloat(buf, v, 'g', -1, 64)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}
