// internal/matrixio/consensus.go
package matrixio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shenwei356/bio/seqio/fastx"

	"pblast/core/probmat"
)

// ReadConsensusFiles builds a matrix from the first record of seqPath
// (FASTA/FASTQ or a bare sequence line, optionally gzipped) and the whitespace-separated call
// probabilities in probPath.
func ReadConsensusFiles(seqPath, probPath string) (*probmat.Matrix, error) {
	seq, err := readFirstRecord(seqPath)
	if err != nil {
		return nil, err
	}
	rc, err := OpenInput(probPath)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	probs, err := ReadProbabilities(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", probPath, err)
	}
	m, err := probmat.FromConsensus(probmat.Normalize(seq), probs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", seqPath, err)
	}
	return m, nil
}

func readFirstRecord(path string) (string, error) {
	plain, err := isPlainSequence(path)
	if err != nil {
		return "", err
	}
	if plain {
		return readFirstLine(path)
	}
	r, err := fastx.NewReader(nil, path, "")
	if err != nil {
		return "", err
	}
	defer r.Close()
	rec, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%s: no sequence record: %w", path, probmat.ErrEmpty)
		}
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return string(rec.Seq.Seq), nil
}

// isPlainSequence reports whether path holds a bare sequence line rather
// than FASTA/FASTQ records.
func isPlainSequence(path string) (bool, error) {
	rc, err := OpenInput(path)
	if err != nil {
		return false, err
	}
	defer rc.Close()
	br := bufio.NewReader(rc)
	for {
		b, err := br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return false, fmt.Errorf("%s: %w", path, probmat.ErrEmpty)
			}
			return false, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '>', '@':
			return false, nil
		default:
			return true, nil
		}
	}
}

func readFirstLine(path string) (string, error) {
	rc, err := OpenInput(path)
	if err != nil {
		return "", err
	}
	defer rc.Close()
	sc := bufio.NewScanner(rc)
	sc.Buffer(make([]byte, 0, 1<<20), 1<<30)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			return line, nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return "", fmt.Errorf("%s: %w", path, probmat.ErrEmpty)
}

// ReadProbabilities reads whitespace-separated floats.
func ReadProbabilities(r io.Reader) ([]float64, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	var out []float64
	for sc.Scan() {
		v, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: probability %d: %v", ErrFormat, len(out)+1, err)
		}
		out = append(out, v)
	}
	return out, sc.Err()
}
