// internal/matrixio/load.go
package matrixio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"pblast/core/probmat"
)

// Formats accepted by Load and Save.
const (
	FormatAuto      = "auto"
	FormatTSV       = "tsv"
	FormatBinary    = "binary"
	FormatConsensus = "consensus"
)

// DetectFormat maps a path to a format by extension: .pbm is binary,
// anything else tsv.
func DetectFormat(path string) string {
	base := strings.TrimSuffix(strings.ToLower(path), ".gz")
	if filepath.Ext(base) == ".pbm" {
		return FormatBinary
	}
	return FormatTSV
}

// Load reads a matrix from path. For the consensus format probPath names the
// probabilities file; it is ignored otherwise.
func Load(path, format, probPath string) (*probmat.Matrix, error) {
	if format == "" || format == FormatAuto {
		format = DetectFormat(path)
	}
	switch format {
	case FormatConsensus:
		if probPath == "" {
			return nil, fmt.Errorf("%w: consensus format needs a probabilities file", ErrFormat)
		}
		return ReadConsensusFiles(path, probPath)
	case FormatTSV, FormatBinary:
	default:
		return nil, fmt.Errorf("%w: unknown format %q (want tsv | binary | consensus)", ErrFormat, format)
	}
	rc, err := OpenInput(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	var m *probmat.Matrix
	if format == FormatBinary {
		m, err = ReadBinary(rc)
	} else {
		m, err = ReadTSV(rc)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Save writes m to path in format (tsv or binary; auto detects by path).
func Save(path, format string, m *probmat.Matrix) (err error) {
	if format == "" || format == FormatAuto {
		format = DetectFormat(path)
	}
	var write func(io.Writer, *probmat.Matrix) error
	switch format {
	case FormatTSV:
		write = WriteTSV
	case FormatBinary:
		write = WriteBinary
	default:
		return fmt.Errorf("%w: cannot write format %q", ErrFormat, format)
	}
	wc, err := CreateOutput(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := wc.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return write(wc, m)
}
