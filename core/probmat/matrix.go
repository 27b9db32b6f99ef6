// core/probmat/matrix.go
package probmat

import (
	"errors"
	"fmt"
	"math"
)

// Tolerance is the allowed deviation of a row sum from 1.
const Tolerance = 1e-6

var (
	ErrEmpty     = errors.New("probmat: empty input")
	ErrRowSum    = errors.New("probmat: row does not sum to 1")
	ErrRowRange  = errors.New("probmat: probability outside [0,1]")
	ErrBadSymbol = errors.New("probmat: symbol not in alphabet ACGT")
)

// Row is one reference position: probabilities of A, C, G, T.
type Row = [Size]float64

// Matrix is a reference of N positions. The zero value is empty and invalid.
type Matrix struct {
	rows      []Row
	consensus []byte // argmax symbol per row, cached at construction
}

// New validates rows and returns a Matrix that owns them.
func New(rows []Row) (*Matrix, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("reference: %w", ErrEmpty)
	}
	for i := range rows {
		if err := validateRow(rows[i]); err != nil {
			return nil, fmt.Errorf("reference row %d: %w", i, err)
		}
	}
	m := &Matrix{rows: rows, consensus: make([]byte, len(rows))}
	for i := range rows {
		m.consensus[i] = Alphabet[Argmax(&rows[i])]
	}
	return m, nil
}

// MustNew is New for tests and literals; it panics on invalid input.
func MustNew(rows []Row) *Matrix {
	m, err := New(rows)
	if err != nil {
		panic(err)
	}
	return m
}

func validateRow(r Row) error {
	sum := 0.0
	for _, p := range r {
		if math.IsNaN(p) || p < 0 || p > 1 {
			return fmt.Errorf("%w: %v", ErrRowRange, r)
		}
		sum += p
	}
	if math.Abs(sum-1) > Tolerance {
		return fmt.Errorf("%w: sum=%g", ErrRowSum, sum)
	}
	return nil
}

// Len returns the number of reference positions.
func (m *Matrix) Len() int { return len(m.rows) }

// Row returns a pointer to row i; callers must not modify it.
func (m *Matrix) Row(i int) *Row { return &m.rows[i] }

// Rows exposes the backing rows read-only (for serializers).
func (m *Matrix) Rows() []Row { return m.rows }

// ConsensusAt returns the most probable symbol at position i.
func (m *Matrix) ConsensusAt(i int) byte { return m.consensus[i] }

// Consensus returns the consensus sequence of positions [from, to).
func (m *Matrix) Consensus(from, to int) string { return string(m.consensus[from:to]) }

// Argmax returns the index of the largest entry; ties go to the lower index.
func Argmax(r *Row) int {
	best := 0
	for i := 1; i < Size; i++ {
		if r[i] > r[best] {
			best = i
		}
	}
	return best
}

// FromSequence builds a one-hot matrix that encodes seq exactly.
func FromSequence(seq string) (*Matrix, error) {
	probs := make([]float64, len(seq))
	for i := range probs {
		probs[i] = 1
	}
	return FromConsensus(seq, probs)
}

// FromConsensus builds a matrix from a called sequence and the probability of
// each call. The remaining mass is split evenly over the other three symbols.
func FromConsensus(seq string, probs []float64) (*Matrix, error) {
	if len(seq) == 0 {
		return nil, fmt.Errorf("consensus: %w", ErrEmpty)
	}
	if len(seq) != len(probs) {
		return nil, fmt.Errorf("consensus: %d symbols but %d probabilities", len(seq), len(probs))
	}
	rows := make([]Row, len(seq))
	for i := 0; i < len(seq); i++ {
		ix := SymbolIndex(seq[i])
		if ix < 0 {
			return nil, fmt.Errorf("consensus position %d (%q): %w", i, seq[i], ErrBadSymbol)
		}
		p := probs[i]
		if p < 0 || p > 1 {
			return nil, fmt.Errorf("consensus position %d: %w: %g", i, ErrRowRange, p)
		}
		rest := (1 - p) / 3
		for j := 0; j < Size; j++ {
			rows[i][j] = rest
		}
		rows[i][ix] = p
	}
	return New(rows)
}
