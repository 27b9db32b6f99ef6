// core/seed/index.go
package seed

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/shenwei356/kmers"
	"github.com/zeebo/wyhash"

	"pblast/core/probmat"
)

// Index maps a 2-bit packed k-mer code to the ascending, distinct reference
// start positions where that k-mer can be read.
type Index struct {
	policy    Policy
	k         int
	threshold float64
	refLen    int
	table     map[uint64][]int
}

// Stats summarizes an index for logging.
type Stats struct {
	Kmers     int // distinct k-mers
	Entries   int // (k-mer, position) pairs
	Positions int // indexed window starts
}

// Build indexes m under opts. It is deterministic: equal inputs give equal
// indexes (see Fingerprint).
func Build(m *probmat.Matrix, opts BuildOptions) (*Index, error) {
	if m == nil || m.Len() == 0 {
		return nil, fmt.Errorf("seed index: %w", probmat.ErrEmpty)
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	idx := &Index{
		policy:    opts.Policy,
		k:         opts.K,
		threshold: opts.Threshold,
		refLen:    m.Len(),
		table:     make(map[uint64][]int),
	}
	if m.Len() < opts.K {
		// Reference shorter than one seed: a valid, empty index.
		return idx, nil
	}
	var err error
	switch opts.Policy {
	case Consensus:
		err = idx.addConsensus(m)
	case Threshold:
		limit := opts.MaxKmersPerWindow
		if limit == 0 {
			limit = DefaultMaxKmersPerWindow
		}
		err = idx.addThreshold(m, limit)
	}
	if err != nil {
		return nil, err
	}
	return idx, nil
}

func (idx *Index) addConsensus(m *probmat.Matrix) error {
	cons := []byte(m.Consensus(0, m.Len()))
	for i := 0; i+idx.k <= len(cons); i++ {
		code, err := kmers.Encode(cons[i : i+idx.k])
		if err != nil {
			return fmt.Errorf("seed index: window %d: %w", i, err)
		}
		idx.table[code] = append(idx.table[code], i)
	}
	return nil
}

// candidates returns, per position, the alphabet indexes admitted by the
// threshold, always including the argmax.
func candidates(m *probmat.Matrix, threshold float64) [][]int8 {
	out := make([][]int8, m.Len())
	for i := range out {
		r := m.Row(i)
		best := probmat.Argmax(r)
		set := make([]int8, 0, probmat.Size)
		for s := 0; s < probmat.Size; s++ {
			if s == best || r[s] >= threshold {
				set = append(set, int8(s))
			}
		}
		out[i] = set
	}
	return out
}

func (idx *Index) addThreshold(m *probmat.Matrix, limit int) error {
	cand := candidates(m, idx.threshold)
	k := idx.k
	digits := make([]int, k) // odometer over the candidate sets of the window
	kmer := make([]byte, k)
	for start := 0; start+k <= m.Len(); start++ {
		win := cand[start : start+k]
		n := 1
		for _, set := range win {
			n *= len(set)
			if n > limit {
				return fmt.Errorf("%w: window %d expands past %d (lower k or raise threshold)",
					ErrCombinatorialLimit, start, limit)
			}
		}
		for i := range digits {
			digits[i] = 0
		}
		for {
			for i, d := range digits {
				kmer[i] = probmat.Symbol(int(win[i][d]))
			}
			code, err := kmers.Encode(kmer)
			if err != nil {
				return fmt.Errorf("seed index: window %d: %w", start, err)
			}
			idx.table[code] = append(idx.table[code], start)

			// advance the odometer, last position fastest
			i := k - 1
			for ; i >= 0; i-- {
				digits[i]++
				if digits[i] < len(win[i]) {
					break
				}
				digits[i] = 0
			}
			if i < 0 {
				break
			}
		}
	}
	return nil
}

// ---- accessors -------------------------------------------------------------

func (idx *Index) K() int             { return idx.k }
func (idx *Index) Policy() Policy     { return idx.policy }
func (idx *Index) Threshold() float64 { return idx.threshold }
func (idx *Index) RefLen() int        { return idx.refLen }

// Lookup returns the start positions of kmer. The slice is shared and must
// not be modified. Non-ACGT or wrong-length input yields nil.
func (idx *Index) Lookup(kmer []byte) []int {
	if len(kmer) != idx.k {
		return nil
	}
	code, err := kmers.Encode(kmer)
	if err != nil {
		return nil
	}
	return idx.table[code]
}

// LookupCode is Lookup for an already packed code.
func (idx *Index) LookupCode(code uint64) []int { return idx.table[code] }

// Len is the number of distinct k-mers.
func (idx *Index) Len() int { return len(idx.table) }

// Kmers returns all k-mer codes in ascending order.
func (idx *Index) Kmers() []uint64 {
	codes := make([]uint64, 0, len(idx.table))
	for c := range idx.table {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// Kmer decodes a code of this index back to its letters.
func (idx *Index) Kmer(code uint64) []byte { return kmers.MustDecode(code, idx.k) }

// Stats counts distinct k-mers and entries.
func (idx *Index) Stats() Stats {
	st := Stats{Kmers: len(idx.table)}
	for _, ps := range idx.table {
		st.Entries += len(ps)
	}
	if idx.refLen >= idx.k {
		st.Positions = idx.refLen - idx.k + 1
	}
	return st
}

// Fingerprint hashes the parameters and content in code order. Two indexes
// with the same fingerprint were built from the same inputs (modulo hash
// collisions); it is stored alongside persisted indexes.
func (idx *Index) Fingerprint() uint64 {
	buf := make([]byte, 0, 64+len(idx.table)*16)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(idx.policy))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(idx.k))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(idx.refLen))
	for _, c := range idx.Kmers() {
		buf = binary.LittleEndian.AppendUint64(buf, c)
		for _, p := range idx.table[c] {
			buf = binary.LittleEndian.AppendUint64(buf, uint64(p))
		}
	}
	return wyhash.HashString(string(buf), 0)
}
