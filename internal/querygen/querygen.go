// Package querygen samples benchmark queries from a probability-matrix
// reference, optionally adding substitutions and affine indels, and records
// where each query came from.
package querygen

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"pblast/core/probmat"
	"pblast/internal/queryio"
)

var ErrOptions = errors.New("querygen: invalid options")

// Options controls sampling. Probabilities are per query position.
type Options struct {
	Length    int   // query length
	Positions []int // explicit start positions; empty = Random random ones
	Random    int   // random start positions when Positions is empty (default 1)
	PerPos    int   // queries per start position (default 1)
	Seed      int64

	Substitutions   bool
	NonSubstitution float64 // probability a symbol is kept (default 0.9)

	Indels    bool
	InsOpen   float64
	InsExtend float64
	DelOpen   float64
	DelExtend float64
}

// DefaultOptions mirrors the usual benchmark settings.
func DefaultOptions() Options {
	return Options{
		Length:          100,
		Random:          1,
		PerPos:          1,
		Seed:            1,
		NonSubstitution: 0.9,
		InsOpen:         0.0017,
		InsExtend:       0.7,
		DelOpen:         0.0017,
		DelExtend:       0.7,
	}
}

// Query is a simulated query with its true reference range [Left, Right].
type Query struct {
	ID    string
	Seq   string
	Left  int
	Right int
	Subs  int
	Ins   int
	Del   int
}

// Record renders q for FASTA output; the origin goes into the description.
func (q Query) Record() queryio.Record {
	return queryio.Record{
		ID:   q.ID,
		Desc: fmt.Sprintf("origin=%d-%d subs=%d ins=%d del=%d", q.Left, q.Right, q.Subs, q.Ins, q.Del),
		Seq:  q.Seq,
	}
}

// ParseOrigin extracts the "origin=L-R" field written by Record.
func ParseOrigin(desc string) (left, right int, ok bool) {
	for _, f := range strings.Fields(desc) {
		v, found := strings.CutPrefix(f, "origin=")
		if !found {
			continue
		}
		l, r, found := strings.Cut(v, "-")
		if !found {
			return 0, 0, false
		}
		var err1, err2 error
		left, err1 = strconv.Atoi(l)
		right, err2 = strconv.Atoi(r)
		return left, right, err1 == nil && err2 == nil && left <= right
	}
	return 0, 0, false
}

func (o Options) validate(refLen int) error {
	switch {
	case o.Length <= 0 || o.Length > refLen:
		return fmt.Errorf("%w: length %d (reference has %d positions)", ErrOptions, o.Length, refLen)
	case o.NonSubstitution < 0 || o.NonSubstitution > 1:
		return fmt.Errorf("%w: non-substitution probability %g", ErrOptions, o.NonSubstitution)
	case o.InsOpen < 0 || o.DelOpen < 0 || o.InsOpen+o.DelOpen > 1:
		return fmt.Errorf("%w: indel open probabilities %g/%g", ErrOptions, o.InsOpen, o.DelOpen)
	case o.InsExtend < 0 || o.InsExtend >= 1 || o.DelExtend < 0 || o.DelExtend >= 1:
		return fmt.Errorf("%w: indel extend probabilities must be in [0,1)", ErrOptions)
	}
	for _, p := range o.Positions {
		if p < 0 || p+o.Length > refLen {
			return fmt.Errorf("%w: position %d does not fit a query of length %d", ErrOptions, p, o.Length)
		}
	}
	return nil
}

// Generate samples queries from m. Equal options give equal output.
func Generate(m *probmat.Matrix, o Options) ([]Query, error) {
	if err := o.validate(m.Len()); err != nil {
		return nil, err
	}
	if o.PerPos < 1 {
		o.PerPos = 1
	}
	rng := rand.New(rand.NewSource(o.Seed))
	positions := o.Positions
	if len(positions) == 0 {
		n := o.Random
		if n < 1 {
			n = 1
		}
		positions = make([]int, n)
		for i := range positions {
			positions[i] = rng.Intn(m.Len() - o.Length + 1)
		}
	}

	var out []Query
	for _, pos := range positions {
		for rep := 0; rep < o.PerPos; rep++ {
			b := make([]byte, o.Length)
			for i := range b {
				b[i] = probmat.Symbol(sampleRow(rng, m.Row(pos+i)))
			}
			q := Query{
				ID:    "q" + strconv.Itoa(len(out)+1),
				Left:  pos,
				Right: pos + o.Length - 1,
			}
			if o.Substitutions {
				q.Subs = substitute(rng, b, o.NonSubstitution)
			}
			if o.Indels {
				b, q.Ins, q.Del = indels(rng, b, o)
			}
			q.Seq = string(b)
			out = append(out, q)
		}
	}
	return out, nil
}

func sampleRow(rng *rand.Rand, r *probmat.Row) int {
	x := rng.Float64()
	acc := 0.0
	for s := 0; s < probmat.Size; s++ {
		acc += r[s]
		if x < acc {
			return s
		}
	}
	return probmat.Argmax(r)
}

// transitions (A<->G, C<->T) take half of the substitution mass
func substitutionRow(from int, keep float64) probmat.Row {
	var r probmat.Row
	for to := 0; to < probmat.Size; to++ {
		switch {
		case to == from:
			r[to] = keep
		case to^2 == from: // A=0/G=2, C=1/T=3
			r[to] = (1 - keep) / 2
		default:
			r[to] = (1 - keep) / 4
		}
	}
	return r
}

func substitute(rng *rand.Rand, b []byte, keep float64) int {
	n := 0
	for i, c := range b {
		from := probmat.SymbolIndex(c)
		r := substitutionRow(from, keep)
		to := sampleRow(rng, &r)
		if to != from {
			b[i] = probmat.Symbol(to)
			n++
		}
	}
	return n
}

func randomSymbol(rng *rand.Rand) byte { return probmat.Symbol(rng.Intn(probmat.Size)) }

func indels(rng *rand.Rand, b []byte, o Options) (out []byte, ins, del int) {
	out = make([]byte, 0, len(b)+8)
	inIns, inDel := false, false
	for pos := 0; pos < len(b); {
		switch {
		case inDel:
			if rng.Float64() < o.DelExtend {
				pos++
				del++
			} else {
				out = append(out, b[pos])
				pos++
				inDel = false
			}
		case inIns:
			if rng.Float64() < o.InsExtend {
				out = append(out, randomSymbol(rng))
				ins++
			} else {
				out = append(out, b[pos])
				pos++
				inIns = false
			}
		default:
			x := rng.Float64()
			switch {
			case x < o.InsOpen:
				out = append(out, randomSymbol(rng))
				ins++
				inIns = true
			case x < o.InsOpen+o.DelOpen:
				pos++
				del++
				inDel = true
			default:
				out = append(out, b[pos])
				pos++
			}
		}
	}
	if len(out) == 0 {
		// everything deleted; keep one sampled symbol so the query stays valid
		out = append(out, b[0])
		del--
	}
	return out, ins, del
}
