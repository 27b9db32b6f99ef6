// core/extend/ungapped.go
package extend

import (
	"fmt"

	"pblast/core/probmat"
	"pblast/core/scoring"
	"pblast/core/seed"
)

// UngappedOptions parameterizes ExtendUngapped.
type UngappedOptions struct {
	// Delta is the largest tolerated drop below the best running score.
	Delta  float64
	Scorer scoring.Scorer
}

// ExtendUngapped extends every hit (seed length k) along its diagonal. The
// left walk starts at the seed's first position and the right walk at its
// last; each keeps the position of its best strict improvement and stops
// when the running score falls more than Delta below the best or the
// sequence boundary is reached. Output order follows hits.
func ExtendUngapped(q probmat.Query, m *probmat.Matrix, hits []seed.Hit, k int, opts UngappedOptions) ([]UngappedMatch, error) {
	if !(opts.Delta >= 0) {
		return nil, fmt.Errorf("%w: %g", ErrNegativeDelta, opts.Delta)
	}
	if opts.Scorer == nil {
		return nil, fmt.Errorf("%w: nil scorer", ErrInvalidOptions)
	}
	if k <= 0 {
		return nil, fmt.Errorf("%w: k=%d", ErrInvalidOptions, k)
	}
	out := make([]UngappedMatch, 0, len(hits))
	for _, h := range hits {
		if h.QueryPos < 0 || h.RefPos < 0 || h.QueryPos+k > q.Len() || h.RefPos+k > m.Len() {
			return nil, fmt.Errorf("%w: %+v (k=%d)", ErrHitOutOfRange, h, k)
		}
		out = append(out, extendOne(q, m, h, k, opts))
	}
	return out, nil
}

func extendOne(q probmat.Query, m *probmat.Matrix, h seed.Hit, k int, opts UngappedOptions) UngappedMatch {
	sc := opts.Scorer

	// left
	qi, ri := h.QueryPos, h.RefPos
	ql, rl := qi, ri
	var bestL, cur float64
	for qi > 0 && ri > 0 {
		qi--
		ri--
		cur += sc.Score(m.Row(ri), q.Index(qi))
		if cur > bestL {
			bestL, ql, rl = cur, qi, ri
		}
		if bestL-cur > opts.Delta {
			break
		}
	}

	// right
	qi, ri = h.QueryPos+k-1, h.RefPos+k-1
	qr, rr := qi, ri
	var bestR float64
	cur = 0
	lastQ, lastR := q.Len()-1, m.Len()-1
	for qi < lastQ && ri < lastR {
		qi++
		ri++
		cur += sc.Score(m.Row(ri), q.Index(qi))
		if cur > bestR {
			bestR, qr, rr = cur, qi, ri
		}
		if bestR-cur > opts.Delta {
			break
		}
	}

	return UngappedMatch{
		Hit:        h,
		QueryLeft:  ql,
		QueryRight: qr,
		RefLeft:    rl,
		RefRight:   rr,
		Score:      bestL + bestR,
	}
}
