// core/extend/gapped.go
package extend

import (
	"fmt"
	"strings"

	"pblast/core/probmat"
	"pblast/core/scoring"
)

// GappedOptions parameterizes ExtendGapped.
type GappedOptions struct {
	Scorer    scoring.Scorer
	GapOpen   float64
	GapExtend float64

	// RefMaxLengthFactor bounds each flank's reference window to
	// RefMaxLengthFactor × len(query) rows.
	RefMaxLengthFactor int

	GapPeriod int
	StopScore *float64
}

func (o GappedOptions) affine() AffineOptions {
	return AffineOptions{
		Scorer:    o.Scorer,
		GapOpen:   o.GapOpen,
		GapExtend: o.GapExtend,
		GapPeriod: o.GapPeriod,
		StopScore: o.StopScore,
	}
}

// ExtendGapped aligns the query flanks outside each ungapped match and
// aggregates the final reference range and score. Output order follows
// matches.
func ExtendGapped(q probmat.Query, m *probmat.Matrix, matches []UngappedMatch, opts GappedOptions) ([]GappedHit, error) {
	if opts.Scorer == nil {
		return nil, fmt.Errorf("%w: nil scorer", ErrInvalidOptions)
	}
	if opts.RefMaxLengthFactor < 0 {
		return nil, fmt.Errorf("%w: ref max length factor %d", ErrInvalidOptions, opts.RefMaxLengthFactor)
	}
	out := make([]GappedHit, len(matches))
	for i, um := range matches {
		out[i] = GappedExtendOne(q, m, um, opts)
	}
	return out, nil
}

// GappedExtendOne is ExtendGapped for a single match. Options are assumed
// valid.
func GappedExtendOne(q probmat.Query, m *probmat.Matrix, um UngappedMatch, opts GappedOptions) GappedHit {
	span := opts.RefMaxLengthFactor * q.Len()
	h := GappedHit{UngappedMatch: um}

	// right flank
	h.Right = alignFlank(q.Sub(um.QueryRight+1, q.Len()),
		NewWindow(m, um.RefRight+1, um.RefRight+1+span, false), opts)
	if h.Right.Aligned {
		h.Right.RefLeft = um.RefRight + 1
		h.Right.RefRight = um.RefRight + h.Right.RefConsumed()
	}

	// left flank, aligned outward from the core
	left := alignFlank(q.Sub(0, um.QueryLeft).Reverse(),
		NewWindow(m, um.RefLeft-span, um.RefLeft, true), opts)
	left.Query, left.Ref = reverseString(left.Query), reverseString(left.Ref)
	if left.Aligned {
		left.RefLeft = um.RefLeft - left.RefConsumed()
		left.RefRight = um.RefLeft - 1
	}
	h.Left = left

	h.Final = Range{RefLeft: um.RefLeft, RefRight: um.RefRight}
	if h.Left.Aligned {
		h.Final.RefLeft = h.Left.RefLeft
	}
	if h.Right.Aligned && h.Right.RefRight > h.Final.RefRight {
		h.Final.RefRight = h.Right.RefRight
	}
	h.Final.Score = h.Left.Score + h.Right.Score + um.Score + um.Hit.Score
	return h
}

func alignFlank(flank probmat.Query, win Window, opts GappedOptions) FlankAlignment {
	n := flank.Len()
	if n == 0 {
		return unaligned()
	}
	if win.Len() == 0 {
		f := unaligned()
		f.Query = flank.String()
		f.Ref = strings.Repeat(string(probmat.Gap), n)
		f.Score = opts.GapOpen + opts.GapExtend*float64(n)
		return f
	}
	a := cleanEndGaps(AffineAlign(flank, win, opts.affine()), opts.GapOpen, opts.GapExtend)
	return FlankAlignment{Query: a.Query, Ref: a.Ref, Score: a.Score, Aligned: true}
}

func reverseString(s string) string {
	b := []byte(s)
	reverseBytes(b)
	return string(b)
}
