// core/extend/types.go
package extend

import (
	"errors"
	"strings"

	"pblast/core/probmat"
	"pblast/core/seed"
)

var (
	ErrNegativeDelta  = errors.New("extend: x-drop delta must be >= 0")
	ErrInvalidOptions = errors.New("extend: invalid options")
	ErrHitOutOfRange  = errors.New("extend: seed hit outside query or reference")
)

// UngappedMatch is a seed hit extended without gaps. Bounds are inclusive and
// QueryRight-QueryLeft == RefRight-RefLeft.
type UngappedMatch struct {
	seed.Hit
	QueryLeft  int
	QueryRight int
	RefLeft    int
	RefRight   int
	Score      float64
}

// FlankAlignment is the gapped alignment of one query flank. Query and Ref
// have equal length and use probmat.Gap for gaps; Ref holds consensus
// symbols. RefLeft and RefRight are -1 when the flank was not aligned.
type FlankAlignment struct {
	Query    string
	Ref      string
	RefLeft  int
	RefRight int
	Score    float64
	Aligned  bool
}

// RefConsumed counts the reference positions covered by the alignment.
func (f FlankAlignment) RefConsumed() int {
	return len(f.Ref) - strings.Count(f.Ref, string(probmat.Gap))
}

func unaligned() FlankAlignment { return FlankAlignment{RefLeft: -1, RefRight: -1} }

// Range is an inclusive reference interval with its score.
type Range struct {
	RefLeft  int
	RefRight int
	Score    float64
}

// Len is the number of reference positions in the range.
func (r Range) Len() int { return r.RefRight - r.RefLeft + 1 }

// GappedHit is the final record of one seed hit.
type GappedHit struct {
	UngappedMatch
	Left  FlankAlignment
	Right FlankAlignment
	Final Range
}

// Alignment renders the full query and reference rows: left flank, ungapped
// core, right flank. q and m must be the inputs the hit was computed from.
func (h GappedHit) Alignment(q probmat.Query, m *probmat.Matrix) (query, ref string) {
	var qb, rb strings.Builder
	qb.WriteString(h.Left.Query)
	qb.WriteString(q.String()[h.QueryLeft : h.QueryRight+1])
	qb.WriteString(h.Right.Query)
	rb.WriteString(h.Left.Ref)
	rb.WriteString(m.Consensus(h.RefLeft, h.RefRight+1))
	rb.WriteString(h.Right.Ref)
	return qb.String(), rb.String()
}
