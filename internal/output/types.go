// internal/output/types.go
package output

import (
	"pblast/core/extend"
	"pblast/core/probmat"
)

// Hit is one ranked hit of a named query, ready for rendering.
type Hit struct {
	QueryID string
	Rank    int // 1 = best
	extend.GappedHit

	// Filled by NewHits when alignments are requested.
	AlignedQuery string
	AlignedRef   string
	// Reference consensus over the final range.
	RefSeq string
}

// NewHits wraps ranked hits of q (searched against ref) for output.
func NewHits(queryID string, q probmat.Query, ref *probmat.Matrix, hits []extend.GappedHit, withAlignment bool) []Hit {
	out := make([]Hit, len(hits))
	for i, h := range hits {
		out[i] = Hit{QueryID: queryID, Rank: i + 1, GappedHit: h}
		out[i].RefSeq = ref.Consensus(h.Final.RefLeft, h.Final.RefRight+1)
		if withAlignment {
			out[i].AlignedQuery, out[i].AlignedRef = h.Alignment(q, ref)
		}
	}
	return out
}
