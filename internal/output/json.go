// internal/output/json.go
package output

import (
	"io"

	"pblast/internal/jsonutil"
	"pblast/pkg/api"
)

// ToAPIHit converts a Hit to the stable wire schema (v1).
func ToAPIHit(h Hit) api.HitV1 {
	return api.HitV1{
		QueryID:  h.QueryID,
		Rank:     h.Rank,
		RefStart: h.Final.RefLeft,
		RefEnd:   h.Final.RefRight,
		Length:   h.Final.Len(),
		Score:    h.Final.Score,
		Seed: api.SeedV1{
			QueryPos: h.Hit.QueryPos,
			RefPos:   h.Hit.RefPos,
			Score:    h.Hit.Score,
		},
		Ungapped: api.UngappedV1{
			QueryStart: h.QueryLeft,
			QueryEnd:   h.QueryRight,
			RefStart:   h.RefLeft,
			RefEnd:     h.RefRight,
			Score:      h.UngappedMatch.Score,
		},
		Left:         toAPIFlank(h.Left.RefLeft, h.Left.RefRight, h.Left.Score, h.Left.Aligned, h.Left.Query, h.Left.Ref),
		Right:        toAPIFlank(h.Right.RefLeft, h.Right.RefRight, h.Right.Score, h.Right.Aligned, h.Right.Query, h.Right.Ref),
		AlignedQuery: h.AlignedQuery,
		AlignedRef:   h.AlignedRef,
	}
}

func toAPIFlank(left, right int, score float64, aligned bool, q, r string) api.FlankV1 {
	return api.FlankV1{RefStart: left, RefEnd: right, Score: score, Aligned: aligned, Query: q, Ref: r}
}

func toAPIHits(list []Hit) []api.HitV1 {
	out := make([]api.HitV1, 0, len(list))
	for _, h := range list {
		out = append(out, ToAPIHit(h))
	}
	return out
}

// WriteJSON writes a single JSON array of v1 hits (pretty-indented).
func WriteJSON(w io.Writer, list []Hit) error {
	return jsonutil.EncodePretty(w, toAPIHits(list))
}
