// core/engine/rank.go
package engine

import (
	"sort"

	"pblast/core/extend"
)

// Rank orders hits by final score, best first. Equal scores keep their
// input order. Overlapping hits are not merged.
func Rank(hits []extend.GappedHit) {
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Final.Score > hits[j].Final.Score
	})
}
