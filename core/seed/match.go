// core/seed/match.go
package seed

import (
	"fmt"

	"github.com/shenwei356/kmers"

	"pblast/core/probmat"
)

// Hit is one exact k-mer match: a window of length k at QueryPos in the query
// and at RefPos in the reference. Score is the seed's own contribution and is
// always 0.
type Hit struct {
	QueryPos int
	RefPos   int
	Score    float64
}

// Match slides a k window over q and emits one Hit per indexed reference
// position, ordered by query position then reference position.
func Match(idx *Index, q probmat.Query) ([]Hit, error) {
	k := idx.K()
	if q.Len() < k {
		return nil, fmt.Errorf("%w: k=%d exceeds query length %d", ErrInvalidK, k, q.Len())
	}
	var hits []Hit
	for i := 0; i+k <= q.Len(); i++ {
		code, err := kmers.Encode(q.Bytes(i, i+k))
		if err != nil {
			return nil, fmt.Errorf("seed match: query window %d: %w", i, err)
		}
		for _, p := range idx.LookupCode(code) {
			hits = append(hits, Hit{QueryPos: i, RefPos: p})
		}
	}
	return hits, nil
}
