// core/seed/snapshot.go
package seed

import (
	"fmt"
	"sort"
)

// Snapshot is the plain-data form of an Index used by serializers.
type Snapshot struct {
	Policy    string
	K         int
	Threshold float64
	RefLen    int
	Table     map[uint64][]int
}

// Snapshot returns a copy of the index contents.
func (idx *Index) Snapshot() Snapshot {
	t := make(map[uint64][]int, len(idx.table))
	for c, ps := range idx.table {
		t[c] = append([]int(nil), ps...)
	}
	return Snapshot{
		Policy:    idx.policy.String(),
		K:         idx.k,
		Threshold: idx.threshold,
		RefLen:    idx.refLen,
		Table:     t,
	}
}

// FromSnapshot rebuilds an Index, re-establishing the ordering invariant.
func FromSnapshot(s Snapshot) (*Index, error) {
	pol, err := ParsePolicy(s.Policy)
	if err != nil {
		return nil, err
	}
	if s.K <= 0 || s.K > MaxK {
		return nil, fmt.Errorf("%w: k=%d", ErrInvalidK, s.K)
	}
	idx := &Index{policy: pol, k: s.K, threshold: s.Threshold, refLen: s.RefLen,
		table: make(map[uint64][]int, len(s.Table))}
	for c, ps := range s.Table {
		cp := append([]int(nil), ps...)
		sort.Ints(cp)
		for i, p := range cp {
			if p < 0 || p+s.K > s.RefLen {
				return nil, fmt.Errorf("seed snapshot: position %d out of range for reference length %d", p, s.RefLen)
			}
			if i > 0 && cp[i-1] == p {
				return nil, fmt.Errorf("seed snapshot: duplicate position %d", p)
			}
		}
		idx.table[c] = cp
	}
	return idx, nil
}
