// core/scoring/substitution.go
package scoring

import (
	"fmt"
	"strconv"
	"strings"

	"pblast/core/probmat"
)

// Substitution is a cost table indexed [query][reference] in ACGT order.
// A nil *Substitution means "use the probability formula".
type Substitution [probmat.Size][probmat.Size]float64

// IdentitySubstitution scores match as +match and any substitution as mismatch.
func IdentitySubstitution(match, mismatch float64) *Substitution {
	var s Substitution
	for i := range s {
		for j := range s[i] {
			if i == j {
				s[i][j] = match
			} else {
				s[i][j] = mismatch
			}
		}
	}
	return &s
}

// ParseSubstitution reads "AC=-1,AG=-0.5,..." pairs (query then reference).
// Pairs not listed default to +1 on the diagonal and -1 elsewhere.
// An empty string yields nil.
func ParseSubstitution(table string) (*Substitution, error) {
	table = strings.TrimSpace(table)
	if table == "" {
		return nil, nil
	}
	s := IdentitySubstitution(1, -1)
	for _, item := range strings.Split(table, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		k, v, ok := strings.Cut(item, "=")
		k = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(k), ":", ""))
		if !ok || len(k) != 2 {
			return nil, fmt.Errorf("%w: %q (want XY=cost)", ErrBadSubstitution, item)
		}
		qi, ri := probmat.SymbolIndex(k[0]), probmat.SymbolIndex(k[1])
		if qi < 0 || ri < 0 {
			return nil, fmt.Errorf("%w: %q has a non-ACGT symbol", ErrBadSubstitution, item)
		}
		cost, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrBadSubstitution, item, err)
		}
		s[qi][ri] = cost
	}
	return s, nil
}

// String renders the table in ParseSubstitution syntax.
func (s *Substitution) String() string {
	if s == nil {
		return ""
	}
	parts := make([]string, 0, probmat.Size*probmat.Size)
	for i := range s {
		for j := range s[i] {
			parts = append(parts, fmt.Sprintf("%c%c=%s",
				probmat.Symbol(i), probmat.Symbol(j), strconv.FormatFloat(s[i][j], 'g', -1, 64)))
		}
	}
	return strings.Join(parts, ",")
}
