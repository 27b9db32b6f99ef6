// core/probmat/query.go
package probmat

import (
	"fmt"
	"strings"
	"unicode"
)

// Query is a validated, upper-case nucleotide string.
type Query struct {
	seq string
	idx []int8
}

// Normalize removes whitespace and quotes and upper-cases the rest.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '\'' || r == '"' {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// NewQuery validates raw and returns a Query over the ACGT alphabet.
func NewQuery(raw string) (Query, error) {
	s := Normalize(raw)
	if s == "" {
		return Query{}, fmt.Errorf("query: %w", ErrEmpty)
	}
	idx := make([]int8, len(s))
	for i := 0; i < len(s); i++ {
		ix := symIndex[s[i]]
		if ix < 0 {
			return Query{}, fmt.Errorf("query position %d (%q): %w", i+1, s[i], ErrBadSymbol)
		}
		idx[i] = ix
	}
	return Query{seq: s, idx: idx}, nil
}

// MustQuery is NewQuery that panics; for tests.
func MustQuery(raw string) Query {
	q, err := NewQuery(raw)
	if err != nil {
		panic(err)
	}
	return q
}

func (q Query) Len() int       { return len(q.seq) }
func (q Query) String() string { return q.seq }

// Index returns the alphabet index of position i.
func (q Query) Index(i int) int { return int(q.idx[i]) }

// OneHot returns the one-hot encoding of position i.
func (q Query) OneHot(i int) [Size]float64 { return OneHot(int(q.idx[i])) }

// Bytes returns the symbols of [from, to) as a fresh slice.
func (q Query) Bytes(from, to int) []byte { return []byte(q.seq[from:to]) }

// Sub returns the sub-query [from, to). It shares storage with q.
func (q Query) Sub(from, to int) Query { return Query{seq: q.seq[from:to], idx: q.idx[from:to]} }

// Reverse returns q read backwards.
func (q Query) Reverse() Query {
	n := len(q.seq)
	b := make([]byte, n)
	idx := make([]int8, n)
	for i := 0; i < n; i++ {
		b[i] = q.seq[n-1-i]
		idx[i] = q.idx[n-1-i]
	}
	return Query{seq: string(b), idx: idx}
}
