// Package scoring scores one query symbol against one reference probability
// row. Methods are a closed set resolved once into a Scorer.
package scoring

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"pblast/core/probmat"
)

var (
	ErrUnknownMethod   = errors.New("scoring: unknown score method")
	ErrBadSubstitution = errors.New("scoring: malformed substitution table")
)

// Method selects the per-position scoring function.
type Method int

const (
	SumProba        Method = iota // reward agreeing mass, penalize the rest
	SumProbaClamped               // SumProba, floored at 0 when the query hits the consensus
)

var methodNames = map[string]Method{
	"sum_proba_score":          SumProba,
	"sum_proba":                SumProba,
	"sum_proba_score_clamped":  SumProbaClamped,
	"sum_proba_clamped":        SumProbaClamped,
	"sum_proba_score_correct0": SumProbaClamped,
}

func (m Method) String() string {
	switch m {
	case SumProba:
		return "sum_proba_score"
	case SumProbaClamped:
		return "sum_proba_score_clamped"
	}
	return "Method(" + strconv.Itoa(int(m)) + ")"
}

// ParseMethod resolves a method name.
func ParseMethod(name string) (Method, error) {
	m, ok := methodNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w %q (want sum_proba_score | sum_proba_score_clamped)", ErrUnknownMethod, name)
	}
	return m, nil
}

// Set implements pflag.Value so a Method can be bound to a CLI flag.
func (m *Method) Set(s string) error {
	v, err := ParseMethod(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (m *Method) Type() string { return "method" }

// Scorer scores reference row ref against the query symbol with alphabet index q.
type Scorer interface {
	Score(ref *probmat.Row, q int) float64
}

// New returns the Scorer for method. sub may be nil.
func New(method Method, mismatch float64, sub *Substitution) (Scorer, error) {
	base := sumProba{mismatch: mismatch, sub: sub}
	switch method {
	case SumProba:
		return base, nil
	case SumProbaClamped:
		return clamped{base}, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownMethod, method)
}

// ---- implementations -------------------------------------------------------

type sumProba struct {
	mismatch float64
	sub      *Substitution
}

func (s sumProba) Score(ref *probmat.Row, q int) float64 {
	if s.sub != nil {
		row := &s.sub[q]
		return ref[0]*row[0] + ref[1]*row[1] + ref[2]*row[2] + ref[3]*row[3]
	}
	agree := ref[q]
	return agree - s.mismatch*(ref[0]+ref[1]+ref[2]+ref[3]-agree)
}

type clamped struct{ sumProba }

func (c clamped) Score(ref *probmat.Row, q int) float64 {
	v := c.sumProba.Score(ref, q)
	if v < 0 && probmat.Argmax(ref) == q {
		return 0
	}
	return v
}
