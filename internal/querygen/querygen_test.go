package querygen

import (
	"errors"
	"reflect"
	"testing"

	"pblast/core/probmat"
)

func TestGenerateExactFromOneHot(t *testing.T) {
	ref := "ACGTTGCAACGGTACCATGA"
	m, _ := probmat.FromSequence(ref)
	o := DefaultOptions()
	o.Length = 8
	o.Positions = []int{3, 10}
	qs, err := Generate(m, o)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("len = %d, want 2", len(qs))
	}
	for _, q := range qs {
		if q.Seq != ref[q.Left:q.Right+1] {
			t.Fatalf("%s: %q is not the reference slice %q", q.ID, q.Seq, ref[q.Left:q.Right+1])
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	m, _ := probmat.FromConsensus("ACGTTGCAACGGTACCATGAACGT",
		[]float64{.9, .8, .7, .6, .5, .9, .8, .7, .6, .5, .9, .8, .7, .6, .5, .9, .8, .7, .6, .5, 1, 1, 1, 1})
	o := DefaultOptions()
	o.Length = 12
	o.Random = 5
	o.Substitutions = true
	o.Indels = true
	o.InsOpen, o.DelOpen = 0.05, 0.05
	a, err := Generate(m, o)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, _ := Generate(m, o)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed gave different queries")
	}
	for _, q := range a {
		if q.Right-q.Left+1 != 12 {
			t.Fatalf("origin %d-%d has wrong length", q.Left, q.Right)
		}
		if len(q.Seq) != 12+q.Ins-q.Del {
			t.Fatalf("%s: len %d, ins %d, del %d", q.ID, len(q.Seq), q.Ins, q.Del)
		}
		if _, err := probmat.NewQuery(q.Seq); err != nil {
			t.Fatalf("%s: invalid query: %v", q.ID, err)
		}
	}
}

func TestSubstitutionRowIsTransitionBiased(t *testing.T) {
	r := substitutionRow(0, 0.9) // A
	if r[0] != 0.9 || r[2] <= r[1] || r[1] != r[3] {
		t.Fatalf("row = %v", r)
	}
	sum := r[0] + r[1] + r[2] + r[3]
	if sum < 1-1e-12 || sum > 1+1e-12 {
		t.Fatalf("row sums to %g", sum)
	}
}

func TestRecordOrigin(t *testing.T) {
	q := Query{ID: "q7", Seq: "ACGT", Left: 120, Right: 219, Subs: 2}
	l, r, ok := ParseOrigin(q.Record().Desc)
	if !ok || l != 120 || r != 219 {
		t.Fatalf("ParseOrigin = %d,%d,%v", l, r, ok)
	}
	if _, _, ok := ParseOrigin("no origin here"); ok {
		t.Fatal("expected no origin")
	}
}

func TestGenerateOptionErrors(t *testing.T) {
	m, _ := probmat.FromSequence("ACGTACGT")
	o := DefaultOptions()
	o.Length = 9
	if _, err := Generate(m, o); !errors.Is(err, ErrOptions) {
		t.Fatalf("length: err = %v", err)
	}
	o.Length = 4
	o.Positions = []int{5}
	if _, err := Generate(m, o); !errors.Is(err, ErrOptions) {
		t.Fatalf("position: err = %v", err)
	}
}
