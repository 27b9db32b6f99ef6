// core/extend/window.go
package extend

import "pblast/core/probmat"

// Window is a read-only view of reference rows [from, to), optionally read
// backwards, so the left flank can be aligned without copying rows.
type Window struct {
	m        *probmat.Matrix
	from, to int
	reversed bool
}

// NewWindow clips [from, to) to the matrix.
func NewWindow(m *probmat.Matrix, from, to int, reversed bool) Window {
	if from < 0 {
		from = 0
	}
	if to > m.Len() {
		to = m.Len()
	}
	if to < from {
		to = from
	}
	return Window{m: m, from: from, to: to, reversed: reversed}
}

func (w Window) Len() int { return w.to - w.from }

func (w Window) pos(j int) int {
	if w.reversed {
		return w.to - 1 - j
	}
	return w.from + j
}

// Row returns the j-th row of the view.
func (w Window) Row(j int) *probmat.Row { return w.m.Row(w.pos(j)) }

// Symbol returns the consensus symbol of the j-th row of the view.
func (w Window) Symbol(j int) byte { return w.m.ConsensusAt(w.pos(j)) }
