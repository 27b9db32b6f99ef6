// core/extend/affine.go
package extend

import (
	"fmt"
	"math"

	"pblast/core/probmat"
	"pblast/core/scoring"
)

// AffineOptions parameterizes AffineAlign.
type AffineOptions struct {
	Scorer    scoring.Scorer
	GapOpen   float64 // added once per gap, on top of GapExtend
	GapExtend float64 // added per gap column

	// GapPeriod N > 1 restricts gap opening to reference columns j with
	// j%N == 0. 0 or 1 means unrestricted.
	GapPeriod int

	// StopScore, when set, ends the fill after the first reference column
	// whose last-row score reaches it.
	StopScore *float64
}

// Alignment is a pairwise alignment of a query against a reference window.
type Alignment struct {
	Query string
	Ref   string
	Score float64
}

type state uint8

const (
	stM state = iota
	stX
	stY
	stNone
)

func (s state) String() string {
	switch s {
	case stM:
		return "M"
	case stX:
		return "X"
	case stY:
		return "Y"
	}
	return "none"
}

var negInf = math.Inf(-1)

// back pointers, packed as 2 bits per state in one byte per cell
type pointers struct {
	rows int
	cell []uint8
}

func (p *pointers) set(i, j int, s, from state) {
	c := &p.cell[j*p.rows+i]
	shift := 2 * uint(s)
	*c = *c&^(3<<shift) | uint8(from)<<shift
}

func (p *pointers) get(i, j int, s state) state {
	return state(p.cell[j*p.rows+i] >> (2 * uint(s)) & 3)
}

// AffineAlign aligns all of q against a prefix of ref with three-state affine
// gap scoring:
//
//	M[i][j] = max(M,X,Y)[i-1][j-1] + s(ref[j-1], q[i-1])
//	X[i][j] = max(M[i][j-1] + open + ext, X[i][j-1] + ext)   gap in query
//	Y[i][j] = max(M[i-1][j] + open + ext, Y[i-1][j] + ext)   gap in reference
//
// The query is consumed entirely; the reference end is free. The result ends
// at the best state of row len(q) over the computed columns, smaller columns
// and the order M, X, Y winning ties. Columns are filled in reference order.
func AffineAlign(q probmat.Query, ref Window, opts AffineOptions) Alignment {
	m, n := q.Len(), ref.Len()
	open, ext := opts.GapOpen, opts.GapExtend
	period := opts.GapPeriod
	if period < 1 {
		period = 1
	}

	ptr := &pointers{rows: m + 1, cell: make([]uint8, (m+1)*(n+1))}
	for i := range ptr.cell {
		ptr.cell[i] = uint8(stNone) | uint8(stNone)<<2 | uint8(stNone)<<4
	}

	// two score columns per state
	prevM, prevX, prevY := make([]float64, m+1), make([]float64, m+1), make([]float64, m+1)
	curM, curX, curY := make([]float64, m+1), make([]float64, m+1), make([]float64, m+1)

	// column 0
	prevM[0], prevX[0], prevY[0] = 0, negInf, negInf
	for i := 1; i <= m; i++ {
		prevM[i], prevX[i] = negInf, negInf
		prevY[i] = open + float64(i)*ext
		if i == 1 {
			ptr.set(i, 0, stY, stM)
		} else {
			ptr.set(i, 0, stY, stY)
		}
	}

	bestJ, bestS, bestV := 0, stNone, negInf
	consider := func(j int, M, X, Y float64) {
		for s, v := range [3]float64{M, X, Y} {
			if v > bestV {
				bestJ, bestS, bestV = j, state(s), v
			}
		}
	}
	consider(0, prevM[m], prevX[m], prevY[m])

	for j := 1; j <= n; j++ {
		canOpen := j%period == 0
		row := ref.Row(j - 1)

		curM[0], curY[0] = negInf, negInf
		curX[0] = open + float64(j)*ext
		if j == 1 {
			ptr.set(0, j, stX, stM)
		} else {
			ptr.set(0, j, stX, stX)
		}

		for i := 1; i <= m; i++ {
			// M: diagonal
			d, from := prevM[i-1], stM
			if prevX[i-1] > d {
				d, from = prevX[i-1], stX
			}
			if prevY[i-1] > d {
				d, from = prevY[i-1], stY
			}
			curM[i] = d + opts.Scorer.Score(row, q.Index(i-1))
			ptr.set(i, j, stM, from)

			// X: horizontal, consumes reference
			x, xf := prevX[i]+ext, stX
			if canOpen {
				if o := prevM[i] + open + ext; o > x {
					x, xf = o, stM
				}
			}
			curX[i] = x
			ptr.set(i, j, stX, xf)

			// Y: vertical, consumes query
			y, yf := curY[i-1]+ext, stY
			if canOpen {
				if o := curM[i-1] + open + ext; o > y {
					y, yf = o, stM
				}
			}
			curY[i] = y
			ptr.set(i, j, stY, yf)
		}

		consider(j, curM[m], curX[m], curY[m])
		prevM, curM = curM, prevM
		prevX, curX = curX, prevX
		prevY, curY = curY, prevY

		if opts.StopScore != nil && math.Max(prevM[m], math.Max(prevX[m], prevY[m])) >= *opts.StopScore {
			break
		}
	}

	qs, rs := traceback(q, ref, ptr, m, bestJ, bestS)
	return Alignment{Query: qs, Ref: rs, Score: bestV}
}

func traceback(q probmat.Query, ref Window, ptr *pointers, i, j int, s state) (string, string) {
	qb := make([]byte, 0, i+j)
	rb := make([]byte, 0, i+j)
	for i > 0 || j > 0 {
		next := ptr.get(i, j, s)
		switch {
		case s == stM && i > 0 && j > 0:
			qb = append(qb, probmat.Symbol(q.Index(i-1)))
			rb = append(rb, ref.Symbol(j-1))
			i--
			j--
		case s == stX && j > 0:
			qb = append(qb, probmat.Gap)
			rb = append(rb, ref.Symbol(j-1))
			j--
		case s == stY && i > 0:
			qb = append(qb, probmat.Symbol(q.Index(i-1)))
			rb = append(rb, probmat.Gap)
			i--
		default:
			panic(fmt.Sprintf("extend: invalid traceback state %v at (%d,%d)", s, i, j))
		}
		if next == stNone && (i > 0 || j > 0) {
			panic(fmt.Sprintf("extend: missing back pointer for %v at (%d,%d)", s, i, j))
		}
		s = next
	}
	reverseBytes(qb)
	reverseBytes(rb)
	return string(qb), string(rb)
}

func reverseBytes(b []byte) {
	for l, r := 0, len(b)-1; l < r; l, r = l+1, r-1 {
		b[l], b[r] = b[r], b[l]
	}
}

// cleanEndGaps drops trailing query gaps from both rows. The score loses
// one opening and one extension per removed column.
func cleanEndGaps(a Alignment, open, ext float64) Alignment {
	n := len(a.Query)
	if n == 0 || a.Query[n-1] != probmat.Gap {
		return a
	}
	a.Score -= open
	for n > 0 && a.Query[n-1] == probmat.Gap {
		n--
		a.Score -= ext
	}
	a.Query, a.Ref = a.Query[:n], a.Ref[:n]
	return a
}
