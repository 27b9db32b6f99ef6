// Package pretty draws BLAST-style alignment blocks under text output rows.
package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"pblast/core/probmat"
	"pblast/internal/output"
)

// Options control the ASCII rendering.
type Options struct {
	// Alignment columns per line. If <=0, use default (60).
	Width int

	// Glyphs
	MatchGlyph    string // default "|"
	MismatchGlyph string // default " "
	GapGlyph      string // default " "
}

// DefaultOptions is the stock look.
var DefaultOptions = Options{
	Width:         60,
	MatchGlyph:    "|",
	MismatchGlyph: " ",
	GapGlyph:      " ",
}

const linePrefix = "# "

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultOptions.Width
	}
	if o.MatchGlyph == "" {
		o.MatchGlyph = DefaultOptions.MatchGlyph
	}
	if o.MismatchGlyph == "" {
		o.MismatchGlyph = DefaultOptions.MismatchGlyph
	}
	if o.GapGlyph == "" {
		o.GapGlyph = DefaultOptions.GapGlyph
	}
	return o
}

// residues counts non-gap symbols.
func residues(s string) int { return len(s) - strings.Count(s, string(probmat.Gap)) }

func matchLine(q, r string, o Options) string {
	var b strings.Builder
	for i := 0; i < len(q); i++ {
		switch {
		case q[i] == probmat.Gap || r[i] == probmat.Gap:
			b.WriteString(o.GapGlyph)
		case q[i] == r[i]:
			b.WriteString(o.MatchGlyph)
		default:
			b.WriteString(o.MismatchGlyph)
		}
	}
	return b.String()
}

// RenderHitWithOptions prints the alignment of h in Width-column slices.
// Query rows count from the query start, reference rows from the final range.
func RenderHitWithOptions(h output.Hit, opt Options) string {
	aq, ar := h.AlignedQuery, h.AlignedRef
	if aq == "" || len(aq) != len(ar) {
		return linePrefix + "(pretty not available: alignment missing)\n#\n"
	}
	opt = opt.withDefaults()

	var b strings.Builder
	fmt.Fprintf(&b, "%s%s rank=%d ref=%d-%d score=%s\n",
		linePrefix, h.QueryID, h.Rank, h.Final.RefLeft, h.Final.RefRight, output.Float(h.Final.Score))

	numW := len(strconv.Itoa(max(h.Final.RefRight, len(aq))))
	pad := strings.Repeat(" ", len("Query ")+numW+1)
	qPos, rPos := 0, h.Final.RefLeft
	for from := 0; from < len(aq); from += opt.Width {
		to := min(from+opt.Width, len(aq))
		qs, rs := aq[from:to], ar[from:to]
		qn, rn := residues(qs), residues(rs)
		fmt.Fprintf(&b, "%sQuery %*d %s %d\n", linePrefix, numW, qPos, qs, qPos+qn-1)
		fmt.Fprintf(&b, "%s%s%s\n", linePrefix, pad, matchLine(qs, rs, opt))
		fmt.Fprintf(&b, "%sRef   %*d %s %d\n", linePrefix, numW, rPos, rs, rPos+rn-1)
		qPos += qn
		rPos += rn
	}

	// spacer
	b.WriteString("#\n")
	return b.String()
}

// RenderHit uses DefaultOptions.
func RenderHit(h output.Hit) string {
	return RenderHitWithOptions(h, DefaultOptions)
}
