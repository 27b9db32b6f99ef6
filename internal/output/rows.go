// internal/output/rows.go
package output

import (
	"strconv"
	"strings"
)

// Float renders scores without losing precision.
func Float(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// FormatRowTSV returns the TSVHeader columns of h (no trailing newline).
func FormatRowTSV(h Hit) string {
	cols := []string{
		h.QueryID,
		strconv.Itoa(h.Rank),
		strconv.Itoa(h.Final.RefLeft),
		strconv.Itoa(h.Final.RefRight),
		strconv.Itoa(h.Final.Len()),
		Float(h.Final.Score),
		strconv.Itoa(h.Hit.QueryPos),
		strconv.Itoa(h.Hit.RefPos),
		Float(h.Hit.Score),
		strconv.Itoa(h.QueryLeft),
		strconv.Itoa(h.QueryRight),
		strconv.Itoa(h.RefLeft),
		strconv.Itoa(h.RefRight),
		Float(h.UngappedMatch.Score),
		Float(h.Left.Score),
		Float(h.Right.Score),
		strconv.FormatBool(h.Left.Aligned),
		strconv.FormatBool(h.Right.Aligned),
	}
	return strings.Join(cols, "\t")
}
