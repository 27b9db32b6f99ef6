package pretty

import (
	"strings"
	"testing"

	"pblast/core/extend"
	"pblast/internal/output"
)

func TestDefaultOptions_Stable(t *testing.T) {
	d := DefaultOptions
	if d.Width != 60 || d.MatchGlyph != "|" || d.MismatchGlyph != " " {
		t.Fatalf("DefaultOptions visual defaults changed")
	}
}

func hit(aq, ar string, left, right int) output.Hit {
	return output.Hit{
		QueryID:      "q1",
		Rank:         1,
		GappedHit:    extend.GappedHit{Final: extend.Range{RefLeft: left, RefRight: right, Score: 3.5}},
		AlignedQuery: aq,
		AlignedRef:   ar,
	}
}

func TestRenderHit(t *testing.T) {
	got := RenderHit(hit("AC-GTT", "ACAGTA", 10, 15))
	want := strings.Join([]string{
		"# q1 rank=1 ref=10-15 score=3.5",
		"# Query  0 AC-GTT 4",
		"#          || || ",
		"# Ref   10 ACAGTA 15",
		"#",
		"",
	}, "\n")
	if got != want {
		t.Fatalf("mismatch:\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestRenderHitWraps(t *testing.T) {
	got := RenderHitWithOptions(hit("ACGTA", "AC-TA", 0, 3), Options{Width: 3})
	want := strings.Join([]string{
		"# q1 rank=1 ref=0-3 score=3.5",
		"# Query 0 ACG 2",
		"#         || ",
		"# Ref   0 AC- 1",
		"# Query 3 TA 4",
		"#         ||",
		"# Ref   2 TA 3",
		"#",
		"",
	}, "\n")
	if got != want {
		t.Fatalf("mismatch:\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestRenderHitWithoutAlignment(t *testing.T) {
	if got := RenderHit(hit("", "", 0, 0)); !strings.Contains(got, "not available") {
		t.Fatalf("got %q", got)
	}
}
