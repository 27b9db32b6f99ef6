// Package evaluate scores search results against known query origins.
package evaluate

import (
	"math"
	"sort"
)

// Interval is an inclusive reference range.
type Interval struct{ Left, Right int }

// IoU is the intersection over union of two inclusive ranges.
func IoU(a, b Interval) float64 {
	inter := min(a.Right, b.Right) - max(a.Left, b.Left) + 1
	if inter < 0 {
		inter = 0
	}
	union := max(a.Right, b.Right) - min(a.Left, b.Left) + 1
	if union <= 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// Scored is one ranked hit: its reference range and score.
type Scored struct {
	Range Interval
	Score float64
}

// Performance summarizes one query's ranked hits.
type Performance struct {
	Hits   int
	Top1   float64 // IoU of the best hit
	Top5   float64 // best IoU within the first 5 hits
	Top10  float64
	AUC    float64 // relevant (IoU>0) vs irrelevant by score; NaN when undefined
	HasAUC bool
}

// Compute evaluates hits, which must already be ranked best first.
func Compute(truth Interval, hits []Scored) Performance {
	p := Performance{Hits: len(hits), AUC: math.NaN()}
	if len(hits) == 0 {
		return p
	}
	ious := make([]float64, len(hits))
	labels := make([]bool, len(hits))
	scores := make([]float64, len(hits))
	for i, h := range hits {
		ious[i] = IoU(truth, h.Range)
		labels[i] = ious[i] > 0
		scores[i] = h.Score
	}
	p.Top1 = ious[0]
	p.Top5 = maxPrefix(ious, 5)
	p.Top10 = maxPrefix(ious, 10)
	p.AUC, p.HasAUC = AUC(labels, scores)
	return p
}

func maxPrefix(v []float64, n int) float64 {
	if n > len(v) {
		n = len(v)
	}
	best := 0.0
	for _, x := range v[:n] {
		best = math.Max(best, x)
	}
	return best
}

// AUC is the ROC area of scores separating positive from negative labels,
// computed from average ranks (ties share their rank). ok is false when
// either class is empty.
func AUC(labels []bool, scores []float64) (auc float64, ok bool) {
	n := len(scores)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return scores[order[a]] < scores[order[b]] })

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && scores[order[j+1]] == scores[order[i]] {
			j++
		}
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			ranks[order[k]] = avg
		}
		i = j + 1
	}

	var pos, neg int
	var rankSum float64
	for i, l := range labels {
		if l {
			pos++
			rankSum += ranks[i]
		} else {
			neg++
		}
	}
	if pos == 0 || neg == 0 {
		return math.NaN(), false
	}
	u := rankSum - float64(pos)*float64(pos+1)/2
	return u / (float64(pos) * float64(neg)), true
}

// Summary averages Performance over queries. AUC averages only the queries
// where it is defined.
type Summary struct {
	Queries    int
	NoHits     int
	MeanTop1   float64
	MeanTop5   float64
	MeanTop10  float64
	MeanAUC    float64
	AUCQueries int
}

// Add accumulates p.
func (s *Summary) Add(p Performance) {
	s.Queries++
	if p.Hits == 0 {
		s.NoHits++
	}
	s.MeanTop1 += p.Top1
	s.MeanTop5 += p.Top5
	s.MeanTop10 += p.Top10
	if p.HasAUC {
		s.MeanAUC += p.AUC
		s.AUCQueries++
	}
}

// Finish turns the accumulated sums into means.
func (s *Summary) Finish() {
	if s.Queries > 0 {
		n := float64(s.Queries)
		s.MeanTop1 /= n
		s.MeanTop5 /= n
		s.MeanTop10 /= n
	}
	if s.AUCQueries > 0 {
		s.MeanAUC /= float64(s.AUCQueries)
	} else {
		s.MeanAUC = math.NaN()
	}
}
