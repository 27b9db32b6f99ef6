// pkg/api/hits_v1.go
package api

// HitV1 is the stable JSON/JSONL schema for one ranked hit.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
// Coordinates are 0-based inclusive reference positions.
type HitV1 struct {
	QueryID  string  `json:"query_id"`
	Rank     int     `json:"rank"` // 1 = best
	RefStart int     `json:"ref_start"`
	RefEnd   int     `json:"ref_end"`
	Length   int     `json:"length"`
	Score    float64 `json:"score"`

	Seed     SeedV1     `json:"seed"`
	Ungapped UngappedV1 `json:"ungapped"`
	Left     FlankV1    `json:"left"`
	Right    FlankV1    `json:"right"`

	AlignedQuery string `json:"aligned_query,omitempty"`
	AlignedRef   string `json:"aligned_ref,omitempty"`
}

// SeedV1 is the exact k-mer match that started the hit.
type SeedV1 struct {
	QueryPos int     `json:"query_pos"`
	RefPos   int     `json:"ref_pos"`
	Score    float64 `json:"score"`
}

// UngappedV1 is the gap-free extension of the seed.
type UngappedV1 struct {
	QueryStart int     `json:"query_start"`
	QueryEnd   int     `json:"query_end"`
	RefStart   int     `json:"ref_start"`
	RefEnd     int     `json:"ref_end"`
	Score      float64 `json:"score"`
}

// FlankV1 is one gapped flank. RefStart/RefEnd are -1 when Aligned is false.
type FlankV1 struct {
	RefStart int     `json:"ref_start"`
	RefEnd   int     `json:"ref_end"`
	Score    float64 `json:"score"`
	Aligned  bool    `json:"aligned"`
	Query    string  `json:"query,omitempty"`
	Ref      string  `json:"ref,omitempty"`
}

// EvalV1 is the per-query record written by the eval command.
type EvalV1 struct {
	QueryID  string   `json:"query_id"`
	Origin   [2]int   `json:"origin"`
	Hits     int      `json:"hits"`
	Top1IoU  float64  `json:"top1_iou"`
	Top5IoU  float64  `json:"top5_iou"`
	Top10IoU float64  `json:"top10_iou"`
	AUC      *float64 `json:"auc,omitempty"` // absent when undefined
}
