package output

// Output formats.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
	FormatFASTA = "fasta"
)

// TSVHeader is the canonical header row for text/TSV outputs.
// Keep this as the single source of truth; all writers should use it.
const TSVHeader = "query_id\trank\tref_start\tref_end\tlength\tscore\tseed_query_pos\tseed_ref_pos\tseed_score\tungapped_query_start\tungapped_query_end\tungapped_ref_start\tungapped_ref_end\tungapped_score\tleft_score\tright_score\tleft_aligned\tright_aligned"
