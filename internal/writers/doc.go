// Package writers turns ranked hits into serialized outputs.
//
// Design:
//   - Writers own all presentation knowledge (TSV rows, pretty blocks, JSON/JSONL/FASTA).
//   - The engine stays domain-only; the pipeline stays orchestration-only.
//   - JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
