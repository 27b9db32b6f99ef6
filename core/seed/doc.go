// Package seed builds the k-mer index of a probability-matrix reference and
// matches query windows against it.
//
// Two construction policies exist. Consensus indexes the argmax sequence.
// Threshold indexes every combination of per-position candidate symbols
// (probability at or above a threshold, plus the argmax), which trades index
// size for sensitivity at low-confidence positions.
//
// An Index is immutable after Build and safe for concurrent lookups.
package seed
