// Package engine wires the seed index, the ungapped and gapped extenders and
// the ranker into a single search over one probability-matrix reference.
//
// An Engine builds (or adopts) the seed index once and may then serve any
// number of concurrent Search calls.
package engine
