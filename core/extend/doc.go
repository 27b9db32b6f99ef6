// Package extend grows seed hits into local alignments against a
// probability-matrix reference.
//
// ExtendUngapped walks each seed outward along its diagonal with an X-drop
// rule. ExtendGapped then aligns the query flanks left and right of the
// ungapped core with an affine-gap global recurrence (AffineAlign) over a
// bounded reference window, trims trailing end gaps and aggregates the
// final reference range and score.
//
// All functions are pure; the matrix, query and scorer are only read.
package extend
