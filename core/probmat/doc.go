// Package probmat holds the two inputs of a search: the reference as a
// per-position probability matrix over {A,C,G,T}, and the query as a
// validated nucleotide string with a one-hot view.
//
// Both are read-only once constructed and safe to share between goroutines.
package probmat
