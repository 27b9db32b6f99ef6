// Package pipeline streams query records through a Searcher on a worker
// pool and hands each query's ranked hits to a visit callback.
//
// The only contract to implement is Searcher (SearchQuery).
// This keeps the pipeline swappable and testable.
package pipeline
