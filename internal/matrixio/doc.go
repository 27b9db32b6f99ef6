// Package matrixio reads and writes probability-matrix references.
//
// Formats:
//   - tsv:       one row per line, four probabilities in A C G T order;
//     '#' comments and blank lines are skipped, an "A C G T" header is allowed.
//   - consensus: a called sequence (FASTA/FASTQ or plain text) plus a file of
//     per-position call probabilities; rows are p / (1-p)/3.
//   - binary:    little-endian float64 rows behind a magic header and a
//     CRC-32 trailer.
//
// Paths ending in .gz are (de)compressed transparently and "-" means
// stdin/stdout.
package matrixio
