// core/probmat/alphabet.go
package probmat

// Alphabet is the fixed symbol order of every matrix row and one-hot vector.
const Alphabet = "ACGT"

// Size is the number of symbols in Alphabet.
const Size = 4

// Gap is the column symbol used in rendered alignments.
const Gap = '-'

var symIndex [256]int8

func init() {
	for i := range symIndex {
		symIndex[i] = -1
	}
	for i := 0; i < Size; i++ {
		symIndex[Alphabet[i]] = int8(i)
		symIndex[Alphabet[i]+'a'-'A'] = int8(i)
	}
}

// SymbolIndex returns the alphabet index of b (case-insensitive), or -1.
func SymbolIndex(b byte) int { return int(symIndex[b]) }

// Symbol returns the upper-case letter for alphabet index i.
func Symbol(i int) byte { return Alphabet[i] }

// OneHot returns the one-hot row for alphabet index i.
func OneHot(i int) [Size]float64 {
	var v [Size]float64
	v[i] = 1
	return v
}
