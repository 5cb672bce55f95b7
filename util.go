package hmm

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
)

// sampleIndex samples an index from the list, given the linear
// probability of each index.
func sampleIndex(gen *rand.Rand, probs []float64) int {
	if len(probs) == 0 {
		panic("cannot sample from empty list")
	}
	var offset float64
	if gen == nil {
		offset = rand.Float64()
	} else {
		offset = gen.Float64()
	}
	offset *= floats.Sum(probs)
	for i, p := range probs {
		offset -= p
		if offset < 0 {
			return i
		}
	}
	return len(probs) - 1
}

// lzeroVec allocates a length-n vector of log zeros.
func lzeroVec(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = LZero
	}
	return v
}
