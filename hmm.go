package hmm

import (
	"fmt"

	"github.com/unixpickle/essentials"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distmv"
)

// A Seq is a read-only, random-access sequence of emission
// symbol indices.
type Seq interface {
	// Len returns the number of observations.
	Len() int

	// At returns the symbol index at position i.
	// For a model with M symbols the result must lie in [0, M).
	At(i int) int
}

// IntSeq adapts a slice of symbol indices to the Seq interface.
type IntSeq []int

func (s IntSeq) Len() int { return len(s) }

func (s IntSeq) At(i int) int { return s[i] }

// ByteSeq adapts a byte string of symbol indices to the Seq
// interface. It is the compact choice for long observation
// streams over small alphabets.
type ByteSeq []byte

func (s ByteSeq) Len() int { return len(s) }

func (s ByteSeq) At(i int) int { return int(s[i]) }

// Model holds the parameters of a discrete-emission hidden
// Markov model with N states and M symbols.
//
// Every entry is an extended-log probability; use LZero (not
// NaN, not negative infinity) for probability zero. The caller
// owns the slices. The training operations re-estimate them in
// place; everything else is read-only on the model.
type Model struct {
	// Init[i] is the log probability of starting in state i.
	Init []float64

	// Trans[i][j] is the log probability of moving to state j
	// given state i.
	Trans [][]float64

	// Emit[i][k] is the log probability of emitting symbol k
	// from state i.
	Emit [][]float64
}

// NewModel validates the table shapes and bundles them into a
// Model. Values are not inspected; rows are expected to already
// be log-space distributions.
func NewModel(init []float64, trans, emit [][]float64) (m *Model, err error) {
	defer essentials.AddCtxTo("new model", &err)
	n := len(init)
	if n == 0 {
		return nil, fmt.Errorf("no states")
	}
	if len(trans) != n {
		return nil, fmt.Errorf("transition rows: got %d, want %d", len(trans), n)
	}
	if len(emit) != n {
		return nil, fmt.Errorf("emission rows: got %d, want %d", len(emit), n)
	}
	for i, row := range trans {
		if len(row) != n {
			return nil, fmt.Errorf("transition row %d: got %d columns, want %d",
				i, len(row), n)
		}
	}
	nsym := len(emit[0])
	if nsym == 0 {
		return nil, fmt.Errorf("no symbols")
	}
	for i, row := range emit {
		if len(row) != nsym {
			return nil, fmt.Errorf("emission row %d: got %d columns, want %d",
				i, len(row), nsym)
		}
	}
	return &Model{Init: init, Trans: trans, Emit: emit}, nil
}

// NumStates returns N, the number of hidden states.
func (m *Model) NumStates() int {
	return len(m.Init)
}

// NumSymbols returns M, the size of the emission alphabet.
func (m *Model) NumSymbols() int {
	if len(m.Emit) == 0 {
		return 0
	}
	return len(m.Emit[0])
}

// Clone deep-copies the model.
func (m *Model) Clone() *Model {
	res := &Model{
		Init:  append([]float64{}, m.Init...),
		Trans: make([][]float64, len(m.Trans)),
		Emit:  make([][]float64, len(m.Emit)),
	}
	for i, row := range m.Trans {
		res.Trans[i] = append([]float64{}, row...)
	}
	for i, row := range m.Emit {
		res.Emit[i] = append([]float64{}, row...)
	}
	return res
}

// Sample draws a hidden-state path and an observation sequence
// of the given length from the model.
//
// If gen is nil, the global routines in golang.org/x/exp/rand
// are used.
func (m *Model) Sample(gen *rand.Rand, length int) (states []int, obs IntSeq) {
	n := m.NumStates()
	if length <= 0 || n == 0 {
		return nil, nil
	}

	linear := make([]float64, essentials.MaxInt(n, m.NumSymbols()))
	expInto := func(dst, logProbs []float64) []float64 {
		dst = dst[:len(logProbs)]
		for i, lp := range logProbs {
			dst[i] = Eexp(lp)
		}
		return dst
	}

	state := sampleIndex(gen, expInto(linear, m.Init))
	for t := 0; t < length; t++ {
		states = append(states, state)
		obs = append(obs, sampleIndex(gen, expInto(linear, m.Emit[state])))
		if t+1 < length {
			state = sampleIndex(gen, expInto(linear, m.Trans[state]))
		}
	}
	return states, obs
}

// RandomModel creates a model with n states and m symbols whose
// initial, transition, and emission rows are drawn from a flat
// Dirichlet.
//
// RandomModel may be used to generate starting points for the
// training operations.
func RandomModel(src rand.Source, n, m int) *Model {
	ones := func(k int) []float64 {
		alpha := make([]float64, k)
		for i := range alpha {
			alpha[i] = 1
		}
		return alpha
	}
	stateDist := distmv.NewDirichlet(ones(n), src)
	emitDist := distmv.NewDirichlet(ones(m), src)

	res := &Model{
		Init:  DistToLog(stateDist.Rand(nil)),
		Trans: make([][]float64, n),
		Emit:  make([][]float64, n),
	}
	for i := 0; i < n; i++ {
		res.Trans[i] = DistToLog(stateDist.Rand(nil))
		res.Emit[i] = DistToLog(emitDist.Rand(nil))
	}
	return res
}
