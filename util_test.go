package hmm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// testingModel returns the two-state, three-symbol model used
// throughout the package tests, already converted to log space.
func testingModel() *Model {
	return &Model{
		Init: DistToLog([]float64{0.5, 0.5}),
		Trans: TableToLog([][]float64{
			{0.9, 0.1},
			{0.5, 0.5},
		}),
		Emit: TableToLog([][]float64{
			{0.2, 0.3, 0.5},
			{0.5, 0.2, 0.3},
		}),
	}
}

// testingObs returns the 30-symbol sequence the package's hand
// checks use together with testingModel.
func testingObs() Seq {
	return symbols("010000000010000100001000000000")
}

// symbols converts a digit string into an observation sequence.
func symbols(s string) IntSeq {
	seq := make(IntSeq, len(s))
	for i, ch := range s {
		seq[i] = int(ch - '0')
	}
	return seq
}

// randomCase draws a random well-formed model and an
// observation sequence sampled from it.
func randomCase(seed uint64, n, m, length int) (*Model, Seq) {
	model := RandomModel(rand.NewSource(seed), n, m)
	_, obs := model.Sample(rand.New(rand.NewSource(seed+1)), length)
	return model, obs
}

// linearModel expands a log-space model back into linear space.
func linearModel(m *Model) (init []float64, trans, emit [][]float64) {
	init = make([]float64, len(m.Init))
	for i, lp := range m.Init {
		init[i] = Eexp(lp)
	}
	expTable := func(table [][]float64) [][]float64 {
		res := make([][]float64, len(table))
		for i, row := range table {
			res[i] = make([]float64, len(row))
			for j, lp := range row {
				res[i][j] = Eexp(lp)
			}
		}
		return res
	}
	return init, expTable(m.Trans), expTable(m.Emit)
}

// linearForward computes alpha[s][i] with plain linear-space
// arithmetic as an independent reference for the log-domain
// recurrences. Only suitable for sequences short enough not to
// underflow.
func linearForward(m *Model, obs Seq) [][]float64 {
	init, trans, emit := linearModel(m)
	n := m.NumStates()
	alpha := make([][]float64, obs.Len())
	alpha[0] = make([]float64, n)
	for i := 0; i < n; i++ {
		alpha[0][i] = init[i] * emit[i][obs.At(0)]
	}
	for s := 1; s < obs.Len(); s++ {
		alpha[s] = make([]float64, n)
		for j := 0; j < n; j++ {
			var sum float64
			for k := 0; k < n; k++ {
				sum += alpha[s-1][k] * trans[k][j]
			}
			alpha[s][j] = sum * emit[j][obs.At(s)]
		}
	}
	return alpha
}

// linearBackward computes beta[s][i] in linear space.
func linearBackward(m *Model, obs Seq) [][]float64 {
	_, trans, emit := linearModel(m)
	n := m.NumStates()
	nobs := obs.Len()
	beta := make([][]float64, nobs)
	beta[nobs-1] = make([]float64, n)
	for i := 0; i < n; i++ {
		beta[nobs-1][i] = 1
	}
	for s := nobs - 2; s >= 0; s-- {
		beta[s] = make([]float64, n)
		for i := 0; i < n; i++ {
			var sum float64
			for k := 0; k < n; k++ {
				sum += trans[i][k] * emit[k][obs.At(s+1)] * beta[s+1][k]
			}
			beta[s][i] = sum
		}
	}
	return beta
}

// requireLogClose asserts two extended-log values agree to
// within a small relative tolerance, with LZero only equal to
// itself.
func requireLogClose(t *testing.T, want, got float64, msgAndArgs ...interface{}) {
	t.Helper()
	if want == LZero || got == LZero {
		require.Equal(t, want, got, msgAndArgs...)
		return
	}
	require.InDelta(t, want, got, 1e-5*(1+math.Abs(want)), msgAndArgs...)
}

// requireLogsClose is requireLogClose over whole vectors.
func requireLogsClose(t *testing.T, want, got []float64, msgAndArgs ...interface{}) {
	t.Helper()
	require.Equal(t, len(want), len(got), msgAndArgs...)
	for i := range want {
		requireLogClose(t, want[i], got[i], msgAndArgs...)
	}
}

// requireProbEqual asserts an extended-log value decodes to the
// given linear probability.
func requireProbEqual(t *testing.T, want, gotLog float64) {
	t.Helper()
	got := Eexp(gotLog)
	if want == 0 {
		require.Less(t, got, 1e-12)
		return
	}
	require.InEpsilon(t, want, got, 1e-6)
}
