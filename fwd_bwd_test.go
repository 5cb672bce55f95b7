package hmm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForwardFullAgainstLinear(t *testing.T) {
	m := testingModel()
	obs := symbols("0100021")
	want := linearForward(m, obs)
	alpha := ForwardFull(m, obs, obs.Len())
	for s := 0; s < obs.Len(); s++ {
		for i := 0; i < m.NumStates(); i++ {
			requireProbEqual(t, want[s][i], alpha[i][s])
		}
	}
}

func TestForwardShapesAgree(t *testing.T) {
	for seed := uint64(1); seed <= 4; seed++ {
		m, obs := randomCase(seed, 3, 4, 12)
		full := ForwardFull(m, obs, obs.Len())

		// the indexed shape reproduces any single column
		for index := 1; index <= obs.Len(); index++ {
			indexed := make([]float64, m.NumStates())
			ForwardIndex(m, obs, index, indexed)
			for i := range indexed {
				requireLogClose(t, full[i][index-1], indexed[i], "index %d state %d", index, i)
			}
		}

		// the stepped shape reproduces every column in one sweep
		stepped := make([]float64, m.NumStates())
		for index := 1; index <= obs.Len(); index++ {
			ForwardNext(m, obs, index, stepped)
			for i := range stepped {
				requireLogClose(t, full[i][index-1], stepped[i], "index %d state %d", index, i)
			}
		}
	}
}

func TestBackwardFullAgainstLinear(t *testing.T) {
	m := testingModel()
	obs := symbols("0100021")
	want := linearBackward(m, obs)
	beta := BackwardFull(m, obs, 1)
	for s := 0; s < obs.Len(); s++ {
		for i := 0; i < m.NumStates(); i++ {
			requireProbEqual(t, want[s][i], beta[i][s])
		}
	}
}

func TestBackwardShapesAgree(t *testing.T) {
	for seed := uint64(1); seed <= 4; seed++ {
		m, obs := randomCase(seed, 3, 4, 12)
		full := BackwardFull(m, obs, 1)

		for index := 1; index <= obs.Len(); index++ {
			indexed := make([]float64, m.NumStates())
			BackwardIndex(m, obs, index, indexed)
			for i := range indexed {
				requireLogClose(t, full[i][index-1], indexed[i], "index %d state %d", index, i)
			}
		}

		stepped := make([]float64, m.NumStates())
		for index := obs.Len(); index >= 1; index-- {
			BackwardNext(m, obs, index, stepped)
			for i := range stepped {
				requireLogClose(t, full[i][index-1], stepped[i], "index %d state %d", index, i)
			}
		}
	}
}

func TestForwardLogZeroPropagation(t *testing.T) {
	// state 1 is unreachable: pi[1] = 0 and no transition leads
	// there, so its alpha entry must stay exactly LZero with no
	// NaN anywhere
	m := &Model{
		Init: DistToLog([]float64{1, 0}),
		Trans: TableToLog([][]float64{
			{1, 0},
			{0.5, 0.5},
		}),
		Emit: TableToLog([][]float64{
			{0.5, 0.5},
			{0.5, 0.5},
		}),
	}
	obs := symbols("0101010101")
	alpha := make([]float64, 2)
	for index := 1; index <= obs.Len(); index++ {
		ForwardNext(m, obs, index, alpha)
		require.False(t, math.IsNaN(alpha[0]))
		require.False(t, math.IsNaN(alpha[1]))
		require.Equal(t, LZero, alpha[1], "index %d", index)
		require.NotEqual(t, LZero, alpha[0], "index %d", index)
	}
}

func TestRecurrenceGuards(t *testing.T) {
	m := testingModel()
	obs := testingObs()

	require.Nil(t, ForwardFull(m, obs, 0))
	require.Nil(t, ForwardFull(m, obs, obs.Len()+1))
	require.Nil(t, BackwardFull(m, obs, 0))
	require.Nil(t, BackwardFull(m, obs, obs.Len()+1))
	require.Nil(t, BackwardFull(m, IntSeq{}, 1))

	sentinel := []float64{42, 42}
	buf := append([]float64{}, sentinel...)
	ForwardIndex(m, obs, 0, buf)
	require.Equal(t, sentinel, buf)
	ForwardIndex(m, obs, obs.Len()+1, buf)
	require.Equal(t, sentinel, buf)
	ForwardNext(m, obs, obs.Len()+1, buf)
	require.Equal(t, sentinel, buf)
	BackwardIndex(m, obs, 0, buf)
	require.Equal(t, sentinel, buf)
	BackwardNext(m, obs, obs.Len()+1, buf)
	require.Equal(t, sentinel, buf)

	// one observation: the backward recurrences have nothing to do
	one := symbols("0")
	BackwardIndex(m, one, 1, buf)
	require.Equal(t, sentinel, buf)
	BackwardNext(m, one, 1, buf)
	require.Equal(t, sentinel, buf)
}

func TestBackwardFullSingleObservation(t *testing.T) {
	m := testingModel()
	beta := BackwardFull(m, symbols("1"), 1)
	require.Equal(t, [][]float64{{0}, {0}}, beta)
}
