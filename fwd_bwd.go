package hmm

// This file holds the forward and backward recurrences in their
// three shapes: full-history matrices, a single indexed column,
// and an in-place single step. All three of each pair produce
// identical values for the same inputs; they differ only in how
// much memory they keep live.

// ForwardFull computes the forward variables for every time
// step before index: alpha[j][s] = log P(O_0..O_s, q_s = j) for
// s < index. The returned matrix is N x index.
//
// An index outside [1, obs.Len()] returns nil.
func ForwardFull(m *Model, obs Seq, index int) [][]float64 {
	if index < 1 || index > obs.Len() {
		return nil
	}
	n := m.NumStates()
	alpha := make([][]float64, n)
	for i := range alpha {
		alpha[i] = make([]float64, index)
		alpha[i][0] = ElnProduct(m.Init[i], m.Emit[i][obs.At(0)])
	}
	for s := 1; s < index; s++ {
		for j := 0; j < n; j++ {
			tmp := LZero
			for k := 0; k < n; k++ {
				tmp = ElnSum(tmp, ElnProduct(alpha[k][s-1], m.Trans[k][j]))
			}
			alpha[j][s] = ElnProduct(tmp, m.Emit[j][obs.At(s)])
		}
	}
	return alpha
}

// ForwardIndex computes the forward variables for time index-1
// into the caller-supplied length-N buffer, using two rolling
// vectors of scratch.
//
// An index outside [1, obs.Len()] leaves alpha untouched.
func ForwardIndex(m *Model, obs Seq, index int, alpha []float64) {
	if index < 1 || index > obs.Len() {
		return
	}
	n := m.NumStates()
	lcl := [2][]float64{make([]float64, n), make([]float64, n)}
	for i := 0; i < n; i++ {
		lcl[0][i] = ElnProduct(m.Init[i], m.Emit[i][obs.At(0)])
	}
	active, passive := 0, 1
	for s := 1; s < index; s++ {
		for j := 0; j < n; j++ {
			tmp := LZero
			for k := 0; k < n; k++ {
				tmp = ElnSum(tmp, ElnProduct(lcl[active][k], m.Trans[k][j]))
			}
			lcl[passive][j] = ElnProduct(tmp, m.Emit[j][obs.At(s)])
		}
		active, passive = passive, active
	}
	copy(alpha, lcl[active])
}

// ForwardNext advances a forward vector one time step in place:
// on entry alpha holds the variables for time index-2, on return
// for time index-1. index == 1 reinitializes alpha from the
// initial distribution, so callers drive it with index ascending
// from 1.
//
// An index outside [1, obs.Len()] leaves alpha untouched.
func ForwardNext(m *Model, obs Seq, index int, alpha []float64) {
	if index < 1 || index > obs.Len() {
		return
	}
	n := m.NumStates()
	if index == 1 {
		for i := 0; i < n; i++ {
			alpha[i] = ElnProduct(m.Init[i], m.Emit[i][obs.At(0)])
		}
		return
	}
	lcl := append([]float64{}, alpha...)
	for j := 0; j < n; j++ {
		tmp := LZero
		for k := 0; k < n; k++ {
			tmp = ElnSum(tmp, ElnProduct(lcl[k], m.Trans[k][j]))
		}
		alpha[j] = ElnProduct(tmp, m.Emit[j][obs.At(index-1)])
	}
}

// BackwardFull computes the backward variables for every time
// step from index-1 on: beta[i][s] = log P(O_{s+1}..O_{T-1} |
// q_s = i). The returned matrix is N x T; columns before
// index-1 are left at zero, and for a single observation the
// result is the lone log-1 column.
//
// Returns nil when obs is empty or index is outside
// [1, obs.Len()].
func BackwardFull(m *Model, obs Seq, index int) [][]float64 {
	nobs := obs.Len()
	if nobs < 1 || index < 1 || index > nobs {
		return nil
	}
	n := m.NumStates()
	beta := make([][]float64, n)
	for i := range beta {
		beta[i] = make([]float64, nobs)
	}
	for s := nobs - 1; s >= index; s-- {
		for j := 0; j < n; j++ {
			tmp := LZero
			for k := 0; k < n; k++ {
				tmp = ElnSum(tmp, ElnProduct(m.Trans[j][k],
					ElnProduct(m.Emit[k][obs.At(s)], beta[k][s])))
			}
			beta[j][s-1] = tmp
		}
	}
	return beta
}

// BackwardIndex computes the backward variables for time
// index-1 into the caller-supplied length-N buffer, using two
// rolling vectors of scratch.
//
// Fewer than two observations, or an index outside
// [1, obs.Len()], leaves beta untouched.
func BackwardIndex(m *Model, obs Seq, index int, beta []float64) {
	nobs := obs.Len()
	if nobs < 2 || index < 1 || index > nobs {
		return
	}
	n := m.NumStates()
	lcl := [2][]float64{make([]float64, n), make([]float64, n)}
	active, passive := 0, 1
	for s := nobs - 1; s >= index; s-- {
		for j := 0; j < n; j++ {
			tmp := LZero
			for k := 0; k < n; k++ {
				tmp = ElnSum(tmp, ElnProduct(m.Trans[j][k],
					ElnProduct(m.Emit[k][obs.At(s)], lcl[active][k])))
			}
			lcl[passive][j] = tmp
		}
		active, passive = passive, active
	}
	copy(beta, lcl[active])
}

// BackwardNext steps a backward vector one time step earlier in
// place: on entry beta holds the variables for time index, on
// return for time index-1. index == obs.Len() initializes beta
// to log 1, so callers drive it with index descending from
// obs.Len().
//
// Fewer than two observations, or an index outside
// [1, obs.Len()], leaves beta untouched.
func BackwardNext(m *Model, obs Seq, index int, beta []float64) {
	nobs := obs.Len()
	if nobs < 2 || index < 1 || index > nobs {
		return
	}
	n := m.NumStates()
	if index == nobs {
		for i := 0; i < n; i++ {
			beta[i] = 0
		}
		return
	}
	lcl := append([]float64{}, beta...)
	for j := 0; j < n; j++ {
		tmp := LZero
		for k := 0; k < n; k++ {
			tmp = ElnSum(tmp, ElnProduct(m.Trans[j][k],
				ElnProduct(m.Emit[k][obs.At(index)], lcl[k])))
		}
		beta[j] = tmp
	}
}
