package hmm

// Viterbi decodes a state index for each observation, pushing
// them through emit in time order on two rolling delta buffers.
//
// Each emitted index is the argmax of the delta recurrence at
// its own time step, not the endpoint of a backtracked global
// path; for models where the locally best state ever leaves the
// globally optimal path the two decodings differ. Log-zero
// entries never win the argmax.
func Viterbi(m *Model, obs Seq, emit func(state int)) {
	nobs := obs.Len()
	if nobs < 1 {
		return
	}
	n := m.NumStates()
	delta := [2][]float64{make([]float64, n), make([]float64, n)}

	index := 0
	for i := 0; i < n; i++ {
		delta[0][i] = ElnProduct(m.Init[i], m.Emit[i][obs.At(0)])
		if lgt(delta[0][i], delta[0][index]) {
			index = i
		}
	}
	emit(index)

	active, passive := 0, 1
	for s := 1; s < nobs; s++ {
		index = 0
		for j := 0; j < n; j++ {
			mx := ElnProduct(delta[active][0], m.Trans[0][j])
			for k := 1; k < n; k++ {
				if tmp := ElnProduct(delta[active][k], m.Trans[k][j]); lgt(tmp, mx) {
					mx = tmp
				}
			}
			delta[passive][j] = ElnProduct(mx, m.Emit[j][obs.At(s)])
			if lgt(delta[passive][j], delta[passive][index]) {
				index = j
			}
		}
		emit(index)
		active, passive = passive, active
	}
}
