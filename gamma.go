package hmm

// GammaFull computes the state posteriors gamma[i][s] =
// log P(q_s = i | O, model) for every time step from full
// forward and backward matrices. The returned matrix is N x T
// and each column sums to one in probability; memory is
// O(N * T).
//
// Returns nil for an empty observation sequence.
func GammaFull(m *Model, obs Seq) [][]float64 {
	nobs := obs.Len()
	if nobs < 1 {
		return nil
	}
	n := m.NumStates()
	alpha := ForwardFull(m, obs, nobs)
	beta := BackwardFull(m, obs, 1)

	gam := make([][]float64, n)
	for i := range gam {
		gam[i] = make([]float64, nobs)
	}
	for s := 0; s < nobs; s++ {
		normalizer := LZero
		for i := 0; i < n; i++ {
			gam[i][s] = ElnProduct(alpha[i][s], beta[i][s])
			normalizer = ElnSum(normalizer, gam[i][s])
		}
		if normalizer != LZero {
			for j := 0; j < n; j++ {
				gam[j][s] = ElnProduct(gam[j][s], -normalizer)
			}
		}
	}
	return gam
}

// GammaFullMinMem computes the same posteriors as GammaFull
// from two rolling vectors, recomputing the backward variables
// at every time step. Time grows quadratically in obs.Len();
// extra memory stays at O(N).
func GammaFullMinMem(m *Model, obs Seq) [][]float64 {
	nobs := obs.Len()
	if nobs < 1 {
		return nil
	}
	n := m.NumStates()
	alpha := make([]float64, n)
	beta := make([]float64, n)

	gam := make([][]float64, n)
	for i := range gam {
		gam[i] = make([]float64, nobs)
	}
	for s := 0; s < nobs; s++ {
		ForwardNext(m, obs, s+1, alpha)
		BackwardIndex(m, obs, s+1, beta)

		normalizer := LZero
		for i := 0; i < n; i++ {
			gam[i][s] = ElnProduct(alpha[i], beta[i])
			normalizer = ElnSum(normalizer, gam[i][s])
		}
		if normalizer != LZero {
			for j := 0; j < n; j++ {
				gam[j][s] = ElnProduct(gam[j][s], -normalizer)
			}
		}
	}
	return gam
}

// Gamma computes the length-N state posterior for time index-1
// into gam. beta must hold the backward variables for time
// index-1. alpha is forward scratch advanced through
// ForwardNext, so a run of calls must share the buffer and use
// ascending indexes starting at 1.
//
// An index outside [1, obs.Len()] leaves gam untouched.
func Gamma(m *Model, obs Seq, index int, beta, alpha, gam []float64) {
	if index < 1 || index > obs.Len() {
		return
	}
	ForwardNext(m, obs, index, alpha)

	n := m.NumStates()
	normalizer := LZero
	for i := 0; i < n; i++ {
		gam[i] = ElnProduct(alpha[i], beta[i])
		normalizer = ElnSum(normalizer, gam[i])
	}
	if normalizer != LZero {
		for j := 0; j < n; j++ {
			gam[j] = ElnProduct(gam[j], -normalizer)
		}
	}
}
