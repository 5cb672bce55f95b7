package hmm

import "github.com/unixpickle/essentials"

// The trainers run one Baum-Welch re-estimation iteration over
// a single observation sequence, writing the new initial,
// transition, and emission distributions back into the model.
// All three produce the same result and differ only in their
// memory/time operating point:
//
//	TrainFull materializes the full posterior matrices. Simplest
//	and fastest when N, M, and T are all small.
//
//	Train streams the posteriors one time step at a time against
//	the backward checkpoint cache. The general-purpose choice.
//
//	TrainMem re-drives the recurrences from a fresh cache copy
//	per model parameter, trading extra observation sweeps for
//	the smallest possible accumulators.
//
// The re-estimated values are written in log space, initial
// distribution included, so iterations compose directly.
// Sequences shorter than two observations leave the model
// untouched.

// TrainFull re-estimates the model from full gamma (N x T) and
// xi (N x N x T) posterior matrices.
func TrainFull(m *Model, obs Seq) {
	nobs := obs.Len()
	if nobs < 2 {
		return
	}
	n := m.NumStates()
	nsym := m.NumSymbols()

	gam := GammaFull(m, obs)
	probs := XiFull(m, obs)

	for i := 0; i < n; i++ {
		m.Init[i] = gam[i][0]
	}

	sentinel := essentials.MaxInt(nsym, n)
	for i := 0; i < sentinel; i++ {
		for j := 0; j < n; j++ {
			numE, denE := LZero, LZero
			numT, denT := LZero, LZero
			for s := 0; s < nobs-1; s++ {
				if i < nsym {
					if obs.At(s) == i {
						numE = ElnSum(numE, gam[j][s])
					}
					denE = ElnSum(denE, gam[j][s])
				}
				if i < n {
					numT = ElnSum(numT, probs[i][j][s])
					denT = ElnSum(denT, gam[i][s])
				}
			}
			if i < nsym {
				m.Emit[j][i] = elnDiv(numE, denE)
			}
			if i < n {
				m.Trans[i][j] = elnDiv(numT, denT)
			}
		}
	}
}

// Train re-estimates the model by streaming gamma and xi one
// time step at a time: a BackCache feeds beta vectors in
// increasing-time order while ForwardNext advances alpha, so
// peak memory is the cache's O(N*sqrt(T)) plus N x N and N x M
// accumulators regardless of sequence length.
func Train(m *Model, obs Seq) {
	nobs := obs.Len()
	if nobs < 2 {
		return
	}
	n := m.NumStates()
	nsym := m.NumSymbols()
	sentinel := essentials.MaxInt(nsym, n)

	gam := make([]float64, n)
	alphaG := make([]float64, n)
	alphaX := make([]float64, n)
	probs := make([][]float64, n)
	numT := make([][]float64, n)
	denT := make([][]float64, n)
	numE := make([][]float64, nsym)
	denE := make([][]float64, nsym)
	for i := 0; i < sentinel; i++ {
		if i < n {
			probs[i] = make([]float64, n)
			numT[i] = lzeroVec(n)
			denT[i] = lzeroVec(n)
		}
		if i < nsym {
			numE[i] = lzeroVec(n)
			denE[i] = lzeroVec(n)
		}
	}

	cache := NewBackCache(m, obs)
	beta := cache.Next()
	if beta == nil {
		return
	}
	Gamma(m, obs, 1, beta, alphaG, gam)

	// xi's beta stream runs one time step ahead of gamma's.
	beta = cache.Next()
	if beta == nil {
		return
	}
	Xi(m, obs, 1, beta, alphaX, probs)

	for y := 0; y < n; y++ {
		m.Init[y] = gam[y]
	}

	s := 0
	for {
		for i := 0; i < sentinel; i++ {
			for j := 0; j < n; j++ {
				if i < nsym {
					if obs.At(s) == i {
						numE[i][j] = ElnSum(numE[i][j], gam[j])
					}
					denE[i][j] = ElnSum(denE[i][j], gam[j])
				}
				if i < n {
					numT[i][j] = ElnSum(numT[i][j], probs[i][j])
					denT[i][j] = ElnSum(denT[i][j], gam[i])
				}
			}
		}
		s++
		if s == nobs-1 {
			break
		}
		Gamma(m, obs, s+1, beta, alphaG, gam)
		beta = cache.Next()
		if beta == nil {
			// the cache drained before the stream finished,
			// which means a shape invariant is broken; abandon
			// the iteration
			return
		}
		Xi(m, obs, s+1, beta, alphaX, probs)
	}

	for i := 0; i < sentinel; i++ {
		for j := 0; j < n; j++ {
			if i < nsym {
				m.Emit[j][i] = elnDiv(numE[i][j], denE[i][j])
			}
			if i < n {
				m.Trans[i][j] = elnDiv(numT[i][j], denT[i][j])
			}
		}
	}
}

// TrainMem re-estimates the model while holding only scalar
// accumulators: every target parameter (i, j) re-drives the
// posterior stream from its own copies of the pristine cache.
// The extra observation sweeps buy the smallest working set of
// the three trainers.
func TrainMem(m *Model, obs Seq) {
	nobs := obs.Len()
	if nobs < 2 {
		return
	}
	n := m.NumStates()
	nsym := m.NumSymbols()

	// Parameters are written back per pair while later pairs
	// still need the pre-iteration model, so all reads go
	// through a frozen copy.
	frozen := m.Clone()
	cache := NewBackCache(frozen, obs)

	gam := make([]float64, n)
	probs := make([][]float64, n)
	for i := range probs {
		probs[i] = make([]float64, n)
	}

	sentinel := essentials.MaxInt(nsym, n)
	for i := 0; i < sentinel; i++ {
		for j := 0; j < n; j++ {
			numE, denE := LZero, LZero
			numT, denT := LZero, LZero
			gcache := cache.Clone()
			alphaG := make([]float64, n)

			if i < n {
				xcache := cache.Clone()
				alphaX := make([]float64, n)
				beta := xcache.Next() // xi's stream starts one step ahead
				if beta == nil {
					return
				}
				for s := 0; s < nobs-1; s++ {
					gbeta := gcache.Next()
					if gbeta == nil {
						return
					}
					Gamma(frozen, obs, s+1, gbeta, alphaG, gam)

					if i == 0 && j == 0 && s == 0 {
						for y := 0; y < n; y++ {
							m.Init[y] = gam[y]
						}
					}

					if i < nsym {
						if obs.At(s) == i {
							numE = ElnSum(numE, gam[j])
						}
						denE = ElnSum(denE, gam[j])
					}

					beta = xcache.Next()
					if beta == nil {
						return
					}
					Xi(frozen, obs, s+1, beta, alphaX, probs)
					numT = ElnSum(numT, probs[i][j])
					denT = ElnSum(denT, gam[i])
				}
				if i < nsym {
					m.Emit[j][i] = elnDiv(numE, denE)
				}
				m.Trans[i][j] = elnDiv(numT, denT)
			} else {
				// no transition target at this i, so skip the
				// xi stream and its cache copy entirely
				for s := 0; s < nobs-1; s++ {
					gbeta := gcache.Next()
					if gbeta == nil {
						return
					}
					Gamma(frozen, obs, s+1, gbeta, alphaG, gam)
					if obs.At(s) == i {
						numE = ElnSum(numE, gam[j])
					}
					denE = ElnSum(denE, gam[j])
				}
				m.Emit[j][i] = elnDiv(numE, denE)
			}
		}
	}
}
