package hmm

// XiFull computes the pairwise posteriors xi[i][j][s] =
// log P(q_s = i, q_{s+1} = j | O, model) for s in [0, T-2] from
// full forward and backward matrices. The result is N x N x T;
// the final column is never written and must not be read. Each
// written column sums to one in probability over all (i, j).
//
// Returns nil for an empty observation sequence.
func XiFull(m *Model, obs Seq) [][][]float64 {
	nobs := obs.Len()
	if nobs < 1 {
		return nil
	}
	n := m.NumStates()
	alpha := ForwardFull(m, obs, nobs)
	beta := BackwardFull(m, obs, 1)

	probs := make([][][]float64, n)
	for i := range probs {
		probs[i] = make([][]float64, n)
		for j := range probs[i] {
			probs[i][j] = make([]float64, nobs)
		}
	}
	for s := 0; s < nobs-1; s++ {
		normalizer := LZero
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				probs[i][j][s] = ElnProduct(alpha[i][s],
					ElnProduct(m.Trans[i][j],
						ElnProduct(m.Emit[j][obs.At(s+1)], beta[j][s+1])))
				normalizer = ElnSum(normalizer, probs[i][j][s])
			}
		}
		if normalizer != LZero {
			for k := 0; k < n; k++ {
				for l := 0; l < n; l++ {
					probs[k][l][s] = ElnProduct(probs[k][l][s], -normalizer)
				}
			}
		}
	}
	return probs
}

// Xi computes the N x N pairwise posterior for times index-1
// and index into probs. beta must hold the backward variables
// for time index. alpha is forward scratch advanced through
// ForwardNext, so a run of calls must share the buffer and use
// ascending indexes starting at 1.
//
// An index outside [1, obs.Len()-1] leaves probs untouched.
func Xi(m *Model, obs Seq, index int, beta, alpha []float64, probs [][]float64) {
	if index < 1 || index >= obs.Len() {
		return
	}
	ForwardNext(m, obs, index, alpha)

	n := m.NumStates()
	normalizer := LZero
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			probs[i][j] = ElnProduct(alpha[i],
				ElnProduct(m.Trans[i][j],
					ElnProduct(m.Emit[j][obs.At(index)], beta[j])))
			normalizer = ElnSum(normalizer, probs[i][j])
		}
	}
	if normalizer != LZero {
		for k := 0; k < n; k++ {
			for l := 0; l < n; l++ {
				probs[k][l] = ElnProduct(probs[k][l], -normalizer)
			}
		}
	}
}
