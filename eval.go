package hmm

// EvalP returns the linear-space probability that the model
// produced the observation sequence: the extended exp of the
// extended-log sum over the final forward column. An impossible
// sequence yields 0.
//
// Fewer than two observations returns the LZero sentinel.
func EvalP(m *Model, obs Seq) float64 {
	if obs.Len() < 2 {
		return LZero
	}
	alpha := make([]float64, m.NumStates())
	ForwardIndex(m, obs, obs.Len(), alpha)

	enlp := LZero
	for _, a := range alpha {
		enlp = ElnSum(enlp, a)
	}
	return Eexp(enlp)
}
