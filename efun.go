package hmm

import "math"

// LZero is the extended-log representation of probability zero.
// It is the positive infinity of float64, is distinct from NaN,
// and is closed under ElnSum and ElnProduct.
var LZero = math.Inf(1)

// ElnSum computes log(exp(x) + exp(y)) in the extended-log
// domain. The larger argument is factored out, so the result is
// stable even when both probabilities underflow linear space.
func ElnSum(x, y float64) float64 {
	if x == LZero {
		if y == LZero {
			return LZero
		}
		return y
	} else if y == LZero {
		return x
	}
	if x > y {
		return x + math.Log1p(math.Exp(y-x))
	}
	return y + math.Log1p(math.Exp(x-y))
}

// ElnProduct computes log(exp(x) * exp(y)) in the extended-log
// domain.
func ElnProduct(x, y float64) float64 {
	if x == LZero || y == LZero {
		return LZero
	}
	return x + y
}

// Eln converts a linear-space probability to the extended-log
// domain.
func Eln(x float64) float64 {
	if x == 0 {
		return LZero
	}
	return math.Log(x)
}

// Eexp converts an extended-log value back to linear space.
func Eexp(x float64) float64 {
	if x == LZero {
		return 0
	}
	return math.Exp(x)
}

// DistToLog converts a linear-space distribution to a new
// extended-log slice.
func DistToLog(dist []float64) []float64 {
	res := make([]float64, len(dist))
	for i, p := range dist {
		res[i] = Eln(p)
	}
	return res
}

// TableToLog converts a linear-space probability table to a new
// extended-log table.
func TableToLog(table [][]float64) [][]float64 {
	res := make([][]float64, len(table))
	for i, row := range table {
		res[i] = DistToLog(row)
	}
	return res
}

// elnDiv divides two extended-log values. A log-zero
// denominator yields log zero, so -LZero never reaches the
// kernel.
func elnDiv(x, y float64) float64 {
	if y == LZero {
		return LZero
	}
	return ElnProduct(x, -y)
}

// lgt reports whether x is strictly more probable than y, with
// LZero ordered below every finite log probability.
func lgt(x, y float64) bool {
	if x == LZero {
		return false
	}
	if y == LZero {
		return true
	}
	return x > y
}
