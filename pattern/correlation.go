package pattern

import "math"

// Correlation computes the Pearson correlation coefficient between the
// provided sequences over their common length. A sequence with zero
// variance yields zero rather than an undefined coefficient.
func Correlation(a []float64, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}

	var meanA, meanB float64
	for idx := 0; idx < n; idx++ {
		meanA += a[idx]
		meanB += b[idx]
	}
	meanA /= float64(n)
	meanB /= float64(n)

	var covariance, varianceA, varianceB float64
	for idx := 0; idx < n; idx++ {
		diffA := a[idx] - meanA
		diffB := b[idx] - meanB
		covariance += diffA * diffB
		varianceA += diffA * diffA
		varianceB += diffB * diffB
	}

	denominator := math.Sqrt(varianceA * varianceB)
	if denominator == 0 {
		return 0
	}

	return covariance / denominator
}
