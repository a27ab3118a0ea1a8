package pattern

import (
	"fmt"

	"patternscan/shared"
)

// Normalize rescales the provided values to the unit interval using the
// sequence minimum and maximum. A constant sequence normalizes to all zeros.
func Normalize(values []float64) ([]float64, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: cannot normalize an empty sequence", shared.ErrInvalidInput)
	}

	min, max := values[0], values[0]
	for idx := 1; idx < len(values); idx++ {
		if values[idx] < min {
			min = values[idx]
		}
		if values[idx] > max {
			max = values[idx]
		}
	}

	normalized := make([]float64, len(values))
	if max == min {
		return normalized, nil
	}

	scale := max - min
	for idx := range values {
		normalized[idx] = (values[idx] - min) / scale
	}

	return normalized, nil
}
