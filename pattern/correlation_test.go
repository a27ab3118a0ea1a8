package pattern

import (
	"math"
	"testing"

	"github.com/peterldowns/testy/assert"
)

func TestCorrelation(t *testing.T) {
	// Ensure a perfectly linear relationship yields one.
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{2, 4, 6, 8, 10}
	assert.True(t, math.Abs(Correlation(a, b)-1) < 1e-12)

	// Ensure a perfectly inverse relationship yields negative one.
	inverse := []float64{10, 8, 6, 4, 2}
	assert.True(t, math.Abs(Correlation(a, inverse)+1) < 1e-12)

	// Ensure a zero variance sequence yields zero rather than NaN.
	constant := []float64{7, 7, 7, 7, 7}
	coefficient := Correlation(a, constant)
	assert.Equal(t, coefficient, float64(0))
	assert.False(t, math.IsNaN(coefficient))

	// Ensure empty input yields zero.
	assert.Equal(t, Correlation(nil, nil), float64(0))

	// Ensure the coefficient stays within bounds for uncorrelated data.
	c := []float64{0.3, 0.9, 0.1, 0.7, 0.5}
	d := []float64{0.8, 0.2, 0.6, 0.4, 0.9}
	coefficient = Correlation(c, d)
	assert.True(t, coefficient >= -1 && coefficient <= 1)
}
