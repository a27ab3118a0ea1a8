package pattern

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/peterldowns/testy/assert"

	"patternscan/shared"
)

func TestNormalize(t *testing.T) {
	// Ensure an empty sequence is rejected as invalid input.
	_, err := Normalize([]float64{})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	// Ensure a non-constant sequence rescales to span the unit interval.
	values := []float64{4, 10, 7, 2, 8}
	normalized, err := Normalize(values)
	assert.NoError(t, err)
	assert.Equal(t, len(normalized), len(values))

	min, max := normalized[0], normalized[0]
	for idx := range normalized {
		if normalized[idx] < min {
			min = normalized[idx]
		}
		if normalized[idx] > max {
			max = normalized[idx]
		}
	}
	assert.Equal(t, min, float64(0))
	assert.Equal(t, max, float64(1))

	// Ensure normalizing is a fixed point for values already in the unit
	// interval spanning it.
	again, err := Normalize(normalized)
	assert.NoError(t, err)
	if diff := cmp.Diff(normalized, again); diff != "" {
		t.Errorf("normalize fixed point mismatch (-want +got):\n%s", diff)
	}

	// Ensure a constant sequence normalizes to all zeros.
	constant, err := Normalize([]float64{10, 10, 10, 10})
	assert.NoError(t, err)
	if diff := cmp.Diff([]float64{0, 0, 0, 0}, constant); diff != "" {
		t.Errorf("constant sequence mismatch (-want +got):\n%s", diff)
	}

	// Ensure a single element sequence normalizes to zero.
	single, err := Normalize([]float64{42})
	assert.NoError(t, err)
	assert.Equal(t, single[0], float64(0))
}
