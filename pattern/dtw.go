package pattern

import (
	"fmt"
	"math"

	"patternscan/shared"
)

// PathPoint represents a single pairing of indexes on the alignment path
// between two sequences.
type PathPoint struct {
	I int
	J int
}

// Align computes the dynamic time warping distance between the provided
// sequences along with the optimal alignment path, via full dynamic
// programming over the (len(a)+1) x (len(b)+1) cumulative cost grid. The
// sequences may differ in length. The path runs from the first pairing to
// the last; predecessor ties during backtracking resolve to the diagonal,
// then up, then left. Time and space are O(len(a) * len(b)).
func Align(a []float64, b []float64) (float64, []PathPoint, error) {
	n, m := len(a), len(b)
	if n == 0 || m == 0 {
		return 0, nil, fmt.Errorf("%w: cannot align empty sequences (lengths %d and %d)",
			shared.ErrInvalidInput, n, m)
	}

	inf := math.Inf(1)
	grid := make([][]float64, n+1)
	for i := range grid {
		grid[i] = make([]float64, m+1)
	}
	for i := 1; i <= n; i++ {
		grid[i][0] = inf
	}
	for j := 1; j <= m; j++ {
		grid[0][j] = inf
	}

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			cost := math.Abs(a[i-1] - b[j-1])

			best := grid[i-1][j-1]
			if grid[i-1][j] < best {
				best = grid[i-1][j]
			}
			if grid[i][j-1] < best {
				best = grid[i][j-1]
			}

			grid[i][j] = cost + best
		}
	}

	distance := grid[n][m]

	// Backtrack from the terminal cell to the origin, following the
	// predecessor with the minimum cumulative cost.
	path := make([]PathPoint, 0, n+m)
	i, j := n, m
	for {
		path = append(path, PathPoint{I: i - 1, J: j - 1})
		if i == 1 && j == 1 {
			break
		}

		best := inf
		pi, pj := i, j
		if i > 1 && j > 1 && grid[i-1][j-1] < best {
			best = grid[i-1][j-1]
			pi, pj = i-1, j-1
		}
		if i > 1 && grid[i-1][j] < best {
			best = grid[i-1][j]
			pi, pj = i-1, j
		}
		if j > 1 && grid[i][j-1] < best {
			pi, pj = i, j-1
		}

		i, j = pi, pj
	}

	// Reverse the path in place so it runs from the origin.
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}

	return distance, path, nil
}
