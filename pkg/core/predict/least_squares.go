package predict

import (
	"fmt"
	"math"
)

// LeastSquares fits a single-feature linear regression over the series
// index and extrapolates one step past the end.
type LeastSquares struct{}

func (LeastSquares) Name() string { return KindLeastSquares }

func (LeastSquares) Predict(series []*float64) (float64, error) {
	var xs, ys []float64
	for i, v := range series {
		if v == nil || math.IsNaN(*v) {
			continue
		}
		xs = append(xs, float64(i))
		ys = append(ys, *v)
	}
	if len(xs) < 2 {
		return 0, fmt.Errorf("need at least 2 observations to fit, have %d", len(xs))
	}

	n := float64(len(xs))
	var sumX, sumY, sumXX, sumXY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXX += xs[i] * xs[i]
		sumXY += xs[i] * ys[i]
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, fmt.Errorf("degenerate series: all observations share one index")
	}
	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	next := float64(len(series))
	return intercept + slope*next, nil
}
