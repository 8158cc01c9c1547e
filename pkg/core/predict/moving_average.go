package predict

import (
	"errors"
	"math"
)

// MovingAverage forecasts the next value as the mean of the last Window
// available observations.
type MovingAverage struct {
	Window int
}

func (MovingAverage) Name() string { return KindMovingAverage }

func (m MovingAverage) Predict(series []*float64) (float64, error) {
	window := m.Window
	if window <= 0 {
		window = 3
	}

	var sum float64
	var count int
	for i := len(series) - 1; i >= 0 && count < window; i-- {
		v := series[i]
		if v == nil || math.IsNaN(*v) {
			continue
		}
		sum += *v
		count++
	}
	if count == 0 {
		return 0, errors.New("series has no available observations")
	}
	return sum / float64(count), nil
}
