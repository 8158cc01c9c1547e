// Package predict holds the optional trend forecasters. A concrete
// Predictor is chosen once, at configuration time, by New; there is no
// runtime capability probing. Forecasts are best effort and never sit on
// a correctness-critical path.
package predict

import (
	"errors"
	"fmt"
)

// ErrDisabled is returned by the disabled predictor.
var ErrDisabled = errors.New("prediction is disabled")

// Predictor forecasts the next value of a period-ordered series. Nil
// elements (unavailable observations) are skipped as training points.
type Predictor interface {
	Name() string
	Predict(series []*float64) (float64, error)
}

// Kinds selectable via configuration.
const (
	KindLeastSquares  = "least_squares"
	KindMovingAverage = "moving_average"
	KindNone          = "none"
)

// New returns the predictor for the configured kind. window only applies
// to the moving-average predictor. An empty kind disables prediction.
func New(kind string, window int) (Predictor, error) {
	switch kind {
	case KindLeastSquares:
		return &LeastSquares{}, nil
	case KindMovingAverage:
		if window <= 0 {
			window = 3
		}
		return &MovingAverage{Window: window}, nil
	case KindNone, "":
		return Disabled{}, nil
	}
	return nil, fmt.Errorf("unknown predictor kind %q", kind)
}

// Disabled is the no-prediction implementation.
type Disabled struct{}

func (Disabled) Name() string { return KindNone }

func (Disabled) Predict(series []*float64) (float64, error) {
	return 0, ErrDisabled
}
