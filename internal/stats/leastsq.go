// Package stats holds the small numeric helpers shared by derived-value
// consumers, currently an ordinary least-squares line fit.
package stats

import (
	"errors"
	"fmt"
)

// ErrZeroVariance is returned when the x-values carry no spread, which
// leaves the slope undefined.
var ErrZeroVariance = errors.New("least squares: x values have zero variance")

// Fit is the result of an ordinary least-squares line fit.
type Fit struct {
	Fitted    []float64 // slope*x + intercept for each input x
	Slope     float64
	Intercept float64
}

// LeastSquares fits y = slope*x + intercept over paired samples of equal
// length. It fails explicitly instead of returning NaN when the x-values are
// constant.
func LeastSquares(x, y []float64) (Fit, error) {
	if len(x) != len(y) {
		return Fit{}, fmt.Errorf("least squares: length mismatch: %d x values, %d y values", len(x), len(y))
	}
	if len(x) == 0 {
		return Fit{}, errors.New("least squares: empty input")
	}

	var xBar, yBar float64
	for i := range x {
		xBar += x[i]
		yBar += y[i]
	}
	xBar /= float64(len(x))
	yBar /= float64(len(y))

	var num, den float64
	for i := range x {
		num += (x[i] - xBar) * (y[i] - yBar)
		den += (x[i] - xBar) * (x[i] - xBar)
	}
	if den == 0 {
		return Fit{}, ErrZeroVariance
	}

	slope := num / den
	intercept := yBar - slope*xBar

	fitted := make([]float64, len(x))
	for i := range x {
		fitted[i] = slope*x[i] + intercept
	}
	return Fit{Fitted: fitted, Slope: slope, Intercept: intercept}, nil
}
