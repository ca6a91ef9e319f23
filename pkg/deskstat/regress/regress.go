// Package regress implements the closed-form ordinary and total least
// squares slope estimators used by the errors-in-variables
// demonstration. Both are pure functions: identical input gives
// identical output on every call.
package regress

import (
	"fmt"
	"math"

	"github.com/quantpress/deskstat/pkg/deskstat/internalerr"
)

// Fit is an estimated line y = Intercept + Slope*z.
type Fit struct {
	Slope     float64
	Intercept float64
}

// OLS estimates the line minimizing squared vertical residuals:
// slope = Cov(Y,Z)/Var(Z), intercept = mean(Y) - slope*mean(Z).
func OLS(z, y []float64) (Fit, error) {
	if err := checkPairs(z, y); err != nil {
		return Fit{}, err
	}
	mz, my := mean(z), mean(y)

	var szz, szy float64
	for i := range z {
		dz := z[i] - mz
		szz += dz * dz
		szy += dz * (y[i] - my)
	}
	if szz == 0 {
		return Fit{}, fmt.Errorf("ols: regressor has zero variance: %w", internalerr.ErrInvalidInput)
	}

	slope := szy / szz
	return Fit{Slope: slope, Intercept: my - slope*mz}, nil
}

// TLS estimates the line minimizing squared perpendicular residuals,
// taken from the dominant principal-component direction of the centered
// (Z, Y) sample. The intercept convention matches OLS.
func TLS(z, y []float64) (Fit, error) {
	if err := checkPairs(z, y); err != nil {
		return Fit{}, err
	}
	mz, my := mean(z), mean(y)

	var szz, syy, szy float64
	for i := range z {
		dz := z[i] - mz
		dy := y[i] - my
		szz += dz * dz
		syy += dy * dy
		szy += dz * dy
	}
	if szz == 0 && syy == 0 {
		return Fit{}, fmt.Errorf("tls: sample is a single point: %w", internalerr.ErrInvalidInput)
	}

	// Largest eigenvalue of the 2x2 scatter matrix [[szz, szy], [szy, syy]].
	lambda := (szz + syy + math.Sqrt((szz-syy)*(szz-syy)+4*szy*szy)) / 2

	var slope float64
	switch {
	case szy != 0:
		// Eigenvector (szy, lambda - szz); slope is its direction.
		slope = (lambda - szz) / szy
	case szz >= syy:
		slope = 0 // principal axis is horizontal
	default:
		return Fit{}, fmt.Errorf("tls: principal axis is vertical, slope undefined: %w", internalerr.ErrInvalidInput)
	}

	return Fit{Slope: slope, Intercept: my - slope*mz}, nil
}

func checkPairs(z, y []float64) error {
	if len(z) != len(y) {
		return fmt.Errorf("sample length mismatch %d != %d: %w", len(z), len(y), internalerr.ErrInvalidInput)
	}
	if len(z) < 2 {
		return fmt.Errorf("need at least 2 observations, have %d: %w", len(z), internalerr.ErrInvalidInput)
	}
	return nil
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
