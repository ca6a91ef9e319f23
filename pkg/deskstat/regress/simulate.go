package regress

import "math/rand"

// SimConfig parameterizes the errors-in-variables simulation: the true
// relation is y = Intercept + Slope*x, but x is observed as z = x +
// measurement noise. OLS attenuates the slope under such noise; TLS
// does not.
type SimConfig struct {
	Seed       int64
	N          int
	Slope      float64
	Intercept  float64
	XStdDev    float64 // spread of the latent regressor
	NoiseY     float64 // residual noise on y
	NoiseZ     float64 // measurement noise on the observed regressor
}

// Simulate draws a deterministic sample for the given configuration.
// The generator is seeded explicitly so repeated runs feed identical
// numbers to the external plotter.
func Simulate(cfg SimConfig) (z, y []float64) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	z = make([]float64, cfg.N)
	y = make([]float64, cfg.N)
	for i := 0; i < cfg.N; i++ {
		x := rng.NormFloat64() * cfg.XStdDev
		y[i] = cfg.Intercept + cfg.Slope*x + rng.NormFloat64()*cfg.NoiseY
		z[i] = x + rng.NormFloat64()*cfg.NoiseZ
	}
	return z, y
}
