package regress

import (
	"math"
	"testing"
)

func TestCollinearDataRecoversSlopeExactly(t *testing.T) {
	z := []float64{1, 2, 3, 4, 5}
	beta := 2.5
	y := make([]float64, len(z))
	for i, v := range z {
		y[i] = beta * v
	}

	ols, err := OLS(z, y)
	if err != nil {
		t.Fatal(err)
	}
	tls, err := TLS(z, y)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(ols.Slope-beta) > 1e-12 {
		t.Errorf("OLS slope = %f, want %f", ols.Slope, beta)
	}
	if math.Abs(tls.Slope-beta) > 1e-12 {
		t.Errorf("TLS slope = %f, want %f", tls.Slope, beta)
	}
	if math.Abs(ols.Intercept) > 1e-12 || math.Abs(tls.Intercept) > 1e-12 {
		t.Errorf("intercepts should be 0, got ols=%f tls=%f", ols.Intercept, tls.Intercept)
	}
}

func TestOLSKnownValues(t *testing.T) {
	// y = 1 + 2z with one off-line point pulling the fit.
	z := []float64{0, 1, 2, 3}
	y := []float64{1, 3, 5, 8}

	fit, err := OLS(z, y)
	if err != nil {
		t.Fatal(err)
	}
	// slope = Cov(Y,Z)/Var(Z) = 11.5/5 = 2.3, intercept = 4.25 - 2.3*1.5.
	if math.Abs(fit.Slope-2.3) > 1e-12 {
		t.Errorf("slope = %f, want 2.3", fit.Slope)
	}
	if math.Abs(fit.Intercept-0.8) > 1e-12 {
		t.Errorf("intercept = %f, want 0.8", fit.Intercept)
	}
}

func TestTLSAttenuationContrast(t *testing.T) {
	cfg := SimConfig{
		Seed:      42,
		N:         2000,
		Slope:     2,
		Intercept: 1,
		XStdDev:   1,
		NoiseY:    0.1,
		NoiseZ:    1, // heavy measurement error on the regressor
	}
	z, y := Simulate(cfg)

	ols, err := OLS(z, y)
	if err != nil {
		t.Fatal(err)
	}
	tls, err := TLS(z, y)
	if err != nil {
		t.Fatal(err)
	}

	// With equal signal and noise variance OLS attenuates toward half
	// the true slope; TLS should land much closer to it.
	if ols.Slope > 1.5 {
		t.Errorf("expected attenuated OLS slope, got %f", ols.Slope)
	}
	if math.Abs(tls.Slope-cfg.Slope) > math.Abs(ols.Slope-cfg.Slope) {
		t.Errorf("TLS (%f) should beat OLS (%f) at recovering slope %f", tls.Slope, ols.Slope, cfg.Slope)
	}
}

func TestEstimatorsDeterministic(t *testing.T) {
	z, y := Simulate(SimConfig{Seed: 7, N: 100, Slope: 1, XStdDev: 1, NoiseY: 0.5, NoiseZ: 0.5})
	z2, y2 := Simulate(SimConfig{Seed: 7, N: 100, Slope: 1, XStdDev: 1, NoiseY: 0.5, NoiseZ: 0.5})

	for i := range z {
		if z[i] != z2[i] || y[i] != y2[i] {
			t.Fatal("same seed must reproduce the identical sample")
		}
	}

	a, _ := OLS(z, y)
	b, _ := OLS(z, y)
	if a != b {
		t.Error("OLS must be deterministic")
	}
	c, _ := TLS(z, y)
	d, _ := TLS(z, y)
	if c != d {
		t.Error("TLS must be deterministic")
	}
}

func TestDegenerateInputs(t *testing.T) {
	if _, err := OLS([]float64{1, 2}, []float64{1}); err == nil {
		t.Error("length mismatch must error")
	}
	if _, err := OLS([]float64{1}, []float64{1}); err == nil {
		t.Error("single observation must error")
	}
	if _, err := OLS([]float64{3, 3, 3}, []float64{1, 2, 3}); err == nil {
		t.Error("zero-variance regressor must error")
	}
	if _, err := TLS([]float64{3, 3, 3}, []float64{1, 2, 3}); err == nil {
		t.Error("vertical principal axis must error")
	}
}
