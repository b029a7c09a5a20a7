package domain

import (
	"math"
	"testing"
)

func TestApproxNormCDFAtZero(t *testing.T) {
	if got := ApproxNormCDF(0); got != 0.5 {
		t.Fatalf("Φ(0) = %v, want 0.5", got)
	}
	if got := ApproxNormCDF(math.Copysign(0, -1)); got != 0.5 {
		t.Fatalf("Φ(-0) = %v, want 0.5", got)
	}
}

func TestNormCDFSymmetryAndMonotonicity(t *testing.T) {
	for name, cdf := range map[string]CDF{"approx": ApproxNormCDF, "exact": ExactNormCDF} {
		prev := cdf(-10)
		for x := -10.0; x <= 10; x += 0.01 {
			got := cdf(x)
			if got < prev {
				t.Fatalf("%s: not monotone at %v: %v < %v", name, x, got, prev)
			}
			prev = got
			if diff := math.Abs(cdf(-x) - (1 - got)); diff > 1e-12 {
				t.Fatalf("%s: Φ(-x) != 1-Φ(x) at %v (diff %g)", name, x, diff)
			}
		}
		if lo, hi := cdf(math.Inf(-1)), cdf(math.Inf(1)); lo != 0 || hi != 1 {
			t.Fatalf("%s: tails = %v, %v", name, lo, hi)
		}
	}
}

func TestApproxNormCDFErrorBound(t *testing.T) {
	var worst float64
	for x := -6.0; x <= 6; x += 0.001 {
		if diff := math.Abs(ApproxNormCDF(x) - ExactNormCDF(x)); diff > worst {
			worst = diff
		}
	}
	if worst > 0.005 {
		t.Fatalf("approximation error %v exceeds 0.005", worst)
	}
}

func TestApproxNormCDFPropagatesNaN(t *testing.T) {
	if got := ApproxNormCDF(math.NaN()); !math.IsNaN(got) {
		t.Fatalf("Φ(NaN) = %v", got)
	}
}

func TestCDFByName(t *testing.T) {
	for _, name := range []string{"", CDFApprox, CDFExact} {
		if _, err := CDFByName(name); err != nil {
			t.Fatalf("%q: %v", name, err)
		}
	}
	if _, err := CDFByName("erf"); err == nil {
		t.Fatal("expected error for unknown cdf")
	}
}
