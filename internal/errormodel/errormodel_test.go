package errormodel

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pv/radarsim/internal/units"
)

func TestConstantModel(t *testing.T) {
	m := Model{Kind: Constant, Value: 0.1, Dimension: units.Decibels}
	q, err := m.Eval(123, nil)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if q.Value != 0.1 {
		t.Errorf("Eval = %v, want 0.1", q.Value)
	}
}

func TestLinearModel(t *testing.T) {
	m := Model{Kind: Linear, Value: 1, Rate: 2, Dimension: units.Seconds}
	q, _ := m.Eval(3, nil)
	if q.Value != 7 {
		t.Errorf("Eval(3) = %v, want 7", q.Value)
	}
}

func TestSinusoidalModel(t *testing.T) {
	m := Model{Kind: Sinusoidal, Amplitude: 2, FrequencyHz: 1, PhaseRad: 0, Dimension: units.Degrees}
	q, _ := m.Eval(0.25, nil) // quarter period -> sin(2*pi*0.25) = sin(pi/2) = 1
	if math.Abs(q.Value-2) > 1e-9 {
		t.Errorf("Eval(0.25) = %v, want 2", q.Value)
	}
}

func TestGaussianRequiresRNG(t *testing.T) {
	m := Model{Kind: Gaussian, Sigma: 1e-9, Dimension: units.Seconds}
	if _, err := m.Eval(0, nil); err == nil {
		t.Fatalf("expected error without rng")
	}
}

func TestGaussianEmpiricalStdDev(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	m := Model{Kind: Gaussian, Sigma: 1e-9, Dimension: units.Seconds}
	const n = 10000
	var sum, sumSq float64
	for i := 0; i < n; i++ {
		q, err := m.Eval(0, rng)
		if err != nil {
			t.Fatalf("Eval: %v", err)
		}
		sum += q.Value
		sumSq += q.Value * q.Value
	}
	mean := sum / n
	variance := sumSq/n - mean*mean
	std := math.Sqrt(variance)
	if math.Abs(std-1e-9) > 0.05e-9 {
		t.Errorf("empirical std = %v, want within 5%% of 1e-9", std)
	}
}

func TestPairAddsSystematicAndArbitrary(t *testing.T) {
	p := Pair{
		Systematic: Model{Kind: Constant, Value: 1, Dimension: units.Seconds},
		Arbitrary:  Model{Kind: Constant, Value: 2, Dimension: units.Seconds},
	}
	q, err := p.Eval(0, nil)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if q.Value != 3 {
		t.Errorf("Eval = %v, want 3", q.Value)
	}
}
