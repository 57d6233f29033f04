// Package errormodel implements the four parametric error generators
// (§4.4): constant, linear, sinusoidal and Gaussian. Every variant
// shares one evaluation contract so callers never branch on kind
// (design notes, "error-model polymorphism").
package errormodel

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/pv/radarsim/internal/units"
)

// Kind tags which error family a Model implements.
type Kind int

const (
	Constant Kind = iota
	Linear
	Sinusoidal
	Gaussian
)

// Model is a tagged-union error generator. Deterministic variants
// (Constant, Linear, Sinusoidal) are pure functions of time; Gaussian
// draws one sample per Eval call from rng.
type Model struct {
	Kind      Kind
	Dimension units.Dimension

	// Constant
	Value float64
	// Linear: value = Value + Rate*t
	Rate float64
	// Sinusoidal: value = Amplitude*sin(2*pi*FrequencyHz*t + PhaseRad)
	Amplitude   float64
	FrequencyHz float64
	PhaseRad    float64
	// Gaussian: value ~ Normal(0, Sigma)
	Sigma float64
}

// Eval returns the error quantity at time t. rng is required (and
// consulted) only for the Gaussian kind; pass nil for deterministic
// models.
func (m Model) Eval(t float64, rng *rand.Rand) (units.Quantity, error) {
	switch m.Kind {
	case Constant:
		return units.Q(m.Value, m.Dimension), nil
	case Linear:
		return units.Q(m.Value+m.Rate*t, m.Dimension), nil
	case Sinusoidal:
		v := m.Amplitude * math.Sin(2*math.Pi*m.FrequencyHz*t+m.PhaseRad)
		return units.Q(v, m.Dimension), nil
	case Gaussian:
		if rng == nil {
			return units.Quantity{}, fmt.Errorf("errormodel: gaussian model requires a seeded random source")
		}
		return units.Q(rng.NormFloat64()*m.Sigma, m.Dimension), nil
	default:
		return units.Quantity{}, fmt.Errorf("errormodel: unknown kind %d", m.Kind)
	}
}

// Pair is a measurand's systematic+arbitrary error models, combined by
// addition (§4.4).
type Pair struct {
	Systematic Model
	Arbitrary  Model
}

// Eval returns the summed systematic and arbitrary error for the
// measurand, at time t.
func (p Pair) Eval(t float64, rng *rand.Rand) (units.Quantity, error) {
	syst, err := p.Systematic.Eval(t, rng)
	if err != nil {
		return units.Quantity{}, fmt.Errorf("systematic: %w", err)
	}
	arb, err := p.Arbitrary.Eval(t, rng)
	if err != nil {
		return units.Quantity{}, fmt.Errorf("arbitrary: %w", err)
	}
	return syst.MustAdd(arb), nil
}

// ParseKind maps a config string to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "constant":
		return Constant, nil
	case "linear":
		return Linear, nil
	case "sinus", "sinusoidal":
		return Sinusoidal, nil
	case "gaussian":
		return Gaussian, nil
	default:
		return 0, fmt.Errorf("errormodel: unknown type %q", s)
	}
}
