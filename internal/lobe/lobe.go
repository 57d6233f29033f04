// Package lobe implements the directional antenna gain model (§4.3).
package lobe

import (
	"math"

	"github.com/pv/radarsim/internal/units"
)

// Sinc is the sinc-shaped lobe pattern: boresight in radians, main
// lobe opening angle (theta_ml) in degrees, main/back lobe power in
// dB.
type Sinc struct {
	ThetaMLDeg float64
	PMLDb      float64
	PBLDb      float64
}

// sincNormalized returns sin(x)/x, defined as 1 at x=0.
func sincNormalized(x float64) float64 {
	if x == 0 {
		return 1
	}
	return math.Sin(x) / x
}

func wrapPi(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// Gain evaluates P(delta) in dB, where delta = bearing - boresight (in
// radians), both already wrapped to [-pi, pi] by this function.
func (s Sinc) Gain(bearingRad, boresightRad float64) float64 {
	delta := wrapPi(bearingRad - boresightRad)
	if delta == 0 {
		return s.PMLDb
	}
	if math.Abs(math.Abs(delta)-math.Pi) < 1e-9 {
		return s.PBLDb
	}
	thetaMLRad := units.DegreesToRadians(s.ThetaMLDeg)
	x := math.Pi * delta / thetaMLRad
	sinc2 := sincNormalized(x) * sincNormalized(x)
	linear := sinc2*units.DBToLinear(s.PMLDb) + (1-sinc2)*units.DBToLinear(s.PBLDb)
	return units.LinearToDB(linear)
}
