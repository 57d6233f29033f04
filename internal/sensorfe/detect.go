// Package sensorfe implements the sensor front-end: the detection
// decision and the five measurement functions (§4.5).
package sensorfe

import "math/rand"

// DetectionLevel pairs a dB threshold with the probability of
// detection above it.
type DetectionLevel struct {
	LevelDb     float64
	Probability float64
}

// Detector holds a sensor's saturation level and detection-probability
// bins.
type Detector struct {
	SaturationDb float64
	Levels       []DetectionLevel
}

// Detect implements §4.5: above saturation, always detected; otherwise
// the bins are walked in declared order and the first exceeded bin
// decides detection probabilistically (ties resolved by first match).
// If no bin is exceeded, the pulse is not detected.
func (d Detector) Detect(amplitudeDb float64, rng *rand.Rand) bool {
	if amplitudeDb > d.SaturationDb {
		return true
	}
	for _, lvl := range d.Levels {
		if amplitudeDb > lvl.LevelDb {
			if rng == nil {
				return lvl.Probability >= 1
			}
			return rng.Float64() < lvl.Probability
		}
	}
	return false
}
