package sensorfe

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/pv/radarsim/internal/errormodel"
	"github.com/pv/radarsim/internal/units"
)

// SpeedOfLight is c in meters/second.
const SpeedOfLight = 299_792_458.0

// MeasureAmplitude implements §4.5: measured = P0_dB - 20*log10(r) +
// P_theta + err_syst(t) + err_arb.
func MeasureAmplitude(p0Db, rangeMeters, pThetaDb, t float64, errs errormodel.Pair, rng *rand.Rand) (float64, error) {
	q, err := errs.Eval(t, rng)
	if err != nil {
		return 0, fmt.Errorf("sensorfe: amplitude error: %w", err)
	}
	return p0Db - 20*math.Log10(rangeMeters) + pThetaDb + q.Value, nil
}

// MeasureTOA implements §4.5: measured = true_toa + r/c + err_syst(t) + err_arb.
func MeasureTOA(trueTOA, rangeMeters, t float64, errs errormodel.Pair, rng *rand.Rand) (float64, error) {
	q, err := errs.Eval(t, rng)
	if err != nil {
		return 0, fmt.Errorf("sensorfe: toa error: %w", err)
	}
	return trueTOA + rangeMeters/SpeedOfLight + q.Value, nil
}

// MeasureFrequency implements §4.5: measured = true + err_syst(t) + err_arb.
func MeasureFrequency(trueHz, t float64, errs errormodel.Pair, rng *rand.Rand) (float64, error) {
	q, err := errs.Eval(t, rng)
	if err != nil {
		return 0, fmt.Errorf("sensorfe: frequency error: %w", err)
	}
	return trueHz + q.Value, nil
}

// MeasurePulseWidth implements §4.5: measured = true + err_syst(t) + err_arb.
func MeasurePulseWidth(trueSeconds, t float64, errs errormodel.Pair, rng *rand.Rand) (float64, error) {
	q, err := errs.Eval(t, rng)
	if err != nil {
		return 0, fmt.Errorf("sensorfe: pulse width error: %w", err)
	}
	return trueSeconds + q.Value, nil
}

// MeasureAOA implements §4.5: measured = true + err_syst(t) + err_arb.
// trueRad is in radians; the result is in degrees. An error of
// Radians dimension is converted to degrees; any other error value is
// taken as degrees.
func MeasureAOA(trueRad, t float64, errs errormodel.Pair, rng *rand.Rand) (float64, error) {
	q, err := errs.Eval(t, rng)
	if err != nil {
		return 0, fmt.Errorf("sensorfe: aoa error: %w", err)
	}
	errDeg := q.Value
	if q.Dimension == units.Radians {
		errDeg = units.RadiansToDegrees(q.Value)
	}
	return units.RadiansToDegrees(trueRad) + errDeg, nil
}
