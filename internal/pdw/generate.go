package pdw

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/pv/radarsim/internal/errormodel"
	"github.com/pv/radarsim/internal/kinematics"
	"github.com/pv/radarsim/internal/lobe"
	"github.com/pv/radarsim/internal/sensorfe"
)

// Pulse is one candidate emission already resolved by the caller to a
// single pulse_time within the current tick window (§4.7 step 2); the
// generator (§4.7 steps 3-8) takes it from here.
type Pulse struct {
	SensorID, RadarID string

	SensorPos, RadarPos kinematics.Position
	BoresightRad        float64
	Lobe                lobe.Sinc

	PulseTime   float64 // tp
	FrequencyHz float64
	PulseWidthS float64
	P0Db        float64 // radar reference power, dBW

	Detector sensorfe.Detector

	AmplitudeErr  errormodel.Pair
	TOAErr        errormodel.Pair
	FrequencyErr  errormodel.Pair
	PulseWidthErr errormodel.Pair
	AOAErr        errormodel.Pair
}

// Generate implements §4.7 steps 1 and 3-8 for one already-selected
// pulse_time: geometry, boresight-relative lobe gain, true parameters,
// detection, and the five measurements. It returns (nil, nil) when the
// sensor does not detect the pulse.
func Generate(p Pulse, rng *rand.Rand) (*PDW, error) {
	dx := p.SensorPos.X - p.RadarPos.X
	dy := p.SensorPos.Y - p.RadarPos.Y
	r := math.Hypot(dx, dy)
	aoa := math.Atan2(dy, dx)

	trueAmplitude := p.Lobe.Gain(aoa, p.BoresightRad)

	if !p.Detector.Detect(trueAmplitude, rng) {
		return nil, nil
	}

	amplitude, err := sensorfe.MeasureAmplitude(p.P0Db, r, trueAmplitude, p.PulseTime, p.AmplitudeErr, rng)
	if err != nil {
		return nil, fmt.Errorf("pdw: amplitude: %w", err)
	}
	toa, err := sensorfe.MeasureTOA(p.PulseTime, r, p.PulseTime, p.TOAErr, rng)
	if err != nil {
		return nil, fmt.Errorf("pdw: toa: %w", err)
	}
	frequency, err := sensorfe.MeasureFrequency(p.FrequencyHz, p.PulseTime, p.FrequencyErr, rng)
	if err != nil {
		return nil, fmt.Errorf("pdw: frequency: %w", err)
	}
	pulseWidth, err := sensorfe.MeasurePulseWidth(p.PulseWidthS, p.PulseTime, p.PulseWidthErr, rng)
	if err != nil {
		return nil, fmt.Errorf("pdw: pulse width: %w", err)
	}
	aoaDeg, err := sensorfe.MeasureAOA(aoa, p.PulseTime, p.AOAErr, rng)
	if err != nil {
		return nil, fmt.Errorf("pdw: aoa: %w", err)
	}

	return &PDW{
		TimeEmitted: p.PulseTime,
		SensorID:    p.SensorID,
		RadarID:     p.RadarID,
		TOA:         toa,
		Amplitude:   amplitude,
		Frequency:   frequency,
		PulseWidth:  pulseWidth,
		AOA:         aoaDeg,
	}, nil
}
