package engine

import (
	"errors"
	"math/rand"

	"github.com/pv/radarsim/internal/kinematics"
	"github.com/pv/radarsim/internal/lobe"
	"github.com/pv/radarsim/internal/modulation"
	"github.com/pv/radarsim/internal/simerr"
)

var errUnknownEnumerator = errors.New("unknown enumerator")

// RadarSpec is the declared (un-tabulated) description of a radar
// (§3), as produced by config loading.
type RadarSpec struct {
	Name string

	StartPosition kinematics.Position
	Velocity      kinematics.Position
	StartTime     float64

	PowerWatts float64

	RotationType  kinematics.RotationType
	RotationConst kinematics.ConstantRotationParams
	RotationVar   kinematics.VariableRotationParams

	PRIType   modulation.Type
	PRIParams modulation.Params

	FrequencyType   modulation.Type
	FrequencyParams modulation.Params

	PulseWidthType   modulation.Type
	PulseWidthParams modulation.Params

	Lobe lobe.Sinc
}

// Radar is a RadarSpec with every table in §3 built once, read-only for
// the lifetime of the scenario.
type Radar struct {
	RadarSpec

	Trajectory kinematics.Trajectory
	Rotation   kinematics.RotationTable

	PulseTimes  []float64
	Frequencies []float64
	PulseWidths []float64
}

// buildRadar tabulates every derived table for spec and validates the
// invariants from §3 (pulse_times monotone strict, equal-length
// arrays, theta_ml > 0, P_bl <= P_ml).
func buildRadar(spec RadarSpec, startTime, endTime, timeStep float64, rng *rand.Rand) (*Radar, error) {
	if spec.Lobe.ThetaMLDeg <= 0 {
		return nil, &simerr.InvariantViolation{Entity: spec.Name, Detail: "theta_ml must be > 0"}
	}
	if spec.Lobe.PBLDb > spec.Lobe.PMLDb {
		return nil, &simerr.InvariantViolation{Entity: spec.Name, Detail: "P_bl must be <= P_ml"}
	}

	r := &Radar{RadarSpec: spec}

	r.Trajectory = kinematics.TabulateTrajectory(spec.StartPosition, endTime, timeStep, spec.Velocity, spec.StartTime)

	switch spec.RotationType {
	case kinematics.RotationConstant:
		rot, err := kinematics.TabulateConstantRotation(startTime, endTime, timeStep, spec.RotationConst)
		if err != nil {
			return nil, &simerr.ConfigurationError{Entity: spec.Name, Field: "rotation_params", Err: err}
		}
		r.Rotation = rot
	case kinematics.RotationVariable:
		rot, err := kinematics.TabulateVariableRotation(startTime, endTime, timeStep, spec.RotationVar)
		if err != nil {
			return nil, &simerr.ConfigurationError{Entity: spec.Name, Field: "rotation_params", Err: err}
		}
		r.Rotation = rot
	default:
		return nil, &simerr.ConfigurationError{Entity: spec.Name, Field: "rotation_type", Err: errUnknownEnumerator}
	}

	pulseTimes, err := modulation.GeneratePRI(spec.PRIType, spec.PRIParams, spec.StartTime, endTime, rng)
	if err != nil {
		return nil, &simerr.ConfigurationError{Entity: spec.Name, Field: "pri_params", Err: err}
	}
	r.PulseTimes = pulseTimes

	n := len(pulseTimes)
	frequencies, err := modulation.GenerateValues(spec.FrequencyType, spec.FrequencyParams, n, rng)
	if err != nil {
		return nil, &simerr.ConfigurationError{Entity: spec.Name, Field: "frequency_params", Err: err}
	}
	r.Frequencies = frequencies

	pulseWidths, err := modulation.GenerateValues(spec.PulseWidthType, spec.PulseWidthParams, n, rng)
	if err != nil {
		return nil, &simerr.ConfigurationError{Entity: spec.Name, Field: "pulse_width_params", Err: err}
	}
	r.PulseWidths = pulseWidths

	if len(r.Frequencies) != len(r.PulseTimes) || len(r.PulseWidths) != len(r.PulseTimes) {
		return nil, &simerr.InvariantViolation{Entity: spec.Name, Detail: "pulse_times, frequencies and pulse_widths must have equal length"}
	}
	for i := 1; i < len(r.PulseTimes); i++ {
		if r.PulseTimes[i] <= r.PulseTimes[i-1] {
			return nil, &simerr.InvariantViolation{Entity: spec.Name, Detail: "pulse_times must be strictly increasing"}
		}
	}

	return r, nil
}
