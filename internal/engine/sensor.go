package engine

import (
	"github.com/pv/radarsim/internal/errormodel"
	"github.com/pv/radarsim/internal/kinematics"
	"github.com/pv/radarsim/internal/sensorfe"
	"github.com/pv/radarsim/internal/simerr"
)

// SensorSpec is the declared description of a sensor (§3).
type SensorSpec struct {
	Name string

	StartPosition kinematics.Position
	Velocity      kinematics.Position
	StartTime     float64

	SaturationDb    float64
	DetectionLevels []sensorfe.DetectionLevel

	AmplitudeErr  errormodel.Pair
	TOAErr        errormodel.Pair
	FrequencyErr  errormodel.Pair
	PulseWidthErr errormodel.Pair
	AOAErr        errormodel.Pair
}

// Sensor is a SensorSpec with its trajectory table built once.
type Sensor struct {
	SensorSpec

	Trajectory kinematics.Trajectory
	Detector   sensorfe.Detector
}

func buildSensor(spec SensorSpec, endTime, timeStep float64) (*Sensor, error) {
	s := &Sensor{SensorSpec: spec}
	s.Trajectory = kinematics.TabulateTrajectory(spec.StartPosition, endTime, timeStep, spec.Velocity, spec.StartTime)
	s.Detector = sensorfe.Detector{SaturationDb: spec.SaturationDb, Levels: spec.DetectionLevels}
	if _, err := validateDetectionLevels(spec); err != nil {
		return nil, &simerr.InvariantViolation{Entity: spec.Name, Detail: err.Error()}
	}
	return s, nil
}

func validateDetectionLevels(spec SensorSpec) (bool, error) {
	for _, lvl := range spec.DetectionLevels {
		if lvl.Probability < 0 || lvl.Probability > 1 {
			return false, errDetectionProbabilityRange
		}
	}
	return true, nil
}
