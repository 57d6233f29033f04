// Package kinematics tabulates radar/sensor trajectories and rotation
// schedules at scenario build time (§4.1). Tables are read-only after
// construction and looked up with "largest tabulated t <= query"
// semantics, the same policy the teacher's replay state cache applies
// when restoring a snapshot at or before a target timestamp.
package kinematics

import "sort"

// Position is a 2-D point in meters.
type Position struct {
	X, Y float64
}

// Sample is one tabulated (time, position) pair.
type Sample struct {
	T float64
	Position
}

// Trajectory is a read-only, time-ordered position table.
type Trajectory struct {
	samples []Sample
}

// TabulateTrajectory produces samples at t = startTime, startTime+step,
// ..., <= endTime. velocity defaults to (0,0) and startTime to 0.
func TabulateTrajectory(startPos Position, endTime, step float64, velocity Position, startTime float64) Trajectory {
	if step <= 0 {
		step = 1
	}
	var samples []Sample
	for t := startTime; t <= endTime+1e-12; t += step {
		samples = append(samples, Sample{
			T: t,
			Position: Position{
				X: startPos.X + velocity.X*(t-startTime),
				Y: startPos.Y + velocity.Y*(t-startTime),
			},
		})
	}
	if len(samples) == 0 {
		samples = append(samples, Sample{T: startTime, Position: startPos})
	}
	return Trajectory{samples: samples}
}

// At returns the position for the largest tabulated t <= query. Out of
// range queries below the first sample hold the first value; queries
// past the last sample hold the last value (§4.7 "hold last value").
func (tr Trajectory) At(query float64) Position {
	samples := tr.samples
	idx := sort.Search(len(samples), func(i int) bool { return samples[i].T > query })
	if idx == 0 {
		return samples[0].Position
	}
	return samples[idx-1].Position
}

// Samples exposes the tabulated points, for tests and diagnostics.
func (tr Trajectory) Samples() []Sample {
	return tr.samples
}
