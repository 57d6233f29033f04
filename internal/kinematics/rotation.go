package kinematics

import (
	"fmt"
	"math"
	"sort"
)

// RotationType selects the rotation-angle schedule family (§3).
type RotationType int

const (
	RotationConstant RotationType = iota
	RotationVariable
)

// RotationSample is one tabulated (time, angle, period) triple.
type RotationSample struct {
	T      float64
	Angle  float64 // radians, wrapped to [0, 2*pi)
	Period float64 // seconds
}

// RotationTable is a read-only, time-ordered rotation schedule.
type RotationTable struct {
	samples []RotationSample
}

// ConstantRotationParams parametrizes the "constant" family:
// angle(t) = (alpha0 + 2*pi*(t-t0)/T_rot) mod 2*pi, period(t) = T_rot.
type ConstantRotationParams struct {
	T0     float64
	Alpha0 float64 // radians
	TRot   float64 // seconds, > 0
}

// VariablePeriodPoint is one (time, period) knot of a piecewise-linear
// period schedule.
type VariablePeriodPoint struct {
	T      float64
	Period float64
}

// VariableRotationParams parametrizes the "variable" family: period(t)
// is piecewise-linear over Schedule, and angle accumulates
// integral(2*pi/T(tau), tau=t0..t).
type VariableRotationParams struct {
	T0       float64
	Alpha0   float64
	Schedule []VariablePeriodPoint // sorted by T, len >= 1
}

func wrapTwoPi(a float64) float64 {
	const twoPi = 2 * math.Pi
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	return a
}

// TabulateConstantRotation builds the schedule for the "constant" family.
func TabulateConstantRotation(startTime, endTime, step float64, p ConstantRotationParams) (RotationTable, error) {
	if p.TRot <= 0 {
		return RotationTable{}, fmt.Errorf("kinematics: T_rot must be > 0, got %v", p.TRot)
	}
	if step <= 0 {
		step = 1
	}
	var samples []RotationSample
	for t := startTime; t <= endTime+1e-12; t += step {
		angle := wrapTwoPi(p.Alpha0 + 2*math.Pi*(t-p.T0)/p.TRot)
		samples = append(samples, RotationSample{T: t, Angle: angle, Period: p.TRot})
	}
	if len(samples) == 0 {
		samples = append(samples, RotationSample{T: startTime, Angle: wrapTwoPi(p.Alpha0), Period: p.TRot})
	}
	return RotationTable{samples: samples}, nil
}

// periodAt linearly interpolates the period schedule at t, holding the
// boundary value outside the schedule's range.
func periodAt(schedule []VariablePeriodPoint, t float64) float64 {
	if len(schedule) == 0 {
		return 1
	}
	if t <= schedule[0].T {
		return schedule[0].Period
	}
	last := schedule[len(schedule)-1]
	if t >= last.T {
		return last.Period
	}
	idx := sort.Search(len(schedule), func(i int) bool { return schedule[i].T > t })
	prev, next := schedule[idx-1], schedule[idx]
	if next.T == prev.T {
		return prev.Period
	}
	frac := (t - prev.T) / (next.T - prev.T)
	return prev.Period + frac*(next.Period-prev.Period)
}

// TabulateVariableRotation builds the schedule for the "variable"
// family, integrating 2*pi/T(tau) at step granularity with the
// trapezoidal rule (§4.1).
func TabulateVariableRotation(startTime, endTime, step float64, p VariableRotationParams) (RotationTable, error) {
	if len(p.Schedule) == 0 {
		return RotationTable{}, fmt.Errorf("kinematics: variable rotation requires a non-empty period schedule")
	}
	if step <= 0 {
		step = 1
	}
	angle := wrapTwoPi(p.Alpha0)
	prevT := p.T0
	prevRate := 2 * math.Pi / periodAt(p.Schedule, p.T0)

	var samples []RotationSample
	t := startTime
	// Advance the integral from T0 up to startTime, if startTime > T0.
	for t > prevT+1e-12 {
		next := prevT + step
		if next > t {
			next = t
		}
		rate := 2 * math.Pi / periodAt(p.Schedule, next)
		angle += (prevRate + rate) / 2 * (next - prevT)
		prevT, prevRate = next, rate
	}
	angle = wrapTwoPi(angle)

	for ; t <= endTime+1e-12; t += step {
		period := periodAt(p.Schedule, t)
		samples = append(samples, RotationSample{T: t, Angle: wrapTwoPi(angle), Period: period})

		next := t + step
		if next > endTime+1e-12 {
			break
		}
		rate := 2 * math.Pi / periodAt(p.Schedule, next)
		angle += (prevRate + rate) / 2 * step
		prevRate = rate
	}
	if len(samples) == 0 {
		samples = append(samples, RotationSample{T: startTime, Angle: wrapTwoPi(angle), Period: periodAt(p.Schedule, startTime)})
	}
	return RotationTable{samples: samples}, nil
}

// At returns the (angle, period) for the largest tabulated t <= query,
// holding the last value past the end of the table (§4.7).
func (rt RotationTable) At(query float64) (angle, period float64) {
	samples := rt.samples
	idx := sort.Search(len(samples), func(i int) bool { return samples[i].T > query })
	if idx == 0 {
		return samples[0].Angle, samples[0].Period
	}
	s := samples[idx-1]
	return s.Angle, s.Period
}

// Samples exposes the tabulated points, for tests and diagnostics.
func (rt RotationTable) Samples() []RotationSample {
	return rt.samples
}
