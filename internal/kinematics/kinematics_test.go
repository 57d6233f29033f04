package kinematics

import (
	"math"
	"testing"
)

func TestTabulateTrajectoryStationary(t *testing.T) {
	tr := TabulateTrajectory(Position{X: 10, Y: 20}, 1, 0.25, Position{}, 0)
	for _, s := range tr.Samples() {
		if s.X != 10 || s.Y != 20 {
			t.Errorf("sample at %v = %+v, want (10,20)", s.T, s.Position)
		}
	}
	if got := tr.At(0.6); got != (Position{X: 10, Y: 20}) {
		t.Errorf("At(0.6) = %+v", got)
	}
}

func TestTabulateTrajectoryMoving(t *testing.T) {
	tr := TabulateTrajectory(Position{}, 2, 1, Position{X: 1, Y: 0}, 0)
	got := tr.At(1.9)
	if math.Abs(got.X-1) > 1e-9 {
		t.Errorf("At(1.9).X = %v, want 1 (hold last <= query)", got.X)
	}
}

func TestTrajectoryAtHoldsLastPastEnd(t *testing.T) {
	tr := TabulateTrajectory(Position{}, 1, 0.5, Position{X: 2, Y: 0}, 0)
	got := tr.At(100)
	last := tr.Samples()[len(tr.Samples())-1]
	if got != last.Position {
		t.Errorf("At(100) = %+v, want last sample %+v", got, last.Position)
	}
}

func TestConstantRotation(t *testing.T) {
	rt, err := TabulateConstantRotation(0, 5, 0.5, ConstantRotationParams{T0: 0, Alpha0: 0, TRot: 2.5})
	if err != nil {
		t.Fatalf("TabulateConstantRotation: %v", err)
	}
	angle, period := rt.At(0)
	if math.Abs(angle) > 1e-9 {
		t.Errorf("angle(0) = %v, want 0", angle)
	}
	if period != 2.5 {
		t.Errorf("period(0) = %v, want 2.5", period)
	}
	// after one full period the angle should have wrapped back to ~0.
	angle, _ = rt.At(2.5)
	if math.Abs(wrapTwoPi(angle)) > 1e-6 && math.Abs(wrapTwoPi(angle)-2*math.Pi) > 1e-6 {
		t.Errorf("angle(2.5) = %v, want ~0", angle)
	}
}

func TestConstantRotationRejectsNonPositivePeriod(t *testing.T) {
	if _, err := TabulateConstantRotation(0, 1, 0.5, ConstantRotationParams{TRot: 0}); err == nil {
		t.Fatalf("expected error for T_rot=0")
	}
}

func TestVariableRotationHoldsBoundaryPeriod(t *testing.T) {
	rt, err := TabulateVariableRotation(0, 10, 1, VariableRotationParams{
		T0: 0, Alpha0: 0,
		Schedule: []VariablePeriodPoint{{T: 0, Period: 1}, {T: 5, Period: 2}},
	})
	if err != nil {
		t.Fatalf("TabulateVariableRotation: %v", err)
	}
	_, period := rt.At(9)
	if period != 2 {
		t.Errorf("period(9) = %v, want 2 (held from last knot)", period)
	}
}

func TestVariableRotationRequiresSchedule(t *testing.T) {
	if _, err := TabulateVariableRotation(0, 1, 1, VariableRotationParams{}); err == nil {
		t.Fatalf("expected error for empty schedule")
	}
}
