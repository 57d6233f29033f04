package pdw

import (
	"math"
	"testing"

	"github.com/pv/radarsim/internal/errormodel"
	"github.com/pv/radarsim/internal/kinematics"
	"github.com/pv/radarsim/internal/lobe"
	"github.com/pv/radarsim/internal/sensorfe"
	"github.com/pv/radarsim/internal/units"
)

func zeroPair(dim units.Dimension) errormodel.Pair {
	zero := errormodel.Model{Kind: errormodel.Constant, Value: 0, Dimension: dim}
	return errormodel.Pair{Systematic: zero, Arbitrary: zero}
}

func basePulse() Pulse {
	return Pulse{
		SensorID:  "S1",
		RadarID:   "R1",
		SensorPos: kinematics.Position{X: 1000, Y: 0},
		RadarPos:  kinematics.Position{X: 0, Y: 0},

		BoresightRad: 0,
		Lobe:         lobe.Sinc{ThetaMLDeg: 10, PMLDb: 0, PBLDb: -20},

		PulseTime:   0.001,
		FrequencyHz: 10e9,
		PulseWidthS: 1e-6,
		P0Db:        0,

		Detector: sensorfe.Detector{SaturationDb: -1000},

		AmplitudeErr:  zeroPair(units.Decibels),
		TOAErr:        zeroPair(units.Seconds),
		FrequencyErr:  zeroPair(units.Hertz),
		PulseWidthErr: zeroPair(units.Seconds),
		AOAErr:        zeroPair(units.Degrees),
	}
}

func TestGenerateBoresightAligned(t *testing.T) {
	p := basePulse()
	got, err := Generate(p, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got == nil {
		t.Fatalf("expected a PDW, got none")
	}
	// P0 - 20*log10(1000 m) + 0 dB main-lobe gain = -60.
	if math.Abs(got.Amplitude-(-60)) > 1e-9 {
		t.Errorf("Amplitude = %v, want -60 (boresight aligned, P0=0, r=1000 m)", got.Amplitude)
	}
	wantTOA := p.PulseTime + 1000/sensorfe.SpeedOfLight
	if math.Abs(got.TOA-wantTOA) > 1e-9 {
		t.Errorf("TOA = %v, want %v", got.TOA, wantTOA)
	}
	if got.Frequency != p.FrequencyHz {
		t.Errorf("Frequency = %v, want %v", got.Frequency, p.FrequencyHz)
	}
}

func TestGenerateUndetectedReturnsNil(t *testing.T) {
	p := basePulse()
	p.Detector = sensorfe.Detector{SaturationDb: 1000, Levels: nil}
	got, err := Generate(p, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != nil {
		t.Fatalf("expected no detection, got %+v", got)
	}
}

func TestGenerateBackLobe(t *testing.T) {
	p := basePulse()
	p.SensorPos = kinematics.Position{X: -1000, Y: 0} // directly behind boresight
	got, err := Generate(p, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got == nil {
		t.Fatalf("expected detection at back lobe (above saturation default)")
	}
	// P0 - 20*log10(1000 m) + (-20 dB back-lobe gain) = -80.
	if math.Abs(got.Amplitude-(-80)) > 1e-9 {
		t.Errorf("Amplitude = %v, want -80 (back lobe, P0=0, r=1000 m)", got.Amplitude)
	}
}
