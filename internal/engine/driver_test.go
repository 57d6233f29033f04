package engine

import (
	"math"
	"testing"

	"github.com/pv/radarsim/internal/errormodel"
	"github.com/pv/radarsim/internal/kinematics"
	"github.com/pv/radarsim/internal/lobe"
	"github.com/pv/radarsim/internal/modulation"
	"github.com/pv/radarsim/internal/pdw"
	"github.com/pv/radarsim/internal/sensorfe"
	"github.com/pv/radarsim/internal/units"
)

type memSink struct {
	records []pdw.PDW
	closed  bool
}

func (m *memSink) Write(p pdw.PDW) error { m.records = append(m.records, p); return nil }
func (m *memSink) Close() error          { m.closed = true; return nil }

func zeroErr(dim units.Dimension) errormodel.Pair {
	zero := errormodel.Model{Kind: errormodel.Constant, Value: 0, Dimension: dim}
	return errormodel.Pair{Systematic: zero, Arbitrary: zero}
}

func zeroSensorErrors() (amp, toa, freq, pw, aoa errormodel.Pair) {
	return zeroErr(units.Decibels), zeroErr(units.Seconds), zeroErr(units.Hertz), zeroErr(units.Seconds), zeroErr(units.Degrees)
}

// TestScenarioS1 reproduces §8 scenario S1: a single stationary radar
// with fixed PRI, a single stationary sensor with zero error and
// unconditional detection.
func TestScenarioS1(t *testing.T) {
	amp, toa, freq, pw, aoa := zeroSensorErrors()
	radar := RadarSpec{
		Name:             "R1",
		StartPosition:    kinematics.Position{X: 0, Y: 0},
		PowerWatts:       1,
		RotationType:     kinematics.RotationConstant,
		RotationConst:    kinematics.ConstantRotationParams{T0: 0, Alpha0: 0, TRot: 2.5},
		PRIType:          modulation.Fixed,
		PRIParams:        modulation.Params{Value: 1e-3},
		FrequencyType:    modulation.Fixed,
		FrequencyParams:  modulation.Params{Value: 10e9},
		PulseWidthType:   modulation.Fixed,
		PulseWidthParams: modulation.Params{Value: 1e-6},
		Lobe:             lobe.Sinc{ThetaMLDeg: 10, PMLDb: 0, PBLDb: -20},
	}
	sensor := SensorSpec{
		Name:            "S1",
		StartPosition:   kinematics.Position{X: 1000, Y: 0},
		SaturationDb:    1e9,
		DetectionLevels: []sensorfe.DetectionLevel{{LevelDb: -1e9, Probability: 1}},
		AmplitudeErr:    amp,
		TOAErr:          toa,
		FrequencyErr:    freq,
		PulseWidthErr:   pw,
		AOAErr:          aoa,
	}

	sc, err := NewScenario(0, 0.01, 1e-3, 0, 1, []RadarSpec{radar}, []SensorSpec{sensor})
	if err != nil {
		t.Fatalf("NewScenario: %v", err)
	}

	out := &memSink{}
	if err := sc.Run(out, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(out.records) != 10 {
		t.Fatalf("got %d pdws, want 10", len(out.records))
	}
	const wantDelay = 1000.0 / sensorfe.SpeedOfLight
	for _, rec := range out.records {
		if math.Abs((rec.TOA-rec.TimeEmitted)-wantDelay) > 1e-9 {
			t.Errorf("pdw %+v: TOA-TimeEmitted = %v, want %v", rec, rec.TOA-rec.TimeEmitted, wantDelay)
		}
	}
}

// TestScenarioStaggerIntervals reproduces §8 scenario S3's single-radar
// half: verify per-radar inter-PDW intervals match the stagger pattern.
func TestScenarioStaggerIntervals(t *testing.T) {
	amp, toa, freq, pw, aoa := zeroSensorErrors()
	pattern := []float64{1e-3, 1.2e-3, 1.1e-3}
	radar := RadarSpec{
		Name:             "R1",
		StartPosition:    kinematics.Position{X: 0, Y: 0},
		PowerWatts:       1,
		RotationType:     kinematics.RotationConstant,
		RotationConst:    kinematics.ConstantRotationParams{TRot: 10},
		PRIType:          modulation.Stagger,
		PRIParams:        modulation.Params{Pattern: pattern},
		FrequencyType:    modulation.Fixed,
		FrequencyParams:  modulation.Params{Value: 1e9},
		PulseWidthType:   modulation.Fixed,
		PulseWidthParams: modulation.Params{Value: 1e-6},
		Lobe:             lobe.Sinc{ThetaMLDeg: 90, PMLDb: 0, PBLDb: -20},
	}
	sensor := SensorSpec{
		Name:          "S1",
		StartPosition: kinematics.Position{X: 100, Y: 0},
		SaturationDb:  -1e9,
		AmplitudeErr:  amp, TOAErr: toa, FrequencyErr: freq, PulseWidthErr: pw, AOAErr: aoa,
	}

	sc, err := NewScenario(0, 0.02, 1e-3, 1e-3, 1, []RadarSpec{radar}, []SensorSpec{sensor})
	if err != nil {
		t.Fatalf("NewScenario: %v", err)
	}
	out := &memSink{}
	if err := sc.Run(out, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out.records) < 4 {
		t.Fatalf("too few pdws emitted: %d", len(out.records))
	}
	for i := 1; i < len(out.records); i++ {
		interval := out.records[i].TimeEmitted - out.records[i-1].TimeEmitted
		// The first pulse sits pattern[0] after start_time, so the gap
		// between records i-1 and i is pattern[i mod len].
		want := pattern[i%len(pattern)]
		if math.Abs(interval-want) > 1e-9 {
			t.Errorf("interval %d = %v, want %v", i, interval, want)
		}
	}
}

func TestScenarioEmptyPulseTrainEmitsNothing(t *testing.T) {
	amp, toa, freq, pw, aoa := zeroSensorErrors()
	radar := RadarSpec{
		Name:             "R1",
		StartPosition:    kinematics.Position{X: 0, Y: 0},
		PowerWatts:       1,
		RotationType:     kinematics.RotationConstant,
		RotationConst:    kinematics.ConstantRotationParams{TRot: 10},
		PRIType:          modulation.Fixed,
		PRIParams:        modulation.Params{Value: 1}, // single interval > end_time -> empty train
		FrequencyType:    modulation.Fixed,
		FrequencyParams:  modulation.Params{Value: 1e9},
		PulseWidthType:   modulation.Fixed,
		PulseWidthParams: modulation.Params{Value: 1e-6},
		Lobe:             lobe.Sinc{ThetaMLDeg: 10, PMLDb: 0, PBLDb: -20},
	}
	sensor := SensorSpec{
		Name: "S1", StartPosition: kinematics.Position{X: 100, Y: 0}, SaturationDb: 1e9,
		AmplitudeErr: amp, TOAErr: toa, FrequencyErr: freq, PulseWidthErr: pw, AOAErr: aoa,
	}
	sc, err := NewScenario(0, 0.01, 1e-3, 0, 1, []RadarSpec{radar}, []SensorSpec{sensor})
	if err != nil {
		t.Fatalf("NewScenario: %v", err)
	}
	out := &memSink{}
	if err := sc.Run(out, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out.records) != 0 {
		t.Fatalf("expected no pdws from an empty pulse train, got %d", len(out.records))
	}
}

func TestNewScenarioRejectsDuplicateNames(t *testing.T) {
	radar := RadarSpec{Name: "X", RotationType: kinematics.RotationConstant, RotationConst: kinematics.ConstantRotationParams{TRot: 1},
		PRIType: modulation.Fixed, PRIParams: modulation.Params{Value: 1}, FrequencyType: modulation.Fixed, FrequencyParams: modulation.Params{Value: 1},
		PulseWidthType: modulation.Fixed, PulseWidthParams: modulation.Params{Value: 1}, Lobe: lobe.Sinc{ThetaMLDeg: 1}}
	sensor := SensorSpec{Name: "X"}
	if _, err := NewScenario(0, 1, 0.1, 0, 1, []RadarSpec{radar}, []SensorSpec{sensor}); err == nil {
		t.Fatalf("expected duplicate-name error")
	}
}
