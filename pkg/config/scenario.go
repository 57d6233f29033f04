// Package config loads the scenario configuration document (§6): a
// YAML file describing the scenario window, radars and sensors, and
// converts it into the engine's radar/sensor specs, from which the
// caller builds an engine.Scenario with engine.NewScenario. Loading
// happens once, at startup; the Config value returned never touches
// disk again.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pv/radarsim/internal/engine"
	"github.com/pv/radarsim/internal/errormodel"
	"github.com/pv/radarsim/internal/kinematics"
	"github.com/pv/radarsim/internal/lobe"
	"github.com/pv/radarsim/internal/modulation"
	"github.com/pv/radarsim/internal/sensorfe"
	"github.com/pv/radarsim/internal/simerr"
	"github.com/pv/radarsim/internal/units"
)

// ScenarioDocument is the top-level YAML shape (§6).
type ScenarioDocument struct {
	Scenario struct {
		StartTime     float64 `yaml:"start_time"`
		EndTime       float64 `yaml:"end_time"`
		TimeStep      float64 `yaml:"time_step"`
		PDWTickWindow float64 `yaml:"pdw_tick_window"`
		Seed          int64   `yaml:"seed"`
	} `yaml:"scenario"`
	Radars  []radarDocument  `yaml:"radars"`
	Sensors []sensorDocument `yaml:"sensors"`
}

type rotationParamsDocument struct {
	T0       float64            `yaml:"t0"`
	Alpha0   float64            `yaml:"alpha0"`
	TRot     float64            `yaml:"T_rot"`
	Schedule []schedulePointDoc `yaml:"schedule"`
}

type schedulePointDoc struct {
	T      float64 `yaml:"t"`
	Period float64 `yaml:"period"`
}

type modulationParamsDocument struct {
	Value       float64   `yaml:"value"`
	Pattern     []float64 `yaml:"pattern"`
	Repetitions []int     `yaml:"repetitions"`
	Mean        float64   `yaml:"mean"`
	Pct         float64   `yaml:"pct"`
}

type lobePatternDocument struct {
	Type                 string `yaml:"type"`
	MainLobeOpeningAngle string `yaml:"main_lobe_opening_angle"`
	PowerAtMainLobe      string `yaml:"radar_power_at_main_lobe"`
	PowerAtBackLobe      string `yaml:"radar_power_at_back_lobe"`
}

type radarDocument struct {
	Name             string                   `yaml:"name"`
	StartPosition    [2]float64               `yaml:"start_position"`
	Velocity         [2]float64               `yaml:"velocity"`
	StartTime        float64                  `yaml:"start_time"`
	Power            float64                  `yaml:"power"`
	RotationType     string                   `yaml:"rotation_type"`
	RotationParams   rotationParamsDocument   `yaml:"rotation_params"`
	PRIType          string                   `yaml:"pri_type"`
	PRIParams        modulationParamsDocument `yaml:"pri_params"`
	FrequencyType    string                   `yaml:"frequency_type"`
	FrequencyParams  modulationParamsDocument `yaml:"frequency_params"`
	PulseWidthType   string                   `yaml:"pulse_width_type"`
	PulseWidthParams modulationParamsDocument `yaml:"pulse_width_params"`
	LobePattern      lobePatternDocument      `yaml:"lobe_pattern"`
}

type detectionProbabilityDocument struct {
	Level       []string `yaml:"level"`
	Probability []string `yaml:"probability"`
}

type errorBlockDocument struct {
	Type      string `yaml:"type"`
	Error     string `yaml:"error"`
	Rate      string `yaml:"rate"`
	Amplitude string `yaml:"amplitude"`
	Frequency string `yaml:"frequency"`
	Phase     string `yaml:"phase"`
}

type sensorErrorsDocument struct {
	Systematic errorBlockDocument `yaml:"systematic"`
	Arbitrary  errorBlockDocument `yaml:"arbitrary"`
}

type sensorDocument struct {
	Name                 string                       `yaml:"name"`
	StartPosition        [2]float64                   `yaml:"start_position"`
	Velocity             [2]float64                   `yaml:"velocity"`
	StartTime            float64                      `yaml:"start_time"`
	SaturationLevel      string                       `yaml:"saturation_level"`
	DetectionProbability detectionProbabilityDocument `yaml:"detection_probability"`
	AmplitudeError       sensorErrorsDocument         `yaml:"amplitude_error"`
	TOAError             sensorErrorsDocument         `yaml:"toa_error"`
	FrequencyError       sensorErrorsDocument         `yaml:"frequency_error"`
	PulseWidthError      sensorErrorsDocument         `yaml:"pulse_width_error"`
	AOAError             sensorErrorsDocument         `yaml:"aoa_error"`
}

// Config is the validated, in-memory result of LoadScenario.
type Config struct {
	StartTime     float64
	EndTime       float64
	TimeStep      float64
	PDWTickWindow float64
	Seed          int64

	Radars  []engine.RadarSpec
	Sensors []engine.SensorSpec
}

// LoadScenario reads and validates the scenario document at path. An
// unreadable file is a simerr.IOError; a bad document surfaces as a
// simerr.ConfigurationError, UnitError or InvariantViolation naming
// the offending radar/sensor (and field, where there is one) (§7).
func LoadScenario(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &simerr.IOError{Op: "config: read " + path, Err: err}
	}
	var doc ScenarioDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &simerr.ConfigurationError{Field: "document", Err: err}
	}
	return fromDocument(doc)
}

func fromDocument(doc ScenarioDocument) (*Config, error) {
	cfg := &Config{
		StartTime:     doc.Scenario.StartTime,
		EndTime:       doc.Scenario.EndTime,
		TimeStep:      doc.Scenario.TimeStep,
		PDWTickWindow: doc.Scenario.PDWTickWindow,
		Seed:          doc.Scenario.Seed,
	}

	names := NewNameRegistry()

	for _, rd := range doc.Radars {
		if err := names.Add(rd.Name); err != nil {
			return nil, &simerr.ConfigurationError{Entity: rd.Name, Field: "name", Err: err}
		}
		spec, err := radarSpecFromDocument(rd)
		if err != nil {
			return nil, err
		}
		cfg.Radars = append(cfg.Radars, spec)
	}

	for _, sd := range doc.Sensors {
		if err := names.Add(sd.Name); err != nil {
			return nil, &simerr.ConfigurationError{Entity: sd.Name, Field: "name", Err: err}
		}
		spec, err := sensorSpecFromDocument(sd)
		if err != nil {
			return nil, err
		}
		cfg.Sensors = append(cfg.Sensors, spec)
	}

	return cfg, nil
}

func radarSpecFromDocument(rd radarDocument) (engine.RadarSpec, error) {
	spec := engine.RadarSpec{
		Name:          rd.Name,
		StartPosition: kinematics.Position{X: rd.StartPosition[0], Y: rd.StartPosition[1]},
		Velocity:      kinematics.Position{X: rd.Velocity[0], Y: rd.Velocity[1]},
		StartTime:     rd.StartTime,
		PowerWatts:    rd.Power,
	}

	switch rd.RotationType {
	case "constant":
		spec.RotationType = kinematics.RotationConstant
		spec.RotationConst = kinematics.ConstantRotationParams{
			T0: rd.RotationParams.T0, Alpha0: rd.RotationParams.Alpha0, TRot: rd.RotationParams.TRot,
		}
	case "variable":
		spec.RotationType = kinematics.RotationVariable
		schedule := make([]kinematics.VariablePeriodPoint, len(rd.RotationParams.Schedule))
		for i, p := range rd.RotationParams.Schedule {
			schedule[i] = kinematics.VariablePeriodPoint{T: p.T, Period: p.Period}
		}
		spec.RotationVar = kinematics.VariableRotationParams{
			T0: rd.RotationParams.T0, Alpha0: rd.RotationParams.Alpha0, Schedule: schedule,
		}
	default:
		return spec, &simerr.ConfigurationError{Entity: rd.Name, Field: "rotation_type", Err: fmt.Errorf("unknown enumerator %q", rd.RotationType)}
	}

	var err error
	spec.PRIType, spec.PRIParams, err = modulationFromDocument(rd.PRIType, rd.PRIParams)
	if err != nil {
		return spec, &simerr.ConfigurationError{Entity: rd.Name, Field: "pri_type", Err: err}
	}
	spec.FrequencyType, spec.FrequencyParams, err = modulationFromDocument(rd.FrequencyType, rd.FrequencyParams)
	if err != nil {
		return spec, &simerr.ConfigurationError{Entity: rd.Name, Field: "frequency_type", Err: err}
	}
	spec.PulseWidthType, spec.PulseWidthParams, err = modulationFromDocument(rd.PulseWidthType, rd.PulseWidthParams)
	if err != nil {
		return spec, &simerr.ConfigurationError{Entity: rd.Name, Field: "pulse_width_type", Err: err}
	}

	thetaML, err := parseChecked(rd.Name, "lobe_pattern.main_lobe_opening_angle", rd.LobePattern.MainLobeOpeningAngle, units.Degrees)
	if err != nil {
		return spec, err
	}
	pml, err := parseChecked(rd.Name, "lobe_pattern.radar_power_at_main_lobe", rd.LobePattern.PowerAtMainLobe, units.Decibels)
	if err != nil {
		return spec, err
	}
	pbl, err := parseChecked(rd.Name, "lobe_pattern.radar_power_at_back_lobe", rd.LobePattern.PowerAtBackLobe, units.Decibels)
	if err != nil {
		return spec, err
	}
	spec.Lobe = lobe.Sinc{ThetaMLDeg: thetaML, PMLDb: pml, PBLDb: pbl}

	return spec, nil
}

func modulationFromDocument(typ string, p modulationParamsDocument) (modulation.Type, modulation.Params, error) {
	params := modulation.Params{
		Value:             p.Value,
		Pattern:           p.Pattern,
		SwitchPattern:     p.Pattern,
		SwitchRepetitions: p.Repetitions,
		Mean:              p.Mean,
		Pct:               p.Pct,
	}
	switch typ {
	case "fixed":
		return modulation.Fixed, params, nil
	case "stagger":
		return modulation.Stagger, params, nil
	case "switched":
		return modulation.Switched, params, nil
	case "jitter":
		return modulation.Jitter, params, nil
	default:
		return 0, params, fmt.Errorf("unknown enumerator %q", typ)
	}
}

func sensorSpecFromDocument(sd sensorDocument) (engine.SensorSpec, error) {
	spec := engine.SensorSpec{
		Name:          sd.Name,
		StartPosition: kinematics.Position{X: sd.StartPosition[0], Y: sd.StartPosition[1]},
		Velocity:      kinematics.Position{X: sd.Velocity[0], Y: sd.Velocity[1]},
		StartTime:     sd.StartTime,
	}

	sat, err := parseChecked(sd.Name, "saturation_level", sd.SaturationLevel, units.Decibels)
	if err != nil {
		return spec, err
	}
	spec.SaturationDb = sat

	levels := sd.DetectionProbability.Level
	probs := sd.DetectionProbability.Probability
	if len(levels) != len(probs) {
		return spec, &simerr.InvariantViolation{Entity: sd.Name, Detail: "detection_probability.level and .probability must have equal length"}
	}
	for i := range levels {
		levelDb, err := parseChecked(sd.Name, "detection_probability.level", levels[i], units.Decibels)
		if err != nil {
			return spec, err
		}
		pctValue, err := parseChecked(sd.Name, "detection_probability.probability", probs[i], units.Dimensionless)
		if err != nil {
			return spec, err
		}
		spec.DetectionLevels = append(spec.DetectionLevels, sensorfe.DetectionLevel{LevelDb: levelDb, Probability: pctValue / 100})
	}

	for _, field := range []struct {
		name string
		doc  sensorErrorsDocument
		dest *errormodel.Pair
	}{
		{"amplitude_error", sd.AmplitudeError, &spec.AmplitudeErr},
		{"toa_error", sd.TOAError, &spec.TOAErr},
		{"frequency_error", sd.FrequencyError, &spec.FrequencyErr},
		{"pulse_width_error", sd.PulseWidthError, &spec.PulseWidthErr},
		{"aoa_error", sd.AOAError, &spec.AOAErr},
	} {
		dim := dimensionForErrorField(field.name)
		syst, err := errorModelFromDocument(sd.Name, field.name+".systematic", field.doc.Systematic, dim)
		if err != nil {
			return spec, err
		}
		arb, err := errorModelFromDocument(sd.Name, field.name+".arbitrary", field.doc.Arbitrary, dim)
		if err != nil {
			return spec, err
		}
		*field.dest = errormodel.Pair{Systematic: syst, Arbitrary: arb}
	}

	return spec, nil
}

func dimensionForErrorField(field string) units.Dimension {
	switch field {
	case "amplitude_error":
		return units.Decibels
	case "toa_error":
		return units.Seconds
	case "frequency_error":
		return units.Hertz
	case "pulse_width_error":
		return units.Seconds
	case "aoa_error":
		return units.Degrees
	default:
		return units.Dimensionless
	}
}

func errorModelFromDocument(entity, field string, doc errorBlockDocument, dim units.Dimension) (errormodel.Model, error) {
	kind, err := errormodel.ParseKind(doc.Type)
	if err != nil {
		return errormodel.Model{}, &simerr.ConfigurationError{Entity: entity, Field: field + ".type", Err: err}
	}
	m := errormodel.Model{Kind: kind, Dimension: dim}
	switch kind {
	case errormodel.Constant:
		m.Value, err = parseCheckedOrZero(entity, field+".error", doc.Error, dim)
	case errormodel.Linear:
		m.Value, err = parseCheckedOrZero(entity, field+".error", doc.Error, dim)
		if err == nil {
			m.Rate, _, err = parseOrZero(doc.Rate)
		}
	case errormodel.Sinusoidal:
		m.Amplitude, err = parseCheckedOrZero(entity, field+".amplitude", doc.Amplitude, dim)
		if err == nil {
			m.FrequencyHz, _, err = parseOrZero(doc.Frequency)
		}
		if err == nil {
			m.PhaseRad, _, err = parseOrZero(doc.Phase)
		}
	case errormodel.Gaussian:
		m.Sigma, err = parseCheckedOrZero(entity, field+".error", doc.Error, dim)
	}
	if err != nil {
		return errormodel.Model{}, err
	}
	return m, nil
}

// parseOrZero parses a value-and-unit string, treating "" as the zero
// quantity (an omitted field, e.g. a linear error's rate left out).
// The parsed unit is returned but not checked by the callers here.
func parseOrZero(s string) (float64, units.Dimension, error) {
	if s == "" {
		return 0, units.Dimensionless, nil
	}
	return units.ParseValueUnit(s)
}

// parseChecked parses a value-and-unit string for entity.field and
// fails with simerr.UnitError if its dimension doesn't match want
// (§7 — a field given the wrong unit must raise a fatal unit error,
// not be silently accepted as a bare float).
func parseChecked(entity, field, s string, want units.Dimension) (float64, error) {
	v, dim, err := units.ParseValueUnit(s)
	if err != nil {
		return 0, &simerr.ConfigurationError{Entity: entity, Field: field, Err: err}
	}
	if dim != want {
		return 0, &simerr.UnitError{Entity: entity, Field: field, Err: fmt.Errorf("expected %s, got %s", want, dim)}
	}
	return v, nil
}

// parseCheckedOrZero is parseChecked, but treats "" as the zero
// quantity for the expected dimension (an omitted error magnitude).
func parseCheckedOrZero(entity, field, s string, want units.Dimension) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return parseChecked(entity, field, s, want)
}
