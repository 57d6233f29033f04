package engine

import (
	"math/rand"

	"github.com/pv/radarsim/internal/rng"
	"github.com/pv/radarsim/internal/simerr"
	"github.com/pv/radarsim/internal/units"
)

// Scenario holds time, radars and sensors (§3). Every Radar/Sensor
// table is built once at NewScenario and is read-only thereafter;
// CurrentTime is the only mutable field.
type Scenario struct {
	StartTime   float64
	EndTime     float64
	TimeStep    float64
	CurrentTime float64

	// PDWTickWindow is the half-open window [t, t+PDWTickWindow) a
	// pulse_time must fall within to be considered emitted during tick
	// t (design notes open question; defaults to TimeStep).
	PDWTickWindow float64

	// Seed is the scenario-level root seed (§5); per-(sensor,radar)
	// sub-streams are derived from it deterministically via internal/rng.
	Seed int64

	Radars  []*Radar
	Sensors []*Sensor

	// streams caches one persistent *rand.Rand per (sensor,radar) pair,
	// so successive ticks draw further along the same deterministic
	// sub-stream instead of replaying its first draw every tick.
	streams map[string]*rand.Rand
}

// NewScenario validates the scenario-level invariants (§3) and builds
// every radar/sensor table. Jitter/value generation consumes a
// throwaway *rand.Rand seeded from Seed — it does not need to be the
// same stream used later for per-(sensor,radar) error draws, since the
// pulse-train jitter and the measurement errors are independent
// sources of randomness in the data model.
func NewScenario(startTime, endTime, timeStep, tickWindow float64, seed int64, radarSpecs []RadarSpec, sensorSpecs []SensorSpec) (*Scenario, error) {
	if endTime < startTime {
		return nil, &simerr.InvariantViolation{Detail: "end_time must be >= start_time"}
	}
	if timeStep <= 0 {
		return nil, &simerr.InvariantViolation{Detail: "time_step must be > 0"}
	}
	if tickWindow <= 0 {
		tickWindow = timeStep
	}

	sc := &Scenario{
		StartTime:     startTime,
		EndTime:       endTime,
		TimeStep:      timeStep,
		CurrentTime:   startTime,
		PDWTickWindow: tickWindow,
		Seed:          seed,
	}

	buildRNG := rand.New(rand.NewSource(seed))

	seen := make(map[string]bool, len(radarSpecs)+len(sensorSpecs))
	for _, spec := range radarSpecs {
		if seen[spec.Name] {
			return nil, &simerr.ConfigurationError{Entity: spec.Name, Field: "name", Err: errDuplicateName}
		}
		seen[spec.Name] = true
		radar, err := buildRadar(spec, startTime, endTime, timeStep, buildRNG)
		if err != nil {
			return nil, err
		}
		sc.Radars = append(sc.Radars, radar)
	}
	for _, spec := range sensorSpecs {
		if seen[spec.Name] {
			return nil, &simerr.ConfigurationError{Entity: spec.Name, Field: "name", Err: errDuplicateName}
		}
		seen[spec.Name] = true
		sensor, err := buildSensor(spec, endTime, timeStep)
		if err != nil {
			return nil, err
		}
		sc.Sensors = append(sc.Sensors, sensor)
	}

	return sc, nil
}

// p0Db is the radar's reference amplitude in dBW, derived from its
// declared transmit power (§4.7 step 5's "absolute power scaling is
// absorbed into P0").
func p0Db(r *Radar) float64 {
	return units.LinearToDB(r.PowerWatts)
}

// subStream returns the deterministic per-(sensor,radar) random
// source for error draws (§5), reusing the same *rand.Rand across the
// whole run so the sub-stream advances tick over tick.
func (sc *Scenario) subStream(sensorName, radarName string) *rand.Rand {
	if sc.streams == nil {
		sc.streams = make(map[string]*rand.Rand)
	}
	key := sensorName + "\x00" + radarName
	r, ok := sc.streams[key]
	if !ok {
		r = rng.SubStream(sc.Seed, sensorName, radarName)
		sc.streams[key] = r
	}
	return r
}
