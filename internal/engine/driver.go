package engine

import (
	"fmt"
	"log"
	"sort"

	"github.com/pv/radarsim/internal/pdw"
	"github.com/pv/radarsim/internal/sink"
)

// Run advances the scenario from StartTime to EndTime in TimeStep
// increments (§4.6), invoking the PDW generator for every (sensor,
// radar) pair at every tick and writing emitted PDWs to out. Within a
// tick, records are written in sensor order, then radar order, then
// ascending pulse time (§5); they are not re-sorted by pdw.Less.
// Logger may be nil to suppress progress lines.
func (sc *Scenario) Run(out sink.Sink, logger *log.Logger) error {
	emitted := 0
	for t := sc.StartTime; t <= sc.EndTime+1e-12; t += sc.TimeStep {
		sc.CurrentTime = t
		tickCount := 0

		for _, sensor := range sc.Sensors {
			sensorPos := sensor.Trajectory.At(t)

			for _, radar := range sc.Radars {
				pulses := pulsesInWindow(radar, t, sc.PDWTickWindow)
				if len(pulses) == 0 {
					continue
				}
				radarPos := radar.Trajectory.At(t)
				boresight, _ := radar.Rotation.At(t)
				stream := sc.subStream(sensor.Name, radar.Name)

				for _, idx := range pulses {
					record, err := pdw.Generate(pdw.Pulse{
						SensorID:  sensor.Name,
						RadarID:   radar.Name,
						SensorPos: sensorPos,
						RadarPos:  radarPos,

						BoresightRad: boresight,
						Lobe:         radar.Lobe,

						PulseTime:   radar.PulseTimes[idx],
						FrequencyHz: radar.Frequencies[idx],
						PulseWidthS: radar.PulseWidths[idx],
						P0Db:        p0Db(radar),

						Detector: sensor.Detector,

						AmplitudeErr:  sensor.AmplitudeErr,
						TOAErr:        sensor.TOAErr,
						FrequencyErr:  sensor.FrequencyErr,
						PulseWidthErr: sensor.PulseWidthErr,
						AOAErr:        sensor.AOAErr,
					}, stream)
					if err != nil {
						return fmt.Errorf("engine: generate pdw for sensor %s radar %s: %w", sensor.Name, radar.Name, err)
					}
					if record == nil {
						continue
					}
					if err := out.Write(*record); err != nil {
						return fmt.Errorf("engine: write pdw: %w", err)
					}
					tickCount++
				}
			}
		}

		if logger != nil && tickCount > 0 {
			logger.Printf("t=%g: %d pdw(s)", t, tickCount)
		}
		emitted += tickCount
	}

	if logger != nil {
		logger.Printf("run complete: %d pdw(s) emitted", emitted)
	}
	return nil
}

// pulsesInWindow returns the indices of radar.PulseTimes falling in
// the half-open window [t, t+window) (§4.7 step 2), in ascending order.
func pulsesInWindow(radar *Radar, t, window float64) []int {
	times := radar.PulseTimes
	lo := sort.Search(len(times), func(i int) bool { return times[i] >= t })
	hi := sort.Search(len(times), func(i int) bool { return times[i] >= t+window })
	if lo >= hi {
		return nil
	}
	idx := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		idx = append(idx, i)
	}
	return idx
}
