// Package pdw defines the Pulse Descriptor Word record (§3), the sole
// unit of output the simulator produces. Nothing in this package
// depends on the engine that builds PDWs, keeping the record shape
// reusable by every sink implementation.
package pdw

import "fmt"

// PDW is one detected pulse as observed by a sensor.
type PDW struct {
	TimeEmitted float64
	SensorID    string
	RadarID     string
	TOA         float64
	Amplitude   float64
	Frequency   float64
	PulseWidth  float64
	AOA         float64
}

// CSVHeader is the column header line of §6's CSV output contract.
const CSVHeader = "Time,SensorID,RadarID,TOA,Amplitude,Frequency,PulseWidth,AOA"

// CSVRow renders the PDW as one CSV data line matching CSVHeader's
// column order, magnitudes only (no unit suffixes).
func (p PDW) CSVRow() string {
	return fmt.Sprintf("%g,%s,%s,%g,%g,%g,%g,%g",
		p.TimeEmitted, p.SensorID, p.RadarID, p.TOA, p.Amplitude, p.Frequency, p.PulseWidth, p.AOA)
}

// Less orders PDWs by the canonical (time_emitted, sensor_id, radar_id)
// triple (§5).
func Less(a, b PDW) bool {
	if a.TimeEmitted != b.TimeEmitted {
		return a.TimeEmitted < b.TimeEmitted
	}
	if a.SensorID != b.SensorID {
		return a.SensorID < b.SensorID
	}
	return a.RadarID < b.RadarID
}
