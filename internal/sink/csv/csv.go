// Package csv implements the mandatory CSV PDW sink (§6). Writes are
// buffered and flushed on Close, the same resource discipline the
// teacher's replay.Service applies to its storage/output collaborators:
// open once at entry, keep ownership for the run, close once at exit.
package csv

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/pv/radarsim/internal/pdw"
	"github.com/pv/radarsim/internal/simerr"
)

// Sink writes PDWs to a CSV file with the §6 header and column order.
// If the run ends in error, Truncated marks the writer so Close can
// append the truncation-notice line required by §7.
type Sink struct {
	f         *os.File
	w         *csv.Writer
	Truncated bool
}

// Open creates (or truncates) path and writes the CSV header line.
// csv.Writer buffers internally; Close flushes it.
func Open(path string) (*Sink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, &simerr.IOError{Op: "csv: open " + path, Err: err}
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{"Time", "SensorID", "RadarID", "TOA", "Amplitude", "Frequency", "PulseWidth", "AOA"}); err != nil {
		f.Close()
		return nil, &simerr.IOError{Op: "csv: write header", Err: err}
	}
	return &Sink{f: f, w: w}, nil
}

// Write appends one PDW row.
func (s *Sink) Write(p pdw.PDW) error {
	row := []string{
		fmt.Sprintf("%g", p.TimeEmitted),
		p.SensorID,
		p.RadarID,
		fmt.Sprintf("%g", p.TOA),
		fmt.Sprintf("%g", p.Amplitude),
		fmt.Sprintf("%g", p.Frequency),
		fmt.Sprintf("%g", p.PulseWidth),
		fmt.Sprintf("%g", p.AOA),
	}
	if err := s.w.Write(row); err != nil {
		return &simerr.IOError{Op: "csv: write row", Err: err}
	}
	return nil
}

// Close flushes and closes the file, appending a truncation notice
// line first if the run was marked Truncated (§7).
func (s *Sink) Close() error {
	if s.Truncated {
		if err := s.w.Write([]string{"# truncated: run aborted before completion"}); err != nil {
			s.f.Close()
			return &simerr.IOError{Op: "csv: write truncation notice", Err: err}
		}
	}
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		s.f.Close()
		return &simerr.IOError{Op: "csv: flush", Err: err}
	}
	if err := s.f.Close(); err != nil {
		return &simerr.IOError{Op: "csv: close", Err: err}
	}
	return nil
}
