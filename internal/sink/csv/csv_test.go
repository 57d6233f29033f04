package csv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pv/radarsim/internal/pdw"
)

func TestSinkWritesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Write(pdw.PDW{TimeEmitted: 0.001, SensorID: "S1", RadarID: "R1", TOA: 0.0010033, Amplitude: -3, Frequency: 1e10, PulseWidth: 1e-6, AOA: 12.5}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if lines[0] != "Time,SensorID,RadarID,TOA,Amplitude,Frequency,PulseWidth,AOA" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
}

func TestSinkAppendsTruncationNotice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	s.Truncated = true
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "truncated") {
		t.Errorf("expected truncation notice in output, got %q", data)
	}
}
