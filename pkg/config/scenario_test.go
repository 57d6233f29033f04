package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pv/radarsim/internal/engine"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp scenario: %v", err)
	}
	return path
}

func TestLoadScenarioExampleBuildsEngine(t *testing.T) {
	path := writeTemp(t, ExampleScenarioYAML)
	cfg, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	if len(cfg.Radars) != 1 || len(cfg.Sensors) != 1 {
		t.Fatalf("got %d radars, %d sensors, want 1 and 1", len(cfg.Radars), len(cfg.Sensors))
	}
	if cfg.Radars[0].Lobe.ThetaMLDeg != 10 {
		t.Errorf("theta_ml = %v, want 10", cfg.Radars[0].Lobe.ThetaMLDeg)
	}
	if cfg.Sensors[0].SaturationDb != 1000 {
		t.Errorf("saturation = %v, want 1000", cfg.Sensors[0].SaturationDb)
	}

	sc, err := engine.NewScenario(cfg.StartTime, cfg.EndTime, cfg.TimeStep, cfg.PDWTickWindow, cfg.Seed, cfg.Radars, cfg.Sensors)
	if err != nil {
		t.Fatalf("NewScenario: %v", err)
	}
	if len(sc.Radars) != 1 {
		t.Fatalf("scenario has %d radars, want 1", len(sc.Radars))
	}
}

func TestLoadScenarioRejectsUnknownRotationType(t *testing.T) {
	path := writeTemp(t, `
scenario: {start_time: 0, end_time: 1, time_step: 0.1}
radars:
  - name: R1
    rotation_type: orbital
    pri_type: fixed
    pri_params: {value: 0.1}
    frequency_type: fixed
    frequency_params: {value: 1}
    pulse_width_type: fixed
    pulse_width_params: {value: 1}
    lobe_pattern: {main_lobe_opening_angle: "1 deg", radar_power_at_main_lobe: "0 dB", radar_power_at_back_lobe: "-10 dB"}
sensors: []
`)
	if _, err := LoadScenario(path); err == nil {
		t.Fatalf("expected a configuration error for an unknown rotation_type")
	}
}

func TestLoadScenarioRejectsDuplicateNames(t *testing.T) {
	path := writeTemp(t, `
scenario: {start_time: 0, end_time: 1, time_step: 0.1}
radars:
  - name: DUP
    rotation_type: constant
    rotation_params: {T_rot: 1}
    pri_type: fixed
    pri_params: {value: 0.1}
    frequency_type: fixed
    frequency_params: {value: 1}
    pulse_width_type: fixed
    pulse_width_params: {value: 1}
    lobe_pattern: {main_lobe_opening_angle: "1 deg", radar_power_at_main_lobe: "0 dB", radar_power_at_back_lobe: "-10 dB"}
sensors:
  - name: DUP
    saturation_level: "0 dB"
`)
	if _, err := LoadScenario(path); err == nil {
		t.Fatalf("expected a configuration error for duplicate radar/sensor names")
	}
}

func TestLoadScenarioRejectsMismatchedDetectionArrays(t *testing.T) {
	path := writeTemp(t, `
scenario: {start_time: 0, end_time: 1, time_step: 0.1}
radars: []
sensors:
  - name: S1
    saturation_level: "0 dB"
    detection_probability:
      level: ["-10 dB", "-20 dB"]
      probability: ["100 %"]
`)
	if _, err := LoadScenario(path); err == nil {
		t.Fatalf("expected an invariant violation for mismatched detection arrays")
	}
}
