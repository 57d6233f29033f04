package config

// ExampleScenarioYAML is a documented starter scenario document,
// written by `radarsim -generate-config`.
const ExampleScenarioYAML = `# Example PDW simulator scenario.

scenario:
  start_time: 0
  end_time: 0.01
  time_step: 0.001
  # pdw_tick_window defaults to time_step if omitted.
  seed: 1

radars:
  - name: R1
    start_position: [0, 0]
    velocity: [0, 0]
    start_time: 0
    power: 1 # watts
    rotation_type: constant
    rotation_params:
      t0: 0
      alpha0: 0
      T_rot: 2.5
    pri_type: fixed
    pri_params:
      value: 0.001
    frequency_type: fixed
    frequency_params:
      value: 10000000000 # 10 GHz
    pulse_width_type: fixed
    pulse_width_params:
      value: 0.000001 # 1 microsecond
    lobe_pattern:
      type: Sinc
      main_lobe_opening_angle: "10 deg"
      radar_power_at_main_lobe: "0 dB"
      radar_power_at_back_lobe: "-20 dB"

sensors:
  - name: S1
    start_position: [1000, 0]
    velocity: [0, 0]
    start_time: 0
    saturation_level: "1000 dB"
    detection_probability:
      level: ["-1000 dB"]
      probability: ["100 %"]
    amplitude_error:
      systematic: {type: constant, error: "0 dB"}
      arbitrary: {type: constant, error: "0 dB"}
    toa_error:
      systematic: {type: constant, error: "0 s"}
      arbitrary: {type: gaussian, error: "1e-9 s"}
    frequency_error:
      systematic: {type: constant, error: "0 Hz"}
      arbitrary: {type: constant, error: "0 Hz"}
    pulse_width_error:
      systematic: {type: constant, error: "0 s"}
      arbitrary: {type: constant, error: "0 s"}
    aoa_error:
      systematic: {type: constant, error: "0 deg"}
      arbitrary: {type: constant, error: "0 deg"}
`
