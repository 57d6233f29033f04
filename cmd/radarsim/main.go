// Command radarsim runs a PDW simulation scenario to completion and
// writes the resulting pulse stream to a sink (§6).
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pv/radarsim/internal/engine"
	"github.com/pv/radarsim/internal/simerr"
	"github.com/pv/radarsim/internal/sink"
	"github.com/pv/radarsim/internal/sink/csv"
	"github.com/pv/radarsim/pkg/config"
)

type options struct {
	configPath  string
	out         string
	sinkKind    string
	seed        int64
	logFile     string
	runLog      string
	debug       bool
	version     bool
	generateCfg string
}

const versionString = "1.0.0-dev"

func main() {
	opts := parseFlags()

	if opts.version {
		fmt.Println("radarsim", versionString)
		return
	}

	if opts.generateCfg != "" {
		if err := writeExampleConfig(opts.generateCfg); err != nil {
			log.Fatalf("write example config: %v", err)
		}
		return
	}

	if err := configureLogging(opts.logFile); err != nil {
		log.Fatalf("log file: %v", err)
	}

	if opts.configPath == "" {
		log.Fatalf("configuration: -config is required")
	}

	cfg, err := config.LoadScenario(opts.configPath)
	if err != nil {
		log.Fatalf("%v", err)
	}

	seed := opts.seed
	if seed == 0 {
		seed = cfg.Seed
	}

	sc, err := engine.NewScenario(cfg.StartTime, cfg.EndTime, cfg.TimeStep, cfg.PDWTickWindow, seed, cfg.Radars, cfg.Sensors)
	if err != nil {
		log.Fatalf("%v", err)
	}

	var runLogger *log.Logger
	if opts.runLog != "" {
		f, err := os.Create(opts.runLog)
		if err != nil {
			log.Fatalf("run-log: %v", err)
		}
		defer f.Close()
		runLogger = log.New(f, "", log.LstdFlags)
		for _, radar := range sc.Radars {
			runLogger.Printf("added radar %s to scenario", radar.Name)
		}
		for _, sensor := range sc.Sensors {
			runLogger.Printf("added sensor %s to scenario", sensor.Name)
		}
	}

	out, err := sink.Open(context.Background(), opts.sinkKind, opts.out)
	if err != nil {
		log.Fatalf("%v", err)
	}

	runErr := sc.Run(out, runLogger)
	if runErr != nil {
		if cs, ok := out.(*csv.Sink); ok {
			cs.Truncated = true
		}
	}
	if closeErr := out.Close(); closeErr != nil && runErr == nil {
		runErr = closeErr
	}
	if runErr != nil {
		log.Fatalf("%v", runErr)
	}

	if opts.debug {
		log.Printf("radars=%d sensors=%d", len(sc.Radars), len(sc.Sensors))
	}
}

func parseFlags() options {
	var opt options
	flag.StringVar(&opt.configPath, "config", "", "path to the scenario YAML document")
	flag.StringVar(&opt.out, "out", "out.csv", "sink target (file path, or DSN for non-csv sinks)")
	flag.StringVar(&opt.sinkKind, "sink", "csv", "sink kind: csv | sqlite | postgres | clickhouse | influxdb")
	flag.Int64Var(&opt.seed, "seed", 0, "root random seed (overrides the scenario document's seed if nonzero)")
	flag.StringVar(&opt.logFile, "log-file", "", "redirect log output to this file")
	flag.StringVar(&opt.runLog, "run-log", "", "write a human-readable per-tick run log to this file")
	flag.BoolVar(&opt.debug, "debug", false, "print extra diagnostics after the run completes")
	flag.BoolVar(&opt.version, "version", false, "print version and exit")
	flag.StringVar(&opt.generateCfg, "generate-config", "", "write an example scenario YAML to this path ('-' for stdout)")
	flag.Parse()
	return opt
}

func configureLogging(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return &simerr.IOError{Op: "open log file", Err: err}
	}
	log.SetOutput(f)
	return nil
}

func writeExampleConfig(path string) error {
	if path == "-" {
		_, err := os.Stdout.WriteString(config.ExampleScenarioYAML)
		return err
	}
	if err := os.WriteFile(path, []byte(config.ExampleScenarioYAML), 0o644); err != nil {
		return err
	}
	fmt.Printf("Example scenario written to %s\n", path)
	return nil
}
