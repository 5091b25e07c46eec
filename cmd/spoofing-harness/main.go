// Package main runs the sensor spoofing harness and prints its verdicts.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/goodnatureofminers/complianceledger/internal/ledger/telemetry"
	"github.com/jessevdk/go-flags"
)

type config struct {
	MaxDriftDeg float64       `long:"max-drift" env:"HARNESS_MAX_DRIFT" description:"allowed GPS drift in degrees" default:"0.01"`
	MaxAge      time.Duration `long:"max-age" env:"HARNESS_MAX_AGE" description:"allowed telemetry lag behind the oracle" default:"5m"`
	NoColor     bool          `long:"no-color" env:"NO_COLOR" description:"disable colored output"`
}

func main() {
	cfg := config{}
	if _, err := flags.Parse(&cfg); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "failed to parse flags: %v\n", err)
		os.Exit(2)
	}
	if cfg.NoColor {
		color.NoColor = true
	}

	policy := telemetry.Policy{MaxDriftDeg: cfg.MaxDriftDeg, MaxAge: cfg.MaxAge}
	results := telemetry.Run(time.Now().UTC(), policy, telemetry.DefaultScenarios())
	if !report(color.Output, results) {
		os.Exit(1)
	}
}

// report prints one line per result. The baseline must pass and every
// spoofed scenario must be caught; report returns false otherwise.
func report(w io.Writer, results []telemetry.Result) bool {
	pass := color.New(color.FgGreen, color.Bold)
	fail := color.New(color.FgRed, color.Bold)
	warn := color.New(color.FgYellow)

	healthy := true
	for _, r := range results {
		expected := r.OK == (r.Scenario == "baseline")
		verdict := fail
		if r.OK {
			verdict = pass
		}
		_, _ = verdict.Fprintf(w, "%-14s %-5t %s", r.Scenario, r.OK, r.Reason)
		if !expected {
			healthy = false
			_, _ = warn.Fprint(w, "  unexpected")
		}
		_, _ = fmt.Fprintln(w)
	}
	return healthy
}
