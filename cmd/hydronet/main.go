package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/iandogless-creator/hydronet/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		scenarioFile = flag.String(
			"scenario",
			"",
			"Path to scenario JSON file",
		)
		sampleFile    = flag.String("sample", "", "Write a sample scenario to the given path and exit")
		materialsFile = flag.String("materials", "", "Load pipe materials from a CSV file instead of the built-in catalog")
		pumpsFile     = flag.String("pumps", "", "Load pump curves from a CSV file instead of the built-in catalog")
		outputDir     = flag.String("output", "", "Output directory for results (optional)")
		format        = flag.String("format", "text", "Output format: text, json, csv, html")
		fluid         = flag.String("fluid", "", "Override the scenario fluid key")
		material      = flag.String("material", "", "Override the scenario pipe material key")
		deltaT        = flag.Float64("delta-t", 0, "Override the design temperature drop in kelvin")
		maxVelocity   = flag.Float64("max-velocity", 0, "Override the sizing velocity limit in m/s")
		operatingTemp = flag.Float64("temp", 0, "Override the fluid operating temperature in degC")
		workers       = flag.Int("workers", 0, "Number of parallel sizing workers (0 = all CPUs)")
		traceEvents   = flag.Bool("trace", false, "Print per-stage solve trace events")
		verbose       = flag.Bool("verbose", false, "Enable verbose output")
		help          = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	// Create command configuration
	config := commands.Config{
		ScenarioFile:  *scenarioFile,
		SampleFile:    *sampleFile,
		MaterialsFile: *materialsFile,
		PumpsFile:     *pumpsFile,
		OutputDir:     *outputDir,
		Format:        *format,
		Fluid:         *fluid,
		Material:      *material,
		DeltaT:        *deltaT,
		MaxVelocity:   *maxVelocity,
		OperatingTemp: *operatingTemp,
		Workers:       *workers,
		Trace:         *traceEvents,
		Verbose:       *verbose,
		Help:          *help,
	}

	// Create and execute command
	cmd := commands.NewSolveCommand(config)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
