package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iandogless-creator/hydronet/pkg/application/services/orchestration"
	"github.com/iandogless-creator/hydronet/pkg/application/services/pump"
	"github.com/iandogless-creator/hydronet/pkg/domain/entities"
	"github.com/iandogless-creator/hydronet/pkg/infrastructure/catalogs/csv"
	"github.com/iandogless-creator/hydronet/pkg/infrastructure/catalogs/memory"
	"github.com/iandogless-creator/hydronet/pkg/infrastructure/scenario"
	"github.com/iandogless-creator/hydronet/pkg/infrastructure/trace"
	"github.com/iandogless-creator/hydronet/pkg/interfaces/cli/output"
)

// Config holds configuration for the solve command
type Config struct {
	ScenarioFile  string
	MaterialsFile string
	PumpsFile     string
	OutputDir     string
	Format        string
	Fluid         string
	Material      string
	DeltaT        float64
	MaxVelocity   float64
	OperatingTemp float64
	Workers       int
	Trace         bool
	SampleFile    string
	Verbose       bool
	Help          bool
}

// SolveCommand handles the main network solve logic
type SolveCommand struct {
	config Config
}

// NewSolveCommand creates a new solve command with the given configuration
func NewSolveCommand(config Config) *SolveCommand {
	return &SolveCommand{
		config: config,
	}
}

// Execute runs the solve command
func (c *SolveCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if c.config.SampleFile != "" {
		if err := scenario.WriteSample(c.config.SampleFile); err != nil {
			return fmt.Errorf("error writing sample scenario: %w", err)
		}
		fmt.Printf("✅ Sample scenario written to: %s\n", c.config.SampleFile)
		return nil
	}

	// Validate inputs
	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if c.config.Verbose {
		c.printHeader()
	}

	// Load the scenario file
	if c.config.Verbose {
		fmt.Println("📂 Loading scenario...")
	}

	scn, err := scenario.NewLoader().Load(c.config.ScenarioFile)
	if err != nil {
		return fmt.Errorf("error loading scenario: %w", err)
	}

	if c.config.Verbose {
		roomCount := 0
		for _, leg := range scn.Legs {
			roomCount += len(leg.Rooms)
		}
		fmt.Printf("✅ Scenario loaded successfully:\n")
		fmt.Printf("  Name: %s\n", scn.Name)
		fmt.Printf("  Legs: %d\n", len(scn.Legs))
		fmt.Printf("  Rooms: %d\n", roomCount)
		fmt.Printf("  Declared paths: %d\n", len(scn.Paths))
		fmt.Println()
	}

	// Create catalogs
	fluids := memory.DefaultFluidCatalog()
	fittings := memory.DefaultFittingCatalog()

	materials, err := c.materialCatalog()
	if err != nil {
		return err
	}

	pumps, err := c.pumpCatalog()
	if err != nil {
		return err
	}

	solveConfig := c.solveConfig(scn)

	if c.config.Verbose {
		fmt.Printf("🔍 Solving with fluid %s, material %s\n",
			solveConfig.FluidKey, solveConfig.MaterialKey)
	}

	// Create the solver
	solver := orchestration.NewSolver(materials, fluids, fittings, pumps)

	var recorder *trace.Recorder
	if c.config.Trace {
		recorder = trace.NewRecorder()
		solver = solver.WithTrace(recorder)
	}

	// Run the network solve
	if c.config.Verbose {
		fmt.Println("🔄 Solving network...")
	}

	startTime := time.Now()
	result, err := solver.Solve(ctx, scn.Legs, scn.Paths, solveConfig)
	solveTime := time.Since(startTime)

	if err != nil {
		// An undersized system still carries full hydraulics; report and
		// keep going so the sizing and balancing output is not lost.
		if errors.Is(err, pump.ErrUndersizedSystem) && result != nil {
			fmt.Printf("⚠️  %v\n\n", err)
		} else {
			return fmt.Errorf("error solving network: %w", err)
		}
	}

	if c.config.Verbose {
		fmt.Printf("✅ Solve completed in %v\n\n", solveTime)
	}

	if recorder != nil {
		fmt.Println("🔍 Solve trace:")
		for _, event := range recorder.Events() {
			fmt.Printf("  %s\n", event)
		}
		fmt.Println()
	}

	// Generate output
	outputConfig := output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
	}

	if err := output.Generate(result, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	if c.config.Verbose {
		fmt.Println("🏁 Network solve complete!")
	}

	return nil
}

// validateInputs validates the command configuration
func (c *SolveCommand) validateInputs() error {
	if c.config.ScenarioFile == "" {
		return fmt.Errorf("must specify a -scenario file (use -sample <file> to write a starter scenario)")
	}
	return nil
}

// materialCatalog returns the pipe material catalog, loading it from CSV
// when a -materials file is given
func (c *SolveCommand) materialCatalog() (*memory.MaterialCatalog, error) {
	if c.config.MaterialsFile == "" {
		return memory.DefaultMaterialCatalog(), nil
	}

	loaded, err := csv.NewLoader().LoadMaterials(c.config.MaterialsFile)
	if err != nil {
		return nil, fmt.Errorf("error loading materials catalog: %w", err)
	}

	catalog := memory.NewMaterialCatalog(len(loaded))
	if err := catalog.LoadMaterials(loaded); err != nil {
		return nil, fmt.Errorf("error loading materials catalog: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("✅ Loaded %d pipe materials from %s\n", len(loaded), c.config.MaterialsFile)
	}

	return catalog, nil
}

// pumpCatalog returns the pump catalog, loading it from CSV when a
// -pumps file is given
func (c *SolveCommand) pumpCatalog() (*memory.PumpCatalog, error) {
	if c.config.PumpsFile == "" {
		return memory.DefaultPumpCatalog(), nil
	}

	loaded, err := csv.NewLoader().LoadPumps(c.config.PumpsFile)
	if err != nil {
		return nil, fmt.Errorf("error loading pumps catalog: %w", err)
	}

	catalog := memory.NewPumpCatalog(len(loaded))
	if err := catalog.LoadPumps(loaded); err != nil {
		return nil, fmt.Errorf("error loading pumps catalog: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("✅ Loaded %d pump curves from %s\n", len(loaded), c.config.PumpsFile)
	}

	return catalog, nil
}

// solveConfig merges solver settings: command-line flags override scenario
// values, scenario values override solver defaults
func (c *SolveCommand) solveConfig(scn *scenario.Scenario) orchestration.Config {
	cfg := orchestration.Config{
		FluidKey:       scn.FluidKey,
		MaterialKey:    scn.MaterialKey,
		DesignDeltaTK:  scn.DesignDeltaTK,
		MaxVelocityMS:  scn.MaxVelocityMS,
		OperatingTempC: scn.OperatingTempC,
		Workers:        c.config.Workers,
	}

	if c.config.Fluid != "" {
		cfg.FluidKey = entities.FluidKey(c.config.Fluid)
	}
	if c.config.Material != "" {
		cfg.MaterialKey = entities.MaterialKey(c.config.Material)
	}
	if c.config.DeltaT != 0 {
		cfg.DesignDeltaTK = c.config.DeltaT
	}
	if c.config.MaxVelocity != 0 {
		cfg.MaxVelocityMS = c.config.MaxVelocity
	}
	if c.config.OperatingTemp != 0 {
		temp := c.config.OperatingTemp
		cfg.OperatingTempC = &temp
	}

	return cfg
}

// printHeader prints the command header information
func (c *SolveCommand) printHeader() {
	fmt.Printf("🚀 Hydronet CLI\n")
	fmt.Printf("Scenario file: %s\n", c.config.ScenarioFile)
	fmt.Printf("Output format: %s\n", c.config.Format)
	if c.config.OutputDir != "" {
		fmt.Printf("Output directory: %s\n", c.config.OutputDir)
	}
	fmt.Println()
}

// showHelp displays the help message
func (c *SolveCommand) showHelp() {
	fmt.Printf(`Hydronet CLI - Hydronic Network Sizing and Pump Selection

USAGE:
    hydronet -scenario <file>              # Solve a scenario JSON file
    hydronet -sample <file>                # Write a starter scenario and exit

OPTIONS:
    -scenario <file>    Path to scenario JSON file
    -sample <file>      Write a sample scenario to the given path and exit
    -materials <file>   Load pipe materials from a CSV file instead of the built-in catalog
    -pumps <file>       Load pump curves from a CSV file instead of the built-in catalog
    -output <dir>       Output directory for results (optional)
    -format <fmt>       Output format: text, json, csv, html (default: text)
    -fluid <key>        Override the scenario fluid (default: WATER)
    -material <key>     Override the scenario pipe material (default: COPPER_EN1057)
    -delta-t <K>        Override the design temperature drop in kelvin
    -max-velocity <m/s> Override the sizing velocity limit
    -temp <degC>        Override the fluid operating temperature
    -workers <n>        Number of parallel sizing workers (default: all CPUs)
    -trace              Print per-stage solve trace events
    -verbose            Enable verbose output
    -help               Show this help message

SCENARIO FILE FORMAT:

    {
      "name": "two-storey-demo",
      "fluid": "WATER",
      "material": "COPPER_EN1057",
      "design_delta_t_k": 10,
      "max_velocity_m_s": 1.5,
      "legs": [
        {
          "id": "boiler",
          "name": "Boiler primary",
          "children": ["ground", "first"],
          "segments": [
            {"pipe_m": 6},
            {"fitting": "GATE_VALVE", "count": 2}
          ]
        },
        {
          "id": "ground",
          "parent": "boiler",
          "rooms": [
            {"id": "lounge", "heat_w": 3200},
            {"id": "bath", "heat_w": 600, "delta_t_k": 15}
          ],
          "segments": [
            {"pipe_m": 9},
            {"fitting": "TRV"},
            {"fitting": "LOCKSHIELD"}
          ]
        }
      ],
      "paths": [
        {"id": "to-ground", "legs": ["boiler", "ground"]}
      ]
    }

    Every leg carries either children (a branch) or rooms (a terminal),
    never both. Omitted paths are enumerated from the tree automatically.
    Fitting keys must exist in the fitting catalog; an omitted count
    means one.

CATALOG FILE FORMATS:

    Materials CSV (one row per pipe size, rows grouped by material key):
    material,name,roughness_m,conductivity_w_mk,density_kg_m3,pressure_rating_bar,size_name,outside_diameter_m,internal_diameter_m,bsp_nominal

    Pumps CSV (one row per curve point, rows grouped by pump key,
    efficiency and motor_efficiency may be left empty):
    pump,name,min_speed_ratio,max_speed_ratio,nominal_efficiency,motor_efficiency,flow_m3_h,head_m,efficiency

EXAMPLES:
    # Write a starter scenario, then solve it
    hydronet -sample house.json
    hydronet -scenario house.json -verbose

    # Solve with a tighter velocity limit at 80 degC operating temperature
    hydronet -scenario house.json -max-velocity 1.0 -temp 80

    # Generate JSON output into a results directory
    hydronet -scenario house.json -format json -output results/

    # Export CSV reports with the solve trace
    hydronet -scenario house.json -format csv -output results/ -trace

    # Produce a standalone HTML report with the pump curve chart
    hydronet -scenario house.json -format html -output results/

    # Solve against manufacturer catalogs
    hydronet -scenario house.json -materials steel.csv -pumps grundfos.csv
`)
}
