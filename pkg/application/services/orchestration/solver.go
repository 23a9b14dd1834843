package orchestration

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iandogless-creator/hydronet/pkg/application/dto"
	"github.com/iandogless-creator/hydronet/pkg/application/services/flowplan"
	"github.com/iandogless-creator/hydronet/pkg/application/services/indexpath"
	"github.com/iandogless-creator/hydronet/pkg/application/services/pressure"
	"github.com/iandogless-creator/hydronet/pkg/application/services/pump"
	"github.com/iandogless-creator/hydronet/pkg/application/services/sizing"
	"github.com/iandogless-creator/hydronet/pkg/domain/entities"
	"github.com/iandogless-creator/hydronet/pkg/domain/repositories"
	"github.com/iandogless-creator/hydronet/pkg/domain/services"
	"github.com/iandogless-creator/hydronet/pkg/infrastructure/trace"
)

// Catalog keys and design values assumed when the caller declares nothing.
const (
	DefaultFluidKey      entities.FluidKey    = "WATER"
	DefaultMaterialKey   entities.MaterialKey = "COPPER_EN1057"
	DefaultDesignDeltaTK                      = 10.0
)

// Config carries the declared design intent for one solve
type Config struct {
	// FluidKey selects the working fluid from the fluid catalog.
	FluidKey entities.FluidKey
	// MaterialKey selects the network default pipe material; individual
	// legs may override it.
	MaterialKey entities.MaterialKey
	// DesignDeltaTK is the network design temperature drop. Zero means
	// the default; a declared negative value flows through as no-flow
	// terminal rows.
	DesignDeltaTK float64
	// MaxVelocityMS is the pipe sizing velocity ceiling.
	MaxVelocityMS float64
	// OperatingTempC evaluates the fluid at an operating temperature
	// instead of its reference properties. Must lie inside the fluid's
	// rated range.
	OperatingTempC *float64
	// Pump is the pump selection policy. The zero value takes the pump
	// package defaults with density resolved from the working fluid.
	Pump pump.Config
	// Workers bounds the parallel sizing fan-out; 0 means one worker per
	// CPU.
	Workers int
}

// DefaultConfig returns the solve configuration used when the caller
// declares nothing: water in copper at ΔT 10 K under the conventional
// residential velocity ceiling
func DefaultConfig() Config {
	return Config{
		FluidKey:      DefaultFluidKey,
		MaterialKey:   DefaultMaterialKey,
		DesignDeltaTK: DefaultDesignDeltaTK,
		MaxVelocityMS: sizing.DefaultMaxVelocityMS,
		Pump:          pump.DefaultConfig(),
	}
}

// withDefaults fills unset fields so the zero Config is usable
func (c Config) withDefaults() Config {
	if c.FluidKey == "" {
		c.FluidKey = DefaultFluidKey
	}
	if c.MaterialKey == "" {
		c.MaterialKey = DefaultMaterialKey
	}
	if c.DesignDeltaTK == 0 {
		c.DesignDeltaTK = DefaultDesignDeltaTK
	}
	if c.MaxVelocityMS <= 0 {
		c.MaxVelocityMS = sizing.DefaultMaxVelocityMS
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	return c
}

// Solver coordinates the full solve pipeline over the property catalogs:
// flow planning, pipe sizing, pressure aggregation, index path selection,
// and pump matching
type Solver struct {
	materials repositories.MaterialCatalog
	fluids    repositories.FluidCatalog
	fittings  repositories.FittingCatalog
	pumps     repositories.PumpCatalog

	conditioner *services.FluidConditioner
	validator   *services.TopologyValidator
	planner     *flowplan.Planner
	sizer       *sizing.Engine
	aggregator  *pressure.Aggregator
	indexer     *indexpath.Selector

	recorder *trace.Recorder
}

// NewSolver wires a solver over the four property catalogs
func NewSolver(
	materials repositories.MaterialCatalog,
	fluids repositories.FluidCatalog,
	fittings repositories.FittingCatalog,
	pumps repositories.PumpCatalog,
) *Solver {
	return &Solver{
		materials:   materials,
		fluids:      fluids,
		fittings:    fittings,
		pumps:       pumps,
		conditioner: services.NewFluidConditioner(),
		validator:   services.NewTopologyValidator(),
		planner:     flowplan.NewPlanner(),
		sizer:       sizing.NewEngine(),
		aggregator:  pressure.NewAggregator(pressure.NewCalculator(fittings)),
		indexer:     indexpath.NewSelector(),
	}
}

// WithTrace attaches a recorder that receives one event per pipeline stage.
// A nil recorder disables tracing.
func (s *Solver) WithTrace(recorder *trace.Recorder) *Solver {
	s.recorder = recorder
	return s
}

// Solve runs the full pipeline for one committed network. Declared paths
// are validated and honored when present; otherwise root→terminal paths
// are enumerated from the tree. When no pump satisfies the duty point the
// hydraulic result is still returned alongside ErrUndersizedSystem.
func (s *Solver) Solve(
	ctx context.Context,
	legs []*entities.CommittedLeg,
	declaredPaths []*entities.NetworkPath,
	cfg Config,
) (*dto.SolveResult, error) {
	started := time.Now()
	cfg = cfg.withDefaults()

	if len(legs) == 0 {
		return nil, fmt.Errorf("no committed legs provided")
	}

	// Stage 1: Validate and index the committed topology
	if report := s.validator.ValidateNetwork(legs); !report.IsValid() {
		return nil, fmt.Errorf("invalid network: %s", strings.Join(report.Errors, "; "))
	}
	topo, err := services.NewNetworkTopology(legs)
	if err != nil {
		return nil, fmt.Errorf("failed to index network: %w", err)
	}
	s.recorder.Record("topology", "validated %d legs, root %s", topo.Len(), topo.RootID())

	// Stage 2: Resolve the working fluid at its operating condition
	fluid, err := s.fluids.GetFluid(cfg.FluidKey)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve fluid: %w", err)
	}
	state, err := s.conditioner.Resolve(fluid, cfg.OperatingTempC)
	if err != nil {
		return nil, fmt.Errorf("failed to condition fluid %s: %w", fluid.Key, err)
	}
	s.recorder.Record("fluid", "%s at ρ=%.1f kg/m³, ν=%.3g m²/s",
		fluid.Key, state.DensityKgM3, state.KinematicViscosityM2S)

	// Stage 3: Derive design flows from terminal heat demands
	plan, err := s.planner.Derive(topo, state, cfg.DesignDeltaTK)
	if err != nil {
		return nil, fmt.Errorf("failed to derive flow plan: %w", err)
	}
	s.recorder.Record("flow", "%d terminals, total %.4f m³/h",
		len(plan.Terminals), plan.TotalFlow.M3H())

	// Stage 4: Settle the path set: declared paths win, else enumerate
	paths := declaredPaths
	if len(paths) > 0 {
		for _, path := range paths {
			if path == nil {
				return nil, fmt.Errorf("declared path cannot be nil")
			}
			if err := topo.ValidatePath(path); err != nil {
				return nil, fmt.Errorf("declared path %s: %w", path.ID, err)
			}
		}
	} else {
		paths, err = topo.EnumeratePaths()
		if err != nil {
			return nil, fmt.Errorf("failed to enumerate paths: %w", err)
		}
	}
	s.recorder.Record("paths", "%d root→terminal paths", len(paths))

	// Stage 5: Size every leg in parallel at its planned flow
	sized, err := s.sizeLegs(topo, plan, state, cfg)
	if err != nil {
		return nil, err
	}
	s.recorder.Record("sizing", "sized %d legs across %d workers",
		len(sized), cfg.Workers)

	// Stage 6: Aggregate pressure drops along every path
	sizedByID := make(map[entities.LegID]*entities.SizedSegment, len(sized))
	for _, seg := range sized {
		sizedByID[seg.LegID] = seg
	}
	drops, err := s.aggregator.Aggregate(topo, paths, sizedByID, state)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate pressure drops: %w", err)
	}

	// Stage 7: Select the index path and derive balancing targets
	analysis, err := s.indexer.Select(drops)
	if err != nil {
		return nil, fmt.Errorf("failed to select index path: %w", err)
	}
	s.recorder.Record("index", "%s", analysis.Summary())

	// Stage 8: Assemble the hydraulic result before pump matching so an
	// undersized system still reports its numbers
	flowByLeg := make(map[entities.LegID]float64, len(plan.ByLeg))
	for id, flow := range plan.ByLeg {
		flowByLeg[id] = flow.M3S()
	}
	var warnings []entities.Warning
	for _, seg := range sized {
		warnings = append(warnings, seg.Warnings...)
	}

	result := &dto.SolveResult{
		RunID:       uuid.New(),
		GeneratedAt: time.Now(),
		Fluid: dto.FluidSummary{
			Key:                   fluid.Key,
			Name:                  fluid.Name,
			TemperatureC:          state.TemperatureC,
			DensityKgM3:           state.DensityKgM3,
			KinematicViscosityM2S: state.KinematicViscosityM2S,
			SpecificHeatJKgK:      state.SpecificHeatJKgK,
		},
		DesignDeltaTK: cfg.DesignDeltaTK,
		Terminals:     plan.Terminals,
		FlowByLegM3S:  flowByLeg,
		TotalFlowM3S:  plan.TotalFlow.M3S(),
		TotalFlowM3H:  plan.TotalFlow.M3H(),
		SizedLegs:     sized,
		Paths:         drops,
		Index:         analysis,
		Warnings:      warnings,
	}

	// Stage 9: Match a pump against the duty point (total flow at index
	// head). A system with no flow has nothing to pump.
	if plan.TotalFlow.IsZero() || analysis.IndexPa <= 0 {
		s.recorder.Record("pump", "skipped: no system flow")
		result.SolveTime = time.Since(started)
		return result, nil
	}

	pumpCfg := s.pumpConfig(cfg, state)
	curves, err := s.pumps.GetAllPumps()
	if err != nil {
		return nil, fmt.Errorf("failed to list pump catalog: %w", err)
	}
	selection, err := pump.NewSelector(pumpCfg).Select(plan.TotalFlow.M3S(), analysis.IndexPa, curves)
	if err != nil {
		if errors.Is(err, pump.ErrUndersizedSystem) {
			s.recorder.Record("pump", "undersized: %v", err)
			result.SolveTime = time.Since(started)
			return result, fmt.Errorf("pump selection: %w", err)
		}
		return nil, fmt.Errorf("pump selection: %w", err)
	}
	result.Pump = selection
	s.recorder.Record("pump", "%s at ratio %.2f, margin %.3f m",
		selection.PumpKey, selection.SpeedRatio, selection.HeadMarginM)

	result.SolveTime = time.Since(started)
	return result, nil
}

// sizeLegs fans leg sizing out across cfg.Workers goroutines. Results and
// errors land in index-addressed slices so no ordering or locking is needed.
func (s *Solver) sizeLegs(
	topo *services.NetworkTopology,
	plan *flowplan.Plan,
	state *services.FluidState,
	cfg Config,
) ([]*entities.SizedSegment, error) {
	legs := topo.Legs()

	// Materials are resolved up front on the calling goroutine; workers
	// only read.
	materials := make([]*entities.PipeMaterial, len(legs))
	byKey := make(map[entities.MaterialKey]*entities.PipeMaterial)
	for i, leg := range legs {
		key := cfg.MaterialKey
		if leg.Material != "" {
			key = leg.Material
		}
		material, cached := byKey[key]
		if !cached {
			var err error
			material, err = s.materials.GetMaterial(key)
			if err != nil {
				return nil, fmt.Errorf("leg %s: failed to resolve material: %w", leg.ID, err)
			}
			byKey[key] = material
		}
		materials[i] = material
	}

	workers := cfg.Workers
	if workers > len(legs) {
		workers = len(legs)
	}
	rules := sizing.Rules{MaxVelocityMS: cfg.MaxVelocityMS}

	sized := make([]*entities.SizedSegment, len(legs))
	sizeErrs := make([]error, len(legs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				flow, err := plan.Flow(legs[i].ID)
				if err != nil {
					sizeErrs[i] = err
					continue
				}
				sized[i], sizeErrs[i] = s.sizer.SizeLeg(legs[i], flow, materials[i], state, rules)
			}
		}()
	}
	for i := range legs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for i, err := range sizeErrs {
		if err != nil {
			return nil, fmt.Errorf("failed to size leg %s: %w", legs[i].ID, err)
		}
	}
	return sized, nil
}

// pumpConfig settles the pump selection policy: the zero config takes the
// package defaults, and an unset density/gravity is filled from the
// resolved fluid rather than the pump package's plain-water constant
func (s *Solver) pumpConfig(cfg Config, state *services.FluidState) pump.Config {
	pumpCfg := cfg.Pump
	if pumpCfg == (pump.Config{}) {
		pumpCfg = pump.DefaultConfig()
		pumpCfg.DensityKgM3 = 0
	}
	if pumpCfg.DensityKgM3 <= 0 {
		pumpCfg.DensityKgM3 = state.DensityKgM3
	}
	if pumpCfg.GravityMS2 <= 0 {
		pumpCfg.GravityMS2 = services.StandardGravity
	}
	return pumpCfg
}
