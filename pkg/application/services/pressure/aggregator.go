package pressure

import (
	"fmt"

	"github.com/iandogless-creator/hydronet/pkg/domain/entities"
	"github.com/iandogless-creator/hydronet/pkg/domain/services"
)

// Aggregator sums per-leg losses along declared root-to-terminal paths.
// Aggregation is pure: the same sized set and path declarations always
// produce the same totals, and summation order never changes a total.
type Aggregator struct {
	calc       *Calculator
	hydraulics *services.HydraulicsCalculator
}

// NewAggregator creates a new path aggregator over the given calculator
func NewAggregator(calc *Calculator) *Aggregator {
	return &Aggregator{
		calc:       calc,
		hydraulics: services.NewHydraulicsCalculator(),
	}
}

// Aggregate computes one PathPressureDrop per declared path. Every leg's
// loss is computed once and shared across the paths that contain it. A path
// referencing an unknown or unsized leg fails the whole aggregation.
func (a *Aggregator) Aggregate(
	topo *services.NetworkTopology,
	paths []*entities.NetworkPath,
	sized map[entities.LegID]*entities.SizedSegment,
	fluid *services.FluidState,
) ([]*entities.PathPressureDrop, error) {
	if topo == nil {
		return nil, fmt.Errorf("topology cannot be nil")
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("at least one path is required")
	}

	// Fail fast on unknown references before computing anything
	for _, path := range paths {
		for _, id := range path.LegIDs {
			if _, err := topo.Leg(id); err != nil {
				return nil, fmt.Errorf("path %s: leg %s: %w", path.ID, id, ErrUnknownLeg)
			}
			if _, exists := sized[id]; !exists {
				return nil, fmt.Errorf("path %s: leg %s: %w", path.ID, id, ErrMissingSizing)
			}
		}
	}

	losses := make(map[entities.LegID]*LegLoss)
	warnings := make(map[entities.LegID][]entities.Warning)
	for _, path := range paths {
		for _, id := range path.LegIDs {
			if _, done := losses[id]; done {
				continue
			}
			leg, _ := topo.Leg(id)
			loss, err := a.calc.LegPressureDrop(leg, sized[id], fluid)
			if err != nil {
				return nil, err
			}
			losses[id] = loss
			warnings[id] = sized[id].Warnings
		}
	}

	results := make([]*entities.PathPressureDrop, 0, len(paths))
	for _, path := range paths {
		drop := &entities.PathPressureDrop{
			PathID:        path.ID,
			LegIDs:        path.LegIDs,
			TerminalLegID: path.TerminalLegID(),
			PerLegPa:      make(map[entities.LegID]float64, len(path.LegIDs)),
		}

		for _, id := range path.LegIDs {
			loss := losses[id]
			drop.PerLegPa[id] = loss.TotalPa
			drop.TotalPa += loss.TotalPa
			drop.Warnings = append(drop.Warnings, warnings[id]...)
		}

		drop.TotalHeadM = a.hydraulics.HeadFromPressure(drop.TotalPa, fluid.DensityKgM3)

		terminal, _ := topo.Leg(path.TerminalLegID())
		drop.HeatDemandW = terminal.HeatDemandW()

		results = append(results, drop)
	}

	return results, nil
}
