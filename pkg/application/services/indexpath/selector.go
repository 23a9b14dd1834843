package indexpath

import (
	"fmt"
	"sort"
	"time"

	"github.com/iandogless-creator/hydronet/pkg/domain/entities"
)

// Selector identifies the index path: the root-to-terminal run with the
// greatest total pressure loss, which sets the duty head the pump must
// deliver. Every other terminal's balancing valve absorbs the surplus
// between the index loss and its own path loss.
type Selector struct{}

// NewSelector creates a new index path selector
func NewSelector() *Selector {
	return &Selector{}
}

// Select ranks aggregated path losses and derives the balancing targets.
// Selection is deterministic: equal losses fall back to heat demand, then
// to path id, so the same network always reports the same index path.
func (s *Selector) Select(drops []*entities.PathPressureDrop) (*entities.IndexAnalysis, error) {
	if len(drops) == 0 {
		return nil, fmt.Errorf("at least one path result is required")
	}

	ordered := make([]entities.PathPressureDrop, 0, len(drops))
	for _, drop := range drops {
		if drop == nil {
			return nil, fmt.Errorf("path result cannot be nil")
		}
		ordered = append(ordered, *drop)
	}

	// Sort paths by total loss (descending)
	sort.Slice(ordered, func(i, j int) bool {
		// Primary sort: total pressure loss
		if ordered[i].TotalPa != ordered[j].TotalPa {
			return ordered[i].TotalPa > ordered[j].TotalPa
		}
		// Secondary sort: heat demand (heavier terminals first)
		if ordered[i].HeatDemandW != ordered[j].HeatDemandW {
			return ordered[i].HeatDemandW > ordered[j].HeatDemandW
		}
		// Tertiary sort: path id, for a stable report order
		return ordered[i].PathID < ordered[j].PathID
	})

	index := ordered[0]

	targets := make([]entities.BalanceTarget, 0, len(ordered))
	for _, path := range ordered {
		targets = append(targets, entities.BalanceTarget{
			PathID:        path.PathID,
			TerminalLegID: path.TerminalLegID,
			TargetPa:      index.TotalPa,
			PathPa:        path.TotalPa,
			SurplusPa:     index.TotalPa - path.TotalPa,
			IsIndex:       path.PathID == index.PathID,
		})
	}

	return &entities.IndexAnalysis{
		IndexPathID:  index.PathID,
		IndexPa:      index.TotalPa,
		IndexHeadM:   index.TotalHeadM,
		Paths:        ordered,
		Targets:      targets,
		TotalPaths:   len(ordered),
		AnalysisDate: time.Now(),
	}, nil
}
