package entities

import (
	"fmt"
	"time"
)

// PathID represents a stable identifier for a root-to-terminal network path
type PathID string

// NetworkPath represents an ordered root→terminal sequence of leg ids
type NetworkPath struct {
	ID     PathID
	LegIDs []LegID
}

// NewNetworkPath creates a validated NetworkPath
func NewNetworkPath(id PathID, legIDs []LegID) (*NetworkPath, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("path id cannot be empty")
	}
	if len(legIDs) == 0 {
		return nil, fmt.Errorf("path %s must contain at least one leg", id)
	}
	seen := make(map[LegID]bool, len(legIDs))
	for _, legID := range legIDs {
		if string(legID) == "" {
			return nil, fmt.Errorf("path %s contains an empty leg id", id)
		}
		if seen[legID] {
			return nil, fmt.Errorf("path %s lists leg %s twice", id, legID)
		}
		seen[legID] = true
	}

	return &NetworkPath{
		ID:     id,
		LegIDs: legIDs,
	}, nil
}

// TerminalLegID returns the last leg in the path sequence
func (p *NetworkPath) TerminalLegID() LegID {
	return p.LegIDs[len(p.LegIDs)-1]
}

// PathPressureDrop represents the aggregated loss along one declared path
type PathPressureDrop struct {
	PathID        PathID            `json:"path_id"`
	LegIDs        []LegID           `json:"leg_ids"`
	TotalPa       float64           `json:"total_pa"`
	TotalHeadM    float64           `json:"total_head_m"`
	HeatDemandW   float64           `json:"heat_demand_w"`
	TerminalLegID LegID             `json:"terminal_leg_id"`
	PerLegPa      map[LegID]float64 `json:"per_leg_pa"`
	Warnings      []Warning         `json:"warnings,omitempty"`
}

// Summary returns a formatted one-line description of the path loss
func (p *PathPressureDrop) Summary() string {
	return fmt.Sprintf("%s: %.0f Pa (%.3f m head) over %d legs",
		p.PathID, p.TotalPa, p.TotalHeadM, len(p.LegIDs))
}

// BalanceTarget represents the commissioning target for one terminal:
// its valve must absorb the surplus between the index path loss and its
// own path loss so all terminals see the same driving pressure
type BalanceTarget struct {
	PathID        PathID  `json:"path_id"`
	TerminalLegID LegID   `json:"terminal_leg_id"`
	TargetPa      float64 `json:"target_pa"`
	PathPa        float64 `json:"path_pa"`
	SurplusPa     float64 `json:"surplus_pa"`
	IsIndex       bool    `json:"is_index"`
}

// IndexAnalysis contains the index-path selection for one solve: the
// governing path, every evaluated path, and the balancing targets derived
// from the index pressure drop
type IndexAnalysis struct {
	IndexPathID  PathID             `json:"index_path_id"`
	IndexPa      float64            `json:"index_pa"`
	IndexHeadM   float64            `json:"index_head_m"`
	Paths        []PathPressureDrop `json:"paths"`
	Targets      []BalanceTarget    `json:"targets"`
	TotalPaths   int                `json:"total_paths"`
	AnalysisDate time.Time          `json:"analysis_date"`
}

// IndexPath returns the governing path's aggregated result
func (a *IndexAnalysis) IndexPath() *PathPressureDrop {
	for i := range a.Paths {
		if a.Paths[i].PathID == a.IndexPathID {
			return &a.Paths[i]
		}
	}
	return nil
}

// Summary returns a formatted summary of the index path selection
func (a *IndexAnalysis) Summary() string {
	if a.TotalPaths == 0 {
		return "No paths analyzed"
	}
	return fmt.Sprintf("Index path %s: %.0f Pa (%.3f m head) of %d paths",
		a.IndexPathID, a.IndexPa, a.IndexHeadM, a.TotalPaths)
}
