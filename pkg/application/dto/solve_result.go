package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iandogless-creator/hydronet/pkg/application/services/flowplan"
	"github.com/iandogless-creator/hydronet/pkg/domain/entities"
)

// FluidSummary records the fluid state a solve ran with
type FluidSummary struct {
	Key                   entities.FluidKey `json:"key"`
	Name                  string            `json:"name"`
	TemperatureC          *float64          `json:"temperature_c,omitempty"`
	DensityKgM3           float64           `json:"density_kg_m3"`
	KinematicViscosityM2S float64           `json:"kinematic_viscosity_m2_s"`
	SpecificHeatJKgK      float64           `json:"specific_heat_j_kg_k"`
}

// SolveResult contains the complete output of a network solve
type SolveResult struct {
	RunID       uuid.UUID     `json:"run_id"`
	GeneratedAt time.Time     `json:"generated_at"`
	SolveTime   time.Duration `json:"solve_time_ns"`

	Fluid         FluidSummary `json:"fluid"`
	DesignDeltaTK float64      `json:"design_delta_t_k"`

	Terminals    []flowplan.TerminalFlow       `json:"terminals"`
	FlowByLegM3S map[entities.LegID]float64    `json:"flow_by_leg_m3_s"`
	TotalFlowM3S float64                       `json:"total_flow_m3_s"`
	TotalFlowM3H float64                       `json:"total_flow_m3_h"`
	SizedLegs    []*entities.SizedSegment      `json:"sized_legs"`
	Paths        []*entities.PathPressureDrop  `json:"paths"`
	Index        *entities.IndexAnalysis       `json:"index,omitempty"`
	Pump         *entities.PumpSelectionResult `json:"pump,omitempty"`
	Warnings     []entities.Warning            `json:"warnings,omitempty"`
}

// HasWarnings reports whether any stage attached a warning
func (r *SolveResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// SizedLeg returns the sizing result for one leg
func (r *SolveResult) SizedLeg(id entities.LegID) *entities.SizedSegment {
	for _, sized := range r.SizedLegs {
		if sized.LegID == id {
			return sized
		}
	}
	return nil
}

// Summary returns a formatted one-line description of the solve
func (r *SolveResult) Summary() string {
	indexNote := "no index path"
	if r.Index != nil {
		indexNote = fmt.Sprintf("index %s at %.0f Pa", r.Index.IndexPathID, r.Index.IndexPa)
	}
	pumpNote := "no pump selected"
	if r.Pump != nil {
		pumpNote = string(r.Pump.PumpKey)
	}
	return fmt.Sprintf("%d terminals, %.3f m³/h total, %s, %s",
		len(r.Terminals), r.TotalFlowM3H, indexNote, pumpNote)
}
