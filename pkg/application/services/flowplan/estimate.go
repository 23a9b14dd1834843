package flowplan

import (
	"fmt"

	"github.com/iandogless-creator/hydronet/pkg/application/services/shared"
	"github.com/iandogless-creator/hydronet/pkg/domain/services"
)

// Estimate is a whole-system first-pass figure derived from a total heat
// load and a flow/return temperature regime, before any topology exists.
// It is an order-of-magnitude answer for early design conversations, not
// a sizing result.
type Estimate struct {
	DesignHeatLoadW float64 `json:"design_heat_load_w"`
	FlowTempC       float64 `json:"flow_temp_c"`
	ReturnTempC     float64 `json:"return_temp_c"`
	DeltaTK         float64 `json:"delta_t_k"`
	MassFlowKgS     float64 `json:"mass_flow_kg_s"`
	FlowLS          float64 `json:"flow_l_s"`
	FlowM3H         float64 `json:"flow_m3_h"`
	NoFlow          bool    `json:"no_flow,omitempty"`
	Note            string  `json:"note,omitempty"`
}

// QuickEstimate derives the system design flow for a total heat load under
// the given temperature regime, ΔT = flow − return. Non-positive load or
// ΔT yields a flagged no-flow estimate rather than an error, matching the
// per-room derivation.
func (pl *Planner) QuickEstimate(
	heatLoadW float64,
	flowTempC float64,
	returnTempC float64,
	fluid *services.FluidState,
) (*Estimate, error) {
	if fluid == nil {
		return nil, fmt.Errorf("fluid state cannot be nil")
	}

	est := &Estimate{
		DesignHeatLoadW: heatLoadW,
		FlowTempC:       flowTempC,
		ReturnTempC:     returnTempC,
		DeltaTK:         flowTempC - returnTempC,
	}

	if heatLoadW <= 0 {
		est.NoFlow = true
		est.Note = "no heat demand"
		return est, nil
	}
	if est.DeltaTK <= 0 {
		est.NoFlow = true
		est.Note = fmt.Sprintf("non-positive design ΔT %.1f K", est.DeltaTK)
		return est, nil
	}

	massFlow := heatLoadW / (fluid.SpecificHeatJKgK * est.DeltaTK)
	flow, err := shared.FlowFromMassFlow(massFlow, fluid.DensityKgM3)
	if err != nil {
		est.NoFlow = true
		est.Note = err.Error()
		return est, nil
	}

	est.MassFlowKgS = massFlow
	est.FlowLS = flow.LS()
	est.FlowM3H = flow.M3H()
	return est, nil
}
