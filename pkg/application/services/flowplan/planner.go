package flowplan

import (
	"fmt"

	"github.com/iandogless-creator/hydronet/pkg/application/services/shared"
	"github.com/iandogless-creator/hydronet/pkg/domain/entities"
	"github.com/iandogless-creator/hydronet/pkg/domain/services"
)

// TerminalFlow is one room's derived flow demand
type TerminalFlow struct {
	RoomID      entities.RoomID `json:"room_id"`
	LegID       entities.LegID  `json:"leg_id"`
	HeatDemandW float64         `json:"heat_demand_w"`
	DeltaTK     float64         `json:"delta_t_k"`
	MassFlowKgS float64         `json:"mass_flow_kg_s"`
	FlowM3S     float64         `json:"flow_m3_s"`
	FlowM3H     float64         `json:"flow_m3_h"`
	NoFlow      bool            `json:"no_flow,omitempty"`
	Note        string          `json:"note,omitempty"`
}

// Plan carries the derived design flow for every leg of one network
type Plan struct {
	DesignDeltaTK float64
	ByLeg         map[entities.LegID]shared.FlowRate
	Terminals     []TerminalFlow
	TotalFlow     shared.FlowRate
}

// Flow returns the planned flow for a leg
func (p *Plan) Flow(id entities.LegID) (shared.FlowRate, error) {
	flow, exists := p.ByLeg[id]
	if !exists {
		return shared.ZeroFlow, fmt.Errorf("no planned flow for leg %s", id)
	}
	return flow, nil
}

// NoFlowTerminals returns the terminal rows that derived no flow
func (p *Plan) NoFlowTerminals() []TerminalFlow {
	rows := make([]TerminalFlow, 0)
	for _, t := range p.Terminals {
		if t.NoFlow {
			rows = append(rows, t)
		}
	}
	return rows
}

// Planner derives design flows from terminal heat demands. Per room,
// ṁ = Q̇/(cp·ΔT) and volume flow follows from density; per leg, flows
// accumulate bottom-up on the exact ledger, with upstream-declared leg
// flows taking precedence over derivation.
type Planner struct{}

// NewPlanner creates a new flow planner
func NewPlanner() *Planner {
	return &Planner{}
}

// Derive computes the flow plan for a topology with the given resolved
// fluid and network-wide design temperature drop. Non-positive heat demand
// or temperature drop produces flagged no-flow rows, not errors.
func (pl *Planner) Derive(
	topo *services.NetworkTopology,
	fluid *services.FluidState,
	designDeltaTK float64,
) (*Plan, error) {
	if topo == nil {
		return nil, fmt.Errorf("topology cannot be nil")
	}
	if fluid == nil {
		return nil, fmt.Errorf("fluid state cannot be nil")
	}

	plan := &Plan{
		DesignDeltaTK: designDeltaTK,
		ByLeg:         make(map[entities.LegID]shared.FlowRate, topo.Len()),
		Terminals:     make([]TerminalFlow, 0),
	}

	// Per-room flows first, accumulated per terminal leg
	roomFlows := make(map[entities.LegID]shared.FlowRate)
	for _, leg := range topo.TerminalLegs() {
		sum := shared.ZeroFlow
		for _, room := range leg.Rooms {
			row, flow := pl.deriveRoom(leg.ID, room, fluid, designDeltaTK)
			plan.Terminals = append(plan.Terminals, row)
			sum = sum.Add(flow)
		}
		roomFlows[leg.ID] = sum
	}

	// Bottom-up accumulation with declared flows taking precedence
	var accumulate func(id entities.LegID) shared.FlowRate
	accumulate = func(id entities.LegID) shared.FlowRate {
		leg, _ := topo.Leg(id)

		var flow shared.FlowRate
		switch {
		case leg.DesignFlowM3S != nil:
			flow = shared.FlowFromM3S(*leg.DesignFlowM3S)
			// Children still need their own plan entries
			for _, childID := range leg.Children {
				accumulate(childID)
			}
		case leg.IsTerminal():
			flow = roomFlows[id]
		default:
			flow = shared.ZeroFlow
			for _, childID := range leg.Children {
				flow = flow.Add(accumulate(childID))
			}
		}

		plan.ByLeg[id] = flow
		return flow
	}

	plan.TotalFlow = accumulate(topo.RootID())
	return plan, nil
}

// deriveRoom converts one room's heat demand to a flow row plus its exact
// ledger value
func (pl *Planner) deriveRoom(
	legID entities.LegID,
	room entities.TerminalRoom,
	fluid *services.FluidState,
	designDeltaTK float64,
) (TerminalFlow, shared.FlowRate) {
	deltaT := designDeltaTK
	if room.DeltaTOverrideK != nil {
		deltaT = *room.DeltaTOverrideK
	}

	row := TerminalFlow{
		RoomID:      room.ID,
		LegID:       legID,
		HeatDemandW: room.HeatDemandW,
		DeltaTK:     deltaT,
	}

	if room.HeatDemandW <= 0 {
		row.NoFlow = true
		row.Note = "no heat demand"
		return row, shared.ZeroFlow
	}
	if deltaT <= 0 {
		row.NoFlow = true
		row.Note = fmt.Sprintf("non-positive design ΔT %.1f K", deltaT)
		return row, shared.ZeroFlow
	}

	massFlow := room.HeatDemandW / (fluid.SpecificHeatJKgK * deltaT)
	flow, err := shared.FlowFromMassFlow(massFlow, fluid.DensityKgM3)
	if err != nil {
		row.NoFlow = true
		row.Note = err.Error()
		return row, shared.ZeroFlow
	}

	row.MassFlowKgS = massFlow
	row.FlowM3S = flow.M3S()
	row.FlowM3H = flow.M3H()
	return row, flow
}
