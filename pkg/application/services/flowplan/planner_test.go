package flowplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iandogless-creator/hydronet/pkg/application/services/shared"
	"github.com/iandogless-creator/hydronet/pkg/domain/entities"
	"github.com/iandogless-creator/hydronet/pkg/domain/services"
)

func designWater() *services.FluidState {
	return &services.FluidState{
		DensityKgM3:           998,
		KinematicViscosityM2S: 1.004e-6,
		SpecificHeatJKgK:      4180,
	}
}

func room(t *testing.T, id entities.RoomID, heatW float64, deltaT *float64) entities.TerminalRoom {
	t.Helper()
	r, err := entities.NewTerminalRoom(id, string(id), heatW, deltaT)
	require.NoError(t, err)
	return *r
}

func leg(t *testing.T, id, parent entities.LegID, children []entities.LegID, rooms []entities.TerminalRoom, flow *float64) *entities.CommittedLeg {
	t.Helper()
	l, err := entities.NewCommittedLeg(id, string(id), parent, children, rooms, nil, "", flow)
	require.NoError(t, err)
	return l
}

func topology(t *testing.T, legs ...*entities.CommittedLeg) *services.NetworkTopology {
	t.Helper()
	topo, err := services.NewNetworkTopology(legs)
	require.NoError(t, err)
	return topo
}

func TestPlanner_SingleRadiator(t *testing.T) {
	// 2000 W room at ΔT 20 K in water: ṁ = 2000/(4180·20) ≈ 0.0239 kg/s
	topo := topology(t,
		leg(t, "boiler", "", []entities.LegID{"rad"}, nil, nil),
		leg(t, "rad", "boiler", nil, []entities.TerminalRoom{room(t, "lounge", 2000, nil)}, nil),
	)

	plan, err := NewPlanner().Derive(topo, designWater(), 20)
	require.NoError(t, err)

	require.Len(t, plan.Terminals, 1)
	terminal := plan.Terminals[0]
	assert.False(t, terminal.NoFlow)
	assert.InDelta(t, 0.0239, terminal.MassFlowKgS, 1e-4)
	assert.InDelta(t, 8.6e-2, terminal.FlowM3H, 1e-3)

	// Root carries the terminal's flow
	rootFlow, err := plan.Flow("boiler")
	require.NoError(t, err)
	assert.True(t, rootFlow.Equal(plan.TotalFlow))
	assert.InDelta(t, terminal.FlowM3S, rootFlow.M3S(), 1e-12)
}

func TestPlanner_DeclaredSiblingsSumExactly(t *testing.T) {
	qa, qb := 0.010, 0.015
	topo := topology(t,
		leg(t, "manifold", "", []entities.LegID{"loop-a", "loop-b"}, nil, nil),
		leg(t, "loop-a", "manifold", nil, []entities.TerminalRoom{room(t, "a", 1000, nil)}, &qa),
		leg(t, "loop-b", "manifold", nil, []entities.TerminalRoom{room(t, "b", 1000, nil)}, &qb),
	)

	plan, err := NewPlanner().Derive(topo, designWater(), 20)
	require.NoError(t, err)

	parent, err := plan.Flow("manifold")
	require.NoError(t, err)

	// Exact ledger equality, not within epsilon
	assert.True(t, parent.Equal(shared.FlowFromM3S(0.025)),
		"expected 0.010 + 0.015 to equal 0.025 exactly, got %s", parent.Decimal())
}

func TestPlanner_DeclaredFlowOverridesDerivation(t *testing.T) {
	declared := 0.002
	topo := topology(t,
		leg(t, "boiler", "", []entities.LegID{"rad"}, nil, nil),
		leg(t, "rad", "boiler", nil, []entities.TerminalRoom{room(t, "lounge", 2000, nil)}, &declared),
	)

	plan, err := NewPlanner().Derive(topo, designWater(), 20)
	require.NoError(t, err)

	radFlow, err := plan.Flow("rad")
	require.NoError(t, err)
	assert.True(t, radFlow.Equal(shared.FlowFromM3S(0.002)))
	assert.True(t, plan.TotalFlow.Equal(shared.FlowFromM3S(0.002)))
}

func TestPlanner_RoomDeltaTOverride(t *testing.T) {
	// UFH loop runs at ΔT 7 K while the network designs for 20 K
	ufhDeltaT := 7.0
	topo := topology(t,
		leg(t, "manifold", "", []entities.LegID{"ufh"}, nil, nil),
		leg(t, "ufh", "manifold", nil, []entities.TerminalRoom{room(t, "floor", 1400, &ufhDeltaT)}, nil),
	)

	plan, err := NewPlanner().Derive(topo, designWater(), 20)
	require.NoError(t, err)

	require.Len(t, plan.Terminals, 1)
	assert.Equal(t, 7.0, plan.Terminals[0].DeltaTK)
	assert.InDelta(t, 1400.0/(4180*7), plan.Terminals[0].MassFlowKgS, 1e-9)
}

func TestPlanner_NoFlowRows(t *testing.T) {
	topo := topology(t,
		leg(t, "boiler", "", []entities.LegID{"rad-dead", "rad-live"}, nil, nil),
		leg(t, "rad-dead", "boiler", nil, []entities.TerminalRoom{room(t, "store", 0, nil)}, nil),
		leg(t, "rad-live", "boiler", nil, []entities.TerminalRoom{room(t, "lounge", 2000, nil)}, nil),
	)

	plan, err := NewPlanner().Derive(topo, designWater(), 20)
	require.NoError(t, err)

	noFlow := plan.NoFlowTerminals()
	require.Len(t, noFlow, 1)
	assert.Equal(t, entities.RoomID("store"), noFlow[0].RoomID)
	assert.Equal(t, "no heat demand", noFlow[0].Note)
	assert.Zero(t, noFlow[0].MassFlowKgS)

	// Dead branch contributes nothing; total equals the live leg
	deadFlow, err := plan.Flow("rad-dead")
	require.NoError(t, err)
	assert.True(t, deadFlow.IsZero())

	liveFlow, err := plan.Flow("rad-live")
	require.NoError(t, err)
	assert.True(t, plan.TotalFlow.Equal(liveFlow))
}

func TestPlanner_NonPositiveDeltaT(t *testing.T) {
	topo := topology(t,
		leg(t, "boiler", "", []entities.LegID{"rad"}, nil, nil),
		leg(t, "rad", "boiler", nil, []entities.TerminalRoom{room(t, "lounge", 2000, nil)}, nil),
	)

	// Degenerate input from upstream: every terminal goes no-flow, no error
	plan, err := NewPlanner().Derive(topo, designWater(), 0)
	require.NoError(t, err)

	require.Len(t, plan.Terminals, 1)
	assert.True(t, plan.Terminals[0].NoFlow)
	assert.Contains(t, plan.Terminals[0].Note, "non-positive design ΔT")
	assert.True(t, plan.TotalFlow.IsZero())
}

func TestPlanner_NilInputs(t *testing.T) {
	topo := topology(t,
		leg(t, "boiler", "", []entities.LegID{"rad"}, nil, nil),
		leg(t, "rad", "boiler", nil, []entities.TerminalRoom{room(t, "lounge", 2000, nil)}, nil),
	)

	_, err := NewPlanner().Derive(nil, designWater(), 20)
	assert.Error(t, err)

	_, err = NewPlanner().Derive(topo, nil, 20)
	assert.Error(t, err)
}
