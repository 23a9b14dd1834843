package pressure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iandogless-creator/hydronet/pkg/domain/entities"
	"github.com/iandogless-creator/hydronet/pkg/domain/services"
	"github.com/iandogless-creator/hydronet/pkg/infrastructure/catalogs/memory"
)

// twoBranchSystem builds boiler → {rad-north, rad-south} with pipe-only
// legs and round-number sizing, so path totals are exact by hand:
// north 1500+2000 = 3500 Pa, south 1500+3000 = 4500 Pa.
func twoBranchSystem(t *testing.T) (*services.NetworkTopology, map[entities.LegID]*entities.SizedSegment) {
	t.Helper()

	roomNorth, err := entities.NewTerminalRoom("north-room", "North bedroom", 1500, nil)
	require.NoError(t, err)
	roomSouth, err := entities.NewTerminalRoom("south-room", "South lounge", 2000, nil)
	require.NoError(t, err)

	boiler, err := entities.NewCommittedLeg("boiler", "Boiler riser", "",
		[]entities.LegID{"rad-north", "rad-south"}, nil,
		[]entities.Segment{pipeRun(t, 5.0)}, "", nil)
	require.NoError(t, err)
	north, err := entities.NewCommittedLeg("rad-north", "North radiator", "boiler",
		nil, []entities.TerminalRoom{*roomNorth},
		[]entities.Segment{pipeRun(t, 10.0)}, "", nil)
	require.NoError(t, err)
	south, err := entities.NewCommittedLeg("rad-south", "South radiator", "boiler",
		nil, []entities.TerminalRoom{*roomSouth},
		[]entities.Segment{pipeRun(t, 12.0)}, "", nil)
	require.NoError(t, err)

	topo, err := services.NewNetworkTopology([]*entities.CommittedLeg{boiler, north, south})
	require.NoError(t, err)

	sized := map[entities.LegID]*entities.SizedSegment{
		"boiler":    {LegID: "boiler", VelocityMS: 1.2, PressureGradientPaM: 300},
		"rad-north": {LegID: "rad-north", VelocityMS: 0.8, PressureGradientPaM: 200},
		"rad-south": {LegID: "rad-south", VelocityMS: 1.6, PressureGradientPaM: 250,
			Warnings: []entities.Warning{
				entities.NewWarning(entities.OverVelocity, "1.60 m/s exceeds 1.50 m/s"),
			}},
	}
	return topo, sized
}

func dropsByPath(drops []*entities.PathPressureDrop) map[entities.PathID]*entities.PathPressureDrop {
	byID := make(map[entities.PathID]*entities.PathPressureDrop, len(drops))
	for _, d := range drops {
		byID[d.PathID] = d
	}
	return byID
}

func TestAggregate_TwoBranchPaths(t *testing.T) {
	topo, sized := twoBranchSystem(t)
	agg := NewAggregator(NewCalculator(memory.DefaultFittingCatalog()))

	paths, err := topo.EnumeratePaths()
	require.NoError(t, err)
	require.Len(t, paths, 2)

	drops, err := agg.Aggregate(topo, paths, sized, designFluid())
	require.NoError(t, err)
	require.Len(t, drops, 2)

	byID := dropsByPath(drops)
	north := byID["rad-north"]
	south := byID["rad-south"]
	require.NotNil(t, north)
	require.NotNil(t, south)

	assert.InDelta(t, 3500.0, north.TotalPa, 1e-9)
	assert.InDelta(t, 4500.0, south.TotalPa, 1e-9)

	// Shared boiler leg contributes the same loss to both paths
	assert.InDelta(t, 1500.0, north.PerLegPa["boiler"], 1e-9)
	assert.InDelta(t, 1500.0, south.PerLegPa["boiler"], 1e-9)
	assert.InDelta(t, 2000.0, north.PerLegPa["rad-north"], 1e-9)
	assert.InDelta(t, 3000.0, south.PerLegPa["rad-south"], 1e-9)

	// Head from ΔP/(ρg) with ρ = 998
	assert.InDelta(t, 0.35762, north.TotalHeadM, 1e-4)
	assert.InDelta(t, 0.45979, south.TotalHeadM, 1e-4)

	assert.Equal(t, entities.LegID("rad-north"), north.TerminalLegID)
	assert.Equal(t, entities.LegID("rad-south"), south.TerminalLegID)
	assert.InDelta(t, 1500.0, north.HeatDemandW, 1e-12)
	assert.InDelta(t, 2000.0, south.HeatDemandW, 1e-12)
}

func TestAggregate_OrderIndependent(t *testing.T) {
	topo, sized := twoBranchSystem(t)
	agg := NewAggregator(NewCalculator(memory.DefaultFittingCatalog()))

	paths, err := topo.EnumeratePaths()
	require.NoError(t, err)
	reversed := []*entities.NetworkPath{paths[1], paths[0]}

	forward, err := agg.Aggregate(topo, paths, sized, designFluid())
	require.NoError(t, err)
	backward, err := agg.Aggregate(topo, reversed, sized, designFluid())
	require.NoError(t, err)

	forwardByID := dropsByPath(forward)
	backwardByID := dropsByPath(backward)
	for id, drop := range forwardByID {
		require.NotNil(t, backwardByID[id], "path %s missing from reversed run", id)
		assert.Equal(t, drop.TotalPa, backwardByID[id].TotalPa)
	}
}

func TestAggregate_WarningPropagation(t *testing.T) {
	topo, sized := twoBranchSystem(t)
	agg := NewAggregator(NewCalculator(memory.DefaultFittingCatalog()))

	paths, err := topo.EnumeratePaths()
	require.NoError(t, err)
	drops, err := agg.Aggregate(topo, paths, sized, designFluid())
	require.NoError(t, err)

	byID := dropsByPath(drops)
	assert.Empty(t, byID["rad-north"].Warnings)
	require.Len(t, byID["rad-south"].Warnings, 1)
	assert.Equal(t, entities.OverVelocity, byID["rad-south"].Warnings[0].Code)
}

func TestAggregate_UnknownLeg(t *testing.T) {
	topo, sized := twoBranchSystem(t)
	agg := NewAggregator(NewCalculator(memory.DefaultFittingCatalog()))

	ghost, err := entities.NewNetworkPath("ghost", []entities.LegID{"boiler", "ghost"})
	require.NoError(t, err)

	_, err = agg.Aggregate(topo, []*entities.NetworkPath{ghost}, sized, designFluid())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownLeg)
	assert.Contains(t, err.Error(), "ghost")
}

func TestAggregate_MissingSizing(t *testing.T) {
	topo, sized := twoBranchSystem(t)
	agg := NewAggregator(NewCalculator(memory.DefaultFittingCatalog()))

	delete(sized, "rad-south")

	paths, err := topo.EnumeratePaths()
	require.NoError(t, err)
	_, err = agg.Aggregate(topo, paths, sized, designFluid())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingSizing)
	assert.Contains(t, err.Error(), "rad-south")
}

func TestAggregate_NoPaths(t *testing.T) {
	topo, sized := twoBranchSystem(t)
	agg := NewAggregator(NewCalculator(memory.DefaultFittingCatalog()))

	_, err := agg.Aggregate(topo, nil, sized, designFluid())
	assert.Error(t, err)
}
